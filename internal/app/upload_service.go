package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/example/armazem/internal/core/apperr"
	"github.com/example/armazem/internal/core/form"
	"github.com/example/armazem/internal/core/upload"
	"github.com/example/armazem/internal/models"
	"github.com/example/armazem/internal/ports/primary"
	"github.com/example/armazem/internal/ports/secondary"
)

// UploadServiceImpl implements the UploadService interface.
type UploadServiceImpl struct {
	backend secondary.Backend
	history secondary.UploadLogRepository
	logger  *zap.Logger
}

// NewUploadService creates a new UploadService with injected dependencies.
// history may be nil.
func NewUploadService(backend secondary.Backend, history secondary.UploadLogRepository, logger *zap.Logger) *UploadServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadServiceImpl{
		backend: backend,
		history: history,
		logger:  logger,
	}
}

var _ primary.UploadService = (*UploadServiceImpl)(nil)

// Upload validates the file locally, then sends it. A rejected file never
// reaches the backend.
func (s *UploadServiceImpl) Upload(ctx context.Context, req primary.UploadRequest) (*primary.UploadResult, error) {
	rules, err := upload.RulesFor(req.Kind)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", req.Path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", req.Path)
	}

	contentType := req.ContentType
	if contentType == "" {
		detected, err := mimetype.DetectFile(req.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to detect type of %s: %w", req.Path, err)
		}
		contentType = detected.String()
	}

	check := upload.CanUpload(upload.CandidateContext{
		Kind: req.Kind,
		MIME: contentType,
		Size: info.Size(),
	})
	if !check.Allowed {
		return nil, &apperr.UploadRejected{Reason: check.Reason}
	}

	file, err := os.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", req.Path, err)
	}
	defer file.Close()

	var resp models.UploadResponse
	err = s.backend.Upload(ctx, rules.Endpoint, secondary.UploadFile{
		Name:        filepath.Base(req.Path),
		ContentType: contentType,
		Body:        file,
	}, &resp)
	if err != nil {
		return nil, &apperr.UploadFailed{
			Fallback: rules.FailMessage,
			Err:      fmt.Errorf("failed to upload %s: %w", filepath.Base(req.Path), err),
		}
	}

	result := &primary.UploadResult{
		Kind:     req.Kind,
		FileName: filepath.Base(req.Path),
		Size:     info.Size(),
		MIME:     contentType,
		URL:      upload.NormalizeURL(s.backend.Origin(), resp.URL),
	}
	s.record(ctx, result)

	return result, nil
}

// record keeps the local history; a failure there does not fail the upload.
func (s *UploadServiceImpl) record(ctx context.Context, result *primary.UploadResult) {
	if s.history == nil {
		return
	}
	rec := &secondary.UploadRecord{
		Kind:     string(result.Kind),
		FileName: result.FileName,
		Size:     result.Size,
		URL:      result.URL,
	}
	if err := s.history.Create(ctx, rec); err != nil {
		s.logger.Warn("failed to record upload", zap.String("file", result.FileName), zap.Error(err))
		return
	}
	result.CreatedAt = rec.CreatedAt
}

// UploadInto uploads path and stores the URL in field of f. The field's
// upload kind decides which rules apply.
func (s *UploadServiceImpl) UploadInto(ctx context.Context, f form.Form, field, path string) (*primary.UploadResult, error) {
	kind, err := uploadKind(f, field)
	if err != nil {
		return nil, err
	}

	result, err := s.Upload(ctx, primary.UploadRequest{Kind: kind, Path: path})
	if err != nil {
		return nil, err
	}

	if err := form.Set(f, field, result.URL); err != nil {
		return nil, err
	}
	return result, nil
}

// Remove clears the URL held by field.
func (s *UploadServiceImpl) Remove(f form.Form, field string) error {
	if _, err := uploadKind(f, field); err != nil {
		return err
	}
	return form.Set(f, field, "")
}

// History lists recent uploads.
func (s *UploadServiceImpl) History(ctx context.Context, limit int) ([]*primary.UploadResult, error) {
	if s.history == nil {
		return nil, nil
	}
	records, err := s.history.List(ctx, secondary.UploadFilters{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}

	results := make([]*primary.UploadResult, len(records))
	for i, r := range records {
		results[i] = &primary.UploadResult{
			Kind:      upload.Kind(r.Kind),
			FileName:  r.FileName,
			Size:      r.Size,
			URL:       r.URL,
			CreatedAt: r.CreatedAt,
		}
	}
	return results, nil
}

func uploadKind(f form.Form, field string) (upload.Kind, error) {
	fld, ok := form.FieldByName(f, field)
	if !ok || fld.Kind != form.KindUpload {
		return "", fmt.Errorf("%s has no upload field %q", f.Title(), field)
	}
	return upload.Kind(fld.Upload), nil
}
