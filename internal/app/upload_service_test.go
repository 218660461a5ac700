package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/armazem/internal/core/apperr"
	"github.com/example/armazem/internal/core/form"
	"github.com/example/armazem/internal/core/upload"
	"github.com/example/armazem/internal/models"
	"github.com/example/armazem/internal/ports/primary"
)

var (
	jpegMagic = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	pngMagic  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	pdfMagic  = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
)

// writeFile creates a file starting with magic, padded to size bytes.
func writeFile(t *testing.T, name string, magic []byte, size int) string {
	t.Helper()
	data := make([]byte, size)
	copy(data, magic)
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUploadService_RejectsLocally(t *testing.T) {
	tests := []struct {
		name       string
		kind       upload.Kind
		file       string
		magic      []byte
		size       int
		wantReason string
	}{
		{
			name:       "6 MB jpeg",
			kind:       upload.KindImage,
			file:       "grande.jpg",
			magic:      jpegMagic,
			size:       6 * 1024 * 1024,
			wantReason: "Ficheiro demasiado grande (máx. 5MB)",
		},
		{
			name:       "pdf as image",
			kind:       upload.KindImage,
			file:       "manual.pdf",
			magic:      pdfMagic,
			size:       2048,
			wantReason: "Apenas ficheiros de imagem são permitidos",
		},
		{
			name:       "png as document",
			kind:       upload.KindDocument,
			file:       "foto.png",
			magic:      pngMagic,
			size:       2048,
			wantReason: "Apenas ficheiros PDF são permitidos",
		},
		{
			name:       "11 MB pdf",
			kind:       upload.KindDocument,
			file:       "enorme.pdf",
			magic:      pdfMagic,
			size:       11 * 1024 * 1024,
			wantReason: "Ficheiro demasiado grande (máx. 10MB)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newMockBackend()
			svc := NewUploadService(backend, &mockUploadLogRepository{}, nil)
			path := writeFile(t, tt.file, tt.magic, tt.size)

			_, err := svc.Upload(context.Background(), primary.UploadRequest{Kind: tt.kind, Path: path})

			var rejected *apperr.UploadRejected
			if !errors.As(err, &rejected) {
				t.Fatalf("expected UploadRejected, got %v", err)
			}
			if rejected.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", rejected.Reason, tt.wantReason)
			}
			if backend.total() != 0 {
				t.Errorf("no request expected, got %d", backend.total())
			}
		})
	}
}

func TestUploadService_UploadIntoForm(t *testing.T) {
	backend := newMockBackend().on("UPLOAD", "/upload", models.UploadResponse{URL: "/api/uploads/abc.png"})
	history := &mockUploadLogRepository{}
	svc := NewUploadService(backend, history, nil)
	path := writeFile(t, "grua.png", pngMagic, 4096)

	f := form.NewEquipment()
	result, err := svc.UploadInto(context.Background(), f, "foto", path)
	if err != nil {
		t.Fatalf("UploadInto failed: %v", err)
	}

	want := "http://backend.test/api/uploads/abc.png"
	if result.URL != want || f.Foto != want {
		t.Errorf("URL = %q, form foto = %q, want %q", result.URL, f.Foto, want)
	}
	if result.MIME != "image/png" || result.Size != 4096 || result.FileName != "grua.png" {
		t.Errorf("unexpected result %+v", result)
	}
	if n := backend.count("UPLOAD", "/upload"); n != 1 {
		t.Errorf("expected one upload, got %d", n)
	}
	if len(backend.uploads) != 1 || !bytes.HasPrefix([]byte(backend.uploads[0]), pngMagic) {
		t.Error("file content not forwarded")
	}
	if len(history.records) != 1 || history.records[0].Kind != "image" || result.CreatedAt == "" {
		t.Errorf("upload not recorded: %+v", history.records)
	}
}

func TestUploadService_DocumentFieldUsesPdfEndpoint(t *testing.T) {
	backend := newMockBackend().on("UPLOAD", "/upload/pdf", models.UploadResponse{URL: "https://cdn.example.com/manual.pdf"})
	svc := NewUploadService(backend, nil, nil)
	path := writeFile(t, "manual.pdf", pdfMagic, 8192)

	f := form.NewEquipment()
	if _, err := svc.UploadInto(context.Background(), f, "manual_url", path); err != nil {
		t.Fatalf("UploadInto failed: %v", err)
	}
	if f.ManualURL != "https://cdn.example.com/manual.pdf" {
		t.Errorf("ManualURL = %q", f.ManualURL)
	}
}

func TestUploadService_FailureLeavesFormUntouched(t *testing.T) {
	backend := newMockBackend().fail("UPLOAD", "/upload", &apperr.APIError{Status: 500})
	svc := NewUploadService(backend, nil, nil)
	path := writeFile(t, "grua.jpg", jpegMagic, 1024)

	f := form.NewVehicle()
	f.Foto = "http://backend.test/api/uploads/old.jpg"

	_, err := svc.UploadInto(context.Background(), f, "foto", path)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := apperr.Message(err, "Erro ao carregar imagem"); got != "Erro ao carregar imagem" {
		t.Errorf("Message = %q", got)
	}
	if f.Foto != "http://backend.test/api/uploads/old.jpg" {
		t.Errorf("form changed on failure: %q", f.Foto)
	}
}

func TestUploadService_FailureCarriesKindMessage(t *testing.T) {
	tests := []struct {
		name  string
		field string
		path  string
		magic []byte
		file  string
		want  string
	}{
		{"image", "foto", "/upload", jpegMagic, "grua.jpg", "Erro ao carregar imagem"},
		{"document", "documento_url", "/upload/pdf", pdfMagic, "livrete.pdf", "Erro ao carregar PDF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newMockBackend().fail("UPLOAD", tt.path, &apperr.APIError{Status: 500, Method: "POST", Path: tt.path})
			svc := NewUploadService(backend, nil, nil)

			_, err := svc.UploadInto(context.Background(), form.NewVehicle(), tt.field, writeFile(t, tt.file, tt.magic, 1024))
			if err == nil {
				t.Fatal("expected error")
			}
			// no fallback from the caller: the field's kind decides
			if got := apperr.Message(err, ""); got != tt.want {
				t.Errorf("Message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUploadService_NonUploadField(t *testing.T) {
	svc := NewUploadService(newMockBackend(), nil, nil)

	if _, err := svc.UploadInto(context.Background(), form.NewEquipment(), "codigo", "x.png"); err == nil {
		t.Error("expected error for a non-upload field")
	}
	if err := svc.Remove(form.NewMaterial(), "foto"); err == nil {
		t.Error("materials have no photo field")
	}
}

func TestUploadService_Remove(t *testing.T) {
	backend := newMockBackend()
	svc := NewUploadService(backend, nil, nil)

	f := form.NewEquipment()
	f.CertificadoURL = "http://backend.test/api/uploads/pdf/cert.pdf"
	if err := svc.Remove(f, "certificado_url"); err != nil {
		t.Fatal(err)
	}
	if f.CertificadoURL != "" {
		t.Errorf("CertificadoURL = %q", f.CertificadoURL)
	}
	if backend.total() != 0 {
		t.Error("removal must not call the backend")
	}
}

func TestUploadService_History(t *testing.T) {
	history := &mockUploadLogRepository{}
	backend := newMockBackend().on("UPLOAD", "/upload", models.UploadResponse{URL: "/api/uploads/a.png"})
	svc := NewUploadService(backend, history, nil)

	for i := 0; i < 3; i++ {
		path := writeFile(t, "a.png", pngMagic, 100+i)
		if _, err := svc.Upload(context.Background(), primary.UploadRequest{Kind: upload.KindImage, Path: path}); err != nil {
			t.Fatal(err)
		}
	}

	results, err := svc.History(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || results[0].Size != 102 {
		t.Errorf("unexpected history %+v", results)
	}
}
