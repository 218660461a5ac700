package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/example/armazem/internal/core/apperr"
	"github.com/example/armazem/internal/ports/secondary"
)

// ============================================================================
// Mock Backend
// ============================================================================

// backendCall is one request seen by mockBackend.
type backendCall struct {
	Method string
	Path   string
	Body   any
}

// mockBackend implements secondary.Backend for testing. Responses are keyed
// by "METHOD /path" and decoded into out through JSON, the way the real
// client does.
type mockBackend struct {
	mu        sync.Mutex
	responses map[string]any
	errs      map[string]error
	calls     []backendCall
	uploads   []string // file contents
	origin    string
}

func newMockBackend() *mockBackend {
	return &mockBackend{
		responses: make(map[string]any),
		errs:      make(map[string]error),
		origin:    "http://backend.test",
	}
}

var _ secondary.Backend = (*mockBackend)(nil)

func (m *mockBackend) on(method, path string, resp any) *mockBackend {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[method+" "+path] = resp
	return m
}

func (m *mockBackend) fail(method, path string, err error) *mockBackend {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[method+" "+path] = err
	return m
}

func (m *mockBackend) handle(method, path string, body, out any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, backendCall{Method: method, Path: path, Body: body})

	key := method + " " + path
	if err, ok := m.errs[key]; ok {
		return err
	}
	resp, ok := m.responses[key]
	if !ok {
		if method == "GET" {
			return &apperr.APIError{Status: 404, Method: method, Path: path}
		}
		return nil
	}
	if out == nil {
		return nil
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (m *mockBackend) Get(ctx context.Context, path string, out any) error {
	return m.handle("GET", path, nil, out)
}

func (m *mockBackend) Post(ctx context.Context, path string, body, out any) error {
	return m.handle("POST", path, body, out)
}

func (m *mockBackend) Put(ctx context.Context, path string, body, out any) error {
	return m.handle("PUT", path, body, out)
}

func (m *mockBackend) Patch(ctx context.Context, path string, body, out any) error {
	return m.handle("PATCH", path, body, out)
}

func (m *mockBackend) Delete(ctx context.Context, path string) error {
	return m.handle("DELETE", path, nil, nil)
}

func (m *mockBackend) Upload(ctx context.Context, path string, file secondary.UploadFile, out any) error {
	data, err := io.ReadAll(file.Body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.uploads = append(m.uploads, string(data))
	m.mu.Unlock()
	return m.handle("UPLOAD", path, file.Name+" "+file.ContentType, out)
}

// mockDownload is a binary response served by Download, registered with
// on("DOWNLOAD", path, mockDownload{...}).
type mockDownload struct {
	ContentType string
	Body        []byte
}

func (m *mockBackend) Download(ctx context.Context, path string, w io.Writer) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, backendCall{Method: "DOWNLOAD", Path: path})
	key := "DOWNLOAD " + path
	if err, ok := m.errs[key]; ok {
		m.mu.Unlock()
		return "", err
	}
	d, ok := m.responses[key].(mockDownload)
	m.mu.Unlock()

	if !ok {
		return "", &apperr.APIError{Status: 404, Method: "GET", Path: path}
	}
	if _, err := w.Write(d.Body); err != nil {
		return "", err
	}
	return d.ContentType, nil
}

func (m *mockBackend) Origin() string {
	return m.origin
}

// count returns how many calls matched method and path.
func (m *mockBackend) count(method, path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// mutations returns the calls other than GET, in order.
func (m *mockBackend) mutations() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, c := range m.calls {
		if c.Method != "GET" {
			out = append(out, c.Method+" "+c.Path)
		}
	}
	return out
}

func (m *mockBackend) total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockBackend) lastBody(method, path string) any {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.calls) - 1; i >= 0; i-- {
		if m.calls[i].Method == method && m.calls[i].Path == path {
			return m.calls[i].Body
		}
	}
	return nil
}

// ============================================================================
// Mock Repositories
// ============================================================================

// mockSettingsRepository implements secondary.SettingsRepository for testing.
type mockSettingsRepository struct {
	values map[string]string
	getErr error
}

func newMockSettingsRepository() *mockSettingsRepository {
	return &mockSettingsRepository{values: make(map[string]string)}
}

func (m *mockSettingsRepository) Get(ctx context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockSettingsRepository) Set(ctx context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func (m *mockSettingsRepository) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *mockSettingsRepository) keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// mockUploadLogRepository implements secondary.UploadLogRepository for testing.
type mockUploadLogRepository struct {
	records   []*secondary.UploadRecord
	createErr error
}

func (m *mockUploadLogRepository) Create(ctx context.Context, record *secondary.UploadRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	record.ID = int64(len(m.records) + 1)
	record.CreatedAt = fmt.Sprintf("2025-01-0%dT10:00:00Z", record.ID)
	m.records = append(m.records, record)
	return nil
}

func (m *mockUploadLogRepository) List(ctx context.Context, filters secondary.UploadFilters) ([]*secondary.UploadRecord, error) {
	out := make([]*secondary.UploadRecord, 0, len(m.records))
	for i := len(m.records) - 1; i >= 0; i-- {
		out = append(out, m.records[i])
	}
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}
