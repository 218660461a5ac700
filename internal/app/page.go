package app

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/armazem/internal/core/apperr"
	"github.com/example/armazem/internal/core/filter"
	"github.com/example/armazem/internal/core/form"
	"github.com/example/armazem/internal/core/page"
	"github.com/example/armazem/internal/models"
	"github.com/example/armazem/internal/ports/primary"
	"github.com/example/armazem/internal/ports/secondary"
)

// Messages shown when the backend gives no detail.
const (
	MsgLoadFailed   = "Erro ao carregar dados"
	MsgSaveFailed   = "Erro ao guardar"
	MsgDeleteFailed = "Erro ao eliminar"
)

// ResourceDef describes one REST collection and how its page behaves.
type ResourceDef[R any] struct {
	Path    string // "/equipamentos"
	Created string // success messages
	Updated string
	Deleted string

	ID     func(R) string
	Search filter.Fields[R]

	// Lookups are the collections foreign keys resolve against ("/locais").
	Lookups []string

	NewForm  func() form.Form
	FormFrom func(R) form.Form // nil for create-only collections

	// Deletable is false for append-only collections.
	Deletable bool
}

// Page implements primary.ResourcePage for one collection.
type Page[R any] struct {
	def     ResourceDef[R]
	backend secondary.Backend
	logger  *zap.Logger

	mu        sync.Mutex
	state     page.State
	items     []R
	lookups   map[string][]models.LookupItem
	form      form.Form
	editingID string
	deleteID  string
	err       error
}

// NewPage creates a page over def.
func NewPage[R any](def ResourceDef[R], backend secondary.Backend, logger *zap.Logger) *Page[R] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Page[R]{
		def:     def,
		backend: backend,
		logger:  logger.With(zap.String("resource", def.Path)),
		state:   page.StateIdle,
		lookups: make(map[string][]models.LookupItem),
	}
}

var _ primary.ResourcePage[models.Equipment] = (*Page[models.Equipment])(nil)

// transition applies e under p.mu.
func (p *Page[R]) transition(e page.Event) error {
	next, result := page.Next(p.state, e)
	if err := result.Error(); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInvalidTransition, err)
	}
	p.logger.Debug("page transition",
		zap.String("from", string(p.state)),
		zap.String("to", string(next)),
	)
	p.state = next
	return nil
}

// Load fetches the collection and every lookup concurrently. The page
// becomes ready only when all of them have resolved.
func (p *Page[R]) Load(ctx context.Context) error {
	p.mu.Lock()
	if err := p.transition(page.EventLoad); err != nil {
		p.mu.Unlock()
		return err
	}
	p.mu.Unlock()

	return p.fetch(ctx)
}

// fetch runs with the page in the loading state.
func (p *Page[R]) fetch(ctx context.Context) error {
	var items []R
	lookups := make([][]models.LookupItem, len(p.def.Lookups))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.backend.Get(gctx, p.def.Path, &items)
	})
	for i, path := range p.def.Lookups {
		g.Go(func() error {
			return p.backend.Get(gctx, path, &lookups[i])
		})
	}
	err := g.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.err = fmt.Errorf("failed to load %s: %w", p.def.Path, err)
		_ = p.transition(page.EventFailed)
		return p.err
	}

	p.items = items
	for i, path := range p.def.Lookups {
		p.lookups[path] = lookups[i]
	}
	p.err = nil
	return p.transition(page.EventLoaded)
}

// Items returns a copy of the last fetched list.
func (p *Page[R]) Items() []R {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.items)
}

// Filter returns the loaded items whose search fields contain term.
func (p *Page[R]) Filter(term string) []R {
	return filter.Apply(p.Items(), term, p.def.Search)
}

// Get returns the loaded record with the given id.
func (p *Page[R]) Get(id string) (R, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.find(id)
}

func (p *Page[R]) find(id string) (R, error) {
	for _, item := range p.items {
		if p.def.ID(item) == id {
			return item, nil
		}
	}
	var zero R
	return zero, fmt.Errorf("%s/%s: %w", p.def.Path, id, apperr.ErrNotFound)
}

// Lookup returns a copy of the lookup list loaded from path.
func (p *Page[R]) Lookup(path string) []models.LookupItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.lookups[path])
}

// LookupLabel renders id against the lookup list loaded from path, or "-".
func (p *Page[R]) LookupLabel(path, id string) string {
	if id == "" {
		return "-"
	}
	for _, item := range p.Lookup(path) {
		if item.ID == id {
			return item.Label()
		}
	}
	return "-"
}

// OpenCreate opens the dialog with the collection's defaults.
func (p *Page[R]) OpenCreate() (form.Form, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.transition(page.EventOpenDialog); err != nil {
		return nil, err
	}
	p.form = p.def.NewForm()
	p.editingID = ""
	return p.form, nil
}

// OpenEdit opens the dialog seeded from the record with the given id.
func (p *Page[R]) OpenEdit(id string) (form.Form, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.def.FormFrom == nil {
		return nil, fmt.Errorf("%s records cannot be edited", p.def.Path)
	}
	record, err := p.find(id)
	if err != nil {
		return nil, err
	}
	if err := p.transition(page.EventOpenDialog); err != nil {
		return nil, err
	}
	p.form = p.def.FormFrom(record)
	p.editingID = id
	return p.form, nil
}

// CloseDialog discards the open form.
func (p *Page[R]) CloseDialog() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.transition(page.EventClose); err != nil {
		return err
	}
	p.form = nil
	p.editingID = ""
	return nil
}

// Submit validates the open form, creates or updates the record and
// re-fetches the list. A validation failure keeps the dialog open and
// sends nothing.
func (p *Page[R]) Submit(ctx context.Context) (string, error) {
	p.mu.Lock()
	if err := p.transition(page.EventSubmit); err != nil {
		p.mu.Unlock()
		return "", err
	}
	f, id := p.form, p.editingID

	if err := form.Validate(f); err != nil {
		_ = p.transition(page.EventOpenDialog)
		p.mu.Unlock()
		return "", err
	}
	p.mu.Unlock()

	body := form.Payload(f)
	var (
		err error
		msg string
	)
	if id == "" {
		err = p.backend.Post(ctx, p.def.Path, body, nil)
		msg = p.def.Created
	} else {
		err = p.backend.Put(ctx, p.def.Path+"/"+id, body, nil)
		msg = p.def.Updated
	}

	p.mu.Lock()
	if err != nil {
		p.err = fmt.Errorf("failed to save %s: %w", f.Title(), err)
		_ = p.transition(page.EventFailed)
		p.mu.Unlock()
		return "", p.err
	}
	p.logger.Info("record saved", zap.String("id", id))
	p.form = nil
	p.editingID = ""
	if err := p.transition(page.EventLoad); err != nil {
		p.mu.Unlock()
		return "", err
	}
	p.mu.Unlock()

	if err := p.fetch(ctx); err != nil {
		return msg, reloadFailed(err)
	}
	return msg, nil
}

// RequestDelete asks for confirmation before deleting id. Nothing is sent.
func (p *Page[R]) RequestDelete(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.def.Deletable {
		return fmt.Errorf("%s records cannot be deleted", p.def.Path)
	}
	if _, err := p.find(id); err != nil {
		return err
	}
	if err := p.transition(page.EventAskDelete); err != nil {
		return err
	}
	p.deleteID = id
	return nil
}

// CancelDelete abandons the pending deletion.
func (p *Page[R]) CancelDelete() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.transition(page.EventClose); err != nil {
		return err
	}
	p.deleteID = ""
	return nil
}

// ConfirmDelete deletes the pending record and re-fetches the list.
func (p *Page[R]) ConfirmDelete(ctx context.Context) (string, error) {
	p.mu.Lock()
	if p.deleteID == "" {
		p.mu.Unlock()
		return "", apperr.ErrNoSelection
	}
	if err := p.transition(page.EventConfirm); err != nil {
		p.mu.Unlock()
		return "", err
	}
	id := p.deleteID
	p.mu.Unlock()

	err := p.backend.Delete(ctx, p.def.Path+"/"+id)

	p.mu.Lock()
	p.deleteID = ""
	if err != nil {
		p.err = fmt.Errorf("failed to delete %s/%s: %w", p.def.Path, id, err)
		_ = p.transition(page.EventFailed)
		p.mu.Unlock()
		return "", p.err
	}
	p.logger.Info("record deleted", zap.String("id", id))
	if err := p.transition(page.EventLoad); err != nil {
		p.mu.Unlock()
		return "", err
	}
	p.mu.Unlock()

	if err := p.fetch(ctx); err != nil {
		return p.def.Deleted, reloadFailed(err)
	}
	return p.def.Deleted, nil
}

// reloadFailed marks a re-fetch failure after a mutation the backend accepted.
func reloadFailed(err error) error {
	return fmt.Errorf("%w: %w", apperr.ErrReloadFailed, err)
}

// State returns the lifecycle state.
func (p *Page[R]) State() page.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Err returns the error recorded by the last failed action.
func (p *Page[R]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Form returns the open form, or nil.
func (p *Page[R]) Form() form.Form {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form
}
