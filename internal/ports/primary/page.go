package primary

import (
	"context"

	"github.com/example/armazem/internal/core/form"
	"github.com/example/armazem/internal/core/page"
	"github.com/example/armazem/internal/models"
)

// ResourcePage defines the primary port of a list page over records of type R:
// one entity list plus the lookup lists its foreign keys resolve against.
type ResourcePage[R any] interface {
	// Load fetches the entity list and every lookup concurrently.
	Load(ctx context.Context) error

	// Items returns the last fetched list.
	Items() []R

	// Filter returns the items matching term in the page's search fields.
	Filter(term string) []R

	// Get returns the loaded record with the given id.
	Get(id string) (R, error)

	// LookupLabel renders a foreign key against the lookup list loaded from path.
	LookupLabel(path, id string) string

	// Lookup returns the lookup list loaded from path.
	Lookup(path string) []models.LookupItem

	// OpenCreate opens the dialog with a defaulted form.
	OpenCreate() (form.Form, error)

	// OpenEdit opens the dialog seeded from the record with the given id.
	OpenEdit(id string) (form.Form, error)

	// CloseDialog discards the open form.
	CloseDialog() error

	// Submit validates the open form, sends it and re-fetches the list.
	// It returns the success message.
	Submit(ctx context.Context) (string, error)

	// RequestDelete asks for confirmation before deleting id.
	RequestDelete(id string) error

	// CancelDelete abandons a pending deletion.
	CancelDelete() error

	// ConfirmDelete deletes the pending record and re-fetches the list.
	ConfirmDelete(ctx context.Context) (string, error)

	// State returns the page lifecycle state.
	State() page.State

	// Err returns the error recorded by the last failed action.
	Err() error
}

// MaintenanceRequest toggles the maintenance flag of an equipment item.
type MaintenanceRequest struct {
	ID              string
	EmManutencao    bool
	DescricaoAvaria string
}
