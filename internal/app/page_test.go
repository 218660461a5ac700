package app

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/example/armazem/internal/core/apperr"
	"github.com/example/armazem/internal/core/form"
	"github.com/example/armazem/internal/core/page"
	"github.com/example/armazem/internal/models"
	"github.com/example/armazem/internal/ports/primary"
)

func equipmentBackend() *mockBackend {
	return newMockBackend().
		on("GET", PathEquipamentos, []models.Equipment{
			{ID: "e1", Codigo: "ABC-1", Descricao: "Betoneira", Marca: "Imer", LocalID: "l1", DataAquisicao: "2023-05-17T00:00:00"},
			{ID: "e2", Codigo: "XYZ-2", Descricao: "Gerador", Marca: "Honda"},
		}).
		on("GET", PathLocais, []models.Location{{ID: "l1", Codigo: "ARM", Nome: "Armazém central"}}).
		on("GET", PathObras, []models.Site{{ID: "o1", Codigo: "OB-7", Nome: "Escola"}})
}

func loadedEquipmentPage(t *testing.T, backend *mockBackend) *Page[models.Equipment] {
	t.Helper()
	p := NewPage(EquipmentDef(), backend, nil)
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return p
}

func codes(items []models.Equipment) []string {
	out := make([]string, len(items))
	for i, e := range items {
		out[i] = e.Codigo
	}
	return out
}

// ============================================================================
// Load and Filter
// ============================================================================

func TestPage_LoadFetchesEntityAndLookups(t *testing.T) {
	backend := equipmentBackend()
	p := loadedEquipmentPage(t, backend)

	if p.State() != page.StateReady {
		t.Errorf("State = %v, want ready", p.State())
	}
	if len(p.Items()) != 2 {
		t.Errorf("expected 2 items, got %d", len(p.Items()))
	}
	for _, path := range []string{PathEquipamentos, PathLocais, PathObras} {
		if n := backend.count("GET", path); n != 1 {
			t.Errorf("GET %s called %d times, want 1", path, n)
		}
	}
	if got := p.LookupLabel(PathLocais, "l1"); got != "ARM - Armazém central" {
		t.Errorf("LookupLabel = %q", got)
	}
	if got := p.LookupLabel(PathLocais, "missing"); got != "-" {
		t.Errorf("unresolved LookupLabel = %q, want -", got)
	}
	if got := p.LookupLabel(PathObras, ""); got != "-" {
		t.Errorf("empty LookupLabel = %q, want -", got)
	}
}

func TestPage_LoadFailureEntersErrorState(t *testing.T) {
	backend := equipmentBackend().fail("GET", PathLocais, errors.New("connection refused"))
	p := NewPage(EquipmentDef(), backend, nil)

	err := p.Load(context.Background())
	if err == nil {
		t.Fatal("expected error when a lookup fails")
	}
	if p.State() != page.StateError {
		t.Errorf("State = %v, want error", p.State())
	}
	if p.Err() == nil {
		t.Error("expected recorded error")
	}
	if len(p.Items()) != 0 {
		t.Error("no items should be applied from a failed load")
	}

	// retry is allowed from the error state
	backend.mu.Lock()
	delete(backend.errs, "GET "+PathLocais)
	backend.mu.Unlock()
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if p.State() != page.StateReady {
		t.Errorf("State after retry = %v", p.State())
	}
}

func TestPage_Filter(t *testing.T) {
	p := loadedEquipmentPage(t, equipmentBackend())

	tests := []struct {
		term string
		want []string
	}{
		{"ABC", []string{"ABC-1"}},
		{"abc", []string{"ABC-1"}},
		{"honda", []string{"XYZ-2"}},
		{"betoneira", []string{"ABC-1"}},
		{"", []string{"ABC-1", "XYZ-2"}},
		{"nada", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			if got := codes(p.Filter(tt.term)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

// ============================================================================
// Create and Edit
// ============================================================================

func TestPage_CreatePostsOnceThenRefetches(t *testing.T) {
	backend := equipmentBackend()
	p := loadedEquipmentPage(t, backend)

	f, err := p.OpenCreate()
	if err != nil {
		t.Fatalf("OpenCreate failed: %v", err)
	}
	if p.State() != page.StateDialogOpen {
		t.Errorf("State = %v, want dialog_open", p.State())
	}
	eq := f.(*form.Equipment)
	eq.Codigo = "NEW-1"
	eq.Descricao = "Compressor"

	msg, err := p.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if msg != "Equipamento criado" {
		t.Errorf("msg = %q", msg)
	}
	if got := backend.mutations(); !reflect.DeepEqual(got, []string{"POST /equipamentos"}) {
		t.Errorf("mutations = %v, want exactly one POST", got)
	}
	if n := backend.count("GET", PathEquipamentos); n != 2 {
		t.Errorf("list fetched %d times, want 2 (initial + re-fetch)", n)
	}

	body := backend.lastBody("POST", PathEquipamentos).(map[string]any)
	if body["codigo"] != "NEW-1" || body["local_id"] != nil || body["data_aquisicao"] != "" || body["estado_conservacao"] != "Bom" || body["ativo"] != true {
		t.Errorf("unexpected POST body %v", body)
	}
	if p.State() != page.StateReady {
		t.Errorf("State = %v, want ready", p.State())
	}
	if p.Form() != nil {
		t.Error("dialog should be closed after submit")
	}
}

func TestPage_EditPutsById(t *testing.T) {
	backend := equipmentBackend()
	p := loadedEquipmentPage(t, backend)

	f, err := p.OpenEdit("e1")
	if err != nil {
		t.Fatalf("OpenEdit failed: %v", err)
	}
	eq := f.(*form.Equipment)
	if eq.DataAquisicao != "2023-05-17" {
		t.Errorf("date not truncated: %q", eq.DataAquisicao)
	}
	eq.Marca = "Imer Group"

	msg, err := p.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if msg != "Equipamento atualizado" {
		t.Errorf("msg = %q", msg)
	}

	if got := backend.mutations(); !reflect.DeepEqual(got, []string{"PUT /equipamentos/e1"}) {
		t.Errorf("mutations = %v, want exactly one PUT to e1", got)
	}
	body := backend.lastBody("PUT", "/equipamentos/e1").(map[string]any)
	if body["marca"] != "Imer Group" || body["local_id"] != "l1" {
		t.Errorf("unexpected PUT body %v", body)
	}
}

func TestPage_SaveSucceedsWhenReloadFails(t *testing.T) {
	backend := equipmentBackend()
	p := loadedEquipmentPage(t, backend)

	f, err := p.OpenCreate()
	if err != nil {
		t.Fatal(err)
	}
	eq := f.(*form.Equipment)
	eq.Codigo = "NEW-1"
	eq.Descricao = "Compressor"

	backend.fail("GET", PathLocais, &apperr.APIError{Status: 500, Method: "GET", Path: PathLocais})

	msg, err := p.Submit(context.Background())
	if msg != "Equipamento criado" {
		t.Errorf("msg = %q, the record was created", msg)
	}
	if !errors.Is(err, apperr.ErrReloadFailed) {
		t.Fatalf("expected ErrReloadFailed, got %v", err)
	}
	if got := backend.mutations(); !reflect.DeepEqual(got, []string{"POST /equipamentos"}) {
		t.Errorf("mutations = %v, want exactly one POST", got)
	}
	if p.State() != page.StateError {
		t.Errorf("State = %v, want error", p.State())
	}
}

func TestPage_ItemsIsACopy(t *testing.T) {
	p := loadedEquipmentPage(t, equipmentBackend())

	items := p.Items()
	items[0].Codigo = "CHANGED"
	all := p.Filter("")
	all[1].Codigo = "CHANGED"
	p.Lookup(PathLocais)[0].Nome = "CHANGED"

	if got := codes(p.Items()); !reflect.DeepEqual(got, []string{"ABC-1", "XYZ-2"}) {
		t.Errorf("page items changed through a returned slice: %v", got)
	}
	if got := p.LookupLabel(PathLocais, "l1"); got != "ARM - Armazém central" {
		t.Errorf("lookup changed through a returned slice: %q", got)
	}
}

func TestPage_ValidationBlocksSubmission(t *testing.T) {
	backend := equipmentBackend()
	p := loadedEquipmentPage(t, backend)
	before := backend.total()

	if _, err := p.OpenCreate(); err != nil {
		t.Fatal(err)
	}
	_, err := p.Submit(context.Background())

	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if backend.total() != before {
		t.Errorf("no request expected, saw %d", backend.total()-before)
	}
	if p.State() != page.StateDialogOpen {
		t.Errorf("State = %v, want dialog_open so the user can correct", p.State())
	}
}

func TestPage_SubmitFailureReturnsToReady(t *testing.T) {
	backend := equipmentBackend().fail("POST", PathEquipamentos, &apperr.APIError{Status: 400, Detail: "Código já existe"})
	p := loadedEquipmentPage(t, backend)

	f, _ := p.OpenCreate()
	f.(*form.Equipment).Codigo = "ABC-1"
	f.(*form.Equipment).Descricao = "Duplicado"

	_, err := p.Submit(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if got := apperr.Message(err, MsgSaveFailed); got != "Código já existe" {
		t.Errorf("Message = %q", got)
	}
	if p.State() != page.StateReady {
		t.Errorf("State = %v, want ready", p.State())
	}
	if n := backend.count("GET", PathEquipamentos); n != 1 {
		t.Errorf("no re-fetch expected after a failed save, got %d list fetches", n)
	}
}

func TestPage_CloseDialog(t *testing.T) {
	p := loadedEquipmentPage(t, equipmentBackend())

	if _, err := p.OpenEdit("e2"); err != nil {
		t.Fatal(err)
	}
	if err := p.CloseDialog(); err != nil {
		t.Fatal(err)
	}
	if p.State() != page.StateReady || p.Form() != nil {
		t.Errorf("dialog not closed: state=%v", p.State())
	}
}

func TestPage_OpenEditUnknownID(t *testing.T) {
	p := loadedEquipmentPage(t, equipmentBackend())

	_, err := p.OpenEdit("nope")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if p.State() != page.StateReady {
		t.Errorf("State = %v", p.State())
	}
}

func TestPage_DialogRequiresLoad(t *testing.T) {
	p := NewPage(EquipmentDef(), equipmentBackend(), nil)

	if _, err := p.OpenCreate(); !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

// ============================================================================
// Delete
// ============================================================================

func TestPage_DeleteRequiresConfirmation(t *testing.T) {
	backend := equipmentBackend()
	p := loadedEquipmentPage(t, backend)

	if err := p.RequestDelete("e2"); err != nil {
		t.Fatalf("RequestDelete failed: %v", err)
	}
	if p.State() != page.StateConfirmDelete {
		t.Errorf("State = %v, want confirm_delete", p.State())
	}
	if n := backend.count("DELETE", "/equipamentos/e2"); n != 0 {
		t.Fatalf("DELETE sent before confirmation")
	}

	msg, err := p.ConfirmDelete(context.Background())
	if err != nil {
		t.Fatalf("ConfirmDelete failed: %v", err)
	}
	if msg != "Equipamento eliminado" {
		t.Errorf("msg = %q", msg)
	}
	if got := backend.mutations(); !reflect.DeepEqual(got, []string{"DELETE /equipamentos/e2"}) {
		t.Errorf("mutations = %v", got)
	}
	if n := backend.count("GET", PathEquipamentos); n != 2 {
		t.Errorf("expected re-fetch after delete, got %d list fetches", n)
	}
}

func TestPage_DeleteSucceedsWhenReloadFails(t *testing.T) {
	backend := equipmentBackend()
	p := loadedEquipmentPage(t, backend)

	if err := p.RequestDelete("e2"); err != nil {
		t.Fatal(err)
	}
	backend.fail("GET", PathEquipamentos, errors.New("connection reset"))

	msg, err := p.ConfirmDelete(context.Background())
	if msg != "Equipamento eliminado" {
		t.Errorf("msg = %q", msg)
	}
	if !errors.Is(err, apperr.ErrReloadFailed) {
		t.Errorf("expected ErrReloadFailed, got %v", err)
	}
}

func TestPage_CancelDelete(t *testing.T) {
	backend := equipmentBackend()
	p := loadedEquipmentPage(t, backend)

	if err := p.RequestDelete("e1"); err != nil {
		t.Fatal(err)
	}
	if err := p.CancelDelete(); err != nil {
		t.Fatal(err)
	}
	if p.State() != page.StateReady {
		t.Errorf("State = %v", p.State())
	}
	if _, err := p.ConfirmDelete(context.Background()); !errors.Is(err, apperr.ErrNoSelection) {
		t.Errorf("expected ErrNoSelection after cancel, got %v", err)
	}
	if len(backend.mutations()) != 0 {
		t.Errorf("no mutation expected, got %v", backend.mutations())
	}
}

func TestPage_DeleteFailure(t *testing.T) {
	backend := equipmentBackend().fail("DELETE", "/equipamentos/e1", &apperr.APIError{Status: 500})
	p := loadedEquipmentPage(t, backend)

	_ = p.RequestDelete("e1")
	_, err := p.ConfirmDelete(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if got := apperr.Message(err, MsgDeleteFailed); got != MsgDeleteFailed {
		t.Errorf("Message = %q, want generic fallback", got)
	}
	if p.State() != page.StateReady {
		t.Errorf("State = %v, want ready", p.State())
	}
}

// ============================================================================
// Create-only collections and maintenance
// ============================================================================

func TestPage_MovementsAreAppendOnly(t *testing.T) {
	today := func() time.Time { return time.Date(2025, 3, 9, 15, 0, 0, 0, time.UTC) }
	backend := newMockBackend().
		on("GET", PathMovimentosStock, []models.StockMovement{{ID: "s1", MaterialID: "m1", Quantidade: 4}}).
		on("GET", PathMateriais, []models.Material{{ID: "m1", Codigo: "CIM", Descricao: "Cimento"}}).
		on("GET", PathObras, []models.Site{})

	p := NewPage(StockMovementDef(today), backend, nil)
	if err := p.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	if _, err := p.OpenEdit("s1"); err == nil {
		t.Error("movements must not be editable")
	}
	if err := p.RequestDelete("s1"); err == nil {
		t.Error("movements must not be deletable")
	}

	f, err := p.OpenCreate()
	if err != nil {
		t.Fatal(err)
	}
	sm := f.(*form.StockMovement)
	if sm.Data != "2025-03-09" {
		t.Errorf("default date = %q", sm.Data)
	}
	sm.MaterialID = "m1"
	sm.Quantidade = 10

	if _, err := p.Submit(context.Background()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	body := backend.lastBody("POST", PathMovimentosStock).(map[string]any)
	if body["obra_id"] != nil || body["quantidade"] != 10.0 {
		t.Errorf("unexpected body %v", body)
	}
	if got := p.LookupLabel(PathMateriais, "m1"); got != "CIM - Cimento" {
		t.Errorf("LookupLabel = %q", got)
	}
}

func TestEquipmentPage_SetMaintenance(t *testing.T) {
	backend := equipmentBackend()
	p := NewEquipmentPage(backend, nil)
	if err := p.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	msg, err := p.SetMaintenance(context.Background(), primary.MaintenanceRequest{
		ID:              "e1",
		EmManutencao:    true,
		DescricaoAvaria: "Motor não arranca",
	})
	if err != nil {
		t.Fatalf("SetMaintenance failed: %v", err)
	}
	if msg != msgMaintenanceOn {
		t.Errorf("msg = %q", msg)
	}

	body := backend.lastBody("PATCH", "/equipamentos/e1/manutencao").(models.Maintenance)
	if !body.EmManutencao || body.DescricaoAvaria != "Motor não arranca" {
		t.Errorf("unexpected PATCH body %+v", body)
	}
	if p.State() != page.StateReady {
		t.Errorf("State = %v", p.State())
	}
	if n := backend.count("GET", PathEquipamentos); n != 2 {
		t.Errorf("expected re-fetch, got %d", n)
	}

	// back in service drops the fault description
	_, err = p.SetMaintenance(context.Background(), primary.MaintenanceRequest{ID: "e1", DescricaoAvaria: "ignored"})
	if err != nil {
		t.Fatal(err)
	}
	body = backend.lastBody("PATCH", "/equipamentos/e1/manutencao").(models.Maintenance)
	if body.EmManutencao || body.DescricaoAvaria != "" {
		t.Errorf("unexpected PATCH body %+v", body)
	}
}
