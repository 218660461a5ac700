package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/armazem/internal/core/form"
	"github.com/example/armazem/internal/core/page"
	"github.com/example/armazem/internal/models"
	"github.com/example/armazem/internal/ports/primary"
	"github.com/example/armazem/internal/ports/secondary"
)

// Collection paths.
const (
	PathEquipamentos     = "/equipamentos"
	PathViaturas         = "/viaturas"
	PathMateriais        = "/materiais"
	PathObras            = "/obras"
	PathLocais           = "/locais"
	PathMovimentos       = "/movimentos"
	PathMovimentosStock  = "/movimentos/stock"
	PathMovimentosKm     = "/movimentos/viaturas"
	PathSummary          = "/summary"
	PathAlertsCheck      = "/alerts/check"
	maintenanceSubpath   = "/manutencao"
	dateOnlyLayout       = "2006-01-02"
	msgMaintenanceOn     = "Equipamento marcado em manutenção"
	msgMaintenanceOff    = "Equipamento disponível"
	msgMovementCreated   = "Movimento registado"
	msgStockCreated      = "Movimento de stock registado"
	msgVehicleKmCreated  = "Quilómetros registados"
)

// ============================================================================
// Definitions
// ============================================================================

// EquipmentDef describes /equipamentos.
func EquipmentDef() ResourceDef[models.Equipment] {
	return ResourceDef[models.Equipment]{
		Path:    PathEquipamentos,
		Created: "Equipamento criado",
		Updated: "Equipamento atualizado",
		Deleted: "Equipamento eliminado",
		ID:      func(e models.Equipment) string { return e.ID },
		Search: func(e models.Equipment) []string {
			return []string{e.Codigo, e.Descricao, e.Marca}
		},
		Lookups:   []string{PathLocais, PathObras},
		NewForm:   func() form.Form { return form.NewEquipment() },
		FormFrom:  func(e models.Equipment) form.Form { return form.EquipmentFrom(e) },
		Deletable: true,
	}
}

// VehicleDef describes /viaturas.
func VehicleDef() ResourceDef[models.Vehicle] {
	return ResourceDef[models.Vehicle]{
		Path:    PathViaturas,
		Created: "Viatura criada",
		Updated: "Viatura atualizada",
		Deleted: "Viatura eliminada",
		ID:      func(v models.Vehicle) string { return v.ID },
		Search: func(v models.Vehicle) []string {
			return []string{v.Matricula, v.Marca, v.Modelo}
		},
		Lookups:   []string{PathObras},
		NewForm:   func() form.Form { return form.NewVehicle() },
		FormFrom:  func(v models.Vehicle) form.Form { return form.VehicleFrom(v) },
		Deletable: true,
	}
}

// MaterialDef describes /materiais.
func MaterialDef() ResourceDef[models.Material] {
	return ResourceDef[models.Material]{
		Path:    PathMateriais,
		Created: "Material criado",
		Updated: "Material atualizado",
		Deleted: "Material eliminado",
		ID:      func(m models.Material) string { return m.ID },
		Search: func(m models.Material) []string {
			return []string{m.Codigo, m.Descricao}
		},
		NewForm:   func() form.Form { return form.NewMaterial() },
		FormFrom:  func(m models.Material) form.Form { return form.MaterialFrom(m) },
		Deletable: true,
	}
}

// SiteDef describes /obras.
func SiteDef() ResourceDef[models.Site] {
	return ResourceDef[models.Site]{
		Path:    PathObras,
		Created: "Obra criada",
		Updated: "Obra atualizada",
		Deleted: "Obra eliminada",
		ID:      func(s models.Site) string { return s.ID },
		Search: func(s models.Site) []string {
			return []string{s.Codigo, s.Nome, s.Cliente}
		},
		NewForm:   func() form.Form { return form.NewSite() },
		FormFrom:  func(s models.Site) form.Form { return form.SiteFrom(s) },
		Deletable: true,
	}
}

// LocationDef describes /locais.
func LocationDef() ResourceDef[models.Location] {
	return ResourceDef[models.Location]{
		Path:    PathLocais,
		Created: "Local criado",
		Updated: "Local atualizado",
		Deleted: "Local eliminado",
		ID:      func(l models.Location) string { return l.ID },
		Search: func(l models.Location) []string {
			return []string{l.Codigo, l.Nome}
		},
		NewForm:   func() form.Form { return form.NewLocation() },
		FormFrom:  func(l models.Location) form.Form { return form.LocationFrom(l) },
		Deletable: true,
	}
}

// Movements are append-only: they are listed and created, never edited or deleted.

// AssetMovementDef describes /movimentos.
func AssetMovementDef(today func() time.Time) ResourceDef[models.AssetMovement] {
	return ResourceDef[models.AssetMovement]{
		Path:    PathMovimentos,
		Created: msgMovementCreated,
		ID:      func(m models.AssetMovement) string { return m.ID },
		Search: func(m models.AssetMovement) []string {
			return []string{m.TipoRecurso, m.TipoMovimento, m.Responsavel}
		},
		Lookups: []string{PathEquipamentos, PathViaturas, PathObras},
		NewForm: func() form.Form { return form.NewAssetMovement(today().Format(dateOnlyLayout)) },
	}
}

// StockMovementDef describes /movimentos/stock.
func StockMovementDef(today func() time.Time) ResourceDef[models.StockMovement] {
	return ResourceDef[models.StockMovement]{
		Path:    PathMovimentosStock,
		Created: msgStockCreated,
		ID:      func(m models.StockMovement) string { return m.ID },
		Search: func(m models.StockMovement) []string {
			return []string{m.TipoMovimento, m.Responsavel}
		},
		Lookups: []string{PathMateriais, PathObras},
		NewForm: func() form.Form { return form.NewStockMovement(today().Format(dateOnlyLayout)) },
	}
}

// VehicleKmDef describes /movimentos/viaturas.
func VehicleKmDef(today func() time.Time) ResourceDef[models.VehicleKmMovement] {
	return ResourceDef[models.VehicleKmMovement]{
		Path:    PathMovimentosKm,
		Created: msgVehicleKmCreated,
		ID:      func(m models.VehicleKmMovement) string { return m.ID },
		Search: func(m models.VehicleKmMovement) []string {
			return []string{m.Condutor, m.Observacoes}
		},
		Lookups: []string{PathViaturas},
		NewForm: func() form.Form { return form.NewVehicleKm(today().Format(dateOnlyLayout)) },
	}
}

// ============================================================================
// Equipment page
// ============================================================================

// EquipmentPage adds the maintenance toggle to the equipment list.
type EquipmentPage struct {
	*Page[models.Equipment]
}

// NewEquipmentPage creates the equipment page.
func NewEquipmentPage(backend secondary.Backend, logger *zap.Logger) *EquipmentPage {
	return &EquipmentPage{Page: NewPage(EquipmentDef(), backend, logger)}
}

// SetMaintenance marks an item as under maintenance (with the fault
// description) or back in service, then re-fetches the list.
func (p *EquipmentPage) SetMaintenance(ctx context.Context, req primary.MaintenanceRequest) (string, error) {
	p.mu.Lock()
	if _, err := p.find(req.ID); err != nil {
		p.mu.Unlock()
		return "", err
	}
	if err := p.transition(page.EventOpenDialog); err != nil {
		p.mu.Unlock()
		return "", err
	}
	_ = p.transition(page.EventSubmit)
	p.mu.Unlock()

	body := models.Maintenance{EmManutencao: req.EmManutencao}
	if req.EmManutencao {
		body.DescricaoAvaria = req.DescricaoAvaria
	}
	err := p.backend.Patch(ctx, PathEquipamentos+"/"+req.ID+maintenanceSubpath, body, nil)

	p.mu.Lock()
	if err != nil {
		p.err = fmt.Errorf("failed to update maintenance of %s: %w", req.ID, err)
		_ = p.transition(page.EventFailed)
		p.mu.Unlock()
		return "", p.err
	}
	_ = p.transition(page.EventLoad)
	p.mu.Unlock()

	msg := msgMaintenanceOff
	if req.EmManutencao {
		msg = msgMaintenanceOn
	}
	if err := p.fetch(ctx); err != nil {
		return msg, reloadFailed(err)
	}
	return msg, nil
}
