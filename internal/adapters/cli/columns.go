package cli

import (
	"strconv"

	"github.com/fatih/color"

	"github.com/example/armazem/internal/core/form"
	"github.com/example/armazem/internal/models"
)

// ============================================================================
// Badges
// ============================================================================

// EstadoBadge colors a conservation state.
func EstadoBadge(estado string) string {
	switch estado {
	case models.EstadoBom:
		return color.New(color.FgGreen).Sprint(estado)
	case models.EstadoRazoavel:
		return color.New(color.FgYellow).Sprint(estado)
	case models.EstadoMau:
		return color.New(color.FgRed).Sprint(estado)
	}
	return orDash(estado)
}

// ActiveMark renders an active flag.
func ActiveMark(active bool) string {
	if active {
		return color.New(color.FgGreen).Sprint("✓")
	}
	return color.New(color.FgRed).Sprint("✗")
}

// MaintenanceMark flags equipment under repair.
func MaintenanceMark(e models.Equipment) string {
	if !e.EmManutencao {
		return "-"
	}
	return color.New(color.FgYellow).Sprint("em manutenção")
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ============================================================================
// Column sets
// ============================================================================

// EquipmentColumns lists equipment the way the equipment page does.
func EquipmentColumns(label Labeler) []Column[models.Equipment] {
	return []Column[models.Equipment]{
		{"ID", func(e models.Equipment) string { return e.ID }},
		{"CÓDIGO", func(e models.Equipment) string { return e.Codigo }},
		{"DESCRIÇÃO", func(e models.Equipment) string { return e.Descricao }},
		{"MARCA", func(e models.Equipment) string { return orDash(e.Marca) }},
		{"ESTADO", func(e models.Equipment) string { return EstadoBadge(e.EstadoConservacao) }},
		{"LOCAL", func(e models.Equipment) string { return label("/locais", e.LocalID) }},
		{"OBRA", func(e models.Equipment) string { return label("/obras", e.ObraID) }},
		{"MANUTENÇÃO", MaintenanceMark},
		{"ATIVO", func(e models.Equipment) string { return ActiveMark(e.IsActive()) }},
	}
}

// VehicleColumns lists vehicles.
func VehicleColumns(label Labeler) []Column[models.Vehicle] {
	return []Column[models.Vehicle]{
		{"ID", func(v models.Vehicle) string { return v.ID }},
		{"MATRÍCULA", func(v models.Vehicle) string { return v.Matricula }},
		{"MARCA", func(v models.Vehicle) string { return orDash(v.Marca) }},
		{"MODELO", func(v models.Vehicle) string { return orDash(v.Modelo) }},
		{"COMBUSTÍVEL", func(v models.Vehicle) string { return orDash(v.Combustivel) }},
		{"OBRA", func(v models.Vehicle) string { return label("/obras", v.ObraID) }},
		{"ATIVA", func(v models.Vehicle) string { return ActiveMark(v.IsActive()) }},
	}
}

// MaterialColumns lists materials; stock under the minimum is shown in red.
func MaterialColumns() []Column[models.Material] {
	return []Column[models.Material]{
		{"ID", func(m models.Material) string { return m.ID }},
		{"CÓDIGO", func(m models.Material) string { return m.Codigo }},
		{"DESCRIÇÃO", func(m models.Material) string { return m.Descricao }},
		{"UNIDADE", func(m models.Material) string { return orDash(m.Unidade) }},
		{"STOCK", func(m models.Material) string {
			if m.BelowMinimum() {
				return color.New(color.FgRed).Sprint(number(m.StockAtual))
			}
			return number(m.StockAtual)
		}},
		{"MÍNIMO", func(m models.Material) string { return number(m.StockMinimo) }},
		{"ATIVO", func(m models.Material) string { return ActiveMark(m.IsActive()) }},
	}
}

// SiteColumns lists construction sites.
func SiteColumns() []Column[models.Site] {
	return []Column[models.Site]{
		{"ID", func(s models.Site) string { return s.ID }},
		{"CÓDIGO", func(s models.Site) string { return s.Codigo }},
		{"NOME", func(s models.Site) string { return s.Nome }},
		{"CLIENTE", func(s models.Site) string { return orDash(s.Cliente) }},
		{"ENDEREÇO", func(s models.Site) string { return orDash(s.Endereco) }},
		{"ESTADO", func(s models.Site) string { return orDash(s.Estado) }},
	}
}

// LocationColumns lists warehouse locations.
func LocationColumns() []Column[models.Location] {
	return []Column[models.Location]{
		{"ID", func(l models.Location) string { return l.ID }},
		{"CÓDIGO", func(l models.Location) string { return l.Codigo }},
		{"NOME", func(l models.Location) string { return l.Nome }},
		{"TIPO", func(l models.Location) string { return orDash(l.Tipo) }},
	}
}

// AssetMovementColumns lists equipment and vehicle movements.
func AssetMovementColumns(label Labeler) []Column[models.AssetMovement] {
	return []Column[models.AssetMovement]{
		{"DATA", func(m models.AssetMovement) string { return form.DateOnly(m.Data) }},
		{"TIPO", func(m models.AssetMovement) string { return m.TipoMovimento }},
		{"RECURSO", func(m models.AssetMovement) string {
			if m.TipoRecurso == models.RecursoViatura {
				return label("/viaturas", m.RecursoID)
			}
			return label("/equipamentos", m.RecursoID)
		}},
		{"OBRA", func(m models.AssetMovement) string { return label("/obras", m.ObraID) }},
		{"RESPONSÁVEL", func(m models.AssetMovement) string { return orDash(m.Responsavel) }},
	}
}

// StockMovementColumns lists material movements.
func StockMovementColumns(label Labeler) []Column[models.StockMovement] {
	return []Column[models.StockMovement]{
		{"DATA", func(m models.StockMovement) string { return form.DateOnly(m.Data) }},
		{"TIPO", func(m models.StockMovement) string { return m.TipoMovimento }},
		{"MATERIAL", func(m models.StockMovement) string { return label("/materiais", m.MaterialID) }},
		{"QUANTIDADE", func(m models.StockMovement) string { return number(m.Quantidade) }},
		{"OBRA", func(m models.StockMovement) string { return label("/obras", m.ObraID) }},
		{"RESPONSÁVEL", func(m models.StockMovement) string { return orDash(m.Responsavel) }},
	}
}

// VehicleKmColumns lists trips.
func VehicleKmColumns(label Labeler) []Column[models.VehicleKmMovement] {
	return []Column[models.VehicleKmMovement]{
		{"DATA", func(m models.VehicleKmMovement) string { return form.DateOnly(m.Data) }},
		{"VIATURA", func(m models.VehicleKmMovement) string { return label("/viaturas", m.ViaturaID) }},
		{"KM INICIAL", func(m models.VehicleKmMovement) string { return number(m.KmInicial) }},
		{"KM FINAL", func(m models.VehicleKmMovement) string { return number(m.KmFinal) }},
		{"DISTÂNCIA", func(m models.VehicleKmMovement) string { return number(m.Distance()) }},
		{"CONDUTOR", func(m models.VehicleKmMovement) string { return orDash(m.Condutor) }},
	}
}
