package models

// MovementReport is the asset movement report (GET /relatorios/movimentos).
type MovementReport struct {
	Movimentos   []ReportMovement `json:"movimentos"`
	Estatisticas MovementStats    `json:"estatisticas"`
}

// ReportMovement is an asset movement enriched with the names the report joins in.
type ReportMovement struct {
	AssetMovement
	RecursoIdentificador string `json:"recurso_identificador"`
	ObraNome             string `json:"obra_nome"`
}

// MovementStats totals the movement report.
type MovementStats struct {
	TotalMovimentos     int `json:"total_movimentos"`
	TotalSaidas         int `json:"total_saidas"`
	TotalDevolucoes     int `json:"total_devolucoes"`
	EquipamentosMovidos int `json:"equipamentos_movidos"`
	ViaturasMovidas     int `json:"viaturas_movidas"`
}

// StockReport is the material stock report (GET /relatorios/stock).
type StockReport struct {
	Movimentos      []ReportStockMovement `json:"movimentos"`
	Estatisticas    StockStats            `json:"estatisticas"`
	MateriaisResumo []MaterialUsage       `json:"materiais_resumo"`
}

// ReportStockMovement is a stock movement enriched with material and site names.
type ReportStockMovement struct {
	StockMovement
	MaterialCodigo    string `json:"material_codigo"`
	MaterialDescricao string `json:"material_descricao"`
	ObraNome          string `json:"obra_nome"`
}

// StockStats totals the stock report. Quantities are summed across units.
type StockStats struct {
	TotalMovimentos     int     `json:"total_movimentos"`
	TotalEntradas       float64 `json:"total_entradas"`
	TotalSaidas         float64 `json:"total_saidas"`
	ConsumoLiquido      float64 `json:"consumo_liquido"`
	MateriaisDiferentes int     `json:"materiais_diferentes"`
}

// MaterialUsage is the per-material line of the stock and site reports.
type MaterialUsage struct {
	MaterialID     string  `json:"material_id"`
	Codigo         string  `json:"codigo"`
	Descricao      string  `json:"descricao"`
	Unidade        string  `json:"unidade"`
	TotalEntradas  float64 `json:"total_entradas"`
	TotalSaidas    float64 `json:"total_saidas"`
	ConsumoLiquido float64 `json:"consumo_liquido"`
}

// SiteReport is the per-site report (GET /relatorios/obra/{id}).
type SiteReport struct {
	Obra             Site             `json:"obra"`
	Estatisticas     SiteStats        `json:"estatisticas"`
	RecursosAtuais   CurrentResources `json:"recursos_atuais"`
	ConsumoMateriais []MaterialUsage  `json:"consumo_materiais"`
}

// SiteStats totals the site report.
type SiteStats struct {
	EquipamentosAtuais int `json:"equipamentos_atuais"`
	ViaturasAtuais     int `json:"viaturas_atuais"`
	MovimentosAtivos   int `json:"movimentos_ativos"`
	MovimentosStock    int `json:"movimentos_stock"`
	TotalSaidasAtivos  int `json:"total_saidas_ativos"`
	TotalDevolucoes    int `json:"total_devolucoes"`
}

// CurrentResources are the assets assigned to a site right now.
type CurrentResources struct {
	Equipamentos []Equipment `json:"equipamentos"`
	Viaturas     []Vehicle   `json:"viaturas"`
}

// MaintenanceReport lists the assets under repair (GET /relatorios/manutencoes).
type MaintenanceReport struct {
	Equipamentos []Equipment      `json:"equipamentos"`
	Viaturas     []Vehicle        `json:"viaturas"`
	Estatisticas MaintenanceStats `json:"estatisticas"`
}

// MaintenanceStats totals the maintenance report.
type MaintenanceStats struct {
	TotalEquipamentos int `json:"total_equipamentos"`
	TotalViaturas     int `json:"total_viaturas"`
	TotalGeral        int `json:"total_geral"`
}

// DocumentAlertReport lists expiring or expired documents (GET /relatorios/alertas).
type DocumentAlertReport struct {
	Alertas      []DocumentAlert    `json:"alertas"`
	Estatisticas DocumentAlertStats `json:"estatisticas"`
}

// DocumentAlert is one expiring document of an asset.
type DocumentAlert struct {
	TipoRecurso   string `json:"tipo_recurso"`
	RecursoID     string `json:"recurso_id"`
	Identificador string `json:"identificador"`
	TipoAlerta    string `json:"tipo_alerta"`
	DataValidade  string `json:"data_validade"`
	DiasRestantes *int   `json:"dias_restantes"`
	Urgente       bool   `json:"urgente"`
	Expirado      bool   `json:"expirado"`
}

// DocumentAlertStats totals the document alert report.
type DocumentAlertStats struct {
	TotalAlertas int `json:"total_alertas"`
	Expirados    int `json:"expirados"`
	Urgentes     int `json:"urgentes"`
	Proximos     int `json:"proximos"`
}

// UsageReport is the asset utilisation report (GET /relatorios/utilizacao).
type UsageReport struct {
	Equipamentos []ResourceUsage `json:"equipamentos"`
	Viaturas     []ResourceUsage `json:"viaturas"`
	Estatisticas UsageStats      `json:"estatisticas"`
}

// ResourceUsage is an asset with its movement counts over the period.
type ResourceUsage struct {
	ID              string `json:"id"`
	Codigo          string `json:"codigo"`
	Matricula       string `json:"matricula"`
	Descricao       string `json:"descricao"`
	Marca           string `json:"marca"`
	Modelo          string `json:"modelo"`
	EstadoAtual     string `json:"estado_atual"`
	TotalMovimentos int    `json:"total_movimentos"`
	TotalSaidas     int    `json:"total_saidas"`
	TotalDevolucoes int    `json:"total_devolucoes"`
}

// Identifier is the code of an equipment item or the plate of a vehicle.
func (r ResourceUsage) Identifier() string {
	if r.Codigo != "" {
		return r.Codigo
	}
	return r.Matricula
}

// UsageStats counts assets per state.
type UsageStats struct {
	Equipamentos UsageCounts `json:"equipamentos"`
	Viaturas     UsageCounts `json:"viaturas"`
}

// UsageCounts counts one asset kind per state.
type UsageCounts struct {
	Total      int `json:"total"`
	Disponivel int `json:"disponivel"`
	EmObra     int `json:"em_obra"`
	Manutencao int `json:"manutencao"`
}
