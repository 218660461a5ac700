package models

// Resource kinds an asset movement can refer to.
const (
	RecursoEquipamento = "equipamento"
	RecursoViatura     = "viatura"
)

// Movement directions.
const (
	MovimentoSaida   = "Saida"
	MovimentoEntrada = "Entrada"
)

// AssetMovement assigns an equipment item or vehicle to a site, or returns it.
type AssetMovement struct {
	ID            string `json:"id"`
	TipoRecurso   string `json:"tipo_recurso"`
	RecursoID     string `json:"recurso_id"`
	ObraID        string `json:"obra_id"`
	TipoMovimento string `json:"tipo_movimento"`
	Data          string `json:"data"`
	Responsavel   string `json:"responsavel"`
	Observacoes   string `json:"observacoes"`
}

// StockMovement moves a quantity of material in or out of stock.
type StockMovement struct {
	ID            string  `json:"id"`
	MaterialID    string  `json:"material_id"`
	ObraID        string  `json:"obra_id"`
	TipoMovimento string  `json:"tipo_movimento"`
	Quantidade    float64 `json:"quantidade"`
	Data          string  `json:"data"`
	Responsavel   string  `json:"responsavel"`
	Observacoes   string  `json:"observacoes"`
}

// VehicleKmMovement records a trip's odometer readings.
type VehicleKmMovement struct {
	ID          string  `json:"id"`
	ViaturaID   string  `json:"viatura_id"`
	KmInicial   float64 `json:"km_inicial"`
	KmFinal     float64 `json:"km_final"`
	Data        string  `json:"data"`
	Condutor    string  `json:"condutor"`
	Observacoes string  `json:"observacoes"`
}

// Distance is the kilometres covered by the trip.
func (m VehicleKmMovement) Distance() float64 {
	return m.KmFinal - m.KmInicial
}
