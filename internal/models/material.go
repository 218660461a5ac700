package models

// Material is a consumable tracked by stock quantity.
type Material struct {
	ID          string  `json:"id"`
	Codigo      string  `json:"codigo"`
	Descricao   string  `json:"descricao"`
	Unidade     string  `json:"unidade"`
	StockAtual  float64 `json:"stock_atual"`
	StockMinimo float64 `json:"stock_minimo"`
	Ativo       *bool   `json:"ativo"`
}

// IsActive treats a missing flag as active.
func (m Material) IsActive() bool {
	return m.Ativo == nil || *m.Ativo
}

// BelowMinimum reports whether stock has fallen under the configured minimum.
func (m Material) BelowMinimum() bool {
	return m.StockMinimo > 0 && m.StockAtual < m.StockMinimo
}
