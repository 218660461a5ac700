package models

// Vehicle is a company vehicle (viatura).
type Vehicle struct {
	ID           string `json:"id"`
	Matricula    string `json:"matricula"`
	Marca        string `json:"marca"`
	Modelo       string `json:"modelo"`
	Combustivel  string `json:"combustivel"`
	Ativa        *bool  `json:"ativa"`
	ObraID       string `json:"obra_id"`
	Foto         string `json:"foto"`
	DocumentoURL string `json:"documento_url"`
}

// IsActive treats a missing flag as active.
func (v Vehicle) IsActive() bool {
	return v.Ativa == nil || *v.Ativa
}

// Fuel types offered by the vehicle form.
var CombustivelOptions = []string{"Gasoleo", "Gasolina", "Eletrico", "Hibrido", "GPL"}
