// Package models holds the backend-owned records exchanged with the warehouse API.
// The client never treats these as authoritative: every list is re-fetched after a mutation.
package models

// Conservation states of an equipment item.
const (
	EstadoBom      = "Bom"
	EstadoRazoavel = "Razoável"
	EstadoMau      = "Mau"
)

// EstadoOptions lists the accepted conservation states in display order.
var EstadoOptions = []string{EstadoBom, EstadoRazoavel, EstadoMau}

// Equipment is a tool or machine kept in the warehouse or assigned to a site.
type Equipment struct {
	ID                 string `json:"id"`
	Codigo             string `json:"codigo"`
	Descricao          string `json:"descricao"`
	Marca              string `json:"marca"`
	Modelo             string `json:"modelo"`
	DataAquisicao      string `json:"data_aquisicao"`
	Ativo              *bool  `json:"ativo"`
	Categoria          string `json:"categoria"`
	NumeroSerie        string `json:"numero_serie"`
	Responsavel        string `json:"responsavel"`
	EstadoConservacao  string `json:"estado_conservacao"`
	Foto               string `json:"foto"`
	LocalID            string `json:"local_id"`
	ObraID             string `json:"obra_id"`
	EmManutencao       bool   `json:"em_manutencao"`
	DescricaoAvaria    string `json:"descricao_avaria"`
	ManualURL          string `json:"manual_url"`
	CertificadoURL     string `json:"certificado_url"`
	FichaManutencaoURL string `json:"ficha_manutencao_url"`
}

// IsActive treats a missing flag as active.
func (e Equipment) IsActive() bool {
	return e.Ativo == nil || *e.Ativo
}

// Maintenance is the body of PATCH /equipamentos/{id}/manutencao.
type Maintenance struct {
	EmManutencao    bool   `json:"em_manutencao"`
	DescricaoAvaria string `json:"descricao_avaria"`
}
