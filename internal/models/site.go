package models

// Site states.
const (
	ObraAtiva     = "Ativa"
	ObraPausada   = "Pausada"
	ObraConcluida = "Concluida"
)

// ObraEstados lists the accepted site states.
var ObraEstados = []string{ObraAtiva, ObraPausada, ObraConcluida}

// Site is a construction site (obra), the top-level grouping for asset assignment.
type Site struct {
	ID       string `json:"id"`
	Codigo   string `json:"codigo"`
	Nome     string `json:"nome"`
	Endereco string `json:"endereco"`
	Cliente  string `json:"cliente"`
	Estado   string `json:"estado"`
}

// Location is a physical place (warehouse, workshop) used instead of a site
// by installations that track equipment by local.
type Location struct {
	ID     string `json:"id"`
	Codigo string `json:"codigo"`
	Nome   string `json:"nome"`
	Tipo   string `json:"tipo"`
}

// LookupItem is the subset of any record needed to render a foreign key.
type LookupItem struct {
	ID        string `json:"id"`
	Codigo    string `json:"codigo"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
	Matricula string `json:"matricula"`
}

// Label renders the item the way list tables show a foreign key.
func (l LookupItem) Label() string {
	switch {
	case l.Codigo != "" && l.Nome != "":
		return l.Codigo + " - " + l.Nome
	case l.Codigo != "" && l.Descricao != "":
		return l.Codigo + " - " + l.Descricao
	case l.Matricula != "":
		return l.Matricula
	case l.Codigo != "":
		return l.Codigo
	default:
		return l.Nome
	}
}
