package form

import "github.com/example/armazem/internal/models"

// ============================================================================
// Equipment
// ============================================================================

// Equipment is the editable state of an equipment item.
type Equipment struct {
	Codigo             string `json:"codigo" validate:"required"`
	Descricao          string `json:"descricao" validate:"required"`
	Marca              string `json:"marca"`
	Modelo             string `json:"modelo"`
	DataAquisicao      string `json:"data_aquisicao" validate:"omitempty,datetime=2006-01-02" form:"date"`
	Ativo              bool   `json:"ativo"`
	Categoria          string `json:"categoria"`
	NumeroSerie        string `json:"numero_serie"`
	Responsavel        string `json:"responsavel"`
	EstadoConservacao  string `json:"estado_conservacao" validate:"required,oneof=Bom Razoável Mau"`
	Foto               string `json:"foto" form:"upload=image"`
	LocalID            string `json:"local_id" form:"ref=locais"`
	ObraID             string `json:"obra_id" form:"ref=obras"`
	ManualURL          string `json:"manual_url" form:"upload=document"`
	CertificadoURL     string `json:"certificado_url" form:"upload=document"`
	FichaManutencaoURL string `json:"ficha_manutencao_url" form:"upload=document"`
}

func (*Equipment) Title() string { return "Equipamento" }

// NewEquipment returns the create-dialog defaults.
func NewEquipment() *Equipment {
	return &Equipment{Ativo: true, EstadoConservacao: models.EstadoBom}
}

// EquipmentFrom seeds the edit dialog from a stored record.
func EquipmentFrom(e models.Equipment) *Equipment {
	estado := e.EstadoConservacao
	if estado == "" {
		estado = models.EstadoBom
	}
	return &Equipment{
		Codigo:             e.Codigo,
		Descricao:          e.Descricao,
		Marca:              e.Marca,
		Modelo:             e.Modelo,
		DataAquisicao:      DateOnly(e.DataAquisicao),
		Ativo:              e.IsActive(),
		Categoria:          e.Categoria,
		NumeroSerie:        e.NumeroSerie,
		Responsavel:        e.Responsavel,
		EstadoConservacao:  estado,
		Foto:               e.Foto,
		LocalID:            e.LocalID,
		ObraID:             e.ObraID,
		ManualURL:          e.ManualURL,
		CertificadoURL:     e.CertificadoURL,
		FichaManutencaoURL: e.FichaManutencaoURL,
	}
}

// ============================================================================
// Vehicle
// ============================================================================

// Vehicle is the editable state of a vehicle.
type Vehicle struct {
	Matricula    string `json:"matricula" validate:"required"`
	Marca        string `json:"marca"`
	Modelo       string `json:"modelo"`
	Combustivel  string `json:"combustivel" validate:"omitempty,oneof=Gasoleo Gasolina Eletrico Hibrido GPL"`
	Ativa        bool   `json:"ativa"`
	ObraID       string `json:"obra_id" form:"ref=obras"`
	Foto         string `json:"foto" form:"upload=image"`
	DocumentoURL string `json:"documento_url" form:"upload=document"`
}

func (*Vehicle) Title() string { return "Viatura" }

// NewVehicle returns the create-dialog defaults.
func NewVehicle() *Vehicle {
	return &Vehicle{Ativa: true, Combustivel: models.CombustivelOptions[0]}
}

// VehicleFrom seeds the edit dialog from a stored record.
func VehicleFrom(v models.Vehicle) *Vehicle {
	return &Vehicle{
		Matricula:    v.Matricula,
		Marca:        v.Marca,
		Modelo:       v.Modelo,
		Combustivel:  v.Combustivel,
		Ativa:        v.IsActive(),
		ObraID:       v.ObraID,
		Foto:         v.Foto,
		DocumentoURL: v.DocumentoURL,
	}
}

// ============================================================================
// Material
// ============================================================================

// Material is the editable state of a stocked material.
type Material struct {
	Codigo      string  `json:"codigo" validate:"required"`
	Descricao   string  `json:"descricao" validate:"required"`
	Unidade     string  `json:"unidade" validate:"required"`
	StockAtual  float64 `json:"stock_atual" validate:"gte=0"`
	StockMinimo float64 `json:"stock_minimo" validate:"gte=0"`
	Ativo       bool    `json:"ativo"`
}

func (*Material) Title() string { return "Material" }

// NewMaterial returns the create-dialog defaults.
func NewMaterial() *Material {
	return &Material{Unidade: "un", Ativo: true}
}

// MaterialFrom seeds the edit dialog from a stored record.
func MaterialFrom(m models.Material) *Material {
	return &Material{
		Codigo:      m.Codigo,
		Descricao:   m.Descricao,
		Unidade:     m.Unidade,
		StockAtual:  m.StockAtual,
		StockMinimo: m.StockMinimo,
		Ativo:       m.IsActive(),
	}
}

// ============================================================================
// Site and Location
// ============================================================================

// Site is the editable state of a construction site.
type Site struct {
	Codigo   string `json:"codigo" validate:"required"`
	Nome     string `json:"nome" validate:"required"`
	Endereco string `json:"endereco"`
	Cliente  string `json:"cliente"`
	Estado   string `json:"estado" validate:"required,oneof=Ativa Pausada Concluida"`
}

func (*Site) Title() string { return "Obra" }

// NewSite returns the create-dialog defaults.
func NewSite() *Site {
	return &Site{Estado: models.ObraAtiva}
}

// SiteFrom seeds the edit dialog from a stored record.
func SiteFrom(s models.Site) *Site {
	estado := s.Estado
	if estado == "" {
		estado = models.ObraAtiva
	}
	return &Site{Codigo: s.Codigo, Nome: s.Nome, Endereco: s.Endereco, Cliente: s.Cliente, Estado: estado}
}

// Location is the editable state of a warehouse location.
type Location struct {
	Codigo string `json:"codigo" validate:"required"`
	Nome   string `json:"nome" validate:"required"`
	Tipo   string `json:"tipo"`
}

func (*Location) Title() string { return "Local" }

func NewLocation() *Location { return &Location{} }

func LocationFrom(l models.Location) *Location {
	return &Location{Codigo: l.Codigo, Nome: l.Nome, Tipo: l.Tipo}
}

// ============================================================================
// Movements (create only)
// ============================================================================

// AssetMovement assigns an equipment item or vehicle to a site, or returns it.
// A departure (Saida) must name the destination site.
type AssetMovement struct {
	TipoRecurso   string `json:"tipo_recurso" validate:"required,oneof=equipamento viatura"`
	RecursoID     string `json:"recurso_id" validate:"required"`
	ObraID        string `json:"obra_id" validate:"required_if=TipoMovimento Saida" form:"ref=obras"`
	TipoMovimento string `json:"tipo_movimento" validate:"required,oneof=Saida Entrada"`
	Data          string `json:"data" validate:"required,datetime=2006-01-02" form:"date"`
	Responsavel   string `json:"responsavel"`
	Observacoes   string `json:"observacoes"`
}

func (*AssetMovement) Title() string { return "Movimento" }

// NewAssetMovement returns defaults dated today (YYYY-MM-DD).
func NewAssetMovement(today string) *AssetMovement {
	return &AssetMovement{
		TipoRecurso:   models.RecursoEquipamento,
		TipoMovimento: models.MovimentoSaida,
		Data:          today,
	}
}

// StockMovement moves a quantity of material.
type StockMovement struct {
	MaterialID    string  `json:"material_id" validate:"required" form:"ref=materiais"`
	ObraID        string  `json:"obra_id" form:"ref=obras"`
	TipoMovimento string  `json:"tipo_movimento" validate:"required,oneof=Entrada Saida"`
	Quantidade    float64 `json:"quantidade" validate:"gt=0"`
	Data          string  `json:"data" validate:"required,datetime=2006-01-02" form:"date"`
	Responsavel   string  `json:"responsavel"`
	Observacoes   string  `json:"observacoes"`
}

func (*StockMovement) Title() string { return "Movimento de stock" }

func NewStockMovement(today string) *StockMovement {
	return &StockMovement{TipoMovimento: models.MovimentoEntrada, Data: today}
}

// VehicleKm records a trip's odometer readings.
type VehicleKm struct {
	ViaturaID   string  `json:"viatura_id" validate:"required" form:"ref=viaturas"`
	KmInicial   float64 `json:"km_inicial" validate:"gte=0"`
	KmFinal     float64 `json:"km_final" validate:"gtefield=KmInicial"`
	Data        string  `json:"data" validate:"required,datetime=2006-01-02" form:"date"`
	Condutor    string  `json:"condutor"`
	Observacoes string  `json:"observacoes"`
}

func (*VehicleKm) Title() string { return "Registo de quilómetros" }

func NewVehicleKm(today string) *VehicleKm {
	return &VehicleKm{Data: today}
}
