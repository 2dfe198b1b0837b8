// internal/inspecao/dto.go
package inspecao

import (
	"strings"

	"github.com/corregedoria/api-inspecoes/internal/models"
)

// CriarInspecaoRequest é usado em POST /api/inspections.
// Datas aceitam YYYY-MM-DD, DD/MM/YYYY ou RFC3339.
type CriarInspecaoRequest struct {
	Numero                   string `json:"numero"`
	UnidadeInspecionada      string `json:"unidadeInspecionada"`
	Departamento             string `json:"departamento"`
	Coorpin                  string `json:"coorpin"`
	DataInspecao             string `json:"dataInspecao"`
	Responsavel              string `json:"responsavelInspecao"`
	NaoConformidade          string `json:"naoConformidade"`
	DescricaoNaoConformidade string `json:"descricaoNaoConformidade"`
	EtapaInicial             string `json:"etapaInicial"`
	EtapaIntermediaria       string `json:"etapaIntermediaria"`
	EtapaConclusiva          string `json:"etapaConclusiva"`
	InicioRegularizacao      string `json:"inicioRegularizacao"`
	PrazoDias                *int   `json:"prazoDias"`
	FimRegularizacao         string `json:"fimRegularizacao"`
	StatusPrazo              string `json:"statusPrazo"`
	DataReinspecao           string `json:"dataReinspecao"`
	Criticidade              string `json:"criticidade"`
}

func (req CriarInspecaoRequest) paraModelo() models.Inspecao {
	return models.Inspecao{
		Numero:                   strings.TrimSpace(req.Numero),
		UnidadeInspecionada:      strings.TrimSpace(req.UnidadeInspecionada),
		Departamento:             strings.TrimSpace(req.Departamento),
		Coorpin:                  strings.TrimSpace(req.Coorpin),
		DataInspecao:             models.ParseDia(req.DataInspecao),
		Responsavel:              strings.TrimSpace(req.Responsavel),
		NaoConformidade:          strings.TrimSpace(req.NaoConformidade),
		DescricaoNaoConformidade: req.DescricaoNaoConformidade,
		EtapaInicial:             req.EtapaInicial,
		EtapaIntermediaria:       req.EtapaIntermediaria,
		EtapaConclusiva:          req.EtapaConclusiva,
		InicioRegularizacao:      models.ParseDia(req.InicioRegularizacao),
		PrazoDias:                req.PrazoDias,
		FimRegularizacao:         models.ParseDia(req.FimRegularizacao),
		StatusPrazo:              strings.TrimSpace(req.StatusPrazo),
		DataReinspecao:           models.ParseDia(req.DataReinspecao),
		Criticidade:              strings.TrimSpace(req.Criticidade),
	}
}

// OpcoesFiltro alimenta os selects do painel (GET /api/inspections/filters).
type OpcoesFiltro struct {
	Unidades         []string `json:"unidades"`
	Departamentos    []string `json:"departamentos"`
	NaoConformidades []string `json:"naoConformidades"`
	Anos             []int    `json:"anos"`
	StatusPrazo      []string `json:"statusPrazo"`
}
