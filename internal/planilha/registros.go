package planilha

import (
	"errors"
	"fmt"
	"strings"

	"github.com/corregedoria/api-inspecoes/internal/models"
)

var ErrCampoObrigatorio = errors.New("campo obrigatório ausente")

// InspecaoDaLinha exige unidade e departamento. Datas ilegíveis viram nulas.
func InspecaoDaLinha(l Linha) (models.Inspecao, error) {
	if l[CampoUnidadeInspecionada] == "" {
		return models.Inspecao{}, fmt.Errorf("%w: unidade", ErrCampoObrigatorio)
	}
	if l[CampoDepartamento] == "" {
		return models.Inspecao{}, fmt.Errorf("%w: departamento", ErrCampoObrigatorio)
	}

	prazo, _ := ConverterInteiro(l[CampoPrazoDias])
	return models.Inspecao{
		Numero:                   l[CampoNumero],
		UnidadeInspecionada:      l[CampoUnidadeInspecionada],
		Departamento:             l[CampoDepartamento],
		Coorpin:                  l[CampoCoorpin],
		DataInspecao:             dataOuNil(l[CampoDataInspecao]),
		Responsavel:              l[CampoResponsavel],
		NaoConformidade:          l[CampoNaoConformidade],
		DescricaoNaoConformidade: l[CampoDescricaoNaoConformidade],
		EtapaInicial:             l[CampoEtapaInicial],
		EtapaIntermediaria:       l[CampoEtapaIntermediaria],
		EtapaConclusiva:          l[CampoEtapaConclusiva],
		InicioRegularizacao:      dataOuNil(l[CampoInicioRegularizacao]),
		PrazoDias:                prazo,
		FimRegularizacao:         dataOuNil(l[CampoFimRegularizacao]),
		StatusPrazo:              l[CampoStatusPrazo],
		DataReinspecao:           dataOuNil(l[CampoDataReinspecao]),
		Criticidade:              l[CampoCriticidade],
	}, nil
}

// ControlePrazoDaLinha exige unidade, ofício e não conformidade, e as duas
// datas (recebimento e prazo) válidas. O status é normalizado.
func ControlePrazoDaLinha(l Linha) (models.ControlePrazo, error) {
	var faltando []string
	for _, campo := range []string{CampoUnidade, CampoOficio, CampoNaoConformidade} {
		if l[campo] == "" {
			faltando = append(faltando, campo)
		}
	}
	if len(faltando) > 0 {
		return models.ControlePrazo{}, fmt.Errorf("%w: %s", ErrCampoObrigatorio, strings.Join(faltando, ", "))
	}

	recebimento, err := ConverterData(l[CampoDataRecebimento])
	if err != nil || recebimento == nil {
		return models.ControlePrazo{}, fmt.Errorf("%w: dataRecebimento %q", ErrDataInvalida, l[CampoDataRecebimento])
	}
	prazo, err := ConverterData(l[CampoDataPrazo])
	if err != nil || prazo == nil {
		return models.ControlePrazo{}, fmt.Errorf("%w: dataPrazo %q", ErrDataInvalida, l[CampoDataPrazo])
	}

	return models.ControlePrazo{
		Unidade:         l[CampoUnidade],
		Oficio:          l[CampoOficio],
		LinkOficio:      l[CampoLinkOficio],
		LinkResposta:    l[CampoLinkResposta],
		NaoConformidade: l[CampoNaoConformidade],
		DataRecebimento: recebimento,
		DataPrazo:       prazo,
		Status:          NormalizarStatus(l[CampoStatus]),
		Observacoes:     l[CampoObservacoes],
	}, nil
}
