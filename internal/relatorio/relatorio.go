// Package relatorio monta o resumo e os dados de gráficos a partir das inspeções
// filtradas e do controle de prazos.
package relatorio

import (
	"sort"
	"time"

	"github.com/corregedoria/api-inspecoes/internal/models"
)

// Faixas do gráfico de status dos prazos.
const (
	FaixaComPrazoDefinido  = "Com Prazo Definido"
	FaixaProximoVencimento = "Próximo do Vencimento"
	FaixaComPrazoVencido   = "Com Prazo Vencido"
	FaixaSemPrazoDefinido  = "Sem Prazo Definido"
)

// DiasProximoDoVencimento é o limite (inclusivo) da faixa "Próximo do Vencimento".
const DiasProximoDoVencimento = 15

const rotuloNaoInformado = "Não informado"

type Dados struct {
	Inspections []models.Inspecao `json:"inspections"`
	Summary     Resumo            `json:"summary"`
	Charts      Graficos          `json:"charts"`
}

type Resumo struct {
	TotalInspecoes        int `json:"totalInspections"`
	TotalNaoConformidades int `json:"totalNonCompliances"`
	DentroDoPrazo         int `json:"withinDeadline"`

	// ProximoDoVencimento e Vencidos recebem o mesmo valor: unidades com algum prazo já vencido.
	ProximoDoVencimento int `json:"nearDeadline"`
	Vencidos            int `json:"overdue"`

	Regularizados    int `json:"regularizados"`
	Pendentes        int `json:"pendentes"`
	NaoRegularizados int `json:"naoRegularizados"`
}

type Graficos struct {
	Departamentos    []ItemGrafico `json:"departmentData"`
	Status           []ItemGrafico `json:"statusData"`
	NaoConformidades []ItemGrafico `json:"nonComplianceData"`
}

type ItemGrafico struct {
	Nome  string `json:"name"`
	Valor int    `json:"value"`
}

// ChaveEvento identifica um evento de inspeção: unidade + data + responsável.
// Um evento gera várias linhas, uma por não conformidade.
func ChaveEvento(i models.Inspecao) string {
	return i.UnidadeInspecionada + "\x1f" + models.FormatarDia(i.DataInspecao) + "\x1f" + i.Responsavel
}

// Montar calcula o relatório. hoje é truncado para meia-noite UTC.
func Montar(inspecoes []models.Inspecao, prazos []models.ControlePrazo, hoje time.Time) Dados {
	hoje = models.Dia(hoje)
	if inspecoes == nil {
		inspecoes = []models.Inspecao{}
	}

	eventos := map[string]bool{}
	porDepartamento := map[string]map[string]bool{}
	porNaoConformidade := map[string]int{}
	unidades := map[string]bool{}

	for _, i := range inspecoes {
		k := ChaveEvento(i)
		eventos[k] = true
		unidades[i.UnidadeInspecionada] = true

		dep := rotulo(i.Departamento)
		if porDepartamento[dep] == nil {
			porDepartamento[dep] = map[string]bool{}
		}
		porDepartamento[dep][k] = true

		porNaoConformidade[rotulo(i.NaoConformidade)]++
	}

	relacionados := restringirPrazos(prazos, unidades)

	resumo := Resumo{
		TotalInspecoes:        len(eventos),
		TotalNaoConformidades: len(inspecoes),
	}

	comPrazo := map[string]bool{}
	comVencido := map[string]bool{}
	faixas := map[string]int{}
	for _, c := range relacionados {
		switch c.Status {
		case models.StatusRegularizado:
			resumo.Regularizados++
		case models.StatusPendente:
			resumo.Pendentes++
		case models.StatusNaoRegularizado:
			resumo.NaoRegularizados++
		}

		if c.DataPrazo != nil {
			comPrazo[c.Unidade] = true
			if models.Dia(*c.DataPrazo).Before(hoje) {
				comVencido[c.Unidade] = true
			}
		}
		faixas[Classificar(c.DataPrazo, hoje)]++
	}
	resumo.DentroDoPrazo = len(comPrazo)
	resumo.ProximoDoVencimento = len(comVencido)
	resumo.Vencidos = len(comVencido)

	deps := make(map[string]int, len(porDepartamento))
	for d, ks := range porDepartamento {
		deps[d] = len(ks)
	}

	return Dados{
		Inspections: inspecoes,
		Summary:     resumo,
		Charts: Graficos{
			Departamentos:    ordenarItens(deps),
			Status:           itensFaixas(faixas),
			NaoConformidades: ordenarItens(porNaoConformidade),
		},
	}
}

// restringirPrazos mantém os prazos das unidades presentes nas inspeções filtradas.
// Sem inspeções (unidades vazio), devolve todos.
func restringirPrazos(prazos []models.ControlePrazo, unidades map[string]bool) []models.ControlePrazo {
	if len(unidades) == 0 {
		return prazos
	}
	out := make([]models.ControlePrazo, 0, len(prazos))
	for _, c := range prazos {
		if unidades[c.Unidade] {
			out = append(out, c)
		}
	}
	return out
}

// Classificar coloca um prazo em exatamente uma faixa. hoje conta como dia 0.
func Classificar(prazo *time.Time, hoje time.Time) string {
	if prazo == nil {
		return FaixaSemPrazoDefinido
	}
	dias := models.DiasEntre(hoje, *prazo)
	switch {
	case dias < 0:
		return FaixaComPrazoVencido
	case dias <= DiasProximoDoVencimento:
		return FaixaProximoVencimento
	default:
		return FaixaComPrazoDefinido
	}
}

var ordemFaixas = []string{
	FaixaComPrazoDefinido,
	FaixaProximoVencimento,
	FaixaComPrazoVencido,
	FaixaSemPrazoDefinido,
}

func itensFaixas(contagem map[string]int) []ItemGrafico {
	out := make([]ItemGrafico, 0, len(ordemFaixas))
	for _, f := range ordemFaixas {
		out = append(out, ItemGrafico{Nome: f, Valor: contagem[f]})
	}
	return out
}

// ordenarItens: maior valor primeiro, empate por nome.
func ordenarItens(contagem map[string]int) []ItemGrafico {
	out := make([]ItemGrafico, 0, len(contagem))
	for nome, v := range contagem {
		out = append(out, ItemGrafico{Nome: nome, Valor: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Valor != out[j].Valor {
			return out[i].Valor > out[j].Valor
		}
		return out[i].Nome < out[j].Nome
	})
	return out
}

func rotulo(s string) string {
	if s == "" {
		return rotuloNaoInformado
	}
	return s
}
