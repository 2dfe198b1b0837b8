package planilha

// TabelaAliases liga cada campo canônico aos trechos de cabeçalho aceitos.
// Os trechos são comparados já normalizados (ver Normalizar).
type TabelaAliases map[string][]string

// Campos de inspeção.
const (
	CampoNumero                   = "numero"
	CampoUnidadeInspecionada      = "unidadeInspecionada"
	CampoDepartamento             = "departamento"
	CampoCoorpin                  = "coorpin"
	CampoDataInspecao             = "dataInspecao"
	CampoResponsavel              = "responsavelInspecao"
	CampoNaoConformidade          = "naoConformidade"
	CampoDescricaoNaoConformidade = "descricaoNaoConformidade"
	CampoEtapaInicial             = "etapaInicial"
	CampoEtapaIntermediaria       = "etapaIntermediaria"
	CampoEtapaConclusiva          = "etapaConclusiva"
	CampoInicioRegularizacao      = "inicioRegularizacao"
	CampoPrazoDias                = "prazoDias"
	CampoFimRegularizacao         = "fimRegularizacao"
	CampoStatusPrazo              = "statusPrazo"
	CampoDataReinspecao           = "dataReinspecao"
	CampoCriticidade              = "criticidade"
)

// Campos de controle de prazos.
const (
	CampoUnidade         = "unidade"
	CampoOficio          = "oficio"
	CampoLinkOficio      = "linkOficio"
	CampoLinkResposta    = "linkResposta"
	CampoDataRecebimento = "dataRecebimento"
	CampoDataPrazo       = "dataPrazo"
	CampoStatus          = "status"
	CampoObservacoes     = "observacoes"
)

var AliasesInspecao = TabelaAliases{
	CampoNumero:                   {"numero", "num", "n inspecao"},
	CampoUnidadeInspecionada:      {"unidade inspecionada", "unidade", "unit", "delegacia"},
	CampoDepartamento:             {"departamento", "setor", "department"},
	CampoCoorpin:                  {"coorpin"},
	CampoDataInspecao:             {"data da inspecao", "data inspecao", "data"},
	CampoResponsavel:              {"responsavel", "inspetor", "inspector"},
	CampoNaoConformidade:          {"nao conformidade", "naoconformidade", "non compliance"},
	CampoDescricaoNaoConformidade: {"descricao da nao conformidade", "descricao nao conformidade", "descricao"},
	CampoEtapaInicial:             {"etapa inicial", "inicial"},
	CampoEtapaIntermediaria:       {"etapa intermediaria", "intermediaria"},
	CampoEtapaConclusiva:          {"etapa conclusiva", "conclusiva"},
	CampoInicioRegularizacao:      {"inicio da regularizacao", "inicio regularizacao", "inicio"},
	CampoPrazoDias:                {"prazo em dias", "prazo dias", "dias"},
	CampoFimRegularizacao:         {"fim da regularizacao", "fim regularizacao", "termino"},
	CampoStatusPrazo:              {"status do prazo", "status prazo", "status", "situacao"},
	CampoDataReinspecao:           {"data da reinspecao", "reinspecao"},
	CampoCriticidade:              {"criticidade", "gravidade"},
}

var AliasesControlePrazo = TabelaAliases{
	CampoUnidade:         {"unidade", "unit", "delegacia"},
	CampoOficio:          {"numero do oficio", "oficio"},
	CampoLinkOficio:      {"link do oficio", "link oficio", "link"},
	CampoLinkResposta:    {"link da resposta", "link resposta", "resposta"},
	CampoNaoConformidade: {"nao conformidade", "naoconformidade", "irregularidade"},
	CampoDataRecebimento: {"data de recebimento", "data recebimento", "recebimento", "recebido"},
	CampoDataPrazo:       {"data do prazo", "data prazo", "prazo final", "prazo", "vencimento"},
	CampoStatus:          {"status", "situacao"},
	CampoObservacoes:     {"observacoes", "observacao", "obs"},
}
