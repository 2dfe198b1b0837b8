// models/inspecao.go
package models

import (
	"time"
)

// Inspecao representa uma não conformidade registrada em uma inspeção.
// Um mesmo evento de inspeção (unidade + data + responsável) gera várias linhas.
type Inspecao struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Chave natural usada no upsert das planilhas
	Numero              string `gorm:"size:50;not null;default:'';uniqueIndex:idx_inspecao_chave,priority:1" json:"numero"`
	UnidadeInspecionada string `gorm:"size:255;not null;default:'';uniqueIndex:idx_inspecao_chave,priority:2;index" json:"unidadeInspecionada"`
	Departamento        string `gorm:"size:255;not null;default:'';uniqueIndex:idx_inspecao_chave,priority:3" json:"departamento"`
	NaoConformidade     string `gorm:"size:255;not null;default:'';uniqueIndex:idx_inspecao_chave,priority:4" json:"naoConformidade"`

	Coorpin                  string     `gorm:"size:50" json:"coorpin"`
	DataInspecao             *time.Time `gorm:"type:date;index" json:"dataInspecao"`
	Responsavel              string     `gorm:"size:255" json:"responsavelInspecao"`
	DescricaoNaoConformidade string     `gorm:"type:text" json:"descricaoNaoConformidade"`

	// Etapas da regularização (texto livre)
	EtapaInicial       string `gorm:"type:text" json:"etapaInicial"`
	EtapaIntermediaria string `gorm:"type:text" json:"etapaIntermediaria"`
	EtapaConclusiva    string `gorm:"type:text" json:"etapaConclusiva"`

	InicioRegularizacao *time.Time `gorm:"type:date" json:"inicioRegularizacao"`
	PrazoDias           *int       `json:"prazoDias"`
	FimRegularizacao    *time.Time `gorm:"type:date" json:"fimRegularizacao"`
	StatusPrazo         string     `gorm:"size:100;index" json:"statusPrazo"` // texto livre: "Dentro do prazo", "Prazo expirado"...
	DataReinspecao      *time.Time `gorm:"type:date" json:"dataReinspecao"`
	Criticidade         string     `gorm:"size:50" json:"criticidade"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Inspecao) TableName() string {
	return "inspecoes"
}

// ChaveNatural identifica a mesma linha lógica entre uploads repetidos.
func (i Inspecao) ChaveNatural() string {
	return chave(i.Numero, i.UnidadeInspecionada, i.Departamento, i.NaoConformidade)
}

// ColunasInspecaoAtualizaveis são sobrescritas no upsert quando a chave já existe.
var ColunasInspecaoAtualizaveis = []string{
	"coorpin", "data_inspecao", "responsavel", "descricao_nao_conformidade",
	"etapa_inicial", "etapa_intermediaria", "etapa_conclusiva",
	"inicio_regularizacao", "prazo_dias", "fim_regularizacao", "status_prazo",
	"data_reinspecao", "criticidade", "updated_at",
}
