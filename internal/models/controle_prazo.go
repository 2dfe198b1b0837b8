// models/controle_prazo.go
package models

import (
	"strings"
	"time"
)

// Status fechados do controle de prazos
const (
	StatusPendente        = "pendente"
	StatusRegularizado    = "regularizado"
	StatusNaoRegularizado = "nao_regularizado"
)

// ControlePrazo acompanha o prazo de regularização de uma não conformidade
// em uma unidade. Não tem relação com a tabela de inspeções.
type ControlePrazo struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Oficio          string `gorm:"size:100;not null;uniqueIndex:idx_controle_prazo_chave,priority:1" json:"oficio"`
	Unidade         string `gorm:"size:255;not null;uniqueIndex:idx_controle_prazo_chave,priority:2;index" json:"unidade"`
	NaoConformidade string `gorm:"size:500;not null;uniqueIndex:idx_controle_prazo_chave,priority:3" json:"naoConformidade"`

	LinkOficio   string `gorm:"size:500" json:"linkOficio"`
	LinkResposta string `gorm:"size:500" json:"linkResposta"`

	DataRecebimento *time.Time `gorm:"type:date" json:"dataRecebimento"`
	DataPrazo       *time.Time `gorm:"type:date;index" json:"dataPrazo"`
	Status          string     `gorm:"size:30;not null;default:'pendente';index" json:"status"`
	Observacoes     string     `gorm:"type:text" json:"observacoes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ControlePrazo) TableName() string {
	return "controle_prazos"
}

func (c ControlePrazo) ChaveNatural() string {
	return chave(c.Oficio, c.Unidade, c.NaoConformidade)
}

var ColunasControlePrazoAtualizaveis = []string{
	"link_oficio", "link_resposta", "data_recebimento", "data_prazo",
	"status", "observacoes", "updated_at",
}

// StatusValido informa se o status pertence ao conjunto fechado.
func StatusValido(s string) bool {
	switch s {
	case StatusPendente, StatusRegularizado, StatusNaoRegularizado:
		return true
	}
	return false
}

func chave(partes ...string) string {
	for i := range partes {
		partes[i] = strings.TrimSpace(partes[i])
	}
	return strings.Join(partes, "\x1f")
}
