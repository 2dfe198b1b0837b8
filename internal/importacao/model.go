package importacao

import "time"

const (
	TipoInspecoes      = "inspecoes"
	TipoControlePrazos = "controle_prazos"
)

// Lote registra uma importação de planilha.
type Lote struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Tipo        string    `gorm:"size:30;not null;index" json:"tipo"`
	Arquivo     string    `gorm:"size:255" json:"arquivo"`
	EnviadoPor  string    `gorm:"size:255" json:"enviadoPor"`
	Total       int       `json:"total"`
	Processados int       `json:"processados"`
	Erros       int       `json:"erros"`
	CriadoEm    time.Time `gorm:"autoCreateTime;index" json:"criadoEm"`
}

func (Lote) TableName() string {
	return "importacao_lotes"
}
