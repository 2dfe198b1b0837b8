package comentario

import "time"

// Comentario é uma anotação de acompanhamento em um controle de prazo.
// Comentários de sistema registram mudanças automáticas (ex.: status).
type Comentario struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ControlePrazoID uint      `gorm:"not null;index" json:"controlePrazoId"`
	Texto           string    `gorm:"type:text;not null" json:"texto"`
	AutorID         uint      `json:"autorId"` // 0 se for do sistema
	AutorEmail      string    `gorm:"size:255" json:"autorEmail"`
	System          bool      `gorm:"default:false" json:"system"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (Comentario) TableName() string {
	return "controle_prazo_comentarios"
}
