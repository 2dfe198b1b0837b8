package usuario

import "time"

type Usuario struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nome      string    `gorm:"size:255" json:"nome"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Senha     string    `gorm:"size:255;not null" json:"-"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Usuario) TableName() string {
	return "usuarios"
}
