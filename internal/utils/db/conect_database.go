package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Parametros de conexão com o PostgreSQL. URL, quando informada, tem prioridade.
type Parametros struct {
	URL         string
	Host        string
	Port        uint
	Name        string
	Username    string
	Password    string
	SSLDisabled bool
}

// DSN monta a string de conexão no formato chave=valor do libpq.
func (p Parametros) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	var sslMode string
	if p.SSLDisabled {
		sslMode = " sslmode=disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s",
		p.Host, p.Username, p.Password, p.Name, p.Port, sslMode)
}

// ConnectDataBase abre a conexão gorm. Erros de chave duplicada são
// traduzidos para gorm.ErrDuplicatedKey.
func ConnectDataBase(p Parametros) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(p.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("db: conectar: %w", err)
	}
	return database, nil
}
