package db

import (
	"github.com/corregedoria/api-inspecoes/internal/config"
	"gorm.io/gorm"
)

// GetDB conecta usando a configuração carregada do ambiente.
func GetDB(cfg *config.Config) (*gorm.DB, error) {
	return ConnectDataBase(ParametrosDe(cfg))
}

func ParametrosDe(cfg *config.Config) Parametros {
	return Parametros{
		URL:         cfg.DatabaseURL,
		Host:        cfg.DBHost,
		Port:        cfg.DBPort,
		Name:        cfg.DBName,
		Username:    cfg.DBUsername,
		Password:    cfg.DBPassword,
		SSLDisabled: cfg.DBSSLModeDisabled,
	}
}
