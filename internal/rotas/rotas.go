// Package rotas monta o roteador HTTP da API.
package rotas

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corregedoria/api-inspecoes/internal/admin"
	"github.com/corregedoria/api-inspecoes/internal/apierro"
	"github.com/corregedoria/api-inspecoes/internal/auth"
	"github.com/corregedoria/api-inspecoes/internal/comentario"
	"github.com/corregedoria/api-inspecoes/internal/controleprazo"
	"github.com/corregedoria/api-inspecoes/internal/importacao"
	"github.com/corregedoria/api-inspecoes/internal/inspecao"
	"github.com/corregedoria/api-inspecoes/internal/middleware"
	"github.com/corregedoria/api-inspecoes/internal/notificacao"
	"github.com/corregedoria/api-inspecoes/internal/relatorio"
	"github.com/corregedoria/api-inspecoes/internal/usuario"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

const (
	ArmazenamentoPostgres = "postgres"
	ArmazenamentoMemoria  = "memoria"
)

// Deps são os repositórios e serviços compartilhados pelas rotas.
type Deps struct {
	Inspecoes   inspecao.Repository
	Prazos      controleprazo.Repository
	Usuarios    usuario.Repository
	Lotes       importacao.Repository
	Comentarios comentario.Repository

	Tokens  *auth.Tokens
	Cache   *relatorio.Cache
	Webhook *notificacao.Webhook

	CORSOrigins   []string
	Armazenamento string
	Log           *slog.Logger
}

// Configurar cria os handlers e registra todas as rotas.
// Toda escrita limpa o cache de relatórios.
func Configurar(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	aoAlterar := d.Cache.Limpar

	inspecaoHandler := inspecao.NewHandler(d.Inspecoes, log, aoAlterar)
	prazoHandler := controleprazo.NewHandler(d.Prazos, log, aoAlterar)
	relatorioHandler := relatorio.NewHandler(d.Inspecoes, d.Prazos, d.Cache, log)
	usuarioHandler := usuario.NewHandler(d.Usuarios, d.Tokens, log)

	comentarioHandler := comentario.NewHandler(d.Comentarios, d.Prazos, log)
	prazoHandler.AoMudarStatus = func(ctx context.Context, id uint, status string) {
		comentarioHandler.RegistrarSistema(ctx, id, "Status alterado para "+status)
	}

	servico := importacao.NewServico(d.Inspecoes, d.Prazos, d.Lotes, d.Webhook, log)
	servico.AoAlterar = aoAlterar
	adminHandler := admin.NewHandler(servico, d.Inspecoes, d.Prazos, d.Lotes, log, aoAlterar)

	logado := func(h http.HandlerFunc) http.Handler { return d.Tokens.Autenticar(h) }
	somenteAdmin := func(h http.HandlerFunc) http.Handler { return d.Tokens.Autenticar(auth.RequireAdmin(h)) }

	r := mux.NewRouter()
	r.Use(middleware.Metricas)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierro.NaoEncontrado(w, "rota não encontrada")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierro.Escrever(w, http.StatusMethodNotAllowed, apierro.CodigoValidacao, "método não permitido")
	})

	r.HandleFunc("/health", saude(d.Armazenamento)).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Autenticação
	api.HandleFunc("/auth/login", usuarioHandler.Login).Methods("POST")
	api.Handle("/auth/me", logado(usuarioHandler.Me)).Methods("GET")
	api.Handle("/usuarios", somenteAdmin(usuarioHandler.Criar)).Methods("POST")

	// Inspeções
	api.Handle("/inspections", logado(inspecaoHandler.ListarTodas)).Methods("GET")
	api.Handle("/inspections/filtered", logado(inspecaoHandler.ListarFiltradas)).Methods("GET")
	api.Handle("/inspections/filters", logado(inspecaoHandler.ListarOpcoesFiltro)).Methods("GET")
	api.Handle("/inspections", somenteAdmin(inspecaoHandler.Criar)).Methods("POST")

	// Relatórios
	api.Handle("/reports/data", logado(relatorioHandler.Dados)).Methods("GET")
	api.Handle("/reports/export.xlsx", logado(relatorioHandler.ExportarXLSX)).Methods("GET")
	api.Handle("/reports/export.csv", logado(relatorioHandler.ExportarCSV)).Methods("GET")

	// Controle de prazos
	api.Handle("/controle-prazos", logado(prazoHandler.Listar)).Methods("GET")
	api.Handle("/controle-prazos", somenteAdmin(prazoHandler.Criar)).Methods("POST")
	api.Handle("/controle-prazos/{id:[0-9]+}", somenteAdmin(prazoHandler.Atualizar)).Methods("PATCH")
	api.Handle("/controle-prazos/{id:[0-9]+}", somenteAdmin(prazoHandler.Deletar)).Methods("DELETE")
	api.Handle("/controle-prazos/{id:[0-9]+}/comentarios", logado(comentarioHandler.ListarPorPrazo)).Methods("GET")
	api.Handle("/controle-prazos/{id:[0-9]+}/comentarios", logado(comentarioHandler.Criar)).Methods("POST")
	api.Handle("/comentarios/{id:[0-9]+}", somenteAdmin(comentarioHandler.Remover)).Methods("DELETE")

	// Administração
	api.Handle("/admin/upload-excel", somenteAdmin(adminHandler.UploadInspecoes)).Methods("POST")
	api.Handle("/admin/upload-controle-prazos", somenteAdmin(adminHandler.UploadControlePrazos)).Methods("POST")
	api.Handle("/admin/delete-all-inspections", somenteAdmin(adminHandler.DeletarTodasInspecoes)).Methods("DELETE")
	api.Handle("/admin/delete-all-controle-prazos", somenteAdmin(adminHandler.DeletarTodosControlePrazos)).Methods("DELETE")
	api.Handle("/admin/uploads", somenteAdmin(adminHandler.ListarUploads)).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
	})

	var h http.Handler = c.Handler(r)
	h = middleware.Recover(log)(h)
	h = middleware.RequestLogger(log.With("component", "http"))(h)
	return h
}

func saude(armazenamento string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":        "UP",
			"armazenamento": armazenamento,
		})
	}
}
