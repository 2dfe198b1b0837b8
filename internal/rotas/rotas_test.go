package rotas_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"time"

	"github.com/corregedoria/api-inspecoes/internal/auth"
	"github.com/corregedoria/api-inspecoes/internal/comentario"
	"github.com/corregedoria/api-inspecoes/internal/controleprazo"
	"github.com/corregedoria/api-inspecoes/internal/importacao"
	"github.com/corregedoria/api-inspecoes/internal/inspecao"
	"github.com/corregedoria/api-inspecoes/internal/models"
	"github.com/corregedoria/api-inspecoes/internal/relatorio"
	"github.com/corregedoria/api-inspecoes/internal/rotas"
	"github.com/corregedoria/api-inspecoes/internal/usuario"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const (
	emailAdmin = "admin@corregedoria.gov"
	senhaAdmin = "senha-forte-123"
)

var _ = Describe("Rotas", func() {
	var (
		router   http.Handler
		usuarios usuario.Repository
		prazos   controleprazo.Repository
		tokens   *auth.Tokens
	)

	chamar := func(metodo, caminho, token string, corpo any) *httptest.ResponseRecorder {
		var body io.Reader
		if corpo != nil {
			raw, err := json.Marshal(corpo)
			Expect(err).NotTo(HaveOccurred())
			body = bytes.NewReader(raw)
		}
		req := httptest.NewRequest(metodo, caminho, body)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	login := func(email, senha string) string {
		rec := chamar(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "senha": senha})
		Expect(rec.Code).To(Equal(http.StatusOK), rec.Body.String())
		var resp usuario.LoginResponse
		Expect(json.NewDecoder(rec.Body).Decode(&resp)).To(Succeed())
		return resp.AccessToken
	}

	BeforeEach(func() {
		usuarios = usuario.NewRepositoryMemoria()
		prazos = controleprazo.NewRepositoryMemoria()
		tokens = auth.NewTokens("segredo-de-teste", time.Hour)

		_, err := usuario.GarantirAdmin(context.Background(), usuarios, emailAdmin, senhaAdmin)
		Expect(err).NotTo(HaveOccurred())

		router = rotas.Configurar(rotas.Deps{
			Inspecoes:     inspecao.NewRepositoryMemoria(),
			Prazos:        prazos,
			Usuarios:      usuarios,
			Lotes:         importacao.NewRepositoryMemoria(),
			Comentarios:   comentario.NewRepositoryMemoria(),
			Tokens:        tokens,
			Cache:         relatorio.NewCache(16, time.Minute),
			CORSOrigins:   []string{"http://localhost:3000"},
			Armazenamento: rotas.ArmazenamentoMemoria,
			Log:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		})
	})

	Describe("GET /health", func() {
		It("informa o armazenamento em uso", func() {
			rec := chamar(http.MethodGet, "/health", "", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON(`{"status":"UP","armazenamento":"memoria"}`))
		})
	})

	Describe("GET /metrics", func() {
		It("expõe as métricas HTTP", func() {
			chamar(http.MethodGet, "/health", "", nil)
			rec := chamar(http.MethodGet, "/metrics", "", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`http_requests_total{method="GET",path="/health",status="200"}`))
		})
	})

	Describe("autenticação", func() {
		It("rejeita requisição sem token", func() {
			rec := chamar(http.MethodGet, "/api/inspections", "", nil)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(ContainSubstring("UNAUTHORIZED"))
		})

		It("rejeita credenciais erradas", func() {
			rec := chamar(http.MethodPost, "/api/auth/login", "", map[string]string{"email": emailAdmin, "senha": "errada"})
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("devolve o usuário atual em /api/auth/me", func() {
			rec := chamar(http.MethodGet, "/api/auth/me", login(emailAdmin, senhaAdmin), nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(emailAdmin))
		})

		It("restringe escrita a administradores", func() {
			admin := login(emailAdmin, senhaAdmin)
			rec := chamar(http.MethodPost, "/api/usuarios", admin, map[string]any{
				"nome": "Analista", "email": "analista@corregedoria.gov", "senha": "12345678",
			})
			Expect(rec.Code).To(Equal(http.StatusCreated))

			analista := login("analista@corregedoria.gov", "12345678")
			Expect(chamar(http.MethodGet, "/api/inspections", analista, nil).Code).To(Equal(http.StatusOK))

			rec = chamar(http.MethodPost, "/api/inspections", analista, map[string]string{
				"unidadeInspecionada": "Delegacia A", "departamento": "Operacional",
			})
			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(chamar(http.MethodDelete, "/api/admin/delete-all-inspections", analista, nil).Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("inspeções e relatórios", func() {
		var token string

		BeforeEach(func() {
			token = login(emailAdmin, senhaAdmin)
		})

		criar := func(numero, unidade, departamento, data string) {
			rec := chamar(http.MethodPost, "/api/inspections", token, map[string]string{
				"numero": numero, "unidadeInspecionada": unidade, "departamento": departamento,
				"dataInspecao": data, "naoConformidade": "Infraestrutura",
			})
			Expect(rec.Code).To(Equal(http.StatusCreated), rec.Body.String())
		}

		It("valida campos obrigatórios e detecta duplicatas", func() {
			rec := chamar(http.MethodPost, "/api/inspections", token, map[string]string{"unidadeInspecionada": "Delegacia A"})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("VALIDATION_ERROR"))

			criar("001", "Delegacia A", "Operacional", "2024-03-10")
			rec = chamar(http.MethodPost, "/api/inspections", token, map[string]string{
				"numero": "001", "unidadeInspecionada": "Delegacia A", "departamento": "Operacional",
				"naoConformidade": "Infraestrutura",
			})
			Expect(rec.Code).To(Equal(http.StatusConflict))
		})

		It("filtra por unidade e ano", func() {
			criar("001", "Delegacia A", "Operacional", "2023-05-10")
			criar("002", "Delegacia A", "Administrativo", "2024-05-10")
			criar("003", "Delegacia B", "Operacional", "2024-06-10")

			rec := chamar(http.MethodGet, "/api/inspections/filtered?unidade=Delegacia+A&ano=2024", token, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var lista []models.Inspecao
			Expect(json.NewDecoder(rec.Body).Decode(&lista)).To(Succeed())
			Expect(lista).To(HaveLen(1))
			Expect(lista[0].Numero).To(Equal("002"))

			rec = chamar(http.MethodGet, "/api/inspections/filters", token, nil)
			Expect(rec.Body.String()).To(ContainSubstring(`"anos":[2024,2023]`))
		})

		It("recalcula o relatório depois de uma escrita", func() {
			criar("001", "Delegacia A", "Operacional", "2024-03-10")

			var dados relatorio.Dados
			rec := chamar(http.MethodGet, "/api/reports/data", token, nil)
			Expect(json.NewDecoder(rec.Body).Decode(&dados)).To(Succeed())
			Expect(dados.Summary.TotalInspecoes).To(Equal(1))

			criar("002", "Delegacia B", "Administrativo", "2024-03-11")

			rec = chamar(http.MethodGet, "/api/reports/data", token, nil)
			Expect(json.NewDecoder(rec.Body).Decode(&dados)).To(Succeed())
			Expect(dados.Summary.TotalInspecoes).To(Equal(2))
		})

		It("exporta CSV", func() {
			criar("001", "Delegacia A", "Operacional", "2024-03-10")
			rec := chamar(http.MethodGet, "/api/reports/export.csv", token, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(HavePrefix("text/csv"))
			Expect(rec.Body.String()).To(ContainSubstring("Delegacia A"))
		})
	})

	Describe("controle de prazos", func() {
		var token string

		BeforeEach(func() {
			token = login(emailAdmin, senhaAdmin)
		})

		It("cria, atualiza o status e remove", func() {
			rec := chamar(http.MethodPost, "/api/controle-prazos", token, map[string]string{
				"unidade": "Delegacia A", "oficio": "OF-1", "naoConformidade": "Armamento",
				"dataRecebimento": "2024-03-01", "dataPrazo": "2024-03-31",
			})
			Expect(rec.Code).To(Equal(http.StatusCreated), rec.Body.String())
			var criado models.ControlePrazo
			Expect(json.NewDecoder(rec.Body).Decode(&criado)).To(Succeed())
			Expect(criado.Status).To(Equal(models.StatusPendente))

			caminho := "/api/controle-prazos/" + strconv.FormatUint(uint64(criado.ID), 10)
			rec = chamar(http.MethodPatch, caminho, token, map[string]string{"status": "regularizado"})
			Expect(rec.Code).To(Equal(http.StatusOK), rec.Body.String())

			lista, err := prazos.ListarTodos(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(lista).To(HaveLen(1))
			Expect(lista[0].Status).To(Equal(models.StatusRegularizado))

			rec = chamar(http.MethodPost, caminho+"/comentarios", token, map[string]string{"texto": "Ofício respondido"})
			Expect(rec.Code).To(Equal(http.StatusCreated), rec.Body.String())

			rec = chamar(http.MethodGet, caminho+"/comentarios", token, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var notas []map[string]any
			Expect(json.NewDecoder(rec.Body).Decode(&notas)).To(Succeed())
			Expect(notas).To(HaveLen(2))
			Expect(notas[0]["texto"]).To(Equal("Status alterado para regularizado"))
			Expect(notas[0]["system"]).To(BeTrue())
			Expect(notas[1]["texto"]).To(Equal("Ofício respondido"))

			Expect(chamar(http.MethodDelete, caminho, token, nil).Code).To(Equal(http.StatusNoContent))
			Expect(chamar(http.MethodDelete, caminho, token, nil).Code).To(Equal(http.StatusNoContent))
		})

		It("rejeita status fora do conjunto", func() {
			rec := chamar(http.MethodPost, "/api/controle-prazos", token, map[string]string{
				"unidade": "Delegacia A", "oficio": "OF-1", "naoConformidade": "Armamento", "status": "arquivado",
			})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("CORS e rotas desconhecidas", func() {
		It("responde ao preflight da origem permitida", func() {
			req := httptest.NewRequest(http.MethodOptions, "/api/inspections", nil)
			req.Header.Set("Origin", "http://localhost:3000")
			req.Header.Set("Access-Control-Request-Method", "GET")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:3000"))
		})

		It("devolve 404 em JSON", func() {
			rec := chamar(http.MethodGet, "/api/inexistente", "", nil)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(rec.Body.String()).To(ContainSubstring("NOT_FOUND"))
		})
	})
})
