package comentario

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/corregedoria/api-inspecoes/internal/auth"
	"github.com/corregedoria/api-inspecoes/internal/controleprazo"
	"github.com/corregedoria/api-inspecoes/internal/models"
	"github.com/gorilla/mux"
)

func novoHandler(t *testing.T) (*Handler, uint) {
	t.Helper()
	prazos := controleprazo.NewRepositoryMemoria()
	c := models.ControlePrazo{Unidade: "Delegacia A", Oficio: "OF-1", NaoConformidade: "Armamento"}
	if err := prazos.Criar(context.Background(), &c); err != nil {
		t.Fatal(err)
	}
	return NewHandler(NewRepositoryMemoria(), prazos, nil), c.ID
}

func requisicao(metodo, id, corpo string) *http.Request {
	req := httptest.NewRequest(metodo, "/", bytes.NewBufferString(corpo))
	req = mux.SetURLVars(req, map[string]string{"id": id})
	return req.WithContext(auth.ComUsuario(req.Context(), 3, "ana@corregedoria.gov", false))
}

func TestCriarEListar(t *testing.T) {
	h, prazoID := novoHandler(t)
	id := jsonID(prazoID)

	h.RegistrarSistema(context.Background(), prazoID, "Status alterado para regularizado")

	rec := httptest.NewRecorder()
	h.Criar(rec, requisicao(http.MethodPost, id, `{"texto":"  Unidade enviou fotos  "}`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	h.ListarPorPrazo(rec, requisicao(http.MethodGet, id, ""))
	var lista []ComentarioDTO
	if err := json.NewDecoder(rec.Body).Decode(&lista); err != nil {
		t.Fatal(err)
	}
	if len(lista) != 2 {
		t.Fatalf("lista = %+v", lista)
	}
	if !lista[0].System || lista[0].Autor.Tipo != "system" || lista[0].Autor.ID != nil {
		t.Errorf("comentário de sistema = %+v", lista[0])
	}
	u := lista[1]
	if u.Texto != "Unidade enviou fotos" || u.Autor.Tipo != "usuario" || u.Autor.ID == nil || *u.Autor.ID != 3 || u.Autor.Email != "ana@corregedoria.gov" {
		t.Errorf("comentário de usuário = %+v", u)
	}
}

func TestCriar_Validacoes(t *testing.T) {
	h, prazoID := novoHandler(t)
	casos := []struct {
		nome   string
		id     string
		corpo  string
		status int
	}{
		{"texto vazio", jsonID(prazoID), `{"texto":"   "}`, http.StatusBadRequest},
		{"json inválido", jsonID(prazoID), `{`, http.StatusBadRequest},
		{"prazo inexistente", "999", `{"texto":"x"}`, http.StatusNotFound},
		{"id inválido", "abc", `{"texto":"x"}`, http.StatusBadRequest},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Criar(rec, requisicao(http.MethodPost, c.id, c.corpo))
			if rec.Code != c.status {
				t.Errorf("status = %d, want %d", rec.Code, c.status)
			}
		})
	}
}

func TestRemover_IdAusente(t *testing.T) {
	h, _ := novoHandler(t)
	rec := httptest.NewRecorder()
	h.Remover(rec, requisicao(http.MethodDelete, "42", ""))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d", rec.Code)
	}
}

func jsonID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
