package controleprazo

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/corregedoria/api-inspecoes/internal/models"
	"github.com/gorilla/mux"
)

func patch(h *Handler, id uint, corpo string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/controle-prazos/"+strconv.Itoa(int(id)), bytes.NewBufferString(corpo))
	req = mux.SetURLVars(req, map[string]string{"id": strconv.Itoa(int(id))})
	rec := httptest.NewRecorder()
	h.Atualizar(rec, req)
	return rec
}

func TestAtualizar_NotificaSomenteMudancaDeStatus(t *testing.T) {
	repo := NewRepositoryMemoria()
	c := models.ControlePrazo{Oficio: "OF-1", Unidade: "Delegacia A", NaoConformidade: "Armamento"}
	if err := repo.Criar(context.Background(), &c); err != nil {
		t.Fatal(err)
	}

	var mudancas []string
	h := NewHandler(repo, nil, nil)
	h.AoMudarStatus = func(_ context.Context, _ uint, status string) {
		mudancas = append(mudancas, status)
	}

	casos := []struct {
		nome  string
		corpo string
	}{
		{"status igual ao atual", `{"status":"pendente"}`},
		{"status novo", `{"status":"regularizado"}`},
		{"status repetido", `{"status":"regularizado"}`},
		{"patch completo sem mudança", `{"status":"regularizado","observacoes":"ok"}`},
		{"patch completo com mudança", `{"status":"nao_regularizado","observacoes":"ok"}`},
	}
	for _, tc := range casos {
		if rec := patch(h, c.ID, tc.corpo); rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d body = %s", tc.nome, rec.Code, rec.Body)
		}
	}

	want := []string{models.StatusRegularizado, models.StatusNaoRegularizado}
	if len(mudancas) != len(want) || mudancas[0] != want[0] || mudancas[1] != want[1] {
		t.Errorf("mudanças = %v, want %v", mudancas, want)
	}
}

func TestAtualizar_StatusDeIDInexistente(t *testing.T) {
	h := NewHandler(NewRepositoryMemoria(), nil, nil)
	chamado := false
	h.AoMudarStatus = func(context.Context, uint, string) { chamado = true }

	if rec := patch(h, 42, `{"status":"regularizado"}`); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
	if chamado {
		t.Error("AoMudarStatus não deve ser chamado sem registro")
	}
}
