// Package apierro padroniza as respostas de erro da API:
// {"error": {"code": "...", "message": "..."}}.
package apierro

import (
	"encoding/json"
	"net/http"
)

const (
	CodigoValidacao     = "VALIDATION_ERROR"
	CodigoNaoEncontrado = "NOT_FOUND"
	CodigoNaoAutorizado = "UNAUTHORIZED"
	CodigoProibido      = "FORBIDDEN"
	CodigoConflito      = "CONFLICT"
	CodigoRelatorio     = "REPORT_ERROR"
	CodigoArmazenamento = "STORAGE_ERROR"
	CodigoUpload        = "UPLOAD_ERROR"
	CodigoInterno       = "INTERNAL_ERROR"
)

type corpo struct {
	Error detalhe `json:"error"`
}

type detalhe struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Escrever grava o erro no formato padrão.
func Escrever(w http.ResponseWriter, status int, codigo, mensagem string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(corpo{Error: detalhe{Code: codigo, Message: mensagem}})
}

func Validacao(w http.ResponseWriter, mensagem string) {
	Escrever(w, http.StatusBadRequest, CodigoValidacao, mensagem)
}

func NaoEncontrado(w http.ResponseWriter, mensagem string) {
	Escrever(w, http.StatusNotFound, CodigoNaoEncontrado, mensagem)
}

func NaoAutorizado(w http.ResponseWriter, mensagem string) {
	Escrever(w, http.StatusUnauthorized, CodigoNaoAutorizado, mensagem)
}

func Proibido(w http.ResponseWriter, mensagem string) {
	Escrever(w, http.StatusForbidden, CodigoProibido, mensagem)
}

func Conflito(w http.ResponseWriter, mensagem string) {
	Escrever(w, http.StatusConflict, CodigoConflito, mensagem)
}

// Armazenamento responde 500 para falhas do banco ou do repositório em memória.
func Armazenamento(w http.ResponseWriter, mensagem string) {
	Escrever(w, http.StatusInternalServerError, CodigoArmazenamento, mensagem)
}

func Interno(w http.ResponseWriter, mensagem string) {
	Escrever(w, http.StatusInternalServerError, CodigoInterno, mensagem)
}
