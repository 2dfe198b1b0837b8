package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrSenhaLonga: bcrypt só considera os primeiros 72 bytes da senha.
var ErrSenhaLonga = errors.New("senha excede 72 bytes")

// custoSenha é o custo bcrypt dos novos hashes (BCRYPT_CUSTO).
var custoSenha = bcrypt.DefaultCost

// DefinirCustoSenha ajusta o custo bcrypt usado por HashSenha.
// Hashes existentes continuam válidos, pois o custo fica gravado no próprio hash.
func DefinirCustoSenha(custo int) error {
	if custo < bcrypt.MinCost || custo > bcrypt.MaxCost {
		return fmt.Errorf("custo bcrypt %d fora do intervalo %d-%d", custo, bcrypt.MinCost, bcrypt.MaxCost)
	}
	custoSenha = custo
	return nil
}

// HashSenha gera o hash bcrypt da senha de um usuário da corregedoria.
func HashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), custoSenha)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrSenhaLonga
	}
	if err != nil {
		return "", fmt.Errorf("utils: hash bcrypt: %w", err)
	}
	return string(hash), nil
}

// CheckSenha compara o hash gravado com a senha informada no login.
func CheckSenha(hash, senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}
