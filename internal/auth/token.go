package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims do token (inclui RBAC simples: IsAdmin)
type Claims struct {
	UserID  uint   `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// Tokens emite e valida JWT HS256 com segredo injetado.
type Tokens struct {
	Segredo []byte
	TTL     time.Duration
	Issuer  string
}

const IssuerPadrao = "api-inspecoes"

func NewTokens(segredo string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &Tokens{Segredo: []byte(segredo), TTL: ttl, Issuer: IssuerPadrao}
}

// Gerar assina um token para o usuário.
func (t *Tokens) Gerar(userID uint, email string, isAdmin bool) (string, error) {
	if len(t.Segredo) == 0 {
		return "", errors.New("segredo JWT não configurado")
	}
	now := time.Now()
	claims := &Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		Email:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.Issuer,
			Subject:   fmt.Sprint(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
			ID:        fmt.Sprintf("%d-%d", userID, now.UnixNano()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Segredo)
}

// Validar confere assinatura, iss e exp
func (t *Tokens) Validar(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.Issuer),
		jwt.WithExpirationRequired(),
	)
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return t.Segredo, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token inválido ou expirado: %w", err)
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, errors.New("claims inválidas")
	}
	return c, nil
}
