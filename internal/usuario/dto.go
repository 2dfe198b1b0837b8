// internal/usuario/dto.go
package usuario

// LoginRequest é usado em POST /api/auth/login
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// LoginResponse devolve o token de acesso
type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   int     `json:"expires_in"`
	Usuario     Usuario `json:"usuario"`
}

// CriarUsuarioRequest é usado em POST /api/usuarios
type CriarUsuarioRequest struct {
	Nome    string `json:"nome"`
	Email   string `json:"email"`
	Senha   string `json:"senha"`
	IsAdmin bool   `json:"isAdmin"`
}
