package domain

import "time"

// Cliente representa a conta de um cliente (ou administrador) da loja.
type Cliente struct {
	ID        int64     `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // Hash bcrypt; nunca sai no JSON de resposta
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Role é o papel do cliente. Apenas RoleAdmin é verificado pelo gate.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// ClienteRegistration representa o payload de entrada para o registro.
type ClienteRegistration struct {
	Nome     string `json:"nome" example:"Maria Silva"`
	Email    string `json:"email" example:"maria@example.com"`
	Password string `json:"password" example:"s3nh@forte"`
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Email    string `json:"email" example:"maria@example.com"`
	Password string `json:"password" example:"s3nh@forte"`
}

// TokenResponse é devolvido pelo login.
type TokenResponse struct {
	Token string `json:"token"`
}
