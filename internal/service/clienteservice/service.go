package clienteservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"onlinestore/internal/domain"
	apperror "onlinestore/internal/errors"
	"onlinestore/internal/pkg/logger"
)

// MaxPasswordBytes é o limite de entrada do bcrypt.
const MaxPasswordBytes = 72

// ClienteRepository é o contrato de persistência esperado por este serviço.
type ClienteRepository interface {
	Save(ctx context.Context, cliente domain.Cliente) (domain.Cliente, error)
	FindByEmail(ctx context.Context, email string) (domain.Cliente, error)
	FindByID(ctx context.Context, id int64) (domain.Cliente, error)
}

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(clienteID int64, role string) (string, error)
}

// Service implementa registro, login e resolução de sessão de clientes.
type Service struct {
	repo     ClienteRepository
	tokenSvc TokenService
	logger   logger.Logger
	cost     int
}

// NewService cria uma nova instância do Service, injetando Repositório e TokenService.
func NewService(repo ClienteRepository, tokenSvc TokenService, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		tokenSvc: tokenSvc,
		logger:   log,
		cost:     bcrypt.DefaultCost,
	}
}

// WithHashCost ajusta o custo do bcrypt (testes usam bcrypt.MinCost).
func (s *Service) WithHashCost(cost int) *Service {
	s.cost = cost
	return s
}

// Register registra um novo cliente com o papel customer.
func (s *Service) Register(ctx context.Context, reg domain.ClienteRegistration) (domain.Cliente, error) {
	return s.RegisterWithRole(ctx, reg, domain.RoleCustomer)
}

// RegisterWithRole valida o payload, gera o hash bcrypt (com salt) da senha e persiste o cliente.
// Usado diretamente pelo cmd/seed para criar o administrador.
func (s *Service) RegisterWithRole(ctx context.Context, reg domain.ClienteRegistration, role domain.Role) (domain.Cliente, error) {
	// 1. Validação de presença
	reg.Nome = strings.TrimSpace(reg.Nome)
	reg.Email = strings.TrimSpace(strings.ToLower(reg.Email))
	if reg.Nome == "" || reg.Email == "" || reg.Password == "" {
		return domain.Cliente{}, apperror.NewValidationError("Nome, email e senha são obrigatórios.")
	}
	if len(reg.Password) > MaxPasswordBytes {
		return domain.Cliente{}, apperror.NewValidationError(
			fmt.Sprintf("A senha deve ter no máximo %d bytes.", MaxPasswordBytes))
	}

	// 2. Hashing da Senha
	hashed, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cost)
	if err != nil {
		return domain.Cliente{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	// 3. Persistência (o repositório traduz e-mail duplicado para ConflictError)
	cliente, err := s.repo.Save(ctx, domain.Cliente{
		Nome:     reg.Nome,
		Email:    reg.Email,
		Password: string(hashed),
		Role:     role,
	})
	if err != nil {
		return domain.Cliente{}, err
	}

	s.logger.Info("Cliente registrado.", map[string]interface{}{"cliente_id": cliente.ID, "role": string(role)})
	return cliente, nil
}

// Login autentica um cliente e devolve um JWT com {id, role}.
// E-mail desconhecido e senha errada produzem o mesmo erro 401.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", apperror.NewUnauthorizedError("Email ou senha inválidos.")
	}

	cliente, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return "", apperror.NewUnauthorizedError("Email ou senha inválidos.")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cliente.Password), []byte(password)); err != nil {
		s.logger.Debug("Senha incorreta no login.", map[string]interface{}{"cliente_id": cliente.ID})
		return "", apperror.NewUnauthorizedError("Email ou senha inválidos.")
	}

	tokenString, err := s.tokenSvc.GenerateToken(cliente.ID, string(cliente.Role))
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	return tokenString, nil
}

// GetByID resolve o cliente dono da sessão.
func (s *Service) GetByID(ctx context.Context, id int64) (domain.Cliente, error) {
	return s.repo.FindByID(ctx, id)
}
