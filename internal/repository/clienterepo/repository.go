package clienterepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"onlinestore/internal/domain"
	apperror "onlinestore/internal/errors"
	"onlinestore/internal/pkg/logger"
)

// uniqueViolation é o SQLSTATE do PostgreSQL para violação de UNIQUE.
const uniqueViolation = "23505"

// ClienteRepository acessa a tabela clientes.
type ClienteRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewClienteRepository cria uma nova instância do ClienteRepository, injetando o DB.
func NewClienteRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *ClienteRepository {
	return &ClienteRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// Save insere um novo cliente e devolve-o com ID e created_at preenchidos pelo banco.
func (r *ClienteRepository) Save(ctx context.Context, c domain.Cliente) (domain.Cliente, error) {
	r.logger.Debug("Iniciando Save de cliente no repositório.", map[string]interface{}{"email": c.Email})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `INSERT INTO clientes (nome, email, password, role)
                   VALUES ($1, $2, $3, $4)
                   RETURNING id, created_at`

	err := r.DB.QueryRowContext(ctxTimeout, query, c.Nome, c.Email, c.Password, string(c.Role)).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.Cliente{}, apperror.NewConflictError(fmt.Sprintf("O email '%s' já está em uso.", c.Email))
		}
		r.logger.Error("Falha ao inserir cliente no DB.", err)
		return domain.Cliente{}, apperror.NewDBError("Falha ao inserir cliente", err)
	}

	r.logger.Info("Cliente salvo com sucesso no repositório.", map[string]interface{}{"cliente_id": c.ID})
	return c, nil
}

// FindByEmail busca um cliente pelo endereço de e-mail (usado no login).
func (r *ClienteRepository) FindByEmail(ctx context.Context, email string) (domain.Cliente, error) {
	const query = `SELECT id, nome, email, password, role, created_at FROM clientes WHERE email = $1`
	return r.findOne(ctx, query, email, fmt.Sprintf("Cliente com email '%s' não encontrado.", email))
}

// FindByID busca um cliente pelo ID (resolução de sessão).
func (r *ClienteRepository) FindByID(ctx context.Context, id int64) (domain.Cliente, error) {
	const query = `SELECT id, nome, email, password, role, created_at FROM clientes WHERE id = $1`
	return r.findOne(ctx, query, id, fmt.Sprintf("Cliente com ID %d não encontrado.", id))
}

func (r *ClienteRepository) findOne(ctx context.Context, query string, arg interface{}, notFoundMsg string) (domain.Cliente, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var c domain.Cliente
	var role string
	err := r.DB.QueryRowContext(ctxTimeout, query, arg).Scan(
		&c.ID,
		&c.Nome,
		&c.Email,
		&c.Password,
		&role,
		&c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Cliente{}, apperror.NewNotFoundError(notFoundMsg)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar cliente no DB.", err)
		return domain.Cliente{}, apperror.NewDBError("Falha ao buscar cliente", err)
	}

	c.Role = domain.Role(role)
	return c, nil
}
