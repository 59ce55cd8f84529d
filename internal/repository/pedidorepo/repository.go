package pedidorepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"onlinestore/internal/domain"
	"onlinestore/internal/errors"
	"onlinestore/internal/pkg/logger"
)

// PedidoRepository acessa a tabela pedidos.
type PedidoRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewPedidoRepository cria e retorna uma nova instância do Repositório de Pedidos.
func NewPedidoRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *PedidoRepository {
	return &PedidoRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// FindAll retorna todos os pedidos, de qualquer cliente, do mais recente para o mais antigo.
func (r *PedidoRepository) FindAll(ctx context.Context) ([]domain.Pedido, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
        SELECT id, cliente_id, horario, endereco, status
        FROM pedidos
        ORDER BY horario DESC, id DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao executar FindAll de pedidos.", err)
		return nil, errors.NewDBError("Falha ao buscar pedidos", err)
	}
	defer rows.Close()

	pedidos := []domain.Pedido{}
	for rows.Next() {
		var p domain.Pedido
		if err := rows.Scan(&p.ID, &p.ClienteID, &p.Horario, &p.Endereco, &p.Status); err != nil {
			return nil, errors.NewDBError("Falha ao mapear pedidos do DB", err)
		}
		pedidos = append(pedidos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração de pedidos", err)
	}

	return pedidos, nil
}

// FindByID busca um pedido pelo ID.
func (r *PedidoRepository) FindByID(ctx context.Context, id int64) (domain.Pedido, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
        SELECT id, cliente_id, horario, endereco, status
        FROM pedidos
        WHERE id = $1`

	var p domain.Pedido
	err := r.DB.QueryRowContext(ctxTimeout, query, id).Scan(&p.ID, &p.ClienteID, &p.Horario, &p.Endereco, &p.Status)
	if err == sql.ErrNoRows {
		return domain.Pedido{}, errors.NewNotFoundError(fmt.Sprintf("Pedido com ID %d não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar pedido no DB.", err)
		return domain.Pedido{}, errors.NewDBError("Falha ao buscar pedido", err)
	}

	return p, nil
}

// Save insere um pedido e retorna o ID gerado.
func (r *PedidoRepository) Save(ctx context.Context, p domain.Pedido) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
        INSERT INTO pedidos (cliente_id, horario, endereco, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	var id int64
	if err := r.DB.QueryRowContext(ctxTimeout, query, p.ClienteID, p.Horario, p.Endereco, p.Status).Scan(&id); err != nil {
		r.logger.Error("Falha ao inserir pedido no DB.", err)
		return 0, errors.NewDBError("Falha ao inserir pedido", err)
	}

	r.logger.Info("Pedido inserido.", map[string]interface{}{"pedido_id": id, "cliente_id": p.ClienteID})
	return id, nil
}

// UpdateStatus altera o status de um pedido e retorna o número de linhas afetadas.
func (r *PedidoRepository) UpdateStatus(ctx context.Context, id int64, status string) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `UPDATE pedidos SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		r.logger.Error("Falha ao atualizar status do pedido.", err)
		return 0, errors.NewDBError("Falha ao atualizar pedido", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	return affected, nil
}
