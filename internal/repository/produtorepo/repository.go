package produtorepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"onlinestore/internal/domain"
	"onlinestore/internal/errors"
	"onlinestore/internal/pkg/cache"
	"onlinestore/internal/pkg/logger"
)

// produtoCacheKey é a chave de cache de um produto individual.
const produtoCacheKey = "produto:%d"

const selectColumns = `SELECT id, nome, preco, quantidade, categoria_id FROM produtos`

// ProdutoRepository acessa a tabela produtos, com cache-aside no Redis para leituras por ID.
type ProdutoRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewProdutoRepository cria o repositório injetando o pool de DB e o cliente de cache.
func NewProdutoRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, log logger.Logger) *ProdutoRepository {
	return &ProdutoRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    log,
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProduto(s scanner) (domain.Produto, error) {
	var p domain.Produto
	err := s.Scan(&p.ID, &p.Nome, &p.Preco, &p.Quantidade, &p.CategoriaID)
	return p, err
}

// FindAll retorna todos os produtos ordenados por ID. Nunca retorna nil.
func (r *ProdutoRepository) FindAll(ctx context.Context) ([]domain.Produto, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, selectColumns+` ORDER BY id`)
	if err != nil {
		r.logger.Error("Falha ao executar FindAll de produtos.", err)
		return nil, errors.NewDBError("Falha ao buscar produtos", err)
	}
	defer rows.Close()

	produtos := []domain.Produto{}
	for rows.Next() {
		p, err := scanProduto(rows)
		if err != nil {
			return nil, errors.NewDBError("Falha ao mapear produtos do DB", err)
		}
		produtos = append(produtos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração de produtos", err)
	}

	r.logger.Debug("FindAll de produtos concluído.", map[string]interface{}{"total": len(produtos)})
	return produtos, nil
}

// FindByID busca um produto pelo ID, utilizando a estratégia Cache-Aside.
func (r *ProdutoRepository) FindByID(ctx context.Context, id int64) (domain.Produto, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(produtoCacheKey, id)

	// 1. Tentar o cache
	if cached, err := r.Cache.Get(ctxTimeout, key); err == nil {
		var p domain.Produto
		if json.Unmarshal([]byte(cached), &p) == nil {
			r.logger.Debug("Cache HIT de produto.", map[string]interface{}{"produto_id": id})
			return p, nil
		}
	} else if err != cache.ErrCacheMiss {
		// Falha real de cache (ex: Redis fora): segue para o DB
		r.logger.Warn("Falha ao ler produto do cache.", map[string]interface{}{"produto_id": id, "error": err.Error()})
	}

	// 2. Banco de dados
	p, err := scanProduto(r.DB.QueryRowContext(ctxTimeout, selectColumns+` WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return domain.Produto{}, errors.NewNotFoundError(fmt.Sprintf("Produto com ID %d não existe.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar produto no DB.", err)
		return domain.Produto{}, errors.NewDBError("Falha ao buscar produto", err)
	}

	// 3. Popular o cache
	if payload, marshalErr := json.Marshal(p); marshalErr == nil {
		if setErr := r.Cache.Set(ctxTimeout, key, payload, r.CacheTTL); setErr != nil {
			r.logger.Warn("Falha ao gravar produto no cache.", map[string]interface{}{"produto_id": id, "error": setErr.Error()})
		}
	}

	return p, nil
}

// Save insere um produto e retorna o ID gerado.
func (r *ProdutoRepository) Save(ctx context.Context, p domain.Produto) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `INSERT INTO produtos (nome, preco, quantidade, categoria_id)
                   VALUES ($1, $2, $3, $4)
                   RETURNING id`

	var id int64
	err := r.DB.QueryRowContext(ctxTimeout, query, p.Nome, p.Preco, p.Quantidade, p.CategoriaID).Scan(&id)
	if err != nil {
		r.logger.Error("Falha ao inserir produto no DB.", err)
		return 0, errors.NewDBError("Falha ao inserir produto", err)
	}

	r.logger.Info("Produto inserido.", map[string]interface{}{"produto_id": id, "nome": p.Nome})
	return id, nil
}

// Update regrava os campos de um produto e retorna o número de linhas afetadas.
func (r *ProdutoRepository) Update(ctx context.Context, p domain.Produto) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `UPDATE produtos
                   SET nome = $1, preco = $2, quantidade = $3, categoria_id = $4
                   WHERE id = $5`

	result, err := r.DB.ExecContext(ctxTimeout, query, p.Nome, p.Preco, p.Quantidade, p.CategoriaID, p.ID)
	if err != nil {
		r.logger.Error("Falha ao atualizar produto no DB.", err)
		return 0, errors.NewDBError("Falha ao atualizar produto", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}

	r.invalidate(ctxTimeout, p.ID)
	return affected, nil
}

// Delete remove um produto e retorna o número de linhas afetadas.
func (r *ProdutoRepository) Delete(ctx context.Context, id int64) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM produtos WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar produto do DB.", err)
		return 0, errors.NewDBError("Falha ao deletar produto", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}

	r.invalidate(ctxTimeout, id)
	return affected, nil
}

// invalidate remove a entrada do cache após escrita.
func (r *ProdutoRepository) invalidate(ctx context.Context, id int64) {
	if err := r.Cache.Delete(ctx, fmt.Sprintf(produtoCacheKey, id)); err != nil {
		r.logger.Warn("Falha ao invalidar cache de produto.", map[string]interface{}{"produto_id": id, "error": err.Error()})
	}
}
