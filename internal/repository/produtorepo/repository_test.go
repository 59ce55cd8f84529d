package produtorepo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onlinestore/internal/domain"
	apperror "onlinestore/internal/errors"
	"onlinestore/internal/pkg/cache"
	"onlinestore/internal/pkg/logger"
)

var produtoColumns = []string{"id", "nome", "preco", "quantidade", "categoria_id"}

func newTestRepo(t *testing.T) (*ProdutoRepository, sqlmock.Sqlmock, *cache.MemoryClient) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mem := cache.NewMemoryClient()
	return NewProdutoRepository(db, mem, time.Second, time.Minute, logger.NewNopLogger()), mock, mem
}

func TestFindAll_MapsRows(t *testing.T) {
	repo, mock, _ := newTestRepo(t)

	mock.ExpectQuery(`SELECT id, nome, preco, quantidade, categoria_id FROM produtos ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(produtoColumns).
			AddRow(int64(1), "Caneca", "19.90", int64(10), int64(3)).
			AddRow(int64(2), "Livro", "45.00", int64(0), nil))

	produtos, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, produtos, 2)
	assert.Equal(t, "Caneca", produtos[0].Nome)
	assert.True(t, decimal.RequireFromString("19.90").Equal(produtos[0].Preco))
	require.NotNil(t, produtos[0].CategoriaID)
	assert.Equal(t, int64(3), *produtos[0].CategoriaID)
	assert.Nil(t, produtos[1].CategoriaID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAll_EmptyIsNotNil(t *testing.T) {
	repo, mock, _ := newTestRepo(t)

	mock.ExpectQuery(`FROM produtos`).WillReturnRows(sqlmock.NewRows(produtoColumns))

	produtos, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, produtos)
	assert.Empty(t, produtos)
}

func TestFindAll_DBError(t *testing.T) {
	repo, mock, _ := newTestRepo(t)

	mock.ExpectQuery(`FROM produtos`).WillReturnError(errors.New("connection reset"))

	_, err := repo.FindAll(context.Background())

	assert.IsType(t, &apperror.InternalError{}, err)
}

func TestFindByID_CacheAside(t *testing.T) {
	repo, mock, mem := newTestRepo(t)

	mock.ExpectQuery(`WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(produtoColumns).AddRow(int64(7), "Teclado", "150.00", int64(4), nil))

	// 1ª leitura: DB + popular cache
	first, err := repo.FindByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Teclado", first.Nome)

	cached, err := mem.Get(context.Background(), "produto:7")
	require.NoError(t, err)
	assert.Contains(t, cached, "Teclado")

	// 2ª leitura: somente cache (nenhuma query nova esperada)
	second, err := repo.FindByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.Preco.Equal(second.Preco))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, _ := newTestRepo(t)

	mock.ExpectQuery(`WHERE id = \$1`).WithArgs(int64(99)).WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 99)

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestSave_ReturnsInsertedID(t *testing.T) {
	repo, mock, _ := newTestRepo(t)
	categoria := int64(2)

	mock.ExpectQuery(`INSERT INTO produtos`).
		WithArgs("Caneca", sqlmock.AnyArg(), 10, &categoria).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	id, err := repo.Save(context.Background(), domain.Produto{
		Nome:        "Caneca",
		Preco:       decimal.RequireFromString("19.90"),
		Quantidade:  10,
		CategoriaID: &categoria,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_InvalidatesCache(t *testing.T) {
	repo, mock, mem := newTestRepo(t)
	require.NoError(t, mem.Set(context.Background(), "produto:3", `{"id":3,"nome":"Velho"}`, time.Minute))

	mock.ExpectExec(`UPDATE produtos`).
		WithArgs("Novo", sqlmock.AnyArg(), 1, nil, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Update(context.Background(), domain.Produto{ID: 3, Nome: "Novo", Preco: decimal.NewFromInt(5), Quantidade: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	_, err = mem.Get(context.Background(), "produto:3")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestDelete_ReturnsAffectedCount(t *testing.T) {
	repo, mock, _ := newTestRepo(t)

	mock.ExpectExec(`DELETE FROM produtos WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Delete(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
