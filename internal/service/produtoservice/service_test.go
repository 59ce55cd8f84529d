package produtoservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"onlinestore/internal/domain"
	apperror "onlinestore/internal/errors"
	"onlinestore/internal/pkg/logger"
	"onlinestore/internal/service/produtoservice"
)

// MockProdutoRepository é uma implementação mock da interface ProdutoRepository
type MockProdutoRepository struct {
	mock.Mock
}

func (m *MockProdutoRepository) FindAll(ctx context.Context) ([]domain.Produto, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Produto), args.Error(1)
}

func (m *MockProdutoRepository) FindByID(ctx context.Context, id int64) (domain.Produto, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Produto), args.Error(1)
}

func (m *MockProdutoRepository) Save(ctx context.Context, p domain.Produto) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProdutoRepository) Update(ctx context.Context, p domain.Produto) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProdutoRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService() (*produtoservice.Service, *MockProdutoRepository) {
	repo := new(MockProdutoRepository)
	return produtoservice.NewService(repo, logger.NewNopLogger()), repo
}

func TestListProdutos(t *testing.T) {
	svc, repo := newTestService()
	expected := []domain.Produto{{ID: 1, Nome: "Caneca"}, {ID: 2, Nome: "Livro"}}
	repo.On("FindAll", mock.Anything).Return(expected, nil)

	produtos, err := svc.ListProdutos(context.Background())

	require.NoError(t, err)
	assert.Equal(t, expected, produtos)
}

func TestCreateProduto_Success(t *testing.T) {
	svc, repo := newTestService()
	in := domain.ProdutoInput{Nome: "  Caneca ", Preco: decimal.RequireFromString("19.90"), Quantidade: 5}

	repo.On("Save", mock.Anything, mock.MatchedBy(func(p domain.Produto) bool {
		return p.ID == 0 && p.Nome == "Caneca"
	})).Return(int64(10), nil)

	p, err := svc.CreateProduto(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, int64(10), p.ID)
	assert.Equal(t, "Caneca", p.Nome)
	repo.AssertExpectations(t)
}

func TestCreateProduto_Validation(t *testing.T) {
	cases := map[string]domain.ProdutoInput{
		"nome vazio":                 {Nome: " ", Preco: decimal.NewFromInt(1)},
		"preço negativo":             {Nome: "X", Preco: decimal.NewFromInt(-1)},
		"quantidade negativa":        {Nome: "X", Preco: decimal.NewFromInt(1), Quantidade: -3},
		"preço acima do limite":      {Nome: "X", Preco: decimal.RequireFromString("1e13")},
		"quantidade acima do limite": {Nome: "X", Preco: decimal.NewFromInt(1), Quantidade: produtoservice.MaxQuantidade + 1},
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			svc, repo := newTestService()

			_, err := svc.CreateProduto(context.Background(), in)

			assert.IsType(t, &apperror.ValidationError{}, err)
			repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateProduto_RoundsPrecoToStoredScale(t *testing.T) {
	svc, repo := newTestService()

	repo.On("Save", mock.Anything, mock.MatchedBy(func(p domain.Produto) bool {
		return p.Preco.Equal(decimal.RequireFromString("20.00"))
	})).Return(int64(3), nil)

	p, err := svc.CreateProduto(context.Background(), domain.ProdutoInput{Nome: "Caneca", Preco: decimal.RequireFromString("19.999"), Quantidade: 1})

	require.NoError(t, err)
	assert.Equal(t, "20.00", p.Preco.StringFixed(2))
	assert.True(t, p.Preco.Equal(decimal.RequireFromString("20")))

	// O maior preço aceito pela coluna passa.
	repo.On("Save", mock.Anything, mock.AnythingOfType("domain.Produto")).Return(int64(4), nil)
	_, err = svc.CreateProduto(context.Background(), domain.ProdutoInput{Nome: "Caro", Preco: produtoservice.MaxPreco})
	assert.NoError(t, err)
}

func TestCreateProduto_ZeroPriceAllowed(t *testing.T) {
	svc, repo := newTestService()
	repo.On("Save", mock.Anything, mock.Anything).Return(int64(1), nil)

	_, err := svc.CreateProduto(context.Background(), domain.ProdutoInput{Nome: "Brinde", Preco: decimal.Zero})

	assert.NoError(t, err)
}

func TestUpdateProduto_NotFoundWhenNoRowsAffected(t *testing.T) {
	svc, repo := newTestService()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(p domain.Produto) bool { return p.ID == 8 })).Return(int64(0), nil)

	err := svc.UpdateProduto(context.Background(), 8, domain.ProdutoInput{Nome: "X", Preco: decimal.NewFromInt(2)})

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestUpdateProduto_Success(t *testing.T) {
	svc, repo := newTestService()
	repo.On("Update", mock.Anything, mock.Anything).Return(int64(1), nil)

	err := svc.UpdateProduto(context.Background(), 8, domain.ProdutoInput{Nome: "X", Preco: decimal.NewFromInt(2)})

	assert.NoError(t, err)
}

func TestDeleteProduto(t *testing.T) {
	svc, repo := newTestService()
	repo.On("Delete", mock.Anything, int64(3)).Return(int64(1), nil)
	repo.On("Delete", mock.Anything, int64(4)).Return(int64(0), nil)
	repo.On("Delete", mock.Anything, int64(5)).Return(int64(0), apperror.NewDBError("delete", errors.New("fk")))

	assert.NoError(t, svc.DeleteProduto(context.Background(), 3))
	assert.IsType(t, &apperror.NotFoundError{}, svc.DeleteProduto(context.Background(), 4))
	assert.IsType(t, &apperror.InternalError{}, svc.DeleteProduto(context.Background(), 5))
}
