package produtoservice

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"onlinestore/internal/domain"
	apperror "onlinestore/internal/errors"
	"onlinestore/internal/pkg/logger"
)

// ProdutoRepository define o contrato que este Serviço espera da camada de Persistência.
type ProdutoRepository interface {
	FindAll(ctx context.Context) ([]domain.Produto, error)
	FindByID(ctx context.Context, id int64) (domain.Produto, error)
	Save(ctx context.Context, p domain.Produto) (int64, error)
	Update(ctx context.Context, p domain.Produto) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// Limites das colunas produtos.preco (NUMERIC(12,2)) e produtos.quantidade (INTEGER).
const (
	PrecoScale    = 2
	MaxQuantidade = math.MaxInt32
)

// MaxPreco é o maior valor que cabe em NUMERIC(12,2).
var MaxPreco = decimal.RequireFromString("9999999999.99")

// Service implementa o catálogo de produtos.
type Service struct {
	repo   ProdutoRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Produto.
func NewService(repo ProdutoRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// ListProdutos retorna o catálogo completo.
func (s *Service) ListProdutos(ctx context.Context) ([]domain.Produto, error) {
	return s.repo.FindAll(ctx)
}

// GetProduto busca um produto pelo ID.
func (s *Service) GetProduto(ctx context.Context, id int64) (domain.Produto, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateProduto valida e insere um produto, devolvendo-o com o ID gerado.
func (s *Service) CreateProduto(ctx context.Context, in domain.ProdutoInput) (domain.Produto, error) {
	if err := validate(&in); err != nil {
		return domain.Produto{}, err
	}

	id, err := s.repo.Save(ctx, in.ToProduto(0))
	if err != nil {
		return domain.Produto{}, err
	}

	s.logger.Info("Produto criado.", map[string]interface{}{"produto_id": id})
	return in.ToProduto(id), nil
}

// UpdateProduto regrava todos os campos do produto. Zero linhas afetadas vira 404.
func (s *Service) UpdateProduto(ctx context.Context, id int64, in domain.ProdutoInput) error {
	if err := validate(&in); err != nil {
		return err
	}

	affected, err := s.repo.Update(ctx, in.ToProduto(id))
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %d não existe.", id))
	}
	return nil
}

// DeleteProduto remove um produto. Zero linhas afetadas vira 404.
func (s *Service) DeleteProduto(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %d não existe.", id))
	}

	s.logger.Info("Produto removido.", map[string]interface{}{"produto_id": id})
	return nil
}

func validate(in *domain.ProdutoInput) error {
	in.Nome = strings.TrimSpace(in.Nome)
	if in.Nome == "" {
		return apperror.NewValidationError("O nome do produto é obrigatório.")
	}
	// Mesma escala e arredondamento da coluna.
	in.Preco = in.Preco.Round(PrecoScale)
	if in.Preco.IsNegative() {
		return apperror.NewValidationError("O preço do produto não pode ser negativo.")
	}
	if in.Preco.GreaterThan(MaxPreco) {
		return apperror.NewValidationError(fmt.Sprintf("O preço do produto não pode passar de %s.", MaxPreco.StringFixed(PrecoScale)))
	}
	if in.Quantidade < 0 {
		return apperror.NewValidationError("A quantidade do produto não pode ser negativa.")
	}
	if in.Quantidade > MaxQuantidade {
		return apperror.NewValidationError(fmt.Sprintf("A quantidade do produto não pode passar de %d.", MaxQuantidade))
	}
	return nil
}
