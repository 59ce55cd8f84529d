package domain

import (
	"github.com/shopspring/decimal"
)

// Produto representa um item do catálogo da loja.
type Produto struct {
	ID          int64           `json:"id"`
	Nome        string          `json:"nome"`
	Preco       decimal.Decimal `json:"preco" swaggertype:"string" example:"19.90"`
	Quantidade  int             `json:"quantidade"`               // Estoque disponível (não é decrementado por pedidos)
	CategoriaID *int64          `json:"categoria_id" example:"1"` // Referência não validada a categorias
}

// ProdutoInput é o payload aceito na criação e atualização de produtos (rotas admin).
type ProdutoInput struct {
	Nome        string          `json:"nome"`
	Preco       decimal.Decimal `json:"preco" swaggertype:"string" example:"19.90"`
	Quantidade  int             `json:"quantidade"`
	CategoriaID *int64          `json:"categoria_id"`
}

// ToProduto converte o payload em entidade, aplicando o ID informado.
func (in ProdutoInput) ToProduto(id int64) Produto {
	return Produto{
		ID:          id,
		Nome:        in.Nome,
		Preco:       in.Preco,
		Quantidade:  in.Quantidade,
		CategoriaID: in.CategoriaID,
	}
}
