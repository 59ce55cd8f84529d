package produto

import (
	"context"
	"net/http"

	"onlinestore/internal/api/response"
	"onlinestore/internal/domain"
	"onlinestore/internal/pkg/logger"
	"onlinestore/internal/pkg/middleware"
)

// ProdutoService define o contrato que o Handler espera da camada de Serviço.
type ProdutoService interface {
	ListProdutos(ctx context.Context) ([]domain.Produto, error)
	GetProduto(ctx context.Context, id int64) (domain.Produto, error)
	CreateProduto(ctx context.Context, in domain.ProdutoInput) (domain.Produto, error)
	UpdateProduto(ctx context.Context, id int64, in domain.ProdutoInput) error
	DeleteProduto(ctx context.Context, id int64) error
}

// Handler expõe o catálogo: leituras públicas e escrita administrativa.
type Handler struct {
	Service ProdutoService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProdutoService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// ListHandler lida com GET /produtos e GET /admin/produtos.
// @Summary Lista todos os produtos
// @Tags produtos
// @Produce json
// @Success 200 {array} domain.Produto
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /produtos [get]
// @Router /admin/produtos [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	produtos, err := h.Service.ListProdutos(r.Context())
	response.Write(w, r, h.Logger, produtos, err, http.StatusOK)
}

// GetHandler lida com GET /produtos/{id} e GET /admin/produtos/{id}.
// @Summary Busca um produto pelo ID
// @Tags produtos
// @Produce json
// @Param id path int true "ID do produto"
// @Success 200 {object} domain.Produto
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /produtos/{id} [get]
// @Router /admin/produtos/{id} [get]
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := response.PathID(r, "id")
	if err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	p, err := h.Service.GetProduto(r.Context(), id)
	response.Write(w, r, h.Logger, p, err, http.StatusOK)
}

// CreateHandler lida com POST /admin/produtos.
// @Summary Cria um produto
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param produto body domain.ProdutoInput true "Dados do produto"
// @Success 201 {object} domain.Produto
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou token inválido"
// @Failure 401 {object} domain.ErrorResponse "Token ausente"
// @Failure 403 {object} domain.ErrorResponse "Role sem permissão"
// @Router /admin/produtos [post]
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	if claims, ok := middleware.GetUserClaimsFromContext(r.Context()); ok {
		h.Logger.Info("Criação de produto solicitada", map[string]interface{}{
			"cliente_id": claims.ClienteID,
			"role":       claims.Role,
		})
	}

	var in domain.ProdutoInput
	if err := response.Decode(r, &in); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusCreated)
		return
	}

	p, err := h.Service.CreateProduto(r.Context(), in)
	response.Write(w, r, h.Logger, p, err, http.StatusCreated)
}

// UpdateHandler lida com PUT /admin/produtos/{id}.
// @Summary Atualiza um produto
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do produto"
// @Param produto body domain.ProdutoInput true "Dados do produto"
// @Success 200 {object} domain.MessageResponse
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 403 {object} domain.ErrorResponse "Role sem permissão"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /admin/produtos/{id} [put]
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := response.PathID(r, "id")
	if err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	var in domain.ProdutoInput
	if err := response.Decode(r, &in); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	if err := h.Service.UpdateProduto(r.Context(), id, in); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}
	response.Write(w, r, h.Logger, domain.MessageResponse{Message: "Produto atualizado com sucesso."}, nil, http.StatusOK)
}

// DeleteHandler lida com DELETE /admin/produtos/{id}.
// @Summary Remove um produto
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do produto"
// @Success 200 {object} domain.MessageResponse
// @Failure 403 {object} domain.ErrorResponse "Role sem permissão"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /admin/produtos/{id} [delete]
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := response.PathID(r, "id")
	if err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	if err := h.Service.DeleteProduto(r.Context(), id); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}
	response.Write(w, r, h.Logger, domain.MessageResponse{Message: "Produto removido com sucesso."}, nil, http.StatusOK)
}
