package pedidoservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"onlinestore/internal/domain"
	apperror "onlinestore/internal/errors"
	"onlinestore/internal/pkg/logger"
)

// PedidoRepository define o contrato que o Serviço de Pedidos espera da camada de Persistência.
type PedidoRepository interface {
	FindAll(ctx context.Context) ([]domain.Pedido, error)
	FindByID(ctx context.Context, id int64) (domain.Pedido, error)
	Save(ctx context.Context, p domain.Pedido) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) (int64, error)
}

// Service implementa leitura, criação e atualização de status de pedidos.
// Pedidos não têm itens e não alteram o estoque dos produtos.
type Service struct {
	repo   PedidoRepository
	logger logger.Logger
	now    func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Pedidos.
func NewService(repo PedidoRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log, now: time.Now}
}

// ListPedidos retorna todos os pedidos, sem filtrar pelo cliente que consulta.
func (s *Service) ListPedidos(ctx context.Context) ([]domain.Pedido, error) {
	return s.repo.FindAll(ctx)
}

// GetPedido busca um pedido pelo ID.
func (s *Service) GetPedido(ctx context.Context, id int64) (domain.Pedido, error) {
	return s.repo.FindByID(ctx, id)
}

// CreatePedido registra um pedido "pending" para o cliente autenticado.
func (s *Service) CreatePedido(ctx context.Context, clienteID int64, req domain.PedidoRequest) (domain.Pedido, error) {
	endereco := strings.TrimSpace(req.Endereco)
	if endereco == "" {
		return domain.Pedido{}, apperror.NewValidationError("O endereço de entrega é obrigatório.")
	}

	pedido := domain.Pedido{
		ClienteID: clienteID,
		Horario:   s.now().UTC().Truncate(time.Microsecond), // precisão do TIMESTAMPTZ
		Endereco:  endereco,
		Status:    domain.StatusPending,
	}

	id, err := s.repo.Save(ctx, pedido)
	if err != nil {
		return domain.Pedido{}, err
	}
	pedido.ID = id

	s.logger.Info("Pedido criado.", map[string]interface{}{"pedido_id": id, "cliente_id": clienteID})
	return pedido, nil
}

// UpdateStatus altera o status de um pedido (rota admin). Zero linhas afetadas vira 404.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return apperror.NewValidationError("O status do pedido é obrigatório.")
	}

	affected, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Pedido com ID %d não encontrado.", id))
	}

	s.logger.Info("Status do pedido atualizado.", map[string]interface{}{"pedido_id": id, "status": status})
	return nil
}
