package pedido

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"onlinestore/internal/domain"
	apperror "onlinestore/internal/errors"
	"onlinestore/internal/pkg/logger"
	"onlinestore/internal/pkg/middleware"
)

type MockPedidoService struct {
	mock.Mock
}

func (m *MockPedidoService) ListPedidos(ctx context.Context) ([]domain.Pedido, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Pedido), args.Error(1)
}

func (m *MockPedidoService) GetPedido(ctx context.Context, id int64) (domain.Pedido, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Pedido), args.Error(1)
}

func (m *MockPedidoService) CreatePedido(ctx context.Context, clienteID int64, req domain.PedidoRequest) (domain.Pedido, error) {
	args := m.Called(ctx, clienteID, req)
	return args.Get(0).(domain.Pedido), args.Error(1)
}

func (m *MockPedidoService) UpdateStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func TestListHandler_EmptyIsArray(t *testing.T) {
	svc := new(MockPedidoService)
	h := NewHandler(svc, logger.NewNopLogger())
	svc.On("ListPedidos", mock.Anything).Return([]domain.Pedido{}, nil)

	rec := httptest.NewRecorder()
	h.ListHandler(rec, httptest.NewRequest(http.MethodGet, "/pedidos", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestCreateHandler_UsesTokenOwner(t *testing.T) {
	svc := new(MockPedidoService)
	h := NewHandler(svc, logger.NewNopLogger())
	svc.On("CreatePedido", mock.Anything, int64(9), domain.PedidoRequest{Endereco: "Rua A, 1"}).
		Return(domain.Pedido{ID: 1, ClienteID: 9, Endereco: "Rua A, 1", Status: domain.StatusPending}, nil)

	req := httptest.NewRequest(http.MethodPost, "/pedidos", bytes.NewBufferString(`{"endereco":"Rua A, 1","cliente_id":77}`))
	ctx := context.WithValue(req.Context(), middleware.UserClaimsKey, middleware.UserClaims{ClienteID: 9, Role: domain.RoleCustomer})
	rec := httptest.NewRecorder()

	h.CreateHandler(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestUpdateStatusHandler(t *testing.T) {
	svc := new(MockPedidoService)
	h := NewHandler(svc, logger.NewNopLogger())
	svc.On("UpdateStatus", mock.Anything, int64(5), "shipped").Return(nil)
	svc.On("UpdateStatus", mock.Anything, int64(6), "shipped").Return(apperror.NewNotFoundError("pedido 6"))

	req := httptest.NewRequest(http.MethodPut, "/admin/pedidos/5", bytes.NewBufferString(`{"status":"shipped"}`))
	req.SetPathValue("id", "5")
	rec := httptest.NewRecorder()
	h.UpdateStatusHandler(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPut, "/admin/pedidos/6", bytes.NewBufferString(`{"status":"shipped"}`))
	req.SetPathValue("id", "6")
	rec = httptest.NewRecorder()
	h.UpdateStatusHandler(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
