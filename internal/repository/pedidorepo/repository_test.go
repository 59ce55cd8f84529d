package pedidorepo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onlinestore/internal/domain"
	apperror "onlinestore/internal/errors"
	"onlinestore/internal/pkg/logger"
)

var pedidoColumns = []string{"id", "cliente_id", "horario", "endereco", "status"}

func newTestRepo(t *testing.T) (*PedidoRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPedidoRepository(db, time.Second, logger.NewNopLogger()), mock
}

func TestFindAll(t *testing.T) {
	repo, mock := newTestRepo(t)
	horario := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM pedidos\s+ORDER BY horario DESC`).
		WillReturnRows(sqlmock.NewRows(pedidoColumns).
			AddRow(int64(5), int64(1), horario, "Rua A, 10", "pending"))

	pedidos, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, pedidos, 1)
	assert.Equal(t, domain.Pedido{ID: 5, ClienteID: 1, Horario: horario, Endereco: "Rua A, 10", Status: "pending"}, pedidos[0])
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`WHERE id = \$1`).WithArgs(int64(5)).WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 5)

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestSave(t *testing.T) {
	repo, mock := newTestRepo(t)
	horario := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO pedidos`).
		WithArgs(int64(3), horario, "Av. Central, 200", domain.StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))

	id, err := repo.Save(context.Background(), domain.Pedido{
		ClienteID: 3,
		Horario:   horario,
		Endereco:  "Av. Central, 200",
		Status:    domain.StatusPending,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(`UPDATE pedidos SET status = \$1 WHERE id = \$2`).
		WithArgs("shipped", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.UpdateStatus(context.Background(), 5, "shipped")

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

func TestUpdateStatus_DBError(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(`UPDATE pedidos`).WillReturnError(errors.New("deadlock detected"))

	_, err := repo.UpdateStatus(context.Background(), 5, "shipped")

	assert.IsType(t, &apperror.InternalError{}, err)
}
