package domain

import "time"

// StatusPending é o status inicial de um pedido recém-criado.
const StatusPending = "pending"

// Pedido representa o pedido de um cliente. Itens do pedido não são modelados.
type Pedido struct {
	ID        int64     `json:"id"`
	ClienteID int64     `json:"cliente_id"`
	Horario   time.Time `json:"horario"`
	Endereco  string    `json:"endereco"`
	Status    string    `json:"status"`
}

// PedidoRequest é o payload de criação de pedido pelo cliente.
type PedidoRequest struct {
	Endereco string `json:"endereco" example:"Rua das Flores, 123"`
}

// StatusUpdateRequest é o payload de PUT /admin/pedidos/{id}.
type StatusUpdateRequest struct {
	Status string `json:"status" example:"shipped"`
}
