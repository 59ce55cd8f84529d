package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code     int    `json:"code" example:"400"`
	Category string `json:"category" example:"VALIDATION_ERROR"`
	Message  string `json:"message" example:"Erro de Validação: O nome do produto é obrigatório."`
}

// MessageResponse é usada nas operações que não devolvem entidade (update/delete).
type MessageResponse struct {
	Message string `json:"message" example:"Produto atualizado com sucesso."`
}
