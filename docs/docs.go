// Package docs registra a documentação OpenAPI servida em /swagger/.
// Mantida em sincronia com as anotações @Router dos handlers em internal/api.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/clientes/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["clientes"],
                "summary": "Registra um novo cliente",
                "parameters": [
                    {"description": "Nome, email e senha", "name": "registration", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.ClienteRegistration"}}
                ],
                "responses": {
                    "201": {"description": "Cliente criado com sucesso", "schema": {"$ref": "#/definitions/domain.Cliente"}},
                    "400": {"description": "Payload inválido ou campos obrigatórios ausentes", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "409": {"description": "Email já cadastrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/clientes/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["clientes"],
                "summary": "Autentica um cliente e retorna um JWT",
                "parameters": [
                    {"description": "Credenciais do cliente", "name": "login", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token JWT emitido", "schema": {"$ref": "#/definitions/domain.TokenResponse"}},
                    "401": {"description": "Credenciais inválidas", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/clientes/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["clientes"],
                "summary": "Perfil do cliente autenticado",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Cliente"}},
                    "401": {"description": "Token ausente", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/produtos": {
            "get": {
                "produces": ["application/json"],
                "tags": ["produtos"],
                "summary": "Lista todos os produtos",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Produto"}}}
                }
            }
        },
        "/produtos/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["produtos"],
                "summary": "Busca um produto pelo ID",
                "parameters": [{"type": "integer", "description": "ID do produto", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Produto"}},
                    "404": {"description": "Produto não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/pedidos": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pedidos"],
                "summary": "Lista os pedidos",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Pedido"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pedidos"],
                "summary": "Cria um pedido para o cliente autenticado",
                "parameters": [
                    {"description": "Endereço de entrega", "name": "pedido", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.PedidoRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Pedido"}},
                    "400": {"description": "Endereço ausente ou token inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/pedidos/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pedidos"],
                "summary": "Busca um pedido pelo ID",
                "parameters": [{"type": "integer", "description": "ID do pedido", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Pedido"}},
                    "404": {"description": "Pedido não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/admin/produtos": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Lista produtos",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Produto"}}},
                    "403": {"description": "Role sem permissão", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Cria um produto",
                "parameters": [
                    {"description": "Dados do produto", "name": "produto", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.ProdutoInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Produto"}},
                    "403": {"description": "Role sem permissão", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/admin/produtos/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Busca um produto",
                "parameters": [{"type": "integer", "description": "ID do produto", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Produto"}},
                    "404": {"description": "Produto não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Atualiza um produto",
                "parameters": [
                    {"type": "integer", "description": "ID do produto", "name": "id", "in": "path", "required": true},
                    {"description": "Dados do produto", "name": "produto", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.ProdutoInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.MessageResponse"}},
                    "404": {"description": "Produto não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Remove um produto",
                "parameters": [{"type": "integer", "description": "ID do produto", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.MessageResponse"}},
                    "404": {"description": "Produto não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/admin/pedidos": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Lista pedidos",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Pedido"}}},
                    "403": {"description": "Role sem permissão", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/admin/pedidos/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Atualiza o status de um pedido",
                "parameters": [
                    {"type": "integer", "description": "ID do pedido", "name": "id", "in": "path", "required": true},
                    {"description": "Novo status", "name": "status", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.StatusUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.MessageResponse"}},
                    "404": {"description": "Pedido não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Cliente": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nome": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "example": "customer"},
                "created_at": {"type": "string"}
            }
        },
        "domain.ClienteRegistration": {
            "type": "object",
            "properties": {
                "nome": {"type": "string", "example": "Maria Silva"},
                "email": {"type": "string", "example": "maria@example.com"},
                "password": {"type": "string", "example": "s3nh@forte"}
            }
        },
        "domain.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "maria@example.com"},
                "password": {"type": "string", "example": "s3nh@forte"}
            }
        },
        "domain.TokenResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        },
        "domain.Produto": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nome": {"type": "string"},
                "preco": {"type": "string", "example": "19.90"},
                "quantidade": {"type": "integer"},
                "categoria_id": {"type": "integer", "example": 1}
            }
        },
        "domain.ProdutoInput": {
            "type": "object",
            "properties": {
                "nome": {"type": "string"},
                "preco": {"type": "string", "example": "19.90"},
                "quantidade": {"type": "integer"},
                "categoria_id": {"type": "integer"}
            }
        },
        "domain.Pedido": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "cliente_id": {"type": "integer"},
                "horario": {"type": "string"},
                "endereco": {"type": "string"},
                "status": {"type": "string", "example": "pending"}
            }
        },
        "domain.PedidoRequest": {
            "type": "object",
            "properties": {"endereco": {"type": "string", "example": "Rua das Flores, 123"}}
        },
        "domain.StatusUpdateRequest": {
            "type": "object",
            "properties": {"status": {"type": "string", "example": "shipped"}}
        },
        "domain.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "domain.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 400},
                "category": {"type": "string", "example": "VALIDATION_ERROR"},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Online Store API",
	Description:      "Catálogo de produtos, contas de clientes e pedidos, com rotas administrativas protegidas por JWT.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
