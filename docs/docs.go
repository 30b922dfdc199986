// Package docs registers the OpenAPI document served under /swagger/.
// Regenerate with `swag init -g cmd/api/main.go` after changing handler
// annotations.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "Registration details", "name": "body", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.registerResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/shoes/all": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["shoes"],
                "summary": "List all shoes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.shoesResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/orders/all": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List all orders with their shoe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ordersResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/transactions/all": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List all transactions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.transactionsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/authorized/user": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.UserView"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/authorized/admin/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.usersResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/authorized/admin/users/{username}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Change account state",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true},
                    {"description": "New state", "name": "body", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handler.accountStateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.UserView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "timestamp": {"type": "string"},
                "path": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "expiry": {"type": "string"},
                "expires_in_ms": {"type": "integer"},
                "username": {"type": "string"},
                "roles": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.registerRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}, "email": {"type": "string"}}
        },
        "handler.registerResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "user": {"$ref": "#/definitions/ports.UserView"}}
        },
        "handler.accountStateRequest": {
            "type": "object",
            "properties": {"enabled": {"type": "boolean"}, "locked": {"type": "boolean"}}
        },
        "handler.shoesResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "shoes": {"type": "array", "items": {"$ref": "#/definitions/ports.ShoeView"}}}
        },
        "handler.ordersResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "orders": {"type": "array", "items": {"$ref": "#/definitions/ports.OrderView"}}}
        },
        "handler.transactionsResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "transactions": {"type": "array", "items": {"$ref": "#/definitions/ports.TransactionView"}}}
        },
        "handler.usersResponse": {
            "type": "object",
            "properties": {"users": {"type": "array", "items": {"$ref": "#/definitions/ports.UserView"}}}
        },
        "ports.ShoeView": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "type": {"type": "string"},
                "size": {"type": "integer"},
                "price": {"type": "integer"},
                "production_price": {"type": "integer"}
            }
        },
        "ports.OrderView": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "shoe_id": {"type": "integer"},
                "shoe_type": {"type": "string"},
                "shoe_size": {"type": "integer"},
                "shoe_price": {"type": "integer"},
                "shoe_production_price": {"type": "integer"},
                "status": {"type": "string"},
                "description": {"type": "string"},
                "date": {"type": "string"},
                "quantity": {"type": "integer"}
            }
        },
        "ports.TransactionView": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "order_id": {"type": "integer"},
                "shoe_id": {"type": "integer"},
                "amount": {"type": "string"},
                "transaction_date": {"type": "string"},
                "payment_method": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "ports.UserView": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "enabled": {"type": "boolean"},
                "locked": {"type": "boolean"}
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Shoe Inventory API",
	Description:      "Footwear inventory backend with token authentication and path-based access control.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
