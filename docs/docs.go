// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/products": {
            "get": {
                "tags": ["Products"],
                "summary": "List products",
                "parameters": [
                    {"type": "string", "description": "active or inactive", "name": "status", "in": "query"},
                    {"type": "boolean", "description": "Only active products below minimum stock", "name": "low-stock", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid filter"}}
            },
            "post": {
                "tags": ["Products"],
                "summary": "Create a product",
                "parameters": [
                    {"description": "Product", "name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreateProductRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Validation failed"}}
            }
        },
        "/products/batch": {
            "post": {
                "tags": ["Products"],
                "summary": "Create products in batch",
                "responses": {"201": {"description": "Per-item outcomes"}}
            }
        },
        "/products/active": {
            "get": {"tags": ["Products"], "summary": "List active products", "responses": {"200": {"description": "OK"}}}
        },
        "/products/inactive": {
            "get": {"tags": ["Products"], "summary": "List inactive products", "responses": {"200": {"description": "OK"}}}
        },
        "/products/low-stock": {
            "get": {"tags": ["Products"], "summary": "List low stock products", "responses": {"200": {"description": "OK"}}}
        },
        "/products/batch/price": {
            "put": {"tags": ["Products"], "summary": "Adjust prices in batch", "responses": {"200": {"description": "Per-item outcomes"}}}
        },
        "/products/batch/stock": {
            "put": {"tags": ["Products"], "summary": "Adjust stock in batch", "responses": {"200": {"description": "Per-item outcomes"}}}
        },
        "/products/{hash}": {
            "get": {
                "tags": ["Products"],
                "summary": "Get a product",
                "parameters": [{"type": "string", "description": "Product hash", "name": "hash", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Product not found"}}
            },
            "put": {
                "tags": ["Products"],
                "summary": "Update a product",
                "parameters": [
                    {"type": "string", "description": "Product hash", "name": "hash", "in": "path", "required": true},
                    {"description": "Fields", "name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateProductRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Product inactive"}}
            },
            "delete": {
                "tags": ["Products"],
                "summary": "Delete a product",
                "parameters": [{"type": "string", "description": "Product hash", "name": "hash", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Product not found"}}
            }
        },
        "/products/{hash}/active": {
            "get": {
                "tags": ["Products"],
                "summary": "Get an active product",
                "parameters": [{"type": "string", "description": "Product hash", "name": "hash", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Product inactive"}}
            }
        },
        "/products/{hash}/status": {
            "put": {
                "tags": ["Products"],
                "summary": "Set the active flag",
                "parameters": [
                    {"type": "string", "description": "Product hash", "name": "hash", "in": "path", "required": true},
                    {"description": "Status", "name": "status", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateStatusRequest"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/products/{hash}/deactivate": {
            "put": {
                "tags": ["Products"],
                "summary": "Deactivate a product",
                "parameters": [{"type": "string", "description": "Product hash", "name": "hash", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "handler.CreateProductRequest": {
            "type": "object",
            "required": ["nome", "descricao", "ean13", "preco", "quantidade", "estoqueMin"],
            "properties": {
                "nome": {"type": "string"},
                "descricao": {"type": "string"},
                "ean13": {"type": "string"},
                "preco": {"type": "number"},
                "quantidade": {"type": "number"},
                "estoqueMin": {"type": "number"}
            }
        },
        "handler.UpdateProductRequest": {
            "type": "object",
            "properties": {
                "descricao": {"type": "string"},
                "preco": {"type": "number"},
                "quantidade": {"type": "number"},
                "estoqueMin": {"type": "number"}
            }
        },
        "handler.UpdateStatusRequest": {
            "type": "object",
            "required": ["lativo"],
            "properties": {"lativo": {"type": "boolean"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Product Catalog API",
	Description:      "Product catalog with batch price and stock adjustments, caching and product events.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
