// Package docs holds the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/trip_ledger/main.go -o cmd/docs
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
        "/currencies": {
            "get": {"tags": ["currencies"], "summary": "List registered currencies", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/currencies/{code}": {
            "get": {"tags": ["currencies"], "summary": "Get a currency by code", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Currency Code", "name": "code", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Currency not found"}}}
        },
        "/transaction-types": {
            "get": {"tags": ["currencies"], "summary": "List transaction types", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/exchange-rates": {
            "get": {"tags": ["exchange rates"], "summary": "List rate snapshots", "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Maximum number of snapshots", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid query parameters"}}}
        },
        "/exchange-rates/current": {
            "get": {"tags": ["exchange rates"], "summary": "Get the current exchange rates", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "404": {"description": "No exchange rates have been set"}}},
            "put": {"tags": ["exchange rates"], "summary": "Set exchange rates manually", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"description": "Rates keyed by currency code", "name": "rates", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Incomplete or invalid rate table"}}}
        },
        "/exchange-rates/refresh": {
            "post": {"tags": ["exchange rates"], "summary": "Refresh exchange rates from the configured source", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "No source configured or fetched rates are invalid"}}}
        },
        "/exchange-rates/convert": {
            "get": {"tags": ["exchange rates"], "summary": "Convert an amount between currencies", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "amount", "in": "query", "required": true},
                    {"type": "string", "name": "from", "in": "query", "required": true},
                    {"type": "string", "name": "to", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid amount or unknown currency"}}}
        },
        "/trips": {
            "get": {"tags": ["trips"], "summary": "List trips", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["trips"], "summary": "Create a trip", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"description": "Trip details", "name": "trip", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid input"}}}
        },
        "/trips/{tripID}": {
            "get": {"tags": ["trips"], "summary": "Get a trip", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "tripID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Trip not found"}}},
            "delete": {"tags": ["trips"], "summary": "Delete a trip",
                "parameters": [{"type": "string", "name": "tripID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Trip not found"}}}
        },
        "/trips/{tripID}/transactions": {
            "get": {"tags": ["transactions"], "summary": "List a trip's transactions", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "tripID", "in": "path", "required": true},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "string", "name": "nextToken", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Trip not found"}}},
            "post": {"tags": ["transactions"], "summary": "Record a transaction", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "tripID", "in": "path", "required": true},
                    {"description": "Transaction details", "name": "transaction", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid input or unknown currency"}, "409": {"description": "Duplicate transaction ID"}}},
            "delete": {"tags": ["transactions"], "summary": "Reset a trip ledger",
                "parameters": [{"type": "string", "name": "tripID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Trip not found"}}}
        },
        "/trips/{tripID}/transactions/{transactionID}": {
            "get": {"tags": ["transactions"], "summary": "Get a transaction", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "tripID", "in": "path", "required": true},
                    {"type": "string", "name": "transactionID", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Trip or transaction not found"}}},
            "patch": {"tags": ["transactions"], "summary": "Edit a transaction", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "tripID", "in": "path", "required": true},
                    {"type": "string", "name": "transactionID", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "transaction", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid input"}, "404": {"description": "Trip or transaction not found"}}},
            "delete": {"tags": ["transactions"], "summary": "Delete a transaction",
                "parameters": [
                    {"type": "string", "name": "tripID", "in": "path", "required": true},
                    {"type": "string", "name": "transactionID", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Trip or transaction not found"}}}
        },
        "/trips/{tripID}/reports/profit-and-loss": {
            "get": {"tags": ["reports"], "summary": "Get trip profit and loss", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "tripID", "in": "path", "required": true},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "target", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Unknown currency or invalid rate table"}, "404": {"description": "Trip not found or no exchange rates set"}}}
        },
        "/trips/{tripID}/reports/balances": {
            "get": {"tags": ["reports"], "summary": "Get trip balances", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "tripID", "in": "path", "required": true},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "display", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Unknown currency or invalid rate table"}, "404": {"description": "Trip not found or no exchange rates set"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Trip Ledger API",
	Description:      "Multi-currency trip ledger with profit and loss reporting.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
