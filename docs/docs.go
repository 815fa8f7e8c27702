// Package docs holds the OpenAPI document served at /swagger. It mirrors
// the swag annotations on the handlers and is kept in sync by hand.
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
        "/api/users": {
            "post": {
                "description": "?action=register creates an account, anything else logs in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Login or register",
                "parameters": [
                    {"type": "string", "description": "register to create an account", "name": "action", "in": "query"},
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.credentialsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.statusResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.statusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.statusResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.statusResponse"}}
                }
            }
        },
        "/api/movies/{resource}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Proxy a TMDB catalog request",
                "parameters": [
                    {"type": "string", "description": "discover, upcoming, trending, top_rated or genres", "name": "resource", "in": "path", "required": true},
                    {"type": "integer", "description": "Page 1..500", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Upstream JSON, unchanged"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.proxyErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.proxyErrorResponse"}}
                }
            }
        },
        "/api/{list}/{username}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["lists"],
                "summary": "Get a user's favorites or watchlist",
                "parameters": [
                    {"type": "string", "description": "favorites or watchlist", "name": "list", "in": "path", "required": true},
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.MovieList"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.statusResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.statusResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["lists"],
                "summary": "Add movies to a list",
                "parameters": [
                    {"type": "string", "description": "favorites or watchlist", "name": "list", "in": "path", "required": true},
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true},
                    {"description": "A movie id or an array of ids", "name": "body", "in": "body", "required": true, "schema": {"type": "array", "items": {"type": "integer"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "integer"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.statusResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.statusResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.statusResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["lists"],
                "summary": "Remove movies from a list",
                "parameters": [
                    {"type": "string", "description": "favorites or watchlist", "name": "list", "in": "path", "required": true},
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true},
                    {"description": "A movie id or an array of ids", "name": "body", "in": "body", "required": true, "schema": {"type": "array", "items": {"type": "integer"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "integer"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.statusResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.statusResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.statusResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.statusResponse"}}
                }
            }
        },
        "/api/reviews/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reviews"],
                "summary": "List reviews written by users",
                "parameters": [
                    {"type": "integer", "description": "TMDB movie id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Review"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.statusResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reviews"],
                "summary": "Write a review",
                "parameters": [
                    {"type": "integer", "description": "TMDB movie id", "name": "id", "in": "path", "required": true},
                    {"description": "Review", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createReviewRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Review"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.statusResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.statusResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health/ready": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        }
    },
    "definitions": {
        "domain.MovieList": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "movies": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "domain.Review": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "movie_id": {"type": "integer"},
                "username": {"type": "string"},
                "author": {"type": "string"},
                "review": {"type": "string"},
                "rating": {"type": "integer"},
                "created_at": {"type": "string"}
            }
        },
        "handler.createReviewRequest": {
            "type": "object",
            "required": ["author", "review"],
            "properties": {
                "author": {"type": "string"},
                "review": {"type": "string", "minLength": 10},
                "rating": {"type": "integer", "enum": [0, 2, 3, 4, 5]}
            }
        },
        "handler.credentialsRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.proxyErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.statusResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "msg": {"type": "string"},
                "token": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Movies API",
	Description:      "TMDB catalog proxy with accounts, favorites, watchlists and reviews.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
