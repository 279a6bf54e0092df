// Package docs holds the OpenAPI document registered with swag and served
// at /swagger in development. Kept in sync with the handler annotations by
// hand.
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {
                        "description": "User registration details",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.registerRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.envelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.loginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.envelope"}}
                }
            }
        },
        "/auth/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Get current user profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.envelope"}}
                }
            }
        },
        "/admin/test": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Admin access check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.envelope"}}
                }
            }
        },
        "/admin/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List users",
                "parameters": [
                    {"type": "integer", "description": "Pagination offset", "name": "offset", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.envelope"}}
                }
            }
        },
        "/admin/users/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Delete a user",
                "parameters": [
                    {"type": "string", "description": "User id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.envelope"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Update a user",
                "parameters": [
                    {"type": "string", "description": "User id", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Fields to update",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.updateUserRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.envelope"}}
                }
            }
        },
        "/admin/users/{id}/audit": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Get a user's audit trail",
                "parameters": [
                    {"type": "string", "description": "User id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.envelope"}}
                }
            }
        }
    },
    "definitions": {
        "handler.envelope": {
            "type": "object",
            "properties": {
                "data": {},
                "message": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["email", "password", "username"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "maxLength": 72, "minLength": 6},
                "username": {"type": "string", "maxLength": 50, "minLength": 3}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string", "maxLength": 50}
            }
        },
        "handler.updateUserRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "is_active": {"type": "boolean"},
                "role": {"type": "string", "enum": ["user", "admin"]}
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
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Account Service API",
	Description:      "User account service with JWT authentication and role-based access control",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
