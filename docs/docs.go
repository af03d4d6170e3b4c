// Package docs registra la definición OpenAPI que sirve /swagger/*.
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
        "/health": {
            "get": {
                "summary": "Liveness check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/restaurant": {
            "get": {
                "summary": "Perfil público del restaurante (resuelto por subdominio)",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "TENANT_NOT_FOUND"},
                    "403": {"description": "TENANT_INACTIVE"}
                }
            }
        },
        "/menu": {
            "get": {
                "summary": "Menú público: categorías activas con items disponibles",
                "responses": {
                    "200": {"description": "OK (con ETag y X-Cache)"},
                    "304": {"description": "Not Modified"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "summary": "Login de staff del restaurante",
                "responses": {
                    "200": {"description": "token + admin"},
                    "401": {"description": "credenciales inválidas"},
                    "429": {"description": "RATE_LIMIT_EXCEEDED"}
                }
            }
        },
        "/auth/customer/register": {
            "post": {
                "summary": "Registro de comensal",
                "responses": {
                    "201": {"description": "token + customer"},
                    "409": {"description": "email ya registrado"}
                }
            }
        },
        "/orders": {
            "post": {
                "summary": "Crear orden (comensal autenticado)",
                "responses": {
                    "201": {"description": "orden creada"},
                    "422": {"description": "item no ordenable"}
                }
            },
            "get": {
                "summary": "Listar órdenes del restaurante (staff, orders:read)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/orders/{orderID}/status": {
            "put": {
                "summary": "Avanzar estado de la orden (staff, orders:write)",
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "ORDER_BAD_STATE"}
                }
            }
        },
        "/platform/tenants": {
            "post": {
                "summary": "Alta de restaurante (super-admin)",
                "responses": {"201": {"description": "tenant creado"}}
            },
            "get": {
                "summary": "Listar restaurantes (super-admin)",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Restaurant Ordering API",
	Description:      "API multi-tenant de pedidos para restaurantes: menú público, órdenes y administración por subdominio.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
