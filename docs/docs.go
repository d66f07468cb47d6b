// Package docs регистрирует swagger-описание HTTP API для http-swagger.
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
        "/api/v1/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Список товаров",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/http.ProductResponse"}}}
                }
            }
        },
        "/api/v1/products/{handle}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Карточка товара",
                "parameters": [{"type": "string", "description": "Handle товара", "name": "handle", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ProductResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/v1/products/{handle}/similar": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Похожие товары",
                "parameters": [{"type": "string", "description": "Handle товара", "name": "handle", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/http.ProductResponse"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/v1/products/{handle}/advice": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Совет по посадке",
                "parameters": [
                    {"type": "string", "description": "Handle товара", "name": "handle", "in": "path", "required": true},
                    {"description": "Рост, вес, предпочтения", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.FitAdviceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.FitAdviceResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/v1/content": {
            "get": {
                "produces": ["application/json"],
                "tags": ["content"],
                "summary": "Контент сайта",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.SiteContentDTO"}}
                }
            }
        },
        "/api/v1/cart": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Корзина сессии",
                "parameters": [{"type": "string", "description": "Идентификатор сессии", "name": "X-Session-ID", "in": "header"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.CartResponse"}}
                }
            },
            "delete": {
                "tags": ["cart"],
                "summary": "Очистить корзину",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/v1/cart/items": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Добавить товар в корзину",
                "parameters": [{"description": "Handle и размер", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.AddCartItemRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.CartResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/v1/cart/items/{index}": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Изменить количество по позиции",
                "parameters": [
                    {"type": "integer", "description": "Позиция в корзине", "name": "index", "in": "path", "required": true},
                    {"description": "Изменение количества", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.AdjustQuantityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.CartResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Удалить позицию по индексу",
                "parameters": [{"type": "integer", "description": "Позиция в корзине", "name": "index", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.CartResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/v1/cart/lines/{key}": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Изменить количество по ключу позиции",
                "parameters": [
                    {"type": "string", "description": "Ключ позиции <productID>:<size>, экранированный для пути", "name": "key", "in": "path", "required": true},
                    {"description": "Изменение количества", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.AdjustQuantityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.CartResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Удалить позицию по ключу",
                "parameters": [{"type": "string", "description": "Ключ позиции <productID>:<size>, экранированный для пути", "name": "key", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.CartResponse"}}
                }
            }
        },
        "/api/v1/admin/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Вход в админку",
                "parameters": [{"description": "Пароль", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/logout": {
            "post": {
                "security": [{"AdminToken": []}],
                "tags": ["admin"],
                "summary": "Выход из админки",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/v1/admin/products": {
            "get": {
                "security": [{"AdminToken": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Список товаров для админки",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/http.ProductResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"AdminToken": []}],
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Создание товара",
                "parameters": [
                    {"type": "string", "description": "Название", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "Цена", "name": "price", "in": "formData", "required": true},
                    {"type": "string", "description": "Описание", "name": "description", "in": "formData"},
                    {"type": "string", "description": "Посадка", "name": "fit", "in": "formData"},
                    {"type": "string", "description": "Ткань", "name": "fabric", "in": "formData"},
                    {"type": "string", "description": "Уход", "name": "care", "in": "formData"},
                    {"type": "string", "description": "Размеры через запятую", "name": "sizes", "in": "formData"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Идентификаторы ассетов", "name": "images", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.ProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/products/{id}": {
            "put": {
                "security": [{"AdminToken": []}],
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Обновление товара",
                "parameters": [{"type": "string", "description": "ID товара", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"AdminToken": []}],
                "tags": ["admin"],
                "summary": "Удаление товара",
                "parameters": [{"type": "string", "description": "ID товара", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/assets": {
            "post": {
                "security": [{"AdminToken": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Загрузка изображений",
                "parameters": [{"type": "file", "description": "Изображения (jpeg, png, webp; до 10 файлов по 15 МиБ)", "name": "images", "in": "formData", "required": true}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.UploadAssetsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/content": {
            "put": {
                "security": [{"AdminToken": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Обновление контента сайта",
                "parameters": [{"description": "Контент", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.SiteContentDTO"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.SiteContentDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http.ErrorResponse": {
            "type": "object",
            "properties": {"code": {"type": "integer"}, "message": {"type": "string"}}
        },
        "http.ProductResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "handle": {"type": "string"},
                "price": {"type": "string"},
                "description": {"type": "string"},
                "fabric": {"type": "string"},
                "fit": {"type": "string"},
                "care": {"type": "string"},
                "images": {"type": "array", "items": {"type": "string"}},
                "image_urls": {"type": "array", "items": {"type": "string"}},
                "thumbnail_url": {"type": "string"},
                "sizes": {"type": "array", "items": {"type": "string"}}
            }
        },
        "http.CartItemResponse": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "product_id": {"type": "string"},
                "handle": {"type": "string"},
                "title": {"type": "string"},
                "price": {"type": "string"},
                "thumbnail_url": {"type": "string"},
                "size": {"type": "string"},
                "quantity": {"type": "integer"},
                "line_total": {"type": "string"}
            }
        },
        "http.CartResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/http.CartItemResponse"}},
                "subtotal": {"type": "string"},
                "total": {"type": "string"},
                "count": {"type": "integer"}
            }
        },
        "http.HomeContentDTO": {
            "type": "object",
            "properties": {
                "headline": {"type": "string"},
                "subheadline": {"type": "string"},
                "hero_image_id": {"type": "string"},
                "hero_image_url": {"type": "string"}
            }
        },
        "http.AboutContentDTO": {
            "type": "object",
            "properties": {
                "heading": {"type": "string"},
                "paragraphs": {"type": "array", "items": {"type": "string"}},
                "studio_image_id": {"type": "string"},
                "studio_image_url": {"type": "string"}
            }
        },
        "http.SiteContentDTO": {
            "type": "object",
            "properties": {
                "home": {"$ref": "#/definitions/http.HomeContentDTO"},
                "about": {"$ref": "#/definitions/http.AboutContentDTO"}
            }
        },
        "http.AddCartItemRequest": {
            "type": "object",
            "properties": {"handle": {"type": "string"}, "size": {"type": "string"}}
        },
        "http.AdjustQuantityRequest": {
            "type": "object",
            "properties": {"delta": {"type": "integer"}}
        },
        "http.FitAdviceRequest": {
            "type": "object",
            "properties": {"details": {"type": "string"}}
        },
        "http.FitAdviceResponse": {
            "type": "object",
            "properties": {"advice": {"type": "string"}}
        },
        "http.LoginRequest": {
            "type": "object",
            "properties": {"password": {"type": "string"}}
        },
        "http.LoginResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        },
        "http.UploadAssetsResponse": {
            "type": "object",
            "properties": {
                "asset_ids": {"type": "array", "items": {"type": "string"}},
                "urls": {"type": "array", "items": {"type": "string"}}
            }
        }
    },
    "securityDefinitions": {
        "AdminToken": {"type": "apiKey", "name": "X-Admin-Token", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "RAWLINE storefront API",
	Description:      "Каталог, контент сайта, корзины сессий и админка магазина RAWLINE.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
