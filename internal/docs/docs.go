// Package docs is generated by swag from the handler annotations.
// Regenerate with: swag init -g cmd/server/main.go -o internal/docs
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
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Meta"],
                "summary": "API liveness",
                "operationId": "getRoot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}}
                }
            }
        },
        "/topics": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Topics"],
                "summary": "List topics",
                "operationId": "listTopics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.TopicsResponse"}},
                    "500": {"description": "Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/articles": {
            "get": {
                "description": "All articles ordered by created_at descending, without body, with comment_count.",
                "produces": ["application/json"],
                "tags": ["Articles"],
                "summary": "List articles",
                "operationId": "listArticles",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ArticlesResponse"}},
                    "500": {"description": "Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/articles/{article_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Articles"],
                "summary": "Get an article",
                "operationId": "getArticle",
                "parameters": [
                    {"type": "integer", "description": "Article ID", "name": "article_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ArticleResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Article not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "patch": {
                "description": "Adds inc_votes (may be negative) to the article's votes atomically.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Articles"],
                "summary": "Increment article votes",
                "operationId": "patchArticle",
                "parameters": [
                    {"type": "integer", "description": "Article ID", "name": "article_id", "in": "path", "required": true},
                    {"description": "Vote delta", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PatchArticleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ArticleResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Path not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/articles/{article_id}/comments": {
            "get": {
                "description": "Comments ordered by created_at descending. An existing article with no comments yields an empty list.",
                "produces": ["application/json"],
                "tags": ["Comments"],
                "summary": "List an article's comments",
                "operationId": "listComments",
                "parameters": [
                    {"type": "integer", "description": "Article ID", "name": "article_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CommentsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Article not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Comments"],
                "summary": "Add a comment to an article",
                "operationId": "postComment",
                "parameters": [
                    {"type": "integer", "description": "Article ID", "name": "article_id", "in": "path", "required": true},
                    {"description": "Comment payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PostCommentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.CommentResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "404 not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/comments/{comment_id}": {
            "delete": {
                "tags": ["Comments"],
                "summary": "Delete a comment",
                "operationId": "deleteComment",
                "parameters": [
                    {"type": "integer", "description": "Comment ID", "name": "comment_id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "List users",
                "operationId": "listUsers",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.UsersResponse"}},
                    "500": {"description": "Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Article": {
            "type": "object",
            "properties": {
                "article_id": {"type": "integer"},
                "article_img_url": {"type": "string"},
                "author": {"type": "string"},
                "body": {"type": "string"},
                "created_at": {"type": "string"},
                "title": {"type": "string"},
                "topic": {"type": "string"},
                "votes": {"type": "integer"}
            }
        },
        "domain.ArticleSummary": {
            "type": "object",
            "properties": {
                "article_id": {"type": "integer"},
                "article_img_url": {"type": "string"},
                "author": {"type": "string"},
                "comment_count": {"type": "integer"},
                "created_at": {"type": "string"},
                "title": {"type": "string"},
                "topic": {"type": "string"},
                "votes": {"type": "integer"}
            }
        },
        "domain.Comment": {
            "type": "object",
            "properties": {
                "article_id": {"type": "integer"},
                "author": {"type": "string"},
                "body": {"type": "string"},
                "comment_id": {"type": "integer"},
                "created_at": {"type": "string"},
                "votes": {"type": "integer"}
            }
        },
        "domain.Topic": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "slug": {"type": "string"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "avatar_url": {"type": "string"},
                "name": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "handlers.ArticleResponse": {
            "type": "object",
            "properties": {"article": {"$ref": "#/definitions/domain.Article"}}
        },
        "handlers.ArticlesResponse": {
            "type": "object",
            "properties": {"articles": {"type": "array", "items": {"$ref": "#/definitions/domain.ArticleSummary"}}}
        },
        "handlers.CommentResponse": {
            "type": "object",
            "properties": {"comment": {"$ref": "#/definitions/domain.Comment"}}
        },
        "handlers.CommentsResponse": {
            "type": "object",
            "properties": {"comments": {"type": "array", "items": {"$ref": "#/definitions/domain.Comment"}}}
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {"msg": {"type": "string", "example": "Article not found"}}
        },
        "handlers.MessageResponse": {
            "type": "object",
            "properties": {"msg": {"type": "string", "example": "server is up and running"}}
        },
        "handlers.PatchArticleRequest": {
            "type": "object",
            "properties": {"inc_votes": {"type": "integer", "example": 1}}
        },
        "handlers.PostCommentRequest": {
            "type": "object",
            "properties": {
                "body": {"type": "string", "example": "This morning, I showered for nine minutes."},
                "username": {"type": "string", "example": "butter_bridge"}
            }
        },
        "handlers.TopicsResponse": {
            "type": "object",
            "properties": {"topics": {"type": "array", "items": {"$ref": "#/definitions/domain.Topic"}}}
        },
        "handlers.UsersResponse": {
            "type": "object",
            "properties": {"users": {"type": "array", "items": {"$ref": "#/definitions/domain.User"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "News API",
	Description:      "Topics, articles, comments and users.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
