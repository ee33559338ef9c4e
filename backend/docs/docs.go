// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g backend/main.go -o backend/docs
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
        "/auth/signup": {"post": {"tags": ["auth"], "summary": "Register a new user", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "User login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/reset-password": {"post": {"tags": ["auth"], "summary": "Reset password", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/users/profile": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["users"], "summary": "Get user profile", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"ApiKeyAuth": []}], "tags": ["users"], "summary": "Update user profile", "responses": {"200": {"description": "OK"}}}
        },
        "/courses": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["courses"], "summary": "List courses", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["courses"], "summary": "Create course", "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}}}
        },
        "/courses/{id}": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["courses"], "summary": "Get course", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"ApiKeyAuth": []}], "tags": ["courses"], "summary": "Update course", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "delete": {"security": [{"ApiKeyAuth": []}], "tags": ["courses"], "summary": "Delete course", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/lessons": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["lessons"], "summary": "List lessons", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["lessons"], "summary": "Create lesson", "responses": {"201": {"description": "Created"}}}
        },
        "/lessons/{id}": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["lessons"], "summary": "Get lesson", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"ApiKeyAuth": []}], "tags": ["lessons"], "summary": "Update lesson", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"ApiKeyAuth": []}], "tags": ["lessons"], "summary": "Delete lesson", "responses": {"200": {"description": "OK"}}}
        },
        "/quizzes": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["quizzes"], "summary": "List quizzes", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["quizzes"], "summary": "Create quiz", "responses": {"201": {"description": "Created"}}}
        },
        "/quizzes/{id}": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["quizzes"], "summary": "Get quiz", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"ApiKeyAuth": []}], "tags": ["quizzes"], "summary": "Update quiz", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"ApiKeyAuth": []}], "tags": ["quizzes"], "summary": "Delete quiz", "responses": {"200": {"description": "OK"}}}
        },
        "/quizzes/{id}/submit": {"post": {"security": [{"ApiKeyAuth": []}], "tags": ["quizzes"], "summary": "Submit quiz answers", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/enrollments": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["enrollments"], "summary": "List my enrollments", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["enrollments"], "summary": "Enroll in a course", "responses": {"201": {"description": "Created"}, "400": {"description": "Already enrolled"}, "404": {"description": "Not Found"}}}
        },
        "/enrollments/{id}/progress": {"put": {"security": [{"ApiKeyAuth": []}], "tags": ["enrollments"], "summary": "Update enrollment progress", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}},
        "/discussions": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["discussions"], "summary": "List course discussions", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["discussions"], "summary": "Start a discussion", "responses": {"201": {"description": "Created"}}}
        },
        "/discussions/{id}": {
            "put": {"security": [{"ApiKeyAuth": []}], "tags": ["discussions"], "summary": "Update a discussion", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"ApiKeyAuth": []}], "tags": ["discussions"], "summary": "Delete a discussion", "responses": {"200": {"description": "OK"}}}
        },
        "/discussions/{id}/reply": {"post": {"security": [{"ApiKeyAuth": []}], "tags": ["discussions"], "summary": "Reply to a discussion", "responses": {"200": {"description": "OK"}}}},
        "/subscriptions": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["subscriptions"], "summary": "List my subscriptions", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["subscriptions"], "summary": "Subscribe", "responses": {"201": {"description": "Created"}}}
        },
        "/subscriptions/status": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["subscriptions"], "summary": "Subscription status", "responses": {"200": {"description": "OK"}}}},
        "/subscriptions/{id}/cancel": {"put": {"security": [{"ApiKeyAuth": []}], "tags": ["subscriptions"], "summary": "Cancel a subscription", "responses": {"200": {"description": "OK"}}}},
        "/analytics/progress": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["analytics"], "summary": "Student progress analytics", "responses": {"200": {"description": "OK"}}}},
        "/analytics/instructor": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["analytics"], "summary": "Instructor analytics", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/health": {"get": {"tags": ["health"], "summary": "Health check", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}}
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
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
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "LearnHub API",
	Description:      "Courses, lessons, quizzes, enrollments, discussions and subscriptions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
