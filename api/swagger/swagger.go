package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Student Records API",
        "description": "Role-scoped student records with audit trail, reporting and exports",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Login and logout"},
        {"name": "Students", "description": "Student record management"},
        {"name": "Subjects", "description": "Subject administration"},
        {"name": "Dashboard", "description": "Admin statistics"},
        {"name": "Export", "description": "File downloads"},
        {"name": "Activity", "description": "Audit trail"}
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and obtain an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Record logout for the current user",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students visible to the caller",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"},
                    "422": {"description": "Unknown subject"}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Fetch one student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not found or out of scope"}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/students/export": {
            "get": {
                "tags": ["Export"],
                "summary": "Export students to CSV or Excel",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "xlsx"]},
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List subjects",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Subjects"],
                "summary": "Create subject (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSubjectRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/subjects/{id}": {
            "delete": {
                "tags": ["Subjects"],
                "summary": "Delete subject and its students (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Aggregated statistics over all students (admin only)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/export": {
            "get": {
                "tags": ["Export"],
                "summary": "Export the dashboard summary to PDF (admin only)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/activity-logs": {
            "get": {
                "tags": ["Activity"],
                "summary": "List activity log entries, newest first (admin only)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "CreateStudentRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "roll_no": {"type": "integer"},
                "subject_id": {"type": "string"},
                "marks": {"type": "integer"}
            },
            "required": ["name", "subject_id"]
        },
        "UpdateStudentRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "roll_no": {"type": "integer"},
                "subject_id": {"type": "string"},
                "marks": {"type": "integer"}
            },
            "required": ["name", "subject_id"]
        },
        "CreateSubjectRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"}
            },
            "required": ["name"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
