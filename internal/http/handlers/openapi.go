package handlers

// Descriptive only; the handlers are the contract.
const openAPIJSON = `{
  "openapi": "3.0.3",
  "info": {
    "title": "TaskHub API",
    "description": "Task manager with bearer-token authentication and owner-scoped tasks.",
    "version": "1.0.0"
  },
  "components": {
    "securitySchemes": {
      "bearerAuth": {"type": "http", "scheme": "bearer", "bearerFormat": "JWT"}
    },
    "schemas": {
      "Task": {
        "type": "object",
        "required": ["title", "dueDate"],
        "properties": {
          "id": {"type": "string"},
          "title": {"type": "string"},
          "description": {"type": "string"},
          "status": {"type": "string", "enum": ["pending", "in-progress", "completed"]},
          "dueDate": {"type": "string", "format": "date"},
          "user": {"type": "string"},
          "createdAt": {"type": "string", "format": "date-time"},
          "updatedAt": {"type": "string", "format": "date-time"}
        }
      },
      "AuthResponse": {
        "type": "object",
        "properties": {
          "id": {"type": "string"},
          "name": {"type": "string"},
          "email": {"type": "string"},
          "token": {"type": "string"}
        }
      },
      "Error": {
        "type": "object",
        "properties": {
          "error": {
            "type": "object",
            "properties": {
              "code": {"type": "string"},
              "message": {"type": "string"},
              "requestId": {"type": "string"}
            }
          }
        }
      }
    }
  },
  "paths": {
    "/api/users/register": {
      "post": {
        "summary": "Register a new user",
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {
            "type": "object",
            "required": ["name", "email", "password"],
            "properties": {
              "name": {"type": "string"},
              "email": {"type": "string"},
              "password": {"type": "string", "minLength": 6}
            }
          }}}
        },
        "responses": {
          "201": {"description": "User registered", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AuthResponse"}}}},
          "400": {"description": "Validation error or email already in use", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}}
        }
      }
    },
    "/api/users/login": {
      "post": {
        "summary": "Log in with email and password",
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
              "email": {"type": "string"},
              "password": {"type": "string"}
            }
          }}}
        },
        "responses": {
          "200": {"description": "Logged in", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AuthResponse"}}}},
          "401": {"description": "Invalid email or password", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}}
        }
      }
    },
    "/api/tasks": {
      "get": {
        "summary": "List the authenticated user's tasks",
        "security": [{"bearerAuth": []}],
        "responses": {
          "200": {"description": "Tasks", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/Task"}}}}},
          "401": {"description": "Unauthorized"}
        }
      },
      "post": {
        "summary": "Create a task",
        "security": [{"bearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Task"}}}
        },
        "responses": {
          "201": {"description": "Task created", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Task"}}}},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"}
        }
      }
    },
    "/api/tasks/{id}": {
      "put": {
        "summary": "Update a task (partial; empty fields keep stored values)",
        "security": [{"bearerAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
        "requestBody": {
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Task"}}}
        },
        "responses": {
          "200": {"description": "Task updated", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Task"}}}},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Task not found"}
        }
      },
      "delete": {
        "summary": "Delete a task",
        "security": [{"bearerAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {
          "200": {"description": "Task removed"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Task not found"}
        }
      }
    }
  }
}`
