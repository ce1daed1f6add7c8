package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger serves a Swagger UI page and the OpenAPI document.
// - GET /swagger/index.html
// - GET /swagger/doc.json
func RegisterSwagger(r gin.IRouter) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>doctors-portal API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "doctors-portal", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } }
  },
  "paths": {
    "/appointment": {
      "get": { "summary": "List treatment names", "responses": { "200": { "description": "id and name of every treatment" } } }
    },
    "/available": {
      "get": {
        "summary": "Treatments with the slots still open on a date",
        "parameters": [ { "name": "date", "in": "query", "schema": { "type": "string" } } ],
        "responses": { "200": { "description": "treatments with remaining slots" }, "503": { "description": "store unavailable" } }
      }
    },
    "/booking": {
      "post": {
        "summary": "Book a slot",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["treatmentName","date","patientEmail","slot"],"properties":{"treatmentName":{"type":"string"},"date":{"type":"string"},"patientEmail":{"type":"string"},"slot":{"type":"string"}}}}}},
        "responses": { "201": { "description": "created, success=true" }, "200": { "description": "duplicate, success=false with the existing booking" }, "400": { "description": "missing fields" } }
      },
      "get": {
        "summary": "List the caller's own bookings",
        "security": [ { "bearer": [] } ],
        "parameters": [ { "name": "patientEmail", "in": "query", "schema": { "type": "string" } } ],
        "responses": { "200": { "description": "bookings" }, "401": { "description": "no credential" }, "403": { "description": "invalid credential or not the caller's email" } }
      }
    },
    "/users": {
      "get": { "summary": "List users", "security": [ { "bearer": [] } ], "responses": { "200": { "description": "users" } } }
    },
    "/users/{email}": {
      "put": {
        "summary": "Upsert a profile and issue a credential",
        "parameters": [ { "name": "email", "in": "path", "required": true, "schema": { "type": "string" } } ],
        "responses": { "200": { "description": "result, token and expiresAt" } }
      }
    },
    "/users/admin/{email}": {
      "put": {
        "summary": "Promote a user to admin",
        "security": [ { "bearer": [] } ],
        "parameters": [ { "name": "email", "in": "path", "required": true, "schema": { "type": "string" } } ],
        "responses": { "200": { "description": "promoted" }, "403": { "description": "caller is not an admin" }, "404": { "description": "no such user" }, "409": { "description": "caller has no profile" } }
      }
    },
    "/admin/{email}": {
      "get": {
        "summary": "Whether a user is an admin",
        "security": [ { "bearer": [] } ],
        "parameters": [ { "name": "email", "in": "path", "required": true, "schema": { "type": "string" } } ],
        "responses": { "200": { "description": "{admin: bool}" }, "409": { "description": "no profile" } }
      }
    },
    "/doctors": {
      "get": { "summary": "List doctors", "security": [ { "bearer": [] } ], "responses": { "200": { "description": "doctors" } } },
      "post": { "summary": "Add a doctor", "security": [ { "bearer": [] } ], "responses": { "201": { "description": "added" }, "400": { "description": "name and email required" } } }
    },
    "/doctors/{email}": {
      "delete": {
        "summary": "Remove a doctor",
        "security": [ { "bearer": [] } ],
        "parameters": [ { "name": "email", "in": "path", "required": true, "schema": { "type": "string" } } ],
        "responses": { "204": { "description": "removed" }, "404": { "description": "no such doctor" } }
      }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
