// Package docs holds the OpenAPI document served at /swagger.
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
        "/states": {
            "get": {
                "tags": [
                    "states"
                ],
                "summary": "List states",
                "description": "List every state, optionally filtered by contiguity",
                "produces": [
                    "application/json",
                    "text/plain"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "enum": [
                            "true",
                            "false"
                        ],
                        "description": "true excludes AK and HI, false returns only AK and HI",
                        "name": "contig",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/entities.State"
                            }
                        }
                    }
                }
            }
        },
        "/states/{state}": {
            "get": {
                "tags": [
                    "states"
                ],
                "summary": "Get a state",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Two-letter state code (case-insensitive)",
                        "name": "state",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/entities.State"
                        }
                    },
                    "404": {
                        "description": "Invalid state abbreviation parameter",
                        "schema": {
                            "$ref": "#/definitions/http.MessageResponse"
                        }
                    }
                }
            }
        },
        "/states/{state}/capital": {
            "get": {
                "tags": [
                    "states"
                ],
                "summary": "Get a state's capital",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Two-letter state code (case-insensitive)",
                        "name": "state",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.CapitalResponse"
                        }
                    },
                    "404": {
                        "description": "Invalid state abbreviation parameter",
                        "schema": {
                            "$ref": "#/definitions/http.MessageResponse"
                        }
                    }
                }
            }
        },
        "/states/{state}/nickname": {
            "get": {
                "tags": [
                    "states"
                ],
                "summary": "Get a state's nickname",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Two-letter state code (case-insensitive)",
                        "name": "state",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.NicknameResponse"
                        }
                    },
                    "404": {
                        "description": "Invalid state abbreviation parameter",
                        "schema": {
                            "$ref": "#/definitions/http.MessageResponse"
                        }
                    }
                }
            }
        },
        "/states/{state}/population": {
            "get": {
                "tags": [
                    "states"
                ],
                "summary": "Get a state's population",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Two-letter state code (case-insensitive)",
                        "name": "state",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.PopulationResponse"
                        }
                    },
                    "404": {
                        "description": "Invalid state abbreviation parameter",
                        "schema": {
                            "$ref": "#/definitions/http.MessageResponse"
                        }
                    }
                }
            }
        },
        "/states/{state}/admission": {
            "get": {
                "tags": [
                    "states"
                ],
                "summary": "Get a state's admission date",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Two-letter state code (case-insensitive)",
                        "name": "state",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.AdmissionResponse"
                        }
                    },
                    "404": {
                        "description": "Invalid state abbreviation parameter",
                        "schema": {
                            "$ref": "#/definitions/http.MessageResponse"
                        }
                    }
                }
            }
        },
        "/states/{state}/funfact": {
            "get": {
                "tags": [
                    "funfacts"
                ],
                "summary": "Get a random fun fact",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Two-letter state code (case-insensitive)",
                        "name": "state",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.FunFactResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.MessageResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "funfacts"
                ],
                "summary": "Append fun facts",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Two-letter state code (case-insensitive)",
                        "name": "state",
                        "in": "path",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.AddFunFactsRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/entities.FunFacts"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.MessageResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.MessageResponse"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "funfacts"
                ],
                "summary": "Replace a fun fact",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Two-letter state code (case-insensitive)",
                        "name": "state",
                        "in": "path",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.UpdateFunFactRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/entities.FunFacts"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.MessageResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.MessageResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/http.MessageResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "funfacts"
                ],
                "summary": "Remove a fun fact",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Two-letter state code (case-insensitive)",
                        "name": "state",
                        "in": "path",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.DeleteFunFactRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/entities.FunFacts"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.MessageResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.MessageResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/http.MessageResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "tags": [
                    "health"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "Server is healthy"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "health"
                ],
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "Storage reachable"
                    },
                    "503": {
                        "description": "Storage unreachable"
                    }
                }
            }
        }
    },
    "definitions": {
        "entities.State": {
            "type": "object",
            "properties": {
                "state": {
                    "type": "string"
                },
                "slug": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "nickname": {
                    "type": "string"
                },
                "admission_date": {
                    "type": "string"
                },
                "admission_number": {
                    "type": "integer"
                },
                "capital_city": {
                    "type": "string"
                },
                "population": {
                    "type": "integer"
                },
                "population_rank": {
                    "type": "integer"
                },
                "funFacts": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "entities.FunFacts": {
            "type": "object",
            "properties": {
                "_id": {
                    "type": "string"
                },
                "stateCode": {
                    "type": "string"
                },
                "funFacts": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "__v": {
                    "type": "integer"
                }
            }
        },
        "ports.AddFunFactsRequest": {
            "type": "object",
            "properties": {
                "funfacts": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "ports.UpdateFunFactRequest": {
            "type": "object",
            "properties": {
                "index": {
                    "type": "integer",
                    "minimum": 1
                },
                "funfact": {
                    "type": "string"
                }
            }
        },
        "ports.DeleteFunFactRequest": {
            "type": "object",
            "properties": {
                "index": {
                    "type": "integer",
                    "minimum": 1
                }
            }
        },
        "http.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                }
            }
        },
        "http.CapitalResponse": {
            "type": "object",
            "properties": {
                "state": {
                    "type": "string"
                },
                "capital": {
                    "type": "string"
                }
            }
        },
        "http.NicknameResponse": {
            "type": "object",
            "properties": {
                "state": {
                    "type": "string"
                },
                "nickname": {
                    "type": "string"
                }
            }
        },
        "http.PopulationResponse": {
            "type": "object",
            "properties": {
                "state": {
                    "type": "string"
                },
                "population": {
                    "type": "integer"
                }
            }
        },
        "http.AdmissionResponse": {
            "type": "object",
            "properties": {
                "state": {
                    "type": "string"
                },
                "admitted": {
                    "type": "string"
                }
            }
        },
        "http.FunFactResponse": {
            "type": "object",
            "properties": {
                "funfact": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:1800",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "US States API",
	Description:      "Reference data about U.S. states plus user-submitted fun facts",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
