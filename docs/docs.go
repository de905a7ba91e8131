// Package docs is generated by swaggo/swag from the handler annotations.
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
        "/api/ui/state": {
            "get": {
                "description": "Visible section, session user, notification and modal of the calling client.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "ui"
                ],
                "summary": "Current UI state",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.stateResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.UserSummary": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "firstName": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "lastName": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "specialization": {
                    "type": "string"
                }
            }
        },
        "handler.nodeResponse": {
            "type": "object",
            "properties": {
                "section": {
                    "type": "string"
                },
                "visible": {
                    "type": "boolean"
                }
            }
        },
        "handler.notificationResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "remainingMs": {
                    "type": "integer"
                },
                "severity": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                }
            }
        },
        "handler.stateResponse": {
            "type": "object",
            "properties": {
                "authenticated": {
                    "type": "boolean"
                },
                "modal": {
                    "$ref": "#/definitions/present.Modal"
                },
                "nodes": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handler.nodeResponse"
                    }
                },
                "notification": {
                    "$ref": "#/definitions/handler.notificationResponse"
                },
                "section": {
                    "type": "string"
                },
                "user": {
                    "$ref": "#/definitions/domain.UserSummary"
                }
            }
        },
        "present.Modal": {
            "type": "object",
            "properties": {
                "kind": {
                    "type": "string"
                },
                "visible": {
                    "type": "boolean"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Clinic Web",
	Description:      "JSON surface of the clinic management front end.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
