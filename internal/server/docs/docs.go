// Package docs contains the generated swagger documentation.
// Run `swag init -g internal/server/api.go -o internal/server/docs` to regenerate.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/items": {
            "get": {
                "summary": "List collection items",
                "description": "Returns every item of the collection in viewer order",
                "tags": [
                    "items"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ItemsResponse"
                        }
                    }
                }
            }
        },
        "/items/{index}/raw": {
            "get": {
                "summary": "Download an item",
                "description": "Returns the original file of the item at index",
                "tags": [
                    "items"
                ],
                "produces": [
                    "application/octet-stream"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Item index",
                        "name": "index",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Bad Request - index is not a number",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found - no item at index",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                }
            }
        },
        "/keys": {
            "get": {
                "summary": "List key bindings",
                "description": "Returns the keys the viewer reacts to and when",
                "tags": [
                    "viewer"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/KeysResponse"
                        }
                    }
                }
            }
        },
        "/viewer": {
            "get": {
                "summary": "Get viewer state",
                "description": "Returns open flag, index, zoom, rotation, load error and current item",
                "tags": [
                    "viewer"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ViewerResponse"
                        }
                    }
                }
            }
        },
        "/viewer/ws": {
            "get": {
                "summary": "Stream viewer state",
                "description": "WebSocket; each text message is a viewer snapshot",
                "tags": [
                    "viewer"
                ],
                "responses": {
                    "101": {
                        "description": "Switching Protocols",
                        "schema": {
                            "$ref": "#/definitions/ViewerResponse"
                        }
                    }
                }
            }
        },
        "/viewer/open": {
            "post": {
                "summary": "Open the viewer",
                "tags": [
                    "viewer"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ViewerResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request - invalid body",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict - empty collection",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Unprocessable - index out of range",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                },
                "description": "Shows the item at index with default zoom and rotation",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Item to open",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/OpenRequest"
                        }
                    }
                ]
            }
        },
        "/viewer/close": {
            "post": {
                "summary": "Close the viewer",
                "tags": [
                    "viewer"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ViewerResponse"
                        }
                    }
                }
            }
        },
        "/viewer/navigate": {
            "post": {
                "summary": "Navigate",
                "tags": [
                    "viewer"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ViewerResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request - invalid direction",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict - empty collection",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                },
                "description": "Moves circularly to the previous or next item and resets zoom and rotation",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "previous or next",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/DirectionRequest"
                        }
                    }
                ]
            }
        },
        "/viewer/zoom": {
            "post": {
                "summary": "Zoom",
                "tags": [
                    "viewer"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ViewerResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request - invalid direction",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                },
                "description": "Changes zoom by 0.25 within [0.5, 3]",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "in or out",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/DirectionRequest"
                        }
                    }
                ]
            }
        },
        "/viewer/rotate": {
            "post": {
                "summary": "Rotate",
                "tags": [
                    "viewer"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ViewerResponse"
                        }
                    }
                }
            }
        },
        "/viewer/load-error": {
            "post": {
                "summary": "Set load error",
                "tags": [
                    "viewer"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ViewerResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request - invalid body",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Load error flag",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/LoadErrorRequest"
                        }
                    }
                ]
            }
        },
        "/viewer/keys": {
            "post": {
                "summary": "Press a key",
                "tags": [
                    "viewer"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/PressKeyResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request - missing key",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                },
                "description": "Delivers a key to the router; keys are ignored while the viewer is closed",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Key name",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/PressKeyRequest"
                        }
                    }
                ]
            }
        }
    },
    "definitions": {
        "Item": {
            "type": "object",
            "properties": {
                "file_type": {
                    "type": "string",
                    "enum": [
                        "image",
                        "other"
                    ]
                },
                "source": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "media_type": {
                    "type": "string"
                },
                "size": {
                    "type": "integer"
                },
                "mod_time": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "ViewerResponse": {
            "type": "object",
            "properties": {
                "open": {
                    "type": "boolean"
                },
                "index": {
                    "type": "integer"
                },
                "zoom": {
                    "type": "number"
                },
                "rotation": {
                    "type": "integer",
                    "enum": [
                        0,
                        90,
                        180,
                        270
                    ]
                },
                "load_error": {
                    "type": "boolean"
                },
                "count": {
                    "type": "integer"
                },
                "item": {
                    "$ref": "#/definitions/Item"
                }
            }
        },
        "ItemsResponse": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Item"
                    }
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "Binding": {
            "type": "object",
            "properties": {
                "keys": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "condition": {
                    "type": "string"
                },
                "action": {
                    "type": "string"
                }
            }
        },
        "KeysResponse": {
            "type": "object",
            "properties": {
                "bindings": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Binding"
                    }
                }
            }
        },
        "PressKeyResponse": {
            "type": "object",
            "properties": {
                "handled": {
                    "type": "boolean"
                },
                "viewer": {
                    "$ref": "#/definitions/ViewerResponse"
                }
            }
        },
        "OpenRequest": {
            "type": "object",
            "properties": {
                "index": {
                    "type": "integer"
                }
            }
        },
        "DirectionRequest": {
            "type": "object",
            "properties": {
                "direction": {
                    "type": "string",
                    "enum": [
                        "previous",
                        "next",
                        "in",
                        "out"
                    ]
                }
            }
        },
        "LoadErrorRequest": {
            "type": "object",
            "properties": {
                "failed": {
                    "type": "boolean"
                }
            }
        },
        "PressKeyRequest": {
            "type": "object",
            "properties": {
                "key": {
                    "type": "string"
                }
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:7480",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Lightbox API",
	Description:      "Control API for the lightbox media viewer.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
