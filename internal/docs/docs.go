// Package docs registra la especificación OpenAPI servida en /swagger.
// Generado a partir de las anotaciones swag de los handlers.
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
        "/medicines": {
            "post": {
                "tags": [
                    "medicines"
                ],
                "summary": "Crear medicamento",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header",
                        "required": false
                    },
                    {
                        "description": "Datos del medicamento; start_date en formato YYYY-MM-DD",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/medicines.createMedicineRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/medicines.medicineResponse"
                        }
                    },
                    "400": {
                        "description": "invalid json / horarios o dosis inválidos",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                },
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ]
            },
            "get": {
                "tags": [
                    "medicines"
                ],
                "summary": "Listar medicamentos",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/medicines.summaryResponse"
                            }
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                },
                "produces": [
                    "application/json"
                ]
            }
        },
        "/medicines/{medicineID}": {
            "get": {
                "tags": [
                    "medicines"
                ],
                "summary": "Detalle de medicamento",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "ID del medicamento",
                        "name": "medicineID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/medicines.detailResponse"
                        }
                    },
                    "404": {
                        "description": "medicine not found",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                },
                "produces": [
                    "application/json"
                ]
            },
            "patch": {
                "tags": [
                    "medicines"
                ],
                "summary": "Editar medicamento",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "ID del medicamento",
                        "name": "medicineID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Campos a modificar",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/medicines.updateMedicineRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/medicines.medicineResponse"
                        }
                    },
                    "400": {
                        "description": "invalid json / reglas de negocio",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "404": {
                        "description": "medicine not found",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                },
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ]
            },
            "delete": {
                "tags": [
                    "medicines"
                ],
                "summary": "Borrar medicamento",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "ID del medicamento",
                        "name": "medicineID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "sin contenido"
                    },
                    "404": {
                        "description": "medicine not found",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                },
                "produces": [
                    "application/json"
                ]
            }
        },
        "/medicines/{medicineID}/doses": {
            "post": {
                "tags": [
                    "medicines"
                ],
                "summary": "Confirmar toma",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "ID del medicamento",
                        "name": "medicineID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Horario HH:MM del esquema",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/medicines.takeDoseRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/medicines.historyResponse"
                        }
                    },
                    "400": {
                        "description": "invalid json / horario inválido o fuera del esquema",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "404": {
                        "description": "medicine not found",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "409": {
                        "description": "dose already taken / treatment has not started",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                },
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/medicines/{medicineID}/history": {
            "get": {
                "tags": [
                    "medicines"
                ],
                "summary": "Historial de tomas",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "ID del medicamento",
                        "name": "medicineID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Día YYYY-MM-DD",
                        "name": "date",
                        "in": "query",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/medicines.historyResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "date inválido",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "404": {
                        "description": "medicine not found",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                },
                "produces": [
                    "application/json"
                ]
            }
        },
        "/medicines/{medicineID}/reminders": {
            "get": {
                "tags": [
                    "reminders"
                ],
                "summary": "Avisos de un medicamento",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "ID del medicamento",
                        "name": "medicineID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/reminders.ReminderResponse"
                            }
                        }
                    },
                    "404": {
                        "description": "medicine not found",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                },
                "produces": [
                    "application/json"
                ]
            }
        },
        "/reminders/{reminderID}": {
            "delete": {
                "tags": [
                    "reminders"
                ],
                "summary": "Cancelar un aviso programado",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "ID del aviso (notification id)",
                        "name": "reminderID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "sin contenido"
                    },
                    "404": {
                        "description": "reminder not found",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                },
                "produces": [
                    "application/json"
                ]
            }
        },
        "/me/devices": {
            "post": {
                "tags": [
                    "reminders"
                ],
                "summary": "Registrar push token",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header",
                        "required": false
                    },
                    {
                        "description": "Token y plataforma",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/reminders.registerDeviceRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/reminders.deviceResponse"
                        }
                    },
                    "400": {
                        "description": "invalid json / token o plataforma inválidos",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                },
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/me": {
            "get": {
                "tags": [
                    "profile"
                ],
                "summary": "Perfil del usuario",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/profiles.profileResponse"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                },
                "produces": [
                    "application/json"
                ]
            },
            "patch": {
                "tags": [
                    "profile"
                ],
                "summary": "Editar perfil",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "Bearer token en producción",
                        "name": "Authorization",
                        "in": "header",
                        "required": false
                    },
                    {
                        "description": "Campos a modificar",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/profiles.updateProfileRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/profiles.profileResponse"
                        }
                    },
                    "400": {
                        "description": "invalid json / email inválido",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "401": {
                        "description": "unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "internal error",
                        "schema": {
                            "type": "string"
                        }
                    }
                },
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ]
            }
        }
    },
    "definitions": {
        "medicines.createMedicineRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "dosage": {
                    "type": "string"
                },
                "dosage_value": {
                    "type": "string"
                },
                "dosage_unit": {
                    "type": "string",
                    "enum": [
                        "mg",
                        "ml",
                        "g",
                        "mcg",
                        "gotas",
                        "comprimido"
                    ]
                },
                "times_per_day": {
                    "type": "integer"
                },
                "duration_days": {
                    "type": "integer"
                },
                "start_date": {
                    "type": "string"
                },
                "schedule_hours": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "medicines.updateMedicineRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "dosage": {
                    "type": "string"
                },
                "dosage_value": {
                    "type": "string"
                },
                "dosage_unit": {
                    "type": "string"
                },
                "times_per_day": {
                    "type": "integer"
                },
                "duration_days": {
                    "type": "integer"
                },
                "start_date": {
                    "type": "string"
                },
                "schedule_hours": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "medicines.takeDoseRequest": {
            "type": "object",
            "properties": {
                "hour": {
                    "type": "string"
                }
            }
        },
        "medicines.medicineResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "dosage": {
                    "type": "string"
                },
                "times_per_day": {
                    "type": "integer"
                },
                "duration_days": {
                    "type": "integer"
                },
                "start_date": {
                    "type": "string"
                },
                "schedule_hours": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "medicines.summaryResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "dosage": {
                    "type": "string"
                },
                "times_per_day": {
                    "type": "integer"
                },
                "duration_days": {
                    "type": "integer"
                },
                "start_date": {
                    "type": "string"
                },
                "schedule_hours": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                },
                "slots": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/schedule.Slot"
                    }
                },
                "next_dose": {
                    "type": "string"
                },
                "due_now": {
                    "type": "boolean"
                },
                "started": {
                    "type": "boolean"
                },
                "in_course": {
                    "type": "boolean"
                },
                "progress": {
                    "type": "integer"
                },
                "course_end": {
                    "type": "string"
                }
            }
        },
        "medicines.detailResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "dosage": {
                    "type": "string"
                },
                "times_per_day": {
                    "type": "integer"
                },
                "duration_days": {
                    "type": "integer"
                },
                "start_date": {
                    "type": "string"
                },
                "schedule_hours": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                },
                "slots": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/schedule.Slot"
                    }
                },
                "next_dose": {
                    "type": "string"
                },
                "due_now": {
                    "type": "boolean"
                },
                "started": {
                    "type": "boolean"
                },
                "in_course": {
                    "type": "boolean"
                },
                "progress": {
                    "type": "integer"
                },
                "course_end": {
                    "type": "string"
                },
                "course_days": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "date": {
                                "type": "string"
                            },
                            "starting_day": {
                                "type": "boolean"
                            },
                            "ending_day": {
                                "type": "boolean"
                            }
                        }
                    }
                },
                "taken_today": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/medicines.historyResponse"
                    }
                }
            }
        },
        "medicines.historyResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                },
                "hour": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "taken_at": {
                    "type": "string"
                }
            }
        },
        "schedule.Slot": {
            "type": "object",
            "properties": {
                "hour": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "taken",
                        "due-now",
                        "upcoming",
                        "not-started"
                    ]
                },
                "taken_today": {
                    "type": "boolean"
                },
                "is_due_now": {
                    "type": "boolean"
                },
                "is_future": {
                    "type": "boolean"
                }
            }
        },
        "reminders.ReminderResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "medicine_id": {
                    "type": "string"
                },
                "hour": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "body": {
                    "type": "string"
                },
                "trigger_at": {
                    "type": "string"
                },
                "until": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "pending",
                        "sent",
                        "canceled",
                        "failed",
                        "expired"
                    ]
                },
                "created_at": {
                    "type": "string"
                },
                "sent_at": {
                    "type": "string"
                }
            }
        },
        "reminders.registerDeviceRequest": {
            "type": "object",
            "properties": {
                "token": {
                    "type": "string"
                },
                "platform": {
                    "type": "string",
                    "enum": [
                        "ios",
                        "android",
                        "web"
                    ]
                }
            }
        },
        "reminders.deviceResponse": {
            "type": "object",
            "properties": {
                "token": {
                    "type": "string"
                },
                "platform": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "profiles.profileResponse": {
            "type": "object",
            "properties": {
                "user_id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "profiles.updateProfileRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
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
	Title:            "Dose Ágil API",
	Description:      "Medicamentos, horarios de toma, historial y avisos push.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
