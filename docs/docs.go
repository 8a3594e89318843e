// Package docs registra el documento OpenAPI que sirve /swagger/*.
// Se regenera desde las anotaciones de los handlers con:
//
//	swag init -g cmd/api/main.go -o docs
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
        "/health": {
            "get": {"tags": ["system"], "summary": "Estado del servicio", "responses": {"200": {"description": "OK"}}}
        },
        "/shelters": {
            "get": {"tags": ["shelters"], "summary": "Listar refugios", "parameters": [{"type": "string", "name": "city", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["shelters"], "summary": "Crear refugio", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/pets": {
            "get": {"tags": ["pets"], "summary": "Buscar mascotas", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["pets"], "summary": "Registrar mascota en un refugio", "responses": {"201": {"description": "Created"}, "409": {"description": "ShelterAtCapacity"}}}
        },
        "/pets/{petID}": {
            "delete": {"tags": ["pets"], "summary": "Eliminar mascota", "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "PetNotFound"}, "409": {"description": "PetHasActiveAdoption / PetHasAdoptionHistory"}}}
        },
        "/pets/{petID}/transfer": {
            "post": {"tags": ["pets"], "summary": "Transferir mascota a otro refugio", "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "PetIsAdopted / TargetShelterAtCapacity"}}}
        },
        "/adopters": {
            "get": {"tags": ["adopters"], "summary": "Listar adoptantes", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["adopters"], "summary": "Registrar adoptante", "responses": {"201": {"description": "Created"}, "400": {"description": "InvalidEmailFormat / PhoneTooShort"}, "409": {"description": "DuplicateEmail / DuplicatePhone"}}}
        },
        "/applications/{applicationID}": {
            "delete": {"tags": ["applications"], "summary": "Eliminar solicitud", "parameters": [{"type": "string", "name": "applicationID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "ApplicationNotFound"}}}
        },
        "/applications/{applicationID}/status": {
            "patch": {"tags": ["applications"], "summary": "Cambiar status de una solicitud", "parameters": [{"type": "string", "name": "applicationID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "InvalidStatus"}}}
        },
        "/adoptions": {
            "get": {"tags": ["adoptions"], "summary": "Listar adopciones", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["adoptions"], "summary": "Procesar adopción", "responses": {"201": {"description": "Created"}, "400": {"description": "InvalidInput / FeeOutOfRange"}, "404": {"description": "PetNotFound"}, "409": {"description": "PetNotAvailable / NoApprovedApplication / DuplicateActiveAdoption"}}}
        },
        "/adoptions/{adoptionID}": {
            "delete": {"tags": ["adoptions"], "summary": "Eliminar adopción Returned o Cancelled", "parameters": [{"type": "string", "name": "adoptionID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "AdoptionNotFound"}, "409": {"description": "AdoptionIsActive"}}}
        },
        "/adoptions/{adoptionID}/status": {
            "patch": {"tags": ["adoptions"], "summary": "Cambiar status de una adopción", "parameters": [{"type": "string", "name": "adoptionID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "DuplicateActiveAdoption"}}}
        },
        "/reports/dashboard": {
            "get": {"tags": ["reports"], "summary": "Tablero con los agregados principales", "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo guarda la info exportada del documento.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Adoption Center API",
	Description:      "Refugios, mascotas, adoptantes, solicitudes y workflow de adopción.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
