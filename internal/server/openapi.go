package server

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

const (
	apiTitle       = "API do Agente Simples"
	apiDescription = "Um endpoint para interagir com um agente de IA."
	apiVersion     = "1.0.0"
)

func schemaRef(name string) map[string]any {
	return map[string]any{"$ref": "#/components/schemas/" + name}
}

func jsonContent(name string) map[string]any {
	return map[string]any{
		"application/json": map[string]any{"schema": schemaRef(name)},
	}
}

func errorResponse(desc string) map[string]any {
	return map[string]any{"description": desc, "content": jsonContent("HTTPError")}
}

// openAPIDocument reflects the wire types into an OpenAPI 3.1 document.
func openAPIDocument() ([]byte, error) {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
		Anonymous:      true,
	}
	schemas := map[string]*jsonschema.Schema{}
	for name, v := range map[string]any{
		"PromptRequest":       &PromptRequest{},
		"AgentResponse":       &AgentResponse{},
		"HTTPError":           &HTTPError{},
		"ValidationError":     &ValidationError{},
		"HTTPValidationError": &HTTPValidationError{},
	} {
		s := r.Reflect(v)
		s.Version = ""
		s.Title = name
		schemas[name] = s
	}

	doc := map[string]any{
		"openapi": "3.1.0",
		"info": map[string]any{
			"title":       apiTitle,
			"description": apiDescription,
			"version":     apiVersion,
		},
		"paths": map[string]any{
			"/agente-simples": map[string]any{
				"post": map[string]any{
					"summary":     "Run Agent",
					"description": "Recebe um prompt do usuário e retorna a resposta do agente.",
					"operationId": "run_agent_agente_simples_post",
					"requestBody": map[string]any{
						"required": true,
						"content":  jsonContent("PromptRequest"),
					},
					"responses": map[string]any{
						"200": map[string]any{"description": "Successful Response", "content": jsonContent("AgentResponse")},
						"422": map[string]any{"description": "Validation Error", "content": jsonContent("HTTPValidationError")},
						"429": errorResponse("Rate Limited"),
						"500": errorResponse("Internal Server Error"),
						"503": errorResponse("Service Unavailable"),
					},
				},
			},
			"/health": map[string]any{
				"get": map[string]any{
					"summary":   "Health",
					"responses": map[string]any{"200": map[string]any{"description": "OK"}},
				},
			},
		},
		"components": map[string]any{"schemas": schemas},
	}
	return json.Marshal(doc)
}
