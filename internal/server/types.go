package server

// PromptRequest is the body of POST /agente-simples.
type PromptRequest struct {
	Prompt string `json:"prompt" jsonschema:"title=Prompt,minLength=1"`
}

// AgentResponse is the success body of POST /agente-simples.
type AgentResponse struct {
	Response string `json:"response" jsonschema:"title=Response"`
}

// HTTPError is the body of every non-validation error response.
type HTTPError struct {
	Detail string `json:"detail" jsonschema:"title=Detail"`
}

// ValidationError describes one rejected input field.
type ValidationError struct {
	Loc  []string `json:"loc" jsonschema:"title=Location"`
	Msg  string   `json:"msg" jsonschema:"title=Message"`
	Type string   `json:"type" jsonschema:"title=Error Type"`
}

// HTTPValidationError is the 422 response body.
type HTTPValidationError struct {
	Detail []ValidationError `json:"detail" jsonschema:"title=Detail"`
}
