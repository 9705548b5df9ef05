// Package server exposes the agent over HTTP.
//
// Routes:
//
//	POST /agente-simples  {"prompt": "..."} -> {"response": "..."}
//	GET  /health          liveness probe
//	GET  /openapi.json    OpenAPI 3.1 description of the API
//
// The endpoint is stateless: every request is sent with the persona and
// the prompt only. Provider failures map onto HTTP statuses by kind (429
// for rate limiting, 503 for connectivity, 500 otherwise) with the
// user-facing message in "detail". Malformed bodies and blank prompts are
// rejected with 422 and a list of validation errors.
package server
