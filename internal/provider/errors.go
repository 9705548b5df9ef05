package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/sashabaranov/go-openai"

	"github.com/petasbytes/agente/internal/config"
)

// Kind is the domain category of a failed completion.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuth
	KindRateLimited
	KindConnectivity
	KindEmptyResponse
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "AuthError"
	case KindRateLimited:
		return "RateLimited"
	case KindConnectivity:
		return "ConnectivityError"
	case KindEmptyResponse:
		return "EmptyResponse"
	default:
		return "UnknownError"
	}
}

// Status is the HTTP status a handler answers with for this kind.
func (k Kind) Status() int {
	switch k {
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindConnectivity:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Retryable reports whether the same request may succeed later.
// Nothing in this module retries; the runner records it on failed exchanges.
func (k Kind) Retryable() bool {
	return k == KindRateLimited || k == KindConnectivity
}

// ErrEmptyResponse reports a provider reply with no usable choice.
var ErrEmptyResponse = errors.New("provider returned no choices")

// Error is a classified completion failure.
type Error struct {
	Kind   Kind
	Status int // upstream HTTP status, 0 when none was received
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Detail is the raw description of the triggering failure.
func (e *Error) Detail() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

// UserMessage is the text shown in place of a reply.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindAuth:
		if errors.Is(e.Err, config.ErrMissingAPIKey) {
			return "Erro: A chave da API não foi configurada. Verifique seu arquivo .env."
		}
		return "Erro: Falha na autenticação com a API. Verifique sua chave da API."
	case KindRateLimited:
		return "Erro: Limite de taxa da API excedido. Tente novamente mais tarde."
	case KindConnectivity:
		return "Erro: Não foi possível conectar à API. Verifique sua conexão."
	case KindEmptyResponse:
		return "Erro: Não foi possível obter uma resposta válida da API."
	default:
		return "Erro inesperado ao chamar a API: " + e.Detail()
	}
}

// Classify maps any provider failure onto exactly one Kind.
// Specific categories are checked before the UnknownError fallback; nil
// yields nil.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	if errors.Is(err, config.ErrMissingAPIKey) {
		return &Error{Kind: KindAuth, Err: err}
	}
	if status := upstreamStatus(err); status != 0 {
		switch status {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &Error{Kind: KindAuth, Status: status, Err: err}
		case http.StatusTooManyRequests:
			return &Error{Kind: KindRateLimited, Status: status, Err: err}
		}
		return &Error{Kind: KindUnknown, Status: status, Err: err}
	}
	if errors.Is(err, ErrEmptyResponse) {
		return &Error{Kind: KindEmptyResponse, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindConnectivity, Err: err}
	}
	var nerr net.Error
	if errors.As(err, &nerr) {
		return &Error{Kind: KindConnectivity, Err: err}
	}
	return &Error{Kind: KindUnknown, Err: err}
}

// upstreamStatus extracts the HTTP status carried by SDK error types.
func upstreamStatus(err error) int {
	var aerr *anthropic.Error
	if errors.As(err, &aerr) {
		return aerr.StatusCode
	}
	var oerr *openai.APIError
	if errors.As(err, &oerr) {
		return oerr.HTTPStatusCode
	}
	var rerr *openai.RequestError
	if errors.As(err, &rerr) {
		return rerr.HTTPStatusCode
	}
	return 0
}
