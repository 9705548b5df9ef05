package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/petasbytes/agente/internal/config"
	"github.com/petasbytes/agente/internal/provider"
	"github.com/petasbytes/agente/memory"
)

// MaxRequestBodySize caps POST bodies.
const MaxRequestBodySize = 1 << 20

// Exchanger runs one persona+prompt exchange. *runner.Runner satisfies it.
type Exchanger interface {
	Exchange(ctx context.Context, conv *memory.Conversation, input string) (string, error)
}

type Server struct {
	ex   Exchanger
	cfg  config.ServerConfig
	log  *zap.Logger
	mux  *http.ServeMux
	spec []byte
}

// New builds a Server. A nil log discards output.
func New(ex Exchanger, cfg config.ServerConfig, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	spec, err := openAPIDocument()
	if err != nil {
		return nil, fmt.Errorf("build openapi document: %w", err)
	}
	s := &Server{
		ex:   ex,
		cfg:  cfg,
		log:  log,
		mux:  http.NewServeMux(),
		spec: spec,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /agente-simples", s.handleAgent)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /openapi.json", s.handleOpenAPI)
}

// Handler returns the routes wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return Chain(
		RequestIDMiddleware(),
		LoggingMiddleware(s.log),
		RecoveryMiddleware(s.log),
	)(s.mux)
}

func (s *Server) handleAgent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	var req PromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, HTTPError{
				Detail: fmt.Sprintf("Corpo da requisição excede %d bytes", MaxRequestBodySize),
			})
			return
		}
		writeValidation(w, decodeError(err))
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeValidation(w, ValidationError{
			Loc:  []string{"body", "prompt"},
			Msg:  "O campo prompt não pode ser vazio",
			Type: "value_error",
		})
		return
	}

	reply, err := s.ex.Exchange(r.Context(), nil, req.Prompt)
	if err != nil {
		perr := provider.Classify(err)
		writeJSON(w, perr.Kind.Status(), HTTPError{Detail: perr.UserMessage()})
		return
	}
	writeJSON(w, http.StatusOK, AgentResponse{Response: reply})
}

func decodeError(err error) ValidationError {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return ValidationError{Loc: []string{"body"}, Msg: "Corpo da requisição ausente", Type: "missing"}
	case errors.As(err, &typeErr):
		return ValidationError{
			Loc:  []string{"body", typeErr.Field},
			Msg:  fmt.Sprintf("Tipo inválido: esperado %s", typeErr.Type),
			Type: "type_error",
		}
	default:
		return ValidationError{Loc: []string{"body"}, Msg: "JSON inválido: " + err.Error(), Type: "json_invalid"}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.spec)
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
// within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		ErrorLog:          zap.NewStdLog(s.log),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("server listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		timeout := s.cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		sctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		s.log.Info("server shutting down")
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeValidation(w http.ResponseWriter, errs ...ValidationError) {
	writeJSON(w, http.StatusUnprocessableEntity, HTTPValidationError{Detail: errs})
}
