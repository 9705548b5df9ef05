package agent_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/petasbytes/agente/internal/agent"
	"github.com/petasbytes/agente/internal/config"
	"github.com/petasbytes/agente/internal/provider"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(req *http.Request, status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Request:    req,
	}
}

func openAIConfig(key string) config.Config {
	cfg := config.Default()
	cfg.Provider = config.ProviderOpenAI
	cfg.APIKey = key
	return cfg
}

func TestAsk_MissingKeyNoNetwork(t *testing.T) {
	var calls atomic.Int32
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		calls.Add(1)
		return jsonResponse(req, 200, `{}`), nil
	})
	a := agent.New(openAIConfig(""), agent.WithHTTPClient(&http.Client{Transport: rt}))

	got := a.Ask(context.Background(), "Oi")
	assert.Equal(t, "Erro: A chave da API não foi configurada. Verifique seu arquivo .env.", got)

	_, perr := a.AskErr(context.Background(), "Oi")
	require.NotNil(t, perr)
	assert.Equal(t, provider.KindAuth, perr.Kind)
	assert.Zero(t, calls.Load())
}

func TestAsk_ReturnsReplyWithPersona(t *testing.T) {
	var body []byte
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		body, _ = io.ReadAll(req.Body)
		return jsonResponse(req, 200,
			`{"choices":[{"index":0,"message":{"role":"assistant","content":"Fala, tricolor!"}}]}`), nil
	})
	cfg := openAIConfig("k")
	cfg.Persona = "Você é um teste."
	a := agent.New(cfg, agent.WithHTTPClient(&http.Client{Transport: rt}))

	assert.Equal(t, "Fala, tricolor!", a.Ask(context.Background(), "Oi"))

	msgs := gjson.GetBytes(body, "messages").Array()
	require.Len(t, msgs, 2)
	assert.Equal(t, "Você é um teste.", msgs[0].Get("content").String())
	assert.Equal(t, "user", msgs[1].Get("role").String())
	assert.Equal(t, "Oi", msgs[1].Get("content").String())
}

func TestAsk_NoMemoryBetweenCalls(t *testing.T) {
	var sizes []int
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		b, _ := io.ReadAll(req.Body)
		sizes = append(sizes, len(gjson.GetBytes(b, "messages").Array()))
		return jsonResponse(req, 200,
			`{"choices":[{"index":0,"message":{"role":"assistant","content":"ok"}}]}`), nil
	})
	a := agent.New(openAIConfig("k"), agent.WithHTTPClient(&http.Client{Transport: rt}))

	a.Ask(context.Background(), "um")
	a.Ask(context.Background(), "dois")
	assert.Equal(t, []int{2, 2}, sizes)
}

func TestAsk_FailuresBecomeMessages(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   string
	}{
		{"rate limited", 429, "Erro: Limite de taxa da API excedido. Tente novamente mais tarde."},
		{"bad key", 401, "Erro: Falha na autenticação com a API. Verifique sua chave da API."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
				return jsonResponse(req, tc.status, `{"error":{"message":"nope","type":"x"}}`), nil
			})
			a := agent.New(openAIConfig("k"), agent.WithHTTPClient(&http.Client{Transport: rt}))
			assert.Equal(t, tc.want, a.Ask(context.Background(), "Oi"))
		})
	}
}

func TestAsk_EmptyChoices(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(req, 200, `{"choices":[]}`), nil
	})
	a := agent.New(openAIConfig("k"), agent.WithHTTPClient(&http.Client{Transport: rt}))
	assert.Equal(t, "Erro: Não foi possível obter uma resposta válida da API.", a.Ask(context.Background(), "Oi"))
}

func TestAsk_UnknownProvider(t *testing.T) {
	cfg := openAIConfig("k")
	cfg.Provider = "bogus"
	_, perr := agent.New(cfg).AskErr(context.Background(), "Oi")
	require.NotNil(t, perr)
	assert.Equal(t, provider.KindUnknown, perr.Kind)
	assert.Contains(t, perr.UserMessage(), "bogus")
}
