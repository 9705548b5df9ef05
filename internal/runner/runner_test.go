package runner_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/petasbytes/agente/internal/config"
	"github.com/petasbytes/agente/internal/persona"
	"github.com/petasbytes/agente/internal/provider"
	"github.com/petasbytes/agente/internal/provider/providertest"
	"github.com/petasbytes/agente/internal/runner"
	"github.com/petasbytes/agente/internal/telemetry"
	"github.com/petasbytes/agente/memory"
)

func TestBuildRequest_Layout(t *testing.T) {
	p := persona.Message("")
	history := []memory.Message{memory.User("A"), memory.Assistant("r1")}

	req := runner.BuildRequest(p, history, "B")

	require.Len(t, req, 4)
	assert.Equal(t, p, req[0])
	assert.Equal(t, history, req[1:3])
	assert.Equal(t, memory.User("B"), req[3])
}

func TestBuildRequest_FreshSlice(t *testing.T) {
	history := make([]memory.Message, 1, 8)
	history[0] = memory.User("A")

	req := runner.BuildRequest(persona.Message(""), history, "B")
	req[1].Content = "changed"

	assert.Equal(t, "A", history[0].Content, "request must not alias history")
	assert.Len(t, history, 1)
}

func TestExchange_RecordsTurnOnSuccess(t *testing.T) {
	stub := providertest.New(providertest.Reply("r1"), providertest.Reply("r2"))
	r := runner.New(stub, "", runner.SurfaceChat, nil)
	conv := memory.NewConversation()

	got, err := r.Exchange(context.Background(), conv, "A")
	require.NoError(t, err)
	assert.Equal(t, "r1", got)

	_, err = r.Exchange(context.Background(), conv, "B")
	require.NoError(t, err)

	reqs := stub.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, []memory.Message{persona.Message(""), memory.User("A")}, reqs[0])
	assert.Equal(t, []memory.Message{
		persona.Message(""), memory.User("A"), memory.Assistant("r1"), memory.User("B"),
	}, reqs[1])

	assert.Equal(t, []memory.Message{
		memory.User("A"), memory.Assistant("r1"), memory.User("B"), memory.Assistant("r2"),
	}, conv.Snapshot())
	for _, m := range conv.Snapshot() {
		assert.NotEqual(t, memory.RoleSystem, m.Role, "persona never enters history")
	}
}

func TestExchange_FailureLeavesConversationUntouched(t *testing.T) {
	stub := providertest.New(
		providertest.Reply("r1"),
		providertest.Fail(&openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}),
	)
	r := runner.New(stub, "", runner.SurfaceChat, nil)
	conv := memory.NewConversation()

	_, err := r.Exchange(context.Background(), conv, "A")
	require.NoError(t, err)

	_, err = r.Exchange(context.Background(), conv, "B")
	var perr *provider.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, provider.KindRateLimited, perr.Kind)
	assert.Equal(t, 2, conv.Len(), "failed exchange appends zero messages")
}

func TestExchange_NilConversationIsStateless(t *testing.T) {
	stub := providertest.New(providertest.Reply("r1"), providertest.Reply("r2"))
	r := runner.New(stub, "custom persona", runner.SurfaceHTTP, nil)

	for _, in := range []string{"A", "B"} {
		_, err := r.Exchange(context.Background(), nil, in)
		require.NoError(t, err)
	}
	for i, req := range stub.Requests() {
		require.Len(t, req, 2, "request %d", i)
		assert.Equal(t, memory.System("custom persona"), req[0])
	}
}

func TestExchange_UnknownErrorsAreClassified(t *testing.T) {
	r := runner.New(&rawErrClient{err: errors.New("socket exploded")}, "", runner.SurfaceDirect, nil)

	_, err := r.Exchange(context.Background(), nil, "oi")
	var perr *provider.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, provider.KindUnknown, perr.Kind)
	assert.Contains(t, perr.UserMessage(), "socket exploded")
}

func TestExchange_LogsWithoutRawText(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	stub := providertest.New(providertest.Reply("segredo da resposta"))
	r := runner.New(stub, "", runner.SurfaceHTTP, zap.New(core))

	ctx := telemetry.WithTurnID(context.Background(), "req-42")
	_, err := r.Exchange(ctx, nil, "segredo do prompt")
	require.NoError(t, err)

	entries := logs.FilterMessage("exchange completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-42", fields["turn_id"])
	assert.Equal(t, "http", fields["surface"])
	for _, e := range logs.All() {
		for _, v := range e.ContextMap() {
			if s, ok := v.(string); ok {
				assert.NotContains(t, s, "segredo")
			}
		}
	}
}

// End to end through the real OpenAI backend with an intercepted transport.
func TestExchange_WireRequestThroughOpenAI(t *testing.T) {
	var body []byte
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		body, _ = io.ReadAll(req.Body)
		resp := &http.Response{
			StatusCode: 200,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body: io.NopCloser(bytes.NewReader([]byte(
				`{"id":"c","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":" r2 "}}]}`))),
			Request: req,
		}
		return resp, nil
	})
	cfg := config.Default()
	cfg.APIKey = "test-key"
	client := provider.NewOpenAI(cfg, &http.Client{Transport: rt})
	r := runner.New(client, "", runner.SurfaceChat, nil)

	conv := memory.NewConversation()
	conv.AppendTurn("A", "r1")
	got, err := r.Exchange(context.Background(), conv, "B")
	require.NoError(t, err)
	assert.Equal(t, "r2", got)

	msgs := gjson.GetBytes(body, "messages").Array()
	require.Len(t, msgs, 4)
	assert.Equal(t, "system", msgs[0].Get("role").String())
	assert.Equal(t, persona.Default, msgs[0].Get("content").String())
	assert.Equal(t, "B", msgs[3].Get("content").String())
	assert.Equal(t, 4, conv.Len())
}

func TestExchange_FailureLogsRetryable(t *testing.T) {
	cases := []struct {
		err       error
		retryable bool
	}{
		{&openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}, true},
		{&openai.APIError{HTTPStatusCode: http.StatusUnauthorized}, false},
	}
	for _, tc := range cases {
		core, logs := observer.New(zapcore.DebugLevel)
		stub := providertest.New(providertest.Fail(tc.err))
		r := runner.New(stub, "", runner.SurfaceChat, zap.New(core))

		_, err := r.Exchange(context.Background(), nil, "oi")
		require.Error(t, err)

		entries := logs.FilterMessage("exchange failed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, tc.retryable, entries[0].ContextMap()["retryable"])
	}
}

type rawErrClient struct{ err error }

func (c *rawErrClient) Complete(context.Context, []memory.Message) (string, error) {
	return "", c.err
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }
