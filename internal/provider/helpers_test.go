package provider_test

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

type capture struct {
	mu     sync.Mutex
	calls  int
	method string
	url    string
	body   []byte
}

func (c *capture) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// fakeTransport answers every request with a canned status and body.
type fakeTransport struct {
	respStatus int
	respBody   []byte
	err        error
	captured   *capture
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	b, _ := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if f.captured != nil {
		f.captured.mu.Lock()
		f.captured.calls++
		f.captured.method = req.Method
		f.captured.url = req.URL.String()
		f.captured.body = b
		f.captured.mu.Unlock()
	}
	if f.err != nil {
		return nil, f.err
	}
	resp := &http.Response{
		StatusCode: f.respStatus,
		Body:       io.NopCloser(bytes.NewReader(f.respBody)),
		Header:     make(http.Header),
		Request:    req,
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp, nil
}

// stallTransport blocks until the request context ends.
type stallTransport struct{}

func (stallTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	<-req.Context().Done()
	return nil, req.Context().Err()
}

func httpClient(rt http.RoundTripper) *http.Client {
	return &http.Client{Transport: rt}
}

