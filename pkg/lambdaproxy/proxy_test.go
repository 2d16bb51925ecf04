package lambdaproxy

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(method, path, body string) events.APIGatewayV2HTTPRequest {
	evt := events.APIGatewayV2HTTPRequest{
		RawPath:        path,
		RawQueryString: "debug=1",
		Headers:        map[string]string{"content-type": "application/json", "x-forwarded-for": "203.0.113.9"},
		Body:           body,
	}
	evt.RequestContext.HTTP.Method = method
	evt.RequestContext.HTTP.SourceIP = "198.51.100.1"
	evt.RequestContext.DomainName = "api.example.test"
	return evt
}

func TestNewRequest(t *testing.T) {
	req, err := NewRequest(context.Background(), event("post", "/api/validate", `{"action":"validate-phone"}`))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/validate", req.URL.Path)
	assert.Equal(t, "1", req.URL.Query().Get("debug"))
	assert.Equal(t, "api.example.test", req.Host)
	assert.Equal(t, "198.51.100.1", req.RemoteAddr)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "203.0.113.9", req.Header.Get("X-Forwarded-For"))

	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"action":"validate-phone"}`, string(body))
}

func TestNewRequest_Base64Body(t *testing.T) {
	evt := event(http.MethodPost, "/api/submit-lead", base64.StdEncoding.EncodeToString([]byte(`{"a":1}`)))
	evt.IsBase64Encoded = true

	req, err := NewRequest(context.Background(), evt)
	require.NoError(t, err)
	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(body))

	evt.Body = "%%%"
	_, err = NewRequest(context.Background(), evt)
	assert.Error(t, err)
}

func TestAdapter_RoundTrip(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Add("Set-Cookie", "a=1")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"echo":` + string(body) + `,"ip":"` + r.RemoteAddr + `"}`))
	})

	resp, err := New(handler).Handle(context.Background(), event(http.MethodPost, "/x", `"hi"`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.Equal(t, []string{"a=1"}, resp.Cookies)
	assert.JSONEq(t, `{"echo":"hi","ip":"198.51.100.1"}`, resp.Body)
	assert.False(t, resp.IsBase64Encoded)
}

func TestAdapter_BinaryBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{0xff, 0xfe})
	})

	resp, err := New(handler).Handle(context.Background(), event(http.MethodGet, "/bin", ""))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, resp.IsBase64Encoded)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe}), resp.Body)
}

func TestAdapter_BadEvent(t *testing.T) {
	evt := event(http.MethodPost, "/x", "%%%")
	evt.IsBase64Encoded = true

	resp, err := New(http.NotFoundHandler()).Handle(context.Background(), evt)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
