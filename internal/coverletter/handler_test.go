package coverletter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	generateFunc func(ctx context.Context, req Request) (string, error)
}

func (s *stubGenerator) Generate(ctx context.Context, req Request) (string, error) {
	return s.generateFunc(ctx, req)
}

func newTestHandler(gen Generator) *Handler {
	return NewHandler(HandlerDeps{
		Generator: gen,
		Logger:    slog.New(slog.NewTextHandler(os.Stderr, nil)),
	})
}

func postJSON(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, Route, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandler_Success(t *testing.T) {
	var got Request
	h := newTestHandler(&stubGenerator{generateFunc: func(ctx context.Context, req Request) (string, error) {
		got = req
		return "Dear Hiring Team,\n\nHello.", nil
	}})

	body, _ := json.Marshal(janeDoe())
	rr := postJSON(t, h, string(body))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, janeDoe(), got)

	var res map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, "Dear Hiring Team,\n\nHello.", res["coverLetter"])
	assert.NotContains(t, res, "error")
}

func TestHandler_GeneratorFailureIsGeneric(t *testing.T) {
	h := newTestHandler(&stubGenerator{generateFunc: func(ctx context.Context, req Request) (string, error) {
		return "", errors.New("openai chat completion: 401 invalid api key")
	}})

	body, _ := json.Marshal(janeDoe())
	rr := postJSON(t, h, string(body))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, `{"error":"Failed to generate cover letter."}`, rr.Body.String())
}

func TestHandler_MalformedJSON(t *testing.T) {
	called := false
	h := newTestHandler(&stubGenerator{generateFunc: func(ctx context.Context, req Request) (string, error) {
		called = true
		return "never", nil
	}})

	rr := postJSON(t, h, `{"name": "Jane"`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, `{"error":"Failed to generate cover letter."}`, rr.Body.String())
	assert.False(t, called)
}

func TestHandler_TrailingDataAfterJSON(t *testing.T) {
	called := false
	h := newTestHandler(&stubGenerator{generateFunc: func(ctx context.Context, req Request) (string, error) {
		called = true
		return "never", nil
	}})

	for _, body := range []string{
		`{"name":"Jane Doe","skills":"Go","jobTitle":"Engineer","companyName":"Acme"}xyz`,
		`{"name":"Jane Doe","skills":"Go","jobTitle":"Engineer","companyName":"Acme"}{}`,
	} {
		rr := postJSON(t, h, body)
		assert.Equal(t, http.StatusInternalServerError, rr.Code, body)
		assert.Equal(t, `{"error":"Failed to generate cover letter."}`, rr.Body.String())
	}
	assert.False(t, called)

	rr := postJSON(t, h, "{\"name\":\"Jane Doe\"} \n")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, called)
}

func TestHandler_MissingFieldsWithRealService(t *testing.T) {
	client := &stubLLM{}
	h := newTestHandler(newTestService(client))

	rr := postJSON(t, h, `{"name":"Jane Doe","skills":"","jobTitle":"Backend Engineer","companyName":"Acme Corp"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.False(t, bytes.Contains(rr.Body.Bytes(), []byte("coverLetter")))
	assert.Equal(t, 0, client.calls)
}

func TestHandler_JaneDoeScenario(t *testing.T) {
	client := &stubLLM{
		chatCompletionFunc: func(ctx context.Context, prompt string, model string) (string, error) {
			return janeDoeLetter, nil
		},
	}
	h := newTestHandler(newTestService(client))

	body, _ := json.Marshal(janeDoe())
	rr := postJSON(t, h, string(body))
	require.Equal(t, http.StatusOK, rr.Code)

	var res Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Empty(t, res.Error)
	assert.True(t, strings.HasPrefix(res.CoverLetter, "Dear Hiring Team"))
	assert.NotRegexp(t, `\[[^\]]+\]`, res.CoverLetter)
}
