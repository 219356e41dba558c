package tradervue

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tvimport "github.com/nall/tv-importofx"
)

func testExecs() []tvimport.Execution {
	return []tvimport.Execution{{
		DateTime:   "2024-01-15T14:30:00+00:00",
		Symbol:     "AAPL",
		Quantity:   decimal.NewFromInt(100),
		Price:      decimal.NewFromFloat(185.5),
		Commission: decimal.NewFromFloat(4.95),
		TransFee:   decimal.NewFromFloat(0.25),
		ECNFee:     decimal.Zero,
	}}
}

func newTestClient(url string) *Client {
	c := NewClient(url, "user", "secret", nil)
	c.PollInterval = time.Millisecond
	c.RetryBackoff = time.Millisecond
	return c
}

func TestImportWaitsForCompletion(t *testing.T) {
	var polls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok, "missing basic auth")
		assert.Equal(t, "user", user)
		assert.Equal(t, "secret", pass)
		assert.Equal(t, "/api/v1/imports", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		switch r.Method {
		case http.MethodPost:
			var req importRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Len(t, req.Executions, 1)
			assert.Equal(t, "AAPL", req.Executions[0].Symbol)
			assert.Equal(t, "ira", req.AccountTag)
			assert.Equal(t, []string{"swing"}, req.Tags)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"queued"}`))
		case http.MethodGet:
			if polls.Add(1) < 3 {
				w.Write([]byte(`{"status":"processing"}`))
				return
			}
			w.Write([]byte(`{"status":"succeeded","info":{"exec_count":1,"duplicate_count":0}}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	resp, err := c.Import(context.Background(), testExecs(), ImportOptions{
		AccountTag: "ira",
		Tags:       []string{"swing"},
	})
	require.NoError(t, err)
	assert.Equal(t, tvimport.StatusSucceeded, resp.Status)
	assert.Equal(t, 1, resp.Info.ExecCount)
	assert.GreaterOrEqual(t, polls.Load(), int32(3), "should have polled until done")
}

func TestImportSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad credentials"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Import(context.Background(), testExecs(), ImportOptions{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "bad credentials", apiErr.Message)
	assert.False(t, apiErr.IsRetryable())
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"status":"succeeded","info":{"exec_count":0}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	resp, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tvimport.StatusSucceeded, resp.Status)
	assert.Equal(t, int32(2), calls.Load())
}

func TestWaitForCompletionHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"processing"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.WaitForCompletion(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFailedImportFlowsToInterpreter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte(`{"status":"queued"}`))
			return
		}
		w.Write([]byte(`{"status":"failed","info":{"exec_count":1,"error_description":"invalid symbol","error_execnumber":2}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	resp, err := c.Import(context.Background(), testExecs(), ImportOptions{})
	require.NoError(t, err)

	res, err := tvimport.InterpretImportResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, tvimport.OutcomeFailed, res.Outcome)
	assert.Equal(t, 1, res.FailingIndex())
	assert.Equal(t, "invalid symbol", res.ErrorDescription)
}
