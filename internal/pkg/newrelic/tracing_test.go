package newrelic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpersWithoutTransaction(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, FromContext(ctx))
	assert.Nil(t, StartSegment(nil, "noop"))
	SetTransactionName(nil, "noop")
	AddTransactionAttribute(nil, "k", "v")
	NoticeTransactionError(nil, errors.New("ignored"))

	called := false
	err := WithSegment(ctx, "segment", func() error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)

	v, err := WithSegmentAndReturn(ctx, "segment", func() (int, error) { return 42, nil })
	assert.NoError(t, err)
	assert.Equal(t, 42, v)

	boom := errors.New("boom")
	assert.ErrorIs(t, WithExternalSegment(ctx, "nats", "publish", "notifications.push", func() error { return boom }), boom)
}

func TestInstrumentHTTPRequestWithoutTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := InstrumentHTTPRequest(context.Background(), req, func() (*http.Response, error) {
		return http.DefaultClient.Do(req)
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
}

func TestStartBackgroundTransactionDisabled(t *testing.T) {
	ctx, end := StartBackgroundTransaction(context.Background(), nil, "Sweeper.ExpirePickups")
	defer end()
	assert.Nil(t, FromContext(ctx))
}
