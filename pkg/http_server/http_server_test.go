package http_server

import (
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerLifecycle(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	address := listener.Addr().String()
	require.NoError(t, listener.Close())

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	s := New(handler, address, WithShutdownTimeout(time.Second))

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + address)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusNoContent
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, s.Shutdown())
	assert.ErrorIs(t, <-s.Notify(), http.ErrServerClosed)
}

func TestServerReportsListenError(t *testing.T) {
	s := New(http.NotFoundHandler(), "bad-address")

	select {
	case err := <-s.Notify():
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listen error was not reported")
	}
}
