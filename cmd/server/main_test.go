package main

import (
	"net"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/contract-engine/config"
)

func TestServe_ListenFailureReturnsError(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	server := &http.Server{Addr: taken.Addr().String(), Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- serve(server, make(chan os.Signal), time.Second, zerolog.Nop()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listen on "+taken.Addr().String())
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after the listener failed")
	}
}

func TestServe_SignalShutsDownCleanly(t *testing.T) {
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	quit := make(chan os.Signal, 1)
	quit <- syscall.SIGTERM

	assert.NoError(t, serve(server, quit, time.Second, zerolog.Nop()))
}

func TestOpenStore(t *testing.T) {
	store, closeStore, err := openStore(config.DBConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.NoError(t, closeStore())

	_, _, err = openStore(config.DBConfig{Driver: "mongo"})
	assert.ErrorContains(t, err, `unknown store driver "mongo"`)
}
