package main

import (
	"bytes"
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestEnv(t *testing.T, port string) {
	t.Helper()

	t.Setenv("PORT", port)
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("GEOCODE_CACHE", "none")
	t.Setenv("NOMINATIM_URL", "http://127.0.0.1:1")
	t.Setenv("COUNTRY_TABLE_PATH", "")
	t.Setenv("PLF_TABLE_PATH", "")
	t.Setenv("PTFF_TABLE_PATH", "")
}

func TestRun_InvalidConfig(t *testing.T) {
	setTestEnv(t, "0")
	t.Setenv("GEOCODE_CACHE", "bogus")

	var out bytes.Buffer
	err := run(context.Background(), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEOCODE_CACHE")
}

func TestRun_InvalidLogLevel(t *testing.T) {
	setTestEnv(t, "0")
	t.Setenv("LOG_LEVEL", "chatty")

	err := run(context.Background(), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRun_ListenFailure(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	setTestEnv(t, strconv.Itoa(ln.Addr().(*net.TCPAddr).Port))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = run(ctx, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serve")
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	setTestEnv(t, "0")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	require.NoError(t, run(ctx, &out))
	assert.Contains(t, out.String(), "shutting down")
}
