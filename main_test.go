package main

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_MissingConfigFile(t *testing.T) {
	assert.Equal(t, 1, run(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestRun_PortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()

	_, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \""+port+"\"\n  gin_mode: test\nlogging:\n  level: error\n"), 0o600))

	assert.Equal(t, 1, run(path))
}
