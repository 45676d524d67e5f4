package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_Use(t *testing.T) {
	assert.Equal(t, "serve", serveCmd.Use)
	assert.Contains(t, serveCmd.Long, "POST   /upload")
	assert.Contains(t, serveCmd.Long, "POST   /chat")
}

func TestServeCmd_HasFlags(t *testing.T) {
	addr := serveCmd.Flags().Lookup("addr")
	require.NotNil(t, addr)
	assert.Equal(t, "", addr.DefValue)

	idle := serveCmd.Flags().Lookup("session-idle")
	require.NotNil(t, idle)
	assert.Equal(t, "1h0m0s", idle.DefValue)
}

func TestServeCmd_StopsWhenContextDone(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"serve", "--addr", "127.0.0.1:0"})

	err := rootCmd.ExecuteContext(ctx)

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Serving on 127.0.0.1:0")
}

func TestServeCmd_RejectsArgs(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"serve", "extra"})

	assert.Error(t, rootCmd.Execute())
}
