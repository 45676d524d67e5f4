package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "pda", rootCmd.Use)
	assert.Equal(t, "Ask questions about your PDFs", rootCmd.Short)
}

func TestRootCmd_HasPersistentFlags(t *testing.T) {
	v := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, v)
	assert.Equal(t, "v", v.Shorthand)

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("log-json"))
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"serve", "ask", "chat", "index", "settings", "mcp", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("1.2.3")

	assert.Equal(t, "1.2.3", version)
}

func TestLoadRuntime_PassesSettings(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	askCmd.SetContext(context.Background())
	rt, err := loadRuntime(askCmd, RuntimeOptions{Ephemeral: true})

	require.NoError(t, err)
	assert.Equal(t, ts.assistant, rt.Assistant)
	assert.Equal(t, ":8000", rt.Settings.Server.Addr)
	assert.True(t, ts.opts[0].Ephemeral)
}

func TestLoadRuntime_NoFactory(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	runtimeFactory = nil

	_, err := loadRuntime(askCmd, RuntimeOptions{})

	assert.EqualError(t, err, "runtime not configured")
}

func TestChatCmd_RequiresFile(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"chat"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestRuntime_CloseNil(t *testing.T) {
	rt := &Runtime{}
	assert.NotPanics(t, rt.Close)
}
