package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_SubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"render", "serve", "watch", "mcp", "config", "version"} {
		assert.True(t, names[want], "%s should be registered", want)
	}
}

func TestMCPCmd_HasServe(t *testing.T) {
	var found bool
	for _, cmd := range mcpCmd.Commands() {
		if cmd.Name() == "serve" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestVersionDefault(t *testing.T) {
	assert.Equal(t, "dev", Version)
}

func TestVersionCmd(t *testing.T) {
	out, err := executeCmd(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "tally dev\n", out)
}

func TestRoot_InvalidLogFormat(t *testing.T) {
	_, err := executeCmd(t, "", "--log-format", "xml", "version")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArgs, exitCode(err))
	assert.Contains(t, err.Error(), "xml")
}

func TestRoot_JSONLogFormat(t *testing.T) {
	_, err := executeCmd(t, "", "--log-format", "json", "-q", "version")
	assert.NoError(t, err)
}

func TestExitError_WithMessage(t *testing.T) {
	err := exitError(ExitInvalidArgs, "bad path %q", "/foo")
	assert.Equal(t, `bad path "/foo"`, err.Error())
	assert.Equal(t, ExitInvalidArgs, err.ExitCode())
}

func TestExitError_EmptyMessages(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{ExitNoInput, "tally: no checklist documents found"},
		{ExitMalformedInput, "tally: malformed input"},
		{99, "tally: error"},
	}
	for _, tt := range tests {
		err := exitError(tt.code, "")
		assert.Equal(t, tt.want, err.Error())
		assert.Equal(t, tt.code, err.ExitCode())
	}
}

func TestExitCodeError_AsType(t *testing.T) {
	var err error = exitError(ExitNoInput, "nothing")
	var ece *exitCodeError
	require.True(t, errors.As(err, &ece))
	assert.Equal(t, ExitNoInput, ece.ExitCode())
}
