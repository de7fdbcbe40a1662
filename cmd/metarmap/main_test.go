package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metarmap/internal/app"
)

// TestRootCommand_Flags tests that every CLI option is registered with
// its documented default.
func TestRootCommand_Flags(t *testing.T) {
	cmd := newRootCommand()

	tests := []struct {
		flag     string
		expected string
	}{
		{"serial-port", app.DefaultSerialPort},
		{"baud-rate", "9600"},
		{"serial-timeout-ms", "500"},
		{"refresh-interval-s", "300"},
		{"verbose", "false"},
		{"version", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.flag)
			require.NotNil(t, flag, "flag --%s not registered", tt.flag)
			assert.Equal(t, tt.expected, flag.DefValue)
		})
	}
}

// TestRootCommand_Version tests that --version short-circuits the daemon
func TestRootCommand_Version(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"--version"})

	assert.NotPanics(t, func() {
		err := cmd.Execute()
		assert.NoError(t, err)
	})
}
