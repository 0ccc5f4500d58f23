package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mre31/ppm/internal/core/domain"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "Success", err: nil, expected: 0},
		{name: "NotFound", err: fmt.Errorf("demo: %w", domain.ErrNotFound), expected: 2},
		{name: "NotInstalled", err: fmt.Errorf("demo: %w", domain.ErrNotInstalled), expected: 2},
		{name: "NetworkError", err: &domain.NetworkError{URL: "http://x", Err: errors.New("timeout")}, expected: 1},
		{name: "IntegrityError", err: &domain.IntegrityError{Name: "demo"}, expected: 1},
		{name: "GenericError", err: errors.New("boom"), expected: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ExitCode(tc.err))
		})
	}
}

func TestNewRootCommand_HasFullCommandSurface(t *testing.T) {
	root := NewRootCommand("1.0.0", "abc", "today")

	expected := []string{"install", "uninstall", "update", "list", "search", "info", "enable", "disable", "doctor"}
	for _, name := range expected {
		cmd, _, err := root.Find([]string{name})
		assert.NoError(t, err, "command %s must exist", name)
		assert.Equal(t, name, cmd.Name())
	}

	// Short aliases from the original command surface.
	for alias, target := range map[string]string{"i": "install", "un": "uninstall", "up": "update", "ls": "list"} {
		cmd, _, err := root.Find([]string{alias})
		assert.NoError(t, err, "alias %s must resolve", alias)
		assert.Equal(t, target, cmd.Name())
	}
}
