package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cidrsum/internal/ipv4"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "cidrsum", cmd.Use)

	for _, name := range []string{"serve", "collapse"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestServeCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	serve, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)

	addr := serve.Flags().Lookup("addr")
	require.NotNil(t, addr)
	assert.Equal(t, ":8080", addr.DefValue)
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCollapseCommand_Stdin(t *testing.T) {
	out, err := runCLI(t, "192.168.0.0/25\n192.168.0.128/25\n10.1/16 10/8\n", "collapse")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/8\n192.168.0.0/24\n", out)
}

func TestCollapseCommand_MaxMasklen(t *testing.T) {
	out, err := runCLI(t, "10.0.0.1 10.0.1.1", "collapse", "--max-masklen", "23")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/23\n", out)
}

func TestCollapseCommand_Files(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	require.NoError(t, os.WriteFile(first, []byte("10.0.0/24\n10.0.2/24"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("10.0.1/24\n10.0.3/24\n"), 0o644))

	out, err := runCLI(t, "", "collapse", first, second)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/22\n", out)
}

func TestCollapseCommand_Errors(t *testing.T) {
	_, err := runCLI(t, "10/8 10/9", "collapse")
	assert.ErrorIs(t, err, ipv4.ErrUnderspecified)

	_, err = runCLI(t, "", "collapse", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "missing.txt")
}
