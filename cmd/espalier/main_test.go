package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/espalier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "espalier.yaml")
	cfg := `
menus:
  per_page: 2
seed:
  tools:
    - hammer
    - saw
    - drill
`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func TestVersionCommand(t *testing.T) {
	out := run(t, "version")
	assert.Equal(t, "espalier version "+strings.TrimSpace(espalier.Version)+"\n", out)
}

func TestPreviewCommand(t *testing.T) {
	out := run(t, "preview", "--config", writeConfig(t), "--page", "2", "--raw")
	assert.Contains(t, out, "> drill\n")
	assert.Contains(t, out, "`[📖 2/2]`")
}

func TestValidateCommand(t *testing.T) {
	out := run(t, "validate", "--config", writeConfig(t))
	assert.Contains(t, out, "Configuration is valid!")
}
