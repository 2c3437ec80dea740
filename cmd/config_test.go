package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/peer-eval-cli/internal/config"
)

func TestConfigCommand_PrintsEffectiveConfig(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("merge:\n  output_file: all.xlsx\n"), 0o644))
	t.Setenv("PEEREVAL_ANALYZE_ROSTER", "students.csv")

	text, err := execute(t, "config")
	require.NoError(t, err)

	var got config.Config
	require.NoError(t, yaml.Unmarshal([]byte(text), &got))
	assert.Equal(t, "all.xlsx", got.Merge.OutputFile)
	assert.Equal(t, "./submissions", got.Merge.InputDir)
	assert.Equal(t, "students.csv", got.Analyze.Roster)
	assert.Len(t, got.Merge.ExpectedHeaders, 8)
	assert.Equal(t, "warn", got.Log.Level)
}

func TestConfigCommand_RejectsArgs(t *testing.T) {
	chdirTemp(t)
	_, err := execute(t, "config", "extra")
	require.Error(t, err)
}
