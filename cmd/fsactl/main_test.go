package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInputFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0o644))

	got, err := readInput(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("12345"), got)
}

func TestReadInputMissingFile(t *testing.T) {
	_, err := readInput(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}
