package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pageseg/ingest"
)

var fixture = filepath.Join("..", "..", "ingest", "testdata", "two_columns.yaml")

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "pageseg dev\n", out)
}

func TestSegmentCommand_JSON(t *testing.T) {
	out, err := execute(t, "segment", "--format", "json", "--workers", "2", "--log-level", "error", fixture)
	require.NoError(t, err)

	var reports []pageReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)

	first := reports[0]
	assert.Equal(t, fixture, first.File)
	assert.Equal(t, 1, first.Page)
	assert.Empty(t, first.Error)
	require.NotNil(t, first.Root)
	assert.Len(t, first.Root.Children, 2, "the vertical rule splits the page")

	assert.Equal(t, 2, reports[1].Page)
	require.NotNil(t, reports[1].Root)
	assert.Empty(t, reports[1].Root.Children)
}

func TestSegmentCommand_Errors(t *testing.T) {
	_, err := execute(t, "segment", "--format", "yaml", "--log-level", "error", "missing.yaml")
	assert.Error(t, err)

	_, err = execute(t, "segment")
	assert.Error(t, err)
}

func TestConvertCommand(t *testing.T) {
	hocr := filepath.Join("..", "..", "ingest", "testdata", "page.hocr")
	out, err := execute(t, "convert", hocr)
	require.NoError(t, err)

	pages, err := ingest.ReadYAML(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Len(t, pages[0].Items, 7)
	assert.Equal(t, "Café", pages[0].Items[0].Text)
}
