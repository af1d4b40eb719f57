package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erp/salesperf/internal/infrastructure/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatagen_Stdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-sellers", "3", "-products", "4", "-records", "10", "-seed", "7"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	data, err := dataset.Decode(&stdout, dataset.FormatJSON)
	require.NoError(t, err)
	assert.Len(t, data.Sellers, 3)
	assert.Len(t, data.Products, 4)
	assert.Len(t, data.PurchaseRecords, 10)
}

func TestDatagen_Reproducible(t *testing.T) {
	args := []string{"-records", "20", "-seed", "42", "-format", "yaml"}

	var first, second bytes.Buffer
	require.Equal(t, 0, run(args, &first, &bytes.Buffer{}))
	require.Equal(t, 0, run(args, &second, &bytes.Buffer{}))

	assert.Equal(t, first.String(), second.String())
	assert.True(t, strings.HasPrefix(first.String(), "sellers:"))
}

func TestDatagen_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.yaml")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-o", path, "-records", "5", "-seed", "1"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "5 records")

	data, err := dataset.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, data.PurchaseRecords, 5)
}

func TestDatagen_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{name: "zero sellers", args: []string{"-sellers", "0"}, code: 2},
		{name: "ratio out of range", args: []string{"-dangling", "1.5"}, code: 2},
		{name: "bad date", args: []string{"-from", "2023/01/01"}, code: 2},
		{name: "reversed period", args: []string{"-from", "2024-01-01", "-to", "2023-01-01"}, code: 2},
		{name: "bad stdout format", args: []string{"-format", "xml"}, code: 2},
		{name: "unknown extension", args: []string{"-o", filepath.Join(t.TempDir(), "sales.csv")}, code: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, run(tt.args, &bytes.Buffer{}, &bytes.Buffer{}))
		})
	}
}
