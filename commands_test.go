package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/equivalent_resistance/pkg/engine"
	"github.com/wildfunctions/equivalent_resistance/pkg/expr"
	"github.com/wildfunctions/equivalent_resistance/pkg/search"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := newCLI(&out, &errOut).execute(context.Background(), args)
	return out.String(), errOut.String(), err
}

func TestApproximateJSON(t *testing.T) {
	out, _, err := execute(t, "approximate",
		"--values-list", "1", "--target", "0.5", "--max-resistors", "2", "--format", "json")
	require.NoError(t, err)

	var report engine.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "(0)//(0)", report.Result.SCF)
	assert.Equal(t, 2, report.MaxResistors)
}

func TestApproximateText(t *testing.T) {
	out, logs, err := execute(t, "approximate", "--verbose",
		"--catalog", "unit", "--target", "max", "--max-resistors", "3", "--workers", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Best:      (0)+((0)+(0))")
	assert.Contains(t, out, "Value:     3")
	assert.Contains(t, logs, "search complete")
}

func TestApproximateLatex(t *testing.T) {
	out, _, err := execute(t, "approximate",
		"--values-list", "1k,2k2", "--target", "3k2", "--max-resistors", "2", "--format", "latex")
	require.NoError(t, err)
	assert.Contains(t, out, `\documentclass{article}`)
	assert.Contains(t, out, `R_{eq} = R_{0} + R_{1}`)
}

func TestApproximateEnvOverride(t *testing.T) {
	t.Setenv("RESISTOR_MAX_RESISTORS", "2")
	out, _, err := execute(t, "approximate",
		"--values-list", "1", "--target", "0.3333333333333333", "--format", "json")
	require.NoError(t, err)

	var report engine.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.MaxResistors)
	assert.Equal(t, "(0)//(0)", report.Result.SCF)
}

func TestApproximateConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resistor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target: max\nvalues: [0.1, 1]\nmax_resistors: 3\nformat: json\n"), 0o644))

	out, _, err := execute(t, "approximate", "--config", path)
	require.NoError(t, err)

	var report engine.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 3.0, report.Result.Value)
	assert.Equal(t, "custom", report.Catalog)
}

func TestApproximateInvalid(t *testing.T) {
	_, _, err := execute(t, "approximate", "--catalog", "unit", "--max-resistors", "0")
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)

	_, _, err = execute(t, "approximate", "--catalog", "unit", "--format", "xml")
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)

	_, _, err = execute(t, "approximate", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApproximateFailureFlushesTrace(t *testing.T) {
	_, logs, err := execute(t, "approximate", "--trace",
		"--values-list", "1,2,3", "--target", "2.5", "--max-resistors", "4", "--max-candidates", "150")
	assert.ErrorIs(t, err, search.ErrTooManyCandidates)
	assert.Contains(t, logs, "search failed")
	assert.Contains(t, logs, "Searcher.Run")
}

func TestEvaluate(t *testing.T) {
	out, _, err := execute(t, "evaluate", "(0)//(1)", "--values-list", "1k,1k", "--exact")
	require.NoError(t, err)
	assert.Contains(t, out, "Value:     500")
	assert.Contains(t, out, "Exact:     500")
	assert.Contains(t, out, `R_{0} \parallel R_{1}`)

	_, _, err = execute(t, "evaluate", "(0+(1)", "--values-list", "1,2")
	assert.ErrorIs(t, err, expr.ErrMalformedExpression)

	_, _, err = execute(t, "evaluate")
	assert.Error(t, err)
}

func TestEvaluateZeroValue(t *testing.T) {
	_, _, err := execute(t, "evaluate", "(0)//(1)", "--values-list", "0,5")
	assert.ErrorIs(t, err, expr.ErrDivisionByZero)

	out, _, err := execute(t, "evaluate", "(0)+(1)", "--values-list", "0,5")
	require.NoError(t, err)
	assert.Contains(t, out, "Value:     5")
}

func TestExplore(t *testing.T) {
	out, _, err := execute(t, "explore", "--catalog", "unit", "--max-resistors", "4", "--format", "json")
	require.NoError(t, err)

	var report engine.ExploreReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Layers, 4)
	assert.Equal(t, 9, report.Layers[3].Distinct)
	assert.Equal(t, 15, report.Layers[3].Cumulative)

	out, _, err = execute(t, "explore", "--catalog", "unit", "--format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report.Layers, engine.DefaultConfig().MaxResistors)
}

func TestCatalogs(t *testing.T) {
	out, _, err := execute(t, "catalogs")
	require.NoError(t, err)
	assert.Contains(t, out, "e24")
	assert.Contains(t, out, "lab")
	assert.Contains(t, out, "strategies: chain, layered")
}
