package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestFamilies(t *testing.T) {
	out, err := execute(t, "families")
	require.NoError(t, err)
	assert.Contains(t, out, "FAMILY")
	assert.Contains(t, out, "k, lambda, scale")
	assert.Contains(t, out, "components (weighted)")
	assert.Equal(t, 16, strings.Count(out, "\n"))
}

func TestCombine_JSON(t *testing.T) {
	out, err := execute(t, "combine", "normal:mean=1,variance=2", "normal:mean=2,variance=1", "--format", "json")
	require.NoError(t, err)
	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Normal", results[0]["family"])
	assert.Equal(t, []any{3.0, 3.0}, results[0]["params"])
}

func TestCombine_RootSumOfSquares(t *testing.T) {
	out, err := execute(t, "combine", "--op", "rss", "normal:mean=3,variance=4", "normal:mean=4,variance=4", "--at", "1,5")
	require.NoError(t, err)
	assert.Contains(t, out, "Rician distribution")
	assert.Contains(t, out, "x = 1")
	assert.Contains(t, out, "x = 5")
}

func TestCombine_HTML(t *testing.T) {
	out, err := execute(t, "combine", "--op", "rss", "normal:mean=0,variance=4", "normal:mean=0,variance=4", "--at", "0.5,1,2", "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "cdf")

	_, err = execute(t, "combine", "normal:mean=0,variance=1", "normal:mean=0,variance=1", "--format", "html")
	assert.ErrorContains(t, err, "no evaluation points")
}

func TestCombine_Precondition(t *testing.T) {
	out, err := execute(t, "combine", "gamma:scale=1,shape=2", "gamma:scale=2,shape=2")
	assert.ErrorContains(t, err, "1 of 1 scenarios failed")
	assert.Contains(t, out, "combine: error:")
	assert.Contains(t, out, "scale")
}

func TestCombine_BadSpec(t *testing.T) {
	_, err := execute(t, "combine", "normal:mean", "normal:mean=0,variance=1")
	assert.Error(t, err)

	_, err = execute(t, "combine", "--op", "product", "normal:mean=0,variance=1", "normal:mean=0,variance=1")
	assert.ErrorContains(t, err, "unknown operation")
}

func TestDescribe(t *testing.T) {
	out, err := execute(t, "describe", "cauchy:location=1,scale=2")
	require.NoError(t, err)
	assert.Contains(t, out, "Cauchy distribution")
	assert.Contains(t, out, "mean     = undefined")

	out, err = execute(t, "describe", "exponential:rate=2", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "describe,sum,Exponential,2,0.5,0.25")
}

func TestRunAndHistory(t *testing.T) {
	dir := t.TempDir()
	textfile := filepath.Join(dir, "distalg.prom")
	cfgPath := filepath.Join(dir, "config.yaml")
	data := `logging:
  level: warn
metrics:
  sinks:
    - type: prometheus
history:
  type: jsonl
  conf:
    path: ` + filepath.Join(dir, "runs.jsonl") + `
scenarios:
  - name: uniforms
    operands:
      - family: stduniform
      - family: stduniform
      - family: stduniform
  - name: squares
    op: sumsq
    operands:
      - {family: normal, params: {mean: 1, variance: 1}}
      - {family: normal, params: {mean: 2, variance: 1}}
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(data), 0o644))

	out, err := execute(t, "run", "-c", cfgPath, "--format", "csv", "--metrics-file", textfile)
	require.NoError(t, err)
	assert.Contains(t, out, "uniforms,sum,IrwinHall,3")
	assert.Contains(t, out, "squares,sumsq,NoncentralChiSquare")

	prom, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "distalg_scenario_runs_total")

	out, err = execute(t, "history", "-c", cfgPath, "--scenario", "squares")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"family":"NoncentralChiSquare"`)
}

func TestRun_NoScenarios(t *testing.T) {
	_, err := execute(t, "run")
	assert.ErrorContains(t, err, "no scenarios")
}

func TestHistory_NotConfigured(t *testing.T) {
	_, err := execute(t, "history")
	assert.ErrorContains(t, err, "not configured")
}
