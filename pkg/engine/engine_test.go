package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/wildfunctions/equivalent_resistance/pkg/catalog"
	"github.com/wildfunctions/equivalent_resistance/pkg/expr"
	"github.com/wildfunctions/equivalent_resistance/pkg/search"
)

func newEngine(t *testing.T, mutate func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Workers = 2
	if mutate != nil {
		mutate(&cfg)
	}
	e, err := New(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	return e
}

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"zero budget":      func(c *Config) { c.MaxResistors = 0 },
		"negative workers": func(c *Config) { c.Workers = -1 },
		"unknown format":   func(c *Config) { c.Format = "xml" },
		"unknown strategy": func(c *Config) { c.Strategy = "genetic" },
		"empty strategy":   func(c *Config) { c.Strategy = "" },
		"no catalog":       func(c *Config) { c.Catalog = "" },
		"negative value":   func(c *Config) { c.Values = []float64{1, -1} },
		"negative limit":   func(c *Config) { c.MaxCandidates = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

			_, err := New(cfg, nil)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	cfg := DefaultConfig()
	cfg.Catalog = ""
	cfg.Values = []float64{1, 2}
	assert.NoError(t, cfg.Validate())
}

func TestNewResolvesCatalog(t *testing.T) {
	e := newEngine(t, nil)
	assert.Equal(t, "e12", e.CatalogName())
	assert.Len(t, e.Catalog(), 12*6)

	e = newEngine(t, func(c *Config) { c.CatalogFile = "../catalog/testdata/bench.yaml" })
	assert.Equal(t, "bench.yaml", e.CatalogName())
	assert.Equal(t, catalog.Catalog{10, 4700, 2200000, 1.5}, e.Catalog())

	e = newEngine(t, func(c *Config) {
		c.CatalogFile = "../catalog/testdata/bench.yaml"
		c.Values = []float64{3, 4}
	})
	assert.Equal(t, "custom", e.CatalogName())
	assert.Equal(t, catalog.Catalog{3, 4}, e.Catalog())

	cfg := DefaultConfig()
	cfg.Catalog = "e96"
	_, err := New(cfg, nil)
	assert.ErrorIs(t, err, catalog.ErrUnknownCatalog)

	cfg = DefaultConfig()
	cfg.Target = "banana"
	_, err = New(cfg, nil)
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	e := newEngine(t, func(c *Config) {
		c.Values = []float64{1}
		c.Target = "0.5"
		c.MaxResistors = 2
	})

	report, err := e.Run(context.Background())
	require.NoError(t, err)
	_, err = uuid.Parse(report.RunID)
	assert.NoError(t, err)
	assert.Equal(t, "(0)//(0)", report.Result.SCF)
	assert.Equal(t, 0.5, report.Result.Value)
	assert.Equal(t, `R_{0} \parallel R_{0}`, report.LaTeX)
	assert.Equal(t, "custom", report.Catalog)
	assert.Equal(t, 2, report.MaxResistors)
}

func TestRunMaximize(t *testing.T) {
	e := newEngine(t, func(c *Config) {
		c.Catalog = "e6"
		c.Target = "max"
		c.MaxResistors = 2
	})
	report, err := e.Run(context.Background())
	require.NoError(t, err)

	largest := 0.0
	for _, v := range e.Catalog() {
		largest = max(largest, v)
	}
	assert.Equal(t, 2*largest, report.Result.Value)
}

func TestRunWithoutTarget(t *testing.T) {
	e := newEngine(t, func(c *Config) { c.Target = "" })
	_, err := e.Run(context.Background())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestVerify(t *testing.T) {
	e := newEngine(t, func(c *Config) {
		c.Values = []float64{1, 2}
		c.Target = "2.5"
	})

	v, err := e.Verify("((0)+(1))", true)
	require.NoError(t, err)
	assert.Equal(t, "(0)+(1)", v.SCF)
	assert.Equal(t, 3.0, v.Value)
	assert.Equal(t, "3", v.Exact)
	assert.Equal(t, 2, v.Resistors)
	require.NotNil(t, v.Error)
	assert.Equal(t, 0.5, *v.Error)

	v, err = e.Verify("(0)//(1)", false)
	require.NoError(t, err)
	assert.Empty(t, v.Exact)
	assert.InDelta(t, 2.0/3.0, v.Value, 1e-15)

	_, err = e.Verify("(0)+(2)", false)
	assert.ErrorIs(t, err, expr.ErrIndexOutOfRange)

	_, err = e.Verify("(0+(1)", false)
	assert.ErrorIs(t, err, expr.ErrMalformedExpression)
}

func TestVerifyZeroValue(t *testing.T) {
	e := newEngine(t, func(c *Config) { c.Values = []float64{0, 5} })

	_, err := e.Verify("(0)//(1)", false)
	assert.ErrorIs(t, err, expr.ErrDivisionByZero)

	v, err := e.Verify("(0)+(1)", true)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v.Value)
	assert.Equal(t, "5", v.Exact)

	// Searches still need positive values.
	_, err = e.Run(context.Background())
	assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
	_, err = e.Explore(context.Background())
	assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
}

func TestRunCandidateLimit(t *testing.T) {
	e := newEngine(t, func(c *Config) {
		c.Values = []float64{1, 2, 3}
		c.Target = "2.5"
		c.MaxResistors = 4
		c.MaxCandidates = 150
	})
	_, err := e.Run(context.Background())
	assert.ErrorIs(t, err, search.ErrTooManyCandidates)
}

func TestExplore(t *testing.T) {
	e := newEngine(t, func(c *Config) {
		c.Catalog = "unit"
		c.MaxResistors = 4
	})
	report, err := e.Explore(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Layers, 4)
	assert.Equal(t, 9, report.Layers[3].Distinct)
	assert.Equal(t, "unit", report.Catalog)

	var buf bytes.Buffer
	WriteExploreTable(&buf, report)
	assert.Contains(t, buf.String(), "cumulative")
	assert.Contains(t, buf.String(), "40")
}

func TestWriteReport(t *testing.T) {
	e := newEngine(t, func(c *Config) {
		c.Values = []float64{1, 2}
		c.Target = "3"
		c.MaxResistors = 2
	})
	report, err := e.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "(0)+(1)", report.Result.SCF)

	var text bytes.Buffer
	require.NoError(t, WriteReport(&text, "text", report))
	assert.Contains(t, text.String(), "Best:      (0)+(1)")
	assert.Contains(t, text.String(), "Resistors: 2")

	var js bytes.Buffer
	require.NoError(t, WriteReport(&js, "json", report))
	var decoded struct {
		RunID  string `json:"run_id"`
		Result struct {
			SCF    string  `json:"scf"`
			Value  float64 `json:"value"`
			Target float64 `json:"target"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, report.RunID, decoded.RunID)
	assert.Equal(t, "(0)+(1)", decoded.Result.SCF)
	assert.Equal(t, 3.0, decoded.Result.Target)

	var tex bytes.Buffer
	require.NoError(t, WriteReport(&tex, "latex", report))
	assert.Contains(t, tex.String(), `\begin{document}`)
	assert.Contains(t, tex.String(), `R_{eq} = R_{0} + R_{1}`)
	assert.Contains(t, tex.String(), `\end{document}`)

	assert.ErrorIs(t, WriteReport(&text, "yaml", report), ErrInvalidConfig)
}

func TestLatexEscape(t *testing.T) {
	assert.Equal(t, `my\_lab\_stock`, latexEscape("my_lab_stock"))
	assert.Equal(t, `50\%`, latexEscape("50%"))
}
