package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wildfunctions/equivalent_resistance/pkg/search"
)

// Report summarizes one approximation run.
type Report struct {
	RunID        string         `json:"run_id"`
	Catalog      string         `json:"catalog"`
	CatalogSize  int            `json:"catalog_size"`
	MaxResistors int            `json:"max_resistors"`
	Result       *search.Result `json:"result"`
	LaTeX        string         `json:"latex"`
	Timestamp    time.Time      `json:"timestamp"`
}

// Verification is the evaluation of one SCF text against a catalog.
type Verification struct {
	SCF       string         `json:"scf"`
	Catalog   string         `json:"catalog"`
	Value     float64        `json:"value"`
	Exact     string         `json:"exact,omitempty"`
	LaTeX     string         `json:"latex"`
	Resistors int            `json:"resistors"`
	Depth     int            `json:"depth"`
	Target    *search.Target `json:"target,omitempty"`
	Error     *float64       `json:"error,omitempty"`
}

// ExploreReport lists reachable value counts per layer.
type ExploreReport struct {
	RunID       string                `json:"run_id"`
	Catalog     string                `json:"catalog"`
	CatalogSize int                   `json:"catalog_size"`
	Layers      []search.ExploreStats `json:"layers"`
	Elapsed     time.Duration         `json:"elapsed"`
}

// WriteReport writes r in the given format: "text", "json" or "latex".
func WriteReport(w io.Writer, format string, r *Report) error {
	switch format {
	case "", "text":
		WriteTextReport(w, r)
		return nil
	case "json":
		return WriteJSON(w, r)
	case "latex":
		WriteLatexReport(w, r)
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, format)
	}
}

// WriteTextReport writes the report in human-readable format.
func WriteTextReport(w io.Writer, r *Report) {
	res := r.Result
	fmt.Fprintln(w, "========== RESULT ==========")
	fmt.Fprintf(w, "Catalog:   %s (%d values)\n", r.Catalog, r.CatalogSize)
	fmt.Fprintf(w, "Target:    %s\n", res.Target)
	fmt.Fprintf(w, "Strategy:  %s\n", res.Strategy)
	fmt.Fprintf(w, "Budget:    %d resistors\n", r.MaxResistors)
	fmt.Fprintf(w, "Best:      %s\n", res.SCF)
	fmt.Fprintf(w, "LaTeX:     %s\n", r.LaTeX)
	fmt.Fprintf(w, "Value:     %.12g\n", res.Value)
	if !res.Target.IsMaximize() {
		fmt.Fprintf(w, "Error:     %.6g (%.3g relative)\n", res.Error, res.RelativeError())
	}
	fmt.Fprintf(w, "Resistors: %d\n", res.Resistors)
	fmt.Fprintf(w, "Elapsed:   %s\n", res.Elapsed.Round(time.Microsecond))
	fmt.Fprintln(w, "============================")
}

// WriteVerification writes an evaluated SCF in human-readable format.
func WriteVerification(w io.Writer, v *Verification) {
	fmt.Fprintf(w, "SCF:       %s\n", v.SCF)
	fmt.Fprintf(w, "LaTeX:     %s\n", v.LaTeX)
	fmt.Fprintf(w, "Value:     %.12g\n", v.Value)
	if v.Exact != "" {
		fmt.Fprintf(w, "Exact:     %s\n", v.Exact)
	}
	if v.Error != nil {
		fmt.Fprintf(w, "Error:     %.6g (target %s)\n", *v.Error, v.Target)
	}
	fmt.Fprintf(w, "Resistors: %d (depth %d)\n", v.Resistors, v.Depth)
}

// WriteExploreTable writes one row per layer.
func WriteExploreTable(w io.Writer, r *ExploreReport) {
	fmt.Fprintf(w, "Catalog %s (%d values)\n", r.Catalog, r.CatalogSize)
	fmt.Fprintf(w, "%4s %12s %12s %24s\n", "n", "distinct", "cumulative", "topologies")
	for _, l := range r.Layers {
		fmt.Fprintf(w, "%4d %12d %12d %24d\n", l.Resistors, l.Distinct, l.Cumulative, l.Topologies)
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// latexEscape escapes special chars for LaTeX text mode.
func latexEscape(s string) string {
	return strings.NewReplacer(`\`, `\textbackslash{}`, "_", `\_`, "%", `\%`, "&", `\&`, "#", `\#`).Replace(s)
}

// WriteLatexReport writes a compilable LaTeX document for the report.
func WriteLatexReport(w io.Writer, r *Report) {
	res := r.Result

	fmt.Fprintln(w, `\documentclass{article}`)
	fmt.Fprintln(w, `\usepackage{amsmath}`)
	fmt.Fprintln(w, `\usepackage{geometry}`)
	fmt.Fprintln(w, `\geometry{margin=1in}`)
	fmt.Fprintf(w, "\\title{Equivalent resistance --- Target: \\texttt{%s}}\n", latexEscape(res.Target.String()))
	fmt.Fprintln(w, `\date{\today}`)
	fmt.Fprintln(w, `\begin{document}`)
	fmt.Fprintln(w, `\maketitle`)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "\\noindent Catalog: \\texttt{%s} (%d values), Strategy: \\texttt{%s}, Budget: %d\\\\\n",
		latexEscape(r.Catalog), r.CatalogSize, latexEscape(res.Strategy), r.MaxResistors)
	fmt.Fprintf(w, "Run: \\texttt{%s}, %s\n\n", r.RunID, r.Timestamp.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintln(w, `\[`)
	fmt.Fprintf(w, "  R_{eq} = %s\n", r.LaTeX)
	fmt.Fprintln(w, `\]`)
	fmt.Fprintf(w, "\\noindent Value: \\verb|%.12g|\\\\\n", res.Value)
	if !res.Target.IsMaximize() {
		fmt.Fprintf(w, "Error: \\verb|%.6e|\\\\\n", res.Error)
	}
	fmt.Fprintf(w, "Resistors: %d\n\n", res.Resistors)
	fmt.Fprintln(w, `\end{document}`)
}
