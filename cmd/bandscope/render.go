package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/soniclens/bandscope/analysis"
)

const colWidth = 7

// fmtPct prints a percentage with one decimal; values that would round
// to zero print as a plain 0.0 rather than -0.0 noise.
func fmtPct(v float64) string {
	if v < 0.05 && v > -0.05 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", v)
}

// fmtDiff prints a signed percentage-point difference.
func fmtDiff(v float64) string {
	if v < 0.05 && v > -0.05 {
		return "0.0"
	}
	return fmt.Sprintf("%+.1f", v)
}

func fmtDynamics(v analysis.DynamicsValue) string {
	if !v.Defined {
		return "-"
	}
	return fmt.Sprintf("%.1f", v.DB)
}

func printRow(w io.Writer, label string, cells []string) {
	fmt.Fprintf(w, "%-10s", label)
	for _, c := range cells {
		fmt.Fprintf(w, "%*s", colWidth, c)
	}
	fmt.Fprintln(w)
}

func printHeader(w io.Writer) {
	cells := make([]string, 0, analysis.NumBands)
	for _, b := range analysis.Bands() {
		cells = append(cells, b.Name)
	}
	printRow(w, "Band", cells)
	printSeparator(w)
}

func pctCells(values []float64) []string {
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = fmtPct(v)
	}
	return cells
}

func diffCells(values []float64) []string {
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = fmtDiff(v)
	}
	return cells
}

func printWarnings(w io.Writer, warnings []analysis.Warning) {
	for _, warning := range warnings {
		fmt.Fprintf(w, "warning: %s\n", warning.Message)
	}
}

func renderSingle(w io.Writer, r *analysis.AnalysisResult) {
	fmt.Fprintf(w, "File: %s (%d Hz, %d ch, %.1f s)\n", r.Name, r.SampleRate, r.Channels, r.Duration)
	printWarnings(w, r.Warnings)
	fmt.Fprintln(w)

	printHeader(w)
	printRow(w, "Raw(%)", pctCells(r.Distribution.Raw))
	printRow(w, "K-wt(%)", pctCells(r.Distribution.KWeighted))
	printRow(w, "Diff", diffCells(r.Distribution.Diff))

	printRow(w, "Dyn(dB)", dynamicsCells(r.Dynamics))
}

func renderTimeline(w io.Writer, r *analysis.TimelineResult, interval int) {
	view := "raw"
	if r.Weighted {
		view = "K-weighted"
	}
	fmt.Fprintf(w, "File: %s (%s view, %d s intervals)\n", r.Name, view, interval)
	printWarnings(w, r.Warnings)
	fmt.Fprintln(w)

	printHeader(w)
	for _, frame := range r.Frames {
		values := frame.Distribution.Raw
		if r.Weighted {
			values = frame.Distribution.KWeighted
		}
		total := int(frame.Start.Seconds())
		label := fmt.Sprintf("%02d:%02d", total/60, total%60)
		printRow(w, label, pctCells(values))
	}

	avg := r.Average.Raw
	if r.Weighted {
		avg = r.Average.KWeighted
	}
	printSeparator(w)
	printRow(w, "AVG", pctCells(avg))
}

func printSeparator(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("-", 10+colWidth*analysis.NumBands))
}

func dynamicsCells(profile analysis.DynamicsProfile) []string {
	cells := make([]string, analysis.NumBands)
	for i, d := range profile {
		cells[i] = fmtDynamics(d)
	}
	return cells
}

// dynamicsDiffCells is the band-by-band dB difference against the base,
// masked wherever either side is undefined.
func dynamicsDiffCells(base, other analysis.DynamicsProfile) []string {
	cells := make([]string, analysis.NumBands)
	for i := range cells {
		if !base[i].Defined || !other[i].Defined {
			cells[i] = "-"
			continue
		}
		cells[i] = fmtDiff(other[i].DB - base[i].DB)
	}
	return cells
}

func printEntryRows(w io.Writer, label string, d *analysis.BandDistribution) {
	printRow(w, fmt.Sprintf("[%s] Raw(%%)", label), pctCells(d.Raw))
	printRow(w, fmt.Sprintf("[%s] K-wt", label), pctCells(d.KWeighted))
	printRow(w, fmt.Sprintf("[%s] Diff", label), diffCells(d.Diff))
}

func renderComparison(w io.Writer, set *analysis.ComparisonSet) {
	for i, r := range set.Results {
		fmt.Fprintf(w, "[%s] %s (%d Hz, %d ch, %.1f s)\n", set.Label(i), r.Name, r.SampleRate, r.Channels, r.Duration)
		printWarnings(w, r.Warnings)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[Band Power Distribution]")
	printHeader(w)
	base := set.Base()
	printEntryRows(w, "A", base.Distribution)

	for i := 1; i < len(set.Results); i++ {
		diff := set.BaseRelative(i)
		printSeparator(w)
		printEntryRows(w, diff.Label, set.Results[i].Distribution)
		printSeparator(w)
		printRow(w, fmt.Sprintf("%s-A Raw", diff.Label), diffCells(diff.Raw))
		printRow(w, fmt.Sprintf("%s-A K-wt", diff.Label), diffCells(diff.KWeighted))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "[Dynamics]")
	printHeader(w)
	printRow(w, "[A] dB", dynamicsCells(base.Dynamics))
	for i := 1; i < len(set.Results); i++ {
		other := set.Results[i]
		printSeparator(w)
		printRow(w, fmt.Sprintf("[%s] dB", set.Label(i)), dynamicsCells(other.Dynamics))
		printRow(w, fmt.Sprintf("%s-A dB", set.Label(i)), dynamicsDiffCells(base.Dynamics, other.Dynamics))
	}
}
