package utils

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/opnlabs/advisor/pkg/analyzer"
	"github.com/opnlabs/advisor/pkg/models"
)

var (
	headerColor   = color.New(color.FgCyan, color.Bold)
	warningColor  = color.New(color.FgYellow)
	positiveColor = color.New(color.FgGreen)
)

// ResultPrinter renders analysis results for the terminal.
type ResultPrinter struct {
	writer io.Writer
}

func NewResultPrinter(writer io.Writer) *ResultPrinter {
	return &ResultPrinter{writer: writer}
}

// Print writes the metrics and recommendations for a single input. Warnings
// and the positive confirmation get different colors; the severity is
// inferred from the message text.
func (p *ResultPrinter) Print(name string, result models.AnalysisResult) {
	headerColor.Fprintln(p.writer, name)

	fmt.Fprintf(p.writer, "  stages: %d\n", result.Analysis.StagesCount)
	for _, s := range result.Analysis.JobsPerStage {
		fmt.Fprintf(p.writer, "    %s: %d job(s)\n", s.Stage, s.Jobs)
	}
	fmt.Fprintf(p.writer, "  steps: %d\n", result.Analysis.TotalSteps)

	for _, rec := range result.Recommendations {
		c := warningColor
		if rec == analyzer.MessageLooksGood {
			c = positiveColor
		}
		c.Fprintf(p.writer, "  - %s\n", rec)
	}
}
