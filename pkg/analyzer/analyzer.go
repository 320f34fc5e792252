// Package analyzer inspects Azure Pipelines YAML definitions. It parses the
// text into a generic tree, extracts structural metrics and evaluates a fixed
// battery of heuristic rules to produce recommendations.
package analyzer

import (
	"github.com/opnlabs/advisor/pkg/models"
)

const (
	// DefaultMaxInputSize bounds the accepted YAML text to avoid pathological
	// parse costs.
	DefaultMaxInputSize = 1 << 20

	// DefaultMaxJobsPerStage is the job count above which a stage is flagged
	// for splitting.
	DefaultMaxJobsPerStage = 10

	// DefaultCachingStepThreshold is the total step count above which a
	// pipeline without caching gets a caching recommendation.
	DefaultCachingStepThreshold = 5
)

// Analyzer analyzes pipeline definitions. It holds only configuration, so a
// single instance is safe for concurrent use.
type Analyzer struct {
	maxInputSize         int
	maxJobsPerStage      int
	cachingStepThreshold int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMaxInputSize sets the input size limit in bytes. Zero disables the
// limit.
func WithMaxInputSize(n int) Option {
	return func(a *Analyzer) {
		a.maxInputSize = n
	}
}

// WithMaxJobsPerStage sets the job fanout threshold.
func WithMaxJobsPerStage(n int) Option {
	return func(a *Analyzer) {
		a.maxJobsPerStage = n
	}
}

// WithCachingStepThreshold sets the step count threshold for the caching
// recommendation.
func WithCachingStepThreshold(n int) Option {
	return func(a *Analyzer) {
		a.cachingStepThreshold = n
	}
}

// New creates an Analyzer with the default thresholds.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		maxInputSize:         DefaultMaxInputSize,
		maxJobsPerStage:      DefaultMaxJobsPerStage,
		cachingStepThreshold: DefaultCachingStepThreshold,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze parses the YAML text, extracts metrics and evaluates the rule
// battery. It returns ErrInputTooLarge when the text exceeds the size limit
// and a ParseError when the text is not a well-formed pipeline definition.
// The computation is stateless and idempotent.
func (a *Analyzer) Analyze(text string) (models.AnalysisResult, error) {
	if a.maxInputSize > 0 && len(text) > a.maxInputSize {
		return models.AnalysisResult{}, ErrInputTooLarge
	}

	doc, err := Parse(text)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	metrics := ExtractMetrics(doc)
	recommendations := a.Evaluate(doc, metrics)
	return Assemble(metrics, recommendations), nil
}

// Assemble combines metrics and recommendations into the boundary result. No
// logic beyond structuring.
func Assemble(metrics models.Metrics, recommendations []string) models.AnalysisResult {
	return models.AnalysisResult{
		Analysis:        metrics,
		Recommendations: recommendations,
	}
}
