package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Status is the state of a pipeline's last run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusRunning   Status = "running"
	StatusUnknown   Status = "unknown"
)

// Valid reports whether s is one of the known run states.
func (s Status) Valid() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusRunning, StatusUnknown:
		return true
	}
	return false
}

// Pipeline is a single entry in the pipeline listing.
type Pipeline struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Status  Status    `json:"status"`
	LastRun time.Time `json:"lastRun"`
}

// AnalyzeRequest is the request body for the analyze endpoint.
type AnalyzeRequest struct {
	YAMLContent string `json:"yaml_content" validate:"required"`
}

// StageJobs is the job count for a single stage.
type StageJobs struct {
	Stage string
	Jobs  int
}

// StageCounts maps stage keys to job counts in document order. A plain map
// would lose the order on iteration and encoding/json sorts map keys, so the
// mapping is kept as a slice of pairs.
type StageCounts []StageJobs

// Get returns the job count for the given stage key.
func (s StageCounts) Get(stage string) (int, bool) {
	for _, v := range s {
		if v.Stage == stage {
			return v.Jobs, true
		}
	}
	return 0, false
}

// MarshalJSON encodes the counts as a JSON object with keys in document order.
func (s StageCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(v.Stage)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(v.Jobs))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Metrics holds the structural measurements extracted from a pipeline
// definition. All counts are non-negative and missing data degrades to
// zero values instead of errors.
type Metrics struct {
	StagesCount       int         `json:"stages_count"`
	JobsPerStage      StageCounts `json:"jobs_per_stage"`
	TotalSteps        int         `json:"total_steps"`
	ConditionalSteps  int         `json:"conditional_steps"`
	InlineScriptSteps int         `json:"inline_script_steps"`
	UsesCaching       bool        `json:"uses_caching"`
	HasTrigger        bool        `json:"has_trigger"`
	HasTimeouts       bool        `json:"has_timeouts"`
	HasRetries        bool        `json:"has_retries"`
	HasArtifacts      bool        `json:"has_artifacts"`
	UsesTemplates     bool        `json:"uses_templates"`
	HasSecrets        bool        `json:"has_secrets"`
	UsesSecureFiles   bool        `json:"uses_secure_files"`
	HasApprovals      bool        `json:"has_approvals"`
	HasVariableGroups bool        `json:"has_variable_groups"`
	HasTesting        bool        `json:"has_testing"`
	HasParallelism    bool        `json:"has_parallelism"`
}

// AnalysisResult combines the metrics with the recommendations produced for
// the same document. It is the value serialized at the system boundary.
type AnalysisResult struct {
	Analysis        Metrics  `json:"analysis"`
	Recommendations []string `json:"recommendations"`
}
