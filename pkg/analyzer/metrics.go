package analyzer

import (
	"fmt"
	"strings"

	"github.com/opnlabs/advisor/pkg/models"
)

// ExtractMetrics computes structural metrics from a parsed document. It never
// fails: absent or malformed keys degrade to zero counts and false flags.
func ExtractMetrics(doc *Document) models.Metrics {
	root := doc.Root()

	m := models.Metrics{
		JobsPerStage: models.StageCounts{},
	}
	_, m.HasTrigger = root["trigger"]

	stages := sequence(root["stages"])
	if len(stages) > 0 {
		for i, s := range stages {
			stage := mapping(s)
			key := stageKey(stage, i, m.JobsPerStage)
			jobs := jobsIn(stage)

			m.JobsPerStage = append(m.JobsPerStage, models.StageJobs{Stage: key, Jobs: len(jobs)})
			for _, job := range jobs {
				countSteps(job, &m)
			}
		}
	} else if len(sequence(root["jobs"])) > 0 || len(sequence(root["steps"])) > 0 {
		// No stages key, treat the whole document as one implicit stage.
		jobs := jobsIn(root)
		m.JobsPerStage = append(m.JobsPerStage, models.StageJobs{Stage: "stage_0", Jobs: len(jobs)})
		for _, job := range jobs {
			countSteps(job, &m)
		}
	}

	m.StagesCount = len(m.JobsPerStage)
	scanPractices(doc.Raw(), &m)
	return m
}

// stageKey picks the declared stage name, falling back to the display name
// and finally to a positional placeholder. A name already taken by an earlier
// stage also falls back to the placeholder so jobs_per_stage keeps exactly
// one entry per stage.
func stageKey(stage map[string]any, index int, seen models.StageCounts) string {
	key := scalar(stage["stage"])
	if key == "" {
		key = scalar(stage["displayName"])
	}
	if key == "" {
		return fmt.Sprintf("stage_%d", index)
	}
	if _, ok := seen.Get(key); ok {
		return fmt.Sprintf("stage_%d", index)
	}
	return key
}

// jobsIn locates the jobs of a stage-like mapping: the jobs sequence when
// present, otherwise the mapping itself acts as one implicit job when it
// declares steps directly.
func jobsIn(stage map[string]any) []map[string]any {
	if js := sequence(stage["jobs"]); len(js) > 0 {
		jobs := make([]map[string]any, 0, len(js))
		for _, j := range js {
			jobs = append(jobs, mapping(j))
		}
		return jobs
	}
	if len(sequence(stage["steps"])) > 0 {
		return []map[string]any{stage}
	}
	return nil
}

// countSteps accumulates step-level metrics for a single job.
func countSteps(job map[string]any, m *models.Metrics) {
	for _, s := range sequence(job["steps"]) {
		step := mapping(s)
		m.TotalSteps++

		if _, ok := step["condition"]; ok {
			m.ConditionalSteps++
		}
		if isInlineScript(step) {
			m.InlineScriptSteps++
		}
		if isCachingTask(scalar(step["task"])) {
			m.UsesCaching = true
		}
	}
}

func isInlineScript(step map[string]any) bool {
	for _, key := range []string{"script", "bash", "pwsh", "powershell"} {
		if _, ok := step[key]; ok {
			return true
		}
	}
	return false
}

// isCachingTask matches the Azure Pipelines cache tasks, e.g. Cache@2 or
// CacheBeta@1.
func isCachingTask(task string) bool {
	task = strings.ToLower(task)
	return strings.HasPrefix(task, "cache@") || strings.HasPrefix(task, "cachebeta@")
}
