package analyzer

import (
	"fmt"

	"github.com/opnlabs/advisor/pkg/models"
)

// MessageLooksGood is appended when no rule produced a warning, so the
// recommendation list is never empty.
const MessageLooksGood = "Pipeline configuration looks good."

// rule inspects a document and its metrics and optionally produces one
// advisory message. Rules are pure and must not fail on missing data: absence
// counts as the worst case for the check.
type rule func(doc *Document, m models.Metrics) (string, bool)

// rules returns the battery in its fixed evaluation order. The order is part
// of the contract: for a given input the message sequence is stable.
func (a *Analyzer) rules() []rule {
	return []rule{
		ruleNoStages,
		a.ruleJobFanout,
		a.ruleCaching,
		ruleTrigger,
		ruleSingleStage,
		ruleInlineScripts,
		ruleTimeouts,
		ruleRetries,
		ruleArtifacts,
		ruleTemplates,
		ruleSecrets,
		ruleApprovals,
		ruleVariableGroups,
		ruleTesting,
		ruleParallelism,
	}
}

// Evaluate runs the rule battery against a document and its metrics. The
// returned list is never empty.
func (a *Analyzer) Evaluate(doc *Document, m models.Metrics) []string {
	recommendations := make([]string, 0)
	for _, r := range a.rules() {
		if msg, ok := r(doc, m); ok {
			recommendations = append(recommendations, msg)
		}
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations, MessageLooksGood)
	}
	return recommendations
}

func ruleNoStages(_ *Document, m models.Metrics) (string, bool) {
	if m.StagesCount == 0 {
		return "No stages or jobs were detected. The pipeline may be empty or malformed.", true
	}
	return "", false
}

// ruleJobFanout warns about the first stage whose job count exceeds the
// configured maximum.
func (a *Analyzer) ruleJobFanout(_ *Document, m models.Metrics) (string, bool) {
	for _, s := range m.JobsPerStage {
		if s.Jobs > a.maxJobsPerStage {
			return fmt.Sprintf("Stage %q runs %d jobs. Consider splitting it into smaller stages for parallelism and clarity.", s.Stage, s.Jobs), true
		}
	}
	return "", false
}

func (a *Analyzer) ruleCaching(_ *Document, m models.Metrics) (string, bool) {
	if !m.UsesCaching && m.TotalSteps > a.cachingStepThreshold {
		return "No caching tasks were found. Consider adding a Cache task to reduce pipeline duration.", true
	}
	return "", false
}

func ruleTrigger(_ *Document, m models.Metrics) (string, bool) {
	if !m.HasTrigger {
		return "No explicit trigger is defined, so the pipeline relies on defaults. Add a trigger block for predictable runs.", true
	}
	return "", false
}

func ruleSingleStage(_ *Document, m models.Metrics) (string, bool) {
	if m.StagesCount == 1 {
		return "Consider separating your pipeline into multiple stages (e.g. build, test, deploy).", true
	}
	return "", false
}

func ruleInlineScripts(_ *Document, m models.Metrics) (string, bool) {
	if m.InlineScriptSteps > 0 {
		return "Consider moving inline scripts to separate script files for better maintainability.", true
	}
	return "", false
}

func ruleTimeouts(_ *Document, m models.Metrics) (string, bool) {
	if !m.HasTimeouts {
		return "Consider adding timeoutInMinutes limits to prevent long-running pipelines.", true
	}
	return "", false
}

func ruleRetries(_ *Document, m models.Metrics) (string, bool) {
	if !m.HasRetries {
		return "Consider adding retry logic (retryCountOnTaskFailure) for flaky tasks.", true
	}
	return "", false
}

func ruleArtifacts(_ *Document, m models.Metrics) (string, bool) {
	if !m.HasArtifacts {
		return "Consider publishing build artifacts for better traceability.", true
	}
	return "", false
}

func ruleTemplates(_ *Document, m models.Metrics) (string, bool) {
	if !m.UsesTemplates {
		return "Consider using templates for reusable pipeline components.", true
	}
	return "", false
}

func ruleSecrets(_ *Document, m models.Metrics) (string, bool) {
	if !m.HasSecrets {
		return "No secrets management detected. Consider using Azure Key Vault or pipeline variables.", true
	}
	return "", false
}

func ruleApprovals(_ *Document, m models.Metrics) (string, bool) {
	if !m.HasApprovals {
		return "Consider adding approval gates for production deployments.", true
	}
	return "", false
}

func ruleVariableGroups(_ *Document, m models.Metrics) (string, bool) {
	if !m.HasVariableGroups {
		return "Consider using variable groups for managing environment-specific configurations.", true
	}
	return "", false
}

func ruleTesting(_ *Document, m models.Metrics) (string, bool) {
	if !m.HasTesting {
		return "Add automated testing to ensure code quality.", true
	}
	return "", false
}

func ruleParallelism(_ *Document, m models.Metrics) (string, bool) {
	if !m.HasParallelism {
		return "Consider using parallel jobs to speed up your pipeline execution.", true
	}
	return "", false
}
