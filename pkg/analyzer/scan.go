package analyzer

import (
	"strings"

	"github.com/opnlabs/advisor/pkg/models"
)

// scanPractices collects presence flags that are cheaper to detect on the raw
// text than in the tree, since the matching keys can appear at the pipeline,
// stage, job or step level.
func scanPractices(raw string, m *models.Metrics) {
	content := strings.ToLower(raw)

	m.HasTimeouts = strings.Contains(content, "timeoutinminutes:")
	m.HasRetries = strings.Contains(content, "retrycountontaskfailure:")
	m.UsesTemplates = strings.Contains(content, "template:")
	m.HasArtifacts = strings.Contains(content, "publish") || strings.Contains(content, "artifact")

	m.HasSecrets = containsAny(content, "secret", "token", "password", "key")
	m.UsesSecureFiles = strings.Contains(content, "securefile")
	// Approval gates attach to deployment environments, so an environment
	// reference counts alongside explicit approval/reviewer keys.
	m.HasApprovals = containsAny(content, "approvals:", "reviewers:", "environment:")
	m.HasVariableGroups = strings.Contains(content, "- group:")
	m.HasTesting = containsAny(content, "test", "pytest", "unittest")
	m.HasParallelism = containsAny(content, "parallel:", "matrix:")
}

func containsAny(content string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(content, term) {
			return true
		}
	}
	return false
}
