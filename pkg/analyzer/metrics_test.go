package analyzer

import (
	"testing"
)

func mustParse(t *testing.T, text string) *Document {
	t.Helper()
	doc, err := Parse(text)
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc
}

func TestStageNaming(t *testing.T) {
	doc := mustParse(t, `stages:
  - stage: Build
  - displayName: Fancy Tests
  - pool: something
  - stage: Build
`)

	m := ExtractMetrics(doc)
	if m.StagesCount != 4 {
		t.Fatalf("expected 4 stages, got %d", m.StagesCount)
	}

	expected := []string{"Build", "Fancy Tests", "stage_2", "stage_3"}
	for i, key := range expected {
		if m.JobsPerStage[i].Stage != key {
			t.Errorf("stage %d: expected key %q, got %q", i, key, m.JobsPerStage[i].Stage)
		}
	}
}

func TestStagesWrongType(t *testing.T) {
	doc := mustParse(t, "stages: notalist\n")

	m := ExtractMetrics(doc)
	if m.StagesCount != 0 {
		t.Errorf("expected 0 stages for a non-sequence stages key, got %d", m.StagesCount)
	}
	if len(m.JobsPerStage) != 0 {
		t.Errorf("expected no job counts, got %v", m.JobsPerStage)
	}
}

func TestTopLevelJobs(t *testing.T) {
	doc := mustParse(t, `jobs:
  - job: one
    steps:
      - script: echo one
  - job: two
    steps:
      - script: echo two
      - script: echo three
`)

	m := ExtractMetrics(doc)
	if m.StagesCount != 1 {
		t.Fatalf("expected 1 implicit stage, got %d", m.StagesCount)
	}
	jobs, ok := m.JobsPerStage.Get("stage_0")
	if !ok || jobs != 2 {
		t.Errorf("expected stage_0 with 2 jobs, got %v", m.JobsPerStage)
	}
	if m.TotalSteps != 3 {
		t.Errorf("expected 3 steps, got %d", m.TotalSteps)
	}
}

func TestStepFlags(t *testing.T) {
	doc := mustParse(t, `trigger: none

stages:
  - stage: Build
    jobs:
      - job: Compile
        steps:
          - task: CacheBeta@1
          - script: make build
            condition: succeeded()
          - bash: ./lint.sh
`)

	m := ExtractMetrics(doc)
	if !m.HasTrigger {
		t.Error("trigger: none is still an explicit trigger")
	}
	if !m.UsesCaching {
		t.Error("CacheBeta@1 should count as a caching task")
	}
	if m.ConditionalSteps != 1 {
		t.Errorf("expected 1 conditional step, got %d", m.ConditionalSteps)
	}
	if m.InlineScriptSteps != 2 {
		t.Errorf("expected 2 inline script steps, got %d", m.InlineScriptSteps)
	}
	if m.TotalSteps != 3 {
		t.Errorf("expected 3 steps, got %d", m.TotalSteps)
	}
}

func TestPracticeScan(t *testing.T) {
	doc := mustParse(t, `jobs:
  - job: Build
    timeoutInMinutes: 20
    steps:
      - task: Npm@1
        retryCountOnTaskFailure: 3
      - task: PublishBuildArtifacts@1
      - template: steps/cleanup.yml
`)

	m := ExtractMetrics(doc)
	if !m.HasTimeouts {
		t.Error("timeoutInMinutes not detected")
	}
	if !m.HasRetries {
		t.Error("retryCountOnTaskFailure not detected")
	}
	if !m.HasArtifacts {
		t.Error("artifact publishing not detected")
	}
	if !m.UsesTemplates {
		t.Error("template usage not detected")
	}
}

func TestSecurityScan(t *testing.T) {
	doc := mustParse(t, `variables:
  - group: release-settings

stages:
  - stage: Deploy
    jobs:
      - job: Smoke
        strategy:
          matrix:
            linux:
              image: ubuntu
        steps:
          - script: ./smoke.sh
      - deployment: Release
        environment: production
        strategy:
          runOnce:
            deploy:
              steps:
                - task: DownloadSecureFile@1
                - script: ./deploy.sh $(api-token)
`)

	m := ExtractMetrics(doc)
	if !m.HasSecrets {
		t.Error("token reference not detected as secrets usage")
	}
	if !m.UsesSecureFiles {
		t.Error("DownloadSecureFile task not detected")
	}
	if !m.HasApprovals {
		t.Error("deployment environment not detected as approval-capable")
	}
	if !m.HasVariableGroups {
		t.Error("variable group not detected")
	}
	if !m.HasParallelism {
		t.Error("matrix strategy not detected")
	}
}

func TestSecurityScanWorstCase(t *testing.T) {
	doc := mustParse(t, "pool:\n  name: default\n")

	m := ExtractMetrics(doc)
	if m.HasSecrets || m.UsesSecureFiles || m.HasApprovals || m.HasVariableGroups || m.HasTesting || m.HasParallelism {
		t.Errorf("all scan flags must default to false on absence: %+v", m)
	}
}

func TestEmptyMappingDocument(t *testing.T) {
	doc := mustParse(t, "variables:\n  foo: bar\n")

	m := ExtractMetrics(doc)
	if m.StagesCount != 0 {
		t.Errorf("expected 0 stages, got %d", m.StagesCount)
	}
	if m.HasTrigger {
		t.Error("no trigger was declared")
	}
	if m.TotalSteps != 0 {
		t.Errorf("expected 0 steps, got %d", m.TotalSteps)
	}
}
