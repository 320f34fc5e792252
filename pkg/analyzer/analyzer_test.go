package analyzer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/opnlabs/advisor/pkg/models"
)

const implicitStagePipeline = `pool:
  vmImage: ubuntu-latest

steps:
  - script: make build
  - script: make test
  - script: make package
`

const healthyPipeline = `trigger:
  branches:
    include:
      - main

variables:
  - group: build-settings

stages:
  - stage: Build
    jobs:
      - job: Compile
        timeoutInMinutes: 30
        steps:
          - task: Cache@2
            inputs:
              key: 'npm | package-lock.json'
              path: $(npm_config_cache)
          - task: Npm@1
            retryCountOnTaskFailure: 2
            inputs:
              command: ci
          - template: templates/compile.yml
  - stage: Test
    jobs:
      - job: Unit
        timeoutInMinutes: 20
        strategy:
          parallel: 2
        steps:
          - task: VSTest@2
  - stage: Deploy
    jobs:
      - deployment: Publish
        timeoutInMinutes: 15
        environment: production
        strategy:
          runOnce:
            deploy:
              steps:
                - task: PublishBuildArtifacts@1
`

// namedStagesPipeline builds the two-stage document with a wide Deploy stage.
func namedStagesPipeline(deployJobs int) string {
	var b strings.Builder
	b.WriteString(`trigger:
  - main

stages:
  - stage: Build
    jobs:
      - job: Compile
        steps:
          - script: make
  - stage: Deploy
    jobs:
`)
	for i := 0; i < deployJobs; i++ {
		fmt.Fprintf(&b, "      - job: deploy_%d\n", i)
	}
	return b.String()
}

type analyzeTest struct {
	Name        string
	YAML        string
	Expectation func(*testing.T, models.AnalysisResult) bool
}

func TestAnalyze(t *testing.T) {
	a := New()

	tests := []analyzeTest{
		{
			Name:        "Implicit Stage And Job",
			YAML:        implicitStagePipeline,
			Expectation: expectImplicitStage,
		},
		{
			Name:        "Named Stages With Wide Deploy",
			YAML:        namedStagesPipeline(12),
			Expectation: expectSplitWarning,
		},
		{
			Name:        "Healthy Pipeline",
			YAML:        healthyPipeline,
			Expectation: expectOnlyPositiveMessage,
		},
	}

	for _, test := range tests {
		result, err := a.Analyze(test.YAML)
		if err != nil {
			t.Errorf("Test - %s: unexpected error: %v", test.Name, err)
			continue
		}
		if !test.Expectation(t, result) {
			t.Errorf("Test - %s: failed", test.Name)
		}
	}
}

func expectImplicitStage(t *testing.T, result models.AnalysisResult) bool {
	if result.Analysis.StagesCount != 1 {
		t.Errorf("expected 1 stage, got %d", result.Analysis.StagesCount)
		return false
	}
	jobs, ok := result.Analysis.JobsPerStage.Get("stage_0")
	if !ok || jobs != 1 {
		t.Errorf("expected stage_0 with 1 job, got %v", result.Analysis.JobsPerStage)
		return false
	}
	if result.Analysis.TotalSteps != 3 {
		t.Errorf("expected 3 steps, got %d", result.Analysis.TotalSteps)
		return false
	}
	return containsSubstring(result.Recommendations, "trigger")
}

func expectSplitWarning(t *testing.T, result models.AnalysisResult) bool {
	build, ok := result.Analysis.JobsPerStage.Get("Build")
	if !ok || build != 1 {
		t.Errorf("expected Build with 1 job, got %v", result.Analysis.JobsPerStage)
		return false
	}
	deploy, ok := result.Analysis.JobsPerStage.Get("Deploy")
	if !ok || deploy != 12 {
		t.Errorf("expected Deploy with 12 jobs, got %v", result.Analysis.JobsPerStage)
		return false
	}
	for _, rec := range result.Recommendations {
		if strings.Contains(rec, "Deploy") && strings.Contains(rec, "splitting") {
			return true
		}
	}
	t.Errorf("no split warning for Deploy in %v", result.Recommendations)
	return false
}

func expectOnlyPositiveMessage(t *testing.T, result models.AnalysisResult) bool {
	if len(result.Recommendations) != 1 || result.Recommendations[0] != MessageLooksGood {
		t.Errorf("expected only the positive message, got %v", result.Recommendations)
		return false
	}
	return true
}

func containsSubstring(recommendations []string, substring string) bool {
	for _, rec := range recommendations {
		if strings.Contains(rec, substring) {
			return true
		}
	}
	return false
}

func TestAnalyzeParseErrors(t *testing.T) {
	a := New()

	inputs := map[string]string{
		"empty":              "",
		"whitespace only":    "   \n\t\n",
		"unterminated quote": `foo: "bar`,
		"scalar root":        "just a scalar",
		"sequence root":      "- a\n- b\n",
	}

	for name, input := range inputs {
		_, err := a.Analyze(input)
		if err == nil {
			t.Errorf("%s: expected a parse error, got none", name)
			continue
		}
		if !IsParseError(err) {
			t.Errorf("%s: expected a ParseError, got %v", name, err)
		}
	}
}

func TestAnalyzeInputTooLarge(t *testing.T) {
	a := New(WithMaxInputSize(16))

	_, err := a.Analyze(strings.Repeat("a: b\n", 100))
	if !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("expected ErrInputTooLarge, got %v", err)
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	a := New()

	first, err := a.Analyze(namedStagesPipeline(12))
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.Analyze(namedStagesPipeline(12))
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("analysis is not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestAnalyzeInvariants(t *testing.T) {
	a := New()

	documents := []string{
		implicitStagePipeline,
		healthyPipeline,
		namedStagesPipeline(12),
		"foo: bar\n",
		"stages: notalist\n",
	}

	for _, doc := range documents {
		result, err := a.Analyze(doc)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", doc, err)
		}

		if result.Analysis.StagesCount != len(result.Analysis.JobsPerStage) {
			t.Errorf("stages_count %d does not match jobs_per_stage length %d",
				result.Analysis.StagesCount, len(result.Analysis.JobsPerStage))
		}
		for _, s := range result.Analysis.JobsPerStage {
			if s.Jobs < 0 {
				t.Errorf("negative job count for stage %s", s.Stage)
			}
		}
		if len(result.Recommendations) == 0 {
			t.Error("recommendation list must never be empty")
		}
	}
}
