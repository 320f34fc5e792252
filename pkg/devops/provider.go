// Package devops provides the pipeline listing served at the HTTP boundary.
// Real Azure DevOps integration is out of scope, so the provider is seeded
// with a fixed set of records and is fully independent of the analyzer.
package devops

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/opnlabs/advisor/pkg/models"
	"github.com/opnlabs/advisor/pkg/store"
)

// Provider lists pipelines and returns their YAML definitions.
type Provider interface {
	List(ctx context.Context) ([]models.Pipeline, error)
	YAML(ctx context.Context, id string) (string, error)
}

// MockProvider serves a seeded, in-memory pipeline listing.
type MockProvider struct {
	registry store.Registry
}

type seed struct {
	name   string
	status models.Status
	age    time.Duration
	yaml   string
}

var seeds = []seed{
	{
		name:   "frontend-build",
		status: models.StatusSucceeded,
		age:    2 * time.Hour,
		yaml: `trigger:
  branches:
    include:
      - main

stages:
  - stage: Build
    jobs:
      - job: Compile
        steps:
          - task: Npm@1
            inputs:
              command: ci
          - task: Npm@1
            inputs:
              command: custom
              customCommand: run build
`,
	},
	{
		name:   "backend-deploy",
		status: models.StatusFailed,
		age:    26 * time.Hour,
		yaml: `stages:
  - stage: Build
    jobs:
      - job: Compile
        steps:
          - script: make build
  - stage: Deploy
    jobs:
      - job: Release
        steps:
          - script: make deploy
`,
	},
	{
		name:   "nightly-tests",
		status: models.StatusRunning,
		age:    10 * time.Minute,
		yaml: `pool:
  vmImage: ubuntu-latest

steps:
  - script: make test
`,
	},
	{
		name:   "legacy-release",
		status: models.StatusUnknown,
		age:    30 * 24 * time.Hour,
		yaml: `jobs:
  - job: Package
    steps:
      - script: ./package.sh
`,
	},
}

// NewMockProvider creates a provider seeded with the mock pipeline set.
func NewMockProvider() *MockProvider {
	registry := store.NewRegistry()
	now := time.Now().UTC()

	for _, s := range seeds {
		p := models.Pipeline{
			ID:      uuid.NewString(),
			Name:    s.name,
			Status:  s.status,
			LastRun: now.Add(-s.age),
		}
		if err := registry.Add(p, s.yaml); err != nil {
			log.Fatalf("could not seed pipeline %s: %v", s.name, err)
		}
	}

	return &MockProvider{registry: registry}
}

// List returns all known pipelines in a stable order.
func (p *MockProvider) List(_ context.Context) ([]models.Pipeline, error) {
	return p.registry.List(), nil
}

// YAML returns the pipeline definition for the given id. It returns
// store.ErrNotFound for unknown ids.
func (p *MockProvider) YAML(_ context.Context, id string) (string, error) {
	return p.registry.YAML(id)
}
