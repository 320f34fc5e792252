// Package store implements a simple in-memory registry of pipeline records.
package store

import (
	"errors"
	"sync"

	"github.com/opnlabs/advisor/pkg/models"
)

var (
	ErrExists   = errors.New("store: pipeline already registered")
	ErrNotFound = errors.New("store: pipeline not found")
)

// Registry holds pipeline records together with their YAML definitions.
type Registry interface {
	Add(p models.Pipeline, yaml string) error
	Get(id string) (models.Pipeline, error)
	YAML(id string) (string, error)
	List() []models.Pipeline
	SetStatus(id string, status models.Status) error
}

type record struct {
	pipeline models.Pipeline
	yaml     string
}

type memRegistry struct {
	lock    sync.Mutex
	order   []string
	records map[string]record
}

// NewRegistry creates an empty in-memory registry.
func NewRegistry() Registry {
	return &memRegistry{
		records: make(map[string]record),
	}
}

// Add registers a pipeline and its YAML definition.
func (m *memRegistry) Add(p models.Pipeline, yaml string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.records[p.ID]; ok {
		return ErrExists
	}
	m.records[p.ID] = record{pipeline: p, yaml: yaml}
	m.order = append(m.order, p.ID)
	return nil
}

// Get returns the pipeline record for the given id.
func (m *memRegistry) Get(id string) (models.Pipeline, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	r, ok := m.records[id]
	if !ok {
		return models.Pipeline{}, ErrNotFound
	}
	return r.pipeline, nil
}

// YAML returns the stored YAML definition for the given id.
func (m *memRegistry) YAML(id string) (string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	r, ok := m.records[id]
	if !ok {
		return "", ErrNotFound
	}
	return r.yaml, nil
}

// List returns all pipelines in registration order.
func (m *memRegistry) List() []models.Pipeline {
	m.lock.Lock()
	defer m.lock.Unlock()

	pipelines := make([]models.Pipeline, 0, len(m.order))
	for _, id := range m.order {
		pipelines = append(pipelines, m.records[id].pipeline)
	}
	return pipelines
}

// SetStatus updates the run status of a registered pipeline.
func (m *memRegistry) SetStatus(id string, status models.Status) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	r, ok := m.records[id]
	if !ok {
		return ErrNotFound
	}
	r.pipeline.Status = status
	m.records[id] = r
	return nil
}
