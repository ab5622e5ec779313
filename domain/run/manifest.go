package run

import (
	"fmt"

	"langtrends/domain/core"
	"langtrends/domain/langreport"
)

// Status of a run
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Fingerprint identifies the inputs and derived data of a run. Two runs over the same file
// with the same code version produce the same fingerprint.
type Fingerprint struct {
	SourceHash  core.Hash `json:"source_hash"`
	TidyHash    core.Hash `json:"tidy_hash"`
	CodeVersion string    `json:"code_version"`
	Fingerprint core.Hash `json:"fingerprint"`
}

// NewFingerprint combines source and tidy hashes
func NewFingerprint(sourceHash, tidyHash core.Hash, codeVersion string) Fingerprint {
	data := fmt.Sprintf("source:%s|tidy:%s|code:%s", sourceHash, tidyHash, codeVersion)
	return Fingerprint{
		SourceHash:  sourceHash,
		TidyHash:    tidyHash,
		CodeVersion: codeVersion,
		Fingerprint: core.NewHash([]byte(data)),
	}
}

// Output is one artifact written by an exporter
type Output struct {
	Exporter string `json:"exporter"`
	Location string `json:"location"`
}

// Manifest records what a run read, derived and wrote
type Manifest struct {
	RunID        core.RunID                 `json:"run_id"`
	SourcePath   string                     `json:"source_path"`
	Fingerprint  Fingerprint                `json:"fingerprint"`
	Stats        langreport.Stats           `json:"stats"`
	TopLanguages []langreport.LanguageCount `json:"top_languages"`
	Outputs      []Output                   `json:"outputs"`
	Status       Status                     `json:"status"`
	Error        string                     `json:"error,omitempty"`
	CreatedAt    core.Timestamp             `json:"created_at"`
	CompletedAt  *core.Timestamp            `json:"completed_at,omitempty"`
}

// NewManifest starts a manifest for a run over sourcePath
func NewManifest(runID core.RunID, sourcePath string) *Manifest {
	return &Manifest{
		RunID:      runID,
		SourcePath: sourcePath,
		Status:     StatusRunning,
		CreatedAt:  core.Now(),
	}
}

// AddOutput records a written artifact
func (m *Manifest) AddOutput(exporter, location string) {
	m.Outputs = append(m.Outputs, Output{Exporter: exporter, Location: location})
}

// Complete marks the run as finished
func (m *Manifest) Complete() {
	now := core.Now()
	m.Status = StatusCompleted
	m.CompletedAt = &now
}

// Fail marks the run as failed with err
func (m *Manifest) Fail(err error) {
	now := core.Now()
	m.Status = StatusFailed
	m.Error = err.Error()
	m.CompletedAt = &now
}

// Validate checks if the manifest is complete
func (m *Manifest) Validate() error {
	if core.ID(m.RunID).IsEmpty() {
		return fmt.Errorf("run_manifest: run_id cannot be empty")
	}
	if _, err := core.ParseRunID(m.RunID.String()); err != nil {
		return fmt.Errorf("run_manifest: %w", err)
	}
	if m.SourcePath == "" {
		return fmt.Errorf("run_manifest: source_path cannot be empty")
	}
	if m.CreatedAt.IsZero() {
		return fmt.Errorf("run_manifest: created_at is not set")
	}
	if m.Status == StatusCompleted && m.Fingerprint.Fingerprint.IsEmpty() {
		return fmt.Errorf("run_manifest: completed run has no fingerprint")
	}
	return nil
}
