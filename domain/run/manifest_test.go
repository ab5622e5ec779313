package run

import (
	"errors"
	"testing"

	"langtrends/domain/core"
)

func TestFingerprint_Deterministic(t *testing.T) {
	source := core.Hash("source")
	tidy := core.Hash("tidy")

	fp1 := NewFingerprint(source, tidy, "1.0.0")
	fp2 := NewFingerprint(source, tidy, "1.0.0")

	if fp1.Fingerprint != fp2.Fingerprint {
		t.Errorf("Fingerprints not identical: %s vs %s", fp1.Fingerprint, fp2.Fingerprint)
	}
	if fp1.SourceHash != source || fp1.TidyHash != tidy {
		t.Errorf("Fingerprint inputs not recorded: %+v", fp1)
	}
}

func TestFingerprint_SensitiveToInputs(t *testing.T) {
	base := NewFingerprint("source", "tidy", "1.0.0")

	variants := []Fingerprint{
		NewFingerprint("other", "tidy", "1.0.0"),
		NewFingerprint("source", "other", "1.0.0"),
		NewFingerprint("source", "tidy", "1.0.1"),
	}
	for i, v := range variants {
		if v.Fingerprint == base.Fingerprint {
			t.Errorf("variant %d produced the same fingerprint", i)
		}
	}
}

func TestManifest_Lifecycle(t *testing.T) {
	m := NewManifest(core.NewRunID(), "report.xlsx")
	if m.Status != StatusRunning {
		t.Fatalf("Expected running status, got %s", m.Status)
	}

	m.Complete()
	if err := m.Validate(); err == nil {
		t.Error("Expected validation error for completed run without fingerprint")
	}

	m.Fingerprint = NewFingerprint("s", "t", "dev")
	m.AddOutput("charts", "out/dashboard.html")
	if err := m.Validate(); err != nil {
		t.Errorf("Unexpected validation error: %v", err)
	}
	if len(m.Outputs) != 1 || m.CompletedAt == nil {
		t.Errorf("Unexpected manifest state: %+v", m)
	}
}

func TestManifest_Fail(t *testing.T) {
	m := NewManifest(core.NewRunID(), "report.xlsx")
	m.Fail(errors.New("boom"))

	if m.Status != StatusFailed || m.Error != "boom" {
		t.Errorf("Unexpected failed manifest: %+v", m)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Failed run should still validate: %v", err)
	}
}

func TestManifest_ValidateRequiresIDs(t *testing.T) {
	if err := (&Manifest{SourcePath: "x"}).Validate(); err == nil {
		t.Error("Expected error for empty run id")
	}
	if err := (&Manifest{RunID: "r", SourcePath: "x", CreatedAt: core.Now()}).Validate(); err == nil {
		t.Error("Expected error for malformed run id")
	}
	if err := (&Manifest{RunID: core.NewRunID(), CreatedAt: core.Now()}).Validate(); err == nil {
		t.Error("Expected error for empty source path")
	}
	if err := (&Manifest{RunID: core.NewRunID(), SourcePath: "x"}).Validate(); err == nil {
		t.Error("Expected error for missing created_at")
	}
}
