// ABOUTME: Integration tests for full workflow
// ABOUTME: Builds the binary and exercises calc, list, project, undo, and import

package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("Failed to get project root: %v", err)
	}

	binary := filepath.Join(projectRoot, "parcel")
	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/parcel")
	buildCmd.Dir = projectRoot
	buildOutput, err := buildCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Failed to build: %v\nOutput: %s", err, buildOutput)
	}
	defer func() { _ = os.Remove(binary) }()

	tmpDir := t.TempDir()

	run := func(args ...string) (string, error) {
		cmd := exec.Command(binary, args...)
		cmd.Env = append(os.Environ(),
			"PARCEL_DATA_DIR="+tmpDir,
			"PARCEL_BACKEND=sqlite",
		)
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// Calculate and save a measurement
	output, err := run("calc",
		"-l", "0, 0", "-l", "100, 0",
		"-r", "0, 50", "-r", "100, 50",
		"--save", "--name", "north plot")
	if err != nil {
		t.Fatalf("Failed to calc: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Saved") {
		t.Error("Expected success message")
	}
	if !strings.Contains(output, "53819.5") {
		t.Errorf("Expected area in output:\n%s", output)
	}

	// List should show the measurement
	output, err = run("list")
	if err != nil {
		t.Fatalf("Failed to list: %v\n%s", err, output)
	}
	if !strings.Contains(output, "north plot") {
		t.Errorf("Expected 'north plot' in list:\n%s", output)
	}

	// Create and switch to a second project
	output, err = run("project", "add", "West Field", "--use")
	if err != nil {
		t.Fatalf("Failed to add project: %v\n%s", err, output)
	}

	output, err = run("project", "list")
	if err != nil {
		t.Fatalf("Failed to list projects: %v\n%s", err, output)
	}
	if !strings.Contains(output, "West Field") || !strings.Contains(output, "Default Project") {
		t.Errorf("Expected both projects:\n%s", output)
	}

	// New project has no measurements
	output, err = run("list")
	if err != nil {
		t.Fatalf("Failed to list: %v\n%s", err, output)
	}
	if strings.Contains(output, "north plot") {
		t.Errorf("New project should be empty:\n%s", output)
	}

	// Undo the project switch across processes
	output, err = run("undo")
	if err != nil {
		t.Fatalf("Failed to undo: %v\n%s", err, output)
	}

	// Export, then re-import
	backupPath := filepath.Join(tmpDir, "backup.yaml")
	output, err = run("export", "--format", "yaml", "--output", backupPath)
	if err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}

	output, err = run("import", backupPath, "--confirm")
	if err != nil {
		t.Fatalf("Failed to import: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Import complete") {
		t.Errorf("Expected import confirmation:\n%s", output)
	}

	// Data survived the round trip
	output, err = run("list", "--all")
	if err != nil {
		t.Fatalf("Failed to list: %v\n%s", err, output)
	}
	if !strings.Contains(output, "north plot") {
		t.Errorf("Expected measurement after import:\n%s", output)
	}

	t.Log("Integration test passed!")
}
