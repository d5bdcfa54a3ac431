//go:build basic || database

// Package integration runs the goodnews binary end to end.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// The database tests need Docker: go test -tags database ./integration
package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedBinaryPath holds the path to a goodnews binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getBinary returns the path to the goodnews binary, building it once if needed.
func getBinary() string {
	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "goodnews-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binaryPath := filepath.Join(tempDir, "goodnews")
		buildCmd := exec.Command("go", "build", "-o", binaryPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build goodnews: %v\n%s", err, out))
		}

		sharedBinaryPath = binaryPath
	})

	return sharedBinaryPath
}

// runGoodNews runs the binary from the project root against the bundled
// test data and returns its stdout.
func runGoodNews(t *testing.T, args ...string) (string, error) {
	t.Helper()
	args = append(args, "--source", "testdata", "--color", "no")
	cmd := exec.Command(getBinary(), args...)
	cmd.Dir = "../" // Run from project root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Logf("Command failed: %s\nStdout: %s\nStderr: %s", cmd.String(), stdout.String(), stderr.String())
		return stdout.String(), err
	}
	return stdout.String(), nil
}
