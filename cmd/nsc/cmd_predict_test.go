package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScan(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestPredict_RecordsAndRenders(t *testing.T) {
	setupHome(t)
	srv := fakeServer(t)
	scan := writeScan(t, t.TempDir(), "scan.jpg", "glioma 0.92")

	code, stdout, stderr := runCLI(t, "--server", srv.URL, "--color", "never", "predict", scan)
	if code != 0 {
		t.Fatalf("predict exited %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Glioma") {
		t.Errorf("output missing predicted class:\n%s", stdout)
	}
	if !strings.Contains(stdout, "92.00%") {
		t.Errorf("output missing confidence:\n%s", stdout)
	}

	code, stdout, _ = runCLI(t, "history", "list")
	if code != 0 {
		t.Fatalf("history list exited %d", code)
	}
	if !strings.Contains(stdout, "scan.jpg") {
		t.Errorf("history list missing recorded prediction:\n%s", stdout)
	}
	if !strings.Contains(stdout, "resnet50-v2") && !strings.Contains(stdout, "Glioma") {
		t.Errorf("history list missing record fields:\n%s", stdout)
	}
}

func TestPredict_MissingImage(t *testing.T) {
	setupHome(t)
	srv := fakeServer(t)

	code, _, stderr := runCLI(t, "--server", srv.URL, "predict", "/no/such/scan.jpg")
	if code != 1 {
		t.Fatalf("predict exited %d, want 1", code)
	}
	if !strings.Contains(stderr, "reading image") {
		t.Errorf("stderr = %q, want image read error", stderr)
	}
}

func TestPredict_ServerUnreachable(t *testing.T) {
	setupHome(t)
	scan := writeScan(t, t.TempDir(), "scan.jpg", "glioma 0.92")

	code, _, stderr := runCLI(t, "--server", "http://127.0.0.1:1", "--color", "never", "predict", scan)
	if code != 1 {
		t.Fatalf("predict exited %d, want 1", code)
	}
	if !strings.Contains(stderr, "transport") {
		t.Errorf("stderr = %q, want transport error", stderr)
	}
	// Nothing must be recorded for a failed classification.
	_, stdout, _ := runCLI(t, "history", "list")
	if !strings.Contains(stdout, "No predictions recorded yet") {
		t.Errorf("history not empty after failed predict:\n%s", stdout)
	}
}

func TestPredict_InvalidResolution(t *testing.T) {
	setupHome(t)
	scan := writeScan(t, t.TempDir(), "scan.jpg", "glioma 0.92")

	code, _, stderr := runCLI(t, "predict", "--resolution", "100", scan)
	if code != 1 {
		t.Fatalf("predict exited %d, want 1", code)
	}
	if !strings.Contains(stderr, "invalid --resolution") {
		t.Errorf("stderr = %q, want resolution validation error", stderr)
	}
}

func TestHistoryNote_EditAndPersist(t *testing.T) {
	setupHome(t)
	srv := fakeServer(t)
	scan := writeScan(t, t.TempDir(), "scan.jpg", "pituitary 0.85")

	if code, _, stderr := runCLI(t, "--server", srv.URL, "predict", scan); code != 0 {
		t.Fatalf("predict failed: %s", stderr)
	}

	code, _, stderr := runCLI(t, "history", "note", "0", "check", "with", "radiology")
	if code != 0 {
		t.Fatalf("note exited %d, stderr: %s", code, stderr)
	}

	_, stdout, _ := runCLI(t, "--color", "never", "history", "list")
	if !strings.Contains(stdout, "check with radiology") {
		t.Errorf("history list missing saved note:\n%s", stdout)
	}
}

func TestHistoryNote_BadIndex(t *testing.T) {
	setupHome(t)

	code, _, stderr := runCLI(t, "history", "note", "5", "text")
	if code != 1 {
		t.Fatalf("note exited %d, want 1", code)
	}
	if !strings.Contains(stderr, "out of range") {
		t.Errorf("stderr = %q, want out-of-range error", stderr)
	}
}

func TestHistoryReset(t *testing.T) {
	setupHome(t)
	srv := fakeServer(t)
	scan := writeScan(t, t.TempDir(), "scan.jpg", "glioma 0.92")

	if code, _, stderr := runCLI(t, "--server", srv.URL, "predict", scan); code != 0 {
		t.Fatalf("predict failed: %s", stderr)
	}
	if code, _, _ := runCLI(t, "history", "reset"); code != 0 {
		t.Fatal("reset failed")
	}
	_, stdout, _ := runCLI(t, "history", "list")
	if !strings.Contains(stdout, "No predictions recorded yet") {
		t.Errorf("history not empty after reset:\n%s", stdout)
	}
}
