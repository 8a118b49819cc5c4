package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bootz/config"
)

// healthyChecker returns a Checker whose every hook succeeds and whose
// config points at files that exist under a temp dir.
func healthyChecker(t *testing.T) *Checker {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Manifest = filepath.Join(dir, "requirements.txt")
	cfg.DatabaseDir = filepath.Join(dir, "src", "database")
	if err := os.WriteFile(cfg.Manifest, []byte("flask\nspacy\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	c := NewChecker(cfg)
	c.LookPath = func(file string) (string, error) { return "/usr/bin/" + file, nil }
	c.ClockOffset = func(string) (time.Duration, error) { return 10 * time.Millisecond, nil }
	c.FreeDisk = func(string) (uint64, error) { return 10 << 30, nil }
	return c
}

func findIssue(report Report, component string) (Issue, bool) {
	for _, issue := range report.Issues {
		if issue.Component == component {
			return issue, true
		}
	}
	return Issue{}, false
}

func TestRunHealthyHost(t *testing.T) {
	t.Parallel()

	report := healthyChecker(t).Run(context.Background())
	if !report.OK() {
		t.Fatalf("Run() found blockers on a healthy host: %+v", report.Issues)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("Run() issues = %+v, want none", report.Issues)
	}
}

func TestRunMissingToolIsBlocker(t *testing.T) {
	t.Parallel()

	c := healthyChecker(t)
	c.LookPath = func(file string) (string, error) {
		if file == c.Config.Pip {
			return "", fmt.Errorf("exec: %q: executable file not found in $PATH", file)
		}
		return "/usr/bin/" + file, nil
	}

	report := c.Run(context.Background())
	if report.OK() {
		t.Fatal("Run() reported OK despite missing pip")
	}
	issue, ok := findIssue(report, "pip")
	if !ok {
		t.Fatalf("no pip issue in %+v", report.Issues)
	}
	if issue.Severity != Blocker {
		t.Fatalf("pip issue severity = %v, want blocker", issue.Severity)
	}
}

func TestRunMissingManifestIsBlocker(t *testing.T) {
	t.Parallel()

	c := healthyChecker(t)
	c.Config.Manifest = filepath.Join(t.TempDir(), "requirements.txt")

	report := c.Run(context.Background())
	if report.OK() {
		t.Fatal("Run() reported OK despite missing manifest")
	}
	if _, ok := findIssue(report, "manifest"); !ok {
		t.Fatalf("no manifest issue in %+v", report.Issues)
	}
}

func TestRunDatabaseDirBlockedByFile(t *testing.T) {
	t.Parallel()

	c := healthyChecker(t)
	if err := os.MkdirAll(filepath.Dir(c.Config.DatabaseDir), 0o755); err != nil {
		t.Fatalf("mkdir parent: %v", err)
	}
	if err := os.WriteFile(c.Config.DatabaseDir, []byte("file"), 0o644); err != nil {
		t.Fatalf("write collision file: %v", err)
	}

	report := c.Run(context.Background())
	if report.OK() {
		t.Fatal("Run() reported OK with a file at the database dir path")
	}
	issue, ok := findIssue(report, "database-dir")
	if !ok || issue.Severity != Blocker {
		t.Fatalf("database-dir issue = %+v, %v; want blocker", issue, ok)
	}
}

func TestRunClockSkewIsWarningOnly(t *testing.T) {
	t.Parallel()

	c := healthyChecker(t)
	c.ClockOffset = func(string) (time.Duration, error) { return -2 * time.Second, nil }

	report := c.Run(context.Background())
	issue, ok := findIssue(report, "clock")
	if !ok {
		t.Fatalf("no clock issue in %+v", report.Issues)
	}
	if issue.Severity != Warning {
		t.Fatalf("clock issue severity = %v, want warning", issue.Severity)
	}
	if !report.OK() {
		t.Fatal("clock skew must not block the bootstrap")
	}
}

func TestRunNTPUnreachableIsWarning(t *testing.T) {
	t.Parallel()

	c := healthyChecker(t)
	c.ClockOffset = func(string) (time.Duration, error) { return 0, errors.New("timeout") }

	report := c.Run(context.Background())
	if _, ok := findIssue(report, "clock"); !ok {
		t.Fatalf("no clock issue in %+v", report.Issues)
	}
	if !report.OK() {
		t.Fatal("unreachable ntp must not block the bootstrap")
	}
}

func TestRunLowDiskIsWarning(t *testing.T) {
	t.Parallel()

	c := healthyChecker(t)
	c.FreeDisk = func(string) (uint64, error) { return 100 << 20, nil }

	report := c.Run(context.Background())
	issue, ok := findIssue(report, "disk")
	if !ok || issue.Severity != Warning {
		t.Fatalf("disk issue = %+v, %v; want warning", issue, ok)
	}
}

func TestRunUnsupportedDiskStatsSkipsCheck(t *testing.T) {
	t.Parallel()

	c := healthyChecker(t)
	c.FreeDisk = func(string) (uint64, error) { return 0, errDiskStatsUnsupported }

	report := c.Run(context.Background())
	if _, ok := findIssue(report, "disk"); ok {
		t.Fatalf("disk issue reported for unsupported platform: %+v", report.Issues)
	}
}
