// Package preflight checks that a build host can run the bootstrap:
// the Python tooling is on PATH, the dependency manifest exists, the
// database directory can be created, and the host itself (disk, clock)
// is in reasonable shape.
package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"bootz/config"

	"github.com/beevik/ntp"
)

const (
	defaultNTPPool      = "pool.ntp.org"
	defaultNTPThreshold = 500 * time.Millisecond

	// Installing a virtualenv worth of wheels plus a language model
	// comfortably fits in this; less free space deserves a warning.
	defaultMinFreeBytes = 500 << 20
)

// errDiskStatsUnsupported marks platforms without a statfs
// implementation; the disk check silently skips there.
var errDiskStatsUnsupported = errors.New("disk stats unsupported on this platform")

// Severity splits findings into blockers (the bootstrap will fail) and
// warnings (it will probably work, but the operator should look).
type Severity uint8

const (
	Blocker Severity = iota + 1
	Warning
)

func (s Severity) String() string {
	switch s {
	case Blocker:
		return "blocker"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Issue is one actionable finding.
type Issue struct {
	Component string
	Problem   string
	Fix       string
	Severity  Severity
}

// Report is the outcome of a preflight run.
type Report struct {
	Issues []Issue
}

// OK reports whether the bootstrap can proceed (no blockers).
func (r Report) OK() bool {
	for _, issue := range r.Issues {
		if issue.Severity == Blocker {
			return false
		}
	}
	return true
}

// Checker runs the preflight checks for one resolved config. The
// function fields default to the real implementations and exist so
// tests can substitute them.
type Checker struct {
	Config config.Config

	NTPPool      string
	NTPThreshold time.Duration
	MinFreeBytes uint64

	LookPath    func(file string) (string, error)
	ClockOffset func(pool string) (time.Duration, error)
	FreeDisk    func(path string) (uint64, error)
}

// NewChecker creates a Checker with production defaults.
func NewChecker(cfg config.Config) *Checker {
	return &Checker{
		Config:       cfg,
		NTPPool:      defaultNTPPool,
		NTPThreshold: defaultNTPThreshold,
		MinFreeBytes: defaultMinFreeBytes,
		LookPath:     exec.LookPath,
		ClockOffset:  queryClockOffset,
		FreeDisk:     freeDiskBytes,
	}
}

// Run executes every check and collects the findings. Checks are
// independent: one failing check never hides another.
func (c *Checker) Run(ctx context.Context) Report {
	var report Report

	c.checkTool(&report, "pip", c.Config.Pip)
	c.checkTool(&report, "python", c.Config.Python)
	c.checkManifest(&report)
	c.checkDatabaseDir(&report)
	c.checkDisk(&report)
	c.checkClock(ctx, &report)

	return report
}

func (c *Checker) checkTool(report *Report, component, tool string) {
	if _, err := c.LookPath(tool); err != nil {
		report.Issues = append(report.Issues, Issue{
			Component: component,
			Problem:   fmt.Sprintf("%s is not on PATH", tool),
			Fix:       fmt.Sprintf("install %s or override it in %s", tool, config.DefaultPath),
			Severity:  Blocker,
		})
	}
}

func (c *Checker) checkManifest(report *Report) {
	path := c.Config.Manifest
	abs, absErr := filepath.Abs(path)
	if absErr != nil {
		abs = path
	}

	info, err := os.Stat(path)
	if err != nil {
		report.Issues = append(report.Issues, Issue{
			Component: "manifest",
			Problem:   fmt.Sprintf("dependency manifest %s not found", abs),
			Fix:       "run bootz from the repository root, or point manifest at the right file",
			Severity:  Blocker,
		})
		return
	}
	if info.IsDir() {
		report.Issues = append(report.Issues, Issue{
			Component: "manifest",
			Problem:   fmt.Sprintf("dependency manifest %s is a directory", abs),
			Fix:       "point manifest at the requirements file",
			Severity:  Blocker,
		})
	}
}

func (c *Checker) checkDatabaseDir(report *Report) {
	dir := c.Config.DatabaseDir

	// Walk up to the nearest existing ancestor and probe it for
	// writability; the bootstrap will MkdirAll below that point.
	probe := dir
	for {
		info, err := os.Stat(probe)
		if err == nil {
			if !info.IsDir() {
				report.Issues = append(report.Issues, Issue{
					Component: "database-dir",
					Problem:   fmt.Sprintf("%s exists and is not a directory", probe),
					Fix:       "move the file aside or change database-dir",
					Severity:  Blocker,
				})
				return
			}
			break
		}
		parent := filepath.Dir(probe)
		if parent == probe {
			break
		}
		probe = parent
	}

	tmp, err := os.MkdirTemp(probe, ".bootz-probe-*")
	if err != nil {
		report.Issues = append(report.Issues, Issue{
			Component: "database-dir",
			Problem:   fmt.Sprintf("%s is not writable", probe),
			Fix:       "fix permissions on the working directory",
			Severity:  Blocker,
		})
		return
	}
	_ = os.Remove(tmp)
}

func (c *Checker) checkDisk(report *Report) {
	free, err := c.FreeDisk(".")
	if err != nil {
		if errors.Is(err, errDiskStatsUnsupported) {
			return
		}
		report.Issues = append(report.Issues, Issue{
			Component: "disk",
			Problem:   "could not read free disk space: " + err.Error(),
			Severity:  Warning,
		})
		return
	}
	if free < c.MinFreeBytes {
		report.Issues = append(report.Issues, Issue{
			Component: "disk",
			Problem:   fmt.Sprintf("only %d MiB free on the working volume", free>>20),
			Fix:       "free up disk space before installing dependencies",
			Severity:  Warning,
		})
	}
}

func (c *Checker) checkClock(ctx context.Context, report *Report) {
	if ctx.Err() != nil {
		return
	}

	offset, err := c.ClockOffset(c.NTPPool)
	if err != nil {
		report.Issues = append(report.Issues, Issue{
			Component: "clock",
			Problem:   "ntp pool unreachable: " + err.Error(),
			Severity:  Warning,
		})
		return
	}
	if offset < 0 {
		offset = -offset
	}
	if offset > c.NTPThreshold {
		report.Issues = append(report.Issues, Issue{
			Component: "clock",
			Problem:   fmt.Sprintf("system clock is %s off the ntp pool", offset.Round(time.Millisecond)),
			Fix:       "enable time synchronization on this host",
			Severity:  Warning,
		})
	}
}

func queryClockOffset(pool string) (time.Duration, error) {
	resp, err := ntp.Query(pool)
	if err != nil {
		return 0, err
	}
	if err := resp.Validate(); err != nil {
		return 0, err
	}
	return resp.ClockOffset, nil
}
