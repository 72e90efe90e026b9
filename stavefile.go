//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":  Build,
	"t":  Test,
	"l":  Lint.Default,
	"c":  Check,
	"cf": Conformance,
	"fz": Bench.Fuzz,
}

// Namespace types group related targets.
type (
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// ---------------------------------------------------------------------------
// Top-level targets
// ---------------------------------------------------------------------------

// Build compiles bin/mdhtml with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir("bin/mdhtml", "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println("bin/mdhtml is up to date")
		return nil
	}
	fmt.Println("Building mdhtml...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", "bin/mdhtml", "./cmd/mdhtml")
}

// Install installs mdhtml to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing mdhtml...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/mdhtml")
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test)
}

// Clean removes build output, coverage files and the render cache of this
// checkout.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html", ".mdhtml-cache.db"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Test runs the test suite under the race detector with coverage.
func Test() error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-race",
		"-p", nCores,
		"-parallel", nCores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

// Coverage writes coverage.html from a fresh test run.
func Coverage() error {
	st.Deps(Test)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Conformance diffs mdhtml output against the CommonMark reference for the
// Markdown files under $MDHTML_CORPUS (default: the repository itself).
// Differences are reported but do not fail the target.
func Conformance() error {
	st.Deps(Build)
	corpus := cmp.Or(os.Getenv("MDHTML_CORPUS"), ".")
	fmt.Printf("Comparing %s against the CommonMark reference...\n", corpus)

	cmd := exec.Command("bin/mdhtml", "compare", corpus) //nolint:gosec // corpus is a developer supplied path
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	var exitErr *exec.ExitError
	if err := cmd.Run(); err != nil && !(errors.As(err, &exitErr) && exitErr.ExitCode() == 1) {
		return fmt.Errorf("compare: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Lint namespace
// ---------------------------------------------------------------------------

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when gofmt would change a file.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// ---------------------------------------------------------------------------
// CI namespace
// ---------------------------------------------------------------------------

// Gate runs every check a change must pass before merge.
func (CI) Gate() {
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test,
		CI.ModTidy,
	)
}

// ModTidy fails when go mod tidy would change go.mod or go.sum.
func (CI) ModTidy() error {
	modBefore, sumBefore, err := readModFiles()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	modAfter, sumAfter, err := readModFiles()
	if err != nil {
		return err
	}

	if !bytes.Equal(modBefore, modAfter) || !bytes.Equal(sumBefore, sumAfter) {
		return errors.New("go.mod or go.sum changed after 'go mod tidy'; commit the result")
	}
	return nil
}

// ---------------------------------------------------------------------------
// Bench namespace
// ---------------------------------------------------------------------------

// Default benchmarks the engine and the fence language detector.
func (Bench) Default() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./pkg/markdown", "./pkg/langdetect")
}

// Fuzz runs each engine fuzz target for $FUZZ_TIME (default 30s).
func (Bench) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZ_TIME"), "30s")
	for _, fuzz := range []string{"FuzzRender", "FuzzInline"} {
		fmt.Printf("Fuzzing %s for %s...\n", fuzz, fuzzTime)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+fuzz+"$", "-fuzztime="+fuzzTime, "./pkg/markdown"); err != nil {
			return fmt.Errorf("fuzz %s: %w", fuzz, err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func readModFiles() ([]byte, []byte, error) {
	mod, err := os.ReadFile("go.mod")
	if err != nil {
		return nil, nil, fmt.Errorf("read go.mod: %w", err)
	}
	sum, err := os.ReadFile("go.sum")
	if err != nil {
		return nil, nil, fmt.Errorf("read go.sum: %w", err)
	}
	return mod, sum, nil
}

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags injects version, commit and build date into cmd/mdhtml.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}
