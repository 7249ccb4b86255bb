package main

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const entryLine = `{"timestamp":"2024-01-01T10:00:00.000Z","level":"info","message":"m","n":1}` + "\n"

// TestMain lets the tests run the real command in a child process.
func TestMain(m *testing.M) {
	if os.Getenv("JLCAT_TEST_MAIN") == "1" {
		os.Args = append([]string{"jlcat"}, strings.Split(os.Getenv("JLCAT_TEST_ARGS"), "\x1f")...)
		os.Exit(run())
	}
	os.Exit(m.Run())
}

func command(t *testing.T, stdin string, args ...string) *exec.Cmd {
	t.Helper()
	home := t.TempDir()
	args = append([]string{"--config", filepath.Join(home, "missing.toml")}, args...)
	cmd := exec.Command(os.Args[0])
	cmd.Env = append(os.Environ(),
		"JLCAT_TEST_MAIN=1",
		"JLCAT_TEST_ARGS="+strings.Join(args, "\x1f"),
		"HOME="+home,
	)
	cmd.Stdin = strings.NewReader(stdin)
	return cmd
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("run command: %v", err)
	}
	return exitErr.ExitCode()
}

func TestRun_RendersStdin(t *testing.T) {
	cmd := command(t, entryLine, "-")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if code := exitCode(t, cmd.Run()); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	want := "10:00:00.000 [inf] m\n    n: 1\n"
	if stdout.String() != want {
		t.Fatalf("stdout = %q, want %q", stdout.String(), want)
	}
}

func TestRun_ClosedStdoutExitsCleanly(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("SIGPIPE is a unix signal")
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	pr.Close()
	defer pw.Close()

	cmd := command(t, strings.Repeat(entryLine, 5000), "-")
	cmd.Stdout = pw
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err = cmd.Run()
	if code := exitCode(t, err); code != 0 {
		t.Fatalf("exit = %v (code %d) writing to a closed pipe, want 0; stderr: %s", err, code, stderr.String())
	}
	if strings.Contains(stderr.String(), "jlcat:") {
		t.Fatalf("stderr = %q, want no error report", stderr.String())
	}
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"two files", []string{"a.log", "b.log"}},
		{"negative tail", []string{"--tail=-1"}},
		{"unknown flag", []string{"--bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := command(t, "", tt.args...)
			if code := exitCode(t, cmd.Run()); code != 2 {
				t.Fatalf("exit code = %d, want 2", code)
			}
		})
	}
}

func TestRun_MissingFileExitsNonZero(t *testing.T) {
	cmd := command(t, "", filepath.Join(t.TempDir(), "missing.log"))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if code := exitCode(t, cmd.Run()); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.HasPrefix(stderr.String(), "jlcat: open input") {
		t.Fatalf("stderr = %q, want jlcat: open input ...", stderr.String())
	}
}
