package executor

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"
)

func TestLocalExecutor_Execute_SimpleCommands(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}
	le := NewLocalExecutor()
	ctx := context.Background()

	res, err := le.Execute(ctx, "", "sh", "-c", "echo hello world; echo oops >&2")
	if err != nil {
		t.Fatalf("Execute(echo) failed: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("Execute(echo) exitCode = %d; want 0. stderr: %s", res.ExitCode, res.Stderr)
	}
	if strings.TrimSpace(string(res.Stdout)) != "hello world" {
		t.Errorf("Execute(echo) stdout = %q; want %q", res.Stdout, "hello world")
	}
	if strings.TrimSpace(string(res.Stderr)) != "oops" {
		t.Errorf("Execute(echo) stderr = %q; want %q", res.Stderr, "oops")
	}
}

func TestLocalExecutor_Execute_NonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}
	res, err := NewLocalExecutor().Execute(context.Background(), "", "sh", "-c", "echo partial; exit 3")
	if err != nil {
		t.Fatalf("a non-zero exit must not be an error, got %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("exitCode = %d; want 3", res.ExitCode)
	}
	if strings.TrimSpace(string(res.Stdout)) != "partial" {
		t.Errorf("stdout = %q; want %q", res.Stdout, "partial")
	}
}

func TestLocalExecutor_Execute_WorkingDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}
	dir := t.TempDir()
	res, err := NewLocalExecutor().Execute(context.Background(), dir, "sh", "-c", "pwd -P")
	if err != nil {
		t.Fatalf("Execute(pwd) failed: %v", err)
	}
	if got := strings.TrimSpace(string(res.Stdout)); !strings.HasSuffix(got, dirBase(dir)) {
		t.Errorf("pwd = %q; want a path ending in %q", got, dirBase(dir))
	}
}

func TestLocalExecutor_Execute_LaunchFailure(t *testing.T) {
	nonExistentCmd := "a_very_unlikely_command_to_exist_xyz123"
	_, err := NewLocalExecutor().Execute(context.Background(), "", nonExistentCmd, "-version")
	if err == nil {
		t.Fatalf("Execute(%s) expected an error due to command not found, but got nil", nonExistentCmd)
	}
	var launchErr *LaunchError
	if !errors.As(err, &launchErr) {
		t.Fatalf("expected a *LaunchError, got %T: %v", err, err)
	}
	if launchErr.Command[0] != nonExistentCmd || launchErr.Command[1] != "-version" {
		t.Errorf("LaunchError.Command = %v", launchErr.Command)
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("expected the cause to be exec.ErrNotFound, got %v", launchErr.Err)
	}
}

func TestLocalExecutor_Execute_EmptyCommand(t *testing.T) {
	if _, err := NewLocalExecutor().Execute(context.Background(), "", ""); err == nil {
		t.Error("expected an error for an empty command")
	}
}

func dirBase(dir string) string {
	parts := strings.Split(strings.TrimRight(dir, "/"), "/")
	return parts[len(parts)-1]
}
