package crontab

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/aatumaykin/cronplan/internal/constants"
	"github.com/aatumaykin/cronplan/internal/logger"
)

// Store reads and installs the complete crontab text.
type Store interface {
	// Read returns the installed crontab; no crontab at all is an empty string.
	Read(ctx context.Context) (string, error)
	// Install replaces the installed crontab with content.
	Install(ctx context.Context, content string) error
}

// CommandStore is a Store backed by the crontab(1) binary.
type CommandStore struct {
	binary string
	user   string
	logger *logger.Logger
}

// NewCommandStore creates a store running binary (default "crontab"),
// optionally for another user via -u.
func NewCommandStore(binary, user string, log *logger.Logger) *CommandStore {
	if binary == "" {
		binary = constants.CrontabBinary
	}
	return &CommandStore{
		binary: binary,
		user:   user,
		logger: log,
	}
}

// Read runs `crontab -l [-u user]`.
func (s *CommandStore) Read(ctx context.Context) (string, error) {
	args := []string{"-l"}
	if s.user != "" {
		args = append(args, "-u", s.user)
	}

	stdout, stderr, err := s.run(ctx, args...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && strings.Contains(stderr, constants.CrontabNoCrontabMarker) {
			s.logger.Debug("no crontab installed", logger.Field{Key: "user", Value: s.user})
			return "", nil
		}
		return "", s.failure("read", err, stderr)
	}

	return stdout, nil
}

// Install writes content to a temporary file and runs `crontab [-u user] <file>`.
func (s *CommandStore) Install(ctx context.Context, content string) error {
	file, err := os.CreateTemp("", constants.CrontabTempPattern)
	if err != nil {
		return &SyncError{Op: "install", Reason: "failed to create temporary cronfile", Err: err}
	}
	defer os.Remove(file.Name())

	if _, err := file.WriteString(content); err != nil {
		file.Close()
		return &SyncError{Op: "install", Reason: "failed to write temporary cronfile", Err: err}
	}
	if err := file.Close(); err != nil {
		return &SyncError{Op: "install", Reason: "failed to close temporary cronfile", Err: err}
	}

	var args []string
	if s.user != "" {
		args = append(args, "-u", s.user)
	}
	args = append(args, file.Name())

	if _, stderr, err := s.run(ctx, args...); err != nil {
		return s.failure("install", err, stderr)
	}

	s.logger.Debug("crontab installed",
		logger.Field{Key: "user", Value: s.user},
		logger.Field{Key: "bytes", Value: len(content)})
	return nil
}

func (s *CommandStore) run(ctx context.Context, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, s.binary, args...)
	// "no crontab for" is matched in English.
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	s.logger.Debug("running crontab",
		logger.Field{Key: "binary", Value: s.binary},
		logger.Field{Key: "args", Value: strings.Join(args, " ")})

	err := cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func (s *CommandStore) failure(op string, err error, stderr string) *SyncError {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return &SyncError{
			Op:     op,
			Reason: fmt.Sprintf("couldn't run %s; please make sure you have crontab installed", s.binary),
			Err:    err,
		}
	}

	reason := fmt.Sprintf("couldn't %s crontab", op)
	if op == "install" {
		reason += "; try running check to ensure your cronfile is valid"
	}
	if stderr != "" {
		reason += " (" + stderr + ")"
	}
	return &SyncError{Op: op, Reason: reason, Err: err}
}
