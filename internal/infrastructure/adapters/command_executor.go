package adapters

import (
	"bytes"
	"context"
	"fmt"
	"ipv6-autoconf/internal/domain/errors"
	"ipv6-autoconf/internal/domain/interfaces"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// sbinDirs는 PATH에 없을 때 추가로 찾는 관리 도구 디렉토리입니다 (cloud-init, cron 등의 최소 PATH)
var sbinDirs = []string{"/usr/local/sbin", "/usr/sbin", "/sbin"}

// RealCommandExecutor is a CommandExecutor implementation that executes actual system commands
type RealCommandExecutor struct {
	extraDirs []string
}

// NewRealCommandExecutor creates a new RealCommandExecutor
func NewRealCommandExecutor() interfaces.CommandExecutor {
	return &RealCommandExecutor{extraDirs: sbinDirs}
}

// Execute runs a command in the C locale and returns its stdout
func (e *RealCommandExecutor) Execute(ctx context.Context, command string, args ...string) ([]byte, error) {
	path, err := e.LookPath(command)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = append(os.Environ(), "LC_ALL=C")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		cause := err
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			cause = fmt.Errorf("%w: %s", err, msg)
		}
		return nil, errors.NewSystemError(
			fmt.Sprintf("command execution failed: %s %s", command, strings.Join(args, " ")),
			cause,
		)
	}

	return stdout.Bytes(), nil
}

// ExecuteWithTimeout executes a command with timeout
func (e *RealCommandExecutor) ExecuteWithTimeout(ctx context.Context, timeout time.Duration, command string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	output, err := e.Execute(ctx, command, args...)
	if err != nil {
		// Convert to timeout error when context deadline exceeded
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewTimeoutError(
				fmt.Sprintf("command execution timeout: %s %s (timeout: %v)", command, strings.Join(args, " "), timeout),
			)
		}
		return nil, err
	}

	return output, nil
}

// LookPath resolves command through PATH first and then the sbin directories
func (e *RealCommandExecutor) LookPath(command string) (string, error) {
	if path, err := exec.LookPath(command); err == nil {
		return path, nil
	}

	if !strings.Contains(command, "/") {
		for _, dir := range e.extraDirs {
			candidate := filepath.Join(dir, command)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0 {
				return candidate, nil
			}
		}
	}

	return "", errors.NewNotFoundError(fmt.Sprintf("command not found: %s", command))
}
