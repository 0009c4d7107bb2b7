package standalone

import (
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"
)

// ErrNoLauncher is returned when no launcher program is configured
var ErrNoLauncher = errors.New("no launcher configured")

// CommandService runs an external launcher for package actions. Launch runs
// "<Program> <Args...> launch <id>" and Patch runs "<Program> <Args...> patch
// <id>". Launch returns once the process has started. Patch waits for the
// process to exit and must not be called on the UI thread.
type CommandService struct {
	Program string
	Args    []string
	Dir     string

	// command builds the process; replaced in tests
	command func(name string, args ...string) *exec.Cmd
}

// NewCommandService creates a service running program with args before
// the action
func NewCommandService(program string, args ...string) *CommandService {
	return &CommandService{
		Program: program,
		Args:    args,
		command: exec.Command,
	}
}

func (s *CommandService) cmd(action, id string) (*exec.Cmd, error) {
	if s.Program == "" {
		return nil, ErrNoLauncher
	}
	if id == "" || strings.HasPrefix(id, "-") {
		return nil, fmt.Errorf("invalid package id %q", id)
	}
	build := s.command
	if build == nil {
		build = exec.Command
	}
	args := append(append([]string{}, s.Args...), action, id)
	c := build(s.Program, args...)
	c.Dir = s.Dir
	return c, nil
}

// Launch starts the package
func (s *CommandService) Launch(id string) error {
	c, err := s.cmd("launch", id)
	if err != nil {
		return err
	}
	if err := c.Start(); err != nil {
		return fmt.Errorf("failed to start launcher: %w", err)
	}
	log.Printf("Launched %s (pid %d)", id, c.Process.Pid)

	// Reap the child so it does not linger
	go func() {
		if err := c.Wait(); err != nil {
			log.Printf("Launcher for %s exited: %v", id, err)
		}
	}()
	return nil
}

// Patch patches the package and waits for the launcher to finish
func (s *CommandService) Patch(id string) error {
	c, err := s.cmd("patch", id)
	if err != nil {
		return err
	}
	out, err := c.CombinedOutput()
	if err != nil {
		return fmt.Errorf("patch failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	log.Printf("Patched %s", id)
	return nil
}
