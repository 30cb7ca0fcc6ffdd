package launcher

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/fredcamaral/lessondeck/internal/domain/ports"
)

// Command is one way of opening a file on the current platform
type Command struct {
	Name    string
	Program string
	Args    func(path string) []string
}

// Opener implements the FileOpener interface
type Opener struct {
	commands []Command
	lookPath func(file string) (string, error)
	start    func(cmd *exec.Cmd) error
}

// NewOpener creates an opener for the current platform
func NewOpener() *Opener {
	return &Opener{
		commands: platformCommands(runtime.GOOS),
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

// Open opens path with the first available command
func (o *Opener) Open(path string) error {
	command, err := o.selectCommand()
	if err != nil {
		return fmt.Errorf("opener selection: %w", err)
	}

	cmd := exec.Command(command.Program, command.Args(path)...) // #nosec G204 - program chosen from the fixed platform list
	if err := o.start(cmd); err != nil {
		return fmt.Errorf("launching %s: %w", command.Name, err)
	}
	return nil
}

// Detect returns the name of the command Open would use
func (o *Opener) Detect() (string, error) {
	command, err := o.selectCommand()
	if err != nil {
		return "", err
	}
	return command.Name, nil
}

func (o *Opener) selectCommand() (*Command, error) {
	if len(o.commands) == 0 {
		return nil, errors.New("no openers available")
	}

	for i := range o.commands {
		if _, err := o.lookPath(o.commands[i].Program); err == nil {
			return &o.commands[i], nil
		}
	}

	return nil, errors.New("no supported opener found on this system")
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}

	// Don't wait for the application to close
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func platformCommands(goos string) []Command {
	single := func(path string) []string { return []string{path} }

	switch goos {
	case "darwin":
		return []Command{{Name: "Default", Program: "open", Args: single}}
	case "linux":
		return []Command{
			{Name: "xdg-open", Program: "xdg-open", Args: single},
			{Name: "gio", Program: "gio", Args: func(path string) []string { return []string{"open", path} }},
		}
	case "windows":
		return []Command{{
			Name:    "Default",
			Program: "cmd",
			Args:    func(path string) []string { return []string{"/c", "start", "", path} },
		}}
	default:
		return []Command{}
	}
}

// Ensure Opener implements ports.FileOpener
var _ ports.FileOpener = (*Opener)(nil)
