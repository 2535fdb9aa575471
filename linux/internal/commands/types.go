package commands

import (
	"context"
	"strings"
)

// Runner executes external tool commands.
type Runner interface {
	// Output runs the command to completion and returns its standard output.
	Output(ctx context.Context, cmd *Command) ([]byte, error)

	// Run runs the command to completion. A non-zero exit status is an error.
	Run(ctx context.Context, cmd *Command) error

	// Start launches a long-running command. The process is not bound to any context.
	Start(cmd *Command) (Process, error)
}

// Process is a handle to a started command.
type Process interface {
	Pid() int
	Kill() error
	Wait() error
}

// Command describes an external tool invocation.
type Command struct {
	tool string
	args []string
}

func newCommand(tool string, args ...string) *Command {
	return &Command{tool: tool, args: args}
}

// Tool returns the executable name.
func (c *Command) Tool() string {
	return c.tool
}

// Args returns the command arguments.
func (c *Command) Args() []string {
	return c.args
}

// Arg returns the value following the given flag, if present.
func (c *Command) Arg(arg Argument) (string, bool) {
	for i := 0; i < len(c.args)-1; i++ {
		if c.args[i] == arg.String() {
			return c.args[i+1], true
		}
	}

	return "", false
}

func (c *Command) String() string {
	sb := strings.Builder{}
	sb.Grow(len(c.tool) + len(c.args)*8)

	sb.WriteString(c.tool)
	for _, a := range c.args {
		sb.WriteString(" ")
		if strings.ContainsAny(a, " []") {
			sb.WriteString(`"` + a + `"`)
			continue
		}
		sb.WriteString(a)
	}

	return sb.String()
}

// WithArgument appends a flag and its value.
func (c *Command) WithArgument(arg Argument, value string) *Command {
	c.args = append(c.args, arg.String(), value)

	return c
}

// OutputWith runs the command with r and returns its output.
func (c *Command) OutputWith(ctx context.Context, r Runner) ([]byte, error) {
	return r.Output(ctx, c)
}

// RunWith runs the command with r.
func (c *Command) RunWith(ctx context.Context, r Runner) error {
	return r.Run(ctx, c)
}

// StartWith starts the command with r.
func (c *Command) StartWith(r Runner) (Process, error) {
	return r.Start(c)
}
