package commands

import (
	"context"
	"os/exec"
)

// ExecRunner runs commands as local processes.
type ExecRunner struct{}

// Output runs the command and returns its standard output.
func (ExecRunner) Output(ctx context.Context, cmd *Command) ([]byte, error) {
	return exec.CommandContext(ctx, cmd.tool, cmd.args...).Output()
}

// Run runs the command, discarding its output.
func (ExecRunner) Run(ctx context.Context, cmd *Command) error {
	return exec.CommandContext(ctx, cmd.tool, cmd.args...).Run()
}

// Start launches the command detached from any context, so that it outlives
// the call that started it.
func (ExecRunner) Start(cmd *Command) (Process, error) {
	c := exec.Command(cmd.tool, cmd.args...)
	if err := c.Start(); err != nil {
		return nil, err
	}

	return &execProcess{cmd: c}, nil
}

type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) Pid() int {
	return p.cmd.Process.Pid
}

func (p *execProcess) Kill() error {
	return p.cmd.Process.Kill()
}

func (p *execProcess) Wait() error {
	return p.cmd.Wait()
}
