package provision

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner runs commands on the host being provisioned.
//
// Tasks go through a Runner so they can be tested without a real host.
type Runner interface {
	// Run runs a command and returns its combined output.
	//
	// A non-zero exit status is reported as an error, with the output
	// attached to the message.
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs commands on the local host.
type ExecRunner struct{}

var _ Runner = ExecRunner{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf(
			"%s %s: %w: %s",
			name, strings.Join(args, " "), err, strings.TrimSpace(string(out)),
		)
	}
	return string(out), nil
}
