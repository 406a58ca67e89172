package provision

import (
	"context"

	"github.com/girder/girderctl/cmd/girderctl/rest"
)

// Host bundles what tasks act on: the host's command runner and the
// REST client of the Girder server being provisioned.
type Host struct {
	Runner Runner
	Client rest.GirderClient
}

// Task is one provisioning module with present/absent semantics.
//
// Check must be free of side effects; the engine calls it to decide
// whether Apply is needed at all. That split is what makes a playbook
// idempotent: a satisfied task is never applied again.
type Task interface {
	// Verify reports whether the task parameters make sense,
	// before any task of the playbook runs.
	Verify() error

	// Check reports whether the desired state already holds on the host.
	Check(ctx context.Context, h *Host) (bool, error)

	// Apply brings the host to the desired state.
	Apply(ctx context.Context, h *Host) error
}
