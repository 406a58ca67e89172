package provision

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/girder/girderctl/api/types/system"
	"github.com/girder/girderctl/pkg/utils/retry"
)

// WaitForTask blocks until the server answers its version endpoint.
type WaitForTask struct {
	// Timeout is the total time to wait. Default: 5m.
	Timeout Duration `yaml:"timeout,omitempty"`

	// Interval is the initial polling interval. Default: 1s.
	// Subsequent polls back off exponentially.
	Interval Duration `yaml:"interval,omitempty"`
}

func (t *WaitForTask) Verify() error {
	if time.Duration(t.Timeout) < 0 {
		return errors.New("wait_for: timeout should not be negative")
	}
	if time.Duration(t.Interval) < 0 {
		return errors.New("wait_for: interval should not be negative")
	}
	return nil
}

func (t *WaitForTask) timeout() time.Duration {
	if t.Timeout == 0 {
		return 5 * time.Minute
	}
	return time.Duration(t.Timeout)
}

func (t *WaitForTask) interval() time.Duration {
	if t.Interval == 0 {
		return time.Second
	}
	return time.Duration(t.Interval)
}

func (t *WaitForTask) Check(ctx context.Context, h *Host) (bool, error) {
	if _, err := h.Client.GetVersion(ctx); err != nil {
		return false, nil
	}
	return true, nil
}

func (t *WaitForTask) Apply(ctx context.Context, h *Host) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout())
	defer cancel()

	_, err := retry.Blocking(
		ctx, retry.ExponentialBackoff(t.interval(), 2),
		func() (system.Version, error) {
			v, err := h.Client.GetVersion(ctx)
			if err != nil {
				return v, fmt.Errorf("%w: %w", retry.ErrRetry, err)
			}
			return v, nil
		},
	)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("wait_for: server did not come up within %s", t.timeout())
	}
	return err
}
