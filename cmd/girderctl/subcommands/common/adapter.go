package common

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/girder/girderctl/cmd/girderctl/config/profiles"
	"github.com/girder/girderctl/cmd/girderctl/env"
	grest "github.com/girder/girderctl/cmd/girderctl/rest"
	clog "github.com/girder/girderctl/cmd/girderctl/subcommands/logger"
	"github.com/youta-t/flarc"
)

type GirderTaskWithCommonFlag[T any] func(
	ctx context.Context,
	logger *log.Logger,
	commonFlag CommonFlags,
	cl flarc.Commandline[T],
	params []any,
) error

func NewTaskWithCommonFlag[T any](task GirderTaskWithCommonFlag[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], pos []any) error {
		var commonFlag CommonFlags
		found := false
		newpos := make([]any, 0, len(pos))
		for _, p := range pos {
			switch v := p.(type) {
			case CommonFlags:
				found = true
				commonFlag = v
			default:
				newpos = append(newpos, p)
			}
		}
		if !found {
			return errors.New("programming error: common flags not found")
		}

		logger := clog.Prefixed(cl.Stderr(), cl.Fullname())

		return task(
			ctx,
			logger,
			commonFlag,
			cl,
			newpos,
		)
	}
}

type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	girderEnv env.GirderEnv,
	client grest.GirderClient,
	cl flarc.Commandline[T],
	params []any,
) error

// NewTask wraps a Task into a flarc.Task.
//
// It loads the profile store and girderenv named by the common flags,
// builds a client for the profile, and authenticates with the
// profile's api key when one is set.
func NewTask[T any](task Task[T]) flarc.Task[T] {

	return NewTaskWithCommonFlag(func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag CommonFlags,
		cl flarc.Commandline[T],
		params []any,
	) error {
		profile, err := profiles.LoadProfileStore(commonFlag.ProfileStore)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf(
					"%w: girderprofile store (%s) is not found. Please try `girderctl init` first. Ask your admin to get girderprofile",
					err, commonFlag.ProfileStore,
				)
			}
			return fmt.Errorf(
				"%w: failed to load girderprofile store (%s)",
				err, commonFlag.ProfileStore,
			)
		}
		prof, ok := profile[commonFlag.Profile]
		if !ok {
			return fmt.Errorf(
				"profile '%s' not found in the profile store (%s)",
				commonFlag.Profile, commonFlag.ProfileStore,
			)
		}

		e, err := env.LoadGirderEnv(commonFlag.Env)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%w: failed to load girderenv", err)
			}
		}

		client, err := grest.NewClient(prof)
		if err != nil {
			return fmt.Errorf(
				"%w: failed to create girder client. Your girderprofile (%s in %s) can be broken.\n\nRemove it and try `girderctl init` again. Ask your admin to get girderprofile",
				err, commonFlag.Profile, commonFlag.ProfileStore,
			)
		}

		if prof.ApiKey != "" {
			if _, err := client.AuthenticateWithKey(ctx); err != nil {
				return fmt.Errorf("%w: failed to authenticate with api key", err)
			}
		}

		return task(ctx, logger, *e, client, cl, params)
	})
}
