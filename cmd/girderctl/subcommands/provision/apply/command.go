package apply

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/cheggaaa/pb/v3"
	"github.com/girder/girderctl/cmd/girderctl/env"
	"github.com/girder/girderctl/cmd/girderctl/rest"
	"github.com/girder/girderctl/cmd/girderctl/subcommands/common"
	"github.com/girder/girderctl/pkg/provision"
	"github.com/girder/girderctl/pkg/utils/filewatch"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Check    bool   `flag:"check" help:"Dry run. Report what would change, apply nothing."`
	Watch    bool   `flag:"watch" alias:"w" help:"Rerun the playbook whenever it changes. Stop with Ctrl-C."`
	Login    string `flag:"login" help:"Login to authenticate with before running, for servers without an api key."`
	Password string `flag:"password" help:"Password going with --login."`
}

const ARG_PLAYBOOK = "PLAYBOOK"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"apply a provisioning playbook to the Girder server",
		Flag{},
		flarc.Args{
			{
				Name: ARG_PLAYBOOK, Required: true,
				Help: "filepath to the playbook to be applied.",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Apply a playbook: an ordered list of tasks bringing the host and its
Girder server to a desired state. Tasks already satisfied are skipped,
so applying the same playbook twice changes nothing the second time.

Vars from your girderenv file are available as ${name} in the playbook;
the playbook's own vars win on conflict.

Example
-------

- see what a playbook would change, without changing it:

	{{ .Command }} --check playbook.yaml

- keep a development server in sync with the playbook as you edit it:

	{{ .Command }} --watch playbook.yaml
`),
	)
}

func Task() common.Task[Flag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		girderEnv env.GirderEnv,
		client rest.GirderClient,
		cl flarc.Commandline[Flag],
		params []any,
	) error {
		flags := cl.Flags()
		playbookFile := cl.Args()[ARG_PLAYBOOK][0]

		host := &provision.Host{
			Runner: provision.ExecRunner{},
			Client: client,
		}

		if flags.Login != "" {
			if _, err := client.Authenticate(ctx, flags.Login, flags.Password); err != nil {
				// a fresh server has no accounts yet; a user task may create one.
				logger.Printf("continuing unauthenticated: %s", err)
			}
		}

		if !flags.Watch {
			return once(ctx, logger, host, girderEnv, playbookFile, flags.Check, cl)
		}

		for {
			wctx, cancel, err := filewatch.UntilModifyContext(ctx, playbookFile)
			if err != nil {
				return err
			}

			if err := once(ctx, logger, host, girderEnv, playbookFile, flags.Check, cl); err != nil {
				logger.Printf("apply failed: %s", err)
			}

			logger.Printf("watching %s ...", playbookFile)
			<-wctx.Done()
			cancel()
			if err := ctx.Err(); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
		}
	}
}

func once(
	ctx context.Context,
	logger *log.Logger,
	host *provision.Host,
	girderEnv env.GirderEnv,
	playbookFile string,
	check bool,
	cl flarc.Commandline[Flag],
) error {
	playbook, err := provision.Load(playbookFile, girderEnv.Vars)
	if err != nil {
		return err
	}

	bar := pb.New(len(playbook.Steps)).SetWriter(cl.Stderr()).Start()
	defer bar.Finish()

	options := []provision.RunOption{
		provision.WithNotify(func(r provision.StepResult) {
			bar.Increment()
			logger.Printf("%s: %s", r.Name, r.Status)
		}),
	}
	if check {
		options = append(options, provision.WithCheckMode())
	}

	results, err := provision.Apply(ctx, host, playbook, options...)
	if err != nil {
		return err
	}

	changed := 0
	for _, r := range results {
		if r.Status != provision.StatusOk {
			changed += 1
		}
	}
	if check && 0 < changed {
		return fmt.Errorf("%d of %d steps would change", changed, len(results))
	}
	logger.Printf("done: %d of %d steps changed", changed, len(results))
	return nil
}
