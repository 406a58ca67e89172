package find

import (
	"context"
	"encoding/json"
	"log"

	"github.com/girder/girderctl/cmd/girderctl/env"
	"github.com/girder/girderctl/cmd/girderctl/rest"
	"github.com/girder/girderctl/cmd/girderctl/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Text   string `flag:"text" alias:"t" help:"Search text. Empty matches all Collections."`
	Limit  int    `flag:"limit" help:"Maximum number of Collections to list."`
	Offset int    `flag:"offset" help:"Number of Collections to skip."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"find Collections on the Girder server",
		Flag{
			Limit: 50,
		},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Find Collections matching --text, and show them as JSON.

Without --text, all Collections readable by you are listed,
--limit (default: 50) at a time.
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
		found, err := client.FindCollections(ctx, flags.Text, flags.Limit, flags.Offset)
		if err != nil {
			return err
		}

		j := json.NewEncoder(cl.Stdout())
		j.SetIndent("", "    ")
		return j.Encode(found)
	}
}
