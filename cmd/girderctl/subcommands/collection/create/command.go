package create

import (
	"context"
	"encoding/json"
	"log"

	"github.com/girder/girderctl/api/types/collections"
	"github.com/girder/girderctl/cmd/girderctl/env"
	"github.com/girder/girderctl/cmd/girderctl/rest"
	"github.com/girder/girderctl/cmd/girderctl/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Description string `flag:"description" alias:"d" help:"Description of the new Collection."`
	Public      bool   `flag:"public" help:"Make the new Collection readable by anyone."`
}

const ARG_NAME = "NAME"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"create a new Collection on the Girder server",
		Flag{},
		flarc.Args{
			{
				Name: ARG_NAME, Required: true,
				Help: "Name of the new Collection. Should be unique on the server.",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Create a Collection and show it as JSON.

Collections are private unless --public is passed.
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
		created, err := client.CreateCollection(ctx, collections.Spec{
			Name:        cl.Args()[ARG_NAME][0],
			Description: cl.Flags().Description,
			Public:      cl.Flags().Public,
		})
		if err != nil {
			return err
		}
		logger.Printf("Collection %s is created: %s", created.Name, created.Id)

		j := json.NewEncoder(cl.Stdout())
		j.SetIndent("", "    ")
		return j.Encode(created)
	}
}
