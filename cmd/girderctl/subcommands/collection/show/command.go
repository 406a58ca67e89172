package show

import (
	"context"
	"encoding/json"
	"log"

	"github.com/girder/girderctl/cmd/girderctl/env"
	"github.com/girder/girderctl/cmd/girderctl/rest"
	"github.com/girder/girderctl/cmd/girderctl/subcommands/common"
	"github.com/girder/girderctl/pkg/model"
	"github.com/youta-t/flarc"
)

const ARG_COLLECTION_ID = "COLLECTION_ID"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"show a Collection on the Girder server",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_COLLECTION_ID, Required: true,
				Help: "Specify the id of the Collection to be shown.",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Show a Collection as JSON, field by field as the server reports it.

Example
-------

- show a Collection:

	{{ .Command }} 58b8eb7f8d777f0aef5d0f49
`),
	)
}

func Task() common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		girderEnv env.GirderEnv,
		client rest.GirderClient,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		id := cl.Args()[ARG_COLLECTION_ID][0]

		var fetchErr error
		col := model.NewCollection(client, id).
			OnError(func(c *model.Collection, err error) {
				logger.Printf("failed to fetch Collection %s: %s", c.Id(), err)
				fetchErr = err
			}).
			OnFetched(func(c *model.Collection) {
				j := json.NewEncoder(cl.Stdout())
				j.SetIndent("", "    ")
				if err := j.Encode(c.Attributes()); err != nil {
					fetchErr = err
				}
			})

		if err := col.Fetch(ctx); err != nil {
			return err
		}
		return fetchErr
	}
}
