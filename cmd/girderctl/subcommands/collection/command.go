package collection

import (
	collection_create "github.com/girder/girderctl/cmd/girderctl/subcommands/collection/create"
	collection_find "github.com/girder/girderctl/cmd/girderctl/subcommands/collection/find"
	collection_show "github.com/girder/girderctl/cmd/girderctl/subcommands/collection/show"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {

	show, err := collection_show.New()
	if err != nil {
		return nil, err
	}

	find, err := collection_find.New()
	if err != nil {
		return nil, err
	}

	create, err := collection_create.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate Girder Collections.",
		struct{}{},
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("find", find),
		flarc.WithSubcommand("create", create),
	)
}
