package provision

import (
	provision_apply "github.com/girder/girderctl/cmd/girderctl/subcommands/provision/apply"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {

	apply, err := provision_apply.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Provision a host and its Girder server.",
		struct{}{},
		flarc.WithSubcommand("apply", apply),
	)
}
