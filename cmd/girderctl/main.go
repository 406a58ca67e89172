package main

import (
	"context"
	"os"
	"os/signal"
	"path"

	subcollection "github.com/girder/girderctl/cmd/girderctl/subcommands/collection"
	"github.com/girder/girderctl/cmd/girderctl/subcommands/common"
	subinit "github.com/girder/girderctl/cmd/girderctl/subcommands/init"
	"github.com/girder/girderctl/cmd/girderctl/subcommands/logger"
	subprovision "github.com/girder/girderctl/cmd/girderctl/subcommands/provision"
	subversion "github.com/girder/girderctl/cmd/girderctl/subcommands/version"
	"github.com/girder/girderctl/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func main() {
	name := path.Base(os.Args[0])
	logger := logger.Prefixed(os.Stderr, name)

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	cf := try.To(common.Flags(".")).OrFatal(logger)
	init := try.To(subinit.New()).OrFatal(logger)
	collection := try.To(subcollection.New()).OrFatal(logger)
	provision := try.To(subprovision.New()).OrFatal(logger)
	version := try.To(subversion.New()).OrFatal(logger)

	girderctl := try.To(
		flarc.NewCommandGroup(
			"Girder Commandline interface",
			cf,
			flarc.WithSubcommand("init", init),
			flarc.WithSubcommand("collection", collection),
			flarc.WithSubcommand("provision", provision),
			flarc.WithSubcommand("version", version),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, girderctl, flarc.WithHelp(true)))
}
