package init

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	prof "github.com/girder/girderctl/cmd/girderctl/config/profiles"
	"github.com/girder/girderctl/cmd/girderctl/subcommands/common"
	"github.com/youta-t/flarc"
	"gopkg.in/yaml.v3"
)

const ARG_GIRDER_PROFILE_FILE = "GIRDER_PROFILE_FILE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"initialize this directory as a girder-powered project.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_GIRDER_PROFILE_FILE, Required: true,
				Help: "filepath to girderprofile file, which you received from your admin.",
			},
		},
		common.NewTaskWithCommonFlag(Task()),
		flarc.WithDescription(`
Register a new girderprofile into your profile store.

"girderprofile" is a file which contains information about a Girder server:
its api root, an api key and, optionally, a CA certificate.
"{{ .Command }}" registers the given girderprofile into your profile store.

The name of the profile is given by "--profile" ( default: current filepath ).
`),
	)
}

func Task() common.GirderTaskWithCommonFlag[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		cf common.CommonFlags,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		profFile := cl.Args()[ARG_GIRDER_PROFILE_FILE][0]

		profStore, err := prof.LoadProfileStore(cf.ProfileStore)
		if errors.Is(err, prof.ErrProfileStoreNotFound) {
			// ok.
			profStore = prof.ProfileStore{}
		} else if err != nil {
			return fmt.Errorf(
				"%w: failed to load profile store (%s)", err, cf.ProfileStore,
			)
		}

		profName := cf.Profile
		newProf := new(prof.GirderProfile)
		{
			content, err := os.ReadFile(profFile)
			if err != nil {
				return fmt.Errorf("%w: failed to read profile file (%s)", err, profFile)
			}

			if err := yaml.Unmarshal(content, newProf); err != nil {
				return fmt.Errorf("%w: failed to parse profile file (%s)", err, profFile)
			}
		}
		if err := newProf.Verify(); err != nil {
			return fmt.Errorf("%w: %s", err, profFile)
		}

		profStore[profName] = newProf
		if err := profStore.Save(cf.ProfileStore); err != nil {
			return fmt.Errorf(
				"%w: failed to save profile store (%s)", err, cf.ProfileStore,
			)
		}
		logger.Printf("profile %s is saved to %s", profName, cf.ProfileStore)

		{
			f, err := os.OpenFile(".girderprofile", os.O_RDWR|os.O_CREATE|os.O_TRUNC, os.FileMode(0600))
			if err != nil {
				return fmt.Errorf("%w: failed to open .girderprofile", err)
			}
			defer f.Close()
			f.Write([]byte(profName))
		}

		return nil
	}
}
