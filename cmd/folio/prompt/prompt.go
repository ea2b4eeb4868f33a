package promptcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foliodev/folio/pkg/profile"
	"github.com/foliodev/folio/pkg/prompt"
)

const promptLongDesc string = `Print the system prompt composed from a profile.

Useful for checking what the model is told about you before putting a
profile edit live.

Examples:
  folio prompt
  folio prompt --profile ./profile.toml`

const promptShortDesc string = "Print the composed system prompt"

type promptCommander struct {
	profilePath string
}

func NewPromptCmd() *cobra.Command {
	cmder := &promptCommander{}

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: promptShortDesc,
		Long:  promptLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd)
		},
	}

	cmd.Flags().StringVarP(&cmder.profilePath, "profile", "p", "", "Path to profile TOML (default: built-in placeholder)")

	return cmd
}

func (c *promptCommander) run(cmd *cobra.Command) error {
	p := profile.Default()
	if c.profilePath != "" {
		loaded, err := profile.Load(c.profilePath)
		if err != nil {
			return fmt.Errorf("could not load profile: %w", err)
		}
		p = loaded
	}

	fmt.Fprint(cmd.OutOrStdout(), prompt.Compose(p))
	return nil
}
