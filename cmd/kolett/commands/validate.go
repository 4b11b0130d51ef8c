package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/kolett/kolett/cmd/kolett/opts"
	"github.com/kolett/kolett/pkg/manifest"
)

// NewValidateCmd creates a new validate command
func NewValidateCmd(o *opts.RootOpts) *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a manifest's structure without transferring anything",
		Long: `Validate parses the manifest and checks its structure: required
fields, metadata value types, and process methods. Source files are not
checked for existence; that happens at delivery time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "validate").Logger().WithContext(cmd.Context())

			m, err := manifest.Load(ctx, manifestPath)
			if err != nil {
				o.UserLogger.LogValidation(false, fmt.Sprintf("manifest %s is invalid", manifestPath), err)
				return errors.Errorf("validating manifest: %w", err)
			}

			o.UserLogger.LogValidation(true, fmt.Sprintf("manifest %s is valid (%d items, package %q)",
				manifestPath, len(m.Items), m.PackageName), nil)
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "manifest file path (required)")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}
