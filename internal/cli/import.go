package cli

import (
	"fmt"

	"github.com/Tocard/DiscordDofusBotLGB/internal/app"
	"github.com/Tocard/DiscordDofusBotLGB/internal/clock"
	"github.com/Tocard/DiscordDofusBotLGB/internal/importer"
	"github.com/Tocard/DiscordDofusBotLGB/internal/storage/postgres"
	"github.com/spf13/cobra"
)

func newImportCommand(rt *runtime) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Bulk-register zones from a YAML or plain-text list",
		Long: `Reads zone names from a .yaml/.yml file or from a text file with one
name per line, and registers the ones that do not exist yet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := importer.LoadFile(args[0], actor)
			if err != nil {
				return err
			}

			pool, _, err := openStore(cmd.Context(), rt.cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := app.NewImportService(postgres.NewZoneRepository(pool), clock.NewSystem(), rt.logger)
			result, err := svc.Import(cmd.Context(), entries)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "created %d zone(s), skipped %d\n", result.CreatedCount(), len(result.Skipped))
			for _, name := range result.Skipped {
				fmt.Fprintf(out, "  exists: %s\n", name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&actor, "actor", app.DefaultImportActor, "recorded as creator of imported zones")
	return cmd
}
