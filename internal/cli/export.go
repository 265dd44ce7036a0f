package cli

import (
	"github.com/spf13/cobra"

	"github.com/listenupapp/tagexport/internal/di"
	"github.com/listenupapp/tagexport/internal/picker"
	"github.com/listenupapp/tagexport/internal/service"
)

func newExportCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [directory]",
		Short: "Write the metadata of every file to library.json.",
		Long: `Reads every candidate file in the directory and writes library.json to
the output directory, which defaults to the source directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			injector := di.NewContainer(a.flags, a.version)
			defer injector.Shutdown()

			library, log, err := di.Library(injector)
			if err != nil {
				return err
			}

			var req service.ExportRequest
			if len(args) == 1 {
				req.Directory = args[0]
			}

			console := NewConsole(cmd.ErrOrStderr())
			pick := picker.NewPrompt(cmd.InOrStdin(), cmd.ErrOrStderr())

			res, err := library.ExportAll(cmd.Context(), req, pick, console)
			console.Finish()
			if err != nil {
				return err
			}
			if res.Canceled {
				return nil
			}

			log.Info("Export written",
				"path", res.SavedTo,
				"records", res.Count,
				"degraded", res.Degraded,
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&a.flags.OutputDir, "output-dir", "o", "", "Directory to write library.json to (OUTPUT_DIR)")

	return cmd
}
