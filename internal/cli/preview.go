package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/listenupapp/tagexport/internal/di"
	"github.com/listenupapp/tagexport/internal/export"
	"github.com/listenupapp/tagexport/internal/picker"
	"github.com/listenupapp/tagexport/internal/service"
)

func newPreviewCommand(a *app) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "preview [directory]",
		Short: "Print the metadata of a random sample of files.",
		Long: `Samples files from the directory and prints their records as JSON on
stdout. Without a directory argument the configured library directory is
used, or you are asked for one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			injector := di.NewContainer(a.flags, a.version)
			defer injector.Shutdown()

			library, log, err := di.Library(injector)
			if err != nil {
				return err
			}

			req := service.PreviewRequest{Count: count}
			if len(args) == 1 {
				req.Directory = args[0]
			}

			console := NewConsole(cmd.ErrOrStderr())
			pick := picker.NewPrompt(cmd.InOrStdin(), cmd.ErrOrStderr())

			res, err := library.Preview(cmd.Context(), req, pick, console)
			console.Finish()
			if err != nil {
				return err
			}
			if res.Canceled {
				console.OnLog("Preview canceled.")
				return nil
			}

			data, err := export.Encode(res.Records)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}

			log.Info("Preview complete",
				"directory", res.Directory,
				"sampled", len(res.Records),
				"total", res.Total,
				"degraded", res.Degraded,
			)
			if res.Interrupted {
				return fmt.Errorf("preview interrupted after %d of %d files", len(res.Records), res.Total)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of files to sample, 1 to 100 (default PREVIEW_COUNT)")

	return cmd
}
