package cli

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/listenupapp/tagexport/internal/di"
	"github.com/listenupapp/tagexport/internal/logger"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the preview and export API for a local UI.",
		Long: `Starts an HTTP server exposing preview, export and directory browsing,
with progress streamed as server-sent events on /api/v1/events.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			injector := di.NewContainer(a.flags, a.version)

			srv, err := di.Bootstrap(injector)
			if err != nil {
				injector.Shutdown()
				return err
			}
			log := do.MustInvoke[*logger.Logger](injector)

			g, ctx := errgroup.WithContext(cmd.Context())

			g.Go(func() error {
				log.Info("HTTP server starting", "addr", srv.Addr, "version", a.version)
				return srv.ListenAndServe()
			})

			g.Go(func() error {
				<-ctx.Done()
				log.Info("Shutting down server gracefully...")

				// The container shuts the HTTP server and the SSE manager down
				// in reverse dependency order.
				if err := injector.Shutdown(); err != nil {
					log.Error("Shutdown error", "error", err)
				}
				return nil
			})

			if err := g.Wait(); err != nil {
				return err
			}
			log.Info("Server stopped")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&a.flags.Host, "host", "", "Listen host (SERVER_HOST)")
	f.StringVarP(&a.flags.Port, "port", "p", "", "Listen port (SERVER_PORT)")
	f.StringVar(&a.flags.OutputDir, "output-dir", "", "Default export directory (OUTPUT_DIR)")
	f.StringVar(&a.flags.CORSOrigins, "cors-origins", "", "Comma separated allowed origins, empty for same-origin only (CORS_ORIGINS)")
	f.StringVar(&a.flags.ReadTimeout, "read-timeout", "", "HTTP read timeout (SERVER_READ_TIMEOUT)")
	f.StringVar(&a.flags.WriteTimeout, "write-timeout", "", "HTTP write timeout (SERVER_WRITE_TIMEOUT)")
	f.StringVar(&a.flags.IdleTimeout, "idle-timeout", "", "HTTP idle timeout (SERVER_IDLE_TIMEOUT)")

	return cmd
}
