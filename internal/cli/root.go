// Package cli implements the tagexport command line.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/listenupapp/tagexport/internal/config"
)

// app carries what every subcommand shares: the raw flags and the build
// version. Commands build their own container from it.
type app struct {
	flags   config.Flags
	version string
}

// NewRootCommand builds the tagexport command tree.
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version}

	root := &cobra.Command{
		Use:     "tagexport",
		Version: version,
		Short:   "Export ID3 metadata from a directory of audio files to JSON.",
		Long: `tagexport reads the tags of every audio file in a directory and writes
them to library.json as an array of track records.

Use "preview" to inspect a random sample, "export" to write the whole
directory, or "serve" to drive both from a local web UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := root.PersistentFlags()
	f.StringVar(&a.flags.Env, "env", "", "Environment: development, staging or production (ENV)")
	f.StringVar(&a.flags.EnvFile, "env-file", "", "Path to a .env file (default .env)")
	f.StringVar(&a.flags.LogLevel, "log-level", "", "Log level: debug, info, warn or error (LOG_LEVEL)")
	f.StringVar(&a.flags.LogFormat, "log-format", "", "Log format: auto, pretty or json (LOG_FORMAT)")
	f.StringVar(&a.flags.LibraryDir, "library-dir", "", "Default source directory (LIBRARY_DIR)")
	f.StringVar(&a.flags.Extensions, "extensions", "", "Comma separated file extensions to read (SCAN_EXTENSIONS)")
	f.StringVar(&a.flags.Reader, "reader", "", "Tag reader backend: taglib or native (TAG_READER)")
	f.StringVar(&a.flags.FileName, "file-name", "", "Export file name (EXPORT_FILENAME)")

	root.AddCommand(
		newPreviewCommand(a),
		newExportCommand(a),
		newServeCommand(a),
		newVersionCommand(a),
	)

	return root
}

// Execute runs the command tree. Interrupts cancel the running command.
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCommand(version).ExecuteContext(ctx)
}
