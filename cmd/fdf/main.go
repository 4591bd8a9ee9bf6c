// Command fdf lists the direct children of each directory given on the
// command line using the bulk attribute-listing call.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dl/fdf/internal/cli"
)

// exitUsage is the status for bad flags or arguments.
const exitUsage = 2

func main() {
	args := append(cli.LoadConfigArgs(), os.Args[1:]...)
	os.Exit(execute(args, cli.Run))
}

// execute parses args and hands the resulting config to run.
func execute(args []string, run func(cli.Config) int) int {
	status := 0
	cmd := newRootCmd(func(cfg cli.Config) { status = run(cfg) })
	if args == nil {
		args = []string{} // cobra falls back to os.Args on nil
	}
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "fdf:", err)
		return exitUsage
	}
	return status
}

func newRootCmd(run func(cli.Config)) *cobra.Command {
	var cfg cli.Config
	var bare bool
	cmd := &cobra.Command{
		Use:           "fdf DIR...",
		Short:         "List directory entries with their type and inode",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Paths = args
			if bare {
				cfg.ShowType, cfg.ShowInode = false, false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			run(cfg)
			return nil
		},
	}
	addFlags(cmd.Flags(), &cfg, &bare)
	return cmd
}

func addFlags(fs *pflag.FlagSet, cfg *cli.Config, bare *bool) {
	fs.BoolVar(&cfg.JSON, "json", false, "print one JSON object per entry")
	fs.Var(&cfg.Color, "color", "colorize output: auto, always or never")
	fs.BoolVarP(&cfg.ShowType, "types", "t", true, "print the file type column")
	fs.BoolVarP(&cfg.ShowInode, "inode", "i", true, "print the inode column")
	fs.BoolVarP(bare, "bare", "b", false, "print paths only, without type and inode columns")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "log per-directory summaries")
	fs.SortFlags = false
}
