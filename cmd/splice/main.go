package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"splice/internal/driver"
	"splice/internal/version"
)

// exitUsage is returned for bad flags, bad argument counts and bad config.
const exitUsage = 64

// exitStatus carries a non-zero status out of RunE. The failure has already
// been reported when it is returned.
type exitStatus int

func (e exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

func statusErr(code int) error {
	if code == 0 {
		return nil
	}
	return exitStatus(code)
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	color   string
	verbose bool
	timings bool
	config  string
	jobs    int
	cache   bool
}

// cli holds what PersistentPreRunE prepares for the subcommands.
type cli struct {
	flags  globalFlags
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}
	rootCmd := &cobra.Command{
		Use:   "splice [flags] [includes-file library-list]",
		Short: "Pull library declarations into a C++ source file",
		Long: `Splice reads a C++ source file from stdin, finds the identifiers it uses that
a library of snippets defines, and writes the file back with those snippets
and their #include lines inserted, transitively and in dependency order.

The includes file and library list may be given as arguments or in splice.toml.`,
		Args:          validArgCount(0, 2),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize logger
			config := zap.NewProductionConfig()
			if c.flags.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
		RunE: c.runProcess,
	}
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Banner(false))

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&c.flags.color, "color", "auto", "colorize diagnostics (auto|on|off)")
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&c.flags.timings, "timings", false, "print phase timings to stderr")
	pf.StringVar(&c.flags.config, "config", "", "path to splice.toml (default: search upwards from the working directory)")
	pf.IntVar(&c.flags.jobs, "jobs", 0, "parallel library reads (0 = GOMAXPROCS)")
	pf.BoolVar(&c.flags.cache, "cache", false, "cache the library index on disk")

	rootCmd.AddCommand(c.newUnitsCmd())
	rootCmd.AddCommand(c.newIndexCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func (c *cli) runProcess(cmd *cobra.Command, args []string) error {
	s, err := c.settings(cmd, args, true)
	if err != nil {
		return err
	}
	opts, err := c.driverOptions(s)
	if err != nil {
		return err
	}
	return statusErr(driver.Process(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()))
}

// validArgCount accepts exactly one of the given argument counts.
func validArgCount(counts ...int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		for _, n := range counts {
			if len(args) == n {
				return nil
			}
		}
		return fmt.Errorf("%s: unexpected number of arguments (%d)", cmd.CommandPath(), len(args))
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and maps the outcome to a process status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var status exitStatus
	if errors.As(err, &status) {
		return int(status)
	}
	fmt.Fprintf(stderr, "splice: %v\nRun 'splice --help' for usage.\n", err)
	return exitUsage
}

// isTerminal проверяет, является ли поток терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
