package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/modelopt/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageErrorf(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// options holds the flag values shared by all commands.
type options struct {
	logFormat    string
	logLevel     string
	mappingsPath string

	outW io.Writer
	errW io.Writer
	cfg  *app.Config
}

// newApp builds the App for a command run.
func (o *options) newApp() (*app.App, error) {
	return app.NewApp(o.outW, o.errW, o.cfg)
}

// NewRootCommand returns the mo2 command tree. Results are printed to outW,
// logs and diagnostics to errW.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	opts := &options{outW: outW, errW: errW}

	root := &cobra.Command{
		Use:   "mo2",
		Short: "Translate tuning parameters into climate model namelists",
		Long: `mo2 maps optimisation parameters onto the namelist and Rose
configuration files of a climate model setup.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.NewConfig(app.Config{
				MappingsPath: opts.mappingsPath,
				LogFormat:    strings.ToLower(opts.logFormat),
				LogLevel:     strings.ToLower(opts.logLevel),
			})
			if err != nil {
				return usageErrorf("%v", err)
			}
			opts.cfg = cfg
			return nil
		},
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageErrorf("%v\nRun '%s --help' for usage.", err, cmd.CommandPath())
	})

	flags := root.PersistentFlags()
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.StringVar(&opts.mappingsPath, "mappings", "", "Path to an .hcl file or directory with additional model mappings.")

	root.AddCommand(
		newWriteCommand(opts),
		newShowCommand(opts),
		newConfigureCommand(opts),
		newRundirCommand(opts),
		newModelsCommand(opts),
	)
	return root
}

// Execute runs the command tree for args.
func Execute(args []string, outW, errW io.Writer) error {
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)
	return root.Execute()
}

func exactArgs(n int, names string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErrorf("%s expects %s, got %d argument(s)\nRun '%s --help' for usage.", cmd.CommandPath(), names, len(args), cmd.CommandPath())
		}
		return nil
	}
}

func requireFlag(cmd *cobra.Command, name, value string) error {
	if value == "" {
		return usageErrorf("required flag --%s not set\nRun '%s --help' for usage.", name, cmd.CommandPath())
	}
	return nil
}
