// Package cmd wires the tomlraider command line: flag handling, input
// resolution, and exit-code mapping around the core engine.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gravures/tomlraider/internal/explorer"
	"github.com/gravures/tomlraider/internal/formatter"
	"github.com/gravures/tomlraider/internal/raider"
	"github.com/gravures/tomlraider/pkg/core"
	"github.com/gravures/tomlraider/pkg/loader"
	"github.com/gravures/tomlraider/pkg/logger"
	"github.com/gravures/tomlraider/pkg/settings"
)

var (
	file        string
	pyproject   bool
	jsonOut     bool
	output      string
	expression  string
	quiet       bool
	check       bool
	interactive bool
	noColor     bool
	debug       bool
	sortOrder   string

	rootCtx context.Context
)

// cliError carries an exit code and the quiet flag so Execute can decide
// whether and what to print.
type cliError struct {
	err   error
	code  int
	quiet bool
}

func (e *cliError) Error() string {
	return e.err.Error()
}

func (e *cliError) Unwrap() error {
	return e.err
}

func failf(run *settings.Run, code int, format string, args ...any) *cliError {
	return &cliError{err: fmt.Errorf(format, args...), code: code, quiet: run.IsQuiet}
}

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " PROPERTY",
	Short: "retrieve properties from TOML files",
	Long: "Retrieve properties from TOML files.\n\n" +
		"PROPERTY is a dotted path into the document; '[n]' selects array\n" +
		"elements and quoted keys keep dots literal. The single path '.'\n" +
		"selects the whole document.",
	Example: "\n" +
		"  tomlraider -f Cargo.toml package.version\n" +
		"  tomlraider -p project.name\n" +
		"  cat pyproject.toml | tomlraider tool.pdm.dev-dependencies.dev[1]\n" +
		"  tomlraider -f config.toml -j servers\n" +
		"  tomlraider -f config.toml -e '_.servers.filter(s, s.port > 1024)'\n",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		// Map the debug flag to the zap level: debug => -1, else info.
		var level int8 = 0
		if debug {
			level = -1
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		rootCtx = logger.WithLogger(context.Background(), lgr)

		run := settings.NewCliParams()
		run.MinLogLevel = level
		run.IsQuiet = quiet
		run.NoColor = noColor
		run.OutputMode = output
		run.Input = settings.InputSettings{
			FromStdin: file == "" || file == loader.StdinPath,
			Pyproject: pyproject,
			Path:      file,
		}
		rootCtx = settings.IntoContext(rootCtx, run)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		lgr := logger.FromContext(rootCtx)
		run, ok := settings.FromContext(rootCtx)
		if !ok {
			run = settings.NewCliParams()
		}

		property := ""
		if len(args) == 1 {
			property = args[0]
		}

		if expression != "" && property != "" {
			return failf(run, 2, "PROPERTY and --expression are mutually exclusive")
		}
		if expression == "" && property == "" && !interactive {
			return failf(run, 2, "missing PROPERTY argument (use '.' for the whole document)")
		}

		if jsonOut {
			if cmd.Flags().Changed("output") && run.OutputMode != string(formatter.ModeJSON) {
				return failf(run, 2, "--json conflicts with --output %s", run.OutputMode)
			}
			run.OutputMode = string(formatter.ModeJSON)
		}
		if err := formatter.ValidateMode(run.OutputMode); err != nil {
			return failf(run, 2, "%s", err)
		}
		if err := formatter.ValidateSortOrder(sortOrder); err != nil {
			return failf(run, 2, "%s", err)
		}

		if !run.NoColor && !term.IsTerminal(int(os.Stdout.Fd())) {
			run.NoColor = true
		}

		src, err := loader.ResolveSource(run.Input.Path, run.Input.Pyproject)
		if err != nil {
			return failf(run, 1, "%s", err)
		}

		if property != "" {
			cliMessage(run, "reading property <%s> from <%s>...", property, src.Name())
		}

		doc, err := loader.Load(src)
		if err != nil {
			lgr.Error(err, "document load failed", logger.SourceKey, src.Name())
			return failf(run, 1, "error reading <%s>: %s", src.Name(), err)
		}
		lgr.V(1).Info("document loaded", logger.SourceKey, src.Name(), logger.PropertyKey, property)

		engine, err := core.New(
			core.WithSortOrder(formatter.ParseSortOrder(sortOrder)),
			core.WithNoColor(run.NoColor),
		)
		if err != nil {
			return failf(run, 1, "%s", err)
		}

		if interactive {
			if err := explorer.Run(doc, explorer.Options{
				NoColor:   run.NoColor,
				SortOrder: formatter.ParseSortOrder(sortOrder),
			}); err != nil {
				return failf(run, 1, "interactive mode: %s", err)
			}
			return nil
		}

		if check {
			ok, err := engine.Exists(doc, property)
			if err != nil {
				return &cliError{err: err, code: 2, quiet: run.IsQuiet}
			}
			if !ok {
				return &cliError{err: fmt.Errorf("property <%s> not found", property), code: 1, quiet: true}
			}
			return nil
		}

		var node any
		if expression != "" {
			node, err = engine.Evaluate(expression, doc)
			if err != nil {
				return failf(run, 1, "error evaluating <%s>: %s", expression, err)
			}
		} else {
			node, err = engine.Query(doc, property)
			if err != nil {
				var rerr *raider.Error
				if errors.As(err, &rerr) && rerr.Kind == raider.ErrInvalidPathSyntax {
					return &cliError{err: err, code: 2, quiet: run.IsQuiet}
				}
				return failf(run, 1, "error reading property <%s>: %s", property, err)
			}
		}

		out, err := engine.Render(node, core.Mode(run.OutputMode))
		if err != nil {
			return failf(run, 1, "%s", err)
		}
		// Marshalers disagree on trailing newlines; normalize to one.
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
		return nil
	},
}

// cliMessage writes a progress note to stderr unless --quiet is set.
func cliMessage(run *settings.Run, format string, args ...any) {
	if run.IsQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", settings.CliBinaryName, fmt.Sprintf(format, args...))
}

func init() {
	rootCmd.Version = settings.VersionInformation.BuildVersion

	rootCmd.Flags().StringVarP(&file, "file", "f", "", "toml file to read from ('-' for stdin, the default)")
	rootCmd.Flags().BoolVarP(&pyproject, "pyproject", "p", false, "look for a pyproject.toml file in the current directory or $MESON_SOURCE_ROOT if set")
	rootCmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "output the property as a JSON string (shorthand for --output json)")
	rootCmd.Flags().StringVarP(&output, "output", "o", "shell", "output format: shell|json|toml|yaml|tree|list")
	rootCmd.Flags().StringVarP(&expression, "expression", "e", "", "CEL expression using '_' as the document root, e.g. '_.project.name'")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "don't print any message to stderr")
	rootCmd.Flags().BoolVar(&check, "check", false, "exit 0 if the property exists, 1 otherwise; print nothing")
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the document in an interactive table")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().StringVar(&sortOrder, "sort", "none", "table key order in tree/list output: none|asc|desc")
	rootCmd.MarkFlagsMutuallyExclusive("file", "pyproject")
	rootCmd.MarkFlagsMutuallyExclusive("check", "expression")
	rootCmd.MarkFlagsMutuallyExclusive("check", "interactive")
}

// Execute runs the root command, printing failures to stderr unless the
// quiet flag asks otherwise. The returned error feeds ExitCode.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}
	var cerr *cliError
	if errors.As(err, &cerr) {
		if !cerr.quiet {
			fmt.Fprintf(os.Stderr, "%s: %s\n", settings.CliBinaryName, cerr.err)
		}
		return err
	}
	// Flag-level errors come straight from cobra/pflag.
	fmt.Fprintf(os.Stderr, "%s: %s\n", settings.CliBinaryName, err)
	return err
}

// ExitCode maps an Execute error to the process exit code: 2 for usage
// and syntax problems, 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cerr *cliError
	if errors.As(err, &cerr) {
		return cerr.code
	}
	// Anything else came out of flag parsing or cobra itself.
	return 2
}
