package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/HueCodes/vuelint/internal/logger"
	_ "github.com/HueCodes/vuelint/internal/rules/deprecated"
	_ "github.com/HueCodes/vuelint/internal/rules/style"
)

var version = "0.1.0"

// Exit codes
const (
	exitClean    = 0
	exitFindings = 1
	exitFailure  = 2
)

// exitError carries a process exit code. A nil err prints nothing.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

var errFindings = &exitError{code: exitFindings}

// exitCode maps an Execute error to the process exit code
func exitCode(err error) int {
	if err == nil {
		return exitClean
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitFailure
}

func newRootCmd() *cobra.Command {
	var (
		verbose   bool
		noColor   bool
		logFormat string
	)

	rootCmd := &cobra.Command{
		Use:   "vuelint",
		Short: "Vue template linter and fixer",
		Long: `vuelint checks Vue single-file component templates and HTML files
for style problems and deprecated syntax, and fixes what it safely can.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch logFormat {
			case "text", "json":
			default:
				return fmt.Errorf("unknown log format %q (want text or json)", logFormat)
			}
			logger.Setup(cmd.ErrOrStderr(), verbose, logFormat == "json")
			if noColor {
				color.NoColor = true
			}
			return nil
		},
	}

	rootCmd.AddCommand(
		lintCmd(),
		fixCmd(),
		explainCmd(),
		initCmd(),
	)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file path (default .vuelint.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only report errors")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show parse errors, fix titles and debug logs")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text|json")

	return rootCmd
}

func main() {
	err := newRootCmd().Execute()
	var ee *exitError
	if err != nil && (!errors.As(err, &ee) || ee.err != nil) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(exitCode(err))
}
