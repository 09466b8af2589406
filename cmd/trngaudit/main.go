// Command trngaudit audits a persisted TRNG bitstream and prints a report.
package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"trngaudit/internal"
	"trngaudit/internal/config"
)

// Exit codes
const (
	exitOK     = 0
	exitError  = 1
	exitStrict = 3
)

// exitCodeError carries a non-default exit status through cobra
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

type globalFlags struct {
	configFile string
	envFile    string
	logLevel   string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return exitOK
	}

	var codeErr *exitCodeError
	if stderrors.As(err, &codeErr) {
		if codeErr.msg != "" {
			fmt.Fprintln(stderr, codeErr.msg)
		}
		return codeErr.code
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return exitError
}

func newRootCmd() *cobra.Command {
	globals := &globalFlags{}
	audit := &auditFlags{}

	rootCmd := &cobra.Command{
		Use:   "trngaudit",
		Short: "Statistical audit of a hardware random bit stream",
		Long: `Audit a persisted stream of '0'/'1' samples with a battery of tests:
Shannon entropy, frequency (monobit), Pearson's chi-squared and lag-1 serial
correlation. The report is written to stdout; diagnostics go to stderr.

Example: trngaudit --input quantum_data.txt --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(cmd, globals, audit)
		},
	}

	rootCmd.PersistentFlags().StringVar(&globals.configFile, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&globals.envFile, "env-file", "", "dotenv file (default .env)")
	rootCmd.PersistentFlags().StringVar(&globals.logLevel, "log-level", "", "ERROR|WARN|INFO|DEBUG|TRACE")
	audit.bind(rootCmd)

	rootCmd.AddCommand(
		newAuditCmd(globals),
		newServeCmd(globals),
		newHistoryCmd(globals),
		newGenerateCmd(),
		newMigrateCmd(globals),
	)
	return rootCmd
}

// loadConfig layers defaults, file and environment, then the global flags
func loadConfig(cmd *cobra.Command, globals *globalFlags) (config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: globals.configFile, EnvFile: globals.envFile})
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = config.NormalizeLogLevel(globals.logLevel)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg config.Config) *internal.Logger {
	level, _ := internal.ParseLogLevel(cfg.LogLevel)
	return internal.NewLoggerTo(cmd.ErrOrStderr(), level)
}
