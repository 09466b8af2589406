package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trngaudit/adapters/excel"
	"trngaudit/app"
	"trngaudit/domain/verdict"
	"trngaudit/internal/config"
	"trngaudit/internal/container"
	synth "trngaudit/internal/report"
)

type auditFlags struct {
	input      string
	alpha      float64
	minSamples int
	format     string
	xlsx       string
	record     bool
	strict     bool
}

func (f *auditFlags) bind(cmd *cobra.Command) {
	defaults := config.Default()
	cmd.Flags().StringVarP(&f.input, "input", "i", defaults.Input, "Sample file of '0'/'1' characters")
	cmd.Flags().Float64Var(&f.alpha, "alpha", defaults.Alpha, "Significance level for the monobit test")
	cmd.Flags().IntVar(&f.minSamples, "min-samples", defaults.MinSamples, "Warn when the sample is smaller than this")
	cmd.Flags().StringVar(&f.format, "format", defaults.Format, "Report format: text|json|yaml")
	cmd.Flags().StringVar(&f.xlsx, "xlsx", "", "Also export the report as an xlsx workbook")
	cmd.Flags().BoolVar(&f.record, "record", false, "Record the audit in the ledger database")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Exit with status 3 when the overall verdict is FAIL")
}

// apply overrides cfg with the flags the user actually set
func (f *auditFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = f.input
	}
	if flags.Changed("alpha") {
		cfg.Alpha = f.alpha
	}
	if flags.Changed("min-samples") {
		cfg.MinSamples = f.minSamples
	}
	if flags.Changed("format") {
		cfg.Format = f.format
	}
	if flags.Changed("xlsx") {
		cfg.XLSXPath = f.xlsx
	}
	if flags.Changed("record") {
		cfg.Record = f.record
	}
	if flags.Changed("strict") {
		cfg.Strict = f.strict
	}
}

func newAuditCmd(globals *globalFlags) *cobra.Command {
	flags := &auditFlags{}
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit a sample file (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(cmd, globals, flags)
		},
	}
	flags.bind(cmd)
	return cmd
}

func runAudit(cmd *cobra.Command, globals *globalFlags, flags *auditFlags) error {
	cfg, err := loadConfig(cmd, globals)
	if err != nil {
		return err
	}
	flags.apply(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	format, err := synth.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	logger := newLogger(cmd, cfg)
	ctx := cmd.Context()

	c, err := container.New(ctx, cfg, logger, container.Options{Ledger: cfg.Record})
	if err != nil {
		return err
	}
	defer c.Close()

	result, auditErr := c.AuditService.Audit(ctx, app.AuditRequest{
		Source:     cfg.Input,
		Alpha:      cfg.Alpha,
		MinSamples: cfg.MinSamples,
		Record:     cfg.Record,
	})
	if result == nil {
		return auditErr
	}

	if err := synth.Render(cmd.OutOrStdout(), result.Report, format); err != nil {
		return err
	}
	if cfg.XLSXPath != "" {
		if err := excel.NewExporter().Export(result.Report, cfg.XLSXPath); err != nil {
			return err
		}
		logger.Info("exported report to %s", cfg.XLSXPath)
	}
	if auditErr != nil {
		return auditErr
	}

	if cfg.Strict && result.Report.Summary.Overall == verdict.Fail {
		return &exitCodeError{
			code: exitStrict,
			msg:  fmt.Sprintf("strict mode: overall verdict %s", result.Report.Summary.Overall),
		}
	}
	return nil
}
