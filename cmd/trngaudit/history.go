package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"trngaudit/internal/container"
	"trngaudit/ports"
)

func newHistoryCmd(globals *globalFlags) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded audits, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, globals)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			c, err := container.New(cmd.Context(), cfg, newLogger(cmd, cfg), container.Options{Ledger: true})
			if err != nil {
				return err
			}
			defer c.Close()

			records, err := c.AuditService.History(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			return printHistory(cmd, records)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of audits to list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")
	return cmd
}

func printHistory(cmd *cobra.Command, records []ports.AuditRecord) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRECORDED\tSOURCE\tN\tFINGERPRINT\tMONOBIT\tCHI2\tSERIAL\tOVERALL")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.12s\t%s\t%s\t%s\t%s\n",
			r.ID, r.CreatedAt.UTC().Format(time.RFC3339), r.Source, humanize.Comma(int64(r.SampleSize)),
			r.Fingerprint, r.MonobitVerdict, r.ChiSquareVerdict, r.SerialVerdict, r.Overall)
	}
	return tw.Flush()
}
