package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"trngaudit/adapters/sample"
)

func newGenerateCmd() *cobra.Command {
	var out string
	var bits int
	var bias float64
	var seed int64

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic sample file for testing",
		Long: `Write a seeded pseudo-random sample in the persisted format. Each bit is '1'
with probability --bias. The file is flushed after every chunk.

Example: trngaudit generate --out fixture.txt --bits 1000000 --bias 0.52 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sample.ValidateGenerate(bits, bias); err != nil {
				return err
			}
			w, err := sample.Create(out)
			if err != nil {
				return err
			}

			_, genErr := sample.Generate(cmd.Context(), w, bits, bias, seed)
			if err := w.Close(); err != nil && genErr == nil {
				genErr = err
			}
			if genErr != nil {
				return genErr
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s bits to %s\n", humanize.Comma(int64(w.Written())), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file")
	cmd.Flags().IntVar(&bits, "bits", 1_000_000, "Number of bits to write")
	cmd.Flags().Float64Var(&bias, "bias", 0.5, "Probability of a '1'")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic output")
	cmd.MarkFlagRequired("out")
	return cmd
}
