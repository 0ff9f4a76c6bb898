package cmd

import (
	"io"
	"os"

	"genedb/core/fasta"
	"genedb/core/geneticcode"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	translateCode   int
	translateOutput string
)

// translateCmd translates a nucleotide FASTA file with a chosen genetic code.
var translateCmd = &cobra.Command{
	Use:   "translate <fasta>",
	Short: "Translate coding sequences to peptides",
	Long: `Translates every record of a nucleotide FASTA file (optionally .gz) with the
given NCBI genetic code and writes the peptides to stdout or --output.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	translateCmd.Flags().IntVar(&translateCode, "code", geneticcode.Standard, "NCBI genetic code id")
	translateCmd.Flags().StringVarP(&translateOutput, "output", "o", "", "Output file (default stdout)")
	RootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	_, logg, err := setup()
	if err != nil {
		return err
	}
	defer logg.Sync()

	if !geneticcode.Known(translateCode) {
		logg.Warn("Unknown genetic code, using standard table", zap.Int("code", translateCode))
	}
	table := geneticcode.Lookup(translateCode)

	records, err := fasta.ReadFile(args[0])
	if err != nil {
		return err
	}

	peptides := make([]fasta.Record, 0, len(records))
	for _, r := range records {
		pep, partial := table.Translate(r.Seq)
		if partial {
			logg.Warn("Coding length not a multiple of three, trailing bases dropped",
				zap.String("id", r.ID),
				zap.Int("length", len(r.Seq)),
			)
		}
		peptides = append(peptides, fasta.Record{ID: r.ID, Desc: r.Desc, Seq: pep})
	}

	var out io.Writer = os.Stdout
	if translateOutput != "" {
		fh, err := os.Create(translateOutput)
		if err != nil {
			return err
		}
		defer fh.Close()
		out = fh
	}
	if err := fasta.Write(out, peptides, fasta.WrapWidth); err != nil {
		return err
	}

	logg.Info("Translated records",
		zap.Int("records", len(peptides)),
		zap.Int("code", table.ID),
		zap.String("table", table.Name),
	)
	return nil
}
