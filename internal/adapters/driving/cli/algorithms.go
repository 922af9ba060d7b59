package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/dedup-cli/internal/core/domain"
)

var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List supported hash algorithms",
	Run: func(cmd *cobra.Command, _ []string) {
		for _, a := range domain.HashAlgorithms() {
			line := a.String()
			if a == domain.DefaultHashAlgorithm {
				line += " (default)"
			}
			cmd.Printf("%-12s %d bits\n", line, a.DigestBits())
		}
	},
}

func init() {
	rootCmd.AddCommand(algorithmsCmd)
}
