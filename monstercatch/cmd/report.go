package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/monstercatch/tracing"
)

var reportCmd = &cobra.Command{
	Use:   "report <trace.sqlite3>",
	Short: "Summarize the sessions recorded in a trace.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, err := tracing.NewDBTraceReader(args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		out := cmd.OutOrStdout()

		infos, err := reader.RunInfo(cmd.Context())
		if err != nil {
			return err
		}

		for _, info := range infos {
			fmt.Fprintf(out, "%s: %s\n", info.Property, info.Value)
		}

		summaries, err := tracing.Summarize(cmd.Context(), reader)
		if err != nil {
			return err
		}

		fmt.Fprintln(out)

		return tracing.PrintSummaries(out, summaries)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
