package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jayvanderwall/desim/trace"
)

var tracePosFilter string

var traceCmd = &cobra.Command{
	Use:   "trace [file]",
	Short: "List the contents of a recorded SQLite trace file.",
	Args:  cobra.ExactArgs(1),
	RunE:  listTrace,
}

func init() {
	traceCmd.Flags().StringVar(&tracePosFilter, "pos", "",
		"only list rows recorded at this hook position")

	rootCmd.AddCommand(traceCmd)
}

func listTrace(cmd *cobra.Command, args []string) error {
	reader := trace.NewReader(args[0])
	reader.Init()
	defer reader.Close()

	rows := reader.List(trace.Query{Pos: tracePosFilter})

	for _, row := range rows {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n",
			int64(row.Now), row.Pos, row.ID, row.Item)
	}

	return nil
}
