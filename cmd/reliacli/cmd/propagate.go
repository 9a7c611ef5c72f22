package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Temi-Tory/IPM-Working-sub011/graphmodel"
	"github.com/Temi-Tory/IPM-Working-sub011/reliability"
)

var propagateCacheSize int

var propagateCmd = &cobra.Command{
	Use:   "propagate <file>",
	Short: "Compute exact reachability belief for every node",
	Args:  cobra.ExactArgs(1),
	RunE:  runPropagate,
}

func init() {
	rootCmd.AddCommand(propagateCmd)
	propagateCmd.Flags().IntVar(&propagateCacheSize, "cache-size", 4096, "memoization cache capacity, 0 for unbounded")
}

func runPropagate(cmd *cobra.Command, args []string) error {
	g, err := loadGraph(args[0])
	if err != nil {
		return err
	}

	result, err := reliability.Propagate(context.Background(), g,
		reliability.WithLogger(Logger()),
		reliability.WithCacheSize(propagateCacheSize),
	)
	if err != nil {
		return err
	}

	printBeliefTable(result)

	return nil
}

func printBeliefTable(result map[graphmodel.NodeID]float64) {
	ids := make([]graphmodel.NodeID, 0, len(result))
	for id := range result {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NODE\tBELIEF")
	for _, id := range ids {
		fmt.Fprintf(w, "%d\t%.10f\n", id, result[id])
	}
	w.Flush()
}
