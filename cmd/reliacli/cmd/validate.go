package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Temi-Tory/IPM-Working-sub011/graphmodel"
	"github.com/Temi-Tory/IPM-Working-sub011/montecarlo"
	"github.com/Temi-Tory/IPM-Working-sub011/reliability"
)

var validateTrials int

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Cross-check exact belief propagation against Monte-Carlo sampling",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().IntVar(&validateTrials, "trials", 100000, "number of Monte-Carlo trials")
}

func runValidate(cmd *cobra.Command, args []string) error {
	g, err := loadGraph(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()

	exact, err := reliability.Propagate(ctx, g, reliability.WithLogger(Logger()))
	if err != nil {
		return fmt.Errorf("exact propagation: %w", err)
	}

	sampled, err := montecarlo.Estimate(ctx, g, validateTrials)
	if err != nil {
		return fmt.Errorf("monte-carlo estimate: %w", err)
	}

	printComparisonTable(exact, sampled)

	return nil
}

func printComparisonTable(exact, sampled map[graphmodel.NodeID]float64) {
	ids := make([]graphmodel.NodeID, 0, len(exact))
	for id := range exact {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NODE\tEXACT\tMONTE-CARLO\tDIFF")

	var maxDiff float64
	for _, id := range ids {
		diff := exact[id] - sampled[id]
		if diff < 0 {
			diff = -diff
		}
		if diff > maxDiff {
			maxDiff = diff
		}
		fmt.Fprintf(w, "%d\t%.10f\t%.10f\t%.6f\n", id, exact[id], sampled[id], diff)
	}
	w.Flush()

	fmt.Printf("max |exact - monte-carlo| = %.6f over %d trials\n", maxDiff, validateTrials)
}
