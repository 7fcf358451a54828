package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/turtacn/AlloyFrontier/pkg/types/alloy"
)

func newConstraintsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "constraints",
		Short: "Show or edit the optimization constraints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			cons, err := c.Constraints(cmd.Context())
			if err != nil {
				return err
			}
			return printConstraints(cmd, opts, cons)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <field> <value>",
		Short: "Set one constraint field (minStrength or maxCost); out-of-range values are clamped",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[1], err)
			}
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			cons, err := c.UpdateConstraint(cmd.Context(), args[0], value)
			if err != nil {
				return err
			}
			return printConstraints(cmd, opts, cons)
		},
	})
	return cmd
}

func printConstraints(cmd *cobra.Command, opts *rootOptions, cons alloy.Constraints) error {
	if done, err := opts.printJSON(cmd.OutOrStdout(), cons); done {
		return err
	}
	cmd.Printf("min strength: %.1f MPa\nmax cost:     %.1f $/ton\n", cons.MinStrength, cons.MaxCost)
	return nil
}

func newOptimizeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "optimize",
		Short: "Run the optimizer against the current constraints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			res, err := c.Optimize(cmd.Context())
			if err != nil {
				return err
			}
			if done, jerr := opts.printJSON(cmd.OutOrStdout(), res); done {
				return jerr
			}
			cmd.Printf("optimization complete: %d solutions in %s\n", res.SolutionCount, res.Elapsed)
			if res.RunID != "" {
				cmd.Printf("run id: %s\n", res.RunID)
			}
			return nil
		},
	}
}

func newSolutionsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solutions",
		Short: "List the ranked candidate set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			set, err := c.Solutions(cmd.Context())
			if err != nil {
				return err
			}
			if done, jerr := opts.printJSON(cmd.OutOrStdout(), set); done {
				return jerr
			}
			return printSolutionTable(cmd, set)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "select <index>",
		Short: "Select the candidate at the given index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			set, err := c.Select(cmd.Context(), index)
			if err != nil {
				return err
			}
			if done, jerr := opts.printJSON(cmd.OutOrStdout(), set); done {
				return jerr
			}
			return printSolutionTable(cmd, set)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "active",
		Short: "Show the currently selected candidate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			sol, err := c.Active(cmd.Context())
			if err != nil {
				return err
			}
			if done, jerr := opts.printJSON(cmd.OutOrStdout(), sol); done {
				return jerr
			}
			cmd.Printf("batch #%d  strength %.1f MPa  cost %.1f $/ton\n",
				sol.BatchNumber, sol.Metrics.Strength, sol.Metrics.Cost)
			cmd.Printf("composition: %s\n", formatComposition(sol.Composition))
			return nil
		},
	})
	return cmd
}

func printSolutionTable(cmd *cobra.Command, set alloy.SolutionSet) error {
	if len(set.Solutions) == 0 {
		cmd.Println("no solutions; run `alloyctl optimize` first")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  \tBATCH\tSTRENGTH\tCOST\tSTABILITY")
	for i, s := range set.Solutions {
		marker := " "
		if i == set.Selection {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t#%d\t%.1f\t%.1f\t%.2f\n",
			marker, s.BatchNumber, s.Metrics.Strength, s.Metrics.Cost, s.Metrics.Stability)
	}
	return w.Flush()
}

func formatComposition(comp []float64) string {
	parts := make([]string, len(comp))
	for i, v := range comp {
		parts[i] = strconv.FormatFloat(v, 'f', 2, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func newInsightCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "insight",
		Short: "Show the narrative and dominant driver for the active candidate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			ins, err := c.Insight(cmd.Context())
			if err != nil {
				return err
			}
			if done, jerr := opts.printJSON(cmd.OutOrStdout(), ins); done {
				return jerr
			}
			cmd.Printf("dominant driver: %s (%s)\n", ins.Dominant.DisplayName, ins.Dominant.DescriptionTag)
			cmd.Println(ins.Narrative)
			return nil
		},
	}
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the current dashboard state as a PDF report on the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			res, err := c.ExportReport(cmd.Context())
			if err != nil {
				return err
			}
			if done, jerr := opts.printJSON(cmd.OutOrStdout(), res); done {
				return jerr
			}
			cmd.Printf("exported %s (batch #%d, %d bytes)\n", res.Filename, res.BatchNumber, res.SizeBytes)
			return nil
		},
	}
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent optimization runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			runs, err := c.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if done, jerr := opts.printJSON(cmd.OutOrStdout(), runs); done {
				return jerr
			}
			if len(runs) == 0 {
				cmd.Println("no recorded runs")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RUN\tMIN STRENGTH\tMAX COST\tSOLUTIONS\tDURATION\tWHEN")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%d\t%dms\t%s\n",
					r.RunID, r.MinStrength, r.MaxCost, r.SolutionCount, r.DurationMS,
					r.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list")
	return cmd
}

func newElementsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "elements",
		Short: "Show the element catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			elems, err := c.Elements(cmd.Context())
			if err != nil {
				return err
			}
			if done, jerr := opts.printJSON(cmd.OutOrStdout(), elems); done {
				return jerr
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tELEMENT\tROLE\tWEIGHT")
			for _, e := range elems {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\n", e.Key, e.DisplayName, e.DescriptionTag, e.Weight)
			}
			return w.Flush()
		},
	}
}
