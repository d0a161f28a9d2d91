package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/statefacts/core/internal/adapters/dataset"
	"github.com/statefacts/core/internal/domain/entities"
)

// NewStatesCommand creates the states command for inspecting the dataset
func NewStatesCommand() *cobra.Command {
	statesCmd := &cobra.Command{
		Use:   "states",
		Short: "Inspect the state dataset",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List states from the dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("dataset")
			contig, _ := cmd.Flags().GetString("contig")
			asJSON, _ := cmd.Flags().GetBool("json")

			states, err := dataset.NewSource(path).Load()
			if err != nil {
				return err
			}

			filter := entities.ParseContiguityFilter(contig)
			selected := make([]entities.State, 0, len(states))
			for i := range states {
				if filter.Match(&states[i]) {
					selected = append(selected, states[i])
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(selected)
			}
			return printStates(cmd.OutOrStdout(), selected)
		},
	}

	listCmd.Flags().String("dataset", "", "Path to a replacement dataset file")
	listCmd.Flags().String("contig", "", "true for the 48 contiguous states, false for AK and HI")
	listCmd.Flags().Bool("json", false, "Print JSON instead of a table")

	statesCmd.AddCommand(listCmd)
	return statesCmd
}

// printStates writes one row per state with the population grouped by thousands
func printStates(w io.Writer, states []entities.State) error {
	p := message.NewPrinter(language.English)
	for _, s := range states {
		if _, err := p.Fprintf(w, "%-2s  %-16s %-16s %s %12d\n", s.Code, s.Name, s.CapitalCity, s.AdmissionDate, s.Population); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d states\n", len(states))
	return err
}
