package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/spf13/cobra"
)

func newAlgorithmsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "algorithms",
		Short: "List the available algorithms",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := domain.Catalog()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(catalog)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tKIND\tCOMPLEXITY")
			for _, a := range catalog {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Kind, a.Complexity)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")
	return cmd
}
