package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/shape"
)

var identifyCmd = &cobra.Command{
	Use:   "identify <file.ifc>",
	Short: "Classify shape representations",
	Long: `Lists every IfcShapeRepresentation with its representation identifier and type
and the catalog type of each of its items.`,
	Args: cobra.ExactArgs(1),
	RunE: runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	g, err := loadGraph(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	ident := shape.NewIdentifier(g, shape.WithLogger(logger))

	reps := g.InstancesOfType("IfcShapeRepresentation")
	fmt.Fprintf(out, "%-10s %-16s %-22s %s\n", "Entity", "Identifier", "Type", "Items")
	fmt.Fprintln(out, "──────────────────────────────────────────────────────────────────")

	resolved := 0
	for _, rep := range reps {
		id := ident.Identify(rep)
		identifier, typ := "?", "?"
		if v, ok := id.Identifier(); ok {
			identifier = v.String()
		}
		if v, ok := id.Type(); ok {
			typ = v.String()
		}

		items := "-"
		if id.IsResolved() {
			resolved++
			items = itemSummary(ident, id)
		}
		fmt.Fprintf(out, "#%-9d %-16s %-22s %s\n", rep.ID, identifier, typ, items)
	}
	fmt.Fprintf(out, "\n%d of %d representations resolved\n", resolved, len(reps))
	return nil
}

func itemSummary(ident *shape.Identifier, id shape.Identity) string {
	items, err := id.Source.Refs("Items")
	if err != nil {
		return "error: " + err.Error()
	}
	summary := ""
	for i, item := range items {
		if i > 0 {
			summary += ", "
		}
		name, ok := ident.ItemType(id, item)
		if !ok {
			name = item.RawType + " (unsupported)"
		}
		summary += fmt.Sprintf("#%d %s", item.ID, name)
	}
	return summary
}
