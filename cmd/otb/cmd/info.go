package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/bim"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/model"
)

var infoTop int

var infoCmd = &cobra.Command{
	Use:   "info <file.ifc>",
	Short: "Show model summary",
	Long:  `Prints the schema, the entity count, the most frequent entity types and the number of products per category.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().IntVar(&infoTop, "top", 10, "number of entity types to list")
}

func runInfo(cmd *cobra.Command, args []string) error {
	g, err := loadGraph(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "File: %s\n", args[0])
	fmt.Fprintf(out, "  Schema: %s\n", strings.Join(g.Schemas(), ", "))
	fmt.Fprintf(out, "  Entities: %d\n", g.Len())
	fmt.Fprintf(out, "  Shape representations: %d\n", len(g.InstancesOfType("IfcShapeRepresentation")))

	counts := g.TypeCounts()
	types := model.SortedTypes(counts)
	if infoTop >= 0 && len(types) > infoTop {
		types = types[:infoTop]
	}
	fmt.Fprintf(out, "\n%-40s %8s\n", "Type", "Count")
	fmt.Fprintln(out, "─────────────────────────────────────────────────")
	for _, name := range types {
		fmt.Fprintf(out, "%-40s %8d\n", name, counts[name])
	}

	data := bim.Filter(g)
	site := "-"
	if data.Site != nil {
		site = data.Site.Text("Name")
	}
	fmt.Fprintf(out, "\nSite: %s\n", site)
	fmt.Fprintf(out, "  Areas: %d\n", len(data.Areas))
	fmt.Fprintf(out, "  Walls: %d\n", len(data.Walls))
	fmt.Fprintf(out, "  Columns: %d\n", len(data.Columns))
	fmt.Fprintf(out, "  Doors: %d\n", len(data.Doors))
	fmt.Fprintf(out, "  Stairs: %d\n", len(data.Stairs))
	return nil
}
