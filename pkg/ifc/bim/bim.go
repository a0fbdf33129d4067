// Package bim groups the products of an IFC model into the categories that
// are rendered on a map.
package bim

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/model"
)

// Category is a product grouping.
type Category int

const (
	CategorySite Category = iota
	CategoryArea
	CategoryWall
	CategoryColumn
	CategoryDoor
	CategoryStair
)

var categoryNames = [...]string{"site", "area", "wall", "column", "door", "stair"}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// categoryTypes lists the schema types collected per category. Subtypes are
// included by the graph query.
var categoryTypes = map[Category][]string{
	CategorySite:   {"IfcSite"},
	CategoryArea:   {"IfcSpace"},
	CategoryWall:   {"IfcWall"},
	CategoryColumn: {"IfcColumn"},
	CategoryDoor:   {"IfcDoor"},
	CategoryStair:  {"IfcStair", "IfcStairFlight"},
}

// Data holds the products of one model by category.
type Data struct {
	Site    *model.Entity
	Areas   []*model.Entity
	Walls   []*model.Entity
	Columns []*model.Entity
	Doors   []*model.Entity
	Stairs  []*model.Entity
}

// Product is an entity tagged with its category.
type Product struct {
	Entity   *model.Entity
	Category Category
}

// Filter collects the site and the area, wall, column, door and stair products of g.
func Filter(g *model.Graph) *Data {
	d := &Data{
		Areas:   collect(g, CategoryArea),
		Walls:   collect(g, CategoryWall),
		Columns: collect(g, CategoryColumn),
		Doors:   collect(g, CategoryDoor),
		Stairs:  collect(g, CategoryStair),
	}
	if sites := collect(g, CategorySite); len(sites) > 0 {
		d.Site = sites[0]
	}
	return d
}

func collect(g *model.Graph, c Category) []*model.Entity {
	var out []*model.Entity
	for _, name := range categoryTypes[c] {
		out = append(out, g.InstancesOfType(name)...)
	}
	return out
}

// Products returns every collected product, site first, in category order.
func (d *Data) Products() []Product {
	var out []Product
	if d.Site != nil {
		out = append(out, Product{Entity: d.Site, Category: CategorySite})
	}
	groups := []struct {
		c        Category
		entities []*model.Entity
	}{
		{CategoryArea, d.Areas},
		{CategoryWall, d.Walls},
		{CategoryColumn, d.Columns},
		{CategoryDoor, d.Doors},
		{CategoryStair, d.Stairs},
	}
	for _, grp := range groups {
		for _, e := range grp.entities {
			out = append(out, Product{Entity: e, Category: grp.c})
		}
	}
	return out
}

// Counts returns the number of products per category.
func (d *Data) Counts() map[Category]int {
	counts := make(map[Category]int)
	for _, p := range d.Products() {
		counts[p.Category]++
	}
	return counts
}

// ShapeRepresentations returns the IfcShapeRepresentation entities of a
// product. A product without Representation has none.
func ShapeRepresentations(product *model.Entity) ([]*model.Entity, error) {
	if !product.Has("Representation") {
		return nil, nil
	}
	shape, err := product.Ref("Representation")
	if err != nil {
		return nil, fmt.Errorf("bim: %w", err)
	}
	reps, err := shape.Refs("Representations")
	if err != nil {
		return nil, fmt.Errorf("bim: %w", err)
	}
	out := make([]*model.Entity, 0, len(reps))
	for _, rep := range reps {
		if rep.Type == "IfcShapeRepresentation" {
			out = append(out, rep)
		}
	}
	return out, nil
}
