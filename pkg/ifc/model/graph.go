// Package model is the read-only IFC entity graph built from a parsed STEP file.
//
// Each entity's declared type is resolved to its schema spelling once, when the
// graph is built. Type queries afterwards are map lookups over an index that is
// never mutated, so a Graph may be shared by concurrent readers.
package model

import (
	"fmt"
	"sort"

	"github.com/OpenTraceLab/OpenTraceBIM/pkg/step"
)

// Graph holds the entity instances of one STEP file.
type Graph struct {
	entities map[uint64]*Entity
	order    []*Entity
	byType   map[string][]*Entity // canonical type -> instances of it and its subtypes
	byRaw    map[string][]*Entity // raw spelling -> instances declared with it
	schemas  []string
}

// NewGraph converts the instances of every DATA section of file.
func NewGraph(file *step.File) (*Graph, error) {
	if file == nil {
		return nil, fmt.Errorf("model: nil file")
	}
	g := &Graph{
		entities: make(map[uint64]*Entity),
		byType:   make(map[string][]*Entity),
		byRaw:    make(map[string][]*Entity),
		schemas:  file.Schemas(),
	}
	for _, inst := range file.Instances() {
		e, err := newEntity(inst)
		if err != nil {
			return nil, fmt.Errorf("model: %s: %w", inst.Pos, err)
		}
		if _, dup := g.entities[e.ID]; dup {
			return nil, fmt.Errorf("model: %s: %w: #%d", inst.Pos, ErrDuplicateID, e.ID)
		}
		e.graph = g
		g.entities[e.ID] = e
		g.order = append(g.order, e)
		if e.Complex {
			continue
		}
		g.byRaw[e.RawType] = append(g.byRaw[e.RawType], e)
		for t := e.Type; t != ""; t = supertypes[t] {
			g.byType[t] = append(g.byType[t], e)
		}
	}
	return g, nil
}

func newEntity(inst *step.Instance) (*Entity, error) {
	id, err := parseID(inst.Name)
	if err != nil {
		return nil, err
	}
	e := &Entity{ID: id}
	switch {
	case inst.Body == nil:
		return nil, fmt.Errorf("#%d has no body", id)
	case inst.Body.Simple != nil:
		rec := inst.Body.Simple
		e.RawType = rec.Type
		e.Type, _ = Canonical(rec.Type)
		if e.attrs, err = newValues(rec.Params); err != nil {
			return nil, err
		}
	default:
		// Complex instances keep their first record name for display only.
		e.Complex = true
		if len(inst.Body.Complex) > 0 {
			e.RawType = inst.Body.Complex[0].Type
		}
	}
	return e, nil
}

// Get returns the entity with the given id.
func (g *Graph) Get(id uint64) (*Entity, bool) {
	e, ok := g.entities[id]
	return e, ok
}

// Len returns the number of entities.
func (g *Graph) Len() int {
	return len(g.order)
}

// Schemas returns the FILE_SCHEMA identifiers of the source file.
func (g *Graph) Schemas() []string {
	return append([]string(nil), g.schemas...)
}

// InstancesOfType returns every instance of the named type. The name is
// matched exactly as spelled: a schema spelling (IfcWall) selects that type
// and its subtypes, any other spelling selects instances declared with
// exactly that text.
func (g *Graph) InstancesOfType(name string) []*Entity {
	var out []*Entity
	if canonical, ok := canonicalNames[name]; ok && canonical == name {
		out = g.byType[name]
	} else {
		out = g.byRaw[name]
	}
	return append([]*Entity(nil), out...)
}

// IsA reports whether e is an instance of name or of one of its subtypes.
// name is accepted as-is, in lowercase or in uppercase.
func (g *Graph) IsA(e *Entity, name string) bool {
	if e == nil {
		return false
	}
	canonical, ok := Canonical(name)
	if !ok {
		for _, v := range caseVariants(name) {
			if e.RawType == v {
				return true
			}
		}
		return false
	}
	return e.Type != "" && IsSubtype(e.Type, canonical)
}

// TypeCounts returns the number of instances per declared type, keyed by
// schema spelling where known and raw spelling otherwise.
func (g *Graph) TypeCounts() map[string]int {
	counts := make(map[string]int)
	for _, e := range g.order {
		name := e.Type
		if name == "" {
			name = e.RawType
		}
		counts[name]++
	}
	return counts
}

// SortedTypes returns the keys of counts ordered by descending count, then name.
func SortedTypes(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
