package cmd

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/model"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/step"
)

// loadGraph parses an IFC file and builds its entity graph.
func loadGraph(filename string) (*model.Graph, error) {
	parser, err := step.NewParser()
	if err != nil {
		return nil, fmt.Errorf("error creating parser: %w", err)
	}
	file, err := parser.ParseFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error parsing file: %w", err)
	}
	g, err := model.NewGraph(file)
	if err != nil {
		return nil, fmt.Errorf("error building model: %w", err)
	}
	return g, nil
}
