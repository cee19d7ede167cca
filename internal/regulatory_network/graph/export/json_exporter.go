package export

import (
	"encoding/json"
	"os"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/graph"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/layout"
)

// Document is the JSON form of a laid-out graph.
type Document struct {
	Width     float64           `json:"width"`
	Height    float64           `json:"height"`
	Graph     *graph.Graph      `json:"graph"`
	Positions []layout.Position `json:"positions"`
	Highlight graph.Highlight   `json:"highlight"`
}

func NewDocument(s Scene) Document {
	pos := s.Positions
	if pos == nil {
		pos = []layout.Position{}
	}
	return Document{Width: s.Width, Height: s.Height, Graph: s.Graph, Positions: pos, Highlight: s.Highlight}
}

func ToJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func WriteJSON(path string, v any) error {
	b, err := ToJSON(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}
