package app

import (
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Inspect summarizes a network file written by Convert.
func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	networkPath := strings.TrimSpace(req.NetworkPath)
	if networkPath == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("network path is required")
	}
	doc, err := s.Reader.ReadNetwork(networkPath)
	if err != nil {
		return InspectResult{}, err
	}
	result := InspectResult{
		RunID:                doc.RunID,
		Nodes:                len(doc.Nodes),
		EnvironmentVariables: len(doc.EnvironmentVariables),
		ValueTables:          len(doc.ValueTables),
		Definitions:          len(doc.Definitions),
		GlobalProperties:     sortedKeys(doc.GlobalProperties),
	}
	for _, msg := range doc.Messages {
		result.Signals += len(msg.Signals)
		result.Messages = append(result.Messages, InspectMessageSummary{
			ID:         msg.ID,
			Name:       msg.Name,
			Signals:    len(msg.Signals),
			Properties: len(msg.Properties),
		})
	}
	return result, nil
}

func sortedKeys[V any](input map[string]V) []string {
	keys := make([]string, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
