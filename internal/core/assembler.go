package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"dbcsheet/internal/types"
)

// Assemble builds the network model from a resolved staging. It performs
// no validation; every check has already run in the engine.
func Assemble(ctx context.Context, staging *types.Staging, runID string) types.Network {
	network := types.Network{
		RunID:                runID,
		Nodes:                append([]*types.Node(nil), staging.Nodes...),
		EnvironmentVariables: append([]*types.EnvironmentVariable(nil), staging.EnvironmentVariables...),
		GlobalProperties:     types.PropertyMap{},
		ValueTables:          append([]types.ValueTable(nil), staging.ValueTables...),
	}
	for _, node := range network.Nodes {
		assert.NotEmpty(ctx, node.Name, "node name must be set")
	}
	for _, id := range staging.MessageOrder {
		msg := staging.Messages[id]
		assert.NotEmpty(ctx, msg.Name, "message name must be set")
		network.Messages = append(network.Messages, msg)
	}
	for name, value := range staging.GlobalProperties {
		network.GlobalProperties[name] = value
	}
	for _, key := range staging.DefinitionOrder {
		network.Definitions = append(network.Definitions, staging.Definitions[key])
	}
	log.Ctx(ctx).Debug().
		Int("nodes", len(network.Nodes)).
		Int("messages", len(network.Messages)).
		Int("definitions", len(network.Definitions)).
		Msg("network assembled")
	return network
}
