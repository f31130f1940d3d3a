package adapters

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"dbcsheet/internal/ports"
	"dbcsheet/internal/shared"
	"dbcsheet/internal/types"
)

type NetworkFileAdapter struct{}

func NewNetworkFileAdapter() NetworkFileAdapter {
	return NetworkFileAdapter{}
}

func (a NetworkFileAdapter) WriteNetwork(ctx context.Context, path string, network types.Network) error {
	if err := ensureParent(path); err != nil {
		return err
	}
	data, err := yaml.Marshal(NetworkToDocument(network))
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode network").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write network file").
			WithCause(err)
	}
	log.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(data)).Msg("network written")
	return nil
}

func (a NetworkFileAdapter) ReadNetwork(path string) (types.NetworkDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.NetworkDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("network file not found").
			WithCause(err)
	}
	var doc types.NetworkDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return types.NetworkDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid network file").
			WithCause(err)
	}
	return doc, nil
}

// NetworkToDocument flattens the resolved graph into its file form.
// Property values are rendered through their canonical text.
func NetworkToDocument(network types.Network) types.NetworkDocument {
	doc := types.NetworkDocument{
		RunID:            network.RunID,
		Nodes:            []types.NodeDocument{},
		Messages:         []types.MessageDocument{},
		GlobalProperties: propertyTexts(network.GlobalProperties),
	}
	for _, node := range network.Nodes {
		doc.Nodes = append(doc.Nodes, types.NodeDocument{
			Name:       node.Name,
			Comment:    node.Comment,
			Properties: propertyTexts(node.Properties),
		})
	}
	for _, msg := range network.Messages {
		entry := types.MessageDocument{
			ID:                     shared.FormatHexID(msg.ID),
			Name:                   msg.Name,
			DLC:                    msg.DLC,
			Transmitter:            msg.Transmitter,
			Extended:               msg.Extended,
			AdditionalTransmitters: msg.AdditionalTransmitters,
			Comment:                msg.Comment,
			Properties:             propertyTexts(msg.Properties),
		}
		for _, sig := range msg.Signals {
			entry.Signals = append(entry.Signals, types.SignalDocument{
				Name:         sig.Name,
				StartBit:     sig.StartBit,
				Length:       sig.Length,
				ByteOrder:    sig.ByteOrder,
				Signed:       sig.Signed,
				Factor:       sig.Factor,
				Offset:       sig.Offset,
				Min:          sig.Min,
				Max:          sig.Max,
				Unit:         sig.Unit,
				Receivers:    sig.Receivers,
				Multiplexing: sig.Multiplexing,
				InitialValue: sig.InitialValue,
				ValueType:    sig.ValueType,
				SendType:     sig.SendType,
				ValueTable:   sig.ValueTable,
				Values:       valueTexts(sig.Values),
				Comment:      sig.Comment,
				Properties:   propertyTexts(sig.Properties),
			})
		}
		doc.Messages = append(doc.Messages, entry)
	}
	for _, env := range network.EnvironmentVariables {
		doc.EnvironmentVariables = append(doc.EnvironmentVariables, types.EnvVarDocument{
			Name:       env.Name,
			Type:       env.Type,
			Min:        env.Min,
			Max:        env.Max,
			Default:    env.Default,
			Unit:       env.Unit,
			Access:     env.Access,
			Nodes:      env.Nodes,
			DataLength: env.DataLength,
			ValueTable: env.ValueTable,
			Values:     valueTexts(env.Values),
			Comment:    env.Comment,
			Properties: propertyTexts(env.Properties),
		})
	}
	for _, table := range network.ValueTables {
		doc.ValueTables = append(doc.ValueTables, types.ValueTableDocument{
			Name:   table.Name,
			Values: valueTexts(table.Values),
		})
	}
	for _, def := range network.Definitions {
		doc.Definitions = append(doc.Definitions, types.DefinitionDocument{
			Scope:   def.Scope,
			Name:    def.Name,
			Type:    def.Type,
			Min:     def.Min,
			Max:     def.Max,
			Enum:    def.Enum,
			Default: def.Default,
		})
	}
	return doc
}

func propertyTexts(properties types.PropertyMap) map[string]string {
	if len(properties) == 0 {
		return nil
	}
	out := make(map[string]string, len(properties))
	for name, value := range properties {
		out[name] = value.Text
	}
	return out
}

func valueTexts(values []types.ValueDescription) map[int64]string {
	if len(values) == 0 {
		return nil
	}
	out := make(map[int64]string, len(values))
	for _, value := range values {
		out[value.Value] = value.Description
	}
	return out
}

func ensureParent(path string) error {
	if path == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return nil
}

var (
	_ ports.NetworkWriterPort = NetworkFileAdapter{}
	_ ports.NetworkReaderPort = NetworkFileAdapter{}
)
