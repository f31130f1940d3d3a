package adapters

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbcsheet/internal/types"
)

func sampleNetwork() types.Network {
	msg := &types.Message{
		ID:                     0x1A0,
		Name:                   "Status",
		DLC:                    8,
		Transmitter:            "ECU1",
		AdditionalTransmitters: []string{"ECU2"},
		Properties: types.PropertyMap{
			"GenMsgCycleTime": {Name: "GenMsgCycleTime", Type: types.ValueTypeInt, Int: 100, Text: "100"},
		},
	}
	msg.Signals = []*types.Signal{{
		Name:      "Mode",
		Parent:    msg,
		StartBit:  0,
		Length:    2,
		ByteOrder: types.ByteOrderIntel,
		Factor:    1,
		Values:    []types.ValueDescription{{Value: 0, Description: "Idle"}, {Value: 1, Description: "Run"}},
		Comment:   "operating mode",
	}}
	return types.Network{
		RunID:    "run-1",
		Nodes:    []*types.Node{{Name: "ECU1", Comment: "main"}},
		Messages: []*types.Message{msg},
		GlobalProperties: types.PropertyMap{
			"BusType": {Name: "BusType", Type: types.ValueTypeString, Text: "CAN"},
		},
		Definitions: []types.PropertyDefinition{
			{Scope: types.ScopeMessage, Name: "GenMsgCycleTime", Type: types.ValueTypeInt},
		},
	}
}

func TestNetworkFileAdapterWritesAndReads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "network.yaml")
	adapter := NewNetworkFileAdapter()

	require.NoError(t, adapter.WriteNetwork(context.Background(), path, sampleNetwork()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "0x1A0"))

	doc, err := adapter.ReadNetwork(path)
	require.NoError(t, err)
	if diff := cmp.Diff(NetworkToDocument(sampleNetwork()), doc); diff != "" {
		t.Fatalf("unexpected document (-want +got):\n%s", diff)
	}
	require.Len(t, doc.Messages, 1)
	assert.Equal(t, map[string]string{"GenMsgCycleTime": "100"}, doc.Messages[0].Properties)
	assert.Equal(t, map[int64]string{0: "Idle", 1: "Run"}, doc.Messages[0].Signals[0].Values)
	assert.Equal(t, "CAN", doc.GlobalProperties["BusType"])
}

func TestNetworkFileAdapterErrors(t *testing.T) {
	adapter := NewNetworkFileAdapter()

	err := adapter.WriteNetwork(context.Background(), "", types.Network{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = adapter.ReadNetwork(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("messages: {"), 0644))
	_, err = adapter.ReadNetwork(bad)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestReportFileAdapterWritesReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "diagnostics.yaml")
	report := types.DiagnosticsReport{
		RunID:    "run-1",
		Source:   "network.yaml",
		Status:   "success_with_warnings",
		Warnings: []string{"Warning: signals reference unknown message 0x7FF; 1 signal(s) dropped"},
	}

	require.NoError(t, NewReportFileAdapter().WriteReport(path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "status: success_with_warnings")
	assert.Contains(t, string(data), "unknown message 0x7FF")
	assert.NotContains(t, string(data), "errors:")
}
