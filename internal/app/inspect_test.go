package app

import (
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectApp(t *testing.T) {
	service := testService()
	output := filepath.Join(t.TempDir(), "network.yaml")
	converted, err := service.Convert(t.Context(), ConvertRequest{
		SourcePath: writeSource(t, cleanWorkbook),
		OutputPath: output,
	})
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, converted.Status)

	result, err := service.Inspect(InspectRequest{NetworkPath: output})
	require.NoError(t, err)
	want := InspectResult{
		RunID:       "run-test",
		Nodes:       1,
		Signals:     1,
		Definitions: 1,
		Messages: []InspectMessageSummary{
			{ID: "0x100", Name: "Status", Signals: 1, Properties: 1},
		},
		GlobalProperties: []string{},
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("unexpected inspect result (-want +got):\n%s", diff)
	}
}

func TestInspectErrors(t *testing.T) {
	service := testService()

	_, err := service.Inspect(InspectRequest{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = service.Inspect(InspectRequest{NetworkPath: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}
