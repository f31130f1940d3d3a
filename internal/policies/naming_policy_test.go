package policies

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbcsheet/internal/types"
)

func TestNormalizeCommentTypeIsCaseInsensitive(t *testing.T) {
	for _, code := range []string{"bo", "Bo", "BO", " bO ", "Message"} {
		if diff := cmp.Diff(types.CommentTypeMessage, NormalizeCommentType(code)); diff != "" {
			t.Fatalf("unexpected comment type for %q (-want +got):\n%s", code, diff)
		}
	}
	assert.Equal(t, types.CommentTypeSignal, NormalizeCommentType("SG"))
	assert.Equal(t, types.CommentTypeNode, NormalizeCommentType("bu"))
	assert.Equal(t, types.CommentTypeEnvironment, NormalizeCommentType("EV"))
	assert.Equal(t, types.CommentTypeUnknown, NormalizeCommentType("VAL_"))
}

func TestParseScopeKind(t *testing.T) {
	tests := []struct {
		value    string
		expected types.ScopeKind
	}{
		{"", types.ScopeGlobal},
		{"GLOBAL", types.ScopeGlobal},
		{"BU_", types.ScopeNode},
		{"node", types.ScopeNode},
		{"BO", types.ScopeMessage},
		{"Signal", types.ScopeSignal},
		{"EV", types.ScopeEnvironment},
		{"ENV", types.ScopeEnvironment},
	}
	for _, tt := range tests {
		got, err := ParseScopeKind(tt.value)
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.expected, got, tt.value)
	}

	_, err := ParseScopeKind("VAL_")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestParseValueTypeAndEnvVarType(t *testing.T) {
	kind, err := ParseValueType("enum")
	require.NoError(t, err)
	assert.Equal(t, types.ValueTypeEnum, kind)
	_, err = ParseValueType("bool")
	require.Error(t, err)

	envType, err := ParseEnvVarType("1")
	require.NoError(t, err)
	assert.Equal(t, types.EnvVarTypeFloat, envType)
	envType, err = ParseEnvVarType("")
	require.NoError(t, err)
	assert.Equal(t, types.EnvVarTypeInt, envType)
}

func TestParseSignalValueType(t *testing.T) {
	tests := []struct {
		in   string
		want types.SignalValueType
	}{
		{in: "", want: types.SignalValueInteger},
		{in: "Integer", want: types.SignalValueInteger},
		{in: "1", want: types.SignalValueFloat},
		{in: "FLOAT", want: types.SignalValueFloat},
		{in: " double ", want: types.SignalValueDouble},
	}
	for _, tt := range tests {
		got, err := ParseSignalValueType(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseSignalValueType("half")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestParseEnvAccess(t *testing.T) {
	tests := []struct {
		in   string
		want types.EnvAccess
	}{
		{in: "", want: types.EnvAccessUnrestricted},
		{in: "DUMMY_NODE_VECTOR0", want: types.EnvAccessUnrestricted},
		{in: "read", want: types.EnvAccessRead},
		{in: "DUMMY_NODE_VECTOR2", want: types.EnvAccessWrite},
		{in: "DUMMY_NODE_VECTOR8003", want: types.EnvAccessReadWrite},
		{in: "ReadWrite", want: types.EnvAccessReadWrite},
	}
	for _, tt := range tests {
		got, err := ParseEnvAccess(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseEnvAccess("DUMMY_NODE_VECTOR7")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestIsPlaceholderNode(t *testing.T) {
	assert.True(t, IsPlaceholderNode("Vector__XXX"))
	assert.True(t, IsPlaceholderNode("vector__xxx"))
	assert.False(t, IsPlaceholderNode("ECU1"))
}
