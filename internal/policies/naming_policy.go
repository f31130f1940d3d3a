package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"dbcsheet/internal/types"
)

// PlaceholderNode is the transmitter/receiver name used for "no node".
const PlaceholderNode = "Vector__XXX"

var commentTypeAliases = map[string]types.CommentType{
	"bo":                   types.CommentTypeMessage,
	"bo_":                  types.CommentTypeMessage,
	"message":              types.CommentTypeMessage,
	"sg":                   types.CommentTypeSignal,
	"sg_":                  types.CommentTypeSignal,
	"signal":               types.CommentTypeSignal,
	"bu":                   types.CommentTypeNode,
	"bu_":                  types.CommentTypeNode,
	"node":                 types.CommentTypeNode,
	"ev":                   types.CommentTypeEnvironment,
	"ev_":                  types.CommentTypeEnvironment,
	"env":                  types.CommentTypeEnvironment,
	"environment":          types.CommentTypeEnvironment,
	"environment-variable": types.CommentTypeEnvironment,
	"environmentvariable":  types.CommentTypeEnvironment,
}

var scopeAliases = map[string]types.ScopeKind{
	"":            types.ScopeGlobal,
	"global":      types.ScopeGlobal,
	"network":     types.ScopeGlobal,
	"bu":          types.ScopeNode,
	"bu_":         types.ScopeNode,
	"node":        types.ScopeNode,
	"bo":          types.ScopeMessage,
	"bo_":         types.ScopeMessage,
	"message":     types.ScopeMessage,
	"sg":          types.ScopeSignal,
	"sg_":         types.ScopeSignal,
	"signal":      types.ScopeSignal,
	"ev":          types.ScopeEnvironment,
	"ev_":         types.ScopeEnvironment,
	"env":         types.ScopeEnvironment,
	"environment": types.ScopeEnvironment,
}

var valueTypes = map[string]types.ValueType{
	"int":    types.ValueTypeInt,
	"hex":    types.ValueTypeHex,
	"float":  types.ValueTypeFloat,
	"string": types.ValueTypeString,
	"enum":   types.ValueTypeEnum,
}

var envVarTypes = map[string]types.EnvVarType{
	"":       types.EnvVarTypeInt,
	"0":      types.EnvVarTypeInt,
	"int":    types.EnvVarTypeInt,
	"1":      types.EnvVarTypeFloat,
	"float":  types.EnvVarTypeFloat,
	"2":      types.EnvVarTypeString,
	"string": types.EnvVarTypeString,
	"data":   types.EnvVarTypeData,
}

var signalValueTypes = map[string]types.SignalValueType{
	"":        types.SignalValueInteger,
	"0":       types.SignalValueInteger,
	"int":     types.SignalValueInteger,
	"integer": types.SignalValueInteger,
	"1":       types.SignalValueFloat,
	"float":   types.SignalValueFloat,
	"2":       types.SignalValueDouble,
	"double":  types.SignalValueDouble,
}

var envAccessTypes = map[string]types.EnvAccess{
	"":             types.EnvAccessUnrestricted,
	"0":            types.EnvAccessUnrestricted,
	"unrestricted": types.EnvAccessUnrestricted,
	"1":            types.EnvAccessRead,
	"read":         types.EnvAccessRead,
	"2":            types.EnvAccessWrite,
	"write":        types.EnvAccessWrite,
	"3":            types.EnvAccessReadWrite,
	"readwrite":    types.EnvAccessReadWrite,
	"read_write":   types.EnvAccessReadWrite,
}

// NormalizeCommentType maps a free-text comment type code onto its
// canonical short form. Unrecognized codes map to CommentTypeUnknown.
func NormalizeCommentType(code string) types.CommentType {
	return commentTypeAliases[strings.ToLower(strings.TrimSpace(code))]
}

func ParseScopeKind(value string) (types.ScopeKind, error) {
	if kind, ok := scopeAliases[strings.ToLower(strings.TrimSpace(value))]; ok {
		return kind, nil
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("unknown scope: %s", value))
}

func ParseValueType(value string) (types.ValueType, error) {
	if kind, ok := valueTypes[strings.ToLower(strings.TrimSpace(value))]; ok {
		return kind, nil
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("unknown property type: %s", value))
}

func ParseEnvVarType(value string) (types.EnvVarType, error) {
	if kind, ok := envVarTypes[strings.ToLower(strings.TrimSpace(value))]; ok {
		return kind, nil
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("unknown environment variable type: %s", value))
}

func ParseSignalValueType(value string) (types.SignalValueType, error) {
	if kind, ok := signalValueTypes[strings.ToLower(strings.TrimSpace(value))]; ok {
		return kind, nil
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("unknown signal value type: %s", value))
}

// ParseEnvAccess accepts the access names and the network file form
// DUMMY_NODE_VECTORn, where an 800 prefix on n only marks string variables.
func ParseEnvAccess(value string) (types.EnvAccess, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	if vector, ok := strings.CutPrefix(key, "dummy_node_vector"); ok {
		key = strings.TrimPrefix(vector, "800")
	}
	if access, ok := envAccessTypes[key]; ok {
		return access, nil
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("unknown environment variable access: %s", value))
}

// IsPlaceholderNode reports whether name stands for "no node" and should
// not be checked against the node list.
func IsPlaceholderNode(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), PlaceholderNode)
}
