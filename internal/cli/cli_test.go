package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbcsheet/internal/app"
)

const workbook = `
Nodes:
  - NodeName: ECU1
Messages:
  - MessageID: "0x100"
    MessageName: Status
    DLC: 8
    Transmitter: ECU1
Signals:
  - MessageID: "0x100"
    SignalName: Speed
    StartBit: 0
    Length: 16
`

// ---------- Command tree tests ----------

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, name := range []string{"convert", "validate", "inspect"} {
		assert.Contains(t, names, name, "missing subcommand: %s", name)
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "dev", root.Version)
}

func TestConvertCommandFlags(t *testing.T) {
	cmd := newConvertCommand()
	for _, name := range []string{"source", "output", "report", "strict"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
	assert.Equal(t, "network.yaml", cmd.Flags().Lookup("output").DefValue)
}

func TestValidateCommandFlags(t *testing.T) {
	cmd := newValidateCommand()
	assert.NotNil(t, cmd.Flags().Lookup("source"))
	assert.NotNil(t, cmd.Flags().Lookup("report"))
	assert.NotNil(t, cmd.Flags().Lookup("strict"))
	assert.Nil(t, cmd.Flags().Lookup("output"))
}

func TestInspectCommandFlags(t *testing.T) {
	cmd := newInspectCommand()
	assert.NotNil(t, cmd.Flags().Lookup("network"))
}

// ---------- End-to-end command tests ----------

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeWorkbook(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConvertAndInspectCommands(t *testing.T) {
	source := writeWorkbook(t, workbook)
	output := filepath.Join(t.TempDir(), "network.yaml")

	out, err := runRoot(t, "convert", "--source", source, "--output", output)
	require.NoError(t, err)
	assert.Contains(t, out, ": success\n")
	assert.Contains(t, out, "network written: "+output)
	assert.FileExists(t, output)

	out, err = runRoot(t, "inspect", "--network", output)
	require.NoError(t, err)
	assert.Contains(t, out, "nodes: 1")
	assert.Contains(t, out, "- 0x100 Status: 1 signals, 0 properties")
}

func TestValidateCommandReportsFailure(t *testing.T) {
	source := writeWorkbook(t, workbook+`BA:
  - Scope: BU
    ScopeIdentifier: ECU1
    AttributeName: NodeLayer
    Value: 1
`)

	out, err := runRoot(t, "validate", "--source", source)
	require.Error(t, err)
	assert.Equal(t, 4, exitCodeForError(err))
	assert.Contains(t, out, "error: PropertyNotFound")
}

func TestConvertCommandStrictWarnings(t *testing.T) {
	source := writeWorkbook(t, workbook+`ExtraTransmitters:
  - MessageID: "0x7FF"
    AdditionalTransmitters: ECU1
`)
	output := filepath.Join(t.TempDir(), "network.yaml")

	_, err := runRoot(t, "convert", "--source", source, "--output", output)
	require.NoError(t, err)

	out, err := runRoot(t, "convert", "--source", source, "--output", output, "--strict")
	require.Error(t, err)
	assert.Equal(t, 3, exitCodeForError(err))
	assert.Contains(t, out, "warning: Warning: extra transmitters reference unknown message 0x7FF")
}

func TestConvertCommandRequiresSource(t *testing.T) {
	_, err := runRoot(t, "convert", "--source", "", "--output", filepath.Join(t.TempDir(), "network.yaml"))
	require.Error(t, err)
	assert.Equal(t, 2, exitCodeForError(err))
}

// ---------- Helper function tests ----------

func TestResolveString(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *cobra.Command
		value    string
		expected string
	}{
		{
			name:     "nil cmd with value returns value",
			cmd:      nil,
			value:    "explicit",
			expected: "explicit",
		},
		{
			name:     "nil cmd empty value returns empty",
			cmd:      nil,
			value:    "",
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveString(tt.cmd, tt.value, "test_key", "test-flag")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveBool(t *testing.T) {
	got := resolveBool(nil, true, "test_key", "test-flag")
	assert.True(t, got)

	got = resolveBool(nil, false, "test_key", "test-flag")
	assert.False(t, got)
}

func TestFlagChanged(t *testing.T) {
	assert.False(t, flagChanged(nil, "anything"), "nil cmd should return false")
	assert.False(t, flagChanged(nil, ""), "nil cmd with empty name")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	assert.False(t, flagChanged(cmd, "myflag"), "unchanged flag")
	assert.False(t, flagChanged(cmd, "nonexistent"), "nonexistent flag")
}

func TestFlagChangedAfterSet(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	require.NoError(t, cmd.Flags().Set("myflag", "val"))
	assert.True(t, flagChanged(cmd, "myflag"))
}

func TestResultError(t *testing.T) {
	assert.NoError(t, resultError(app.ConvertResult{Status: app.StatusSuccess}, true))
	assert.NoError(t, resultError(app.ConvertResult{Status: app.StatusSuccessWithWarnings, Warnings: []string{"w"}}, false))

	err := resultError(app.ConvertResult{Status: app.StatusSuccessWithWarnings, Warnings: []string{"w"}}, true)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.Equal(t, "warnings treated as errors: 1 warning(s)", errorMessage(err))

	err = resultError(app.ConvertResult{Status: app.StatusFailure, Errors: []string{"a", "b"}}, false)
	require.Error(t, err)
	assert.Equal(t, "conversion failed with 2 error(s)", errorMessage(err))
}

// ---------- Exit code tests ----------

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name: "invalid argument",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("bad input"),
			expected: 2,
		},
		{
			name: "warnings treated as errors",
			err: errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("warnings treated as errors: 2 warning(s)"),
			expected: 3,
		},
		{
			name: "conversion failed",
			err: errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("conversion failed with 1 error(s)"),
			expected: 4,
		},
		{
			name: "not found",
			err: errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("network file not found"),
			expected: 5,
		},
		{
			name: "internal error",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("boom"),
			expected: 5,
		},
		{
			name:     "unknown error",
			err:      assert.AnError,
			expected: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exitCodeForError(tt.err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name: "errbuilder with msg",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("something broke"),
			expected: "something broke",
		},
		{
			name:     "plain error",
			err:      assert.AnError,
			expected: assert.AnError.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errorMessage(tt.err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
