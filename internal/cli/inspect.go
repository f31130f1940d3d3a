package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dbcsheet/internal/app"
)

type inspectOptions struct {
	Network string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a converted network model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Network, "network", "network.yaml", "Network model path")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("network"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		NetworkPath: resolveString(cmd, opts.Network, "output", "network"),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run id: %s\n", result.RunID)
	fmt.Fprintf(out, "nodes: %d\n", result.Nodes)
	fmt.Fprintf(out, "messages: %d (signals: %d)\n", len(result.Messages), result.Signals)
	for _, msg := range result.Messages {
		fmt.Fprintf(out, "- %s %s: %d signals, %d properties\n", msg.ID, msg.Name, msg.Signals, msg.Properties)
	}
	fmt.Fprintf(out, "environment variables: %d\n", result.EnvironmentVariables)
	fmt.Fprintf(out, "value tables: %d\n", result.ValueTables)
	fmt.Fprintf(out, "property definitions: %d\n", result.Definitions)
	if len(result.GlobalProperties) > 0 {
		fmt.Fprintf(out, "global properties: %s\n", strings.Join(result.GlobalProperties, ", "))
	}
	return nil
}
