package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dbcsheet/internal/app"
)

const warningsAsErrorsMessage = "warnings treated as errors"

type convertOptions struct {
	Source string
	Output string
	Report string
	Strict bool
}

func newConvertCommand() *cobra.Command {
	opts := convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a workbook into a resolved network model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Source, "source", "", "Workbook path")
	cmd.Flags().StringVar(&opts.Output, "output", "network.yaml", "Network model output path")
	cmd.Flags().StringVar(&opts.Report, "report", "", "Diagnostics report path")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail when warnings were reported")
	_ = viper.BindPFlag("source", cmd.Flags().Lookup("source"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("report", cmd.Flags().Lookup("report"))
	_ = viper.BindPFlag("strict", cmd.Flags().Lookup("strict"))
	return cmd
}

func runConvert(ctx context.Context, cmd *cobra.Command, opts convertOptions) error {
	service := newAppService()
	output := resolveString(cmd, opts.Output, "output", "output")
	result, err := service.Convert(ctx, app.ConvertRequest{
		SourcePath: resolveString(cmd, opts.Source, "source", "source"),
		OutputPath: output,
		ReportPath: resolveString(cmd, opts.Report, "report", "report"),
	})
	if err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), result)
	if !result.Failed() {
		fmt.Fprintf(cmd.OutOrStdout(), "network written: %s\n", output)
	}
	return resultError(result, resolveBool(cmd, opts.Strict, "strict", "strict"))
}

func printResult(out io.Writer, result app.ConvertResult) {
	fmt.Fprintf(out, "run %s: %s\n", result.RunID, result.Status)
	for _, text := range result.Errors {
		fmt.Fprintf(out, "error: %s\n", text)
	}
	for _, text := range result.Warnings {
		fmt.Fprintf(out, "warning: %s\n", text)
	}
}

// resultError turns a failed or, in strict mode, warning-carrying result
// into a coded error so the process exit status reflects it.
func resultError(result app.ConvertResult, strict bool) error {
	if result.Failed() {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("conversion failed with %d error(s)", len(result.Errors)))
	}
	if strict && len(result.Warnings) > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%s: %d warning(s)", warningsAsErrorsMessage, len(result.Warnings)))
	}
	return nil
}
