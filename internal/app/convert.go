package app

import (
	"context"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"dbcsheet/internal/core"
	"dbcsheet/internal/diag"
	"dbcsheet/internal/types"
)

// Convert reads the workbook at SourcePath, resolves it and writes the
// network model to OutputPath. Conversion problems are reported in the
// result; only bad arguments and report I/O come back as errors.
func (s Service) Convert(ctx context.Context, req ConvertRequest) (ConvertResult, error) {
	sourcePath := strings.TrimSpace(req.SourcePath)
	if sourcePath == "" {
		return ConvertResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source path is required")
	}
	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath == "" {
		return ConvertResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is required")
	}

	runID := s.runID()
	sink := diag.NewCollector()
	network, resolution := s.resolve(ctx, runID, sourcePath, sink)
	if network != nil && !sink.HasErrors() {
		s.write(ctx, outputPath, *network, sink)
	}
	result := classify(runID, sink, network, resolution)
	if err := s.writeReport(strings.TrimSpace(req.ReportPath), sourcePath, result); err != nil {
		return result, err
	}
	log.Ctx(ctx).Info().
		Str("run_id", runID).
		Str("source", sourcePath).
		Str("output", outputPath).
		Str("status", string(result.Status)).
		Int("errors", len(result.Errors)).
		Int("warnings", len(result.Warnings)).
		Interface("applied_by_scope", result.Resolution.AppliedByScope()).
		Msg("conversion finished")
	return result, nil
}

// Check runs the same pipeline as Convert without writing the network.
func (s Service) Check(ctx context.Context, req CheckRequest) (ConvertResult, error) {
	sourcePath := strings.TrimSpace(req.SourcePath)
	if sourcePath == "" {
		return ConvertResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source path is required")
	}
	runID := s.runID()
	sink := diag.NewCollector()
	network, resolution := s.resolve(ctx, runID, sourcePath, sink)
	result := classify(runID, sink, network, resolution)
	if err := s.writeReport(strings.TrimSpace(req.ReportPath), sourcePath, result); err != nil {
		return result, err
	}
	log.Ctx(ctx).Info().
		Str("run_id", runID).
		Str("source", sourcePath).
		Str("status", string(result.Status)).
		Msg("check finished")
	return result, nil
}

// resolve loads, resolves and assembles one staging model. A panic
// anywhere in the pipeline ends the run with an UnexpectedError.
func (s Service) resolve(ctx context.Context, runID string, sourcePath string, sink diag.Sink) (network *types.Network, resolution core.ResolveReport) {
	defer func() {
		if recovered := recover(); recovered != nil {
			sink.Report(diag.UnexpectedError("conversion", recovered))
			network = nil
			resolution = core.ResolveReport{}
		}
	}()
	staging, err := s.Source.Load(ctx, sourcePath, sink)
	if err != nil {
		sink.Report(diag.New(diag.KindSheetReadFailed, sourcePath, err.Error()))
		return nil, core.ResolveReport{}
	}
	resolution = core.NewEngine(staging, sink).Resolve(ctx)
	assembled := core.Assemble(ctx, staging, runID)
	return &assembled, resolution
}

func (s Service) write(ctx context.Context, outputPath string, network types.Network, sink diag.Sink) {
	defer func() {
		if recovered := recover(); recovered != nil {
			sink.Report(diag.UnexpectedError("serializer", recovered))
		}
	}()
	if err := s.Writer.WriteNetwork(ctx, outputPath, network); err != nil {
		sink.Report(diag.UnexpectedError("serializer", err))
	}
}

func (s Service) writeReport(path string, sourcePath string, result ConvertResult) error {
	if path == "" || s.Reports == nil {
		return nil
	}
	return s.Reports.WriteReport(path, types.DiagnosticsReport{
		RunID:     result.RunID,
		Source:    sourcePath,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
		Status:    string(result.Status),
		Errors:    result.Errors,
		Warnings:  result.Warnings,
	})
}

func classify(runID string, sink *diag.Collector, network *types.Network, resolution core.ResolveReport) ConvertResult {
	result := ConvertResult{
		RunID:       runID,
		Resolution:  resolution,
		Errors:      sink.Errors(),
		Warnings:    sink.Warnings(),
		Diagnostics: sink.Diagnostics(),
	}
	switch {
	case sink.HasErrors() || network == nil:
		result.Status = StatusFailure
	case sink.HasWarnings():
		result.Status = StatusSuccessWithWarnings
		result.Network = network
	default:
		result.Status = StatusSuccess
		result.Network = network
	}
	return result
}
