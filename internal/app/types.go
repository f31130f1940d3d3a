package app

import (
	"dbcsheet/internal/core"
	"dbcsheet/internal/diag"
	"dbcsheet/internal/types"
)

type Status string

const (
	StatusSuccess             Status = "success"
	StatusSuccessWithWarnings Status = "success_with_warnings"
	StatusFailure             Status = "failure"
)

type ConvertRequest struct {
	SourcePath string
	OutputPath string
	ReportPath string
}

type CheckRequest struct {
	SourcePath string
	ReportPath string
}

// ConvertResult is the outcome of one conversion run. Network is nil
// when Status is StatusFailure.
type ConvertResult struct {
	RunID       string
	Status      Status
	Network     *types.Network
	Resolution  core.ResolveReport
	Errors      []string
	Warnings    []string
	Diagnostics []diag.Diagnostic
}

func (r ConvertResult) Failed() bool {
	return r.Status == StatusFailure
}

type InspectRequest struct {
	NetworkPath string
}

type InspectMessageSummary struct {
	ID         string
	Name       string
	Signals    int
	Properties int
}

type InspectResult struct {
	RunID                string
	Nodes                int
	Messages             []InspectMessageSummary
	Signals              int
	EnvironmentVariables int
	ValueTables          int
	Definitions          int
	GlobalProperties     []string
}
