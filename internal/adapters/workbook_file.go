package adapters

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"dbcsheet/internal/diag"
	"dbcsheet/internal/policies"
	"dbcsheet/internal/ports"
	"dbcsheet/internal/shared"
	"dbcsheet/internal/types"
)

const (
	SheetNodes                = "Nodes"
	SheetValueTables          = "ValueTables"
	SheetMessages             = "Messages"
	SheetSignals              = "Signals"
	SheetExtraTransmitters    = "ExtraTransmitters"
	SheetEnvironmentVariables = "EnvironmentVariables"
	SheetPropertyDefinitions  = "BA_DEF"
	SheetPropertyAssignments  = "BA"
	SheetComments             = "Comments"
)

var requiredSheets = []string{SheetNodes, SheetMessages, SheetSignals}

// Workbook is the decoded source file: sheet name to rows, header row
// excluded.
type Workbook map[string][]Row

// WorkbookFileAdapter reads a YAML workbook and turns its rows into
// typed staging records, reporting row-level problems to the sink.
type WorkbookFileAdapter struct {
	validate *validator.Validate
}

func NewWorkbookFileAdapter() WorkbookFileAdapter {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("col")
	})
	return WorkbookFileAdapter{validate: validate}
}

func (a WorkbookFileAdapter) Load(ctx context.Context, path string, sink diag.Sink) (*types.Staging, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("workbook file not found").
			WithCause(err)
	}
	var book Workbook
	if err := yaml.Unmarshal(data, &book); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse workbook yaml").
			WithCause(err)
	}
	staging := a.Stage(ctx, book, sink)
	log.Ctx(ctx).Debug().
		Str("path", path).
		Int("nodes", len(staging.Nodes)).
		Int("messages", len(staging.Messages)).
		Int("assignments", len(staging.Assignments)).
		Msg("workbook loaded")
	return staging, nil
}

// Stage converts decoded sheets into a populated staging model.
func (a WorkbookFileAdapter) Stage(ctx context.Context, book Workbook, sink diag.Sink) *types.Staging {
	if sink == nil {
		sink = diag.Discard{}
	}
	for _, sheet := range requiredSheets {
		rows, ok := book[sheet]
		if !ok {
			sink.Report(diag.New(diag.KindSheetNotFound, sheet, "required sheet is missing"))
			continue
		}
		if len(rows) == 0 {
			sink.Report(diag.New(diag.KindSheetEmpty, sheet, "sheet has no rows"))
		}
	}

	staging := types.NewStaging()
	r := rowReader{adapter: a, sink: sink}
	r.each(book, SheetNodes, func(row Row, n int) { r.node(staging, row, n) })
	r.each(book, SheetValueTables, func(row Row, n int) { r.valueTable(staging, row, n) })
	r.each(book, SheetMessages, func(row Row, n int) { r.message(staging, row, n) })
	signalNames := map[uint32]map[string]struct{}{}
	r.each(book, SheetSignals, func(row Row, n int) { r.signal(staging, signalNames, row, n) })
	r.each(book, SheetExtraTransmitters, func(row Row, n int) { r.extraTransmitters(staging, row, n) })
	r.each(book, SheetEnvironmentVariables, func(row Row, n int) { r.environmentVariable(staging, row, n) })
	r.each(book, SheetPropertyDefinitions, func(row Row, n int) { r.definition(staging, row, n) })
	r.each(book, SheetPropertyAssignments, func(row Row, n int) { r.assignment(staging, row, n) })
	seenComments := map[string]struct{}{}
	r.each(book, SheetComments, func(row Row, n int) { r.comment(staging, seenComments, row, n) })
	log.Ctx(ctx).Debug().Int("sheets", len(book)).Msg("workbook staged")
	return staging
}

type rowReader struct {
	adapter WorkbookFileAdapter
	sink    diag.Sink
	sheet   string
	row     int
}

// each visits the non-empty rows of a sheet. Row numbers count the
// header as row 1.
func (r *rowReader) each(book Workbook, sheet string, visit func(row Row, n int)) {
	for i, row := range book[sheet] {
		r.sheet = sheet
		r.row = i + 2
		if row.Empty() {
			r.report(diag.New(diag.KindRowEmpty, "", "row has no values"))
			continue
		}
		visit(row, r.row)
	}
}

func (r *rowReader) report(d diag.Diagnostic) {
	r.sink.Report(d.At(r.sheet, r.row))
}

func (r *rowReader) fieldError(kind diag.Kind, column string, err error) {
	r.report(diag.New(kind, column, err.Error()))
}

// valid runs struct-tag validation on a row and reports each violation.
func (r *rowReader) valid(row any) bool {
	err := r.adapter.validate.Struct(row)
	if err == nil {
		return true
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		r.report(diag.UnexpectedError("validation", err))
		return false
	}
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			r.report(diag.New(diag.KindFieldRequired, fe.Field(), "value is required"))
		case "number":
			r.report(diag.New(diag.KindFieldInvalidInt, fe.Field(), fmt.Sprintf("%q is not a non-negative integer", fe.Value())))
		case "max", "min":
			r.report(diag.New(diag.KindFieldOutOfRange, fe.Field(), fmt.Sprintf("must satisfy %s=%s", fe.Tag(), fe.Param())))
		default:
			r.report(diag.New(diag.KindFieldInvalidFormat, fe.Field(), fmt.Sprintf("validation failed (%s)", fe.Tag())))
		}
	}
	return false
}

func (r *rowReader) messageID(column string, value string) (uint32, bool) {
	id, err := shared.ParseHexID(value)
	if err != nil {
		r.fieldError(diag.KindFieldInvalidHex, column, err)
		return 0, false
	}
	return id, true
}

type nodeRow struct {
	Name string `col:"NodeName" validate:"required"`
}

func (r *rowReader) node(staging *types.Staging, row Row, _ int) {
	rec := nodeRow{Name: row.Text("NodeName")}
	if !r.valid(rec) {
		return
	}
	for _, existing := range staging.Nodes {
		if existing.Name == rec.Name {
			r.report(diag.New(diag.KindDuplicateNode, rec.Name, "node already defined"))
			return
		}
	}
	staging.AddNode(&types.Node{Name: rec.Name})
}

type valueTableRow struct {
	Name   string `col:"TableName" validate:"required"`
	Values string `col:"Values"`
}

func (r *rowReader) valueTable(staging *types.Staging, row Row, _ int) {
	rec := valueTableRow{Name: row.Text("TableName"), Values: firstNonEmpty(row, "Values", "Values (format: key:\"value\" key:\"value\")")}
	if !r.valid(rec) {
		return
	}
	for _, existing := range staging.ValueTables {
		if existing.Name == rec.Name {
			r.report(diag.New(diag.KindDuplicateValueTable, rec.Name, "value table already defined"))
			return
		}
	}
	values, err := parseValueDescriptions(rec.Values)
	if err != nil {
		r.fieldError(diag.KindValueTableInvalid, "Values", err)
		return
	}
	staging.ValueTables = append(staging.ValueTables, types.ValueTable{Name: rec.Name, Values: values})
}

type messageRow struct {
	ID          string `col:"MessageID" validate:"required"`
	Name        string `col:"MessageName" validate:"required"`
	DLC         string `col:"DLC" validate:"omitempty,number"`
	Transmitter string `col:"Transmitter"`
	Extended    string `col:"IsExtended"`
	Comment     string `col:"Comment"`
}

func (r *rowReader) message(staging *types.Staging, row Row, _ int) {
	rec := messageRow{
		ID:          row.Text("MessageID"),
		Name:        row.Text("MessageName"),
		DLC:         row.Text("DLC"),
		Transmitter: row.Text("Transmitter"),
		Extended:    row.Text("IsExtended"),
		Comment:     row.Text("Comment"),
	}
	if !r.valid(rec) {
		return
	}
	id, ok := r.messageID("MessageID", rec.ID)
	if !ok {
		return
	}
	dlc, err := parseOptionalInt(rec.DLC)
	if err != nil {
		r.fieldError(diag.KindFieldInvalidInt, "DLC", err)
		return
	}
	if dlc > 64 {
		r.report(diag.New(diag.KindFieldOutOfRange, "DLC", fmt.Sprintf("%d exceeds 64 bytes", dlc)))
		return
	}
	extended, err := parseBool(rec.Extended)
	if err != nil {
		r.fieldError(diag.KindFieldInvalidBool, "IsExtended", err)
		return
	}
	if !extended && id > 0x7FF {
		extended = true
		r.report(diag.Info("message %s exceeds 11 bits, marked extended", shared.FormatHexID(id)))
	}
	msg := &types.Message{
		ID:          id,
		Name:        rec.Name,
		DLC:         dlc,
		Transmitter: rec.Transmitter,
		Extended:    extended,
		Comment:     rec.Comment,
	}
	if !staging.AddMessage(msg) {
		r.report(diag.New(diag.KindDuplicateMessage, shared.FormatHexID(id), "message id already defined"))
	}
}

type signalRow struct {
	MessageID    string `col:"MessageID" validate:"required"`
	Name         string `col:"SignalName" validate:"required"`
	StartBit     string `col:"StartBit" validate:"required,number"`
	Length       string `col:"Length" validate:"required,number"`
	ByteOrder    string `col:"ByteOrder@Sign"`
	FactorOffset string `col:"Factor,Offset"`
	MinMax       string `col:"Min|Max"`
	Unit         string `col:"Unit"`
	Receivers    string `col:"Receivers"`
	Comment      string `col:"Comment"`
	Multiplexing string `col:"Multiplexing"`
	InitialValue string `col:"InitialValue"`
	ValueType    string `col:"ValueType"`
	SendType     string `col:"SendType"`
	ValueTable   string `col:"ValueTable"`
}

func (r *rowReader) signal(staging *types.Staging, names map[uint32]map[string]struct{}, row Row, _ int) {
	rec := signalRow{
		MessageID:    row.Text("MessageID"),
		Name:         row.Text("SignalName"),
		StartBit:     row.Text("StartBit"),
		Length:       row.Text("Length"),
		ByteOrder:    row.Text("ByteOrder@Sign"),
		FactorOffset: row.Text("Factor,Offset"),
		MinMax:       row.Text("Min|Max"),
		Unit:         row.Text("Unit"),
		Receivers:    row.Text("Receivers"),
		Comment:      row.Text("Comment"),
		Multiplexing: row.Text("Multiplexing"),
		InitialValue: row.Text("InitialValue"),
		ValueType:    row.Text("ValueType"),
		SendType:     row.Text("SendType"),
		ValueTable:   row.Text("ValueTable"),
	}
	if !r.valid(rec) {
		return
	}
	id, ok := r.messageID("MessageID", rec.MessageID)
	if !ok {
		return
	}
	startBit, err := parseOptionalInt(rec.StartBit)
	if err != nil {
		r.fieldError(diag.KindFieldInvalidInt, "StartBit", err)
		return
	}
	length, err := parseOptionalInt(rec.Length)
	if err != nil {
		r.fieldError(diag.KindFieldInvalidInt, "Length", err)
		return
	}
	if length < 1 || length > 64 || startBit > 511 {
		r.report(diag.New(diag.KindFieldOutOfRange, "Length", fmt.Sprintf("start bit %d length %d outside a 64 byte frame", startBit, length)))
		return
	}
	order, signed := types.ByteOrderIntel, false
	if rec.ByteOrder != "" {
		order, signed, err = parseByteOrderSign(rec.ByteOrder)
		if err != nil {
			r.fieldError(diag.KindByteOrderInvalid, "ByteOrder@Sign", err)
			return
		}
	}
	factor, offset, err := parsePair(rec.FactorOffset, "(", ",", ")", 1, 0)
	if err != nil {
		r.fieldError(diag.KindFieldInvalidFloat, "Factor,Offset", err)
		return
	}
	minimum, maximum, err := parsePair(rec.MinMax, "[", "|", "]", 0, 0)
	if err != nil {
		r.fieldError(diag.KindFieldInvalidFloat, "Min|Max", err)
		return
	}
	if !validMultiplexing(rec.Multiplexing) {
		r.report(diag.New(diag.KindMultiplexInvalid, "Multiplexing", fmt.Sprintf("%q must be M, mN or mNM", rec.Multiplexing)))
		return
	}
	initial, err := parseOptionalFloatPtr(rec.InitialValue)
	if err != nil {
		r.fieldError(diag.KindFieldInvalidFloat, "InitialValue", err)
		return
	}
	valueType, err := policies.ParseSignalValueType(rec.ValueType)
	if err != nil {
		r.fieldError(diag.KindFieldInvalidEnum, "ValueType", err)
		return
	}
	sig := &types.Signal{
		Name:         rec.Name,
		StartBit:     startBit,
		Length:       length,
		ByteOrder:    order,
		Signed:       signed,
		Factor:       factor,
		Offset:       offset,
		Min:          minimum,
		Max:          maximum,
		Unit:         rec.Unit,
		Receivers:    shared.SplitList(rec.Receivers),
		Multiplexing: rec.Multiplexing,
		InitialValue: initial,
		ValueType:    valueType,
		SendType:     rec.SendType,
		Comment:      rec.Comment,
	}
	if sig.ValueTable, sig.Values, ok = r.valueTableCell(rec.ValueTable); !ok {
		return
	}

	if names[id] == nil {
		names[id] = map[string]struct{}{}
	}
	if _, exists := names[id][sig.Name]; exists {
		r.report(diag.New(diag.KindDuplicateSignal, sig.Name, fmt.Sprintf("signal already defined in message %s", shared.FormatHexID(id))))
		return
	}
	names[id][sig.Name] = struct{}{}
	staging.AddSignal(id, sig)
}

type extraTransmitterRow struct {
	MessageID    string `col:"MessageID" validate:"required"`
	Transmitters string `col:"AdditionalTransmitters" validate:"required"`
}

func (r *rowReader) extraTransmitters(staging *types.Staging, row Row, _ int) {
	rec := extraTransmitterRow{MessageID: row.Text("MessageID"), Transmitters: row.Text("AdditionalTransmitters")}
	if !r.valid(rec) {
		return
	}
	id, ok := r.messageID("MessageID", rec.MessageID)
	if !ok {
		return
	}
	staging.SetExtraTransmitters(id, shared.SplitList(rec.Transmitters))
}

type envVarRow struct {
	Name       string `col:"Name" validate:"required"`
	Type       string `col:"Type"`
	Min        string `col:"Min"`
	Max        string `col:"Max"`
	Default    string `col:"Default"`
	Unit       string `col:"Unit"`
	Nodes      string `col:"Nodes"`
	Access     string `col:"AccessType"`
	DataLength string `col:"DataLength" validate:"omitempty,number"`
	ValueTable string `col:"ValueTable"`
	Comment    string `col:"Comment"`
}

func (r *rowReader) environmentVariable(staging *types.Staging, row Row, _ int) {
	rec := envVarRow{
		Name:       row.Text("Name"),
		Type:       row.Text("Type"),
		Min:        row.Text("Min"),
		Max:        row.Text("Max"),
		Default:    row.Text("Default"),
		Unit:       row.Text("Unit"),
		Nodes:      row.Text("Nodes"),
		Access:     row.Text("AccessType"),
		DataLength: row.Text("DataLength"),
		ValueTable: row.Text("ValueTable"),
		Comment:    row.Text("Comment"),
	}
	if !r.valid(rec) {
		return
	}
	envType, err := policies.ParseEnvVarType(rec.Type)
	if err != nil {
		r.fieldError(diag.KindFieldInvalidEnum, "Type", err)
		return
	}
	minimum, err := parseOptionalFloat(rec.Min)
	if err != nil {
		r.fieldError(diag.KindFieldInvalidFloat, "Min", err)
		return
	}
	maximum, err := parseOptionalFloat(rec.Max)
	if err != nil {
		r.fieldError(diag.KindFieldInvalidFloat, "Max", err)
		return
	}
	access, err := policies.ParseEnvAccess(rec.Access)
	if err != nil {
		r.fieldError(diag.KindFieldInvalidEnum, "AccessType", err)
		return
	}
	dataLength, err := parseOptionalInt(rec.DataLength)
	if err != nil {
		r.fieldError(diag.KindFieldInvalidInt, "DataLength", err)
		return
	}
	tableName, values, ok := r.valueTableCell(rec.ValueTable)
	if !ok {
		return
	}
	for _, existing := range staging.EnvironmentVariables {
		if existing.Name == rec.Name {
			r.report(diag.New(diag.KindDuplicateEnvVar, rec.Name, "environment variable already defined"))
			return
		}
	}
	staging.AddEnvironmentVariable(&types.EnvironmentVariable{
		Name:       rec.Name,
		Type:       envType,
		Min:        minimum,
		Max:        maximum,
		Default:    rec.Default,
		Unit:       rec.Unit,
		Access:     access,
		Nodes:      shared.SplitList(rec.Nodes),
		DataLength: dataLength,
		ValueTable: tableName,
		Values:     values,
		Comment:    rec.Comment,
	})
}

// valueTableCell splits a ValueTable cell into a table reference or inline
// value descriptions.
func (r *rowReader) valueTableCell(cell string) (string, []types.ValueDescription, bool) {
	if !isInlineValueTable(cell) {
		return cell, nil, true
	}
	values, err := parseValueDescriptions(cell)
	if err != nil {
		r.fieldError(diag.KindValueTableInvalid, "ValueTable", err)
		return "", nil, false
	}
	return "", values, true
}

type definitionRow struct {
	Scope   string `col:"Scope"`
	Name    string `col:"PropertyName" validate:"required"`
	Type    string `col:"Type" validate:"required"`
	Min     string `col:"Min"`
	Max     string `col:"Max"`
	Enum    string `col:"EnumValues"`
	Default string `col:"Default"`
}

func (r *rowReader) definition(staging *types.Staging, row Row, _ int) {
	rec := definitionRow{
		Scope:   row.Text("Scope"),
		Name:    row.Text("PropertyName"),
		Type:    row.Text("Type"),
		Min:     row.Text("Min"),
		Max:     row.Text("Max"),
		Enum:    row.Text("EnumValues"),
		Default: row.Text("Default"),
	}
	if !r.valid(rec) {
		return
	}
	scope, err := policies.ParseScopeKind(rec.Scope)
	if err != nil {
		r.fieldError(diag.KindScopeUnknown, "Scope", err)
		return
	}
	valueType, err := policies.ParseValueType(rec.Type)
	if err != nil {
		r.fieldError(diag.KindFieldInvalidEnum, "Type", err)
		return
	}
	minimum, err := parseOptionalFloatPtr(rec.Min)
	if err != nil {
		r.fieldError(diag.KindFieldInvalidFloat, "Min", err)
		return
	}
	maximum, err := parseOptionalFloatPtr(rec.Max)
	if err != nil {
		r.fieldError(diag.KindFieldInvalidFloat, "Max", err)
		return
	}
	def := types.PropertyDefinition{
		Scope:   scope,
		Name:    rec.Name,
		Type:    valueType,
		Min:     minimum,
		Max:     maximum,
		Default: rec.Default,
	}
	if valueType == types.ValueTypeEnum {
		def.Enum = parseEnumValues(rec.Enum)
		if len(def.Enum) == 0 {
			r.report(diag.New(diag.KindEnumValuesInvalid, "EnumValues", "ENUM definition needs at least one label"))
			return
		}
	}
	if !staging.AddDefinition(def) {
		r.report(diag.New(diag.KindDuplicatePropertyDefinition, rec.Name, fmt.Sprintf("%s property already defined", scope)))
	}
}

type assignmentRow struct {
	Scope    string `col:"Scope"`
	ScopeID  string `col:"ScopeIdentifier"`
	Property string `col:"AttributeName" validate:"required"`
}

func (r *rowReader) assignment(staging *types.Staging, row Row, _ int) {
	rec := assignmentRow{
		Scope:    row.Text("Scope"),
		ScopeID:  row.Text("ScopeIdentifier"),
		Property: firstNonEmpty(row, "AttributeName", "PropertyName"),
	}
	if !r.valid(rec) {
		return
	}
	scope, err := policies.ParseScopeKind(rec.Scope)
	if err != nil {
		r.fieldError(diag.KindScopeUnknown, "Scope", err)
		return
	}
	value := row["Value"]
	staging.Assignments = append(staging.Assignments, types.PropertyAssignment{
		Scope:    scope,
		ScopeID:  rec.ScopeID,
		Property: rec.Property,
		Value:    value.Text,
		Numeric:  value.Numeric,
	})
}

type commentRow struct {
	Type  string `col:"Type" validate:"required"`
	Scope string `col:"Scope"`
	Text  string `col:"Comment"`
}

func (r *rowReader) comment(staging *types.Staging, seen map[string]struct{}, row Row, _ int) {
	rec := commentRow{Type: row.Text("Type"), Scope: row.Text("Scope"), Text: row.Text("Comment")}
	if !r.valid(rec) {
		return
	}
	key := string(policies.NormalizeCommentType(rec.Type)) + "\x00" + rec.Scope
	if _, dup := seen[key]; dup {
		r.report(diag.New(diag.KindDuplicateComment, rec.Scope, "comment repeated; the last one wins"))
	}
	seen[key] = struct{}{}
	staging.Comments = append(staging.Comments, types.CommentRecord{Type: rec.Type, Scope: rec.Scope, Text: rec.Text})
}

func firstNonEmpty(row Row, columns ...string) string {
	for _, column := range columns {
		if text := row.Text(column); text != "" {
			return text
		}
	}
	return ""
}

var _ ports.WorkbookSourcePort = WorkbookFileAdapter{}
