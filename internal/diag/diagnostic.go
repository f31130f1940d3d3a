// Package diag defines the closed set of conversion diagnostics and the
// sinks that collect them.
package diag

import (
	"fmt"
	"strings"
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// Kind identifies one failure category. The set is closed; every kind has
// a fixed severity.
type Kind int

const (
	// structural
	KindSheetNotFound Kind = iota
	KindSheetEmpty
	KindSheetReadFailed
	KindRowEmpty

	// field
	KindFieldRequired
	KindFieldInvalidHex
	KindFieldInvalidInt
	KindFieldInvalidFloat
	KindFieldInvalidBool
	KindFieldInvalidEnum
	KindFieldOutOfRange
	KindFieldInvalidFormat
	KindByteOrderInvalid
	KindMultiplexInvalid
	KindValueTableInvalid
	KindEnumValuesInvalid
	KindScopeUnknown

	// duplicate
	KindDuplicateNode
	KindDuplicateMessage
	KindDuplicateSignal
	KindDuplicateEnvVar
	KindDuplicateValueTable
	KindDuplicatePropertyDefinition
	KindDuplicateComment

	// referential
	KindNodeReferenceNotFound
	KindMessageReferenceNotFound
	KindSignalReferenceNotFound
	KindValueTableNotFound
	KindTransmitterNotFound
	KindPropertyNotFound
	KindPropertyValueInvalid
	KindCommentScopeInvalid

	// generic
	KindWarning
	KindInfo
	KindUnexpectedError

	kindCount
)

type kindInfo struct {
	name     string
	severity Severity
}

var kinds = [kindCount]kindInfo{
	KindSheetNotFound:               {"SheetNotFound", SeverityError},
	KindSheetEmpty:                  {"SheetEmpty", SeverityWarning},
	KindSheetReadFailed:             {"SheetReadFailed", SeverityError},
	KindRowEmpty:                    {"RowEmpty", SeverityWarning},
	KindFieldRequired:               {"FieldRequired", SeverityError},
	KindFieldInvalidHex:             {"FieldInvalidHex", SeverityError},
	KindFieldInvalidInt:             {"FieldInvalidInt", SeverityError},
	KindFieldInvalidFloat:           {"FieldInvalidFloat", SeverityError},
	KindFieldInvalidBool:            {"FieldInvalidBool", SeverityError},
	KindFieldInvalidEnum:            {"FieldInvalidEnum", SeverityError},
	KindFieldOutOfRange:             {"FieldOutOfRange", SeverityError},
	KindFieldInvalidFormat:          {"FieldInvalidFormat", SeverityError},
	KindByteOrderInvalid:            {"ByteOrderInvalid", SeverityError},
	KindMultiplexInvalid:            {"MultiplexInvalid", SeverityError},
	KindValueTableInvalid:           {"ValueTableInvalid", SeverityError},
	KindEnumValuesInvalid:           {"EnumValuesInvalid", SeverityError},
	KindScopeUnknown:                {"ScopeUnknown", SeverityError},
	KindDuplicateNode:               {"DuplicateNode", SeverityError},
	KindDuplicateMessage:            {"DuplicateMessage", SeverityError},
	KindDuplicateSignal:             {"DuplicateSignal", SeverityError},
	KindDuplicateEnvVar:             {"DuplicateEnvVar", SeverityError},
	KindDuplicateValueTable:         {"DuplicateValueTable", SeverityError},
	KindDuplicatePropertyDefinition: {"DuplicatePropertyDefinition", SeverityError},
	KindDuplicateComment:            {"DuplicateComment", SeverityWarning},
	KindNodeReferenceNotFound:       {"NodeReferenceNotFound", SeverityError},
	KindMessageReferenceNotFound:    {"MessageReferenceNotFound", SeverityError},
	KindSignalReferenceNotFound:     {"SignalReferenceNotFound", SeverityError},
	KindValueTableNotFound:          {"ValueTableNotFound", SeverityWarning},
	KindTransmitterNotFound:         {"TransmitterNotFound", SeverityWarning},
	KindPropertyNotFound:            {"PropertyNotFound", SeverityError},
	KindPropertyValueInvalid:        {"PropertyValueInvalid", SeverityError},
	KindCommentScopeInvalid:         {"CommentScopeInvalid", SeverityError},
	KindWarning:                     {"Warning", SeverityWarning},
	KindInfo:                        {"Info", SeverityInfo},
	KindUnexpectedError:             {"UnexpectedError", SeverityError},
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kinds[k].name
}

func (k Kind) Severity() Severity {
	if k < 0 || k >= kindCount {
		return SeverityError
	}
	return kinds[k].severity
}

// Diagnostic is one reported failure. Sheet and Row locate the source row
// when the diagnostic comes from a record producer; both are empty for
// resolution diagnostics.
type Diagnostic struct {
	Kind    Kind
	Sheet   string
	Row     int
	Subject string
	Detail  string
}

func New(kind Kind, subject string, detail string) Diagnostic {
	return Diagnostic{Kind: kind, Subject: subject, Detail: detail}
}

// At returns a copy of d located at the given sheet row.
func (d Diagnostic) At(sheet string, row int) Diagnostic {
	d.Sheet = sheet
	d.Row = row
	return d
}

func (d Diagnostic) Severity() Severity {
	return d.Kind.Severity()
}

func (d Diagnostic) String() string {
	var builder strings.Builder
	builder.WriteString(d.Kind.String())
	if d.Sheet != "" {
		fmt.Fprintf(&builder, " [%s", d.Sheet)
		if d.Row > 0 {
			fmt.Fprintf(&builder, " row %d", d.Row)
		}
		builder.WriteString("]")
	}
	builder.WriteString(": ")
	if d.Subject != "" {
		builder.WriteString(d.Subject)
		if d.Detail != "" {
			builder.WriteString(": ")
		}
	}
	builder.WriteString(d.Detail)
	return builder.String()
}

func Warning(format string, args ...any) Diagnostic {
	return New(KindWarning, "", fmt.Sprintf(format, args...))
}

func Info(format string, args ...any) Diagnostic {
	return New(KindInfo, "", fmt.Sprintf(format, args...))
}

func UnexpectedError(subject string, cause any) Diagnostic {
	return New(KindUnexpectedError, subject, fmt.Sprint(cause))
}

func NodeReferenceNotFound(node string, referrer string) Diagnostic {
	return New(KindNodeReferenceNotFound, referrer, fmt.Sprintf("node %q not found", node))
}

func MessageReferenceNotFound(id string, referrer string) Diagnostic {
	return New(KindMessageReferenceNotFound, referrer, fmt.Sprintf("message %s not found", id))
}

func SignalReferenceNotFound(messageID string, signal string, referrer string) Diagnostic {
	return New(KindSignalReferenceNotFound, referrer, fmt.Sprintf("signal %q not found in message %s", signal, messageID))
}

func PropertyNotFound(scope string, property string) Diagnostic {
	return New(KindPropertyNotFound, property, fmt.Sprintf("no %s property definition", scope))
}

func PropertyValueInvalid(property string, value string, cause error) Diagnostic {
	return New(KindPropertyValueInvalid, property, fmt.Sprintf("value %q rejected: %v", value, cause))
}

func CommentScopeInvalid(commentType string, scope string) Diagnostic {
	return New(KindCommentScopeInvalid, commentType, fmt.Sprintf("scope %q does not resolve", scope))
}
