package ports

import (
	"context"

	"dbcsheet/internal/types"
)

type NetworkWriterPort interface {
	WriteNetwork(ctx context.Context, path string, network types.Network) error
}

type NetworkReaderPort interface {
	ReadNetwork(path string) (types.NetworkDocument, error)
}

type ReportWriterPort interface {
	WriteReport(path string, report types.DiagnosticsReport) error
}
