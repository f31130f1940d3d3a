package app

import (
	"time"

	"github.com/google/uuid"

	"dbcsheet/internal/adapters"
	"dbcsheet/internal/ports"
)

type Service struct {
	Source   ports.WorkbookSourcePort
	Writer   ports.NetworkWriterPort
	Reader   ports.NetworkReaderPort
	Reports  ports.ReportWriterPort
	NewRunID func() string
	Clock    func() time.Time
}

func NewService() Service {
	network := adapters.NewNetworkFileAdapter()
	return Service{
		Source:   adapters.NewWorkbookFileAdapter(),
		Writer:   network,
		Reader:   network,
		Reports:  adapters.NewReportFileAdapter(),
		NewRunID: uuid.NewString,
		Clock:    time.Now,
	}
}

func (s Service) runID() string {
	if s.NewRunID == nil {
		return uuid.NewString()
	}
	return s.NewRunID()
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}
