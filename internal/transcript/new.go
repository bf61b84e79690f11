package transcript

import (
	"github.com/nguyentantai21042004/meeting2slides/internal/config"
	"github.com/nguyentantai21042004/meeting2slides/internal/logger"
	"github.com/nguyentantai21042004/meeting2slides/pkg/executor"
)

type implReader struct {
	converters config.ConvertersConfig
	executor   executor.Executor
	logger     logger.Logger
}

// New creates a Reader. Converter commands are only needed for .pdf and .docx input.
func New(converters config.ConvertersConfig, exec executor.Executor, log logger.Logger) Reader {
	return &implReader{
		converters: converters,
		executor:   exec,
		logger:     log,
	}
}
