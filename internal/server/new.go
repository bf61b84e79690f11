package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/nguyentantai21042004/meeting2slides/internal/logger"
	"github.com/nguyentantai21042004/meeting2slides/internal/processor"
	"github.com/nguyentantai21042004/meeting2slides/internal/progress"
	"github.com/nguyentantai21042004/meeting2slides/internal/storage"
)

const (
	maxBodyBytes      = 10 << 20
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 30 * time.Second
	// image generation for a whole deck runs inside a single request
	writeTimeout    = 15 * time.Minute
	idleTimeout     = 2 * time.Minute
	shutdownTimeout = 30 * time.Second
)

type implServer struct {
	addr    string
	proc    processor.Processor
	hub     *progress.Hub
	bucket  storage.Bucket
	logger  logger.Logger
	handler http.Handler

	runCtx   context.Context
	stopRuns context.CancelFunc
	runs     sync.WaitGroup
}

// New creates a Server listening on addr. bucket objects are served below its route prefix.
func New(addr string, proc processor.Processor, hub *progress.Hub, bucket storage.Bucket, log logger.Logger) Server {
	runCtx, stopRuns := context.WithCancel(context.Background())

	s := &implServer{
		addr:     addr,
		proc:     proc,
		hub:      hub,
		bucket:   bucket,
		logger:   log,
		runCtx:   runCtx,
		stopRuns: stopRuns,
	}
	s.handler = s.withLogging(s.routes())
	return s
}
