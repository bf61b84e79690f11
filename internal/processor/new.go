package processor

import (
	"github.com/nguyentantai21042004/meeting2slides/internal/config"
	"github.com/nguyentantai21042004/meeting2slides/internal/deck"
	"github.com/nguyentantai21042004/meeting2slides/internal/imagegen"
	"github.com/nguyentantai21042004/meeting2slides/internal/logger"
	"github.com/nguyentantai21042004/meeting2slides/internal/outliner"
	"github.com/nguyentantai21042004/meeting2slides/internal/progress"
	"github.com/nguyentantai21042004/meeting2slides/internal/storage"
	"github.com/nguyentantai21042004/meeting2slides/internal/store"
	"github.com/nguyentantai21042004/meeting2slides/internal/transcript"
)

// Deps are the collaborators a Processor drives. Hub may be nil.
type Deps struct {
	Store    store.Store
	Bucket   storage.Bucket
	Outliner outliner.Outliner
	Images   imagegen.Generator
	Deck     deck.Builder
	Reader   transcript.Reader
	Hub      *progress.Hub
}

type implProcessor struct {
	cfg       *config.Config
	store     store.Store
	bucket    storage.Bucket
	outliner  outliner.Outliner
	images    imagegen.Generator
	deck      deck.Builder
	reader    transcript.Reader
	hub       *progress.Hub
	semaphore *semaphore
	logger    logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, deps Deps, log logger.Logger) Processor {
	maxConcurrent := cfg.Performance.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	return &implProcessor{
		cfg:       cfg,
		store:     deps.Store,
		bucket:    deps.Bucket,
		outliner:  deps.Outliner,
		images:    deps.Images,
		deck:      deps.Deck,
		reader:    deps.Reader,
		hub:       deps.Hub,
		semaphore: newSemaphore(maxConcurrent),
		logger:    log,
	}
}
