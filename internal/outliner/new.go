package outliner

import (
	"sync"

	"github.com/nguyentantai21042004/meeting2slides/internal/config"
	"github.com/nguyentantai21042004/meeting2slides/internal/logger"
)

type implOutliner struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	logger     logger.Logger
	model      string
	gen        generateFunc
	defaults   config.DefaultsConfig
	minSlides  int
	maxSlides  int
}

// New creates an Outliner backed by Gemini that rotates through the configured API keys.
func New(cfg *config.Config, log logger.Logger) Outliner {
	return newWithGenerator(cfg, log, geminiGenerator(cfg.Gemini.Temperature, cfg.Gemini.MaxOutputTokens))
}

func newWithGenerator(cfg *config.Config, log logger.Logger, gen generateFunc) *implOutliner {
	return &implOutliner{
		apiKeys:   cfg.Keys(),
		logger:    log,
		model:     cfg.Gemini.Model,
		gen:       gen,
		defaults:  cfg.Defaults,
		minSlides: cfg.Deck.MinSlides,
		maxSlides: cfg.Deck.MaxSlides,
	}
}
