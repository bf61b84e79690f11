package imagegen

import (
	"github.com/nguyentantai21042004/meeting2slides/internal/config"
	"github.com/nguyentantai21042004/meeting2slides/internal/logger"
)

const (
	// Nominal slide image size requested from the provider.
	imageWidth  = 1792
	imageHeight = 1024
	aspectRatio = "16:9"
)

type implGenerator struct {
	apiKeys      []string
	model        string
	defaultStyle string
	logger       logger.Logger
	render       renderFunc
}

// New creates a Generator backed by the Gemini Imagen API.
func New(cfg *config.Config, log logger.Logger) Generator {
	return &implGenerator{
		apiKeys:      cfg.Keys(),
		model:        cfg.Gemini.ImageModel,
		defaultStyle: cfg.Defaults.ImageStyle,
		logger:       log,
		render:       imagenRender,
	}
}
