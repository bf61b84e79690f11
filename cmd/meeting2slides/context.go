package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/meeting2slides/internal/config"
	"github.com/nguyentantai21042004/meeting2slides/internal/deck"
	"github.com/nguyentantai21042004/meeting2slides/internal/imagegen"
	"github.com/nguyentantai21042004/meeting2slides/internal/logger"
	"github.com/nguyentantai21042004/meeting2slides/internal/outliner"
	"github.com/nguyentantai21042004/meeting2slides/internal/processor"
	"github.com/nguyentantai21042004/meeting2slides/internal/progress"
	"github.com/nguyentantai21042004/meeting2slides/internal/storage"
	"github.com/nguyentantai21042004/meeting2slides/internal/store"
	"github.com/nguyentantai21042004/meeting2slides/internal/transcript"
	"github.com/nguyentantai21042004/meeting2slides/pkg/executor"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	app *app
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := "config.yaml"
		if c.configFlag != nil && strings.TrimSpace(*c.configFlag) != "" {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = fmt.Errorf("load config: %w", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureApp opens the datastore and wires the pipeline once per invocation.
func (c *commandContext) ensureApp(ctx context.Context) (*app, error) {
	if c.app != nil {
		return c.app, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	a, err := newApp(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}

func (c *commandContext) close() {
	if c.app != nil {
		c.app.close()
		c.app = nil
	}
}

// app holds the wired pipeline shared by the subcommands.
type app struct {
	cfg    *config.Config
	logger logger.Logger
	store  store.Store
	bucket storage.Bucket
	hub    *progress.Hub
	reader transcript.Reader
	proc   processor.Processor
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	bucket, err := storage.New(cfg.Storage.BucketDir, cfg.Storage.Bucket, cfg.Server.PublicBaseURL)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("open bucket: %w", err)
	}

	hub := progress.NewHub()
	reader := transcript.New(cfg.Converters, executor.New(), log)
	proc := processor.New(cfg, processor.Deps{
		Store:    st,
		Bucket:   bucket,
		Outliner: outliner.New(cfg, log),
		Images:   imagegen.New(cfg, log),
		Deck:     deck.New(deck.NewFetcher(bucket), log),
		Reader:   reader,
		Hub:      hub,
	}, log)

	return &app{
		cfg:    cfg,
		logger: log,
		store:  st,
		bucket: bucket,
		hub:    hub,
		reader: reader,
		proc:   proc,
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn(context.Background(), "Failed to close store: %v", err)
	}
	_ = a.logger.Sync()
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Inbox,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
