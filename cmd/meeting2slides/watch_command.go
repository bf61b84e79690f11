package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meeting2slides/internal/watcher"
)

// lockName lives in the inbox; the watcher ignores dot files.
const lockName = ".meeting2slides.lock"

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Process transcripts dropped into the inbox folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.close()

			lock, err := acquireInboxLock(a.cfg.Paths.Inbox)
			if err != nil {
				return err
			}
			defer func() {
				if err := lock.Unlock(); err != nil {
					a.logger.Warn(context.Background(), "Failed to release inbox lock: %v", err)
				}
			}()

			w, err := newInboxWatcher(a)
			if err != nil {
				return err
			}
			defer w.Stop()

			a.logger.Info(cmd.Context(), "Output: %s", a.cfg.Paths.Output)
			a.logger.Info(cmd.Context(), "Press Ctrl+C to stop")

			if err := w.Start(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

func acquireInboxLock(inbox string) (*flock.Flock, error) {
	lock := flock.New(filepath.Join(inbox, lockName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another meeting2slides watcher is already running on this inbox")
	}
	return lock, nil
}

func newInboxWatcher(a *app) (watcher.Watcher, error) {
	w, err := watcher.New(a.cfg.Paths.Inbox, a.proc.ProcessFile, a.logger, a.cfg.Performance.MaxConcurrent)
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return w, nil
}
