package main

import (
	"context"
	"errors"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/meeting2slides/internal/server"
	"github.com/nguyentantai21042004/meeting2slides/internal/watcher"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.close()

			runCtx := cmd.Context()
			a.logger.Info(runCtx, "========================================")
			a.logger.Info(runCtx, "Meeting2Slides")
			a.logger.Info(runCtx, "========================================")
			a.logger.Info(runCtx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
			a.logger.Info(runCtx, "Max concurrent runs: %d", a.cfg.Performance.MaxConcurrent)
			a.logger.Info(runCtx, "Public URL: %s", a.cfg.Server.PublicBaseURL)

			srv := server.New(a.cfg.Server.Addr, a.proc, a.hub, a.bucket, a.logger)

			var w watcher.Watcher
			if watch {
				lock, err := acquireInboxLock(a.cfg.Paths.Inbox)
				if err != nil {
					return err
				}
				defer func() { _ = lock.Unlock() }()

				if w, err = newInboxWatcher(a); err != nil {
					return err
				}
				defer w.Stop()
			}

			g, gctx := errgroup.WithContext(runCtx)
			g.Go(func() error {
				return srv.ListenAndServe(gctx)
			})
			if w != nil {
				g.Go(func() error {
					if err := w.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
						return err
					}
					return nil
				})
			}

			a.logger.Info(runCtx, "Press Ctrl+C to stop")
			err = g.Wait()
			a.logger.Info(context.Background(), "Meeting2Slides stopped")
			return err
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Also process transcripts dropped into the inbox")
	return cmd
}
