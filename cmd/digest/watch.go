package main

import (
	"context"
	"errors"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/digest-flow/internal/coordinator"
	"github.com/nguyentantai21042004/digest-flow/internal/output"
	"github.com/nguyentantai21042004/digest-flow/internal/record"
	"github.com/nguyentantai21042004/digest-flow/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a directory and summarize new or changed transcripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			log := newLogger(cfg, cmd.ErrOrStderr())

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Info(ctx, "========================================")
			log.Info(ctx, "Transcript digest pipeline")
			log.Info(ctx, "========================================")
			log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
			log.Info(ctx, "Summarizer: %s (provider %s)", cfg.Summarizer.Mode, cfg.LLM.Provider)
			log.Info(ctx, "Record: %s", cfg.Record.Backend)

			store, err := record.Open(cfg.Record.Backend, cfg.Record.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			sum, err := newSummarizer(cfg, log)
			if err != nil {
				return err
			}

			writer, err := output.New(output.Options{Dir: cfg.Output.Dir, Formats: cfg.Output.Formats}, log)
			if err != nil {
				return err
			}

			coord := coordinator.New(coordinator.Options{
				MinLength:   cfg.Extractive.MinLength,
				StableDelay: cfg.Watch.StableDelay,
			}, sum, writer, store, log)

			w, err := watcher.New(watcher.Options{
				Dir:           cfg.Watch.Dir,
				Extension:     cfg.Watch.Extension,
				Interval:      cfg.Watch.Interval,
				MaxConcurrent: cfg.Watch.MaxConcurrent,
			}, coord.Submit, log)
			if err != nil {
				return err
			}
			defer w.Stop()

			log.Info(ctx, "Output: %s (%v)", cfg.Output.Dir, cfg.Output.Formats)
			log.Info(ctx, "Press Ctrl+C to stop")

			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			log.Info(context.Background(), "Digest pipeline stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "config.yaml", "config file; defaults and environment are used when it does not exist")
	return cmd
}
