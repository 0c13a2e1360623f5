package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eveisesi/redisish"
	"github.com/eveisesi/redisish/internal/broker"
	"github.com/eveisesi/redisish/internal/history"
	"github.com/eveisesi/redisish/internal/server"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func serveCommand(c *cli.Context) error {

	// We have 10 seconds to establish a connection to the store or we die
	ctx, cancel := context.WithTimeout(c.Context, time.Second*10)
	stores, err := buildStore(ctx)
	cancel()
	if err != nil {
		return errors.Wrapf(err, "failed to initialize %s store", cfg.Store)
	}
	defer stores.close()

	if stores.history != nil && cfg.History.Retention > 0 {
		pruner := history.NewService(logger, stores.history, cfg.History.Retention)
		err = pruner.Start(cfg.History.Schedule)
		if err != nil {
			return err
		}
		defer pruner.Stop()
	}

	done := make(chan bool, 1)

	srv := server.New(logger, redisish.DefaultParser, broker.NewService(logger, stores.messages), server.Config{
		Address:       cfg.Server.Addr,
		MaxLineLength: cfg.Server.MaxLineLength,
		IdleTimeout:   cfg.Server.IdleTimeout,
	})

	wg.Add(1)
	go srv.Run(done, wg)

	stopped := make(chan struct{})
	go func() {
		wg.Wait()
		close(stopped)
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	select {
	case <-sc:
		done <- true
		<-stopped
	case <-stopped:
		return errors.New("server stopped unexpectedly")
	}

	logger.WithField("store", cfg.Store).Info("shutdown complete")

	return nil

}
