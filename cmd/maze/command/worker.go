package command

import (
	"fmt"

	"github.com/pixil98/go-maze/internal/driver"
	"github.com/pixil98/go-maze/internal/listener"
	"github.com/pixil98/go-maze/internal/messaging"
	"github.com/pixil98/go-maze/internal/server"
	"github.com/pixil98/go-service"
	"github.com/sasha-s/go-deadlock"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	deadlock.Opts.Disable = !cfg.DetectDeadlocks

	engine, err := cfg.Game.buildEngine()
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	settle, poll, err := cfg.durations()
	if err != nil {
		return nil, err
	}
	opts := []server.ServerOpt{
		server.WithPollInterval(poll),
	}
	if cfg.SettleDelay != "" {
		opts = append(opts, server.WithSettleDelay(settle))
	}

	workers := service.WorkerList{}

	// Lifecycle events go out over an embedded broker when enabled
	if cfg.Nats.Enabled {
		ns, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		opts = append(opts, server.WithPublisher(messaging.NewNatsPublisher(ns)))
		workers["nats"] = ns
	}

	// Bind listeners
	listeners := make([]listener.Listener, 0, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		ln, err := l.buildListener()
		if err != nil {
			closeAll(listeners)
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners = append(listeners, ln)
	}

	srv, err := server.NewServer(listeners, engine, opts...)
	if err != nil {
		closeAll(listeners)
		return nil, fmt.Errorf("creating server: %w", err)
	}

	// The driver advances the server, which advances the engine
	workers["server"] = srv
	workers["driver"] = driver.NewDriver([]driver.Manager{srv}, driver.WithTickRate(cfg.TickRate))

	return workers, nil
}

func closeAll(listeners []listener.Listener) {
	for _, l := range listeners {
		_ = l.Close()
	}
}
