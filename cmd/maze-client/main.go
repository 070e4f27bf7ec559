package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-maze/internal/client"
	"github.com/pixil98/go-maze/internal/display"
	"github.com/pixil98/go-maze/internal/driver"
	"github.com/pixil98/go-maze/internal/game"
	"github.com/pixil98/go-maze/internal/storage"
	"github.com/pixil98/go-maze/internal/terminal"
)

// quitGrace is how long a quitting player's last actions get to reach the
// server.
const quitGrace = 500 * time.Millisecond

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	closeLog, err := setupLogging(cfg.LogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	if cfg.Resources != "" {
		idx, err := storage.NewMaterialIndex(cfg.Resources)
		if err != nil {
			return fmt.Errorf("indexing resources: %w", err)
		}
		if err := idx.Check(game.RequiredMaterials()); err != nil {
			return fmt.Errorf("checking resources: %w", err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if cfg.Offline {
		return playOffline(ctx, cfg)
	}
	return playOnline(ctx, cfg)
}

// setupLogging sends logs to path, or drops them so they do not draw over
// the screen.
func setupLogging(path string) (func(), error) {
	if path == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return func() { _ = f.Close() }, nil
}

func newScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initialising screen: %w", err)
	}
	return screen, nil
}

func playOnline(ctx context.Context, cfg *config) error {
	c := client.NewClient(cfg.Transport, cfg.Server)
	defer func() { _ = c.Close() }()

	fmt.Printf("Connecting to %s over %s...\n", cfg.Server, cfg.Transport)
	if err := c.Connect(ctx); err != nil {
		return fmt.Errorf("connecting: %w", err)
	}

	screen, err := newScreen()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	played := make(chan error, 1)
	go func() {
		err := c.Prepare(ctx)
		if err == nil {
			err = c.Play(ctx)
		}
		played <- err
	}()
	go func() {
		<-c.Done()
		cancel()
	}()

	err = terminal.NewApp(screen, c, c.ID()).Run(ctx)
	screen.Fini()
	if err != nil {
		return err
	}

	var playErr error
	select {
	case playErr = <-played:
	case <-time.After(quitGrace):
	}

	if snap, err := c.Snapshot(); err == nil && snap.Mode == game.ModeGameOver {
		fmt.Println(display.ResultText(&snap, c.ID()))
	}
	if playErr != nil && ctx.Err() == nil {
		return playErr
	}
	return nil
}

func playOffline(ctx context.Context, cfg *config) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	engine, err := game.NewEngine(game.DefaultConfig(1), rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}
	local := client.NewLocal(engine, 0)

	screen, err := newScreen()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	drv := driver.NewDriver([]driver.Manager{local})
	go func() { _ = drv.Start(ctx) }()

	err = terminal.NewApp(screen, local, local.ID()).Run(ctx)
	screen.Fini()

	if snap, serr := local.Snapshot(); serr == nil && snap.Mode == game.ModeGameOver {
		fmt.Println(display.ResultText(&snap, local.ID()))
	}
	return err
}
