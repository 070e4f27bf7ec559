package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-maze/internal/listener"
)

const (
	envServer    = "MAZE_SERVER"
	envTransport = "MAZE_TRANSPORT"
	envResources = "MAZE_RESOURCES"
	envLog       = "MAZE_LOG"

	defaultServer = "127.0.0.1:4000"
)

type config struct {
	Server    string
	Transport listener.Protocol
	Resources string
	LogPath   string
	Offline   bool
	Seed      uint64
}

// loadConfig reads .env if present, then the environment, then flags.
func loadConfig(args []string) (*config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("loading .env", "error", err)
	}

	c := &config{
		Server:    getEnv(envServer, defaultServer),
		Resources: os.Getenv(envResources),
		LogPath:   os.Getenv(envLog),
	}
	transport := getEnv(envTransport, listener.ProtocolTCP.String())

	fs := flag.NewFlagSet("maze-client", flag.ContinueOnError)
	fs.StringVar(&c.Server, "server", c.Server, "server address, host:port")
	fs.StringVar(&transport, "transport", transport, "tcp or websocket")
	fs.StringVar(&c.Resources, "resources", c.Resources, "resource pack to check before starting")
	fs.StringVar(&c.LogPath, "log", c.LogPath, "file to write logs to")
	fs.BoolVar(&c.Offline, "offline", false, "play alone without a server")
	fs.Uint64Var(&c.Seed, "seed", 0, "map seed for offline play")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	el := errors.NewErrorList()
	if err := c.Transport.UnmarshalText([]byte(transport)); err != nil {
		el.Add(fmt.Errorf("transport: %w", err))
	}
	if !c.Offline && c.Server == "" {
		el.Add(fmt.Errorf("server address is required"))
	}

	return c, el.Err()
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
