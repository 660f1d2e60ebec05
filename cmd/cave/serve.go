package main

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jerecoder/cave-snake/internal/platform/tui"
)

var (
	flagSSHAddr string
	flagHostKey string
	flagIdle    time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the games over SSH",
	Long: `Listen for SSH clients and give each one its own menu session.

All clients share the server's runs database, so the boards are global.
Without --host-key a key is created at ~/.cave/host_key and
reused on later starts.

Examples:
  cave serve
  cave serve --ssh :2222 --idle-timeout 10m
  cave serve --host-key ./host_key --db ./runs.db

Connect with:
  ssh -p 23234 localhost`,
	Run: runServe,
}

func init() {
	def := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", def.Address, "Listen address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Host key file (generated when empty)")
	serveCmd.Flags().DurationVar(&flagIdle, "idle-timeout", def.IdleTimeout, "Disconnect clients idle for this long")
}

// serveConfig builds the server config from the parsed flags.
func serveConfig() (tui.SSHServerConfig, error) {
	if flagIdle <= 0 {
		return tui.SSHServerConfig{}, errors.New("--idle-timeout must be positive")
	}
	if flagFPS <= 0 {
		return tui.SSHServerConfig{}, errors.New("--fps must be positive")
	}
	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.TickRate = flagFPS
	cfg.IdleTimeout = flagIdle
	return cfg, nil
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr).WithPrefix("cave-ssh")

	cfg, err := serveConfig()
	if err != nil {
		logger.Error("bad flags", "error", err)
		os.Exit(2)
	}
	cfg.Logger = logger

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		logger.Error("could not create server", "error", err)
		os.Exit(1)
	}

	logger.Info("listening", "addr", cfg.Address, "fps", cfg.TickRate, "idle", cfg.IdleTimeout)
	if err := server.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
