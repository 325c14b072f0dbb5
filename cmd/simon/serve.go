package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-simon/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Simon SSH server",
	Long: `Start an SSH server that allows users to connect and play Simon.

Each SSH connection gets its own game with the options menu.
Scores are stored per-server (all users share the same top 5).

With --http, the share-link API is served as well:
  GET /share?level=&modes=&seed=   - Decode a shared game
  GET /pattern?seed=&levels=       - Preview a pattern
  GET /scores                      - The top 5
  GET /scores/history              - Recent games and stats

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.simon/host_key

Examples:
  simon serve                           # Listen on :23234 with auto-generated key
  simon serve --ssh :2222               # Listen on port 2222
  simon serve --http :8080              # Also serve the HTTP API
  simon serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP API address (disabled when empty)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "simon-ssh")
	gameCfg := loadConfig()

	// Without storage the server still runs; the board reports itself unavailable.
	store := openStore(false)
	if store != nil {
		defer store.Close()
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game:        gameCfg,
	}

	server, err := tui.NewSSHServer(cfg, store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpDone := make(chan struct{})
	if flagHTTPAddr != "" {
		api := newAPIServer(gameCfg.ToSession(), store, logger)
		go func() {
			defer close(httpDone)
			if err := api.ListenAndServe(ctx, flagHTTPAddr); err != nil {
				logger.Error("HTTP server error", "error", err)
			}
		}()
	} else {
		close(httpDone)
	}

	fmt.Printf("Starting Simon SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	if flagHTTPAddr != "" {
		fmt.Printf("HTTP API on %s\n", flagHTTPAddr)
	}
	fmt.Println("Press Ctrl+C to stop")

	serveErr := server.ListenAndServe()
	cancel()
	<-httpDone

	if serveErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", serveErr)
		os.Exit(1)
	}
}
