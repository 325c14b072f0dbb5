package main

import (
	"net"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-simon/internal/platform/web"
	"github.com/vovakirdan/tui-simon/internal/scoreboard"
	"github.com/vovakirdan/tui-simon/internal/simon"
	"github.com/vovakirdan/tui-simon/internal/storage"
)

// newAPIServer wires the HTTP API to the store, if there is one.
func newAPIServer(cfg simon.Config, store *storage.Store, logger *log.Logger) *web.Server {
	if store == nil {
		return web.New(cfg, scoreboard.New(scoreboard.Unavailable{}), nil, logger.WithPrefix("simon-http"))
	}
	return web.New(cfg, store.Board(), store, logger.WithPrefix("simon-http"))
}

// portOf returns the port part of a listen address.
func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		return addr
	}
	return port
}
