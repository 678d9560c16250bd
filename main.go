/*
 * file: main.go
 * package: main
 * description:
 *     Entry point: parses the CLI surface, wires the match-history sink,
 *     binds the requested transports, and runs exactly one game to
 *     completion.
 */
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/juan10024/sternhalma-server/internal/adapters/db"
	"github.com/juan10024/sternhalma-server/internal/adapters/handlers"
	"github.com/juan10024/sternhalma-server/internal/adapters/transport/tcp"
	"github.com/juan10024/sternhalma-server/internal/adapters/transport/ws"
	"github.com/juan10024/sternhalma-server/internal/core/ports"
	"github.com/juan10024/sternhalma-server/internal/core/services/hub"
	"github.com/juan10024/sternhalma-server/internal/core/services/registry"
	"github.com/juan10024/sternhalma-server/internal/core/services/stats"
	"github.com/juan10024/sternhalma-server/internal/infra/repository"
	"github.com/juan10024/sternhalma-server/internal/platform/config"
	"github.com/juan10024/sternhalma-server/internal/platform/logging"
)

const (
	reconnectGrace   = 30 * time.Second
	handshakeTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		logging.Error("configuration error: %v", err)
		os.Exit(1)
	}

	matchRepo := openMatchRepository()

	reg := registry.New()
	h := hub.New(cfg.MaxTurns, reconnectGrace, reg, matchRepo)

	idleTimeout := time.Duration(cfg.Timeout) * time.Second

	if cfg.TCPAddr != "" {
		if err := tcp.Listen(cfg.TCPAddr, h, reg, handshakeTimeout, idleTimeout); err != nil {
			logging.Error("failed to bind tcp listener on %s: %v", cfg.TCPAddr, err)
			os.Exit(1)
		}
	}
	if cfg.WSAddr != "" {
		mux := http.NewServeMux()
		ws.Handle(mux, h, reg, handshakeTimeout, idleTimeout)
		statsHandler := handlers.NewStatsHandler(stats.New(matchRepo))
		mux.HandleFunc("/api/stats/general", statsHandler.GetGeneralStats)

		if err := ws.Listen(cfg.WSAddr, mux); err != nil {
			logging.Error("failed to bind websocket listener on %s: %v", cfg.WSAddr, err)
			os.Exit(1)
		}
	}

	logging.Info("waiting for two players (max_turns=%d, idle_timeout=%s)", cfg.MaxTurns, idleTimeout)
	h.Run()
	logging.Info("game finished, shutting down")
}

// openMatchRepository connects to Postgres if DB_HOST is configured,
// falling back to a no-op sink: match history is ambient bookkeeping, not a
// requirement for serving a game.
func openMatchRepository() ports.MatchRepository {
	if os.Getenv("DB_HOST") == "" {
		logging.Info("DB_HOST not set, match history will not be recorded")
		return repository.NullMatchRepository{}
	}

	conn, err := db.InitializeDatabase()
	if err != nil {
		logging.Warn("database initialization failed, match history will not be recorded: %v", err)
		return repository.NullMatchRepository{}
	}

	repo := repository.NewGormMatchRepository(conn)
	if err := repo.AutoMigrate(); err != nil {
		logging.Warn("match history migration failed, match history will not be recorded: %v", err)
		return repository.NullMatchRepository{}
	}
	return repo
}
