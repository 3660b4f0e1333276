package main

import (
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/texasholdem/holdem/config"
	"github.com/texasholdem/holdem/logging"
	"github.com/texasholdem/holdem/server"
	"github.com/texasholdem/holdem/server/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.New(cfg.Server.LogLevel)

	var sessions session.Repo
	if cfg.Session.RedisAddr != "" {
		logger.Info("using redis session store", "addr", cfg.Session.RedisAddr)
		sessions = session.NewRedisRepo(redis.NewClient(&redis.Options{Addr: cfg.Session.RedisAddr}))
	} else {
		sessions = session.NewMemoryRepo()
	}

	srv := server.New(cfg, logger, sessions)
	if err := srv.Run(); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}
