package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Abheast12/literature/internal/cache"
	"github.com/Abheast12/literature/internal/database"
	"github.com/Abheast12/literature/internal/lobby"
	"github.com/Abheast12/literature/internal/monitor"
	"github.com/Abheast12/literature/internal/ws"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}

	addr := os.Getenv("LITERATURE_ADDR")
	if addr == "" {
		addr = ":3001"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var db *database.DB
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		var err error
		db, err = database.Connect(ctx, dsn)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to database")
		}
		defer db.Close()
		log.Info("database connection successful")
	} else {
		log.Warn("DATABASE_URL not set, match results will not be persisted")
	}

	var c *cache.Cache
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		var err error
		c, err = cache.New(ctx, redisAddr)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to redis")
		}
		defer c.Close()
		log.Info("redis connection successful")
	}

	metrics := monitor.NewMetrics("literature")
	manager := lobby.NewManager(log, db, c, metrics)
	server := ws.NewServer(manager, log, metrics)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", server.HandleWS)
	mux.Handle("/metrics", monitor.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	log.WithField("addr", addr).Info("starting literature server")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
