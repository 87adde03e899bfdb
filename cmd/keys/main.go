package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/config"
	baserouter "github.com/yerk0w/EduLifeFor-merge/internal/api/router"
	"github.com/yerk0w/EduLifeFor-merge/internal/keys/handler"
	"github.com/yerk0w/EduLifeFor-merge/internal/keys/migrations"
	"github.com/yerk0w/EduLifeFor-merge/internal/keys/repository"
	"github.com/yerk0w/EduLifeFor-merge/internal/keys/router"
	"github.com/yerk0w/EduLifeFor-merge/internal/keys/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
	"github.com/yerk0w/EduLifeFor-merge/pkg/database"
	"github.com/yerk0w/EduLifeFor-merge/pkg/jwt"
	applogger "github.com/yerk0w/EduLifeFor-merge/pkg/logger"
	"github.com/yerk0w/EduLifeFor-merge/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// 1. config
	cfg, err := config.Load(config.ServiceKeys, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log, cfg.Service)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting key management service",
		zap.Int("port", cfg.Server.Port),
		zap.String("auth_url", cfg.Services.AuthURL),
	)

	// 3. database + migrations (seeds K001–K008)
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, migrations.FS, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 4. redis (optional: token blacklist)
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, token blacklist disabled", zap.Error(err))
			rdb = nil
		}
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// 5. jwt
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. auth → repository → service → handler
	authClient := client.NewAuthClient(client.OptionsFor(cfg.Services.AuthURL, &cfg.Services), logger)

	repo := repository.NewRepository(db)
	svc := service.NewService(repo, authClient, logger)
	h := handler.NewHandler(svc)

	// 7. router + server
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)
	baserouter.Serve(cfg, engine, logger)

	logger.Info("key management service stopped")
}
