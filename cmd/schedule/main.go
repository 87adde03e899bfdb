package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/config"
	baserouter "github.com/yerk0w/EduLifeFor-merge/internal/api/router"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/handler"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/migrations"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/repository"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/router"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
	"github.com/yerk0w/EduLifeFor-merge/pkg/database"
	"github.com/yerk0w/EduLifeFor-merge/pkg/jwt"
	applogger "github.com/yerk0w/EduLifeFor-merge/pkg/logger"
	"github.com/yerk0w/EduLifeFor-merge/pkg/notify"
	"github.com/yerk0w/EduLifeFor-merge/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// 1. config
	cfg, err := config.Load(config.ServiceSchedule, *configPath)
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

	logger.Info("starting schedule service",
		zap.Int("port", cfg.Server.Port),
		zap.String("auth_url", cfg.Services.AuthURL),
		zap.Bool("notify", cfg.Notify.Enabled),
	)

	// 3. database + migrations
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

	// 4. redis (optional, token blacklist only)
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

	// 6. siblings → repository → service → handler
	authClient := client.NewAuthClient(client.OptionsFor(cfg.Services.AuthURL, &cfg.Services), logger)
	senders := notify.FromConfig(&cfg.Notify, logger)

	repo := repository.NewRepository(db)
	svc := service.NewService(repo, authClient, senders, cfg.Notify.Enabled, logger)
	h := handler.NewHandler(svc)

	// 7. router + server
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)
	baserouter.Serve(cfg, engine, logger)

	logger.Info("schedule service stopped")
}
