package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/config"
	baserouter "github.com/yerk0w/EduLifeFor-merge/internal/api/router"
	"github.com/yerk0w/EduLifeFor-merge/internal/integration/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/integration/handler"
	"github.com/yerk0w/EduLifeFor-merge/internal/integration/router"
	"github.com/yerk0w/EduLifeFor-merge/internal/integration/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
	"github.com/yerk0w/EduLifeFor-merge/pkg/jwt"
	applogger "github.com/yerk0w/EduLifeFor-merge/pkg/logger"
	"github.com/yerk0w/EduLifeFor-merge/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// 1. config
	cfg, err := config.Load(config.ServiceIntegration, *configPath)
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

	siblings := []dto.ServiceEndpoint{
		{Name: config.ServiceAuth, URL: cfg.Services.AuthURL},
		{Name: config.ServiceSchedule, URL: cfg.Services.ScheduleURL},
		{Name: config.ServiceQR, URL: cfg.Services.QRURL},
		{Name: config.ServiceDocument, URL: cfg.Services.DocumentURL},
	}
	fields := []zap.Field{zap.Int("port", cfg.Server.Port)}
	for _, s := range siblings {
		fields = append(fields, zap.String(s.Name+"_url", s.URL))
	}
	logger.Info("starting integration service", fields...)

	// 3. redis (optional: token blacklist, rate limit); no database, all state lives in the siblings
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

	// 4. jwt
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 5. siblings → service → handler
	svc := service.NewService(service.Deps{
		Directory:  client.NewAuthClient(client.OptionsFor(cfg.Services.AuthURL, &cfg.Services), logger),
		Timetable:  client.NewScheduleClient(client.OptionsFor(cfg.Services.ScheduleURL, &cfg.Services), logger),
		Attendance: client.NewQRClient(client.OptionsFor(cfg.Services.QRURL, &cfg.Services), logger),
		Documents:  client.NewDocumentClient(client.OptionsFor(cfg.Services.DocumentURL, &cfg.Services), logger),
	}, logger)
	h := handler.NewHandler(svc, siblings)

	// 6. router + server
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)
	baserouter.Serve(cfg, engine, logger)

	logger.Info("integration service stopped")
}
