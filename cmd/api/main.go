package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"luxelush/internal/auth"
	"luxelush/internal/cartstore"
	"luxelush/internal/checkout"
	"luxelush/internal/config"
	"luxelush/internal/db"
	"luxelush/internal/gateway"
	"luxelush/internal/httpserver"
	"luxelush/internal/logger"
	"luxelush/internal/mailer"
	orderrepo "luxelush/internal/repository/order"
	productrepo "luxelush/internal/repository/product"
	reviewrepo "luxelush/internal/repository/review"
	ordersvc "luxelush/internal/service/order"
	productsvc "luxelush/internal/service/product"
	reviewsvc "luxelush/internal/service/review"
	"luxelush/internal/storage"
	"luxelush/internal/webhook"
)

func main() {
	config.Load()
	cfg := config.FromEnv()

	log, err := logger.New(cfg.Env)
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, log)
	reviewRepo := reviewrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool)

	gw, err := gateway.New(gateway.Config{
		AppID:       cfg.CashfreeAppID,
		SecretKey:   cfg.CashfreeSecretKey,
		Environment: cfg.CashfreeEnvironment,
		Timeout:     cfg.GatewayTimeout,
	}, log)
	if err != nil {
		log.Fatal("init payment gateway", zap.Error(err))
	}

	builder := checkout.Builder{
		Currency:  cfg.Currency,
		ReturnURL: cfg.PublicBaseURL + "/payment-status",
		NotifyURL: cfg.PublicBaseURL + "/api/webhook",
	}

	var mailSender webhook.Mailer
	if m := mailer.New(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	}); m.Enabled() {
		mailSender = m
	} else {
		log.Warn("smtp not configured, order confirmation emails disabled")
	}

	deps := httpserver.Deps{
		Products:          productsvc.New(productRepo),
		Reviews:           reviewsvc.New(reviewRepo, productRepo),
		Orders:            ordersvc.New(builder, orderRepo, gw, log),
		Webhook:           webhook.NewProcessor(orderRepo, productRepo, mailSender, log),
		WebhookSecret:     cfg.WebhookSecret,
		Tokens:            auth.NewTokenManager(cfg.JWTSecret, 0),
		AdminEmail:        cfg.AdminEmail,
		AdminPasswordHash: cfg.AdminPasswordHash,
		AllowedOrigins:    []string{cfg.PublicBaseURL},
	}

	if rdb, err := db.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword); err != nil {
		log.Warn("redis unavailable, server-side carts disabled", zap.Error(err))
	} else {
		defer rdb.Close()
		deps.Carts = cartstore.NewRedis(rdb, 0)
	}

	if cfg.MinioEndpoint != "" {
		images, err := storage.NewMinio(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Fatal("init image storage", zap.Error(err))
		}
		deps.Images = images
	} else {
		log.Warn("minio not configured, image uploads disabled")
	}

	srv := httpserver.New(cfg.HTTPAddr, log, dbpool, deps)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatal("http server failed", zap.Error(err))
	case sig := <-stopCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
