package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ewebb/backend/internal/auth"
	jwtpkg "ewebb/backend/internal/auth/jwt"
	"ewebb/backend/internal/config"
	"ewebb/backend/internal/logger"
	"ewebb/backend/internal/mailer"
	"ewebb/backend/internal/monitoring"
	"ewebb/backend/internal/service"
	"ewebb/backend/internal/storage"
	"ewebb/backend/internal/storage/filesystem"
	"ewebb/backend/internal/storage/memory"
	mongostore "ewebb/backend/internal/storage/mongo"
	httptransport "ewebb/backend/internal/transport/http"
)

// main 启动 EWEBB Cyber Café 后端服务。
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 设置 Gin 模式（基于开发环境标志）
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// 初始化日志系统
	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		LogFile:     "",
		MaxSize:     100,
		MaxBackups:  3,
		MaxAge:      28,
		Compress:    true,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	log.Info("starting ewebb backend",
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("development", cfg.Log.Development),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 初始化存储层
	var store storage.Store
	if cfg.Mongo.URI != "" {
		client, err := mongostore.Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			log.Fatal("failed to connect MongoDB", zap.Error(err))
		}
		store = mongostore.NewStore(client, cfg.Mongo.Database)
		log.Info("using MongoDB storage", zap.String("database", cfg.Mongo.Database))
	} else {
		store = memory.NewStore()
		log.Info("using memory storage (development mode)")
	}

	// 初始化上传文件存储
	files, err := filesystem.NewStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatal("failed to initialize upload storage", zap.Error(err))
	}
	log.Info("upload storage initialized", zap.String("dir", cfg.Uploads.Dir))

	// 初始化监控系统
	metrics := monitoring.NewMetrics()

	// 初始化邮件通知
	notifier := mailer.NewMailer(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.Username,
		To:       cfg.Admin.Email,
	}, log)
	if !notifier.Enabled() {
		log.Warn("SMTP password not configured, contact notifications disabled")
	}

	// 初始化服务层
	contactService := service.NewContactService(store, notifier, log)
	documentService := service.NewDocumentService(store, files, log)

	// 初始化认证
	authenticator := auth.NewAuthenticator(cfg.Admin.Username, cfg.Admin.Password)
	if authenticator.CredentialKind() == auth.CredentialPlain {
		log.Warn("admin password is configured in plain text, consider using a bcrypt hash")
	}
	jwtManager := jwtpkg.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiry)

	log.Info("JWT configuration",
		zap.String("issuer", cfg.JWT.Issuer),
		zap.Duration("expiry", cfg.JWT.Expiry),
	)

	// 创建 HTTP 服务器
	httpAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	router := httptransport.NewRouter(httptransport.RouterDependencies{
		Config:          cfg,
		ContactService:  contactService,
		DocumentService: documentService,
		Authenticator:   authenticator,
		JWTManager:      jwtManager,
		Metrics:         metrics,
		Store:           store,
		Logger:          log,
	})

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	// HTTP 服务器 goroutine
	group.Go(func() error {
		log.Info("starting HTTP server", zap.String("address", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", zap.Error(err))
			return err
		}
		return nil
	})

	// 优雅关闭 goroutine
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutdown signal received, gracefully shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown error", zap.Error(err))
		}

		if err := store.Close(shutdownCtx); err != nil {
			log.Warn("storage close warning", zap.Error(err))
		}

		log.Info("server stopped")
		return nil
	})

	if err := group.Wait(); err != nil && err != context.Canceled {
		log.Fatal("server error", zap.Error(err))
	}

	log.Info("server exited cleanly")
}
