package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	commonmw "polyrun/internal/common/http/middleware"
	"polyrun/internal/common/mq"
	"polyrun/internal/executor/backend"
	"polyrun/internal/executor/controller"
	"polyrun/internal/executor/dispatch"
	"polyrun/internal/executor/observer"
	"polyrun/internal/executor/queue"
	"polyrun/internal/executor/rpc"
	"polyrun/internal/executor/sandbox"
	"polyrun/internal/executor/sandbox/isolation"
	"polyrun/internal/executor/service"
	"polyrun/pkg/utils/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

const (
	defaultConfigPath = "configs/executor_service.yaml"
	imagePullTimeout  = 10 * time.Minute
)

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to config file")
	flag.Parse()

	appCfg, err := loadAppConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load app config failed: %v\n", err)
		return
	}

	if err := logger.Init(appCfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	var metrics observer.MetricsRecorder = observer.NoopMetricsRecorder{}
	var promRecorder *observer.PrometheusRecorder
	if appCfg.Metrics.Enabled {
		promRecorder = observer.NewPrometheusRecorder(appCfg.Metrics.Namespace)
		metrics = promRecorder
	}

	harness := sandbox.NewHarness(appCfg.Harness, metrics)
	registry := dispatch.NewRegistry()
	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()
	for _, lang := range appCfg.Languages {
		isoCfg := appCfg.isolationFor(lang)
		provisioner, err := buildProvisioner(isoCfg)
		if err != nil {
			logger.Error(context.Background(), "init isolation failed", zap.String("language", lang.ID), zap.Error(err))
			return
		}
		if c, ok := provisioner.(io.Closer); ok {
			closers = append(closers, c)
		}
		if err := registry.Register(lang.ID, backendFactory(lang, isoCfg, backend.Deps{
			Harness:   harness,
			Isolation: provisioner,
			Metrics:   metrics,
		})); err != nil {
			logger.Error(context.Background(), "register backend failed", zap.String("language", lang.ID), zap.Error(err))
			return
		}
	}
	defer func() {
		_ = registry.Close()
	}()

	dispatcher := dispatch.NewDispatcher(registry, metrics)
	executorService := service.NewExecutorService(dispatcher, appCfg.Worker)

	var mqClient *mq.KafkaQueue
	if appCfg.Kafka.enabled() {
		mqClient, err = mq.NewKafkaQueue(appCfg.Kafka.toMQConfig())
		if err != nil {
			logger.Error(context.Background(), "init kafka failed", zap.Error(err))
			return
		}
		defer func() {
			_ = mqClient.Close()
		}()

		consumer := queue.NewConsumer(executorService, mqClient, appCfg.Kafka.ReplyTopic)
		limiter := mq.NewTokenLimiter(appCfg.Worker.MaxConcurrent)
		if err := consumer.Subscribe(context.Background(), mqClient, appCfg.Kafka.RequestTopic, appCfg.Kafka.toSubscribeOptions(limiter)); err != nil {
			logger.Error(context.Background(), "subscribe execute requests failed", zap.Error(err))
			return
		}
		if err := mqClient.Start(); err != nil {
			logger.Error(context.Background(), "start kafka consumer failed", zap.Error(err))
			return
		}
	}

	httpServer := buildHTTPServer(appCfg, executorService, metrics, promRecorder)

	errCh := make(chan error, 2)
	go func() {
		logger.Info(context.Background(), "executor http server started",
			zap.String("addr", appCfg.Server.Addr), zap.Strings("languages", registry.Languages()))
		errCh <- httpServer.ListenAndServe()
	}()

	var grpcServer *grpc.Server
	if appCfg.GRPC.Enabled {
		grpcServer = grpc.NewServer()
		rpc.RegisterExecutorService(grpcServer, executorService)
		grpcListener, err := net.Listen("tcp", appCfg.GRPC.Addr)
		if err != nil {
			logger.Error(context.Background(), "init grpc listener failed", zap.Error(err))
			return
		}
		go func() {
			logger.Info(context.Background(), "executor grpc server started", zap.String("addr", appCfg.GRPC.Addr))
			errCh <- grpcServer.Serve(grpcListener)
		}()
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(context.Background(), "server stopped", zap.Error(err))
		}
	case <-shutdownCtx.Done():
		logger.Info(context.Background(), "shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error(context.Background(), "http server shutdown failed", zap.Error(err))
	}
	if mqClient != nil {
		_ = mqClient.Stop()
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
}

func buildProvisioner(cfg IsolationConfig) (isolation.Provisioner, error) {
	switch cfg.Mode {
	case isolationDocker:
		docker, err := isolation.NewDocker(cfg.Docker)
		if err != nil {
			return nil, err
		}
		return docker, nil
	case isolationNamespace:
		ns, err := isolation.NewNamespace(cfg.Namespace)
		if err != nil {
			return nil, err
		}
		return ns, nil
	default:
		return isolation.Direct{}, nil
	}
}

// backendFactory defers toolchain checks and image pulls to the first
// request for the language.
func backendFactory(lang LanguageConfig, isoCfg IsolationConfig, deps backend.Deps) dispatch.Factory {
	build := backendFactories[lang.ID]
	return func() (backend.Backend, error) {
		if d, ok := deps.Isolation.(*isolation.Docker); ok && isoCfg.Docker.PullImage {
			ctx, cancel := context.WithTimeout(context.Background(), imagePullTimeout)
			defer cancel()
			if err := d.EnsureImage(ctx); err != nil {
				return nil, err
			}
		}
		return build(lang.Toolchain, deps)
	}
}

func buildHTTPServer(cfg *AppConfig, executorService *service.ExecutorService, metrics observer.MetricsRecorder, prom *observer.PrometheusRecorder) *http.Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(commonmw.TraceContextMiddleware())
	router.Use(requestLogger())

	if prom != nil {
		router.GET(cfg.Metrics.Path, gin.WrapH(prom.Handler()))
	}

	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(commonmw.NewRateLimiter(cfg.RateLimit, metrics.ObserveRateLimited).Middleware())
	}
	controller.NewExecutorController(executorService).Register(api)

	return &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		logger.Info(
			c.Request.Context(),
			"request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
