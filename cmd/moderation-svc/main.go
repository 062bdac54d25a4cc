package main

import (
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"socialhub/internal/common"
	"socialhub/internal/config"
	"socialhub/internal/logger"
	"socialhub/internal/moderation"
	"socialhub/internal/wire"
)

func main() {
	cfg := config.LoadConfig()
	if err := logger.Initialize(cfg.Logging.Level, cfg.Logging.OutputPath); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	app, cleanup, err := wire.InitializeApplication(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize moderation service", zap.Error(err))
	}
	defer cleanup()

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			common.ErrorInterceptor(),
			common.AuthInterceptor(app.Tokens),
		),
	)

	app.ModerationGRPC.Register(grpcServer)
	healthServer := health.NewServer()
	healthServer.SetServingStatus(moderation.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", ":"+app.Config.Server.GRPCPort)
	if err != nil {
		logger.Log.Fatal("Failed to listen", zap.String("port", app.Config.Server.GRPCPort), zap.Error(err))
	}

	go func() {
		logger.Log.Info("Moderation service running", zap.String("port", app.Config.Server.GRPCPort))
		if err := grpcServer.Serve(lis); err != nil {
			logger.Log.Fatal("Failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down moderation service...")
	healthServer.Shutdown()
	grpcServer.GracefulStop()
	logger.Log.Info("Moderation service stopped")
}
