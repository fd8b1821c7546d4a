package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
)

// Server exposes the gRPC health protocol for orchestrators. The listing API
// itself is served over HTTP.
type Server struct {
	grpcServer  *grpc.Server
	health      *health.Server
	serviceName string
	port        string
	logger      *logger.Logger
}

func NewServer(serviceName, port string, log *logger.Logger) *Server {
	log = log.Named("GRPCServer")
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(LoggingInterceptor(log)),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	reflection.Register(srv)

	return &Server{
		grpcServer:  srv,
		health:      healthServer,
		serviceName: serviceName,
		port:        port,
		logger:      log,
	}
}

// Serve marks the service SERVING and blocks on lis.
func (s *Server) Serve(lis net.Listener) error {
	s.health.SetServingStatus(s.serviceName, grpc_health_v1.HealthCheckResponse_SERVING)
	s.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	s.logger.Info("gRPC server listening", zap.String("address", lis.Addr().String()))
	if err := s.grpcServer.Serve(lis); err != nil {
		return fmt.Errorf("gRPC server failed to serve: %w", err)
	}
	return nil
}

func (s *Server) Start() error {
	lis, err := net.Listen("tcp", ":"+s.port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", s.port, err)
	}
	return s.Serve(lis)
}

// Stop reports NOT_SERVING and drains in-flight calls until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	s.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-ctx.Done():
		s.logger.Warn("Graceful shutdown timed out, forcing stop")
		s.grpcServer.Stop()
		return ctx.Err()
	case <-stopped:
		s.logger.Info("gRPC server stopped gracefully")
		return nil
	}
}

// LoggingInterceptor logs each unary call with its status code and latency.
func LoggingInterceptor(log *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			log.Warn("gRPC call failed", append(fields, zap.Error(err))...)
		} else {
			log.Debug("gRPC call", fields...)
		}
		return resp, err
	}
}
