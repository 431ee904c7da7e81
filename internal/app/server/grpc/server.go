// Package grpc exposes the registry over gRPC as the shortener.v1.Registry
// service.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/atinyakov/shortlink-registry/internal/app/service"
	"github.com/atinyakov/shortlink-registry/internal/intercepters"
)

// Server wraps the gRPC server and dependencies.
type Server struct {
	grpcServer *grpc.Server
	port       int
	logger     *zap.Logger
}

// New creates a gRPC server with logging, recovery and trusted subnet
// interceptors and the registry service registered.
func New(baseURL string, trustedSubnet string, logger *zap.Logger, registry service.RegistryIface, port int) *Server {
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.UnaryServerInterceptor(intercepters.InterceptorLogger(logger)),
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(intercepters.RecoveryHandler(logger))),
			intercepters.TrustedSubnet(trustedSubnet, logger, StatsMethod),
		),
	)

	RegisterRegistryServer(s, &ShortenerServer{
		Registry: registry,
		BaseURL:  baseURL,
	})

	return &Server{
		grpcServer: s,
		port:       port,
		logger:     logger,
	}
}

// Start listens on the configured port and serves until stopped.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		s.logger.Error("gRPC server failed to listen", zap.Error(err))
		return err
	}

	s.logger.Info("gRPC server listening on port", zap.Int("port", s.port))
	return s.Serve(lis)
}

// Serve accepts connections on lis.
func (s *Server) Serve(lis net.Listener) error {
	return s.grpcServer.Serve(lis)
}

// GracefulStop shuts down the server gracefully.
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}

// ShortenerServer implements RegistryServer on top of the registry.
type ShortenerServer struct {
	Registry service.RegistryIface
	BaseURL  string
}

func (s *ShortenerServer) Shorten(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	code, err := s.Registry.Shorten(ctx, req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}

	return wrapperspb.String(strings.TrimSuffix(s.BaseURL, "/") + "/s/" + code), nil
}

func (s *ShortenerServer) Resolve(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	original, err := s.Registry.Resolve(ctx, req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}

	return wrapperspb.String(original), nil
}

func (s *ShortenerServer) Stats(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	n, err := s.Registry.Stats(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	return wrapperspb.Int64(int64(n)), nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidURL):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, "storage failure")
	}
}
