package intercepters

import (
	"context"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// TrustedSubnet guards the listed full method names: calls to them must carry
// an x-real-ip metadata value inside cidr. Other methods pass through. An
// empty or invalid cidr denies every guarded call.
func TrustedSubnet(cidr string, l *zap.Logger, methods ...string) grpc.UnaryServerInterceptor {
	var subnet *net.IPNet
	if cidr != "" {
		var err error
		if _, subnet, err = net.ParseCIDR(cidr); err != nil {
			l.Error("invalid trusted subnet for gRPC", zap.String("cidr", cidr), zap.Error(err))
			subnet = nil
		}
	}

	guarded := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		guarded[m] = struct{}{}
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := guarded[info.FullMethod]; !ok {
			return handler(ctx, req)
		}

		var ip net.IP
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if ips := md.Get("x-real-ip"); len(ips) > 0 {
				ip = net.ParseIP(ips[0])
			}
		}

		if subnet == nil || ip == nil || !subnet.Contains(ip) {
			return nil, status.Error(codes.PermissionDenied, "address is not in the trusted subnet")
		}

		return handler(ctx, req)
	}
}
