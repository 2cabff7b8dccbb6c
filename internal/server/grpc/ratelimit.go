package grpc

import (
	"context"
	"net"
	"strconv"

	pb "github.com/dmitrijs2005/gophcourses/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

var limitedMethods = map[string]struct{}{
	pb.FullMethod(pb.MethodRegister): {},
	pb.FullMethod(pb.MethodLogin):    {},
}

// rateLimitInterceptor applies the shared credential throttle to Register
// and Login. It runs before authInterceptor.
func (s *GRPCServer) rateLimitInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if s.limiter == nil {
		return handler(ctx, req)
	}
	if _, ok := limitedMethods[info.FullMethod]; !ok {
		return handler(ctx, req)
	}

	ip := peerIP(ctx)
	if !s.limiter.Allow(ip) {
		s.logger.Warn(ctx, "rate limit exceeded", "client", ip, "method", info.FullMethod)
		_ = grpc.SetHeader(ctx, metadata.Pairs("retry-after", strconv.Itoa(s.limiter.RetryAfter())))
		return nil, status.Error(codes.ResourceExhausted, "Too many requests")
	}
	return handler(ctx, req)
}

func peerIP(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(p.Addr.String())
	if err != nil {
		return p.Addr.String()
	}
	return host
}
