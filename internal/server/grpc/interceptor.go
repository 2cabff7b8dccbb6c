package grpc

import (
	"context"
	"errors"
	"path"
	"time"

	"github.com/dmitrijs2005/gophcourses/internal/common"
	"github.com/dmitrijs2005/gophcourses/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// authInterceptor resolves the authorization metadata into an identity for
// every call. Calls without it, or with an empty value, continue
// anonymously.
func (s *GRPCServer) authInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	var (
		header  string
		present bool
	)
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AuthorizationMetadataKey)
		if len(values) > 0 && values[0] != "" {
			header, present = values[0], true
		}
	}

	id, err := s.authenticator.Authenticate(header, present)
	if err != nil {
		if errors.Is(err, common.ErrMalformedHeader) {
			s.metrics.RecordTokenCheck("malformed")
		} else {
			s.metrics.RecordTokenCheck("invalid")
		}
		s.logger.Debug(ctx, "call rejected", "method", info.FullMethod, "reason", err.Error())
		return nil, status.Error(codes.Unauthenticated, common.PublicMessage(err))
	}

	if id.Authenticated {
		s.metrics.RecordTokenCheck("authenticated")
	} else {
		s.metrics.RecordTokenCheck("anonymous")
	}

	return handler(auth.WithIdentity(ctx, id), req)
}

// requestInterceptor logs and counts every finished call.
func (s *GRPCServer) requestInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	code := status.Code(err)
	elapsed := time.Since(start)
	s.metrics.RecordRequest("grpc", path.Base(info.FullMethod), code.String(), elapsed)
	s.logger.Info(ctx, "call", "method", info.FullMethod, "code", code.String(), "duration", elapsed)

	return resp, err
}
