// Package grpc is the gRPC transport of the auth server.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/gophcourses/internal/logging"
	pb "github.com/dmitrijs2005/gophcourses/internal/proto"
	"github.com/dmitrijs2005/gophcourses/internal/server/auth"
	"github.com/dmitrijs2005/gophcourses/internal/server/ratelimit"
	"google.golang.org/grpc"
)

// Metrics receives token check and request outcomes.
type Metrics interface {
	RecordTokenCheck(outcome string)
	RecordRequest(transport, route, status string, d time.Duration)
}

type GRPCServer struct {
	address       string
	users         UserService
	authenticator *auth.Authenticator
	logger        logging.Logger
	metrics       Metrics
	limiter       *ratelimit.Limiter
}

type Option func(*GRPCServer)

// WithRateLimiter throttles Register and Login per peer IP on l.
func WithRateLimiter(l *ratelimit.Limiter) Option {
	return func(s *GRPCServer) { s.limiter = l }
}

func NewGRPCServer(a string, l logging.Logger, us UserService, authn *auth.Authenticator, m Metrics, opts ...Option) (*GRPCServer, error) {
	if m == nil {
		m = nopMetrics{}
	}
	s := &GRPCServer{
		address:       a,
		logger:        l.With("module", "grpc_server"),
		users:         us,
		authenticator: authn,
		metrics:       m,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// newServer creates the grpc.Server with the interceptors and the service
// registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.requestInterceptor, s.rateLimitInterceptor, s.authInterceptor))
	pb.RegisterAuthServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

type nopMetrics struct{}

func (nopMetrics) RecordTokenCheck(string)                             {}
func (nopMetrics) RecordRequest(string, string, string, time.Duration) {}
