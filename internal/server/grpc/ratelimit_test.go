package grpc

import (
	"context"
	"net"
	"testing"

	pb "github.com/dmitrijs2005/gophcourses/internal/proto"
	"github.com/dmitrijs2005/gophcourses/internal/server/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

func newLimiter(t *testing.T, burst int) *ratelimit.Limiter {
	t.Helper()
	l := ratelimit.New(ratelimit.Config{PerMinute: 1, Burst: burst})
	t.Cleanup(l.Stop)
	return l
}

func TestRateLimit_CredentialMethods(t *testing.T) {
	c := startBufServer(t, WithRateLimiter(newLimiter(t, 2)))
	ctx := context.Background()
	creds := pb.Strings(map[string]string{pb.FieldEmail: "ghost@example.com", pb.FieldPassword: "x"})

	_, err := c.Login(ctx, creds)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	_, err = c.Register(ctx, pb.Strings(map[string]string{pb.FieldEmail: "new@example.com", pb.FieldPassword: "pw"}))
	require.NoError(t, err)

	_, err = c.Login(ctx, creds)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
	assert.Equal(t, "Too many requests", status.Convert(err).Message())

	_, err = c.Register(ctx, creds)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	_, err = c.Ping(ctx, nil)
	assert.NoError(t, err)
}

func TestRateLimit_BadTokenStillCounts(t *testing.T) {
	c := startBufServer(t, WithRateLimiter(newLimiter(t, 1)))
	creds := pb.Strings(map[string]string{pb.FieldEmail: "ghost@example.com", pb.FieldPassword: "x"})

	_, err := c.Login(bearerCtx("garbage"), creds)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = c.Login(context.Background(), creds)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}

func TestRateLimit_NoLimiter(t *testing.T) {
	c := startBufServer(t)
	creds := pb.Strings(map[string]string{pb.FieldEmail: "ghost@example.com", pb.FieldPassword: "x"})

	for i := 0; i < 5; i++ {
		_, err := c.Login(context.Background(), creds)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	}
}

func TestPeerIP(t *testing.T) {
	tcp := peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.ParseIP("10.1.2.3"), Port: 4444}})

	assert.Equal(t, "10.1.2.3", peerIP(tcp))
	assert.Equal(t, "unknown", peerIP(context.Background()))
}
