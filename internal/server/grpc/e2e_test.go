package grpc

import (
	"context"
	"net"
	"testing"

	"github.com/dmitrijs2005/gophcourses/internal/common"
	"github.com/dmitrijs2005/gophcourses/internal/logging"
	pb "github.com/dmitrijs2005/gophcourses/internal/proto"
	"github.com/dmitrijs2005/gophcourses/internal/server/auth"
	"github.com/dmitrijs2005/gophcourses/internal/server/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func startBufServer(t *testing.T, opts ...Option) pb.AuthServiceClient {
	t.Helper()

	codec, err := auth.NewTokenCodec(testSecret)
	require.NoError(t, err)
	svc := users.NewService(users.NewInMemoryRepository(), auth.NewBcryptHasherWithCost(bcrypt.MinCost), codec, logging.Nop(), nil)

	s, err := NewGRPCServer("bufnet", logging.Nop(), svc, auth.NewAuthenticator(codec), nil, opts...)
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, lis) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return pb.NewAuthServiceClient(conn)
}

func bearerCtx(token string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), common.AuthorizationMetadataKey, "Bearer "+token)
}

func register(t *testing.T, c pb.AuthServiceClient, email, name string) string {
	t.Helper()
	ctx := context.Background()

	_, err := c.Register(ctx, pb.Strings(map[string]string{
		pb.FieldEmail: email, pb.FieldPassword: "pw-" + name, pb.FieldName: name, pb.FieldDate: "2024-01-01",
	}))
	require.NoError(t, err)

	resp, err := c.Login(ctx, pb.Strings(map[string]string{pb.FieldEmail: email, pb.FieldPassword: "pw-" + name}))
	require.NoError(t, err)
	return pb.String(resp, pb.FieldToken)
}

func TestEndToEnd(t *testing.T) {
	c := startBufServer(t)
	ctx := context.Background()

	aliceToken := register(t, c, "alice@example.com", "Alice")
	bobToken := register(t, c, "bob@example.com", "Bob")

	me, err := c.Me(bearerCtx(aliceToken), nil)
	require.NoError(t, err)
	assert.Equal(t, "Alice", pb.String(me, pb.FieldName))
	aliceID := pb.String(me, pb.FieldID)

	bobMe, err := c.Me(bearerCtx(bobToken), nil)
	require.NoError(t, err)
	bobID := pb.String(bobMe, pb.FieldID)

	t.Run("duplicate registration", func(t *testing.T) {
		_, err := c.Register(ctx, pb.Strings(map[string]string{pb.FieldEmail: "alice@example.com", pb.FieldPassword: "x"}))
		assert.Equal(t, codes.AlreadyExists, status.Code(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := c.Login(ctx, pb.Strings(map[string]string{pb.FieldEmail: "alice@example.com", pb.FieldPassword: "x"}))
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
		assert.Equal(t, "User or password incorrect", status.Convert(err).Message())
	})

	t.Run("anonymous me", func(t *testing.T) {
		_, err := c.Me(ctx, nil)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := c.Ping(bearerCtx("garbage"), nil)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
		assert.Equal(t, "You must be logged in - invalid token", status.Convert(err).Message())
	})

	t.Run("modify someone else", func(t *testing.T) {
		_, err := c.UpdateProfile(bearerCtx(aliceToken), pb.Strings(map[string]string{pb.FieldID: bobID, pb.FieldName: "X"}))
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("modify self", func(t *testing.T) {
		resp, err := c.UpdateProfile(bearerCtx(aliceToken), pb.Strings(map[string]string{pb.FieldID: aliceID, pb.FieldName: "Alicia"}))
		require.NoError(t, err)
		assert.Equal(t, users.MessageUserUpdated, pb.String(resp, pb.FieldMessage))

		me, err := c.Me(bearerCtx(aliceToken), nil)
		require.NoError(t, err)
		assert.Equal(t, "Alicia", pb.String(me, pb.FieldName))
	})

	t.Run("ping", func(t *testing.T) {
		resp, err := c.Ping(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, "OK", pb.String(resp, pb.FieldMessage))
	})
}
