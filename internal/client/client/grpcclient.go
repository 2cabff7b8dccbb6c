package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophcourses/internal/common"
	pb "github.com/dmitrijs2005/gophcourses/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const callTimeout = 10 * time.Second

// Profile is the account data returned by Me.
type Profile struct {
	ID    string
	Name  string
	Email string
	Date  string
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.AuthServiceClient
	token       string
}

func withToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationMetadataKey, common.BearerScheme+" "+token)

	return metadata.NewOutgoingContext(ctx, md)
}

// tokenInterceptor sends the token, if any, as authorization metadata.
func (s *GRPCClient) tokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if s.token != "" {
		ctx = withToken(ctx, s.token)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewGRPCClient(endpointURL, token string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, token: token}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.tokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewAuthServiceClient(conn)
	return c, nil
}

// SetToken replaces the token sent with later calls.
func (s *GRPCClient) SetToken(token string) {
	s.token = token
}

func (s *GRPCClient) Register(ctx context.Context, email, password, name, date string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.client.Register(ctx, pb.Strings(map[string]string{
		pb.FieldEmail:    email,
		pb.FieldPassword: password,
		pb.FieldName:     name,
		pb.FieldDate:     date,
	}))
	if err != nil {
		return "", s.mapError(err)
	}
	return pb.String(resp, pb.FieldMessage), nil
}

// Login returns the issued token. The client keeps using its own token
// until SetToken is called.
func (s *GRPCClient) Login(ctx context.Context, email, password string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.client.Login(ctx, pb.Strings(map[string]string{
		pb.FieldEmail:    email,
		pb.FieldPassword: password,
	}))
	if err != nil {
		return "", s.mapError(err)
	}
	return pb.String(resp, pb.FieldToken), nil
}

func (s *GRPCClient) Me(ctx context.Context) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.client.Me(ctx, &structpb.Struct{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &Profile{
		ID:    pb.String(resp, pb.FieldID),
		Name:  pb.String(resp, pb.FieldName),
		Email: pb.String(resp, pb.FieldEmail),
		Date:  pb.String(resp, pb.FieldDate),
	}, nil
}

func (s *GRPCClient) UpdateProfile(ctx context.Context, id, name, date string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.client.UpdateProfile(ctx, pb.Strings(map[string]string{
		pb.FieldID:   id,
		pb.FieldName: name,
		pb.FieldDate: date,
	}))
	if err != nil {
		return "", s.mapError(err)
	}
	return pb.String(resp, pb.FieldMessage), nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.client.Ping(ctx, &structpb.Struct{})
	if err != nil {
		return s.mapError(err)
	}

	if pb.String(resp, pb.FieldMessage) != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

// mapError keeps the server's message for auth failures and wraps it with
// ErrUnauthorized so callers can test for it.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return errors.New(st.Message())
	}
}
