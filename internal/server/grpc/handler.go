package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophcourses/internal/common"
	pb "github.com/dmitrijs2005/gophcourses/internal/proto"
	"github.com/dmitrijs2005/gophcourses/internal/server/auth"
	"github.com/dmitrijs2005/gophcourses/internal/server/users"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// UserService is the account API the handlers call.
type UserService interface {
	Register(ctx context.Context, in users.RegisterInput) (*users.Result, error)
	Login(ctx context.Context, in users.LoginInput) (*users.Result, error)
	UpdateProfile(ctx context.Context, id auth.Identity, targetID string, upd users.ProfileUpdate) (*users.Result, error)
	Profile(ctx context.Context, id auth.Identity) (*users.Profile, error)
}

func (s *GRPCServer) Register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	res, err := s.users.Register(ctx, users.RegisterInput{
		Email:    pb.String(req, pb.FieldEmail),
		Password: pb.String(req, pb.FieldPassword),
		Name:     pb.String(req, pb.FieldName),
		Date:     pb.String(req, pb.FieldDate),
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return resultStruct(res), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	res, err := s.users.Login(ctx, users.LoginInput{
		Email:    pb.String(req, pb.FieldEmail),
		Password: pb.String(req, pb.FieldPassword),
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return resultStruct(res), nil
}

func (s *GRPCServer) Me(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	p, err := s.users.Profile(ctx, auth.IdentityFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return pb.Strings(map[string]string{
		pb.FieldID:    p.ID,
		pb.FieldName:  p.Name,
		pb.FieldEmail: p.Email,
		pb.FieldDate:  p.Date,
	}), nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	res, err := s.users.UpdateProfile(ctx, auth.IdentityFromContext(ctx), pb.String(req, pb.FieldID), users.ProfileUpdate{
		Name: pb.String(req, pb.FieldName),
		Date: pb.String(req, pb.FieldDate),
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return resultStruct(res), nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return pb.Strings(map[string]string{pb.FieldMessage: "OK"}), nil
}

func resultStruct(r *users.Result) *structpb.Struct {
	return pb.Strings(map[string]string{
		pb.FieldMessage: r.Message,
		pb.FieldToken:   r.Token,
	})
}

// toStatus maps a service error to a gRPC status carrying the public
// message. Unknown errors are logged and reported as Internal.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	msg := common.PublicMessage(err)
	switch {
	case errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument, msg)
	case errors.Is(err, common.ErrDuplicateAccount):
		return status.Error(codes.AlreadyExists, msg)
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrMalformedHeader),
		errors.Is(err, common.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, msg)
	case errors.Is(err, common.ErrForbidden):
		return status.Error(codes.PermissionDenied, msg)
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, msg)
	default:
		s.logger.Error(ctx, "call failed", "error", err.Error())
		return status.Error(codes.Internal, msg)
	}
}
