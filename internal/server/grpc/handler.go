package grpc

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	pb "github.com/dmitrijs2005/authkeeper/internal/proto"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// kindToCode maps the error taxonomy onto gRPC codes. This is the only
// place where the mapping happens.
func kindToCode(kind common.Kind) codes.Code {
	switch kind {
	case common.KindInvalidArgument:
		return codes.InvalidArgument
	case common.KindAlreadyExists:
		return codes.AlreadyExists
	case common.KindNotFound:
		return codes.NotFound
	case common.KindUnauthenticated:
		return codes.Unauthenticated
	case common.KindPermissionDenied:
		return codes.PermissionDenied
	default:
		return codes.Internal
	}
}

// statusFromError converts a service error to a gRPC status. Internal
// causes stay in the log; the caller sees a generic message.
func (s *GRPCServer) statusFromError(ctx context.Context, err error) error {
	kind := common.KindOf(err)
	if kind == common.KindInternal {
		s.logger.Error(ctx, "internal error", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
	return status.Error(kindToCode(kind), err.Error())
}

func toProtoUser(u *models.Summary) *pb.User {
	if u == nil {
		return nil
	}
	return &pb.User{
		Id:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func (s *GRPCServer) SignUp(ctx context.Context, req *pb.SignUpRequest) (*pb.SignUpResponse, error) {

	s.logger.Info(ctx, "Registration request")

	user, err := s.auth.SignUp(ctx, req.GetEmail(), req.GetPassword(), req.GetFirstName(), req.GetLastName())
	if err != nil {
		return nil, s.statusFromError(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "email", user.Email)
	return &pb.SignUpResponse{
		Success: true,
		Message: "User registered successfully",
		User:    toProtoUser(user),
	}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {

	result, err := s.auth.Login(ctx, req.GetEmail(), req.GetPassword())
	if err != nil {
		return nil, s.statusFromError(ctx, err)
	}

	return &pb.LoginResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
		User:         toProtoUser(result.User),
	}, nil
}

func (s *GRPCServer) ValidateToken(ctx context.Context, req *pb.ValidateTokenRequest) (*pb.ValidateTokenResponse, error) {

	check, err := s.auth.ValidateToken(ctx, req.GetAccessToken())
	if err != nil {
		return nil, s.statusFromError(ctx, err)
	}

	return &pb.ValidateTokenResponse{
		Valid:   check.Valid,
		User:    toProtoUser(check.User),
		Message: check.Message,
	}, nil
}

func (s *GRPCServer) ForgotPassword(ctx context.Context, req *pb.ForgotPasswordRequest) (*pb.ForgotPasswordResponse, error) {

	if err := s.auth.ForgotPassword(ctx, req.GetEmail()); err != nil {
		return nil, s.statusFromError(ctx, err)
	}

	return &pb.ForgotPasswordResponse{
		Success: true,
		Message: "If your email is registered, you will receive a password reset link",
	}, nil
}

func (s *GRPCServer) ResetPassword(ctx context.Context, req *pb.ResetPasswordRequest) (*pb.ResetPasswordResponse, error) {

	if err := s.auth.ResetPassword(ctx, req.GetToken(), req.GetNewPassword()); err != nil {
		return nil, s.statusFromError(ctx, err)
	}

	return &pb.ResetPasswordResponse{
		Success: true,
		Message: "Password reset successfully",
	}, nil
}
