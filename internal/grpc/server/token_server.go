// Package server реализует внутренний gRPC-сервис проверки access-токенов
// для соседних бэкенд-сервисов.
//
// Сообщения построены на well-known типах protobuf: запрос
// google.protobuf.StringValue с токеном, ответ google.protobuf.Struct
// {valid, user_id, status}. Отказ возвращается как codes.Unauthenticated
// без подробностей.
package server

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
	"github.com/magabrotheeeer/auth-service/internal/models"
	"github.com/magabrotheeeer/auth-service/internal/services/errs"
)

const (
	// ServiceName полное имя gRPC-сервиса.
	ServiceName = "authapi.TokenService"
	// ValidateAccessTokenMethod полное имя метода проверки токена.
	ValidateAccessTokenMethod = "/" + ServiceName + "/ValidateAccessToken"
)

// Authenticator проверяет access-токен и возвращает активный аккаунт.
type Authenticator interface {
	AuthenticateUser(ctx context.Context, token string) (*models.Account, error)
}

// TokenServiceServer серверная часть authapi.TokenService.
type TokenServiceServer interface {
	ValidateAccessToken(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
}

// TokenServer реализует TokenServiceServer поверх Authenticator.
type TokenServer struct {
	auth Authenticator
	log  *slog.Logger
}

// NewTokenServer создаёт TokenServer.
func NewTokenServer(auth Authenticator, log *slog.Logger) *TokenServer {
	return &TokenServer{auth: auth, log: log}
}

// ValidateAccessToken проверяет токен по тем же правилам, что и HTTP
// user guard: подпись, срок, тип и активный аккаунт.
func (s *TokenServer) ValidateAccessToken(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	const op = "grpc.server.ValidateAccessToken"

	acc, err := s.auth.AuthenticateUser(ctx, req.GetValue())
	if err != nil {
		if _, ok := errs.From(err); ok {
			s.log.Debug("token rejected", sl.Op(op))
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		s.log.Error("token validation failed", sl.Op(op), sl.Err(err))
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"valid":   structpb.NewBoolValue(true),
		"user_id": structpb.NewStringValue(acc.ID),
		"status":  structpb.NewStringValue(string(acc.Status)),
	}}, nil
}

// Register регистрирует srv на gRPC-сервере.
func Register(s grpc.ServiceRegistrar, srv TokenServiceServer) {
	s.RegisterService(&TokenServiceDesc, srv)
}

// TokenServiceDesc описание authapi.TokenService для grpc.Server.
var TokenServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TokenServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ValidateAccessToken",
			Handler:    validateAccessTokenHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "authapi/token.proto",
}

func validateAccessTokenHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TokenServiceServer).ValidateAccessToken(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ValidateAccessTokenMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TokenServiceServer).ValidateAccessToken(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}
