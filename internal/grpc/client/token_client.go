// Package client клиент внутреннего gRPC-сервиса проверки токенов.
// Им пользуются соседние сервисы, которым нужен аккаунт по access-токену.
package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/magabrotheeeer/auth-service/internal/grpc/server"
)

// Principal результат проверки токена.
type Principal struct {
	UserID string
	Status string
}

// TokenClient вызывает authapi.TokenService.
type TokenClient struct {
	conn *grpc.ClientConn
}

// NewTokenClient создаёт клиента поверх готового соединения.
func NewTokenClient(conn *grpc.ClientConn) *TokenClient {
	return &TokenClient{conn: conn}
}

// Dial открывает соединение без TLS. Сервис рассчитан на внутреннюю сеть.
func Dial(addr string, opts ...grpc.DialOption) (*TokenClient, error) {
	const op = "grpc.client.Dial"

	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &TokenClient{conn: conn}, nil
}

// Close закрывает соединение.
func (c *TokenClient) Close() error {
	return c.conn.Close()
}

// ValidateAccessToken проверяет токен. Недействительный токен даёт
// ошибку со статусом codes.Unauthenticated.
func (c *TokenClient) ValidateAccessToken(ctx context.Context, token string) (*Principal, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, server.ValidateAccessTokenMethod, wrapperspb.String(token), out); err != nil {
		return nil, err
	}
	fields := out.GetFields()
	return &Principal{
		UserID: fields["user_id"].GetStringValue(),
		Status: fields["status"].GetStringValue(),
	}, nil
}
