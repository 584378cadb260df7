package grpc

import (
	"context"
	"path"
	"strings"

	"github.com/dmitrijs2005/swappool/internal/common"
	pb "github.com/dmitrijs2005/swappool/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "userID"

type access int

const (
	tokenRequired access = iota
	tokenOptional
	public
)

var methodAccess = map[string]access{
	pb.FullMethod("StartSession"): public,
	pb.FullMethod("Ping"):         public,
	pb.FullMethod("Next"):         tokenOptional,
}

func accessFor(fullMethod string) access {
	if !strings.HasPrefix(fullMethod, "/"+pb.ServiceName+"/") {
		// health and other infrastructure services
		return public
	}
	if a, ok := methodAccess[fullMethod]; ok {
		return a
	}
	return tokenRequired
}

// UserIDFromContext returns the caller set by the token interceptor, or ""
// for anonymous calls.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func accessTokenFrom(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(common.AccessTokenHeaderName)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	level := accessFor(info.FullMethod)
	if level == public {
		return handler(ctx, req)
	}

	accessToken := accessTokenFrom(ctx)
	if len(accessToken) == 0 {
		if level == tokenOptional {
			return handler(ctx, req)
		}
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	userID, err := s.sessions.Verify(accessToken)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	ctx = context.WithValue(ctx, userIDKey, userID)
	return handler(ctx, req)
}

func (s *GRPCServer) observeInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	if s.observer != nil {
		s.observer.ObserveRPC(path.Base(info.FullMethod), status.Code(err).String())
	}
	return resp, err
}
