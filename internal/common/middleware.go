package common

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"socialhub/internal/logger"
	"socialhub/internal/metrics"
)

var publicMethods = map[string]bool{
	"/grpc.health.v1.Health/Check": true,
	"/grpc.health.v1.Health/Watch": true,
	"/grpc.health.v1.Health/List":  true,
}

// AuthInterceptor validates the bearer token in the "authorization" metadata and
// injects the moderator principal into the context. Only moderators may call
// non-public methods.
func AuthInterceptor(tv TokenValidator) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if publicMethods[info.FullMethod] || strings.HasPrefix(info.FullMethod, "/grpc.reflection.") {
			return handler(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}
		vals := md["authorization"]
		if len(vals) == 0 {
			return nil, status.Error(codes.Unauthenticated, "authorization required")
		}

		// vals[0] = Bearer <token>
		parts := strings.Fields(vals[0])
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return nil, status.Error(codes.Unauthenticated, "invalid auth header")
		}

		claims, err := tv.ValidToken(parts[1])
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid or expired token")
		}
		if claims.Kind != KindModerator {
			return nil, status.Error(codes.PermissionDenied, "moderator access required")
		}

		ctx = WithPrincipal(ctx, Principal{
			ID:       claims.PrincipalID,
			Kind:     claims.Kind,
			ModLevel: claims.ModLevel,
		})
		return handler(ctx, req)
	}
}

// ErrorInterceptor maps service errors to gRPC status codes and logs each call.
func ErrorInterceptor() grpc.UnaryServerInterceptor {
	m := metrics.Get()
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		mapped := GRPCStatus(err)

		code := status.Code(mapped)
		m.GRPCRequestsTotal.WithLabelValues(info.FullMethod, code.String()).Inc()
		if code == codes.Internal {
			logger.Log.Error("grpc call failed", zap.String("method", info.FullMethod), zap.Error(err))
		} else {
			logger.Log.Debug("grpc call", zap.String("method", info.FullMethod), zap.String("code", code.String()))
		}
		return resp, mapped
	}
}
