package grpc

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/simaogato/wealthtrack-backend/internal/monitoring"
)

// authorizationHeader carries the API_TOKEN on every PerformanceService call.
// Client sets it on outgoing metadata.
const authorizationHeader = "authorization"

// AuthInterceptor guards the PerformanceService behind the shared API_TOKEN.
// Only the first authorization value is considered, and an empty configured
// token admits nobody. Rejections are codes.Unauthenticated.
func AuthInterceptor(apiToken string) grpc.UnaryServerInterceptor {
	expected := []byte(apiToken)
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		tokens := md.Get(authorizationHeader)
		if len(tokens) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing authorization header")
		}

		if len(expected) == 0 || subtle.ConstantTimeCompare([]byte(tokens[0]), expected) != 1 {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		return handler(ctx, req)
	}
}

// LoggingInterceptor returns a gRPC unary server interceptor that logs every call
// with its status code and latency, and records them in the RPC metrics.
// It is meant to run before AuthInterceptor so rejected calls are observed too.
func LoggingInterceptor(log logrus.FieldLogger, metrics *monitoring.Metrics) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		elapsed := time.Since(start)

		code := status.Code(err)
		metrics.RecordRPC(info.FullMethod, code.String(), elapsed)

		entry := log.WithFields(logrus.Fields{
			"method":   info.FullMethod,
			"code":     code.String(),
			"duration": elapsed,
		})
		switch code {
		case codes.OK:
			entry.Info("rpc completed")
		case codes.Internal, codes.Unknown:
			entry.WithError(err).Error("rpc failed")
		default:
			entry.WithError(err).Warn("rpc rejected")
		}

		return resp, err
	}
}
