package middleware

import (
	"context"
	"log/slog"
	"time"

	apiclient "github.com/Equilibriumty/typesafe-api-client"
)

// LoggingInterceptor creates an interceptor that logs client calls using slog.
// It logs the start and end of each call, including status, duration and error.
func LoggingInterceptor(logger *slog.Logger) apiclient.Interceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, req *apiclient.Request, next apiclient.Invoker) (*apiclient.Response, error) {
		start := time.Now()

		endpoint := string(req.Method) + " " + req.URL
		if def, ok := apiclient.EndpointFromContext(ctx); ok {
			endpoint = def.ID()
		}

		logger.InfoContext(ctx, "request started",
			slog.String("endpoint", endpoint),
			slog.String("url", req.URL),
		)

		res, err := next(ctx, req)
		duration := time.Since(start)

		if err != nil {
			logger.ErrorContext(ctx, "request failed",
				slog.String("endpoint", endpoint),
				slog.Duration("duration", duration),
				slog.Any("error", err),
			)
		} else {
			status := 0
			if res != nil {
				status = res.StatusCode
			}
			logger.InfoContext(ctx, "request completed",
				slog.String("endpoint", endpoint),
				slog.Int("status", status),
				slog.Duration("duration", duration),
			)
		}

		return res, err
	}
}
