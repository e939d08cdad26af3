package config

import (
	"context"
	"os"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type ctxKey string

const userIDKey ctxKey = "log_user_id"

var logger = logrus.New()

// Init configures the process-wide logger. Unknown levels fall back to info.
func Init(level string) {
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
}

func Logger() *logrus.Logger {
	return logger
}

// WithUserID tags ctx so that WithContext adds the user to every log line.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func WithContext(ctx context.Context) logrus.FieldLogger {
	fields := logrus.Fields{}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		fields["request_id"] = reqID
	}
	if userID, ok := ctx.Value(userIDKey).(string); ok && userID != "" {
		fields["user_id"] = userID
	}
	return logger.WithFields(fields)
}
