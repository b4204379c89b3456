// Package lambdaenv builds the process-wide dependencies shared by the Lambda
// entry points from their environment.
package lambdaenv

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"

	"github.com/jacentio/shelf/store"
)

// Environment variable names read at cold start.
const (
	EnvTableName    = "BOOKS_TABLE_NAME"
	EnvEndpoint     = "DYNAMODB_ENDPOINT"
	EnvDecodePolicy = "BOOKS_DECODE_POLICY"
	EnvLogLevel     = "LOG_LEVEL"
)

// ParseLevel maps a LOG_LEVEL value to a slog level. Unknown values select info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// NewLogger returns a JSON logger writing to w at the level named by LOG_LEVEL.
func NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(os.Getenv(EnvLogLevel)),
	}))
}

// StoreConfig returns the store configuration with the table name from the environment.
func StoreConfig() store.Config {
	cfg := store.DefaultConfig()
	if name := os.Getenv(EnvTableName); name != "" {
		cfg.TableName = name
	}
	return cfg
}

// NewDynamoDBClient loads the default AWS configuration, instruments it with
// OpenTelemetry and honours DYNAMODB_ENDPOINT for local tables.
func NewDynamoDBClient(ctx context.Context) (*dynamodb.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	otelaws.AppendMiddlewares(&cfg.APIOptions)

	return dynamodb.NewFromConfig(cfg, WithEndpoint(os.Getenv(EnvEndpoint))), nil
}

// WithEndpoint overrides the DynamoDB endpoint when ep is not empty.
func WithEndpoint(ep string) func(*dynamodb.Options) {
	return func(o *dynamodb.Options) {
		if ep != "" {
			o.BaseEndpoint = aws.String(ep)
		}
	}
}

// TableHealth returns a probe that succeeds while the table can be described.
func TableHealth(client *dynamodb.Client, table string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
			TableName: aws.String(table),
		})
		if err != nil {
			return fmt.Errorf("describe table %s: %w", table, err)
		}
		return nil
	}
}
