// Package main implements the books API Lambda handler behind a Function URL.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda/xrayconfig"
	"go.opentelemetry.io/otel"

	"github.com/jacentio/shelf/api"
	"github.com/jacentio/shelf/internal/lambdaenv"
	"github.com/jacentio/shelf/store"
)

var logger = lambdaenv.NewLogger(os.Stdout)

func main() {
	ctx := context.Background()

	tp, err := xrayconfig.NewTracerProvider(ctx)
	if err != nil {
		logger.Error("FATAL: Failed to initialize tracer provider", slog.String("error", err.Error()))
		panic(err)
	}
	otel.SetTracerProvider(tp)

	policy, err := api.ParseDecodePolicy(os.Getenv(lambdaenv.EnvDecodePolicy))
	if err != nil {
		logger.Error("FATAL: Invalid decode policy", slog.String("error", err.Error()))
		panic(err)
	}

	dynamoClient, err := lambdaenv.NewDynamoDBClient(ctx)
	if err != nil {
		logger.Error("FATAL: Failed to load AWS config", slog.String("error", err.Error()))
		panic(err)
	}

	books := store.NewWithLogger(dynamoClient, lambdaenv.StoreConfig(), logger)

	h := api.New(books, api.Config{DecodePolicy: policy}, logger)
	h.SetHealthCheck(lambdaenv.TableHealth(dynamoClient, books.TableName()))

	logger.Info("Books API starting",
		slog.String("table", books.TableName()),
		slog.String("decode_policy", string(policy)),
	)
	lambda.Start(otellambda.InstrumentHandler(h.Handle, xrayconfig.WithRecommendedOptions(tp)...))
}
