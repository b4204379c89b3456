// Package main implements the books change feed Lambda, a DynamoDB Streams consumer.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda/xrayconfig"
	"go.opentelemetry.io/otel"

	"github.com/jacentio/shelf/internal/lambdaenv"
	"github.com/jacentio/shelf/stream"
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

	h := stream.NewHandler(logger)
	lambda.Start(otellambda.InstrumentHandler(h.HandleChanges, xrayconfig.WithRecommendedOptions(tp)...))
}
