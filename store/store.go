package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/jacentio/shelf/store"

// DynamoDBClient defines the DynamoDB operations used by the Store.
type DynamoDBClient interface {
	dynamodb.QueryAPIClient
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Store executes query and write specs against the catalog table.
type Store struct {
	client DynamoDBClient
	config Config
	logger *slog.Logger
	tracer trace.Tracer
}

// New creates a new Store instance.
func New(client DynamoDBClient, config Config) *Store {
	return NewWithLogger(client, config, nil)
}

// NewWithLogger creates a new Store instance that reports every call to logger.
func NewWithLogger(client DynamoDBClient, config Config, logger *slog.Logger) *Store {
	config.validate()
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		client: client,
		config: config,
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
}

// TableName returns the table the Store reads and writes.
func (s *Store) TableName() string {
	return s.config.TableName
}

// Query runs spec and returns the raw items in the order DynamoDB returned them.
// An empty result is not an error.
func (s *Store) Query(ctx context.Context, spec QuerySpec) ([]Item, error) {
	ctx, span := s.tracer.Start(ctx, "Store.Query", trace.WithAttributes(
		attribute.String("db.system", "dynamodb"),
		attribute.String("db.operation", "Query"),
		attribute.String("aws.dynamodb.table_names", s.config.TableName),
		attribute.String("shelf.query", spec.Name),
	))
	defer span.End()
	start := time.Now()

	input, err := spec.Input(s.config.TableName)
	if err != nil {
		return nil, s.fail(ctx, span, "query", spec.Name, start, err)
	}

	var items []Item
	paginator := dynamodb.NewQueryPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, s.fail(ctx, span, "query", spec.Name, start, err)
		}
		items = append(items, page.Items...)
	}

	span.SetAttributes(attribute.Int("shelf.item_count", len(items)))
	s.logger.InfoContext(ctx, "store query completed",
		slog.String("table", s.config.TableName),
		slog.String("query", spec.Name),
		slog.Int("item_count", len(items)),
		slog.Duration("duration", time.Since(start)),
	)
	return items, nil
}

// Put writes the spec's record, replacing any record with the same keys.
func (s *Store) Put(ctx context.Context, spec WriteSpec) error {
	ctx, span := s.tracer.Start(ctx, "Store.Put", trace.WithAttributes(
		attribute.String("db.system", "dynamodb"),
		attribute.String("db.operation", "PutItem"),
		attribute.String("aws.dynamodb.table_names", s.config.TableName),
		attribute.String("shelf.sort_key", spec.Record.SK),
	))
	defer span.End()
	start := time.Now()

	input, err := spec.Input(s.config.TableName)
	if err != nil {
		return s.fail(ctx, span, "put", spec.Record.SK, start, err)
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		return s.fail(ctx, span, "put", spec.Record.SK, start, err)
	}

	s.logger.InfoContext(ctx, "store put completed",
		slog.String("table", s.config.TableName),
		slog.String("sort_key", spec.Record.SK),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// fail wraps err in a StoreError and records it on the span and the log.
func (s *Store) fail(ctx context.Context, span trace.Span, op, subject string, start time.Time, err error) error {
	storeErr := &StoreError{Op: op, Table: s.config.TableName, Err: err}
	span.RecordError(storeErr)
	span.SetStatus(codes.Error, op+" failed")
	s.logger.ErrorContext(ctx, "store "+op+" failed",
		slog.String("table", s.config.TableName),
		slog.String("subject", subject),
		slog.Duration("duration", time.Since(start)),
		slog.String("error", err.Error()),
	)
	return storeErr
}
