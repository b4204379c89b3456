// Package api serves the book catalog over a Lambda Function URL.
package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jacentio/shelf/internal/keys"
	"github.com/jacentio/shelf/store"
)

// BookStore defines the catalog operations the handler needs.
type BookStore interface {
	GetBook(ctx context.Context, id string) (store.Book, error)
	ListBooks(ctx context.Context) ([]store.Row, error)
	ListBooksByCategory(ctx context.Context, category string) ([]store.Row, error)
	PutBook(ctx context.Context, b store.Book) error
}

// HealthFunc reports whether the service is healthy.
type HealthFunc func(ctx context.Context) error

// Handler routes Function URL requests to the catalog.
type Handler struct {
	books  BookStore
	config Config
	logger *slog.Logger
	health HealthFunc
	tracer trace.Tracer
}

// New creates a Handler. A nil logger uses slog.Default().
func New(books BookStore, config Config, logger *slog.Logger) *Handler {
	config.validate()
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		books:  books,
		config: config,
		logger: logger,
		health: func(context.Context) error { return nil },
		tracer: otel.Tracer("github.com/jacentio/shelf/api"),
	}
}

// SetHealthCheck replaces the health probe used by GET /health/.
func (h *Handler) SetHealthCheck(fn HealthFunc) {
	if fn != nil {
		h.health = fn
	}
}

// request carries the parsed parts of one invocation.
type request struct {
	id       string
	method   string
	segments []string
	body     []byte
}

// Handle serves one Function URL invocation. Failures are reported as HTTP
// responses; the returned error is always nil so the runtime never retries.
func (h *Handler) Handle(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	req, err := parseRequest(ctx, event)
	if err != nil {
		return errorResponse(http.StatusBadRequest, msgInvalidBody), nil
	}

	ctx, span := h.tracer.Start(ctx, "BooksAPI", trace.WithAttributes(
		attribute.String("http.request.method", req.method),
		attribute.String("url.path", event.RawPath),
		attribute.String("request_id", req.id),
	))
	defer span.End()

	h.logger.InfoContext(ctx, "Request received",
		slog.String("request_id", req.id),
		slog.String("method", req.method),
		slog.String("path", event.RawPath),
	)

	resp := h.route(ctx, req)

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, resp.Body)
	}
	h.logger.InfoContext(ctx, "Request completed",
		slog.String("request_id", req.id),
		slog.Int("status", resp.StatusCode),
	)
	return resp, nil
}

func (h *Handler) route(ctx context.Context, req request) events.LambdaFunctionURLResponse {
	seg := req.segments
	switch {
	case len(seg) == 1 && seg[0] == "health":
		if req.method != http.MethodGet {
			return errorResponse(http.StatusMethodNotAllowed, msgMethodNotAllow)
		}
		return h.checkHealth(ctx, req)

	case len(seg) == 1 && seg[0] == "books":
		switch req.method {
		case http.MethodGet:
			return h.listBooks(ctx, req)
		case http.MethodPost:
			return h.addBook(ctx, req)
		}
		return errorResponse(http.StatusMethodNotAllowed, msgMethodNotAllow)

	case len(seg) == 2 && seg[0] == "books":
		if req.method != http.MethodGet {
			return errorResponse(http.StatusMethodNotAllowed, msgMethodNotAllow)
		}
		return h.getBook(ctx, req, seg[1])

	case len(seg) == 3 && seg[0] == "books" && seg[2] == "category":
		if req.method != http.MethodGet {
			return errorResponse(http.StatusMethodNotAllowed, msgMethodNotAllow)
		}
		return h.listByCategory(ctx, req, seg[1])
	}
	return errorResponse(http.StatusNotFound, msgNotFound)
}

func (h *Handler) getBook(ctx context.Context, req request, id string) events.LambdaFunctionURLResponse {
	b, err := h.books.GetBook(ctx, id)
	if err == nil {
		return jsonResponse(http.StatusOK, b)
	}

	var decodeErr *store.DecodeError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return errorResponse(http.StatusNotFound, msgItemNotFound)
	case errors.As(err, &decodeErr):
		h.logger.WarnContext(ctx, "Failed to decode book",
			slog.String("request_id", req.id),
			slog.String("book_id", id),
			slog.String("error", err.Error()),
		)
		switch h.config.DecodePolicy {
		case DecodeDrop:
			return errorResponse(http.StatusNotFound, msgItemNotFound)
		case DecodeAbort:
			return errorResponse(http.StatusInternalServerError, msgDeserializeFail)
		}
		return errorResponse(http.StatusOK, msgDeserializeFail)
	}

	h.logger.ErrorContext(ctx, "Failed to query items",
		slog.String("request_id", req.id),
		slog.String("book_id", id),
		slog.String("error", err.Error()),
	)
	return errorResponse(http.StatusInternalServerError, msgQueryFailed)
}

func (h *Handler) listBooks(ctx context.Context, req request) events.LambdaFunctionURLResponse {
	rows, err := h.books.ListBooks(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to query items",
			slog.String("request_id", req.id),
			slog.String("error", err.Error()),
		)
		return errorResponse(http.StatusInternalServerError, msgQueryFailed)
	}
	return h.rowsResponse(ctx, req, rows)
}

func (h *Handler) listByCategory(ctx context.Context, req request, category string) events.LambdaFunctionURLResponse {
	rows, err := h.books.ListBooksByCategory(ctx, category)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to query items",
			slog.String("request_id", req.id),
			slog.String("category", category),
			slog.String("error", err.Error()),
		)
		return errorResponse(http.StatusInternalServerError, msgQueryFailed)
	}
	return h.rowsResponse(ctx, req, rows)
}

// rowsResponse renders decoded rows according to the decode policy.
func (h *Handler) rowsResponse(ctx context.Context, req request, rows []store.Row) events.LambdaFunctionURLResponse {
	list := make([]any, 0, len(rows))
	failed := 0
	for _, row := range rows {
		if row.OK() {
			list = append(list, row.Book)
			continue
		}
		failed++
		if h.config.DecodePolicy == DecodeInline {
			list = append(list, errorBody{Error: msgDeserializeFail})
		}
	}

	if failed > 0 {
		h.logger.WarnContext(ctx, "Failed to decode items",
			slog.String("request_id", req.id),
			slog.Int("failed_count", failed),
			slog.String("policy", string(h.config.DecodePolicy)),
		)
		if h.config.DecodePolicy == DecodeAbort {
			return errorResponse(http.StatusInternalServerError, msgDeserializeFail)
		}
	}

	if len(list) == 0 {
		return errorResponse(http.StatusNotFound, msgNoItemsFound)
	}
	return jsonResponse(http.StatusOK, list)
}

func (h *Handler) addBook(ctx context.Context, req request) events.LambdaFunctionURLResponse {
	var b store.Book
	if err := json.Unmarshal(req.body, &b); err != nil {
		return errorResponse(http.StatusBadRequest, msgInvalidBody)
	}

	h.logger.InfoContext(ctx, "Adding book",
		slog.String("request_id", req.id),
		slog.String("book_id", b.ID),
		slog.String("category", b.Category),
	)

	err := h.books.PutBook(ctx, b)
	switch {
	case err == nil:
		return jsonResponse(http.StatusOK, msgBody{Msg: msgItemAdded})
	case errors.Is(err, keys.ErrMissingID),
		errors.Is(err, keys.ErrMissingCategory),
		errors.Is(err, keys.ErrSeparatorInPart):
		return errorResponse(http.StatusBadRequest, strings.TrimPrefix(err.Error(), "shelf: "))
	}

	h.logger.ErrorContext(ctx, "Failed to add item to DynamoDB",
		slog.String("request_id", req.id),
		slog.String("error", err.Error()),
	)
	return errorResponse(http.StatusInternalServerError, msgAddFailed)
}

func (h *Handler) checkHealth(ctx context.Context, req request) events.LambdaFunctionURLResponse {
	if err := h.health(ctx); err != nil {
		h.logger.ErrorContext(ctx, "Health check failed",
			slog.String("request_id", req.id),
			slog.String("error", err.Error()),
		)
		return textResponse(http.StatusInternalServerError, msgNotHealthy)
	}
	return textResponse(http.StatusOK, msgHealthy)
}

// parseRequest extracts method, path segments and body from the event.
func parseRequest(ctx context.Context, event events.LambdaFunctionURLRequest) (request, error) {
	req := request{
		id:     requestID(ctx, event),
		method: strings.ToUpper(event.RequestContext.HTTP.Method),
	}

	for _, part := range strings.Split(strings.Trim(event.RawPath, "/"), "/") {
		if part == "" {
			continue
		}
		seg, err := url.PathUnescape(part)
		if err != nil {
			seg = part
		}
		req.segments = append(req.segments, seg)
	}

	if event.IsBase64Encoded {
		body, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return req, err
		}
		req.body = body
	} else {
		req.body = []byte(event.Body)
	}
	return req, nil
}

// requestID prefers the Lambda request id and falls back to the Function URL
// request id, then to a generated one for local invocations.
func requestID(ctx context.Context, event events.LambdaFunctionURLRequest) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	if event.RequestContext.RequestID != "" {
		return event.RequestContext.RequestID
	}
	return uuid.NewString()
}
