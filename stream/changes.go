// Package stream consumes the catalog table's DynamoDB stream.
package stream

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/shelf/internal/keys"
	"github.com/jacentio/shelf/store"
)

// Handler reports books written to the catalog table.
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a new stream handler.
func NewHandler(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger: logger,
	}
}

// HandleChanges logs every book inserted or replaced in the batch.
// Records of other entity kinds, removals and undecodable images are skipped;
// none of them fail the batch, so the stream never blocks on bad data.
func (h *Handler) HandleChanges(ctx context.Context, event events.DynamoDBEvent) error {
	stored := 0
	for _, record := range event.Records {
		if h.processRecord(ctx, record) {
			stored++
		}
	}
	h.logger.InfoContext(ctx, "stream batch processed",
		"records", len(event.Records),
		"booksStored", stored,
	)
	return nil
}

// processRecord reports whether the record described a stored book.
func (h *Handler) processRecord(ctx context.Context, record events.DynamoDBEventRecord) bool {
	if record.EventName != string(events.DynamoDBOperationTypeInsert) &&
		record.EventName != string(events.DynamoDBOperationTypeModify) {
		return false
	}
	if getStringAttr(record.Change.NewImage, keys.AttrPK) != keys.PartitionKey() {
		return false
	}

	b, err := store.Decode(ConvertStreamImage(record.Change.NewImage))
	if err != nil {
		h.logger.WarnContext(ctx, "skipping undecodable book image",
			"eventID", record.EventID,
			"sortKey", getStringAttr(record.Change.NewImage, keys.AttrSK),
			"error", err,
		)
		return false
	}

	h.logger.InfoContext(ctx, "book stored",
		"eventID", record.EventID,
		"eventName", record.EventName,
		"id", b.ID,
		"category", b.Category,
		"name", b.Name,
	)
	return true
}

// getStringAttr extracts a string attribute from a DynamoDB stream image.
func getStringAttr(image map[string]events.DynamoDBAttributeValue, key string) string {
	if v, ok := image[key]; ok && v.DataType() == events.DataTypeString {
		return v.String()
	}
	return ""
}

// ConvertStreamImage converts a DynamoDB stream image to an SDK item so it can be
// decoded with the same codec as query results.
func ConvertStreamImage(image map[string]events.DynamoDBAttributeValue) store.Item {
	if image == nil {
		return nil
	}
	result := make(store.Item, len(image))
	for k, v := range image {
		if av := convertValue(v); av != nil {
			result[k] = av
		}
	}
	return result
}

func convertValue(v events.DynamoDBAttributeValue) types.AttributeValue {
	switch v.DataType() {
	case events.DataTypeString:
		return &types.AttributeValueMemberS{Value: v.String()}
	case events.DataTypeNumber:
		return &types.AttributeValueMemberN{Value: v.Number()}
	case events.DataTypeBinary:
		return &types.AttributeValueMemberB{Value: v.Binary()}
	case events.DataTypeBoolean:
		return &types.AttributeValueMemberBOOL{Value: v.Boolean()}
	case events.DataTypeNull:
		return &types.AttributeValueMemberNULL{Value: true}
	case events.DataTypeStringSet:
		return &types.AttributeValueMemberSS{Value: v.StringSet()}
	case events.DataTypeNumberSet:
		return &types.AttributeValueMemberNS{Value: v.NumberSet()}
	case events.DataTypeBinarySet:
		return &types.AttributeValueMemberBS{Value: v.BinarySet()}
	case events.DataTypeList:
		list := make([]types.AttributeValue, 0, len(v.List()))
		for _, item := range v.List() {
			if av := convertValue(item); av != nil {
				list = append(list, av)
			}
		}
		return &types.AttributeValueMemberL{Value: list}
	case events.DataTypeMap:
		return &types.AttributeValueMemberM{Value: ConvertStreamImage(v.Map())}
	}
	return nil
}
