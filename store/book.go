package store

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Item is a raw DynamoDB item.
type Item = map[string]types.AttributeValue

// Book is the catalog entity as exchanged with clients.
// ID and Category may be empty in a request payload but are required for storage.
type Book struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Name     string `json:"name"`
}

// Record is the stored representation of a Book.
type Record struct {
	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`

	// Name is nil when the book has no name; it is stored as a NULL attribute.
	Name *string `dynamodbav:"name"`
}

// Row is the result of decoding one stored item: either a Book or the reason it
// could not be decoded. Callers decide whether to drop, surface or abort on failures.
type Row struct {
	Book Book
	Err  error
}

// OK reports whether the row decoded successfully.
func (r Row) OK() bool {
	return r.Err == nil
}
