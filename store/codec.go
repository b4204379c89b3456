package store

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/shelf/internal/keys"
)

// Encode converts a Book into its stored Record.
// ID and Category are required and must not contain the key separator.
func Encode(b Book) (Record, error) {
	sk, err := keys.SortKey(b.ID, b.Category)
	if err != nil {
		return Record{}, err
	}
	if err := keys.ValidatePart("id", b.ID); err != nil {
		return Record{}, err
	}
	if err := keys.ValidatePart("category", b.Category); err != nil {
		return Record{}, err
	}

	rec := Record{
		PK: keys.PartitionKey(),
		SK: sk,
	}
	if b.Name != "" {
		name := b.Name
		rec.Name = &name
	}
	return rec, nil
}

// Item marshals the record into a DynamoDB item.
func (r Record) Item() (Item, error) {
	item, err := attributevalue.MarshalMap(r)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	return item, nil
}

// Decode converts a stored item back into a Book. Any structural mismatch is
// reported as a *DecodeError.
func Decode(item Item) (Book, error) {
	if err := checkShape(item); err != nil {
		return Book{}, err
	}

	var rec Record
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return Book{}, &DecodeError{Reason: "unmarshal", Err: err}
	}
	if rec.PK != keys.PartitionKey() {
		return Book{}, &DecodeError{Reason: fmt.Sprintf("partition %q is not a book", rec.PK)}
	}

	id, category, err := keys.ParseSortKey(rec.SK)
	if err != nil {
		return Book{}, &DecodeError{Reason: "sort key", Err: err}
	}

	b := Book{ID: id, Category: category}
	if rec.Name != nil {
		b.Name = *rec.Name
	}
	return b, nil
}

// DecodeMany decodes every item, preserving order. A failed item yields a Row
// carrying its error; the remaining items are still decoded.
func DecodeMany(items []Item) []Row {
	rows := make([]Row, len(items))
	for i, item := range items {
		b, err := Decode(item)
		rows[i] = Row{Book: b, Err: err}
	}
	return rows
}

// checkShape verifies attribute types before unmarshalling so mismatches
// produce a precise reason.
func checkShape(item Item) error {
	if item == nil {
		return &DecodeError{Reason: "empty item"}
	}
	for _, attr := range []string{keys.AttrPK, keys.AttrSK} {
		v, ok := item[attr]
		if !ok {
			return &DecodeError{Reason: "missing " + attr}
		}
		if _, ok := v.(*types.AttributeValueMemberS); !ok {
			return &DecodeError{Reason: attr + " is not a string"}
		}
	}
	switch item["name"].(type) {
	case nil, *types.AttributeValueMemberS, *types.AttributeValueMemberNULL:
	default:
		return &DecodeError{Reason: "name is not a string"}
	}
	return nil
}
