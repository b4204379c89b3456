package store

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/jacentio/shelf/internal/keys"
)

// QuerySpec describes a read against the book partition, independent of the table
// it is executed against.
type QuerySpec struct {
	// Name identifies the access pattern in logs and traces.
	Name string

	// KeyCondition selects items by key.
	KeyCondition expression.KeyConditionBuilder

	// Filter is an optional condition applied after the key condition.
	Filter expression.ConditionBuilder
}

// WriteSpec describes an unconditional put of one record.
type WriteSpec struct {
	Record Record
}

func partitionCondition() expression.KeyConditionBuilder {
	return expression.Key(keys.AttrPK).Equal(expression.Value(keys.PartitionKey()))
}

// PlanGetByID matches every record whose sort key starts with "<id>#".
// One id may match several categories.
func PlanGetByID(id string) QuerySpec {
	return QuerySpec{
		Name: "get_by_id",
		KeyCondition: partitionCondition().And(
			expression.Key(keys.AttrSK).BeginsWith(keys.PrefixForID(id)),
		),
	}
}

// PlanListAll matches every record in the book partition.
func PlanListAll() QuerySpec {
	return QuerySpec{
		Name:         "list_all",
		KeyCondition: partitionCondition(),
	}
}

// PlanListByCategory scans the book partition and keeps records whose sort key
// contains "#<category>".
func PlanListByCategory(category string) QuerySpec {
	return QuerySpec{
		Name:         "list_by_category",
		KeyCondition: partitionCondition(),
		Filter:       expression.Name(keys.AttrSK).Contains(keys.SuffixForCategory(category)),
	}
}

// PlanPut encodes the book for an unconditional write. An existing record with the
// same (id, category) is overwritten.
func PlanPut(b Book) (WriteSpec, error) {
	rec, err := Encode(b)
	if err != nil {
		return WriteSpec{}, err
	}
	return WriteSpec{Record: rec}, nil
}

// Input builds the DynamoDB query request for table.
func (q QuerySpec) Input(table string) (*dynamodb.QueryInput, error) {
	builder := expression.NewBuilder().WithKeyCondition(q.KeyCondition)
	if q.Filter.IsSet() {
		builder = builder.WithFilter(q.Filter)
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build %s expression: %w", q.Name, err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if q.Filter.IsSet() {
		input.FilterExpression = expr.Filter()
	}
	return input, nil
}

// Input builds the DynamoDB put request for table.
func (w WriteSpec) Input(table string) (*dynamodb.PutItemInput, error) {
	item, err := w.Record.Item()
	if err != nil {
		return nil, err
	}
	return &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	}, nil
}
