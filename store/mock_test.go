package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/shelf/internal/keys"
)

type apiCall[T, U any] func(context.Context, *T, ...func(*dynamodb.Options)) (*U, error)

// mockClient is an expectation-based DynamoDBClient. Unset calls fail the test.
type mockClient struct {
	QueryFunc apiCall[dynamodb.QueryInput, dynamodb.QueryOutput]
	PutFunc   apiCall[dynamodb.PutItemInput, dynamodb.PutItemOutput]
}

var _ DynamoDBClient = (*mockClient)(nil)

func newMockClient(t *testing.T) *mockClient {
	return &mockClient{
		QueryFunc: unexpected[dynamodb.QueryInput, dynamodb.QueryOutput](t),
		PutFunc:   unexpected[dynamodb.PutItemInput, dynamodb.PutItemOutput](t),
	}
}

func unexpected[T, U any](t *testing.T) apiCall[T, U] {
	return func(ctx context.Context, params *T, optFns ...func(*dynamodb.Options)) (*U, error) {
		t.Helper()
		t.Fatal("unexpected call")
		return nil, nil
	}
}

func (m *mockClient) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return m.QueryFunc(ctx, params, optFns...)
}

func (m *mockClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return m.PutFunc(ctx, params, optFns...)
}

// memTable is an in-memory single partition that evaluates the planner's
// conditions with the same predicates DynamoDB applies.
type memTable struct {
	mu    sync.Mutex
	items map[string]Item
}

var _ DynamoDBClient = (*memTable)(nil)

func newMemTable() *memTable {
	return &memTable{items: make(map[string]Item)}
}

func (m *memTable) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sk := params.Item[keys.AttrSK].(*types.AttributeValueMemberS).Value
	m.items[sk] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

// putRaw stores an item under sk without going through the codec.
func (m *memTable) putRaw(sk string, item Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[sk] = item
}

func (m *memTable) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// The only placeholder value besides the partition is the prefix or substring.
	var operand string
	for _, v := range params.ExpressionAttributeValues {
		if s, ok := v.(*types.AttributeValueMemberS); ok && s.Value != keys.PartitionKey() {
			operand = s.Value
		}
	}
	byPrefix := strings.Contains(*params.KeyConditionExpression, "begins_with")
	byContains := params.FilterExpression != nil

	sks := make([]string, 0, len(m.items))
	for sk := range m.items {
		sks = append(sks, sk)
	}
	sort.Strings(sks)

	out := &dynamodb.QueryOutput{}
	for _, sk := range sks {
		if byPrefix && !strings.HasPrefix(sk, operand) {
			continue
		}
		if byContains && !strings.Contains(sk, operand) {
			continue
		}
		out.Items = append(out.Items, m.items[sk])
	}
	out.Count = int32(len(out.Items))
	return out, nil
}

func bookItem(id, category, name string) Item {
	return Item{
		keys.AttrPK: &types.AttributeValueMemberS{Value: keys.PartitionKey()},
		keys.AttrSK: &types.AttributeValueMemberS{Value: id + keys.Separator + category},
		"name":      &types.AttributeValueMemberS{Value: name},
	}
}
