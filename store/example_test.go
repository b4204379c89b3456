package store_test

import (
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/shelf/store"
)

// Example shows how a book maps onto the single-table layout without making AWS calls.
func Example() {
	spec, err := store.PlanPut(store.Book{ID: "1", Category: "scifi", Name: "Dune"})
	if err != nil {
		log.Fatal(err)
	}

	input, err := spec.Input(store.DefaultTableName)
	if err != nil {
		log.Fatal(err)
	}

	pk := input.Item["PK"].(*types.AttributeValueMemberS).Value
	sk := input.Item["SK"].(*types.AttributeValueMemberS).Value
	fmt.Printf("Table: %s\n", *input.TableName)
	fmt.Printf("PK=%s SK=%s\n", pk, sk)

	// Output:
	// Table: booksTable
	// PK=book SK=1#scifi
}

// ExampleDecode demonstrates reading a stored item back into a Book.
func ExampleDecode() {
	b, err := store.Decode(store.Item{
		"PK":   &types.AttributeValueMemberS{Value: "book"},
		"SK":   &types.AttributeValueMemberS{Value: "42#fiction"},
		"name": &types.AttributeValueMemberS{Value: "Hitchhiker"},
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s / %s / %s\n", b.ID, b.Category, b.Name)

	// Output:
	// 42 / fiction / Hitchhiker
}

// ExamplePlanListByCategory shows the by-category query is a filter over the partition.
func ExamplePlanListByCategory() {
	input, err := store.PlanListByCategory("fic").Input("booksTable")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(input.FilterExpression != nil)
	for _, v := range input.ExpressionAttributeValues {
		if s := v.(*types.AttributeValueMemberS).Value; s != "book" {
			fmt.Println(s)
		}
	}

	// Output:
	// true
	// #fic
}
