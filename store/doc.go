// Package store provides the DynamoDB access layer for the book catalog.
//
// The catalog uses a single-table design. Every book lives in the "book" partition
// and is addressed by the sort key "<id>#<category>":
//
//	| PK   | SK          | name |
//	| ==== | =========== | ==== |
//	| book | 1#scifi     | Dune |
//	| book | 42#fiction  | ...  |
//
// # Layers
//
//   - [Encode] / [Decode] / [DecodeMany] convert between [Book] and the stored [Record].
//   - [PlanGetByID], [PlanListAll], [PlanListByCategory] and [PlanPut] describe the
//     supported access patterns as [QuerySpec] and [WriteSpec] values.
//   - [Store] executes specs against DynamoDB and wraps every failure in [StoreError].
//   - [Store.GetBook], [Store.ListBooks], [Store.ListBooksByCategory] and [Store.PutBook]
//     compose the layers for callers such as the HTTP handlers.
//
// # Access patterns
//
// Lookup by id is a key condition (begins_with on "<id>#") and may match several
// categories. Listing by category is a filter (contains on "#<category>") evaluated
// over the whole partition, so a category that is a substring of another also matches
// it ("fic" matches "fiction").
//
// # Errors
//
//   - [ErrNotFound] - no book with the requested id
//   - [StoreError] - the DynamoDB call failed
//   - [DecodeError] - a stored item does not have the book shape
//   - keys.ErrMissingID, keys.ErrMissingCategory, keys.ErrSeparatorInPart - rejected writes
package store
