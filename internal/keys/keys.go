// Package keys maps a book's logical identity onto the table's partition and sort keys.
//
// Every book shares the partition key "book". The sort key is "<id>#<category>", so a
// begins_with on "<id>#" finds every category of one id and a contains on "#<category>"
// finds every id of one category.
package keys

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// AttrPK is the partition key attribute.
	AttrPK = "PK"
	// AttrSK is the sort key attribute.
	AttrSK = "SK"

	// Separator joins id and category in the sort key.
	Separator = "#"

	bookPartition = "book"
)

var (
	// ErrMissingID is returned when a sort key is requested without an id.
	ErrMissingID = errors.New("shelf: id is required")

	// ErrMissingCategory is returned when a sort key is requested without a category.
	ErrMissingCategory = errors.New("shelf: category is required")

	// ErrSeparatorInPart is returned when an id or category contains the separator.
	ErrSeparatorInPart = errors.New("shelf: key part must not contain " + Separator)

	// ErrMalformedSortKey is returned when a stored sort key has no separator.
	ErrMalformedSortKey = errors.New("shelf: malformed sort key")
)

// PartitionKey returns the discriminator shared by every book record.
func PartitionKey() string {
	return bookPartition
}

// SortKey composes the sort key for (id, category).
func SortKey(id, category string) (string, error) {
	if id == "" {
		return "", ErrMissingID
	}
	if category == "" {
		return "", ErrMissingCategory
	}
	return id + Separator + category, nil
}

// PrefixForID returns the sort key prefix shared by all categories of id.
func PrefixForID(id string) string {
	return id + Separator
}

// SuffixForCategory returns the sort key fragment shared by all ids of category.
func SuffixForCategory(category string) string {
	return Separator + category
}

// ParseSortKey splits a sort key back into id and category at the first separator.
func ParseSortKey(sk string) (id, category string, err error) {
	id, category, ok := strings.Cut(sk, Separator)
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedSortKey, sk)
	}
	return id, category, nil
}

// ValidatePart rejects values that would make the sort key ambiguous.
func ValidatePart(name, value string) error {
	if strings.Contains(value, Separator) {
		return fmt.Errorf("%w: %s %q", ErrSeparatorInPart, name, value)
	}
	return nil
}

// HasIDPrefix reports whether sk is matched by the get-by-id key condition for id.
func HasIDPrefix(sk, id string) bool {
	return strings.HasPrefix(sk, PrefixForID(id))
}

// ContainsCategory reports whether sk passes the by-category filter for category.
// Substring matching means "fic" also matches "1#fiction".
func ContainsCategory(sk, category string) bool {
	return strings.Contains(sk, SuffixForCategory(category))
}
