package store

import (
	"context"
	"sort"
)

// GetBook returns the book stored under id. When id exists in several categories
// the lexicographically smallest category wins. ErrNotFound is returned when
// nothing matches.
func (s *Store) GetBook(ctx context.Context, id string) (Book, error) {
	items, err := s.Query(ctx, PlanGetByID(id))
	if err != nil {
		return Book{}, err
	}
	if len(items) == 0 {
		return Book{}, ErrNotFound
	}

	rows := DecodeMany(items)
	books := make([]Book, 0, len(rows))
	for _, row := range rows {
		if row.OK() {
			books = append(books, row.Book)
		}
	}
	if len(books) == 0 {
		return Book{}, rows[0].Err
	}

	sort.Slice(books, func(i, j int) bool {
		return books[i].Category < books[j].Category
	})
	return books[0], nil
}

// ListBooks returns every stored book. Items that fail to decode are kept as
// failed rows.
func (s *Store) ListBooks(ctx context.Context) ([]Row, error) {
	items, err := s.Query(ctx, PlanListAll())
	if err != nil {
		return nil, err
	}
	return DecodeMany(items), nil
}

// ListBooksByCategory returns every book whose sort key contains "#<category>".
func (s *Store) ListBooksByCategory(ctx context.Context, category string) ([]Row, error) {
	items, err := s.Query(ctx, PlanListByCategory(category))
	if err != nil {
		return nil, err
	}
	return DecodeMany(items), nil
}

// PutBook stores b, replacing any book with the same id and category.
// Precondition errors are returned before DynamoDB is called.
func (s *Store) PutBook(ctx context.Context, b Book) error {
	spec, err := PlanPut(b)
	if err != nil {
		return err
	}
	return s.Put(ctx, spec)
}
