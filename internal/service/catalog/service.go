package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/bookhive/library-service/internal/model"
	"github.com/bookhive/library-service/internal/repository"
)

type Service struct {
	log  *zap.Logger
	repo repository.Catalog
}

func NewService(repo repository.Catalog, log *zap.Logger) *Service {
	return &Service{
		log:  log,
		repo: repo,
	}
}

func (s *Service) ListBooks(ctx context.Context, criteria model.SearchCriteria) ([]model.Book, error) {
	return s.repo.Search(ctx, criteria)
}

func (s *Service) GetBook(ctx context.Context, bookID string) (model.Book, error) {
	return s.repo.Get(ctx, bookID)
}

// Seed loads the starter catalog on first boot; an already populated
// store is left alone.
func (s *Service) Seed(ctx context.Context) error {
	return s.repo.Seed(ctx, seedBooks())
}

func seedBooks() []model.Book {
	return []model.Book{
		{ID: "BK001", Title: "The Pragmatic Programmer", Author: "Andrew Hunt", Category: "Software", ISBN: "978-0135957059", TotalCopies: 10, AvailableCopies: 10},
		{ID: "BK002", Title: "Clean Code", Author: "Robert C. Martin", Category: "Software", ISBN: "978-0132350884", TotalCopies: 6, AvailableCopies: 6},
		{ID: "BK003", Title: "The Go Programming Language", Author: "Alan A. A. Donovan", Category: "Software", ISBN: "978-0134190440", TotalCopies: 4, AvailableCopies: 4},
		{ID: "BK004", Title: "A Brief History of Time", Author: "Stephen Hawking", Category: "Science", ISBN: "978-0553380163", TotalCopies: 5, AvailableCopies: 5},
		{ID: "BK005", Title: "The Selfish Gene", Author: "Richard Dawkins", Category: "Science", ISBN: "978-0198788607", TotalCopies: 3, AvailableCopies: 3},
		{ID: "BK006", Title: "To Kill a Mockingbird", Author: "Harper Lee", Category: "Fiction", ISBN: "978-0446310789", TotalCopies: 8, AvailableCopies: 8},
		{ID: "BK007", Title: "Nineteen Eighty-Four", Author: "George Orwell", Category: "Fiction", ISBN: "978-0451524935", TotalCopies: 7, AvailableCopies: 7},
		{ID: "BK008", Title: "Sapiens", Author: "Yuval Noah Harari", Category: "History", ISBN: "978-0062316097", TotalCopies: 5, AvailableCopies: 5},
	}
}
