package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/redmonkez12/library-api/internal/logging"
	"github.com/redmonkez12/library-api/internal/validation"
)

// Service validates catalog writes before they reach the repository
type Service struct {
	repo      *Repository
	validator *validation.Validator
	logger    *logging.Logger
}

func NewService(repo *Repository, validator *validation.Validator, logger *logging.Logger) *Service {
	return &Service{repo: repo, validator: validator, logger: logger}
}

func (s *Service) ListAuthors(ctx context.Context, limit, offset int) ([]*Author, error) {
	return s.repo.ListAuthors(ctx, limit, offset)
}

func (s *Service) GetAuthor(ctx context.Context, id uuid.UUID) (*Author, error) {
	return s.repo.GetAuthor(ctx, id)
}

func (s *Service) CreateAuthor(ctx context.Context, in AuthorInput) (*Author, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	a := &Author{Name: in.Name, Bio: in.Bio}
	if err := s.repo.CreateAuthor(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("author created", "author_id", a.ID)
	return a, nil
}

func (s *Service) ReplaceAuthor(ctx context.Context, id uuid.UUID, in AuthorInput) (*Author, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	a, err := s.repo.GetAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Name, a.Bio = in.Name, in.Bio

	if err := s.repo.UpdateAuthor(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) PatchAuthor(ctx context.Context, id uuid.UUID, patch AuthorPatch) (*Author, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, err
	}

	a, err := s.repo.GetAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.apply(a)

	if err := s.repo.UpdateAuthor(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteAuthor(ctx, id); err != nil {
		return err
	}
	s.logger.Info("author deleted", "author_id", id)
	return nil
}

func (s *Service) ListBooks(ctx context.Context, authorID *uuid.UUID, limit, offset int) ([]*Book, error) {
	return s.repo.ListBooks(ctx, authorID, limit, offset)
}

func (s *Service) GetBook(ctx context.Context, id uuid.UUID) (*Book, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *Service) CreateBook(ctx context.Context, in BookInput) (*Book, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	if err := s.checkAuthor(ctx, in.AuthorID); err != nil {
		return nil, err
	}

	b := in.toBook()
	if err := s.repo.CreateBook(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("book created", "book_id", b.ID)
	return b, nil
}

func (s *Service) ReplaceBook(ctx context.Context, id uuid.UUID, in BookInput) (*Book, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	if err := s.checkAuthor(ctx, in.AuthorID); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	b := in.toBook()
	b.ID, b.CreatedAt = existing.ID, existing.CreatedAt

	if err := s.repo.UpdateBook(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) PatchBook(ctx context.Context, id uuid.UUID, patch BookPatch) (*Book, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, err
	}
	if err := s.checkAuthor(ctx, patch.AuthorID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.apply(b)

	if err := s.repo.UpdateBook(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteBook(ctx, id); err != nil {
		return err
	}
	s.logger.Info("book deleted", "book_id", id)
	return nil
}

// checkAuthor reports a missing author as a field error on author_id
func (s *Service) checkAuthor(ctx context.Context, authorID *uuid.UUID) error {
	if authorID == nil {
		return nil
	}

	exists, err := s.repo.AuthorExists(ctx, *authorID)
	if err != nil {
		return err
	}
	if !exists {
		return validation.Add(nil, "author_id", "author does not exist")
	}
	return nil
}
