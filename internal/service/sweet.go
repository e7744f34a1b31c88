package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/NagbhushanPai/Incubyte-Project/internal/models"
	"github.com/NagbhushanPai/Incubyte-Project/internal/repo"
)

type SweetService struct {
	Repo *repo.GormRepo
}

type CreateSweetInput struct {
	Name     string
	Category string
	Price    float64
	Quantity int64
}

func (s *SweetService) Create(ctx context.Context, in CreateSweetInput) (*models.Sweet, error) {
	if in.Name == "" || in.Category == "" {
		return nil, fmt.Errorf("%w: name and category required", ErrValidation)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be >= 0", ErrValidation)
	}

	sweet := models.Sweet{
		Name:     in.Name,
		Category: in.Category,
		Price:    in.Price,
		Quantity: in.Quantity,
	}
	return s.Repo.CreateSweet(ctx, &sweet)
}

func (s *SweetService) Get(ctx context.Context, id uuid.UUID) (*models.Sweet, error) {
	sweet, err := s.Repo.GetSweet(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return sweet, nil
}

func (s *SweetService) List(ctx context.Context) ([]models.Sweet, error) {
	return s.Repo.ListSweets(ctx)
}

func (s *SweetService) Search(ctx context.Context, f repo.SearchFilter) ([]models.Sweet, error) {
	return s.Repo.SearchSweets(ctx, f)
}

// Update overwrites only the supplied fields. Quantity is written as-is:
// the stock floor is enforced by Purchase/Restock, not here.
func (s *SweetService) Update(ctx context.Context, id uuid.UUID, patch repo.SweetPatch) (*models.Sweet, error) {
	if patch.Price != nil && *patch.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}

	sweet, err := s.Repo.PatchSweet(ctx, id, patch)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return sweet, nil
}

func (s *SweetService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteSweet(ctx, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

// Purchase validates before touching storage, then delegates the
// check-and-decrement to the store in one atomic step.
func (s *SweetService) Purchase(ctx context.Context, id uuid.UUID, qty int64) (*models.Sweet, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}

	sweet, err := s.Repo.PurchaseSweet(ctx, id, qty)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return sweet, nil
}

func (s *SweetService) Restock(ctx context.Context, id uuid.UUID, qty int64) (*models.Sweet, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}

	sweet, err := s.Repo.RestockSweet(ctx, id, qty)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return sweet, nil
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: sweet", ErrNotFound)
	case errors.Is(err, repo.ErrInsufficientStock):
		return ErrInsufficientStock
	default:
		return err
	}
}
