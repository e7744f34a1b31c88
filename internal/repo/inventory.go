package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/NagbhushanPai/Incubyte-Project/internal/models"
)

// PurchaseSweet performs the guarded decrement in a single conditional
// UPDATE. The store evaluates "quantity >= qty" against the row's current
// value at write time, so two concurrent purchases can never both consume
// the same stock. Rows for other sweets are untouched; there is no global
// lock and no quantity is cached in process.
func (r *GormRepo) PurchaseSweet(ctx context.Context, id uuid.UUID, qty int64) (*models.Sweet, error) {
	var sweet models.Sweet
	res := r.DB.WithContext(ctx).
		Model(&sweet).
		Clauses(clause.Returning{}).
		Where("id = ? AND quantity >= ?", id, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		// The guard rejected: either the sweet is gone or the stock
		// is short. A plain read settles which.
		var check models.Sweet
		if err := r.DB.WithContext(ctx).Select("id").Where("id = ?", id).First(&check).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, gorm.ErrRecordNotFound
			}
			return nil, err
		}
		return nil, ErrInsufficientStock
	}

	return &sweet, nil
}

// RestockSweet increments unconditionally. Increments commute, so a single
// atomic UPDATE is enough; no compound check is needed.
func (r *GormRepo) RestockSweet(ctx context.Context, id uuid.UUID, qty int64) (*models.Sweet, error) {
	var sweet models.Sweet
	res := r.DB.WithContext(ctx).
		Model(&sweet).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", qty))
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return &sweet, nil
}
