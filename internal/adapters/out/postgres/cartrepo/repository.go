package cartrepo

import (
	"context"
	"errors"
	"time"

	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB, tracker aggregateTracker) *GormCartRepository {
	return &GormCartRepository{
		db:      db,
		tracker: tracker,
	}
}

// Ensure inserts an empty cart for userID unless one exists and returns the
// stored cart. A concurrent Ensure for the same user waits on the unique
// index and then reads the winner's row.
func (r *GormCartRepository) Ensure(ctx context.Context, userID kernel.UUID, now time.Time) (*cart.Cart, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	fresh, err := cart.NewCart(kernel.NewUUID(), userID, now)
	if err != nil {
		return nil, err
	}

	dto, _ := fromDomain(fresh)
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&dto).Error
	if err != nil {
		return nil, err
	}

	return r.load(ctx, r.db.WithContext(ctx), userID)
}

// GetByUserForUpdate loads the user's cart and locks the cart row.
func (r *GormCartRepository) GetByUserForUpdate(ctx context.Context, userID kernel.UUID) (*cart.Cart, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	return r.load(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), userID)
}

// Save rewrites the cart's lines to match the aggregate.
func (r *GormCartRepository) Save(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, lineDTOs := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&CartDTO{}).Where("id = ?", dto.ID).UpdateColumn("updated_at", dto.UpdatedAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cart", aggregate.ID().String())
	}

	keep := make([]uuid.UUID, 0, len(lineDTOs))
	for _, l := range lineDTOs {
		keep = append(keep, l.ID)
	}

	stale := db.Where("cart_id = ?", dto.ID)
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := stale.Delete(&CartLineDTO{}).Error; err != nil {
		return err
	}

	if len(lineDTOs) > 0 {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
		}).Create(&lineDTOs).Error
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
				return errs.NewVersionIsInvalidErrorWithCause("cart", err)
			}
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCartRepository) load(ctx context.Context, query *gorm.DB, userID kernel.UUID) (*cart.Cart, error) {
	var dto CartDTO
	if err := query.First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart", userID.String())
		}
		return nil, err
	}

	var lines []CartLineDTO
	err := r.db.WithContext(ctx).
		Where("cart_id = ?", dto.ID).
		Order("product_id").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, lines)
}
