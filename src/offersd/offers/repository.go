package offers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/substytucje-pro/offers-backend/src/offersd/types"
)

// SortKey is the enumerated set of allowed sort columns. Anything else is
// rejected at the boundary instead of reflecting a caller string into SQL.
type SortKey string

const (
	SortCreatedAt SortKey = "created_at"
	SortAddedAt   SortKey = "added_at"
	SortValidTo   SortKey = "valid_to"
	SortPrice     SortKey = "price"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortCreatedAt, SortAddedAt, SortValidTo, SortPrice:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case OrderAsc, OrderDesc:
		return SortOrder(s), nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// LoadFlags selects which relations to eager-load with an offer.
type LoadFlags struct {
	Place bool
	City  bool
	Roles bool
}

// LoadAll is used by the moderation read paths.
var LoadAll = LoadFlags{Place: true, City: true, Roles: true}

// Repository is the gorm-backed offer store.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, offer *types.Offer) error {
	err := r.db.WithContext(ctx).Create(offer).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		uid := ""
		if offer.OfferUID != nil {
			uid = *offer.OfferUID
		}
		return &ConflictError{OfferUID: uid}
	}
	return err
}

func (r *Repository) GetByUUID(ctx context.Context, id uuid.UUID, load LoadFlags) (*types.Offer, error) {
	q := r.db.WithContext(ctx)
	if load.Place {
		q = q.Preload("Place")
	}
	if load.City {
		q = q.Preload("City")
	}
	if load.Roles {
		q = q.Preload("LegalRoles")
	}

	var offer types.Offer
	err := q.First(&offer, "uuid = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "Offer", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// FindByOfferUID looks an offer up by its external source identifier.
// Returns (nil, nil) when absent; the dedup pre-check wants a miss, not an
// error.
func (r *Repository) FindByOfferUID(ctx context.Context, offerUID string) (*types.Offer, error) {
	var offer types.Offer
	err := r.db.WithContext(ctx).First(&offer, "offer_uid = ?", offerUID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) ([]types.Offer, error) {
	var rows []types.Offer
	err := r.db.WithContext(ctx).
		Where("email = ? AND valid_to IS NOT NULL", email).
		Find(&rows).Error
	return rows, err
}

// Query runs the paginated fetch and the independent total count over the
// exact same predicate list.
func (r *Repository) Query(ctx context.Context, preds []Predicate, sort SortKey, order SortOrder, offset, limit int, load LoadFlags) ([]types.Offer, int64, error) {
	page := r.db.WithContext(ctx).Model(&types.Offer{})
	count := r.db.WithContext(ctx).Model(&types.Offer{})
	for _, p := range preds {
		page = page.Where(p.Expr, p.Args...)
		count = count.Where(p.Expr, p.Args...)
	}

	if load.Place {
		page = page.Preload("Place")
	}
	if load.City {
		page = page.Preload("City")
	}
	if load.Roles {
		page = page.Preload("LegalRoles")
	}

	var rows []types.Offer
	err := page.Order(fmt.Sprintf("offers.%s %s", sort, order)).
		Offset(offset).Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// UpdateFields applies the given column updates to one offer row.
func (r *Repository) UpdateFields(ctx context.Context, id uint64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&types.Offer{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// ReplaceRoles swaps the offer's entire role set (clear then extend) in one
// transaction, so the caller observes the replacement atomically.
func (r *Repository) ReplaceRoles(ctx context.Context, offerID uint64, roles []types.LegalRole) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM offers_legal_roles_link WHERE offer_id = ?", offerID).Error; err != nil {
			return err
		}
		for _, role := range roles {
			err := tx.Exec(
				"INSERT INTO offers_legal_roles_link (offer_id, legal_role_id) VALUES (?, ?)",
				offerID, role.ID,
			).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// CountActive is the public live-offer count (ACTIVE and not expired).
func (r *Repository) CountActive(ctx context.Context, validAfter time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&types.Offer{}).
		Where("status = ? AND valid_to > ?", types.StatusActive, validAfter).
		Count(&total).Error
	return total, err
}
