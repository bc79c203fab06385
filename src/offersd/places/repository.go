package places

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/substytucje-pro/offers-backend/src/offersd/offers"
	"github.com/substytucje-pro/offers-backend/src/offersd/types"
)

// Repository holds the administratively managed reference entities: places
// (courts, police stations, prosecutor's offices), cities and legal roles.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreatePlace inserts a facility. A duplicate (name, street) pair is
// advisory: logged as a warning, not rejected. Catalog imports legitimately
// carry near-duplicates, e.g. departments sharing one building.
func (r *Repository) CreatePlace(ctx context.Context, place *types.Place) error {
	var existing types.Place
	err := r.db.WithContext(ctx).
		First(&existing, "name = ? AND street_name = ?", place.Name, place.StreetName).Error
	if err == nil {
		log.Printf("place %q at %q already exists (uuid %s), creating anyway",
			place.Name, place.StreetName, existing.UUID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(place).Error
}

func (r *Repository) CreateCity(ctx context.Context, city *types.City) error {
	return r.db.WithContext(ctx).Create(city).Error
}

func (r *Repository) GetPlaceByUUID(ctx context.Context, id uuid.UUID) (*types.Place, error) {
	var place types.Place
	err := r.db.WithContext(ctx).First(&place, "uuid = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &offers.NotFoundError{Entity: "Place", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return &place, nil
}

func (r *Repository) GetCityByUUID(ctx context.Context, id uuid.UUID) (*types.City, error) {
	var city types.City
	err := r.db.WithContext(ctx).First(&city, "uuid = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &offers.NotFoundError{Entity: "City", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return &city, nil
}

// ResolveRoles maps role identifiers to rows, failing with NotFound naming
// the first identifier that does not resolve.
func (r *Repository) ResolveRoles(ctx context.Context, ids []uuid.UUID) ([]types.LegalRole, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	strs := make([]string, 0, len(ids))
	for _, id := range ids {
		strs = append(strs, id.String())
	}

	var roles []types.LegalRole
	if err := r.db.WithContext(ctx).Where("uuid IN ?", strs).Find(&roles).Error; err != nil {
		return nil, err
	}

	found := make(map[uuid.UUID]bool, len(roles))
	for _, role := range roles {
		found[role.UUID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, &offers.NotFoundError{Entity: "LegalRole", ID: id.String()}
		}
	}

	return roles, nil
}

func (r *Repository) ListRoles(ctx context.Context) ([]types.LegalRole, error) {
	var roles []types.LegalRole
	err := r.db.WithContext(ctx).Order("name asc").Find(&roles).Error
	return roles, err
}

// SearchPlaces matches facilities by name prefix, for the moderation UI
// autocomplete.
func (r *Repository) SearchPlaces(ctx context.Context, name string, limit int) ([]types.Place, error) {
	var rows []types.Place
	err := r.db.WithContext(ctx).
		Where("name LIKE ? OR name_ascii LIKE ?", name+"%", name+"%").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *Repository) SearchCities(ctx context.Context, name string, limit int) ([]types.City, error) {
	var rows []types.City
	err := r.db.WithContext(ctx).
		Where("name LIKE ? OR name_ascii LIKE ?", name+"%", name+"%").
		Order("importance desc").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
