package offers

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/substytucje-pro/offers-backend/src/offersd/notify"
	"github.com/substytucje-pro/offers-backend/src/offersd/textutil"
	"github.com/substytucje-pro/offers-backend/src/offersd/types"
)

// OfferStore is the persistence contract the service works against.
// Implemented by Repository; tests substitute an in-memory fake.
type OfferStore interface {
	Create(ctx context.Context, offer *types.Offer) error
	GetByUUID(ctx context.Context, id uuid.UUID, load LoadFlags) (*types.Offer, error)
	FindByOfferUID(ctx context.Context, offerUID string) (*types.Offer, error)
	FindByEmail(ctx context.Context, email string) ([]types.Offer, error)
	Query(ctx context.Context, preds []Predicate, sort SortKey, order SortOrder, offset, limit int, load LoadFlags) ([]types.Offer, int64, error)
	UpdateFields(ctx context.Context, id uint64, fields map[string]interface{}) error
	ReplaceRoles(ctx context.Context, offerID uint64, roles []types.LegalRole) error
	CountActive(ctx context.Context, validAfter time.Time) (int64, error)
}

// ReferenceStore resolves the administratively managed entities an update
// may point at.
type ReferenceStore interface {
	GetPlaceByUUID(ctx context.Context, id uuid.UUID) (*types.Place, error)
	GetCityByUUID(ctx context.Context, id uuid.UUID) (*types.City, error)
	ResolveRoles(ctx context.Context, ids []uuid.UUID) ([]types.LegalRole, error)
}

// Service owns the offer lifecycle: ingestion, moderation transitions, the
// partial-update workflow and the notification decision.
type Service struct {
	store OfferStore
	refs  ReferenceStore
	email notify.EmailNotifier
	chat  notify.ChatNotifier

	env         string
	localZone   *time.Location
	expiryDays  int
	expiryGrace time.Duration
}

func NewService(store OfferStore, refs ReferenceStore, email notify.EmailNotifier, chat notify.ChatNotifier, env string, localZone *time.Location, expiryDays int, expiryGrace time.Duration) *Service {
	return &Service{
		store:       store,
		refs:        refs,
		email:       email,
		chat:        chat,
		env:         env,
		localZone:   localZone,
		expiryDays:  expiryDays,
		expiryGrace: expiryGrace,
	}
}

// RawOffer is one ingested post before any moderation.
type RawOffer struct {
	Author    string
	AuthorUID string
	OfferUID  string
	RawData   string
	Timestamp time.Time
	Source    types.SourceType
}

// CreateRaw ingests one raw post: dedup pre-check by external identifier,
// sanitize, best-effort email discovery. With an email the offer starts in
// NEW; without one it is POSTPONED until a moderator supplies contact data.
// The store's unique constraint is the authoritative duplicate guard; the
// pre-check only avoids pointless work.
func (s *Service) CreateRaw(ctx context.Context, raw RawOffer) (*types.Offer, error) {
	if raw.OfferUID != "" {
		existing, err := s.store.FindByOfferUID(ctx, raw.OfferUID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, &ConflictError{OfferUID: raw.OfferUID}
		}
	}

	text := textutil.Sanitize(raw.RawData)

	status := types.StatusPostponed
	var email *string
	if found := textutil.ExtractAndFixEmail(text); found != "" {
		email = &found
		status = types.StatusNew
	}

	offer := &types.Offer{
		UUID:    uuid.New(),
		RawData: &text,
		Author:  raw.Author,
		Source:  raw.Source,
		Status:  status,
		Email:   email,
	}
	if raw.OfferUID != "" {
		offer.OfferUID = &raw.OfferUID
	}
	if raw.AuthorUID != "" {
		offer.AuthorUID = &raw.AuthorUID
	}
	if !raw.Timestamp.IsZero() {
		ts := raw.Timestamp
		offer.AddedAt = &ts
	}

	if err := s.store.Create(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// Update applies a partial update, recomputes the derived expiry, resyncs
// relationships and decides whether to fire the transactional email. The
// whole update aborts with no partial effect on any validation or resolution
// failure.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch OfferPatch) error {
	original, err := s.store.GetByUUID(ctx, id, LoadFlags{})
	if err != nil {
		return err
	}

	fields, newDate, newHour, err := s.scalarFields(patch.Scalars)
	if err != nil {
		return err
	}

	// Resolve every referenced entity before the first write, so a missing
	// identifier aborts the update with nothing persisted.
	var roles []types.LegalRole
	if patch.RoleUUIDs != nil {
		roles, err = s.refs.ResolveRoles(ctx, *patch.RoleUUIDs)
		if err != nil {
			return err
		}
	}

	if patch.PlaceUUID != nil {
		place, err := s.refs.GetPlaceByUUID(ctx, *patch.PlaceUUID)
		if err != nil {
			return err
		}
		fields["place_id"] = place.ID
		// Coordinate inheritance: the offer is searchable by geo through
		// its facility's position.
		fields["lat"] = place.Lat
		fields["lon"] = place.Lon
	}

	if patch.CityUUID != nil {
		city, err := s.refs.GetCityByUUID(ctx, *patch.CityUUID)
		if err != nil {
			return err
		}
		fields["city_id"] = city.ID
	}

	effDate := original.Date
	if newDate != nil {
		effDate = newDate
	}
	effHour := original.Hour
	if newHour != nil {
		effHour = newHour
	}
	fields["valid_to"] = ComputeValidTo(effDate, effHour, s.localZone, s.expiryDays, time.Now())

	if err := s.store.UpdateFields(ctx, original.ID, fields); err != nil {
		return err
	}
	if patch.RoleUUIDs != nil {
		if err := s.store.ReplaceRoles(ctx, original.ID, roles); err != nil {
			return err
		}
	}

	// Fresh read, not the in-memory mutation: the guard must evaluate
	// post-commit state.
	updated, err := s.store.GetByUUID(ctx, id, LoadAll)
	if err != nil {
		return err
	}

	if notify.ShouldSendOfferEmail(updated, original, patch.SubmitEmail, s.env) {
		err := s.email.SendOfferImportedEmail(ctx, *updated.Email, updated.Author, updated.UUID.String())
		if err != nil {
			// Soft failure: the update is already committed and stays.
			log.Printf("failed to send offer email for %s: %v", updated.UUID, err)
		}
	}

	return nil
}

func (s *Service) scalarFields(p ScalarPatch) (map[string]interface{}, *time.Time, *string, error) {
	fields := make(map[string]interface{})

	if p.Price != nil {
		fields["price"] = *p.Price
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Email != nil {
		fields["email"] = *p.Email
	}
	if p.URL != nil {
		fields["url"] = *p.URL
	}
	if p.Invoice != nil {
		fields["invoice"] = *p.Invoice
	}
	if p.Visible != nil {
		fields["visible"] = *p.Visible
	}
	if p.Status != nil {
		if _, err := types.ParseStatus(string(*p.Status)); err != nil {
			return nil, nil, nil, &ValidationError{Field: "status", Msg: err.Error()}
		}
		fields["status"] = *p.Status
	}
	if p.Author != nil {
		fields["author"] = *p.Author
	}
	if p.PlaceName != nil {
		fields["place_name"] = *p.PlaceName
	}
	if p.CityName != nil {
		fields["city_name"] = *p.CityName
	}

	var newDate *time.Time
	if p.Date != nil {
		d, err := time.Parse(dateLayout, *p.Date)
		if err != nil {
			return nil, nil, nil, &ValidationError{Field: "date", Msg: "expected YYYY-MM-DD"}
		}
		newDate = &d
		fields["date"] = d
	}

	var newHour *string
	if p.Hour != nil {
		if _, err := time.Parse(hourLayout, *p.Hour); err != nil {
			return nil, nil, nil, &ValidationError{Field: "hour", Msg: "expected HH:MM"}
		}
		newHour = p.Hour
		fields["hour"] = *p.Hour
	}

	return fields, newDate, newHour, nil
}

// Get resolves one offer by its public identity.
func (s *Service) Get(ctx context.Context, id uuid.UUID, load LoadFlags) (*types.Offer, error) {
	return s.store.GetByUUID(ctx, id, load)
}

// Accept transitions a moderated offer to ACTIVE. Re-accepting an ACTIVE
// offer is a no-op success.
func (s *Service) Accept(ctx context.Context, id uuid.UUID) error {
	offer, err := s.store.GetByUUID(ctx, id, LoadFlags{})
	if err != nil {
		return err
	}
	if offer.Status == types.StatusActive {
		return nil
	}
	if !types.CanAccept(offer.Status) {
		return &ValidationError{Field: "status", Msg: "cannot accept a rejected offer"}
	}
	return s.store.UpdateFields(ctx, offer.ID, map[string]interface{}{
		"status": types.StatusActive,
	})
}

// Reject transitions an offer to the terminal REJECTED state. Last-write-
// wins: an already accepted offer can still be rejected.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) error {
	offer, err := s.store.GetByUUID(ctx, id, LoadFlags{})
	if err != nil {
		return err
	}
	if offer.Status == types.StatusRejected {
		return nil
	}
	return s.store.UpdateFields(ctx, offer.ID, map[string]interface{}{
		"status": types.StatusRejected,
	})
}

// List runs an arbitrary moderation query.
func (s *Service) List(ctx context.Context, spec FilterSpec, sort SortKey, order SortOrder, offset, limit int, load LoadFlags) ([]types.Offer, int64, error) {
	preds, err := spec.Compile()
	if err != nil {
		return nil, 0, err
	}
	return s.store.Query(ctx, preds, sort, order, offset, limit, load)
}

// ListPublic serves the public search: ACTIVE offers whose expiry has not
// passed the operational grace window.
func (s *Service) ListPublic(ctx context.Context, spec FilterSpec, sort SortKey, order SortOrder, offset, limit int) ([]types.Offer, int64, error) {
	active := types.StatusActive
	spec.Status = &active
	liveBound := time.Now().UTC().Add(-s.expiryGrace)
	spec.ValidTo = &liveBound
	return s.List(ctx, spec, sort, order, offset, limit, LoadAll)
}

// CountActive is the uncached public live-offer count.
func (s *Service) CountActive(ctx context.Context) (int64, error) {
	return s.store.CountActive(ctx, time.Now().UTC())
}

// Similar returns other offers sharing this offer's email address.
func (s *Service) Similar(ctx context.Context, id uuid.UUID) ([]types.Offer, error) {
	offer, err := s.store.GetByUUID(ctx, id, LoadFlags{})
	if err != nil {
		return nil, err
	}
	if offer.Email == nil || *offer.Email == "" {
		return nil, nil
	}

	rows, err := s.store.FindByEmail(ctx, *offer.Email)
	if err != nil {
		return nil, err
	}

	out := rows[:0]
	for _, row := range rows {
		if row.ID != offer.ID {
			out = append(out, row)
		}
	}
	return out, nil
}
