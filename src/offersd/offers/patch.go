package offers

import (
	"github.com/google/uuid"

	"github.com/substytucje-pro/offers-backend/src/offersd/types"
)

// ScalarPatch carries the plain last-write-wins fields of an offer update.
// Nil means "not supplied"; no merge semantics.
type ScalarPatch struct {
	Price       *float64
	Description *string
	Email       *string
	URL         *string
	Invoice     *bool
	Visible     *bool
	Status      *types.OfferStatus
	Author      *string
	PlaceName   *string
	CityName    *string
	Date        *string // YYYY-MM-DD
	Hour        *string // HH:MM
}

// OfferPatch is the typed partial update. Relationship fields are distinct,
// explicitly optional members so the merge logic stays statically checked.
// A non-nil RoleUUIDs fully replaces the offer's role set, even when empty.
type OfferPatch struct {
	Scalars     ScalarPatch
	RoleUUIDs   *[]uuid.UUID
	PlaceUUID   *uuid.UUID
	CityUUID    *uuid.UUID
	SubmitEmail bool
}
