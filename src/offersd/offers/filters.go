package offers

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/substytucje-pro/offers-backend/src/offersd/types"
)

// Predicate is one independent boolean condition over the offers table.
// The same compiled list is applied to both the page query and the total
// count query so the two can never disagree about which rows match.
type Predicate struct {
	Expr string
	Args []interface{}
}

// FilterSpec is the caller-supplied filter for offer listings. Geo fields
// are all-or-nothing: a partially specified location filter is rejected,
// never silently partially applied.
type FilterSpec struct {
	Status    *types.OfferStatus
	Search    string
	Invoice   *bool
	RoleUUIDs []uuid.UUID
	Lat       *float64
	Lon       *float64
	RadiusKM  *float64
	ValidTo   *time.Time // lower bound: offer must still be live
}

func (f FilterSpec) hasLocation() bool {
	return f.Lat != nil && f.Lon != nil && f.RadiusKM != nil
}

func (f FilterSpec) hasPartialLocation() bool {
	any := f.Lat != nil || f.Lon != nil || f.RadiusKM != nil
	return any && !f.hasLocation()
}

// Compile builds the ordered predicate list for the spec. The role filter is
// an EXISTS subquery over the link table, so an offer with several matching
// roles still yields a single row in both the page and the count query.
func (f FilterSpec) Compile() ([]Predicate, error) {
	if f.hasPartialLocation() {
		return nil, &ValidationError{
			Field: "location",
			Msg:   "lat, lon and distance_km must be supplied together",
		}
	}

	var preds []Predicate

	if f.Status != nil {
		preds = append(preds, Predicate{
			Expr: "offers.status = ?",
			Args: []interface{}{*f.Status},
		})
	}

	if f.Search != "" {
		preds = append(preds, Predicate{
			Expr: "LOWER(offers.description) LIKE ?",
			Args: []interface{}{"%" + strings.ToLower(f.Search) + "%"},
		})
	}

	if f.Invoice != nil {
		preds = append(preds, Predicate{
			Expr: "offers.invoice = ?",
			Args: []interface{}{*f.Invoice},
		})
	}

	if f.ValidTo != nil {
		preds = append(preds, Predicate{
			Expr: "offers.valid_to > ?",
			Args: []interface{}{*f.ValidTo},
		})
	}

	if len(f.RoleUUIDs) > 0 {
		ids := make([]interface{}, 0, len(f.RoleUUIDs))
		for _, id := range f.RoleUUIDs {
			ids = append(ids, id.String())
		}
		preds = append(preds, Predicate{
			Expr: "EXISTS (SELECT 1 FROM offers_legal_roles_link l " +
				"JOIN legal_roles r ON r.id = l.legal_role_id " +
				"WHERE l.offer_id = offers.id AND r.uuid IN ?)",
			Args: []interface{}{ids},
		})
	}

	if f.hasLocation() {
		preds = append(preds, geoPredicate(*f.Lat, *f.Lon, *f.RadiusKM))
	}

	return preds, nil
}
