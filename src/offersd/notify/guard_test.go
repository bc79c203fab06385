package notify

import (
	"testing"

	"github.com/google/uuid"

	"github.com/substytucje-pro/offers-backend/src/offersd/types"
)

func guardOffer() (*types.Offer, *types.Offer) {
	email := "adwokat@kancelaria.pl"
	updated := &types.Offer{
		UUID:   uuid.New(),
		Email:  &email,
		Status: types.StatusActive,
		Source: types.SourceBot,
	}
	original := &types.Offer{
		UUID:   updated.UUID,
		Source: types.SourceBot,
	}
	return updated, original
}

func TestShouldSendOfferEmail(t *testing.T) {
	t.Run("all conditions met", func(t *testing.T) {
		updated, original := guardOffer()
		if !ShouldSendOfferEmail(updated, original, true, "PROD") {
			t.Error("want send")
		}
	})

	t.Run("no email", func(t *testing.T) {
		updated, original := guardOffer()
		updated.Email = nil
		if ShouldSendOfferEmail(updated, original, true, "PROD") {
			t.Error("sent with no email")
		}
	})

	t.Run("empty email", func(t *testing.T) {
		updated, original := guardOffer()
		empty := ""
		updated.Email = &empty
		if ShouldSendOfferEmail(updated, original, true, "PROD") {
			t.Error("sent with empty email")
		}
	})

	t.Run("non prod env", func(t *testing.T) {
		updated, original := guardOffer()
		if ShouldSendOfferEmail(updated, original, true, "DEV") {
			t.Error("sent outside PROD")
		}
	})

	t.Run("submit not requested", func(t *testing.T) {
		updated, original := guardOffer()
		if ShouldSendOfferEmail(updated, original, false, "PROD") {
			t.Error("sent without submit_email")
		}
	})

	t.Run("not active", func(t *testing.T) {
		updated, original := guardOffer()
		updated.Status = types.StatusProcessed
		if ShouldSendOfferEmail(updated, original, true, "PROD") {
			t.Error("sent for non-active offer")
		}
	})

	t.Run("user sourced", func(t *testing.T) {
		updated, original := guardOffer()
		original.Source = types.SourceUser
		if ShouldSendOfferEmail(updated, original, true, "PROD") {
			t.Error("sent for user-submitted offer")
		}
	})
}
