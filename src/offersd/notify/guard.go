package notify

import (
	"log"

	"github.com/substytucje-pro/offers-backend/src/offersd/types"
)

// ShouldSendOfferEmail is the go/no-go decision for the "your offer was
// imported" email. Pure: no side effects beyond logging the first failed
// condition. The original (pre-update) offer decides the source check, so a
// user is never notified about content they submitted themselves.
func ShouldSendOfferEmail(updated, original *types.Offer, submitEmail bool, env string) bool {
	if updated.Email == nil || *updated.Email == "" {
		log.Printf("skipping email for offer %s: no email set", updated.UUID)
		return false
	}

	if env != "PROD" {
		log.Printf("skipping email for offer %s: not running in PROD", updated.UUID)
		return false
	}

	if !submitEmail {
		log.Printf("skipping email for offer %s: submit_email not requested", updated.UUID)
		return false
	}

	if updated.Status != types.StatusActive {
		log.Printf("skipping email for offer %s: status is %s", updated.UUID, updated.Status)
		return false
	}

	if original.Source != types.SourceBot {
		log.Printf("skipping email for offer %s: source is %s", updated.UUID, original.Source)
		return false
	}

	return true
}
