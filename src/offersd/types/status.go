package types

import "fmt"

// OfferStatus is the moderation/lifecycle state of an offer.
type OfferStatus string

const (
	StatusNew       OfferStatus = "new"       // just ingested, unclassified
	StatusPostponed OfferStatus = "postponed" // ingested but no usable contact email
	StatusDraft     OfferStatus = "draft"
	StatusProcessed OfferStatus = "processed"
	StatusAccepted  OfferStatus = "accepted"
	StatusActive    OfferStatus = "active" // publicly visible and searchable
	StatusRejected  OfferStatus = "rejected"
)

var allStatuses = []OfferStatus{
	StatusNew, StatusPostponed, StatusDraft, StatusProcessed,
	StatusAccepted, StatusActive, StatusRejected,
}

func ParseStatus(s string) (OfferStatus, error) {
	for _, st := range allStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown offer status %q", s)
}

// CanAccept reports whether an offer in the given state may transition to
// ACTIVE. Re-accepting an already-ACTIVE offer is an idempotent no-op, so it
// is allowed here; REJECTED is terminal.
func CanAccept(from OfferStatus) bool {
	switch from {
	case StatusNew, StatusPostponed, StatusDraft, StatusProcessed, StatusAccepted, StatusActive:
		return true
	default:
		return false
	}
}

// CanReject reports whether an offer in the given state may transition to
// REJECTED. Rejection is last-write-wins: an ACTIVE offer can still be
// rejected. Repeated rejection is an idempotent no-op.
func CanReject(from OfferStatus) bool {
	return true
}
