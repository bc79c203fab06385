package offers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/substytucje-pro/offers-backend/src/offersd/notify"
	"github.com/substytucje-pro/offers-backend/src/offersd/types"
)

func TestImportBatch(t *testing.T) {
	existing := &types.Offer{UUID: uuid.New(), OfferUID: strptr("post-old"), Author: "x"}
	store := newFakeStore(existing)
	chat := &fakeChat{}
	svc := NewService(store, newFakeRefs(), &notify.FakeEmailNotifier{}, chat,
		"DEV", warsawZone(t), 7, 12*time.Hour)

	summary := svc.ImportBatch(context.Background(), []RawOffer{
		{Author: "a", OfferUID: "post-1", RawData: "kontakt: a@kancelaria.pl", Source: types.SourceBot},
		{Author: "b", OfferUID: "post-old", RawData: "duplikat", Source: types.SourceBot},
		{Author: "c", OfferUID: "post-2", RawData: "bez adresu", Source: types.SourceBot},
	})

	if summary.Total != 3 {
		t.Errorf("total = %d, want 3", summary.Total)
	}
	if summary.Imported != 2 {
		t.Errorf("imported = %d, want 2", summary.Imported)
	}
	if summary.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", summary.Skipped)
	}
	if len(summary.Errors) != 0 {
		t.Errorf("errors = %v, want none", summary.Errors)
	}

	// Existing row plus the two fresh imports.
	if len(store.byUUID) != 3 {
		t.Errorf("offers stored = %d, want 3", len(store.byUUID))
	}
	if len(chat.titles) != 1 {
		t.Errorf("chat summaries = %d, want 1", len(chat.titles))
	}
}

func TestImportBatchEmpty(t *testing.T) {
	store := newFakeStore()
	chat := &fakeChat{}
	svc := NewService(store, newFakeRefs(), &notify.FakeEmailNotifier{}, chat,
		"DEV", warsawZone(t), 7, 12*time.Hour)

	summary := svc.ImportBatch(context.Background(), nil)
	if summary.Total != 0 || summary.Imported != 0 || summary.Skipped != 0 {
		t.Errorf("summary = %+v, want all zero", summary)
	}
	if len(chat.titles) != 1 {
		t.Errorf("chat summaries = %d, want 1", len(chat.titles))
	}
}
