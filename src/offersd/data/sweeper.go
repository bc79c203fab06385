package data

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/substytucje-pro/offers-backend/src/offersd/types"
)

// ExpirySweeper periodically hides ACTIVE offers whose valid_to passed more
// than grace ago. The public search already filters by valid_to, so this is
// cleanup, not the gate; the grace window keeps just-expired offers visible
// for moderators reviewing late edits.
func ExpirySweeper(ctx context.Context, db *gorm.DB, interval, grace time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("expiry sweeper started (interval %s, grace %s)", interval, grace)

	for {
		select {
		case <-ctx.Done():
			log.Printf("expiry sweeper stopped")
			return
		case <-ticker.C:
			cutoff := time.Now().UTC().Add(-grace)
			res := db.WithContext(ctx).Model(&types.Offer{}).
				Where("status = ? AND valid_to < ? AND (visible IS NULL OR visible = ?)",
					types.StatusActive, cutoff, true).
				Update("visible", false)
			if res.Error != nil {
				log.Printf("expiry sweep failed: %v", res.Error)
				continue
			}
			if res.RowsAffected > 0 {
				log.Printf("expiry sweep hid %d offers", res.RowsAffected)
			}
		}
	}
}
