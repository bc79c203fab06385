package offers

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/OneOfOne/xxhash"

	"github.com/substytucje-pro/offers-backend/src/offersd/textutil"
)

// ImportSummary is the per-batch outcome. The batch never aborts on a single
// item: duplicates are counted as skips and other failures accumulate as
// error strings.
type ImportSummary struct {
	Total    int      `json:"total"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportBatch ingests a scraped batch of raw posts and posts a summary to
// the moderator chat channel.
func (s *Service) ImportBatch(ctx context.Context, items []RawOffer) ImportSummary {
	summary := ImportSummary{Total: len(items)}
	seen := make(map[uint64]string, len(items))

	for _, item := range items {
		// Advisory content fingerprint: the same post occasionally arrives
		// under two external ids when the source page is re-scraped.
		fp := xxhash.ChecksumString64(textutil.Sanitize(item.RawData))
		if prev, ok := seen[fp]; ok && item.RawData != "" {
			log.Printf("import: content of %q duplicates %q", item.OfferUID, prev)
		}
		seen[fp] = item.OfferUID

		_, err := s.CreateRaw(ctx, item)

		var conflict *ConflictError
		switch {
		case err == nil:
			summary.Imported++
		case errors.As(err, &conflict):
			summary.Skipped++
		default:
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("offer %q: %v", item.OfferUID, err))
		}
	}

	log.Printf("import batch done: total=%d imported=%d skipped=%d errors=%d",
		summary.Total, summary.Imported, summary.Skipped, len(summary.Errors))

	if err := s.chat.SendRichMessage(
		"Offer import finished",
		fmt.Sprintf("%d posts processed", summary.Total),
		map[string]string{
			"imported": fmt.Sprintf("%d", summary.Imported),
			"skipped":  fmt.Sprintf("%d", summary.Skipped),
			"errors":   fmt.Sprintf("%d", len(summary.Errors)),
		},
	); err != nil {
		log.Printf("import summary chat notification failed: %v", err)
	}

	return summary
}
