package detector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fuzumoe/jobcull-api/internal/fetch"
	"github.com/fuzumoe/jobcull-api/internal/model"
)

// ultiproUnavailableMarker is the message key UKG/Ultipro renders on a
// pulled posting.
const ultiproUnavailableMarker = "Opportunity.OpportunityError.OpportunityUnavailableMessage"

// Ultipro classifies UKG Pro (Ultipro) postings by a single documented
// unavailable-message marker in the served HTML.
type Ultipro struct {
	client *fetch.Client
}

// NewUltipro constructs the Ultipro detector.
func NewUltipro(client *fetch.Client) *Ultipro {
	return &Ultipro{client: client}
}

func (d *Ultipro) Name() string { return "ultipro" }

func (d *Ultipro) Check(ctx context.Context, url string, timeout time.Duration) (model.Verdict, string) {
	resp, err := d.client.Get(ctx, url, timeout)
	if err != nil {
		return model.VerdictUnknown, fmt.Sprintf("Ultipro: request failed: %v", err)
	}
	if resp.Body == "" {
		return model.VerdictUnknown, "Ultipro: no HTML content"
	}

	if strings.Contains(resp.Body, ultiproUnavailableMarker) {
		return model.VerdictExpired, "Ultipro: OpportunityUnavailableMessage found in HTML"
	}
	return model.VerdictActive, "Ultipro: OpportunityUnavailableMessage not found, job is active"
}
