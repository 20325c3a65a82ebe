package detector

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/fuzumoe/jobcull-api/internal/fetch"
	"github.com/fuzumoe/jobcull-api/internal/model"
)

// taleoPhrases are unavailable signals that show up in the visible text of
// Taleo's requisition pages regardless of how the tenant skinned them.
var taleoPhrases = []string{
	"the job is no longer available",
	"job is no longer available",
	"job description you are trying to view is no longer available",
	"the job description you are trying to view is no longer available",
	"notavailable", // notAvailablePage markers survive text extraction on some tenants
}

// taleoIntsRe pulls the _ints interface list out of Taleo's inline _ftl
// script object.
var taleoIntsRe = regexp.MustCompile(`(?s)_ints\s*:\s*\[(.*?)\]`)

// Taleo classifies legacy Taleo requisitions. No single flag exists, so it
// stacks three independent signals: unavailable phrases in visible text,
// the requisitionUnavailableInterface marker, and the absence of the
// description-interface markers that accompany genuine postings.
type Taleo struct {
	client *fetch.Client
}

// NewTaleo constructs the Taleo detector.
func NewTaleo(client *fetch.Client) *Taleo {
	return &Taleo{client: client}
}

func (d *Taleo) Name() string { return "taleo" }

func (d *Taleo) Check(ctx context.Context, url string, timeout time.Duration) (model.Verdict, string) {
	resp, err := d.client.Get(ctx, url, timeout)
	if err != nil {
		return model.VerdictUnknown, fmt.Sprintf("Taleo: request failed: %v", err)
	}
	if strings.TrimSpace(resp.Body) == "" {
		return model.VerdictUnknown, "Taleo: empty response body"
	}

	visible := VisibleText(resp.Body)
	for _, p := range taleoPhrases {
		if strings.Contains(visible, p) {
			return model.VerdictExpired, fmt.Sprintf("Taleo: unavailable phrase found in response: %q", p)
		}
	}

	htmlLower := strings.ToLower(resp.Body)

	if strings.Contains(htmlLower, "requisitionunavailableinterface") {
		return model.VerdictExpired, "Taleo: requisitionUnavailableInterface present, job is expired"
	}

	if m := taleoIntsRe.FindStringSubmatch(htmlLower); m != nil {
		if strings.Contains(m[1], "requisitionunavailableinterface") {
			return model.VerdictExpired, "Taleo: _ints includes requisitionUnavailableInterface, job is expired"
		}
	}

	// A genuine requisition page carries both description markers.
	if strings.Contains(htmlLower, "requisitiondescriptioninterface") && strings.Contains(htmlLower, "descrequisition") {
		return model.VerdictActive, "Taleo: requisitionDescriptionInterface/descRequisition detected, job is active"
	}

	return model.VerdictUnknown, "Taleo: could not confidently classify page"
}
