package detector

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// closedPatterns are the natural-language closure signals shared by the
// request-text tier and the browser tier, so a posting classifies the same
// way no matter which tier ends up reading the page. Matched against
// lower-cased visible text.
var closedPatterns = compilePatterns([]string{
	`\bno longer available\b`,
	`\bno longer exists\b`,
	`\bno longer posted\b`,
	`\bpage not found\b`,
	`\bwe didn't find any relevant jobs\b`,
	`\bnot available at this time\b`,
	`\bcurrently not available\b`,
	`\bthis job is not available\b`,
	`\bjob is unavailable\b`,
	`\bjob expired\b`,
	`\blooking for has expired\b`,
	`\bjob has expired\b`,
	`\bjob (is )?not found\b`,
	`\bpage missing\b`,
	`\b404 error\b`,
	`\bdoes not exist\b`,
	`\bno longer accepting (applications|candidates)?\b`,
	`\bposition has been filled\b`,
	`\bno longer open\b`,
	`\bposting (is )?closed\b`,
	`\bposting has closed\b`,
	`\brequisition (is )?closed\b`,
	`\bopportunity (is )?no longer available\b`,
	`\bcouldn't find this job\b`,
	`\bcouldn't find the job\b`,
	`\bproblem with the service\b`,
	`\bjob you are looking for may have closed\b`,
	`\bwe couldn’t find that page\b`,
	`\bpage you requested could not be found\b`,
	`\bjob is currently unposted\b`,
	`\bjob is expired\b`,
	`\bjob is closed to new applications\b`,
})

func compilePatterns(raw []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(raw))
	for _, r := range raw {
		out = append(out, regexp.MustCompile(r))
	}
	return out
}

var spaceRe = regexp.MustCompile(`\s+`)

// VisibleText strips script, style, and noscript content from an HTML
// document and returns the remaining text lower-cased with whitespace
// collapsed. On a parse failure it falls back to the raw input lower-cased,
// which is still safe to phrase-match.
func VisibleText(htmlBody string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return strings.ToLower(htmlBody)
	}
	doc.Find("script,style,noscript").Remove()
	text := doc.Text()
	return strings.ToLower(spaceRe.ReplaceAllString(strings.TrimSpace(text), " "))
}

// MatchClosedPhrase reports the first closure pattern found in the given
// lower-cased visible text.
func MatchClosedPhrase(text string) (string, bool) {
	for _, re := range closedPatterns {
		if re.MatchString(text) {
			return re.String(), true
		}
	}
	return "", false
}
