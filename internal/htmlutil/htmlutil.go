// -----------------------------------------------------------------------
// HTML helpers for heuristic forum scraping: balanced block extraction
// and tag stripping. Forum markup is uncontrolled and semi-stable, so
// everything here degrades to empty output instead of failing.
// -----------------------------------------------------------------------

package htmlutil

import (
	"regexp"
	"strings"
)

// ExtractBalancedBlock returns the inner HTML of the div identified by
// startMarker, correctly matching nested same-named children. Forum post
// bodies contain nested divs (quoted replies), so a non-counting regex
// silently truncates at the first nested closing tag - the bug this
// function exists to avoid.
//
// Returns "" when the marker is absent or the markup is truncated or
// unbalanced. Never fails.
func ExtractBalancedBlock(html, startMarker string) string {
	startIdx := strings.Index(html, startMarker)
	if startIdx == -1 {
		return ""
	}

	// Close of the opening tag.
	openTag := strings.Index(html[startIdx:], ">")
	if openTag == -1 {
		return ""
	}
	openTag += startIdx

	// Depth counter over forward opens vs closes.
	depth := 1
	pos := openTag + 1
	for depth > 0 && pos < len(html) {
		nextOpen := strings.Index(html[pos:], "<div")
		nextClose := strings.Index(html[pos:], "</div>")

		if nextClose == -1 {
			break
		}

		if nextOpen != -1 && nextOpen < nextClose {
			depth++
			pos += nextOpen + 4
		} else {
			depth--
			if depth == 0 {
				return html[openTag+1 : pos+nextClose]
			}
			pos += nextClose + 6
		}
	}

	return ""
}

var (
	brRe        = regexp.MustCompile(`(?i)<br\s*/?>`)
	closeParaRe = regexp.MustCompile(`(?i)</p>`)
	closeListRe = regexp.MustCompile(`(?i)</li>`)
	headOpenRe  = regexp.MustCompile(`(?i)<h[23][^>]*>`)
	headCloseRe = regexp.MustCompile(`(?i)</h[23]>`)
	anyTagRe    = regexp.MustCompile(`<[^>]+>`)
	spaceRunRe  = regexp.MustCompile(`\s+`)
)

// The handful of named entities actually seen in this markup. Anything
// fancier than that is left as-is.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&quot;", `"`,
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
)

// StripTags converts an HTML fragment to compact plain text: block-level
// separators become a single space, all remaining tags are dropped,
// common entities are decoded, and whitespace runs collapse to one
// space.
func StripTags(html string) string {
	text := brRe.ReplaceAllString(html, " ")
	text = closeParaRe.ReplaceAllString(text, " ")
	text = closeListRe.ReplaceAllString(text, " ")
	text = headOpenRe.ReplaceAllString(text, " ")
	text = headCloseRe.ReplaceAllString(text, " ")
	text = anyTagRe.ReplaceAllString(text, "")
	text = entityReplacer.Replace(text)
	text = spaceRunRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
