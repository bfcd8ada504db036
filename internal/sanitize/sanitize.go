// -----------------------------------------------------------------------
// Content Sanitizer - neutralizes prompt-injection payloads in
// untrusted forum content before it reaches the LLM consumer
// -----------------------------------------------------------------------

package sanitize

import (
	"regexp"
	"strings"
)

// Structural characters are swapped for full-width Unicode lookalikes so
// embedded markup or template syntax cannot be reinterpreted as control
// structures downstream. Visually near-identical, structurally inert.
var bracketReplacer = strings.NewReplacer(
	"<", "＜",
	">", "＞",
	"[", "［",
	"]", "］",
	"{", "｛",
	"}", "｝",
)

// Phrase patterns that resemble prompt-injection attempts. Matches are
// broken apart with zero-width spaces rather than removed, which keeps
// the text readable for a human while degrading literal-string
// recognition by a model.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(ignore|disregard|forget)\s+(all\s+)?(previous|prior|above)`),
	regexp.MustCompile(`(?i)\b(system|assistant|user|human)\s*(prompt|message|instruction)`),
	regexp.MustCompile(`(?i)\b(you\s+are|act\s+as|pretend\s+to\s+be)`),
}

const zeroWidthSpace = "​"

// Clean neutralizes untrusted user-generated text. It is a total
// function: never fails, never drops characters, and the output contains
// no literal ASCII angle brackets, square brackets, or curly braces from
// the input. This is defense in depth, not a guarantee - it degrades
// pattern matches, not semantic meaning.
func Clean(text string) string {
	out := bracketReplacer.Replace(text)
	for _, pattern := range injectionPatterns {
		out = pattern.ReplaceAllStringFunc(out, interleaveZeroWidth)
	}
	return out
}

// interleaveZeroWidth inserts a zero-width space between every rune of
// the matched span.
func interleaveZeroWidth(match string) string {
	runes := []rune(match)
	var b strings.Builder
	b.Grow(len(match) * 2)
	for i, r := range runes {
		if i > 0 {
			b.WriteString(zeroWidthSpace)
		}
		b.WriteRune(r)
	}
	return b.String()
}
