// Package format shapes raw language-model output into human-facing text.
package format

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Mode selects the formatting strategy applied to a response.
type Mode string

const (
	// ModeAuto picks the best strategy based on the text's structure.
	ModeAuto Mode = "auto"
	// ModeBullet rewrites prose lines as bullet points.
	ModeBullet Mode = "bullet"
	// ModeStructured normalises spacing around headers and paragraphs.
	ModeStructured Mode = "structured"
	// ModeRaw returns the cleaned text without restructuring.
	ModeRaw Mode = "raw"
)

// Thresholds governing structure detection and bullet conversion.
const (
	structuredRatio = 0.3
	bulletRatio     = 0.5
	bulletMaxWords  = 15
)

// recognizer pairs a label with a compiled predicate so each pattern can be
// exercised independently in tests.
type recognizer struct {
	name    string
	pattern *regexp.Regexp
}

var listRecognizers = []recognizer{
	{name: "bullet", pattern: regexp.MustCompile(`^\s*[-*•]\s+`)},
	{name: "numbered", pattern: regexp.MustCompile(`^\s*\d+\.\s+`)},
	{name: "lettered", pattern: regexp.MustCompile(`^\s*[a-zA-Z]\.\s+`)},
	{name: "parenthesised", pattern: regexp.MustCompile(`^\s*\([a-zA-Z0-9]\)\s+`)},
}

var headerRecognizers = []recognizer{
	{name: "all_caps", pattern: regexp.MustCompile(`^[A-Z][A-Z\s]+$`)},
	{name: "title_colon", pattern: regexp.MustCompile(`^[A-Z][a-zA-Z\s]+:$`)},
	{name: "markdown", pattern: regexp.MustCompile(`^#{1,6}\s+`)},
}

var (
	blankRunPattern    = regexp.MustCompile(`\n\s*\n\s*\n+`)
	spaceRunPattern    = regexp.MustCompile(` +`)
	sentenceGapPattern = regexp.MustCompile(`([.!?])\s*([A-Z])`)
	discoursePattern   = regexp.MustCompile(`^(So,?\s+|Now,?\s+|Well,?\s+|Also,?\s+|Additionally,?\s+|Furthermore,?\s+|Moreover,?\s+)`)
	codeBlockPattern   = regexp.MustCompile("(?s)```.*?```")
	inlineCodePattern  = regexp.MustCompile("`([^`]+)`")
	boldPattern        = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern      = regexp.MustCompile(`\*([^*]+)\*`)
	mdHeadingPattern   = regexp.MustCompile(`^#{1,6}\s+(.+)$`)
)

// continuationWords are prefixes that read poorly when a sentence is turned
// into a standalone bullet.
var continuationWords = []string{"The", "This", "That", "It", "There", "Here"}

// Formatter converts raw model replies into bullet, structured, voice, or
// display forms. It is a pure transform and is safe for concurrent use.
type Formatter struct {
	sanitizer *bluemonday.Policy
}

// New builds a Formatter with the default recognizer tables and an HTML
// sanitisation policy for display output.
func New() *Formatter {
	policy := bluemonday.UGCPolicy()
	return &Formatter{sanitizer: policy}
}

// Format applies the requested mode to text. Empty input is returned as is.
// Unknown modes fall back to ModeAuto.
func (f *Formatter) Format(text string, mode Mode) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	cleaned := clean(text)

	switch mode {
	case ModeBullet:
		return f.asBullets(cleaned)
	case ModeStructured:
		return f.asStructured(cleaned)
	case ModeRaw:
		return cleaned
	default:
		return f.auto(cleaned)
	}
}

func (f *Formatter) auto(text string) string {
	lines := strings.Split(text, "\n")

	if hasStructure(lines) {
		return f.asStructured(text)
	}

	if wantsBullets(lines) {
		return f.asBullets(text)
	}

	return f.asStructured(text)
}

// clean collapses repeated blank lines and spaces and normalises the spacing
// after sentence boundaries.
func clean(text string) string {
	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	text = spaceRunPattern.ReplaceAllString(text, " ")
	text = sentenceGapPattern.ReplaceAllString(text, "$1 $2")
	return strings.TrimSpace(text)
}

func matchesAny(line string, table []recognizer) bool {
	for _, r := range table {
		if r.pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// hasStructure reports whether enough lines already carry list or header
// markers that restructuring would do more harm than good.
func hasStructure(lines []string) bool {
	total := 0
	structured := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		total++
		if matchesAny(line, listRecognizers) || matchesAny(line, headerRecognizers) {
			structured++
		}
	}
	if total == 0 {
		return false
	}
	return float64(structured)/float64(total) > structuredRatio
}

// wantsBullets reports whether the majority of lines are short standalone
// sentences that read better as a list.
func wantsBullets(lines []string) bool {
	total := 0
	candidates := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		total++
		if isBulletCandidate(line) {
			candidates++
		}
	}
	if total == 0 {
		return false
	}
	return float64(candidates)/float64(total) > bulletRatio
}

func isBulletCandidate(line string) bool {
	if len(strings.Fields(line)) > bulletMaxWords {
		return false
	}
	if !strings.HasSuffix(line, ".") && !strings.HasSuffix(line, "!") && !strings.HasSuffix(line, "?") {
		return false
	}
	for _, word := range continuationWords {
		if strings.HasPrefix(line, word+" ") || strings.HasPrefix(line, word+",") {
			return false
		}
	}
	return true
}

func (f *Formatter) asBullets(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if matchesAny(line, listRecognizers) {
			out = append(out, line)
			continue
		}
		if matchesAny(line, headerRecognizers) {
			out = append(out, "\n"+line)
			continue
		}
		out = append(out, "• "+discoursePattern.ReplaceAllString(line, ""))
	}

	return strings.Join(out, "\n")
}

func (f *Formatter) asStructured(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if matchesAny(line, listRecognizers) {
			out = append(out, line)
			continue
		}
		if matchesAny(line, headerRecognizers) {
			out = append(out, "\n"+line)
			continue
		}
		if i > 0 && strings.TrimSpace(lines[i-1]) != "" && startsNewThought(line) {
			out = append(out, "")
		}
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

var thoughtContinuations = []string{"The", "This", "That", "It", "There", "Here", "And", "But", "Or", "So"}

func startsNewThought(line string) bool {
	if line == "" {
		return false
	}
	first := rune(line[0])
	if first < 'A' || first > 'Z' {
		return false
	}
	for _, word := range thoughtContinuations {
		if strings.HasPrefix(line, word+" ") || strings.HasPrefix(line, word+",") {
			return false
		}
	}
	return true
}

// ForVoice strips markdown so the text reads naturally through a TTS engine.
func (f *Formatter) ForVoice(text string) string {
	if text == "" {
		return text
	}

	out := codeBlockPattern.ReplaceAllString(text, "")
	out = inlineCodePattern.ReplaceAllString(out, "$1")
	out = boldPattern.ReplaceAllString(out, "$1")
	out = italicPattern.ReplaceAllString(out, "$1")

	lines := strings.Split(out, "\n")
	for i, line := range lines {
		for _, r := range listRecognizers {
			if r.name == "bullet" && r.pattern.MatchString(line) {
				lines[i] = "• " + r.pattern.ReplaceAllString(line, "")
			}
		}
	}
	out = strings.Join(lines, "\n")

	out = sentenceGapPattern.ReplaceAllString(out, "$1. $2")
	return strings.TrimSpace(out)
}

// ForDisplay renders the text as sanitised HTML for web clients.
func (f *Formatter) ForDisplay(text string) string {
	if text == "" {
		return text
	}

	lines := strings.Split(text, "\n")
	rendered := make([]string, 0, len(lines))
	inList := false

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if line != "" && matchesAny(line, listRecognizers) {
			for _, r := range listRecognizers {
				if r.pattern.MatchString(line) {
					line = r.pattern.ReplaceAllString(line, "")
					break
				}
			}
			if !inList {
				rendered = append(rendered, "<ul>")
				inList = true
			}
			rendered = append(rendered, "<li>"+line+"</li>")
			continue
		}

		if inList {
			rendered = append(rendered, "</ul>")
			inList = false
		}

		if m := mdHeadingPattern.FindStringSubmatch(line); m != nil {
			rendered = append(rendered, "<h3>"+m[1]+"</h3>")
			continue
		}

		rendered = append(rendered, line)
	}
	if inList {
		rendered = append(rendered, "</ul>")
	}

	html := strings.Join(rendered, "\n")
	html = boldPattern.ReplaceAllString(html, "<strong>$1</strong>")
	html = italicPattern.ReplaceAllString(html, "<em>$1</em>")
	html = "<p>" + strings.ReplaceAll(html, "\n\n", "</p><p>") + "</p>"

	return f.sanitizer.Sanitize(html)
}
