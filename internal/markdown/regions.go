package markdown

import (
	"regexp"
	"strings"
)

// SegmentKind discriminates body sub-regions.
type SegmentKind int

const (
	// KindText is ordinary Markdown text.
	KindText SegmentKind = iota
	// KindCode is a highlighted code region carrying a language tag.
	KindCode
	// KindRaw is a passthrough region emitted without any processing.
	KindRaw
)

// Segment is one tagged sub-region of a document body.
type Segment struct {
	Kind    SegmentKind
	Lang    string
	Content string
}

var (
	highlightOpen  = regexp.MustCompile(`\{%\s*highlight(?:\s+([A-Za-z0-9_.+#-]+))?\s*%\}`)
	highlightClose = regexp.MustCompile(`\{%\s*endhighlight\s*%\}`)
	rawOpen        = regexp.MustCompile(`\{%\s*raw\s*%\}`)
	rawClose       = regexp.MustCompile(`\{%\s*endraw\s*%\}`)
)

// SplitRegions scans a body for highlighted code regions and raw passthrough
// regions and returns the resulting segment sequence.
//
// Regions do not nest: whichever open marker appears first wins, and the first
// matching end marker closes it. An open marker with no matching end marker is
// not an error; the marker and everything after it stay ordinary Markdown text
// so rendering remains total.
func SplitRegions(body string) []Segment {
	var segments []Segment
	rest := body

	for rest != "" {
		hl := highlightOpen.FindStringSubmatchIndex(rest)
		rw := rawOpen.FindStringIndex(rest)

		// Neither marker present: everything left is text.
		if hl == nil && rw == nil {
			segments = appendText(segments, rest)
			break
		}

		rawFirst := rw != nil && (hl == nil || rw[0] < hl[0])

		if rawFirst {
			end := rawClose.FindStringIndex(rest[rw[1]:])
			if end == nil {
				segments = appendText(segments, rest)
				break
			}
			segments = appendText(segments, rest[:rw[0]])
			segments = append(segments, Segment{
				Kind:    KindRaw,
				Content: rest[rw[1] : rw[1]+end[0]],
			})
			rest = rest[rw[1]+end[1]:]
			continue
		}

		end := highlightClose.FindStringIndex(rest[hl[1]:])
		if end == nil {
			segments = appendText(segments, rest)
			break
		}
		lang := ""
		if hl[2] >= 0 {
			lang = rest[hl[2]:hl[3]]
		}
		segments = appendText(segments, rest[:hl[0]])
		segments = append(segments, Segment{
			Kind:    KindCode,
			Lang:    strings.TrimSpace(lang),
			Content: rest[hl[1] : hl[1]+end[0]],
		})
		rest = rest[hl[1]+end[1]:]
	}

	return segments
}

func appendText(segments []Segment, text string) []Segment {
	if text == "" {
		return segments
	}
	return append(segments, Segment{Kind: KindText, Content: text})
}
