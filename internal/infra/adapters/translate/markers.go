package translate

import "strings"

const (
	markerOpen  = "<not_translate>"
	markerClose = "</not_translate>"
)

// segment is a run of text that is either translatable or protected by the
// not_translate markers. Protected runs keep their original bytes.
type segment struct {
	text      string
	protected bool
}

// splitMarkers cuts text into alternating translatable and protected
// segments. An unclosed marker protects everything to the end of the text.
func splitMarkers(text string) []segment {
	var segments []segment
	for len(text) > 0 {
		open := strings.Index(text, markerOpen)
		if open < 0 {
			segments = append(segments, segment{text: text})
			break
		}
		if open > 0 {
			segments = append(segments, segment{text: text[:open]})
		}
		rest := text[open+len(markerOpen):]
		closeIdx := strings.Index(rest, markerClose)
		if closeIdx < 0 {
			segments = append(segments, segment{text: rest, protected: true})
			break
		}
		segments = append(segments, segment{text: rest[:closeIdx], protected: true})
		text = rest[closeIdx+len(markerClose):]
	}
	return segments
}

// joinSegments reassembles the text after the translatable runs have been
// replaced.
func joinSegments(segments []segment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.text)
	}
	return sb.String()
}

// Protect wraps a span so Translate leaves it untouched. Proper nouns like
// team and league names go through this before the text is built.
func Protect(s string) string {
	if s == "" {
		return s
	}
	return markerOpen + s + markerClose
}

// StripMarkers removes the marker tags, keeping the wrapped text as-is. Used
// when no translation is wanted so the markers never reach a chat.
func StripMarkers(text string) string {
	var sb strings.Builder
	for _, s := range splitMarkers(text) {
		sb.WriteString(s.text)
	}
	return sb.String()
}
