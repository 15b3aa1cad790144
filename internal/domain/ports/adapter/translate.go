package adapter

import "context"

// Translator renders outbound text in the user's language. Substrings
// wrapped in <not_translate>...</not_translate> markers pass through
// verbatim with the markers stripped.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}
