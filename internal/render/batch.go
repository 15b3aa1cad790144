package render

// TelegramMessageLimit is the hard cap Telegram enforces on message text.
const TelegramMessageLimit = 4096

// Batch packs ordered text blocks into the fewest chunks such that no chunk
// exceeds limit, greedily. Blocks are never split or reordered; joining the
// output with sep reproduces the sep-join of the input exactly.
//
// A single block longer than limit is emitted alone, over budget. Telegram
// rejects it at send time and the failure is logged like any other; blocks
// that large do not occur with the renderer's output.
func Batch(blocks []string, sep string, limit int) []string {
	var chunks []string
	current := ""
	for _, block := range blocks {
		if current == "" {
			current = block
			continue
		}
		if len(current)+len(sep)+len(block) > limit {
			chunks = append(chunks, current)
			current = block
			continue
		}
		current += sep + block
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}
