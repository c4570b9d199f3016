package complete

// Do implements readline.AutoCompleter. It adapts Complete's
// (candidates, replaced-substring) contract to readline's suffix-based
// protocol: each returned entry is the candidate text remaining after the
// typed fragment, and length is the rune length of that fragment.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	candidates, word := c.Complete(string(line[:pos]))
	wordLen := len([]rune(word))

	var out [][]rune
	for _, cand := range candidates {
		runes := []rune(cand)
		if len(runes) < wordLen {
			continue
		}
		out = append(out, runes[wordLen:])
	}
	return out, wordLen
}
