package history

// Optimize returns an equivalent, shorter action sequence in which every run of
// adjacent mergeable inserts is collapsed into one insert. Other actions keep their
// relative order. The input slice is not modified.
func Optimize(actions []Action) []Action {
	if len(actions) == 0 {
		return []Action{}
	}

	out := make([]Action, 0, len(actions))
	pending := actions[0]

	// Scanning: keep folding the next action into pending while merges succeed.
	for next := 1; next < len(actions); next++ {
		if merged, ok := mergeInserts(pending, actions[next]); ok {
			pending = merged
			continue
		}
		out = append(out, pending)
		pending = actions[next]
	}

	// Draining: input exhausted, flush the window.
	return append(out, pending)
}

// mergeInserts collapses b into a when both are inserts over contiguous versions and
// b lands at the end of a's text, or inside it when a was inserted at the start.
func mergeInserts(a, b Action) (Action, bool) {
	if a.Type != InsertAction || b.Type != InsertAction || a.ToVersion != b.FromVersion {
		return Action{}, false
	}

	aLen := a.TextLen()
	var pos int
	var text string
	switch {
	case b.Pos == a.Pos+aLen:
		pos, text = a.Pos, a.Text+b.Text
	case a.Pos == 0 && b.Pos >= 0 && b.Pos <= aLen:
		runes := []rune(a.Text)
		pos, text = 0, string(runes[:b.Pos])+b.Text+string(runes[b.Pos:])
	default:
		return Action{}, false
	}

	return NewInsert(pos, text, a.FromVersion, b.ToVersion), true
}
