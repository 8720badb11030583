package history

import "fmt"

// Replay applies actions in order starting from the empty text. An action that does
// not fit the text built so far stops the replay with ErrPosition or ErrLength.
func Replay(actions []Action) (string, error) {
	text := ""
	for i, a := range actions {
		if err := a.check(text); err != nil {
			return text, fmt.Errorf("action %d (%v): %w", i, a, err)
		}
		text = a.Apply(text)
	}
	return text, nil
}
