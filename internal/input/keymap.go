// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys to actions.
type Keymap map[tcell.Key]Action

// RuneKeymap maps plain runes to actions.
type RuneKeymap map[rune]Action

// InputProcessor translates tcell key events into viewer actions.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyUp] = ActionScrollUp
	p.keymap[tcell.KeyDown] = ActionScrollDown
	p.keymap[tcell.KeyPgUp] = ActionPageUp
	p.keymap[tcell.KeyPgDn] = ActionPageDown
	p.keymap[tcell.KeyHome] = ActionTop
	p.keymap[tcell.KeyEnd] = ActionBottom
	p.keymap[tcell.KeyTab] = ActionSwitchPane
	p.keymap[tcell.KeyEscape] = ActionQuit
	p.keymap[tcell.KeyCtrlC] = ActionQuit

	// less-style bindings
	p.runeKeymap['q'] = ActionQuit
	p.runeKeymap['k'] = ActionScrollUp
	p.runeKeymap['j'] = ActionScrollDown
	p.runeKeymap['b'] = ActionPageUp
	p.runeKeymap[' '] = ActionPageDown
	p.runeKeymap['g'] = ActionTop
	p.runeKeymap['G'] = ActionBottom
}

// Bind maps key to action, replacing any existing binding.
func (p *InputProcessor) Bind(key tcell.Key, action Action) {
	p.keymap[key] = action
}

// BindRune maps r to action, replacing any existing binding.
func (p *InputProcessor) BindRune(r rune, action Action) {
	p.runeKeymap[r] = action
}

// ProcessEvent returns the action bound to ev, or ActionUnknown.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) Action {
	key := ev.Key()
	mod := ev.Modifiers()

	// Ctrl-letter keys carry the modifier in the key itself.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	if key == tcell.KeyRune {
		if mod != tcell.ModNone && mod != tcell.ModShift {
			return ActionUnknown
		}
		if action, ok := p.runeKeymap[ev.Rune()]; ok {
			return action
		}
		return ActionUnknown
	}

	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return action
		}
	}
	return ActionUnknown
}
