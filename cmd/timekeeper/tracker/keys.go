package tracker

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit  key.Binding
	Refresh key.Binding
	Quit    key.Binding
	Allow   key.Binding
	Deny    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "log activity")),
		Refresh: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		Allow:   key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "allow")),
		Deny:    key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "deny")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Refresh, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.Refresh, k.Quit}, {k.Allow, k.Deny}}
}
