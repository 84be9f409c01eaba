package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists every binding the roulette screen reacts to. Bindings are
// switched off while they make no sense (draw while spinning, open without a
// candidate) so help and dispatch agree.
type keyMap struct {
	Draw     key.Binding
	Open     key.Binding
	Prev     key.Binding
	Next     key.Binding
	Copy     key.Binding
	Location key.Binding
	Forget   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Draw: key.NewBinding(
			key.WithKeys(" ", "d"),
			key.WithHelp("space/d", "추첨"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "지도 열기"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "이전 후보"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "다음 후보"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "링크 복사"),
		),
		Location: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "위치 변경"),
		),
		Forget: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "위치 삭제"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "종료"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Draw, k.Open, k.Prev, k.Next, k.Copy, k.Location, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Draw, k.Open, k.Copy},
		{k.Prev, k.Next},
		{k.Location, k.Forget, k.Quit},
	}
}
