package interactive

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func press(m multiSelectModel, keys ...string) multiSelectModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(multiSelectModel)
	}
	return m
}

func TestMultiSelectModel(t *testing.T) {
	options := []string{"first", "second", "third"}

	t.Run("enter without selection keeps the list open", func(t *testing.T) {
		m := press(newMultiSelectModel(options, "Pick"), "enter")
		assert.False(t, m.done)
		assert.Contains(t, m.View(), "Pick")
	})

	t.Run("toggle and confirm", func(t *testing.T) {
		m := press(newMultiSelectModel(options, "Pick"), "down", " ", "down", " ", "up", " ", "enter")
		assert.True(t, m.done)
		assert.Equal(t, []int{2}, m.chosen())
		assert.Empty(t, m.View())
	})

	t.Run("select all toggles", func(t *testing.T) {
		m := press(newMultiSelectModel(options, "Pick"), "a")
		assert.Equal(t, []int{0, 1, 2}, m.chosen())
		m = press(m, "a")
		assert.Empty(t, m.chosen())
	})

	t.Run("cursor stays in bounds", func(t *testing.T) {
		m := press(newMultiSelectModel(options, "Pick"), "up", "down", "down", "down", "down")
		assert.Equal(t, 2, m.cursor)
	})

	t.Run("quit cancels", func(t *testing.T) {
		m := press(newMultiSelectModel(options, "Pick"), " ", "q")
		assert.True(t, m.cancelled)
		assert.False(t, m.done)
	})
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "0x0000…0123", ShortHash("0x0000000000000000000000000000000000000000000000000000000000000123"))
	assert.Equal(t, "0x12", ShortHash("0x12"))
}
