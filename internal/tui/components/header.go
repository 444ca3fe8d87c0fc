package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/cinewave/internal/domain"
	"github.com/mmcdole/cinewave/internal/tui/styles"
)

// SearchSubmittedMsg carries a trimmed, non-empty search query
type SearchSubmittedMsg struct {
	Query string
}

// Header shows the section tabs and the search box
type Header struct {
	active domain.Section
	input  textinput.Model
	width  int
}

func NewHeader() Header {
	ti := textinput.New()
	ti.Placeholder = "search movies..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle
	ti.CharLimit = 100

	return Header{active: domain.SectionTrending, input: ti}
}

// SetActive highlights the displayed section (search highlights no tab)
func (h *Header) SetActive(s domain.Section) {
	h.active = s
}

func (h *Header) SetWidth(width int) {
	h.width = width
	h.input.Width = max(10, width/3)
}

// FocusSearch puts the cursor in the search box
func (h *Header) FocusSearch() tea.Cmd {
	return h.input.Focus()
}

// IsTyping returns true while the search box has focus
func (h Header) IsTyping() bool {
	return h.input.Focused()
}

// Update handles messages while the search box is focused
func (h Header) Update(msg tea.Msg) (Header, tea.Cmd) {
	if !h.input.Focused() {
		return h, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			h.input.Blur()
			h.input.SetValue("")
			return h, nil
		case "enter":
			q := strings.TrimSpace(h.input.Value())
			if q == "" {
				return h, nil
			}
			h.input.Blur()
			return h, func() tea.Msg { return SearchSubmittedMsg{Query: q} }
		}
	}

	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

// ClearSearch empties the search box, used when leaving search mode
func (h *Header) ClearSearch() {
	h.input.SetValue("")
	h.input.Blur()
}

// View renders the component
func (h Header) View() string {
	parts := []string{styles.LogoStyle.Render("cinewave")}

	for i, s := range domain.Sections {
		label := fmt.Sprintf("%d %s", i+1, s.Label())
		if s == h.active {
			parts = append(parts, styles.ActiveTabStyle.Render(label))
		} else {
			parts = append(parts, styles.TabStyle.Render(label))
		}
	}

	tabs := lipgloss.JoinHorizontal(lipgloss.Center, parts...)

	search := styles.DimStyle.Render("/ search")
	if h.input.Focused() || h.input.Value() != "" {
		search = h.input.View()
	}

	gap := h.width - lipgloss.Width(tabs) - lipgloss.Width(search)
	if gap < 1 {
		return tabs + "\n" + search
	}
	return tabs + strings.Repeat(" ", gap) + search
}
