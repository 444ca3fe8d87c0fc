package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Sections
	Trending  key.Binding
	Popular   key.Binding
	TopRated  key.Binding
	Favorites key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding

	// Listing
	Search     key.Binding
	Filter     key.Binding
	Open       key.Binding
	ToggleFav  key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	NextSlide  key.Binding
	PrevSlide  key.Binding
	Refresh    key.Binding
	Trailer    key.Binding
	BannerOpen key.Binding

	// Actions
	Quit   key.Binding
	Help   key.Binding
	Escape key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Sections
		Trending: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "trending"),
		),
		Popular: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "popular"),
		),
		TopRated: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "top rated"),
		),
		Favorites: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "favorites"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next section"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev section"),
		),

		// Listing
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		ToggleFav: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "favorite"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "pgdown"),
			key.WithHelp("n", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "pgup"),
			key.WithHelp("p", "prev page"),
		),
		NextSlide: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next featured"),
		),
		PrevSlide: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev featured"),
		),
		BannerOpen: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "featured details"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Trailer: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "trailer"),
		),

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
