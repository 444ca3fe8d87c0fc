package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/cinewave/internal/browse"
	"github.com/mmcdole/cinewave/internal/connectivity"
	"github.com/mmcdole/cinewave/internal/domain"
	"github.com/mmcdole/cinewave/internal/favorites"
	"github.com/mmcdole/cinewave/internal/format"
	"github.com/mmcdole/cinewave/internal/launcher"
	"github.com/mmcdole/cinewave/internal/tui/components"
)

// Toast texts
const (
	msgAdded          = "Added to favorites"
	msgRemoved        = "Removed from favorites"
	msgSaveFailed     = "Couldn't save favorites"
	msgLoadFailed     = "Couldn't load movies"
	msgOnline         = "Connection restored"
	msgOffline        = "You're offline"
	msgNoTrailer      = "No trailer available"
	msgOpeningTrailer = "Opening trailer"
)

// DefaultProbeInterval is the connectivity probe period
const DefaultProbeInterval = 15 * time.Second

// Options wires the model to its services
type Options struct {
	Catalog   domain.Catalog
	Favorites *favorites.Store
	Toaster   *components.Toaster
	Launcher  *launcher.Launcher
	Monitor   *connectivity.Monitor // nil disables probing
	Formatter *format.Formatter
	Logger    *slog.Logger

	Section       domain.Section
	SlideInterval time.Duration
	ProbeInterval time.Duration
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	catalog   domain.Catalog
	loader    *browse.Loader
	favorites *favorites.Store
	toaster   *components.Toaster
	launcher  *launcher.Launcher
	monitor   *connectivity.Monitor
	logger    *slog.Logger

	// Navigation state and the cancel func of the fetch in flight
	state    browse.State
	pending  *browse.Request
	cancel   context.CancelFunc
	firstCmd tea.Cmd

	// UI Components
	header  components.Header
	grid    components.Grid
	banner  components.Banner
	detail  components.Detail
	spinner spinner.Model

	// Dimensions
	Width  int
	Height int
	Ready  bool

	online        bool
	showHelp      bool
	probeInterval time.Duration
}

// NewModel creates a new application model and starts the first fetch cycle
// for the initial section. Toaster must not be nil.
func NewModel(opts Options) Model {
	if opts.Toaster == nil {
		panic(domain.ErrNilNotifier)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fmtr := opts.Formatter
	if fmtr == nil {
		fmtr = format.New("en-US")
	}
	probe := opts.ProbeInterval
	if probe <= 0 {
		probe = DefaultProbeInterval
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		catalog:       opts.Catalog,
		loader:        browse.NewLoader(opts.Catalog, logger),
		favorites:     opts.Favorites,
		toaster:       opts.Toaster,
		launcher:      opts.Launcher,
		monitor:       opts.Monitor,
		logger:        logger,
		header:        components.NewHeader(),
		grid:          components.NewGrid(),
		banner:        components.NewBanner(opts.SlideInterval),
		detail:        components.NewDetail(fmtr),
		spinner:       sp,
		online:        true,
		probeInterval: probe,
	}
	m.grid.SetFavoriteFunc(m.favorites.IsFavorite)

	var req *browse.Request
	m.state, req = browse.New(opts.Section).Begin()
	m.pending = req
	if req != nil {
		m.firstCmd = m.startFetch(*req)
	}
	m.header.SetActive(m.state.Effective())
	m.syncListing(true)
	return m
}

// Init starts the first fetch cycle and the connectivity probe
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.firstCmd}
	if m.monitor != nil {
		cmds = append(cmds, ProbeCmd(m.monitor))
	}
	return tea.Batch(cmds...)
}

// State returns the navigation state
func (m Model) State() browse.State {
	return m.state
}

// Online reports the last known connectivity
func (m Model) Online() bool {
	return m.online
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.header.SetWidth(msg.Width)
		m.banner.SetWidth(msg.Width)
		m.detail.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		cmd = m.handleKeyMsg(msg)

	case ListingLoadedMsg:
		next, ok := m.state.Apply(msg.Result)
		if !ok {
			m.logger.Debug("dropping superseded listing", "generation", msg.Result.Generation)
			break
		}
		m.pending = nil
		m.state = next
		cmd = m.syncListing(true)

	case ListingFailedMsg:
		next, ok := m.state.Fail(msg.Generation)
		if !ok {
			m.logger.Debug("dropping superseded failure", "generation", msg.Generation, "error", msg.Err)
			break
		}
		m.pending = nil
		m.state = next
		m.logger.Error("listing failed", "section", m.state.Effective(), "page", m.state.Page, "error", msg.Err)
		cmd = tea.Batch(m.syncListing(true), m.toaster.Add(msgLoadFailed, components.ToastError))

	case DetailLoadedMsg:
		if !m.detail.SetDetail(msg.ID, msg.Detail) {
			m.logger.Debug("dropping stale detail", "id", msg.ID)
		}

	case DetailFailedMsg:
		if m.detail.SetError(msg.ID) {
			m.logger.Error("detail failed", "id", msg.ID, "error", msg.Err)
		}

	case components.SearchSubmittedMsg:
		cmd = m.transition(m.state.Search(msg.Query))

	case components.BannerTickMsg:
		m.banner, cmd = m.banner.Update(msg)

	case components.ToastExpiredMsg:
		m.toaster.Expire(msg.ID)

	case spinner.TickMsg:
		var spCmd, dCmd tea.Cmd
		if msg.ID == m.spinner.ID() {
			if m.state.Loading {
				m.spinner, spCmd = m.spinner.Update(msg)
			}
		} else {
			m.detail, dCmd = m.detail.Update(msg)
		}
		cmd = tea.Batch(spCmd, dCmd)

	case ProbeTickMsg:
		if m.monitor != nil {
			cmd = ProbeCmd(m.monitor)
		}

	case ConnectivityMsg:
		cmd = m.handleConnectivity(msg.Status)

	case TrailerOpenedMsg:
		cmd = m.toaster.Add(msgOpeningTrailer, components.ToastInfo)

	case ErrMsg:
		m.logger.Error("operation failed", "context", msg.Context, "error", msg.Err)
		cmd = m.toaster.Add(msg.Error(), components.ToastError)
	}

	m.layout()
	return m, cmd
}

func (m *Model) handleConnectivity(st connectivity.Status) tea.Cmd {
	m.online = st.Online
	cmds := []tea.Cmd{ScheduleProbeCmd(m.probeInterval)}
	if st.Changed {
		if st.Online {
			cmds = append(cmds, m.toaster.Add(msgOnline, components.ToastInfo))
		} else {
			cmds = append(cmds, m.toaster.Add(msgOffline, components.ToastWarning))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	if m.header.IsTyping() {
		var cmd tea.Cmd
		m.header, cmd = m.header.Update(msg)
		return cmd
	}

	if m.detail.Visible() {
		return m.handleDetailKey(msg)
	}

	if m.grid.IsFilterTyping() {
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(msg)
		return cmd
	}

	if m.showHelp {
		m.showHelp = false
		return nil
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return tea.Quit
	case key.Matches(msg, Keys.Help):
		m.showHelp = true
	case key.Matches(msg, Keys.Trending):
		return m.transition(m.state.ChangeSection(domain.SectionTrending))
	case key.Matches(msg, Keys.Popular):
		return m.transition(m.state.ChangeSection(domain.SectionPopular))
	case key.Matches(msg, Keys.TopRated):
		return m.transition(m.state.ChangeSection(domain.SectionTopRated))
	case key.Matches(msg, Keys.Favorites):
		return m.transition(m.state.ChangeSection(domain.SectionFavorites))
	case key.Matches(msg, Keys.NextTab):
		return m.transition(m.state.ChangeSection(m.stepSection(1)))
	case key.Matches(msg, Keys.PrevTab):
		return m.transition(m.state.ChangeSection(m.stepSection(-1)))
	case key.Matches(msg, Keys.Search):
		return m.header.FocusSearch()
	case key.Matches(msg, Keys.Filter):
		return m.grid.ToggleFilter()
	case key.Matches(msg, Keys.Open):
		if movie, ok := m.grid.Selected(); ok {
			return m.openDetail(movie.ID)
		}
	case key.Matches(msg, Keys.BannerOpen):
		if movie, ok := m.banner.Current(); ok && m.state.ShowBanner() {
			return m.openDetail(movie.ID)
		}
	case key.Matches(msg, Keys.ToggleFav):
		if movie, ok := m.grid.Selected(); ok {
			return m.toggleFavorite(movie)
		}
	case key.Matches(msg, Keys.NextPage):
		return m.transition(m.state.ChangePage(1))
	case key.Matches(msg, Keys.PrevPage):
		return m.transition(m.state.ChangePage(-1))
	case key.Matches(msg, Keys.NextSlide):
		m.banner.Next()
	case key.Matches(msg, Keys.PrevSlide):
		m.banner.Prev()
	case key.Matches(msg, Keys.Refresh):
		return m.transition(m.state.Begin())
	case key.Matches(msg, Keys.Escape):
		if m.grid.IsFiltering() {
			m.grid.ClearFilter()
			return nil
		}
		if m.state.Searching {
			m.header.ClearSearch()
			return m.transition(m.state.ChangeSection(m.state.Section))
		}
	default:
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, Keys.Escape), key.Matches(msg, Keys.Quit):
		m.detail.Close()
		m.state = m.state.CloseDetail()
		return nil
	case key.Matches(msg, Keys.ToggleFav):
		if d, ok := m.detail.Loaded(); ok {
			return m.toggleFavorite(d.Summary())
		}
		return nil
	case key.Matches(msg, Keys.Trailer):
		d, ok := m.detail.Loaded()
		if !ok {
			return nil
		}
		if d.Trailer == nil || m.launcher == nil {
			return m.toaster.Add(msgNoTrailer, components.ToastWarning)
		}
		return OpenTrailerCmd(m.launcher, *d.Trailer)
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return cmd
}

func (m *Model) openDetail(id int) tea.Cmd {
	m.state = m.state.OpenDetail(id)
	return tea.Batch(m.detail.Open(id), LoadDetailCmd(m.catalog, id))
}

// toggleFavorite flips membership and reports it with a toast
func (m *Model) toggleFavorite(movie domain.Movie) tea.Cmd {
	added, err := m.favorites.Toggle(movie)
	if m.state.Effective() == domain.SectionFavorites {
		m.syncListing(false)
	}
	if err != nil {
		m.logger.Error("saving favorites failed", "id", movie.ID, "error", err)
		return m.toaster.Add(msgSaveFailed, components.ToastError)
	}
	if added {
		return m.toaster.Add(msgAdded, components.ToastInfo)
	}
	return m.toaster.Add(msgRemoved, components.ToastInfo)
}

// transition installs the next state and starts its fetch cycle, if any
func (m *Model) transition(next browse.State, req *browse.Request) tea.Cmd {
	superseded := next.Generation != m.state.Generation
	m.state = next
	m.header.SetActive(m.state.Effective())

	if superseded && m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if !superseded {
		return nil
	}

	var cmds []tea.Cmd
	if req != nil {
		m.pending = req
		cmds = append(cmds, m.startFetch(*req), m.spinner.Tick)
	} else {
		m.pending = nil
	}
	cmds = append(cmds, m.syncListing(true))
	return tea.Batch(cmds...)
}

// startFetch runs req under a context that a later cycle can cancel
func (m *Model) startFetch(req browse.Request) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	return LoadListingCmd(ctx, m.loader, req)
}

// syncListing pushes the state's listing into the grid and banner
func (m *Model) syncListing(reset bool) tea.Cmd {
	m.grid.SetEmptyMessage(m.state.EmptyMessage())
	shown := m.state.Displayed(m.favorites.List())
	if reset {
		m.grid.SetMovies(shown)
	} else {
		m.grid.Refresh(shown)
	}

	if m.state.ShowBanner() {
		return m.banner.SetMovies(m.state.Featured())
	}
	m.banner.Stop()
	return nil
}

func (m Model) stepSection(delta int) domain.Section {
	n := len(domain.Sections)
	for i, s := range domain.Sections {
		if s == m.state.Section {
			return domain.Sections[((i+delta)%n+n)%n]
		}
	}
	return domain.Sections[0]
}
