package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jgrier/quotd/internal/prefs"
	"github.com/jgrier/quotd/internal/quote"
)

// Commands are the core operations injected into the App.
// IMPORTANT: App does NOT hold the coordinator. It dispatches intents
// through these and receives results via messages.
type Commands struct {
	// LoadToday returns a command loading the quote of the day, or nil
	// when the call is debounced.
	LoadToday func() tea.Cmd
	// LoadRandom returns a command loading a new random quote, or nil
	// when the call is debounced.
	LoadRandom func(current quote.Quote) tea.Cmd
	// IsCurrent reports whether a completion generation is still newest.
	IsCurrent func(gen uint64) bool
}

// App is the root Bubble Tea model.
type App struct {
	cmds  Commands
	prefs *prefs.Prefs

	theme  Theme
	styles Styles

	current   quote.Quote
	haveQuote bool
	favorite  bool
	visitDays int

	loading bool
	spin    spinner.Model
	errMsg  string

	showHelp      bool
	showFavorites bool
	favorites     []quote.Quote
	favCursor     int

	width  int
	height int
	ready  bool
}

// NewApp creates the App. visitDays is today's distinct-day count, already
// recorded by the caller.
func NewApp(cmds Commands, p *prefs.Prefs, visitDays int) App {
	theme := ThemeByName(p.Theme())
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	return App{
		cmds:      cmds,
		prefs:     p,
		theme:     theme,
		styles:    theme.Styles(),
		visitDays: visitDays,
		spin:      sp,
	}
}

// Init loads today's quote on startup.
func (a App) Init() tea.Cmd {
	if a.cmds.LoadToday == nil {
		return nil
	}
	if cmd := a.cmds.LoadToday(); cmd != nil {
		return tea.Batch(cmd, a.spin.Tick)
	}
	return nil
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case spinner.TickMsg:
		if !a.loading && a.haveQuote {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case QuoteLoaded:
		if a.stale(msg.Gen) {
			return a, nil
		}
		a.loading = false
		a.errMsg = ""
		a.current = msg.Quote
		a.haveQuote = true
		a.favorite = a.prefs.IsFavorite(msg.Quote)
		return a, nil

	case LoadFailed:
		if a.stale(msg.Gen) {
			return a, nil
		}
		a.loading = false
		a.errMsg = "failed to fetch a quote — press t or r to retry"
		return a, nil

	case RateLimited:
		if a.stale(msg.Gen) {
			return a, nil
		}
		a.loading = false
		a.errMsg = fmt.Sprintf("the quote service is rate limiting — try again in %ds", int(msg.Backoff.Seconds()))
		return a, nil
	}

	return a, nil
}

// stale reports whether a completion belongs to a superseded load.
func (a App) stale(gen uint64) bool {
	return a.cmds.IsCurrent != nil && !a.cmds.IsCurrent(gen)
}

// handleKeyMsg processes keyboard input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showFavorites {
		return a.handleFavoritesKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "t":
		if a.cmds.LoadToday == nil {
			return a, nil
		}
		if cmd := a.cmds.LoadToday(); cmd != nil {
			a.loading = true
			a.errMsg = ""
			return a, tea.Batch(cmd, a.spin.Tick)
		}
		return a, nil

	case "r":
		if a.cmds.LoadRandom == nil {
			return a, nil
		}
		if cmd := a.cmds.LoadRandom(a.current); cmd != nil {
			a.loading = true
			a.errMsg = ""
			return a, tea.Batch(cmd, a.spin.Tick)
		}
		return a, nil

	case "f":
		if a.haveQuote {
			a.favorite = a.prefs.ToggleFavorite(a.current)
		}
		return a, nil

	case "v":
		a.favorites = a.prefs.Favorites()
		a.favCursor = 0
		a.showFavorites = true
		return a, nil

	case "d":
		a.theme = ThemeByName(a.prefs.ToggleTheme())
		a.styles = a.theme.Styles()
		a.spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(a.theme.Accent))
		return a, nil

	case "?":
		a.showHelp = !a.showHelp
		return a, nil

	case "esc":
		a.showHelp = false
		return a, nil
	}

	return a, nil
}

// handleFavoritesKey processes input while the favorites view is open.
func (a App) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "esc", "v":
		a.showFavorites = false
		return a, nil

	case "j", "down":
		if a.favCursor < len(a.favorites)-1 {
			a.favCursor++
		}
		return a, nil

	case "k", "up":
		if a.favCursor > 0 {
			a.favCursor--
		}
		return a, nil

	case "f":
		// Unfavorite the selected entry in place.
		if a.favCursor < len(a.favorites) {
			a.prefs.ToggleFavorite(a.favorites[a.favCursor])
			a.favorites = a.prefs.Favorites()
			if a.favCursor >= len(a.favorites) && a.favCursor > 0 {
				a.favCursor--
			}
			if a.haveQuote {
				a.favorite = a.prefs.IsFavorite(a.current)
			}
		}
		return a, nil
	}

	return a, nil
}

// CurrentQuote returns the displayed quote (for testing).
func (a App) CurrentQuote() (quote.Quote, bool) {
	return a.current, a.haveQuote
}

// Loading returns whether a load is in flight (for testing).
func (a App) Loading() bool {
	return a.loading
}

// ErrorMessage returns the visible error line (for testing).
func (a App) ErrorMessage() string {
	return a.errMsg
}
