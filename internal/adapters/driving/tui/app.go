package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opengrama/gramasurvey/internal/adapters/driving/tui/keymap"
	"github.com/opengrama/gramasurvey/internal/adapters/driving/tui/styles"
	"github.com/opengrama/gramasurvey/internal/core/domain"
)

// visibleSections is how many section rows fit in the list at once.
const visibleSections = 12

// refreshedMsg carries a reloaded draft and status snapshot.
type refreshedMsg struct {
	draft         *domain.Draft
	state         domain.SyncState
	authenticated bool
	err           error
}

// syncDoneMsg carries the outcome of a triggered push.
type syncDoneMsg struct {
	state domain.SyncState
	err   error
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keys   *keymap.KeyMap

	draft         *domain.Draft
	state         domain.SyncState
	authenticated bool

	// cursor is the top of the visible section window.
	cursor  int
	syncing bool
	err     error

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: styles.DefaultStyles(),
		keys:   keymap.DefaultKeyMap(),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("gramasurvey"),
		a.refreshCmd(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case refreshedMsg:
		a.draft = msg.draft
		a.state = msg.state
		a.authenticated = msg.authenticated
		a.err = msg.err
		return a, nil

	case syncDoneMsg:
		a.syncing = false
		a.state = msg.state
		a.err = msg.err
		// Reload the draft: an accepted push cleared it.
		return a, a.refreshCmd()

	case tea.KeyMsg:
		switch {
		case keymap.Matches(msg.String(), a.keys.Quit):
			return a, tea.Quit
		case keymap.Matches(msg.String(), a.keys.Refresh):
			return a, a.refreshCmd()
		case keymap.Matches(msg.String(), a.keys.Sync):
			if a.syncing {
				return a, nil
			}
			a.syncing = true
			return a, a.syncCmd()
		case keymap.Matches(msg.String(), a.keys.Up):
			if a.cursor > 0 {
				a.cursor--
			}
			return a, nil
		case keymap.Matches(msg.String(), a.keys.Down):
			if a.cursor < len(domain.Sections)-visibleSections {
				a.cursor++
			}
			return a, nil
		}
	}

	return a, nil
}

// refreshCmd reloads the draft and status off the UI goroutine.
func (a *App) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		draft, err := a.ports.Capture.Current(a.ctx)
		return refreshedMsg{
			draft:         draft,
			state:         a.ports.Sync.State(a.ctx),
			authenticated: a.ports.Auth.Authenticated(a.ctx),
			err:           err,
		}
	}
}

// syncCmd saves the draft and attempts a push.
func (a *App) syncCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := a.ports.Sync.Save(a.ctx)
		return syncDoneMsg{state: state, err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Grama Survey"))
	b.WriteString("\n\n")

	b.WriteString(a.renderHousehold())
	b.WriteString("\n")
	b.WriteString(a.renderSections())
	b.WriteString("\n")
	b.WriteString(a.renderStatus())
	b.WriteString("\n")
	b.WriteString(a.renderHelp())

	return b.String()
}

func (a *App) renderHousehold() string {
	if a.draft == nil {
		return a.styles.Muted.Render("No draft loaded.") + "\n"
	}

	head, _ := a.draft.Identity["headName"].(string)
	if head == "" {
		head = "(unnamed household)"
	}

	var b strings.Builder
	b.WriteString(a.styles.Normal.Render("Household: "+head) + "\n")
	if ward, ok := a.draft.Identity["wardNumber"].(string); ok && ward != "" {
		b.WriteString(a.styles.Muted.Render("Ward "+ward) + "\n")
	}
	return b.String()
}

func (a *App) renderSections() string {
	if a.draft == nil {
		return ""
	}

	var b strings.Builder
	end := a.cursor + visibleSections
	if end > len(domain.Sections) {
		end = len(domain.Sections)
	}

	for i := a.cursor; i < end; i++ {
		spec := &domain.Sections[i]
		b.WriteString("  " + a.styles.Normal.Render(spec.Title))
		b.WriteString("  " + a.styles.Muted.Render(a.sectionSummary(spec)))
		b.WriteString("\n")
	}

	if len(domain.Sections) > visibleSections {
		b.WriteString(a.styles.Muted.Render(
			fmt.Sprintf("  (%d-%d of %d)", a.cursor+1, end, len(domain.Sections))) + "\n")
	}
	return b.String()
}

// sectionSummary renders the fill state of one section.
func (a *App) sectionSummary(spec *domain.SectionSpec) string {
	if spec.Repeatable {
		n := len(a.draft.Items(spec.Key))
		if n == 0 {
			return "none"
		}
		if n == 1 {
			return "1 record"
		}
		return fmt.Sprintf("%d records", n)
	}
	if domain.SectionPresent(a.draft.Object(spec.Key), spec) {
		return "filled"
	}
	return "empty"
}

func (a *App) renderStatus() string {
	var parts []string

	if a.authenticated {
		parts = append(parts, a.styles.Success.Render("signed in"))
	} else {
		parts = append(parts, a.styles.Warning.Render("not signed in"))
	}

	switch {
	case a.syncing:
		parts = append(parts, a.styles.Normal.Render("syncing..."))
	case a.state.Status == domain.SyncSynced:
		parts = append(parts, a.styles.Success.Render("synced"))
	case a.state.Status == domain.SyncOffline:
		parts = append(parts, a.styles.Warning.Render(a.state.Message))
	case a.state.Status == domain.SyncError:
		parts = append(parts, a.styles.Error.Render(a.state.Message))
	case a.state.PendingDraft:
		parts = append(parts, a.styles.Warning.Render("draft pending"))
	}

	if !a.state.LastSynced.IsZero() {
		parts = append(parts, a.styles.Muted.Render(
			"last synced "+a.state.LastSynced.Local().Format(time.Kitchen)))
	}
	if a.err != nil {
		parts = append(parts, a.styles.Error.Render(a.err.Error()))
	}

	return a.styles.StatusBar.Render(strings.Join(parts, "  ·  "))
}

func (a *App) renderHelp() string {
	var hints []string
	for _, binding := range a.keys.ShortHelp() {
		hints = append(hints, binding.Help().Key+" "+binding.Help().Desc)
	}
	return a.styles.Help.Render(strings.Join(hints, "  "))
}
