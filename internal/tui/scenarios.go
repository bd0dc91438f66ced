package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const storeTimeout = 5 * time.Second

type scenariosListedMsg struct {
	names []string
	err   error
}

type scenarioLoadedMsg struct {
	name   string
	params model.Params
	err    error
}

type scenarioSavedMsg struct {
	name string
	err  error
}

type scenarioDeletedMsg struct {
	name    string
	deleted bool
	err     error
}

// scenarioState tracks the Scenarios tab: the stored names, the cursor and
// the name prompt used by save.
type scenarioState struct {
	names   []string
	cursor  int
	loading bool
	naming  bool
	input   textinput.Model
	status  string
	err     error
}

func newScenarioState() scenarioState {
	ti := textinput.New()
	ti.Placeholder = "scenario name"
	ti.CharLimit = 128
	ti.Width = 40
	return scenarioState{input: ti}
}

func (s *scenarioState) move(step int) {
	s.cursor = max(0, min(s.cursor+step, len(s.names)-1))
}

func (s scenarioState) selected() (string, bool) {
	if s.cursor < 0 || s.cursor >= len(s.names) {
		return "", false
	}
	return s.names[s.cursor], true
}

func listScenariosCmd(st store.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		names, err := st.List(ctx)
		return scenariosListedMsg{names: names, err: err}
	}
}

func loadScenarioCmd(st store.Store, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		p, err := st.Load(ctx, name)
		return scenarioLoadedMsg{name: name, params: p, err: err}
	}
}

func saveScenarioCmd(st store.Store, name string, p model.Params) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return scenarioSavedMsg{name: name, err: st.Save(ctx, name, p)}
	}
}

func deleteScenarioCmd(st store.Store, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		deleted, err := st.Delete(ctx, name)
		return scenarioDeletedMsg{name: name, deleted: deleted, err: err}
	}
}

// reload starts a list refresh with the spinner running.
func (a App) reload() (App, tea.Cmd) {
	a.scen.loading = true
	return a, tea.Batch(a.spinner.Tick, listScenariosCmd(a.store))
}

func (a App) handleScenarioMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scenariosListedMsg:
		a.scen.loading = false
		a.scen.err = msg.err
		if msg.err == nil {
			a.scen.names = msg.names
			a.scen.move(0)
		}
		return a, nil

	case scenarioLoadedMsg:
		if msg.err != nil {
			a.scen.err = fmt.Errorf("loading %q: %w", msg.name, msg.err)
			return a, nil
		}
		a.scen.err = nil
		a.params = msg.params
		a.cohort.Months = msg.params.Months
		a.source = "scenario " + msg.name
		a.presetIdx = -1
		a.scen.status = "Loaded " + msg.name
		a.recompute()
		return a, nil

	case scenarioSavedMsg:
		if msg.err != nil {
			a.scen.err = fmt.Errorf("saving %q: %w", msg.name, msg.err)
			return a, nil
		}
		a.scen.err = nil
		a.scen.status = "Saved " + msg.name
		a.source = "scenario " + msg.name
		return a.reload()

	case scenarioDeletedMsg:
		switch {
		case msg.err != nil:
			a.scen.err = fmt.Errorf("deleting %q: %w", msg.name, msg.err)
			return a, nil
		case !msg.deleted:
			a.scen.status = msg.name + " was already gone"
		default:
			a.scen.status = "Deleted " + msg.name
		}
		a.scen.err = nil
		return a.reload()
	}
	return a, nil
}

// updateScenarioKeys handles keys specific to the Scenarios tab. handled is
// false for keys that fall through to the global bindings.
func (a App) updateScenarioKeys(key string) (next tea.Model, cmd tea.Cmd, handled bool) {
	if a.store == nil {
		return a, nil, false
	}
	switch key {
	case "j", "down":
		a.scen.move(1)
	case "k", "up":
		a.scen.move(-1)
	case "g":
		a.scen.cursor = 0
	case "G":
		a.scen.move(len(a.scen.names))
	case "enter":
		name, ok := a.scen.selected()
		if !ok {
			return a, nil, true
		}
		return a, loadScenarioCmd(a.store, name), true
	case "d":
		name, ok := a.scen.selected()
		if !ok {
			return a, nil, true
		}
		return a, deleteScenarioCmd(a.store, name), true
	case "s":
		a.scen.naming = true
		a.scen.status = ""
		a.scen.input.SetValue("")
		cmd = a.scen.input.Focus()
		return a, cmd, true
	case "r":
		a, cmd = a.reload()
		return a, cmd, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) updateNaming(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			a.scen.naming = false
			a.scen.input.Blur()
			return a, nil
		case "enter":
			name := strings.TrimSpace(a.scen.input.Value())
			if err := store.Validate(name, a.params); err != nil {
				a.scen.err = err
				return a, nil
			}
			a.scen.naming = false
			a.scen.input.Blur()
			return a, saveScenarioCmd(a.store, name, a.params)
		}
	}

	var cmd tea.Cmd
	a.scen.input, cmd = a.scen.input.Update(msg)
	return a, cmd
}
