// Package tui renders the catalog list and item details in the terminal.
//
// The models are pure consumers of controller state: every screen is a
// function of the latest published ListState or detail.State, and user
// actions are forwarded to the controllers as Retry / RequestNextPage calls.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Sternrassler/catalog-client/pkg/detail"
	"github.com/Sternrassler/catalog-client/pkg/pagination"
	"github.com/Sternrassler/catalog-client/pkg/state"
)

// DefaultLoadMoreThreshold is how close (in rows) the cursor must get to the
// end of the list before the next page is requested.
const DefaultLoadMoreThreshold = 3

// ListController is the list side of the model. *pagination.Controller
// satisfies it.
type ListController interface {
	Subscribe() *state.Subscription[pagination.ListState]
	Retry()
	RequestNextPage()
}

// DetailController is the detail side of the model. *detail.Controller
// satisfies it.
type DetailController interface {
	Subscribe() *state.Subscription[detail.State]
	Retry()
	Close()
}

// DetailOpener creates a detail controller for the given item id.
type DetailOpener func(id int) DetailController

type listStateMsg struct {
	state pagination.ListState
}

type detailStateMsg struct {
	sub   *state.Subscription[detail.State]
	state detail.State
}

type subscriptionClosedMsg struct{}

// Option configures a Model.
type Option func(*Model)

// WithKeyMap overrides the default key bindings.
func WithKeyMap(keys KeyMap) Option {
	return func(m *Model) {
		m.keys = keys
	}
}

// WithLoadMoreThreshold overrides DefaultLoadMoreThreshold.
func WithLoadMoreThreshold(rows int) Option {
	return func(m *Model) {
		if rows > 0 {
			m.threshold = rows
		}
	}
}

// Model is the root bubbletea model: a paginated list with an optional
// detail screen on top.
type Model struct {
	keys      KeyMap
	sp        spinner.Model
	threshold int
	height    int

	list      ListController
	listSub   *state.Subscription[pagination.ListState]
	listState pagination.ListState
	cursor    int

	open     DetailOpener
	det      DetailController
	detSub   *state.Subscription[detail.State]
	detState detail.State
	detID    int
}

// New builds a Model bound to list. open is used to create detail
// controllers when an item is selected.
func New(list ListController, open DetailOpener, opts ...Option) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	m := Model{
		keys:      DefaultKeyMap(),
		sp:        sp,
		threshold: DefaultLoadMoreThreshold,
		list:      list,
		listSub:   list.Subscribe(),
		listState: pagination.Loading(),
		open:      open,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func waitForList(sub *state.Subscription[pagination.ListState]) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-sub.C()
		if !ok {
			return subscriptionClosedMsg{}
		}
		return listStateMsg{state: v}
	}
}

func waitForDetail(sub *state.Subscription[detail.State]) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-sub.C()
		if !ok {
			return subscriptionClosedMsg{}
		}
		return detailStateMsg{sub: sub, state: v}
	}
}

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.sp.Tick, waitForList(m.listSub))
}

// Update satisfies tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = v.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(v)
		return m, cmd

	case listStateMsg:
		m.listState = v.state
		m.clampCursor()
		m.maybeLoadMore()
		return m, waitForList(m.listSub)

	case detailStateMsg:
		// Late states from a detail screen that was already closed.
		if v.sub != m.detSub {
			return m, nil
		}
		m.detState = v.state
		return m, waitForDetail(v.sub)

	case subscriptionClosedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(v)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.Shutdown()
		return m, tea.Quit
	}

	if m.det != nil {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.closeDetail()
		case key.Matches(msg, m.keys.Retry):
			if isDetailError(m.detState.Status) {
				m.det.Retry()
			}
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.listState.IsLoaded() && m.cursor < len(m.listState.Items)-1 {
			m.cursor++
		}
		m.maybeLoadMore()
	case key.Matches(msg, m.keys.Retry):
		if isListError(m.listState.Status) {
			m.cursor = 0
			m.list.Retry()
		}
	case key.Matches(msg, m.keys.Open):
		if m.listState.IsLoaded() && len(m.listState.Items) > 0 {
			return m.openDetail(m.listState.Items[m.cursor].ID)
		}
	}
	return m, nil
}

func (m *Model) maybeLoadMore() {
	if !m.listState.IsLoaded() || m.listState.LoadingMore {
		return
	}
	if m.cursor >= len(m.listState.Items)-m.threshold {
		m.list.RequestNextPage()
	}
}

func (m Model) openDetail(id int) (tea.Model, tea.Cmd) {
	m.closeDetail()
	m.det = m.open(id)
	m.detID = id
	m.detSub = m.det.Subscribe()
	m.detState = detail.State{Status: detail.Loading}
	return m, waitForDetail(m.detSub)
}

func (m *Model) closeDetail() {
	if m.det == nil {
		return
	}
	m.detSub.Cancel()
	m.det.Close()
	m.det = nil
	m.detSub = nil
}

// Shutdown closes any open detail controller and stops listening to the
// list. The list controller itself belongs to the caller.
func (m *Model) Shutdown() {
	m.closeDetail()
	m.listSub.Cancel()
}

func (m *Model) clampCursor() {
	n := 0
	if m.listState.IsLoaded() {
		n = len(m.listState.Items)
	}
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func isListError(s pagination.ListStatus) bool {
	return s == pagination.ListNetworkError || s == pagination.ListNoConnectivityError
}

func isDetailError(s detail.Status) bool {
	return s == detail.NetworkError || s == detail.NoConnectivityError
}

// View satisfies tea.Model.
func (m Model) View() string {
	if m.det != nil {
		return m.detailView()
	}
	return m.listView()
}

func (m Model) listView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Catalog"))
	b.WriteString("\n")

	switch m.listState.Status {
	case pagination.ListLoading:
		fmt.Fprintf(&b, "%s Loading…\n", m.sp.View())
	case pagination.ListEmpty:
		b.WriteString(faintStyle.Render("Nothing to show."))
		b.WriteString("\n")
	case pagination.ListNoConnectivityError:
		b.WriteString(noConnectivityView())
	case pagination.ListNetworkError:
		b.WriteString(networkErrorView())
	case pagination.ListLoaded:
		b.WriteString(m.rows())
		if m.listState.LoadingMore {
			fmt.Fprintf(&b, "  %s Loading more…\n", m.sp.View())
		}
	default:
		fmt.Fprintf(&b, "unhandled list state %s\n", m.listState.Status)
	}

	b.WriteString(helpLine(m.keys.Up, m.keys.Down, m.keys.Open, m.keys.Retry, m.keys.Quit))
	return b.String()
}

func (m Model) rows() string {
	items := m.listState.Items
	start, end := 0, len(items)
	// Title, help line and the load-more row.
	if visible := m.height - 5; m.height > 0 && visible > 0 && visible < len(items) {
		start = max(m.cursor-visible+1, 0)
		end = start + visible
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		row := fmt.Sprintf("#%04d %s", items[i].ID, items[i].Name)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + row))
		} else {
			b.WriteString(itemStyle.Render(row))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) detailView() string {
	var b strings.Builder

	switch m.detState.Status {
	case detail.Loading:
		b.WriteString(titleStyle.Render(fmt.Sprintf("#%04d", m.detID)))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s Loading…\n", m.sp.View())
	case detail.NoConnectivityError:
		b.WriteString(noConnectivityView())
	case detail.NetworkError:
		b.WriteString(networkErrorView())
	case detail.Loaded:
		it := m.detState.Item
		b.WriteString(titleStyle.Render(it.Name))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s%d\n", labelStyle.Render("ID"), it.ID)
		fmt.Fprintf(&b, "%s%d\n", labelStyle.Render("Height"), it.Height)
		image := it.ImageURL
		if image == "" {
			image = faintStyle.Render("none")
		}
		fmt.Fprintf(&b, "%s%s\n", labelStyle.Render("Image"), image)
	default:
		fmt.Fprintf(&b, "unhandled detail state %s\n", m.detState.Status)
	}

	b.WriteString(helpLine(m.keys.Back, m.keys.Retry, m.keys.Quit))
	return b.String()
}

func noConnectivityView() string {
	return warnStyle.Render("No internet connection.") + "\n" +
		faintStyle.Render("Check your connection and press r to try again.") + "\n"
}

func networkErrorView() string {
	return warnStyle.Render("Something went wrong.") + "\n" +
		faintStyle.Render("Press r to try again.") + "\n"
}
