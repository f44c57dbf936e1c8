// Package tui renders the interactive studio dashboard: the job list with
// live pipeline progress, the detail slide panel, and the new-idea wizard.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	pbar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studioctl/internal/api"
	"studioctl/internal/config"
	"studioctl/internal/panel"
	"studioctl/internal/progress"
	"studioctl/internal/uistate"
)

type mode int

const (
	modeBrowse mode = iota
	modeForm
	modeConfirmCancel
)

// Model is the dashboard's Bubble Tea model.
type Model struct {
	client *api.Client
	store  *uistate.Store
	detail *panel.Panel

	pollInterval time.Duration
	bar          pbar.Model

	jobs         []api.VideoJob
	channelNames map[string]string
	jobDetail    *api.VideoJobDetail

	cursor int
	width  int
	height int
	mode   mode

	form         *ideaForm
	confirmJobID string

	sub         *progress.Subscription
	streamCh    chan tea.Msg
	streamQuit  chan struct{}
	streamJobID string
	lastEvent   *api.ProgressEvent
	streaming   bool

	storeCh       <-chan struct{}
	statusMessage string
}

// NewModel builds the dashboard model. The uistate store and detail panel are
// owned by the model; their timers drive toast expiry and the panel close
// animation.
func NewModel(client *api.Client, cfg *config.Config) Model {
	store := uistate.New(
		uistate.WithSuccessExpiry(time.Duration(cfg.Dashboard.ToastTTLSeconds) * time.Second),
	)
	detail := panel.New(
		panel.WithClearDelay(time.Duration(cfg.Dashboard.PanelCloseDelayMS) * time.Millisecond),
	)
	bar := pbar.New(pbar.WithDefaultGradient())

	interval := time.Duration(cfg.Dashboard.PollIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 10 * time.Second
	}

	return Model{
		client:       client,
		store:        store,
		detail:       detail,
		pollInterval: interval,
		bar:          bar,
		channelNames: map[string]string{},
		storeCh:      store.Subscribe(),
	}
}

// Run starts the dashboard in the alternate screen and blocks until exit.
func Run(client *api.Client, cfg *config.Config) error {
	m := NewModel(client, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := finalModel.(Model); ok {
		fm.stopStream()
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadJobsCmd(m.client),
		pollCmd(m.pollInterval),
		waitStoreCmd(m.storeCh),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case jobsLoadedMsg:
		// Load failures are never fatal; the poll loop keeps retrying and
		// the last good job list stays on screen.
		if msg.err != nil {
			if api.IsUnavailable(msg.err) {
				m.statusMessage = "backend unreachable, retrying on next poll"
			} else {
				m.statusMessage = "refresh failed: " + msg.err.Error()
			}
			return m, nil
		}
		m.jobs = msg.jobs
		m.channelNames = msg.channels
		if m.cursor >= len(m.jobs) {
			m.cursor = maxInt(len(m.jobs)-1, 0)
		}
		return m, nil

	case jobDetailMsg:
		if msg.err != nil {
			m.store.AddNotification(uistate.KindError, "Load failed", msg.err.Error())
			return m, nil
		}
		detail := msg.detail
		m.jobDetail = &detail
		return m, nil

	case genresLoadedMsg:
		if msg.err != nil {
			m.store.AddNotification(uistate.KindError, "Genres unavailable", msg.err.Error())
			m.mode = modeBrowse
			return m, nil
		}
		m.form = newIdeaForm(msg.genres, m.width)
		return m, nil

	case ideaSavedMsg:
		if msg.err != nil {
			if m.form != nil {
				m.form.Saving = false
				m.form.Errors["form"] = msg.err.Error()
			}
			return m, nil
		}
		m.mode = modeBrowse
		m.form = nil
		m.store.AddNotification(uistate.KindSuccess, "Idea saved", msg.idea.Title)
		return m, nil

	case jobActionMsg:
		if msg.err != nil {
			m.store.AddNotification(uistate.KindError, "Action failed", msg.err.Error())
			return m, nil
		}
		switch msg.verb {
		case "cancel":
			m.store.AddNotification(uistate.KindInfo, "Cancellation requested", shortID(msg.job.ID))
		case "retry":
			m.store.AddNotification(uistate.KindInfo, "Job requeued", shortID(msg.job.ID))
		}
		return m, loadJobsCmd(m.client)

	case pollTickMsg:
		return m, tea.Batch(loadJobsCmd(m.client), pollCmd(m.pollInterval))

	case storeChangedMsg:
		return m, waitStoreCmd(m.storeCh)

	case streamEventMsg:
		// Events from a stream stopped during a detail switch may still be
		// buffered; only the followed job's events may touch the panel.
		if msg.jobID != m.streamJobID {
			return m, nil
		}
		event := msg.event
		m.lastEvent = &event
		if m.jobDetail != nil {
			m.jobDetail.Status = event.Status
		}
		return m, waitStreamCmd(m.streamCh)

	case streamDoneMsg:
		if msg.jobID != m.streamJobID {
			return m, nil
		}
		switch msg.status {
		case api.StatusCompleted:
			m.store.AddNotification(uistate.KindSuccess, "Video ready", shortID(m.detail.SelectedID()))
		case api.StatusFailed:
			m.store.AddNotification(uistate.KindError, "Job failed", shortID(m.detail.SelectedID()))
		case api.StatusCancelled:
			m.store.AddNotification(uistate.KindInfo, "Job cancelled", shortID(m.detail.SelectedID()))
		}
		m.streaming = false
		return m, loadJobsCmd(m.client)

	case streamConnMsg:
		if msg.jobID != m.streamJobID {
			return m, nil
		}
		if !msg.connected {
			m.statusMessage = "progress stream reconnecting..."
		} else {
			m.statusMessage = ""
		}
		return m, waitStreamCmd(m.streamCh)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.mode {
	case modeForm:
		return m.updateForm(keyMsg)
	case modeConfirmCancel:
		return m.updateConfirm(keyMsg)
	default:
		return m.updateBrowse(keyMsg)
	}
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.stopStream()
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.jobs)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if len(m.jobs) == 0 {
			return m, nil
		}
		job := m.jobs[m.cursor]
		return m.openDetail(job)
	case "esc":
		return m.closeDetail(), nil
	case "n":
		m.mode = modeForm
		m.form = nil
		m.statusMessage = ""
		return m, loadGenresCmd(m.client)
	case "c":
		if len(m.jobs) == 0 {
			return m, nil
		}
		job := m.jobs[m.cursor]
		if !job.Status.IsActive() {
			m.statusMessage = "job is already finished"
			return m, nil
		}
		m.mode = modeConfirmCancel
		m.confirmJobID = job.ID
		return m, nil
	case "R":
		if len(m.jobs) == 0 {
			return m, nil
		}
		job := m.jobs[m.cursor]
		if job.Status != api.StatusFailed {
			m.statusMessage = "only failed jobs can be retried"
			return m, nil
		}
		return m, retryJobCmd(m.client, job.ID)
	case "r":
		return m, loadJobsCmd(m.client)
	case "s":
		m.store.ToggleSidebar()
		return m, nil
	case "x":
		m.store.ClearNotifications()
		return m, nil
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		// Genres still loading.
		if msg.String() == "esc" || msg.String() == "ctrl+c" {
			m.mode = modeBrowse
		}
		return m, nil
	}
	if m.form.Saving {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		m.mode = modeBrowse
		m.form = nil
		m.statusMessage = "wizard cancelled"
		return m, nil
	case "up", "shift+tab":
		m.form.commitInput()
		if m.form.Index > 0 {
			m.form.Index--
		}
		m.form.loadFieldIntoInput()
		return m, nil
	case "down", "tab":
		m.form.commitInput()
		if m.form.Index < len(m.form.Fields)-1 {
			m.form.Index++
		}
		m.form.loadFieldIntoInput()
		return m, nil
	case "left":
		switch m.form.currentField().Kind {
		case fieldSelect:
			m.form.cycleSelect(-1)
			return m, nil
		case fieldBool:
			m.form.toggleBool()
			return m, nil
		}
	case "right", " ":
		switch m.form.currentField().Kind {
		case fieldSelect:
			m.form.cycleSelect(1)
			return m, nil
		case fieldBool:
			m.form.toggleBool()
			return m, nil
		}
	case "enter", "ctrl+s":
		m.form.commitInput()
		if m.form.Index < len(m.form.Fields)-1 && msg.String() != "ctrl+s" {
			m.form.Index++
			m.form.loadFieldIntoInput()
			return m, nil
		}
		if !m.form.Valid() {
			return m, nil
		}
		m.form.Saving = true
		return m, saveIdeaCmd(m.client, m.form.toRequest())
	}

	kind := m.form.currentField().Kind
	if kind == fieldBool || kind == fieldSelect {
		return m, nil
	}
	var cmd tea.Cmd
	m.form.Input, cmd = m.form.Input.Update(msg)
	m.form.Fields[m.form.Index].Value = m.form.Input.Value()
	m.form.revalidate()
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "n":
		m.mode = modeBrowse
		m.confirmJobID = ""
		m.statusMessage = "cancel aborted"
		return m, nil
	case "y", "enter":
		id := m.confirmJobID
		m.mode = modeBrowse
		m.confirmJobID = ""
		if id == "" {
			return m, nil
		}
		return m, cancelJobCmd(m.client, id)
	}
	return m, nil
}

// openDetail shows the slide panel for a job and, when the job is still
// active, follows its progress stream.
func (m Model) openDetail(job api.VideoJob) (tea.Model, tea.Cmd) {
	m.stopStream()
	m.detail.Open(job.ID)
	m.jobDetail = nil
	m.lastEvent = nil

	cmds := []tea.Cmd{loadDetailCmd(m.client, job.ID)}
	if job.Status.IsActive() {
		ch := make(chan tea.Msg, 16)
		quit := make(chan struct{})
		jobID := job.ID
		m.streamCh = ch
		m.streamQuit = quit
		m.streamJobID = jobID
		m.sub = progress.New(m.client, jobID, progress.Options{
			OnEvent: func(e api.ProgressEvent) {
				select {
				case ch <- streamEventMsg{jobID: jobID, event: e}:
				default:
				}
			},
			OnComplete: func(status api.JobStatus) {
				// The completion event must not be dropped, but the send
				// may never block teardown: quit is closed before Stop
				// waits for this callback to return.
				select {
				case ch <- streamDoneMsg{jobID: jobID, status: status}:
				case <-quit:
				}
			},
			OnConnectionChange: func(connected bool) {
				select {
				case ch <- streamConnMsg{jobID: jobID, connected: connected}:
				default:
				}
			},
		})
		if err := m.sub.Start(context.Background()); err == nil {
			m.streaming = true
			cmds = append(cmds, waitStreamCmd(ch))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) closeDetail() Model {
	m.stopStream()
	m.detail.Close()
	return m
}

// stopStream tears the active subscription down in an order that can never
// deadlock or leak: closing quit first unblocks a callback stuck sending the
// completion message, Stop then waits out the subscription goroutine, and
// closing streamCh afterwards (safe, no callbacks fire past Stop) lets any
// still-armed channel reader drain and exit.
func (m *Model) stopStream() {
	if m.streamQuit != nil {
		close(m.streamQuit)
		m.streamQuit = nil
	}
	if m.sub != nil {
		m.sub.Stop()
		m.sub = nil
	}
	if m.streamCh != nil {
		close(m.streamCh)
		m.streamCh = nil
	}
	m.streamJobID = ""
	m.streaming = false
}

func (m Model) View() string {
	if m.width <= 0 {
		m.width = 100
	}
	if m.height <= 0 {
		m.height = 30
	}

	switch m.mode {
	case modeForm:
		return m.viewForm()
	case modeConfirmCancel:
		return m.viewConfirm()
	default:
		return m.viewBrowse()
	}
}

func (m Model) viewBrowse() string {
	header := titleStyle.Render("studioctl dashboard") + "\n" +
		mutedStyle.Render("up/down: move | enter: detail | esc: close | n: new idea | c: cancel | R: retry | r: refresh | s: sidebar | q: quit")

	showPanel := m.detail.IsOpen() || m.detail.SelectedID() != ""
	var body string
	if showPanel && m.width >= 90 {
		leftW := clampInt(m.width/2, 40, 64)
		rightW := m.width - leftW - 1
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderJobsPanel(leftW),
			m.renderDetailPanel(rightW),
		)
	} else if showPanel {
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.renderJobsPanel(m.width),
			m.renderDetailPanel(m.width),
		)
	} else {
		body = m.renderJobsPanel(m.width)
	}

	sections := []string{header, body}
	if toasts := m.renderToasts(); toasts != "" {
		sections = append(sections, toasts)
	}
	sections = append(sections, m.renderStatusLine())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderJobsPanel(width int) string {
	if len(m.jobs) == 0 {
		content := mutedStyle.Render("No video jobs yet.\nPress 'n' to draft a new idea.")
		return panelStyle.Width(width).Render(content)
	}

	maxRows := clampInt(m.height-12, 4, 20)
	start, end := listWindow(len(m.jobs), m.cursor, maxRows)

	lines := make([]string, 0, maxRows+2)
	if start > 0 {
		lines = append(lines, mutedStyle.Render("..."))
	}
	for i := start; i < end; i++ {
		job := m.jobs[i]
		name := m.channelNames[job.ChannelID]
		if name == "" {
			name = shortID(job.ChannelID)
		}
		line := fmt.Sprintf("%-10s %s  %s",
			statusStyle(string(job.Status)).Render(string(job.Status)),
			truncateRunes(job.NicheLabel, maxInt(width/3, 12)),
			mutedStyle.Render(name),
		)
		if i == m.cursor {
			line = selectedStyle.Width(maxInt(width-4, 6)).Render(
				truncateRunes(fmt.Sprintf("%-10s %s  %s", job.Status, job.NicheLabel, name), maxInt(width-6, 10)))
		}
		lines = append(lines, line)
	}
	if end < len(m.jobs) {
		lines = append(lines, mutedStyle.Render("..."))
	}
	return panelStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderDetailPanel(width int) string {
	id := m.detail.SelectedID()
	if id == "" {
		return ""
	}

	lines := []string{titleStyle.Render("Job " + shortID(id))}
	status := api.StatusPlanned
	var percent *float64
	if m.jobDetail != nil {
		status = m.jobDetail.Status
		lines = append(lines,
			kv("niche", m.jobDetail.NicheLabel),
			kv("mood", m.jobDetail.MoodKeywords),
			kv("duration", fmt.Sprintf("%d min", m.jobDetail.TargetDurationMinutes)),
			kv("tracks", fmt.Sprintf("%d", len(m.jobDetail.AudioTracks))),
			kv("images", fmt.Sprintf("%d", len(m.jobDetail.Images))),
		)
		if m.jobDetail.ErrorMessage != "" {
			lines = append(lines, errorStyle.Render(m.jobDetail.ErrorMessage))
		}
	} else {
		lines = append(lines, mutedStyle.Render("loading..."))
	}
	if m.lastEvent != nil {
		status = m.lastEvent.Status
		percent = m.lastEvent.Progress
		if m.lastEvent.Message != "" {
			lines = append(lines, mutedStyle.Render(m.lastEvent.Message))
		}
	}

	lines = append(lines, "", renderTracker(status, percent, m.bar, width))
	if !m.detail.IsOpen() {
		lines = append(lines, "", mutedStyle.Render("closing..."))
	}
	return panelStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) viewForm() string {
	header := titleStyle.Render("New video idea") + "\n" +
		mutedStyle.Render("tab/enter: next | shift+tab: back | left/right: cycle | ctrl+s: submit | esc: cancel")

	if m.form == nil {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			panelStyle.Width(m.width).Render(mutedStyle.Render("loading genres...")))
	}

	lines := make([]string, 0, len(m.form.Fields)*2+4)
	for i, field := range m.form.Fields {
		value := field.Value
		if i == m.form.Index && field.Kind != fieldBool && field.Kind != fieldSelect {
			value = m.form.Input.View()
		}
		label := fmt.Sprintf("%-18s", field.Label)
		if i == m.form.Index {
			label = selectedStyle.Render(label)
		}
		lines = append(lines, label+" "+value)
		if reason, ok := m.form.Errors[field.Key]; ok && (field.Value != "" || i != m.form.Index) {
			lines = append(lines, "                   "+errorStyle.Render(reason))
		} else if i == m.form.Index && field.Help != "" {
			lines = append(lines, "                   "+mutedStyle.Render(field.Help))
		}
	}

	lines = append(lines, "")
	if reason, ok := m.form.Errors["form"]; ok {
		lines = append(lines, errorStyle.Render(reason))
	}
	if m.form.Saving {
		lines = append(lines, warnStyle.Render("saving..."))
	} else if m.form.Valid() {
		lines = append(lines, okStyle.Render("ctrl+s to submit"))
	} else {
		lines = append(lines, mutedStyle.Render("submit disabled until all fields are valid"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header,
		panelStyle.Width(clampInt(m.width, 40, 100)).Render(strings.Join(lines, "\n")))
}

func (m Model) viewConfirm() string {
	body := fmt.Sprintf("Cancel job %s?\n\n%s",
		shortID(m.confirmJobID),
		mutedStyle.Render("y: confirm | n/esc: keep running"))
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Confirm cancellation"),
		panelStyle.Render(body))
}

func (m Model) renderToasts() string {
	if !m.store.SidebarOpen() {
		return ""
	}
	notifications := m.store.Notifications()
	if len(notifications) == 0 {
		return ""
	}
	lines := make([]string, 0, len(notifications))
	for _, n := range notifications {
		var style lipgloss.Style
		switch n.Kind {
		case uistate.KindError:
			style = toastErrorStyle
		case uistate.KindSuccess:
			style = toastOKStyle
		default:
			style = toastInfoStyle
		}
		text := n.Title
		if n.Message != "" {
			text += ": " + n.Message
		}
		if n.Percent != nil {
			text += fmt.Sprintf(" (%.0f%%)", *n.Percent)
		}
		lines = append(lines, style.Render("• "+text))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatusLine() string {
	if m.statusMessage != "" {
		return mutedStyle.Render(m.statusMessage)
	}
	if m.streaming {
		return mutedStyle.Render("following live progress")
	}
	return mutedStyle.Render(fmt.Sprintf("%d jobs | refresh every %s", len(m.jobs), m.pollInterval))
}

func kv(k, v string) string {
	return fmt.Sprintf("%s: %s", k, v)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
