package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"nota/internal/config"
	"nota/internal/projection"
	"nota/internal/reminder"
	"nota/internal/repository"
	"nota/internal/storage"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeFilter
	modeRemind
)

type snapshotMsg []storage.Item

type notificationMsg reminder.Notification

// formState drives the shared entry/edit form, one field at a time. The
// attachment fields append to the draft when the form is saved; blank ones
// are skipped.
type formState struct {
	entry *projection.Entry
	edit  *projection.Edit

	title       string
	description string
	date        string
	task        string
	photo       string
	video       string
	audio       string
	index       int
}

type Model struct {
	repo   repository.ItemsRepository
	sched  *reminder.Scheduler
	cfg    config.Config
	home   *projection.Home
	snaps  <-chan []storage.Item
	notes  <-chan reminder.Notification
	cursor int
	mode   mode
	input  textinput.Model
	status string

	confirmDel bool
	pendingDel *storage.Item
	form       *formState
}

// Run starts the TUI. The notes channel delivers fired reminder
// notifications; pass nil to disable them.
func Run(repo repository.ItemsRepository, sched *reminder.Scheduler, notes <-chan reminder.Notification, cfg config.Config) error {
	items, err := repo.FetchItems(context.Background())
	if err != nil {
		return err
	}

	snaps, cancelSub := repo.Subscribe()
	defer cancelSub()

	home := projection.NewHome(repo)
	home.Apply(items)
	home.SetQuery(cfg.DefaultFilter)

	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		repo:   repo,
		sched:  sched,
		cfg:    cfg,
		home:   home,
		snaps:  snaps,
		notes:  notes,
		cursor: clampCursor(0, len(home.Visible())),
		status: "Press 'a' to add, space to toggle, 'd' to delete, '/' to filter, 'm' to set a reminder.",
		input:  ti,
		mode:   modeList,
	}

	program := tea.NewProgram(m)
	_, err = program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitSnapshot(m.snaps), waitNotification(m.notes))
}

func waitSnapshot(ch <-chan []storage.Item) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		items, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(items)
	}
}

func waitNotification(ch <-chan reminder.Notification) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return notificationMsg(n)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.home.Apply([]storage.Item(msg))
		m.cursor = clampCursor(m.cursor, len(m.home.Visible()))
		return m, waitSnapshot(m.snaps)
	case notificationMsg:
		m.status = fmt.Sprintf("%s: %s", msg.Title, msg.Body)
		return m, waitNotification(m.notes)
	case tea.KeyMsg:
		if m.form != nil {
			return m.updateFormMode(msg.String(), msg)
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.mode {
	case modeFilter:
		return m.updateFilterMode(key, msg)
	case modeRemind:
		return m.updateRemindMode(key, msg)
	}
	return m.updateListMode(key)
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	items := m.home.Visible()
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(items) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(items))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(items))
		}
	case m.cfg.Keys.Add:
		return m.startEntryForm()
	case m.cfg.Keys.Toggle:
		if len(items) == 0 {
			return m, nil
		}
		it := items[m.cursor]
		edit := projection.NewEdit(m.repo, it.ID)
		if err := edit.Load(context.Background()); err != nil {
			m.status = fmt.Sprintf("load failed: %v", err)
			return m, nil
		}
		if err := edit.SetFinished(context.Background(), !it.Finished); err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", err)
			return m, nil
		}
		m.status = "Toggled item"
	case m.cfg.Keys.Delete:
		if len(items) == 0 {
			return m, nil
		}
		it := items[m.cursor]
		m.confirmDel = true
		m.pendingDel = &it
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", it.Title)
	case m.cfg.Keys.Detail:
		if len(items) == 0 {
			m.status = "No items"
			return m, nil
		}
		it := items[m.cursor]
		info := fmt.Sprintf("Item #%d • %s • %s • %s", it.ID, it.Title, humanKind(it.Kind), humanFinished(it.Finished))
		if it.Date != "" {
			info += " • " + it.Date
		}
		if n := len(it.PhotoURIs) + len(it.VideoURIs) + len(it.AudioURIs); n > 0 {
			info += fmt.Sprintf(" • %d attachment(s)", n)
		}
		m.status = info
	case m.cfg.Keys.Edit:
		if len(items) == 0 {
			m.status = "No items to edit"
			return m, nil
		}
		return m.startEditForm(items[m.cursor])
	case m.cfg.Keys.Filter:
		m.mode = modeFilter
		m.input.SetValue(m.home.Query())
		m.input.Placeholder = "filter by title"
		m.input.Focus()
		m.status = "Filter: type a query and press Enter (empty clears)"
	case m.cfg.Keys.Remind:
		if len(items) == 0 {
			m.status = "No items to remind about"
			return m, nil
		}
		m.mode = modeRemind
		m.input.SetValue("")
		m.input.Placeholder = "2006-01-02 15:04"
		m.input.Focus()
		m.status = fmt.Sprintf("Reminder for \"%s\": enter a time, empty cancels an existing one", items[m.cursor].Title)
	}
	return m, nil
}

func (m Model) updateFilterMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.mode = modeList
		m.input.Blur()
		m.status = "Filter unchanged"
		return m, nil
	case m.cfg.Keys.Confirm:
		m.home.SetQuery(strings.TrimSpace(m.input.Value()))
		m.cursor = clampCursor(m.cursor, len(m.home.Visible()))
		m.mode = modeList
		m.input.Blur()
		if q := m.home.Query(); q == "" {
			m.status = "Filter cleared"
		} else {
			m.status = fmt.Sprintf("Filtering by %q", q)
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateRemindMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.mode = modeList
		m.input.Blur()
		m.status = "Reminder unchanged"
		return m, nil
	case m.cfg.Keys.Confirm:
		items := m.home.Visible()
		if len(items) == 0 {
			m.mode = modeList
			m.input.Blur()
			return m, nil
		}
		title := items[m.cursor].Title
		raw := strings.TrimSpace(m.input.Value())
		m.mode = modeList
		m.input.Blur()
		if raw == "" {
			if err := m.sched.Cancel(title); err != nil {
				m.status = fmt.Sprintf("cancel failed: %v", err)
				return m, nil
			}
			m.status = fmt.Sprintf("Reminder for %q cancelled", title)
			return m, nil
		}
		at, err := time.ParseInLocation("2006-01-02 15:04", raw, time.Local)
		if err != nil {
			m.status = fmt.Sprintf("time invalid: %v", err)
			return m, nil
		}
		if err := m.sched.Schedule(title, at.UnixMilli()); err != nil {
			m.status = fmt.Sprintf("schedule failed: %v", err)
			return m, nil
		}
		m.status = fmt.Sprintf("Reminder for %q at %s", title, at.Format("2006-01-02 15:04"))
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N":
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		edit := projection.NewEdit(m.repo, m.pendingDel.ID)
		if err := edit.Delete(context.Background()); err != nil {
			m.status = fmt.Sprintf("delete failed: %v", err)
		} else {
			m.status = "Deleted item"
		}
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) startEntryForm() (tea.Model, tea.Cmd) {
	m.form = &formState{
		entry: projection.NewEntry(m.repo),
		task:  "y",
	}
	m.mode = modeForm
	m.input.SetValue("")
	m.input.Placeholder = m.form.currentLabel()
	m.input.Focus()
	m.status = "New item: tab to move, enter to save/next, esc to cancel"
	return m, nil
}

func (m Model) startEditForm(it storage.Item) (tea.Model, tea.Cmd) {
	edit := projection.NewEdit(m.repo, it.ID)
	if err := edit.Load(context.Background()); err != nil {
		m.status = fmt.Sprintf("load failed: %v", err)
		return m, nil
	}
	d := edit.Details()
	m.form = &formState{
		edit:        edit,
		title:       d.Title,
		description: d.Description,
		date:        d.Date,
		task:        boolToYN(d.Kind),
	}
	m.mode = modeForm
	m.input.SetValue(m.form.currentValue())
	m.input.Placeholder = m.form.currentLabel()
	m.input.Focus()
	m.status = "Edit item: tab to move, enter to save/next, esc to cancel"
	return m, nil
}

func (m Model) updateFormMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.form = nil
		m.mode = modeList
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case "tab", "down":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index+1, len(formFields()))
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		return m, nil
	case "shift+tab", "up":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index-1, len(formFields()))
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.form.setCurrentValue(m.input.Value())
		if m.form.index >= len(formFields())-1 {
			return m.saveForm()
		}
		m.form.index++
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) saveForm() (tea.Model, tea.Cmd) {
	f := m.form
	ctx := context.Background()

	if f.entry != nil {
		f.entry.Update(f.details())
		for _, a := range f.attachments() {
			f.entry.AddURI(a.uri, a.ct)
		}
		if !f.entry.Valid() {
			m.status = "Title and description are required"
			return m, nil
		}
		if _, _, err := f.entry.Save(ctx); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		m.status = "Added item"
	} else {
		d := f.details()
		d.ID = f.edit.Details().ID
		d.Finished = f.edit.Details().Finished
		d.PhotoURIs = f.edit.Details().PhotoURIs
		d.VideoURIs = f.edit.Details().VideoURIs
		d.AudioURIs = f.edit.Details().AudioURIs
		f.edit.Update(d)
		if !f.edit.Valid() {
			m.status = "Title and description are required"
			return m, nil
		}
		if _, err := f.edit.Save(ctx); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		for _, a := range f.attachments() {
			if err := f.edit.AppendAttachment(ctx, a.uri, a.ct); err != nil {
				m.status = fmt.Sprintf("attach failed: %v", err)
				return m, nil
			}
		}
		m.status = "Saved item"
	}

	m.form = nil
	m.mode = modeList
	m.input.Blur()
	return m, nil
}

type attachment struct {
	uri string
	ct  projection.ContentType
}

func (f *formState) details() projection.ItemDetails {
	return projection.ItemDetails{
		Title:       strings.TrimSpace(f.title),
		Description: strings.TrimSpace(f.description),
		Date:        strings.TrimSpace(f.date),
		Kind:        parseYN(f.task),
	}
}

func (f *formState) attachments() []attachment {
	var out []attachment
	if v := strings.TrimSpace(f.photo); v != "" {
		out = append(out, attachment{v, projection.PhotoContent})
	}
	if v := strings.TrimSpace(f.video); v != "" {
		out = append(out, attachment{v, projection.VideoContent})
	}
	if v := strings.TrimSpace(f.audio); v != "" {
		out = append(out, attachment{v, projection.AudioContent})
	}
	return out
}

func formFields() []string {
	return []string{"title", "description", "date (blank = now)", "task (y/n)", "add photo uri", "add video uri", "add audio uri"}
}

func (f *formState) currentLabel() string {
	return formFields()[f.index]
}

func (f *formState) currentValue() string {
	switch f.index {
	case 0:
		return f.title
	case 1:
		return f.description
	case 2:
		return f.date
	case 3:
		return f.task
	case 4:
		return f.photo
	case 5:
		return f.video
	case 6:
		return f.audio
	default:
		return ""
	}
}

func (f *formState) setCurrentValue(v string) {
	switch f.index {
	case 0:
		f.title = v
	case 1:
		f.description = v
	case 2:
		f.date = v
	case 3:
		f.task = v
	case 4:
		f.photo = v
	case 5:
		f.video = v
	case 6:
		f.audio = v
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString("Nota")
	if q := m.home.Query(); q != "" {
		b.WriteString(fmt.Sprintf(" (filter: %q)", q))
	}
	b.WriteString("\n\n")

	items := m.home.Visible()
	if len(items) == 0 {
		b.WriteString("No items. Press 'a' to add one.")
	} else {
		b.WriteString(m.renderItemList(items))
	}

	b.WriteString("\n---\n")

	if m.form != nil {
		b.WriteString(m.renderFormBox())
		b.WriteString("\n")
		b.WriteString("Field: " + m.form.currentLabel())
		b.WriteString("\n")
		b.WriteString(m.input.View())
	} else if m.mode == modeFilter || m.mode == modeRemind {
		b.WriteString(m.input.View())
	} else {
		b.WriteString(m.renderDetailsPanel(items))
	}

	b.WriteString("\n\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(renderHelp(m.cfg.Keys))

	return b.String()
}

func (m Model) renderItemList(items []storage.Item) string {
	var b strings.Builder
	for i, it := range items {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = ">"
		}

		checkbox := "[ ]"
		if it.Finished {
			checkbox = "[x]"
		}

		b.WriteString(fmt.Sprintf("%s %s %s %s\n", cursor, checkbox, kindTag(it.Kind), it.Title))
	}
	return b.String()
}

func (m Model) renderFormBox() string {
	f := m.form
	fields := formFields()
	values := []string{f.title, f.description, f.date, f.task, f.photo, f.video, f.audio}
	var b strings.Builder
	for i, name := range fields {
		prefix := " "
		if i == f.index {
			prefix = ">"
		}
		val := values[i]
		if strings.TrimSpace(val) == "" {
			val = "(empty)"
		}
		b.WriteString(fmt.Sprintf("%s %-20s : %s\n", prefix, name, val))
	}
	return b.String()
}

func (m Model) renderDetailsPanel(items []storage.Item) string {
	if len(items) == 0 {
		return "No item selected"
	}
	it := items[clampCursor(m.cursor, len(items))]
	var b strings.Builder
	b.WriteString("Details\n")
	b.WriteString(fmt.Sprintf("Title       : %s\n", it.Title))
	b.WriteString(fmt.Sprintf("Description : %s\n", emptyPlaceholder(it.Description)))
	b.WriteString(fmt.Sprintf("Kind        : %s\n", humanKind(it.Kind)))
	b.WriteString(fmt.Sprintf("Status      : %s\n", humanFinished(it.Finished)))
	b.WriteString(fmt.Sprintf("Date        : %s\n", emptyPlaceholder(it.Date)))
	b.WriteString(fmt.Sprintf("Photos      : %s\n", renderURIs(it.PhotoURIs)))
	b.WriteString(fmt.Sprintf("Videos      : %s\n", renderURIs(it.VideoURIs)))
	b.WriteString(fmt.Sprintf("Audio       : %s\n", renderURIs(it.AudioURIs)))
	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s detail • %s toggle • %s delete • %s edit • %s filter • %s remind • %s quit",
		k.Up, k.Down, k.Add, k.Detail, k.Toggle, k.Delete, k.Edit, k.Filter, k.Remind, k.Quit)
}

func renderURIs(uris []string) string {
	if len(uris) == 0 {
		return "(none)"
	}
	return strings.Join(uris, ", ")
}

func emptyPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return "(empty)"
	}
	return v
}

func kindTag(kind bool) string {
	if kind {
		return "[T]"
	}
	return "[N]"
}

func humanKind(kind bool) string {
	if kind {
		return "task"
	}
	return "note"
}

func humanFinished(finished bool) string {
	if finished {
		return "finished"
	}
	return "pending"
}

func parseYN(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "y" || v == "yes" || v == "true" || v == "1"
}

func boolToYN(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
