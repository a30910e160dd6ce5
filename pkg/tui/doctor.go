package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jaspreet-dot-casa/install-hooks/pkg/doctor"
)

// Message types for async operations.
type (
	// checksLoadedMsg indicates checks have completed.
	checksLoadedMsg struct {
		groups []doctor.CheckGroup
	}

	// fixResultMsg indicates the result of a fix operation.
	fixResultMsg struct {
		checkID string
		err     error
	}

	// clipboardResultMsg indicates the result of copying to clipboard.
	clipboardResultMsg struct {
		err error
	}
)

// Dialog buttons.
const (
	buttonCancel = iota
	buttonCopy
	buttonRun
)

var dialogButtons = []string{"Cancel", "Copy", "Run"}

// flatItem is either a group header or a check in the navigable list.
type flatItem struct {
	group *doctor.CheckGroup
	check *doctor.Check
}

func (i flatItem) isGroup() bool { return i.check == nil }

// DoctorModel is the interactive dependency check view.
type DoctorModel struct {
	ctx     context.Context
	checker *doctor.Checker
	fixer   *doctor.Fixer
	groups  []doctor.CheckGroup
	items   []flatItem

	spinner spinner.Model
	loading bool
	cursor  int
	message string
	width   int
	height  int

	// Dialog state
	showDialog    bool
	dialogCheckID string
	dialogFix     *doctor.FixCommand
	dialogCursor  int
	dialogRunning bool
	dialogMessage string
}

// NewDoctorModel creates the doctor view.
func NewDoctorModel(ctx context.Context, checker *doctor.Checker, fixer *doctor.Fixer) *DoctorModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return &DoctorModel{
		ctx:     ctx,
		checker: checker,
		fixer:   fixer,
		spinner: s,
		loading: true,
	}
}

// RunDoctor runs the doctor view until the user quits.
func RunDoctor(ctx context.Context, checker *doctor.Checker, fixer *doctor.Fixer) error {
	_, err := tea.NewProgram(NewDoctorModel(ctx, checker, fixer), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// Init starts the spinner and the first round of checks.
func (m *DoctorModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadChecks())
}

// Update handles messages.
func (m *DoctorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showDialog {
			return m.handleDialogKey(msg)
		}
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		if m.loading || m.dialogRunning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case checksLoadedMsg:
		m.loading = false
		m.groups = msg.groups
		m.flattenItems()

	case fixResultMsg:
		m.dialogRunning = false
		if msg.err == nil {
			m.dialogMessage = fmt.Sprintf("Installed %s", msg.checkID)
			m.loading = true
			cmds = append(cmds, m.spinner.Tick, m.loadChecks())
		} else {
			m.dialogMessage = fmt.Sprintf("Fix failed: %v", msg.err)
		}

	case clipboardResultMsg:
		if msg.err == nil {
			m.message = "Command copied to clipboard"
			m.showDialog = false
		} else {
			m.dialogMessage = fmt.Sprintf("Copy failed: %v", msg.err)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleKeyMsg handles keyboard input for the list.
func (m *DoctorModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "enter":
		m.openFixDialog()
	case "r":
		if m.loading {
			return m, nil
		}
		m.loading = true
		m.message = ""
		return m, tea.Batch(m.spinner.Tick, m.loadChecks())
	}
	return m, nil
}

// handleDialogKey handles keyboard input for the fix dialog.
func (m *DoctorModel) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.dialogRunning {
		return m, nil
	}

	switch msg.String() {
	case "left", "h":
		if m.dialogCursor > buttonCancel {
			m.dialogCursor--
		}
	case "right", "l":
		if m.dialogCursor < buttonRun {
			m.dialogCursor++
		}
	case "enter":
		return m.executeDialogAction()
	case "esc", "q":
		m.closeDialog()
	}
	return m, nil
}

// moveCursor moves the selection, skipping group headers.
func (m *DoctorModel) moveCursor(delta int) {
	pos := m.cursor + delta
	for pos >= 0 && pos < len(m.items) && m.items[pos].isGroup() {
		pos += delta
	}
	if pos >= 0 && pos < len(m.items) {
		m.cursor = pos
	}
}

// openFixDialog opens the fix dialog for the selected check.
func (m *DoctorModel) openFixDialog() {
	if m.cursor < 0 || m.cursor >= len(m.items) || m.items[m.cursor].isGroup() {
		return
	}

	check := m.items[m.cursor].check
	switch {
	case check.Status == doctor.StatusOK:
		m.message = "This dependency is already installed"
		return
	case check.FixCommand == nil:
		m.message = "No fix available for this dependency"
		return
	}

	m.showDialog = true
	m.dialogCheckID = check.ID
	m.dialogFix = check.FixCommand
	m.dialogCursor = buttonRun
	m.dialogMessage = ""
	m.message = ""
}

func (m *DoctorModel) closeDialog() {
	m.showDialog = false
	m.dialogMessage = ""
}

// executeDialogAction executes the selected dialog button.
func (m *DoctorModel) executeDialogAction() (tea.Model, tea.Cmd) {
	switch m.dialogCursor {
	case buttonCancel:
		m.closeDialog()
		return m, nil
	case buttonCopy:
		return m, m.copyToClipboard()
	default:
		m.dialogRunning = true
		m.dialogMessage = "Running fix..."
		return m, tea.Batch(m.spinner.Tick, m.runFix())
	}
}

// loadChecks returns a command that runs every check.
func (m *DoctorModel) loadChecks() tea.Cmd {
	return func() tea.Msg {
		return checksLoadedMsg{groups: m.checker.CheckAllAsync(m.ctx)}
	}
}

// runFix returns a command that installs the dialog's package.
func (m *DoctorModel) runFix() tea.Cmd {
	id, fix := m.dialogCheckID, m.dialogFix
	return func() tea.Msg {
		return fixResultMsg{checkID: id, err: m.fixer.RunFix(m.ctx, fix)}
	}
}

// copyToClipboard returns a command that copies the dialog's command.
func (m *DoctorModel) copyToClipboard() tea.Cmd {
	fix := m.dialogFix
	return func() tea.Msg {
		return clipboardResultMsg{err: m.fixer.CopyToClipboard(fix)}
	}
}

// flattenItems flattens groups and checks into one list for navigation.
func (m *DoctorModel) flattenItems() {
	m.items = nil
	for i := range m.groups {
		group := &m.groups[i]
		m.items = append(m.items, flatItem{group: group})
		for j := range group.Checks {
			m.items = append(m.items, flatItem{group: group, check: &group.Checks[j]})
		}
	}

	m.cursor = 0
	for i, item := range m.items {
		if !item.isGroup() {
			m.cursor = i
			break
		}
	}
}

// View renders the doctor view.
func (m *DoctorModel) View() string {
	if m.showDialog {
		dialog := m.renderDialog()
		if m.width == 0 {
			return dialog
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
	}

	var content string
	switch {
	case m.loading && len(m.groups) == 0:
		content = fmt.Sprintf("\n  %s Checking dependencies...\n", m.spinner.View())
	case len(m.groups) == 0:
		content = "\n  No dependency groups found.\n"
	default:
		content = m.renderChecks()
	}

	parts := []string{m.renderHeader(), content}
	if m.message != "" {
		parts = append(parts, DimStyle.Render("\n  "+m.message))
	}
	parts = append(parts, DimStyle.Render("\n  [↑/↓] navigate  [Enter] fix  [r] refresh  [q] quit"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderHeader renders the title and the summary counts.
func (m *DoctorModel) renderHeader() string {
	title := TitleStyle.Render("Installer dependency check")
	if m.loading {
		title += " " + m.spinner.View()
	}
	if len(m.groups) == 0 {
		return title
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", renderSummary(doctor.GetSummary(m.groups)))
}

// renderSummary renders the check summary counts.
func renderSummary(s doctor.Summary) string {
	var parts []string
	if s.OK > 0 {
		parts = append(parts, SuccessStyle.Render(fmt.Sprintf("✓ %d", s.OK)))
	}
	if s.Missing+s.Errors > 0 {
		parts = append(parts, ErrorStyle.Render(fmt.Sprintf("✗ %d", s.Missing+s.Errors)))
	}
	if s.Warnings > 0 {
		parts = append(parts, WarningStyle.Render(fmt.Sprintf("⚠ %d", s.Warnings)))
	}
	if len(parts) == 0 {
		return DimStyle.Render("No checks")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

// renderChecks renders the check list.
func (m *DoctorModel) renderChecks() string {
	var lines []string
	for i, item := range m.items {
		if item.isGroup() {
			lines = append(lines, "\n  "+KeyStyle.Bold(true).Render(item.group.Name))
			continue
		}

		check := item.check
		status := check.Status.String()
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("    %s%s %-26s %s", cursor,
			StatusStyle(status).Render(StatusIcon(status)), check.Name, DimStyle.Render(check.Message))
		if i == m.cursor {
			line = SelectedRowStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderDialog renders the fix dialog.
func (m *DoctorModel) renderDialog() string {
	if m.dialogFix == nil {
		return ""
	}

	content := KeyStyle.Bold(true).Render("Install "+m.dialogFix.Package) +
		"\n\n" + m.dialogFix.Description + "\n\n" +
		CommandStyle.Render(m.dialogFix.Command) + "\n"
	if m.dialogFix.Sudo {
		content += "\n" + WarningStyle.Render("Requires sudo") + "\n"
	}
	if m.dialogMessage != "" {
		msg := m.dialogMessage
		if m.dialogRunning {
			msg = m.spinner.View() + " " + msg
		}
		content += "\n" + DimStyle.Render(msg) + "\n"
	}

	normal := lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	selected := normal.BorderForeground(lipgloss.Color("39")).Bold(true)
	buttons := make([]string, len(dialogButtons))
	for i, label := range dialogButtons {
		if i == m.dialogCursor {
			buttons[i] = selected.Render(label)
		} else {
			buttons[i] = normal.Render(label)
		}
	}

	return BoxStyle.Width(60).Render(content + "\n" + lipgloss.JoinHorizontal(lipgloss.Center, buttons...))
}
