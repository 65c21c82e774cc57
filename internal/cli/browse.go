package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/stratumcfg/stratum"
	"github.com/stratumcfg/stratum/source"
)

func newBrowseCommand(flags *stackFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [path]",
		Short: "Interactively navigate the merged configuration tree",
		Long: `Open a terminal browser over the merged view of all layers. Sections can
be entered and left with the arrow keys; each key shows its effective value
and the layer that owns it.

Controls: up/down or j/k move, enter/right descends, backspace/left goes up,
r reloads file layers, q quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildStack(flags)
			if err != nil {
				return err
			}
			start := ""
			if len(args) > 0 {
				start = args[0]
			}
			model := newBrowseModel(cfg, source.ParsePath(start))
			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("browser failed: %w", err)
			}
			return nil
		},
	}
}

// browseRow is one visible entry: a child section or a key with its resolved
// value and owning layer.
type browseRow struct {
	Name    string
	Section bool
	Value   string
	Layer   string
}

type browseModel struct {
	cfg    *stratum.Config
	path   source.Path
	rows   []browseRow
	cursor int
	width  int
	height int
	err    error
}

type rowsLoadedMsg struct {
	rows []browseRow
}

type browseErrMsg struct {
	err error
}

func newBrowseModel(cfg *stratum.Config, start source.Path) browseModel {
	return browseModel{cfg: cfg, path: start}
}

func (m browseModel) Init() tea.Cmd {
	return m.loadRowsCmd()
}

// loadRowsCmd resolves the current section's children outside the update
// loop, since layer reads may hit the network.
func (m browseModel) loadRowsCmd() tea.Cmd {
	cfg, path := m.cfg, m.path
	return func() tea.Msg {
		view := cfg.Sub(path.String())
		sections, err := view.Sections("")
		if err != nil {
			return browseErrMsg{err: err}
		}
		keys, err := view.Keys("")
		if err != nil {
			return browseErrMsg{err: err}
		}
		rows := make([]browseRow, 0, len(sections)+len(keys))
		for _, name := range sections {
			rows = append(rows, browseRow{Name: name, Section: true})
		}
		for _, k := range keys {
			value, err := view.Get(k.Name)
			display := ""
			if err != nil {
				display = "<" + err.Error() + ">"
			} else {
				display = formatValue(value)
			}
			rows = append(rows, browseRow{Name: k.Name, Value: display, Layer: k.Layer})
		}
		return rowsLoadedMsg{rows: rows}
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			return m, nil

		case "enter", "right", "l":
			if m.cursor < len(m.rows) && m.rows[m.cursor].Section {
				m.path = m.path.Child(m.rows[m.cursor].Name)
				m.cursor = 0
				return m, m.loadRowsCmd()
			}
			return m, nil

		case "backspace", "left", "h":
			if len(m.path) > 0 {
				m.path = m.path.Parent()
				m.cursor = 0
				return m, m.loadRowsCmd()
			}
			return m, nil

		case "r":
			if err := m.cfg.Reload(); err != nil {
				m.err = err
				return m, nil
			}
			return m, m.loadRowsCmd()
		}

	case rowsLoadedMsg:
		m.rows = msg.rows
		m.err = nil
		if m.cursor >= len(m.rows) {
			m.cursor = 0
		}
		return m, nil

	case browseErrMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

var (
	browseTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	browseCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	browseFooterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m browseModel) View() string {
	title := "(root)"
	if len(m.path) > 0 {
		title = m.path.String()
	}
	header := browseTitleStyle.Render("stratum browse ") + sectionStyle.Render(title)

	if m.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			tombstoneStyle.Render(fmt.Sprintf("error: %v", m.err)),
			browseFooterStyle.Render("backspace go up · r reload · q quit"),
		)
	}

	var body string
	if len(m.rows) == 0 {
		body = layerStyle.Render("  (empty section)")
	}
	for i, row := range m.rows {
		marker := "  "
		if i == m.cursor {
			marker = browseCursorStyle.Render("> ")
		}
		line := marker
		if row.Section {
			line += sectionStyle.Render(row.Name + "/")
		} else {
			line += keyNameStyle.Render(row.Name) +
				valueStyle.Render(" = "+row.Value) +
				layerStyle.Render("  ("+row.Layer+")")
		}
		if body != "" {
			body += "\n"
		}
		body += line
	}

	footer := browseFooterStyle.Render("enter descend · backspace up · r reload · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
