package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphedit/pkg/editor"
	apperrors "github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/geom"
	"github.com/matzehuels/graphedit/pkg/graph"
	graphio "github.com/matzehuels/graphedit/pkg/io"
)

// statusLines is the height of the status bar under the drawing area.
const statusLines = 2

var (
	statusBarStyle  = lipgloss.NewStyle().Foreground(colorGray)
	statusDirty     = lipgloss.NewStyle().Foreground(colorYellow).Render("●")
	statusHintStyle = lipgloss.NewStyle().Foreground(colorDim)
	promptStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

const editHelp = "double-click: node · drag center: move · drag rim: edge · l: label · d: delete · s: save · q: quit"

// savedMsg reports the result of an asynchronous save.
type savedMsg struct{ err error }

// editModel is the bubbletea model of the terminal editor. Mouse events
// are forwarded to an [editor.Editor] in pixel coordinates, one pixel per
// cell column and cellHeight pixels per cell row.
type editModel struct {
	ctx context.Context
	doc *document
	ed  *editor.Editor

	cols, rows int

	doubleClick time.Duration
	now         func() time.Time
	lastPress   time.Time
	lastCol     int
	lastRow     int

	dirty     bool
	saving    bool
	labeling  bool
	input     []rune
	status    string
	quitArmed bool
}

func newEditModel(ctx context.Context, doc *document, g *graph.Graph, doubleClick time.Duration, logger *log.Logger) *editModel {
	m := &editModel{
		ctx:         ctx,
		doc:         doc,
		doubleClick: doubleClick,
		now:         time.Now,
		status:      editHelp,
	}
	m.ed = editor.New(g, editor.WithLogger(logger))
	m.ed.AddListener(editor.Funcs{
		OnDirty: func() { m.dirty = true },
		OnSelected: func(e graph.Entity) {
			if !e.IsNone() {
				m.status = "selected " + e.String()
			}
		},
	})
	return m
}

func (m *editModel) Init() tea.Cmd {
	return nil
}

func (m *editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.MouseMsg:
		if !m.labeling {
			m.mouse(msg)
		}

	case tea.KeyMsg:
		if m.labeling {
			m.labelKey(msg)
			return m, nil
		}
		return m, m.key(msg)

	case savedMsg:
		m.saving = false
		if msg.err != nil {
			m.status = "save failed: " + apperrors.UserMessage(msg.err)
			return m, nil
		}
		m.dirty = false
		m.status = "saved " + m.doc.String()
	}
	return m, nil
}

func (m *editModel) resize(width, height int) {
	m.cols = width
	m.rows = max(height-statusLines, 1)
	m.ed.SetBounds(geom.Rect{W: float64(m.cols), H: float64(m.rows * cellHeight)})
}

func (m *editModel) mouse(msg tea.MouseMsg) {
	if msg.Y >= m.rows {
		return
	}
	p := cellCenter(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		now := m.now()
		if msg.X == m.lastCol && msg.Y == m.lastRow && now.Sub(m.lastPress) <= m.doubleClick {
			m.ed.DoubleClick(p)
			m.lastPress = time.Time{}
			return
		}
		m.lastPress, m.lastCol, m.lastRow = now, msg.X, msg.Y
		m.ed.Press(p)
	case tea.MouseActionRelease:
		m.ed.Release(p)
	case tea.MouseActionMotion:
		m.ed.Move(p)
	}
}

func (m *editModel) key(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	if k != "q" {
		m.quitArmed = false
	}

	switch k {
	case "ctrl+c":
		return tea.Quit
	case "q":
		if m.dirty && !m.quitArmed {
			m.quitArmed = true
			m.status = "unsaved changes: q again to discard, s to save"
			return nil
		}
		return tea.Quit
	case "d", "delete", "backspace":
		m.ed.DeleteActive()
	case "esc":
		m.ed.SetActive(graph.NoEntity)
	case "l", "enter":
		if !m.ed.Active().IsNone() {
			m.labeling = true
			m.input = []rune(m.activeLabel())
		}
	case "s":
		return m.save()
	}
	return nil
}

func (m *editModel) labelKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		m.labeling = false
		if err := m.ed.RelabelActive(string(m.input)); err != nil {
			m.status = apperrors.UserMessage(err)
		}
	case tea.KeyEsc:
		m.labeling = false
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
}

// save encodes the graph now and writes it in the background, so the
// graph is never read outside Update.
func (m *editModel) save() tea.Cmd {
	if m.saving {
		return nil
	}
	data, err := graphio.Marshal(m.ed.Graph())
	if err != nil {
		m.status = "save failed: " + err.Error()
		return nil
	}
	m.saving = true
	m.status = "saving..."
	return func() tea.Msg {
		return savedMsg{err: m.doc.write(m.ctx, data)}
	}
}

func (m *editModel) activeLabel() string {
	g, a := m.ed.Graph(), m.ed.Active()
	switch {
	case a.IsNode():
		if n, ok := g.Node(a.Node); ok {
			return n.Label
		}
	case a.IsEdge():
		if e, ok := g.EdgeBetween(a.Edge.From, a.Edge.To); ok {
			return e.Label
		}
	}
	return ""
}

func (m *editModel) View() string {
	if m.cols == 0 {
		return "loading..."
	}

	canvas := newTermCanvas(m.cols, m.rows)
	m.ed.Draw(canvas)

	var b strings.Builder
	b.WriteString(canvas.View())
	b.WriteByte('\n')
	b.WriteString(m.statusLine())
	b.WriteByte('\n')
	if m.labeling {
		b.WriteString(promptStyle.Render("label: ") + string(m.input) + "▏")
	} else {
		b.WriteString(statusHintStyle.Render(truncate(m.status, m.cols)))
	}
	return b.String()
}

func (m *editModel) statusLine() string {
	g := m.ed.Graph()
	parts := []string{
		m.doc.String(),
		plural(g.NodeCount(), "node"),
		plural(g.EdgeCount(), "edge"),
	}
	if a := m.ed.Active(); !a.IsNone() {
		parts = append(parts, "active "+a.String())
	}
	if m.ed.State() != editor.Idle {
		parts = append(parts, m.ed.State().String())
	}

	line := statusBarStyle.Render(truncate(strings.Join(parts, " · "), m.cols-2))
	if m.dirty {
		line = statusDirty + " " + line
	}
	return line
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return fmt.Sprintf("%s…", string(r[:n-1]))
}
