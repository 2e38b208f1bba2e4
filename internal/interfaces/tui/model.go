// Package tui es el formulario de terminal de consumos trimestrales (bubbletea).
// Toda la lógica de estado vive en form.Controller; aquí solo se traduce teclado y render.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecoforecast-api/internal/application/form"
	"github.com/jhoicas/ecoforecast-api/internal/domain/entity"
)

const requestTimeout = 15 * time.Second

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a6e3a1"))
	labelStyle   = lipgloss.NewStyle().Width(24)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	previewStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type slot struct {
	category entity.Category
	field    entity.FieldName
}

// slots orden de los campos en pantalla.
var slots = func() []slot {
	out := make([]slot, 0, len(entity.Categories)*2)
	for _, c := range entity.Categories {
		out = append(out, slot{c, entity.FieldUsage}, slot{c, entity.FieldAmountPaid})
	}
	return out
}()

type loadedMsg struct{ err error }

type savedMsg struct {
	id  string
	err error
}

// Model modelo bubbletea del formulario.
type Model struct {
	ctrl    *form.Controller
	raw     []string
	cursor  int
	editErr string
	saving  bool
	loading bool
	done    bool
}

// New crea el modelo sobre un controlador ya configurado.
func New(ctrl *form.Controller) Model {
	return Model{ctrl: ctrl, raw: make([]string, len(slots)), loading: true}
}

// Init precarga el último documento guardado.
func (m Model) Init() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return loadedMsg{err: ctrl.LoadLatest(ctx)}
	}
}

// Update procesa teclado y resultados asíncronos.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.loading = false
		// sin documento previo o sin conexión: se empieza en blanco
		if msg.err == nil {
			m.syncFromDraft()
		}
		return m, nil

	case savedMsg:
		m.saving = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.done = true
		return m, tea.Quit
	case "up", "shift+tab":
		m.cursor = (m.cursor - 1 + len(slots)) % len(slots)
	case "down", "tab":
		m.cursor = (m.cursor + 1) % len(slots)
	case "enter":
		if m.cursor < len(slots)-1 {
			m.cursor++
			return m, nil
		}
		return m.save()
	case "ctrl+s":
		return m.save()
	case "ctrl+l":
		m.ctrl.Clear()
		m.raw = make([]string, len(slots))
		m.editErr = ""
	case "backspace":
		if s := m.raw[m.cursor]; s != "" {
			_, size := utf8.DecodeLastRuneInString(s)
			m.setRaw(s[:len(s)-size])
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.setRaw(m.raw[m.cursor] + string(msg.Runes))
		}
	}
	return m, nil
}

func (m *Model) setRaw(s string) {
	m.raw[m.cursor] = s
	sl := slots[m.cursor]
	if err := m.ctrl.Edit(sl.category, sl.field, s); err != nil {
		m.editErr = err.Error()
	} else {
		m.editErr = ""
	}
}

func (m Model) save() (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	m.saving = true
	ctrl := m.ctrl
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		id, err := ctrl.Save(ctx)
		return savedMsg{id: id, err: err}
	}
}

func (m *Model) syncFromDraft() {
	d := m.ctrl.Draft()
	for i, sl := range slots {
		m.raw[i] = d.Resource(sl.category).Get(sl.field).String()
	}
}

// View renderiza el formulario, la vista previa y los mensajes.
func (m Model) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("EcoForecast · quarterly inputs %d", m.ctrl.Year())))
	b.WriteString("\n\n")

	for i, sl := range slots {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		label := fmt.Sprintf("%s %s", sl.category.Label(), sl.field.Label())
		b.WriteString(prefix + labelStyle.Render(label) + m.raw[i] + "\n")
	}

	b.WriteString("\n" + previewStyle.Render(m.previewText()) + "\n\n")

	switch {
	case m.loading:
		b.WriteString(mutedStyle.Render("Loading latest inputs...") + "\n")
	case m.saving:
		b.WriteString(mutedStyle.Render("Saving...") + "\n")
	case m.editErr != "":
		b.WriteString(errorStyle.Render(m.editErr) + "\n")
	case m.ctrl.Err() != nil:
		b.WriteString(errorStyle.Render(m.ctrl.Err().Error()) + "\n")
	case m.ctrl.Notice() != "":
		b.WriteString(noticeStyle.Render(m.ctrl.Notice()) + "\n")
	}
	b.WriteString(mutedStyle.Render("tab/↑↓ move · ctrl+s save · ctrl+l clear · esc quit"))
	return b.String()
}

func (m Model) previewText() string {
	s := m.ctrl.Preview()
	lines := make([]string, 0, len(entity.Categories)+1)
	for _, c := range entity.Categories {
		lines = append(lines, fmt.Sprintf("%-18s %s", c.Label()+" spend:", money(s.Get(c))))
	}
	total := s.Total
	lines = append(lines, fmt.Sprintf("%-18s %s", "Total:", money(&total)))
	return strings.Join(lines, "\n")
}

func money(d *decimal.Decimal) string {
	if d == nil {
		return "—"
	}
	return "$" + d.StringFixed(2)
}
