// Package tui is a terminal host for an editing session. The canvas is drawn
// on a character grid and driven with the mouse; the property form sits
// beside it.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"netcanvas/internal/editor"
	"netcanvas/internal/propedit"
	"netcanvas/internal/render"
	"netcanvas/internal/service"
)

// Terminal cell of the canvas grid's top-left corner: one title line and the
// canvas border come before it
const (
	originCol = 1
	originRow = 2
)

// Model is the bubbletea model of the terminal editor
type Model struct {
	session *service.Session
	input   textinput.Model
	help    help.Model
	keys    keyMap

	target     string
	focus      int
	message    string
	messageErr bool
	width      int
	height     int
}

// New creates a model over session
func New(session *service.Session) Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 24

	m := Model{
		session: session,
		input:   ti,
		help:    help.New(),
		keys:    keys,
	}
	m.sync()
	return m
}

// Run starts the terminal editor and blocks until it exits
func Run(ctx context.Context, session *service.Session) error {
	p := tea.NewProgram(New(session),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.MouseMsg:
		m.pointer(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case key.Matches(msg, m.keys.Esc):
			m.deselect()
		case key.Matches(msg, m.keys.Tab):
			m.cycle(1)
		case key.Matches(msg, m.keys.ShiftTab):
			m.cycle(-1)
		case key.Matches(msg, m.keys.Enter):
			m.submit()
		case m.input.Focused():
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Add):
			d := m.session.AddDevice()
			m.say(fmt.Sprintf("Added %s", d.Name))
		}
	}

	return m, nil
}

// pointer maps a terminal mouse event onto the canvas and feeds the gesture
func (m *Model) pointer(msg tea.MouseMsg) {
	col, row := msg.X-originCol, msg.Y-originRow
	x, y := render.ToCanvas(col, row)

	var kind service.PointerKind
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if !m.onCanvas(col, row) {
			return
		}
		m.commit()
		m.input.Blur()
		kind = service.PointerPress
	case msg.Action == tea.MouseActionMotion:
		kind = service.PointerMove
	case msg.Action == tea.MouseActionRelease:
		kind = service.PointerRelease
	default:
		return
	}

	outcome, err := m.session.Pointer(kind, x, y)
	if err != nil {
		m.fail(err)
		return
	}

	switch outcome {
	case render.OutcomeClick:
		m.say(describe(m.session.Selection()))
	case render.OutcomeDrag:
		m.say("Device moved")
	case render.OutcomeBackground:
		m.say("Selection cleared")
	}
	m.sync()
}

func (m Model) onCanvas(col, row int) bool {
	scene := m.session.Scene()
	g := render.NewGrid(scene)
	return col >= 0 && row >= 0 && col < g.Cols && row < g.Rows
}

// cycle moves form focus. The first tab only focuses the form.
func (m *Model) cycle(delta int) {
	if m.target == "" {
		m.fail(fmt.Errorf("click a device first"))
		return
	}
	if m.input.Focused() {
		if !m.commit() {
			return
		}
		n := len(propedit.Fields)
		m.focus = ((m.focus+delta)%n + n) % n
	}
	m.load(m.session.Form())
	m.input.Focus()
}

// commit writes the input into the draft. It reports false on error.
func (m *Model) commit() bool {
	if !m.input.Focused() || m.target == "" {
		return true
	}
	if _, err := m.session.SetField(string(propedit.Fields[m.focus]), m.input.Value()); err != nil {
		m.fail(err)
		return false
	}
	return true
}

func (m *Model) submit() {
	if !m.commit() {
		return
	}
	view, err := m.session.Submit()
	if err != nil {
		m.fail(err)
		return
	}
	m.load(view)
	m.say("Saved " + view.Title)
}

func (m *Model) deselect() {
	m.input.Blur()
	m.say(describe(m.session.Deselect()))
	m.sync()
}

// sync follows the form's editing target. A new target resets focus to the
// first field.
func (m *Model) sync() {
	view := m.session.Form()
	if view.DeviceID == m.target {
		return
	}
	m.target = view.DeviceID
	m.focus = 0
	if view.Placeholder {
		m.input.Blur()
		m.input.SetValue("")
		return
	}
	m.load(view)
}

func (m *Model) load(view propedit.View) {
	if m.focus >= len(view.Fields) {
		return
	}
	f := view.Fields[m.focus]
	m.input.Prompt = f.Label + ": "
	m.input.SetValue(f.Value)
	m.input.CursorEnd()
}

func (m *Model) say(msg string) {
	m.message = msg
	m.messageErr = false
}

func (m *Model) fail(err error) {
	m.message = err.Error()
	m.messageErr = true
}

func describe(sel editor.SelectionView) string {
	switch sel.State {
	case editor.KindLinkPending:
		return "Click another device to link it to " + sel.LinkSource
	case editor.KindEditingOnly:
		return "Editing " + sel.EditingTarget
	default:
		return "Nothing selected"
	}
}
