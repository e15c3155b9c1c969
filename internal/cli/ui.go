package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ebracha/plank/internal/cli/formatter"
	"github.com/ebracha/plank/internal/domain"
)

func newUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Browse boards interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				return fmt.Errorf("ui needs an interactive terminal")
			}
			model, err := newBrowserModel(app)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
}

type boardItem struct {
	board *domain.Board
}

func (i boardItem) Title() string { return i.board.Name }
func (i boardItem) Description() string {
	if !i.board.IsActive {
		return "inactive"
	}
	if i.board.Description != "" {
		return i.board.Description
	}
	return "active"
}
func (i boardItem) FilterValue() string { return i.board.Name }

// browserModel is a two-screen read-only browser: board picker, then a
// scrollable board snapshot.
type browserModel struct {
	app      *App
	boards   list.Model
	board    viewport.Model
	showing  bool
	selected *domain.Board
	width    int
	height   int
	err      error
}

func newBrowserModel(app *App) (*browserModel, error) {
	boards, err := app.Boards.List(context.Background())
	if err != nil {
		return nil, err
	}
	items := make([]list.Item, 0, len(boards))
	for _, b := range boards {
		items = append(items, boardItem{board: b})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Boards"
	l.SetShowStatusBar(false)

	return &browserModel{app: app, boards: l, board: viewport.New(0, 0)}, nil
}

func (m *browserModel) Init() tea.Cmd {
	return nil
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.boards.SetSize(msg.Width, msg.Height-2)
		m.board.Width = msg.Width
		m.board.Height = msg.Height - 2
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.showing {
				m.showing = false
				return m, nil
			}
			return m, tea.Quit
		case "esc":
			if m.showing {
				m.showing = false
				return m, nil
			}
		case "enter":
			if !m.showing {
				if item, ok := m.boards.SelectedItem().(boardItem); ok {
					m.openBoard(item.board)
				}
				return m, nil
			}
		case "r":
			if m.showing && m.selected != nil {
				m.openBoard(m.selected)
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.showing {
		m.board, cmd = m.board.Update(msg)
	} else {
		m.boards, cmd = m.boards.Update(msg)
	}
	return m, cmd
}

func (m *browserModel) openBoard(b *domain.Board) {
	snap, err := m.app.Boards.Snapshot(context.Background(), b.ID)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.selected = b
	m.board.SetContent(formatter.FormatBoardSnapshot(snap))
	m.board.GotoTop()
	m.showing = true
}

func (m *browserModel) View() string {
	help := formatter.StyleDim.Render("enter open · r refresh · esc back · q quit")
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			formatter.StyleRed.Render("error: "+m.err.Error()) + "\n\n" + help)
	}
	if m.showing {
		return m.board.View() + "\n" + help
	}
	return m.boards.View() + "\n" + help
}
