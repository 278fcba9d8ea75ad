package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lumeris/adventure/internal/game"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const sidePanelWidth = 32

var (
	transcriptPanelStyle = lipgloss.NewStyle().
				PaddingTop(1).
				PaddingBottom(1).
				PaddingLeft(2).
				PaddingRight(1)

	sidePanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(1).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	dialogueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	selectedChoiceStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	questStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

var titleCaser = cases.Title(language.English)

// PlayUI is the BubbleTea model that runs the local play loop.
type PlayUI struct {
	ps       *game.PlayState
	packName string

	transcript viewport.Model
	lines      []string
	ready      bool
	width      int
	height     int

	focus         int // highlighted interactable when no dialogue is active
	showQuitModal bool
	statusMsg     string
	err           error
}

func NewPlayUI(ps *game.PlayState, packName string) PlayUI {
	vp := viewport.New(60, 20)
	vp.MouseWheelEnabled = true

	ui := PlayUI{
		ps:         ps,
		packName:   packName,
		transcript: vp,
	}
	ui.appendLine(hintStyle.Render("You arrive at " + prettyName(ps.CurrentMap().ID) + "."))
	return ui
}

func (ui PlayUI) Init() tea.Cmd {
	return nil
}

func (ui PlayUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ui.width = msg.Width
		ui.height = msg.Height
		ui.transcript.Width = ui.transcriptWidth()
		ui.transcript.Height = msg.Height - 4
		ui.ready = true
		ui.refreshTranscript()
		return ui, nil

	case tea.KeyMsg:
		return ui.handleKey(msg)
	}

	var cmd tea.Cmd
	ui.transcript, cmd = ui.transcript.Update(msg)
	return ui, cmd
}

func (ui PlayUI) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return ui, tea.Quit
	}

	if ui.showQuitModal {
		switch msg.String() {
		case "y", "Y", "enter":
			return ui, tea.Quit
		case "n", "N", "esc":
			ui.showQuitModal = false
		}
		return ui, nil
	}

	ui.statusMsg = ""

	if msg.String() == "ctrl+y" {
		if err := clipboard.WriteAll(strings.Join(ui.lines, "\n")); err != nil {
			ui.statusMsg = "Clipboard unavailable"
		} else {
			ui.statusMsg = "Transcript copied"
		}
		return ui, nil
	}

	if ui.ps.Session() != nil {
		return ui.handleDialogueKey(msg)
	}
	return ui.handleWorldKey(msg)
}

func (ui PlayUI) handleDialogueKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "w":
		ui.ps.MoveChoice(-1)
	case "down", "j", "s":
		ui.ps.MoveChoice(1)
	case "enter", " ", "e":
		ui.recordDialogueLine()
		if err := ui.ps.Confirm(); err != nil {
			ui.err = err
			ui.appendLine(errorStyle.Render("Broken content: " + err.Error()))
		}
	case "esc", "q":
		ui.appendLine(hintStyle.Render("You step away from the conversation."))
		if err := ui.ps.CancelDialogue(); err != nil {
			ui.err = err
		}
	}
	return ui, nil
}

func (ui PlayUI) handleWorldKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	interactables := ui.ps.View().Interactables

	switch msg.String() {
	case "up", "k", "w":
		if ui.focus > 0 {
			ui.focus--
		}
	case "down", "j", "s":
		if ui.focus < len(interactables)-1 {
			ui.focus++
		}
	case "enter", "e", " ":
		if ui.focus >= 0 && ui.focus < len(interactables) {
			target := interactables[ui.focus]
			ui.appendLine(hintStyle.Render("* You approach the " + prettyName(target.ID) + "."))
			if err := ui.ps.InteractWith(target.ID); err != nil {
				ui.err = err
				ui.appendLine(errorStyle.Render("Broken content: " + err.Error()))
			}
			ui.focus = 0
		}
	case "esc", "q":
		ui.showQuitModal = true
	}
	return ui, nil
}

// recordDialogueLine copies the line being confirmed into the
// transcript, including the chosen option on branching nodes.
func (ui *PlayUI) recordDialogueLine() {
	v := ui.ps.View()
	if v.Dialogue == nil {
		return
	}
	ui.appendLine(speakerStyle.Render(prettyName(v.Dialogue.DialogueID)+":") + " " +
		dialogueStyle.Render(v.Dialogue.Text))
	if len(v.Dialogue.Choices) > 0 {
		chosen := v.Dialogue.Choices[v.Dialogue.ChoiceIndex]
		ui.appendLine(hintStyle.Render("> " + chosen))
	}
}

func (ui *PlayUI) appendLine(line string) {
	ui.lines = append(ui.lines, line)
	ui.refreshTranscript()
}

func (ui *PlayUI) refreshTranscript() {
	width := ui.transcriptWidth()
	if width <= 0 {
		width = 60
	}
	var content strings.Builder
	for _, line := range ui.lines {
		content.WriteString(wordwrap.String(line, width-4))
		content.WriteString("\n")
	}
	ui.transcript.SetContent(content.String())
	ui.transcript.GotoBottom()
}

func (ui PlayUI) transcriptWidth() int {
	w := ui.width - sidePanelWidth
	if w < 20 {
		w = 20
	}
	return w
}

func (ui PlayUI) View() string {
	if !ui.ready {
		return "Loading..."
	}

	if ui.showQuitModal {
		modal := modalStyle.Render(
			titleStyle.Render("Leave the adventure?") + "\n\n" +
				choiceStyle.Render("y - yes, quit") + "\n" +
				choiceStyle.Render("n - keep playing"))
		return lipgloss.Place(ui.width, ui.height, lipgloss.Center, lipgloss.Center, modal)
	}

	left := transcriptPanelStyle.Render(ui.transcript.View() + "\n" + ui.actionArea())
	right := sidePanelStyle.Render(ui.sidePanel())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// actionArea renders the interactive strip under the transcript: the
// active dialogue line with its choices, or the interactable picker.
func (ui PlayUI) actionArea() string {
	var b strings.Builder
	width := ui.transcriptWidth()
	b.WriteString(separatorStyle.Render(strings.Repeat("─", max(1, width-4))) + "\n")

	v := ui.ps.View()

	if ui.err != nil {
		b.WriteString(errorStyle.Render(ui.err.Error()) + "\n")
	}

	if v.Dialogue != nil {
		b.WriteString(speakerStyle.Render(prettyName(v.Dialogue.DialogueID)) + "\n")
		b.WriteString(dialogueStyle.Render(wordwrap.String(v.Dialogue.Text, width-4)) + "\n")
		for i, choice := range v.Dialogue.Choices {
			if i == v.Dialogue.ChoiceIndex {
				b.WriteString(selectedChoiceStyle.Render("> "+choice) + "\n")
			} else {
				b.WriteString(choiceStyle.Render("  "+choice) + "\n")
			}
		}
		b.WriteString(hintStyle.Render("enter: continue  ↑/↓: choose  esc: back away"))
		return b.String()
	}

	if v.Ended {
		b.WriteString(titleStyle.Render("THE END") + "\n")
		b.WriteString(hintStyle.Render("esc: quit"))
		return b.String()
	}

	if len(v.Interactables) == 0 {
		b.WriteString(hintStyle.Render("Nothing to interact with here."))
		return b.String()
	}

	b.WriteString(promptStyle.Render("Nearby:") + "\n")
	for i, it := range v.Interactables {
		label := prettyName(it.ID)
		if i == ui.focus {
			b.WriteString(selectedChoiceStyle.Render("> "+label) + "\n")
		} else {
			b.WriteString(choiceStyle.Render("  "+label) + "\n")
		}
	}
	b.WriteString(hintStyle.Render("enter: interact  ↑/↓: select  ctrl+y: copy transcript  esc: quit"))
	return b.String()
}

func (ui PlayUI) sidePanel() string {
	v := ui.ps.View()
	var b strings.Builder

	b.WriteString(titleStyle.Render(strings.ToUpper(ui.packName)) + "\n\n")

	b.WriteString("Location:\n")
	b.WriteString(prettyName(v.Map) + "\n\n")

	if len(v.Quests) > 0 {
		b.WriteString("Quests:\n")
		for _, q := range v.Quests {
			status := fmt.Sprintf("(%d/%d)", q.Collected, q.Required)
			if q.Completed {
				status = "(done)"
			}
			b.WriteString(questStyle.Render(wordwrap.String(q.Description+" "+status, sidePanelWidth-4)) + "\n")
		}
		b.WriteString("\n")
	}

	if v.Prompt != "" {
		b.WriteString(promptStyle.Render(wordwrap.String(v.Prompt, sidePanelWidth-4)) + "\n\n")
	}

	if ui.statusMsg != "" {
		b.WriteString(hintStyle.Render(ui.statusMsg) + "\n")
	}

	return b.String()
}

// prettyName turns a content id like "npc_mia" into "Npc Mia" for
// display.
func prettyName(id string) string {
	return titleCaser.String(strings.ReplaceAll(id, "_", " "))
}
