// ABOUTME: Interactive TUI wizard for editing the local profile.
// ABOUTME: 4-step bubbletea model collecting name, bio, avatar URL, and author filter.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/minigram/internal/models"
)

const (
	profileName = iota
	profileBio
	profileAvatar
	profileFilter
	profileFieldCount
)

var profileLabels = [profileFieldCount]string{"Name", "Bio", "Avatar URL", "Show posts by author"}

// ProfileModel is the bubbletea model for the profile editor.
type ProfileModel struct {
	step     int
	inputs   [profileFieldCount]textinput.Model
	done     bool
	quitting bool
}

// NewProfileModel creates the editor pre-filled with the saved profile.
func NewProfileModel(p models.Profile) ProfileModel {
	defaults := models.DefaultProfile()
	values := [profileFieldCount]string{p.Name, p.Bio, p.AvatarURL, p.FilterAuthor}
	placeholders := [profileFieldCount]string{defaults.Name, defaults.Bio, defaults.AvatarURL, "(everyone)"}

	var inputs [profileFieldCount]textinput.Model
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.Width = 50
		in.SetValue(values[i])
		inputs[i] = in
	}
	inputs[profileName].Focus()

	return ProfileModel{inputs: inputs}
}

// Init implements tea.Model.
func (m ProfileModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.done {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEscape:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.inputs[m.step].Blur()
		if m.step == profileFieldCount-1 {
			m.done = true
			return m, tea.Quit
		}
		m.step++
		return m, m.inputs[m.step].Focus()
	}

	var cmd tea.Cmd
	m.inputs[m.step], cmd = m.inputs[m.step].Update(key)
	return m, cmd
}

// View implements tea.Model.
func (m ProfileModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   MINIGRAM"))
	b.WriteString(titleStyle.Render(" - Profile"))
	b.WriteString("\n\n")

	if m.done {
		b.WriteString(successStyle.Render("✓ Profile saved"))
		b.WriteString("\n")
		return b.String()
	}

	for i := 0; i < m.step; i++ {
		val := m.inputs[i].Value()
		if val == "" {
			val = dimStyle.Render("(default)")
		}
		b.WriteString(fmt.Sprintf("  %s: %s\n", profileLabels[i], val))
	}
	if m.step > 0 {
		b.WriteString("\n")
	}

	b.WriteString(stepStyle.Render(fmt.Sprintf("Step %d of %d: %s", m.step+1, profileFieldCount, profileLabels[m.step])))
	b.WriteString("\n")
	b.WriteString(promptStyle.Render("(leave blank for default)"))
	b.WriteString("\n")
	b.WriteString(m.inputs[m.step].View())
	b.WriteString("\n")
	return b.String()
}

// Result returns the edited profile with blank fields defaulted.
func (m ProfileModel) Result() models.Profile {
	return models.Profile{
		Name:         m.inputs[profileName].Value(),
		Bio:          m.inputs[profileBio].Value(),
		AvatarURL:    m.inputs[profileAvatar].Value(),
		FilterAuthor: m.inputs[profileFilter].Value(),
	}.WithDefaults()
}

// ShouldSave reports whether the user finished every step without cancelling.
func (m ProfileModel) ShouldSave() bool {
	return m.done && !m.quitting
}
