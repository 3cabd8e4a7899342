package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/regform/internal/form"
)

const (
	defaultFormWidth = 48
	minFormWidth     = 24
)

func (a *App) View() string {
	width := a.formWidth()

	var sections []string
	if a.alert != nil {
		sections = append(sections, a.renderAlert())
	}
	sections = append(sections, titleStyle.Render("Registration Page"))

	for i := 0; i < len(a.fields); i++ {
		switch a.fields[i].Key {
		case form.KeyDay:
			sections = append(sections, a.renderDateGroup(i, width))
			i += 2
		default:
			sections = append(sections, a.renderField(i, width))
		}
	}
	sections = append(sections, a.renderButton(width), a.renderFooter())

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if a.width == 0 {
		return body
	}
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, body)
}

func (a *App) formWidth() int {
	if a.width == 0 {
		return defaultFormWidth
	}
	w := min(defaultFormWidth, a.width-4)
	if w < minFormWidth {
		w = minFormWidth
	}
	return w
}

// boxStyle picks the input border: red on error, lavender when focused.
func (a *App) boxStyle(idx int, errKey string) lipgloss.Style {
	switch {
	case a.errors.Has(errKey):
		return inputErrStyle
	case idx == a.focus:
		return inputFocusStyle
	default:
		return inputStyle
	}
}

func (a *App) renderInput(idx int, errKey string, width int) string {
	style := a.boxStyle(idx, errKey)
	inp := a.inputs[idx]
	// leave a cell for the cursor
	inp.Width = max(1, width-style.GetHorizontalFrameSize()-1)
	return style.Width(max(1, width-style.GetHorizontalBorderSize())).Render(inp.View())
}

func (a *App) renderField(idx, width int) string {
	f := a.fields[idx]
	lines := []string{
		labelStyle.Render(f.Label),
		a.renderInput(idx, f.Key, width),
	}
	if msg := a.errors.Get(f.Key); msg != "" {
		lines = append(lines, errTextStyle.Render(msg))
	} else if f.Key == form.KeyEmail {
		if s, ok := form.SuggestEmail(a.record.Email); ok {
			lines = append(lines, hintTextStyle.Render(fmt.Sprintf("Did you mean %s?", s)))
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// renderDateGroup draws day, month and year side by side; they share the
// date_of_birth error.
func (a *App) renderDateGroup(start, width int) string {
	const gap = 1
	colWidth := (width - 2*gap) / 3
	cols := make([]string, 0, 3)
	for i := start; i < start+3 && i < len(a.fields); i++ {
		col := lipgloss.JoinVertical(lipgloss.Left,
			mutedStyle.Render(a.fields[i].Label),
			a.renderInput(i, form.KeyDateOfBirth, colWidth),
		)
		if len(cols) > 0 {
			col = lipgloss.NewStyle().MarginLeft(gap).Render(col)
		}
		cols = append(cols, col)
	}
	lines := []string{
		labelStyle.Render("Date of Birth"),
		lipgloss.JoinHorizontal(lipgloss.Top, cols...),
	}
	if msg := a.errors.Get(form.KeyDateOfBirth); msg != "" {
		lines = append(lines, errTextStyle.Render(msg))
	}
	return strings.Join(lines, "\n") + "\n"
}

func (a *App) renderButton(width int) string {
	style := buttonStyle
	if a.onSubmitButton() {
		style = buttonFocusStyle
	}
	btn := style.Render("SUBMIT")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, btn) + "\n"
}

func (a *App) renderAlert() string {
	width := a.width
	if width == 0 {
		width = a.formWidth()
	}
	content := alertTitleStyle.Render(a.alert.Title) + "\n" + a.alert.Description
	return alertStyle.Width(width).Render(content) + "\n"
}

func (a *App) renderFooter() string {
	text := a.help.ShortHelpView(a.keys.ShortHelp())
	if a.inFlight > 0 {
		text = pendingStyle.Render(fmt.Sprintf("submitting (%d)…", a.inFlight)) + "  " + text
	}
	return footerStyle.Render(text)
}
