package tui

import (
	"context"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/regform/internal/form"
	"github.com/jask/regform/internal/register"
)

const defaultAlertDuration = 5 * time.Second

// Submitter sends a validated record and returns the server's alert.
type Submitter interface {
	Submit(ctx context.Context, rec form.Record) (register.Alert, error)
}

// Options tunes the view. Zero values fall back to defaults.
type Options struct {
	AlertDuration time.Duration
}

// App is the registration form view.
type App struct {
	ctx       context.Context
	submitter Submitter
	keys      keyMap
	help      help.Model

	fields []form.Field
	inputs []textinput.Model
	focus  int // len(inputs) is the submit button

	record form.Record
	errors form.Errors

	alert         *register.Alert
	alertSeq      int
	alertDuration time.Duration

	// submissions are not serialised; inFlight only feeds the footer
	inFlight int

	width  int
	height int
}

// New builds the form with the first field focused.
func New(ctx context.Context, submitter Submitter, opts Options) *App {
	if opts.AlertDuration <= 0 {
		opts.AlertDuration = defaultAlertDuration
	}
	fields := form.Fields()
	inputs := make([]textinput.Model, 0, len(fields))
	for i, f := range fields {
		inp := textinput.New()
		inp.Prompt = ""
		inp.Placeholder = f.Placeholder
		if f.Secret {
			inp.EchoMode = textinput.EchoPassword
			inp.EchoCharacter = '•'
		}
		if i == 0 {
			inp.Focus()
		}
		inputs = append(inputs, inp)
	}
	return &App{
		ctx:           ctx,
		submitter:     submitter,
		keys:          newKeyMap(),
		help:          help.New(),
		fields:        fields,
		inputs:        inputs,
		errors:        form.Errors{},
		alertDuration: opts.AlertDuration,
	}
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil
	case submitResultMsg:
		return a, a.handleResult(msg)
	case dismissAlertMsg:
		if a.alert != nil && msg.seq == a.alertSeq {
			a.alert = nil
		}
		return a, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Submit):
			return a, a.submit()
		case key.Matches(msg, a.keys.Next):
			return a, a.moveFocus(1)
		case key.Matches(msg, a.keys.Prev):
			return a, a.moveFocus(-1)
		case key.Matches(msg, a.keys.Enter):
			if a.onSubmitButton() {
				return a, a.submit()
			}
			return a, a.moveFocus(1)
		}
	}
	return a, a.updateFocusedInput(msg)
}

func (a *App) onSubmitButton() bool {
	return a.focus == len(a.inputs)
}

func (a *App) updateFocusedInput(msg tea.Msg) tea.Cmd {
	if a.onSubmitButton() {
		return nil
	}
	var cmd tea.Cmd
	a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
	// keys come from form.Fields, Set cannot fail here
	_ = a.record.Set(a.fields[a.focus].Key, a.inputs[a.focus].Value())
	return cmd
}

func (a *App) moveFocus(dir int) tea.Cmd {
	stops := len(a.inputs) + 1
	if !a.onSubmitButton() {
		a.inputs[a.focus].Blur()
	}
	a.focus = (a.focus + dir + stops) % stops
	if a.onSubmitButton() {
		return nil
	}
	return a.inputs[a.focus].Focus()
}

// submit validates the current record. With errors it only stores them;
// otherwise it clears them and returns the command that performs the request.
func (a *App) submit() tea.Cmd {
	errs := form.Validate(a.record)
	if !errs.Empty() {
		a.errors = errs
		return nil
	}
	a.errors = form.Errors{}
	a.inFlight++

	ctx, submitter, rec := a.ctx, a.submitter, a.record
	return func() tea.Msg {
		alert, err := submitter.Submit(ctx, rec)
		return submitResultMsg{alert: alert, err: err}
	}
}

func (a *App) handleResult(msg submitResultMsg) tea.Cmd {
	if a.inFlight > 0 {
		a.inFlight--
	}
	if msg.err != nil {
		// transport failures are logged only; nothing is shown on screen
		log.Printf("registration submit failed: %v", msg.err)
		return nil
	}
	log.Printf("registration submitted: status=%d request_id=%s", msg.alert.Status, msg.alert.RequestID)
	alert := msg.alert
	a.alert = &alert
	a.alertSeq++
	return dismissAlertCmd(a.alertSeq, a.alertDuration)
}

// Record returns a copy of the current field values.
func (a *App) Record() form.Record { return a.record }

// Errors returns the errors from the last submit attempt.
func (a *App) Errors() form.Errors { return a.errors }
