package tui

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/regform/internal/form"
	"github.com/jask/regform/internal/register"
)

type fakeSubmitter struct {
	mu    sync.Mutex
	calls []form.Record
	alert register.Alert
	err   error
}

func (f *fakeSubmitter) Submit(_ context.Context, rec form.Record) (register.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, rec)
	return f.alert, f.err
}

func (f *fakeSubmitter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func keyMsg(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

var (
	tabKey      = tea.KeyMsg{Type: tea.KeyTab}
	shiftTabKey = tea.KeyMsg{Type: tea.KeyShiftTab}
	enterKey    = tea.KeyMsg{Type: tea.KeyEnter}
	submitKey   = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func send(t *testing.T, a *App, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := a.Update(msg)
	require.Same(t, a, next)
	return cmd
}

func typeText(t *testing.T, a *App, s string) {
	t.Helper()
	for _, r := range s {
		send(t, a, keyMsg(string(r)))
	}
}

func fillValid(t *testing.T, a *App) {
	t.Helper()
	values := []string{"Ada Lovelace", "1234567890", "ada@example.com", "10", "12", "1815", "Abcdefg1", "Abcdefg1"}
	for i, v := range values {
		typeText(t, a, v)
		if i < len(values)-1 {
			send(t, a, tabKey)
		}
	}
}

func newTestApp(sub Submitter) *App {
	return New(context.Background(), sub, Options{AlertDuration: time.Second})
}

func TestBlankSubmitShowsErrorsWithoutRequest(t *testing.T) {
	sub := &fakeSubmitter{}
	a := newTestApp(sub)

	cmd := send(t, a, submitKey)
	require.Nil(t, cmd)
	require.Equal(t, 0, sub.callCount())
	require.ElementsMatch(t, []string{
		form.KeyFullName, form.KeyContactNumber, form.KeyEmail, form.KeyDateOfBirth, form.KeyPassword,
	}, a.Errors().Keys())

	view := a.View()
	require.Contains(t, view, "Full name is required")
	require.Contains(t, view, "Date of birth is required")
	require.Contains(t, view, "Password is required")
}

func TestTypingUpdatesRecord(t *testing.T) {
	a := newTestApp(&fakeSubmitter{})
	fillValid(t, a)

	rec := a.Record()
	require.Equal(t, "Ada Lovelace", rec.FullName)
	require.Equal(t, "1234567890", rec.ContactNumber)
	require.Equal(t, "1815", rec.Year)
	require.Equal(t, "Abcdefg1", rec.ConfirmPassword)
	require.NotContains(t, a.View(), "Abcdefg1")
}

func TestValidSubmitSendsExactlyOneRequest(t *testing.T) {
	sub := &fakeSubmitter{alert: register.Alert{Title: "Welcome", Description: "Account created", Status: 201}}
	a := newTestApp(sub)
	fillValid(t, a)

	send(t, a, tabKey)
	require.True(t, a.onSubmitButton())

	cmd := send(t, a, enterKey)
	require.NotNil(t, cmd)
	require.True(t, a.Errors().Empty())
	require.Equal(t, 1, a.inFlight)
	require.Contains(t, a.View(), "submitting (1)")

	msg := cmd()
	require.Equal(t, 1, sub.callCount())
	require.Equal(t, a.Record(), sub.calls[0])

	res, ok := msg.(submitResultMsg)
	require.True(t, ok, "got %T", msg)
	dismiss := send(t, a, res)
	require.NotNil(t, dismiss)
	require.Equal(t, 0, a.inFlight)
	require.NotNil(t, a.alert)

	view := a.View()
	require.Contains(t, view, "Welcome")
	require.Contains(t, view, "Account created")
}

func TestInvalidThenFixedClearsErrors(t *testing.T) {
	a := newTestApp(&fakeSubmitter{})
	require.Nil(t, send(t, a, submitKey))
	require.False(t, a.Errors().Empty())

	fillValid(t, a)
	require.NotNil(t, send(t, a, submitKey))
	require.True(t, a.Errors().Empty())
	require.NotContains(t, a.View(), "is required")
}

func TestServerErrorStatusUsesSameAlert(t *testing.T) {
	sub := &fakeSubmitter{alert: register.Alert{Title: "Error", Description: "Email already registered", Status: 409}}
	a := newTestApp(sub)
	fillValid(t, a)

	res := send(t, a, submitKey)()
	require.NotNil(t, send(t, a, res))
	require.Contains(t, a.View(), "Email already registered")
}

func TestTransportErrorIsLoggedOnly(t *testing.T) {
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})

	sub := &fakeSubmitter{err: errors.New("dial tcp: connection refused")}
	a := newTestApp(sub)
	fillValid(t, a)
	before := a.View()

	res := send(t, a, submitKey)()
	cmd := send(t, a, res)
	require.Nil(t, cmd)
	require.Nil(t, a.alert)
	require.Equal(t, 0, a.inFlight)
	require.Contains(t, buf.String(), "registration submit failed")
	require.Contains(t, buf.String(), "connection refused")
	require.Equal(t, before, a.View())
}

func TestAlertDismissOnlyClearsItsOwnAlert(t *testing.T) {
	sub := &fakeSubmitter{alert: register.Alert{Title: "First"}}
	a := newTestApp(sub)
	fillValid(t, a)

	first := send(t, a, submitKey)
	second := send(t, a, submitKey)
	require.Equal(t, 2, a.inFlight)

	send(t, a, first())
	firstSeq := a.alertSeq
	sub.alert = register.Alert{Title: "Second"}
	send(t, a, second())
	require.Equal(t, 2, sub.callCount())
	require.Equal(t, "Second", a.alert.Title)

	send(t, a, dismissAlertMsg{seq: firstSeq})
	require.NotNil(t, a.alert, "stale timer must not clear a newer alert")

	send(t, a, dismissAlertMsg{seq: a.alertSeq})
	require.Nil(t, a.alert)
}

func TestAlertAutoDismisses(t *testing.T) {
	sub := &fakeSubmitter{alert: register.Alert{Title: "Welcome", Description: "Account created"}}
	a := New(context.Background(), sub, Options{AlertDuration: time.Millisecond})
	fillValid(t, a)

	dismiss := send(t, a, send(t, a, submitKey)())
	require.NotNil(t, dismiss)
	require.NotNil(t, a.alert)

	msg := dismiss()
	require.Equal(t, dismissAlertMsg{seq: a.alertSeq}, msg)

	send(t, a, msg)
	require.Nil(t, a.alert)
	require.NotContains(t, a.View(), "Account created")
}

func TestFocusWrapsThroughSubmitButton(t *testing.T) {
	a := newTestApp(&fakeSubmitter{})
	require.Equal(t, 0, a.focus)

	send(t, a, shiftTabKey)
	require.True(t, a.onSubmitButton())

	send(t, a, tabKey)
	require.Equal(t, 0, a.focus)

	send(t, a, enterKey)
	require.Equal(t, 1, a.focus)
	typeText(t, a, "12345")
	require.Equal(t, "12345", a.Record().ContactNumber)
	require.Equal(t, "", a.Record().FullName)
}

func TestQuitKeys(t *testing.T) {
	a := newTestApp(&fakeSubmitter{})
	cmd := send(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
}

func TestEmailHintRendered(t *testing.T) {
	a := newTestApp(&fakeSubmitter{})
	send(t, a, tabKey)
	send(t, a, tabKey)
	typeText(t, a, "ada@gmial.com")

	require.Contains(t, a.View(), "Did you mean ada@gmail.com?")

	// a validation error replaces the hint
	a.errors = form.Errors{form.KeyEmail: "Invalid email format"}
	view := a.View()
	require.Contains(t, view, "Invalid email format")
	require.False(t, strings.Contains(view, "Did you mean"))
}

func TestWindowResize(t *testing.T) {
	a := newTestApp(&fakeSubmitter{})
	send(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	require.Equal(t, defaultFormWidth, a.formWidth())

	send(t, a, tea.WindowSizeMsg{Width: 20, Height: 40})
	require.Equal(t, minFormWidth, a.formWidth())
	require.NotEmpty(t, a.View())
}
