// Package cli is the interactive terminal client: it gates on the stored
// session, runs the sign-in and sign-up forms and submits crime reports.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hongminglow/crime-report-hub/internal/apperr"
	"github.com/hongminglow/crime-report-hub/internal/client/api"
	"github.com/hongminglow/crime-report-hub/internal/client/report"
	"github.com/hongminglow/crime-report-hub/internal/client/session"
	"github.com/hongminglow/crime-report-hub/internal/logging"
	"github.com/hongminglow/crime-report-hub/internal/models/dto"
	"github.com/hongminglow/crime-report-hub/internal/validation"
)

const (
	welcomeBack    = "Welcome back!"
	accountCreated = "Account created successfully!"
	busyMessage    = "Please wait, a request is already in progress."
	signinRequired = "Please sign in first."
)

// ErrBusy is returned when a submission is attempted while another runs.
var ErrBusy = errors.New("submission already in progress")

// AuthAPI is the server surface the forms talk to.
type AuthAPI interface {
	Signup(ctx context.Context, req dto.SignupRequest) (dto.Session, error)
	Signin(ctx context.Context, req dto.SigninRequest) (dto.Session, error)
}

// EmergencyNumber is one entry of the emergency contacts list.
type EmergencyNumber struct {
	Service string
	Number  string
}

// EmergencyNumbers are shown on the home view.
var EmergencyNumbers = []EmergencyNumber{
	{Service: "Police", Number: "100"},
	{Service: "Fire Engine", Number: "101"},
	{Service: "Ambulance", Number: "108"},
}

// App wires the state container to its collaborators.
type App struct {
	State    *State
	api      AuthAPI
	sender   report.Sender
	sessions *session.Store
	logger   logging.Logger
	prompt   *prompter
	out      io.Writer
}

// NewApp builds an App reading from in and writing to out.
func NewApp(apiClient AuthAPI, sender report.Sender, sessions *session.Store, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		State:    &State{view: ViewSignin},
		api:      apiClient,
		sender:   sender,
		sessions: sessions,
		logger:   logger,
		prompt:   newPrompter(in, out),
		out:      out,
	}
}

// Gate reads the stored session once and picks the starting view. A present
// session is trusted as is; nothing is verified with the server.
func (a *App) Gate(ctx context.Context) View {
	sess, ok, err := session.LoadUser(a.sessions)
	if err != nil {
		a.logger.Warn(ctx, "stored session unreadable", "error", err)
	}
	if !ok {
		a.State.signOut()
		return ViewSignin
	}
	a.State.signIn(sess)
	return ViewHome
}

// SubmitSignin validates the form and signs in.
func (a *App) SubmitSignin(ctx context.Context, email, password string) error {
	if err := validation.SigninForm(email, password); err != nil {
		a.fail(formMessage(err))
		return err
	}
	return a.authenticate(ctx, welcomeBack, func() (dto.Session, error) {
		return a.api.Signin(ctx, dto.SigninRequest{Email: validation.NormalizeEmail(email), Password: password})
	})
}

// SubmitSignup validates the form and creates an account.
func (a *App) SubmitSignup(ctx context.Context, fullname, email, password string) error {
	if err := validation.Signup(fullname, email, password); err != nil {
		a.fail(formMessage(err))
		return err
	}
	return a.authenticate(ctx, accountCreated, func() (dto.Session, error) {
		return a.api.Signup(ctx, dto.SignupRequest{
			Fullname: fullname,
			Email:    validation.NormalizeEmail(email),
			Password: password,
		})
	})
}

func (a *App) authenticate(ctx context.Context, success string, call func() (dto.Session, error)) error {
	if !a.State.begin() {
		a.fail(busyMessage)
		return ErrBusy
	}
	defer a.State.end()

	sess, err := call()
	if err != nil {
		a.logger.Debug(ctx, "auth request failed", "error", err)
		a.fail(api.Message(err))
		return err
	}
	if err := session.SaveUser(a.sessions, sess); err != nil {
		a.logger.Error(ctx, "persist session", "error", err)
		a.fail("Signed in, but the session could not be saved.")
	}
	a.State.signIn(sess)
	a.notify(success)
	return nil
}

// SubmitReport relays r once. The form is not kept after the attempt.
func (a *App) SubmitReport(ctx context.Context, r report.Report) error {
	if _, ok := a.State.Session(); !ok {
		a.fail(signinRequired)
		return errors.New("not signed in")
	}
	if !a.State.begin() {
		a.fail(busyMessage)
		return ErrBusy
	}
	defer a.State.end()

	if err := a.sender.Send(ctx, r); err != nil {
		a.logger.Debug(ctx, "report failed", "error", err)
		a.fail(reportMessage(err))
		return err
	}
	a.notify(report.SuccessMessage)
	return nil
}

// Logout forgets the stored session and returns to the sign-in view.
func (a *App) Logout(ctx context.Context) error {
	if err := session.ClearUser(a.sessions); err != nil {
		a.logger.Error(ctx, "clear session", "error", err)
		a.fail("Could not clear the stored session.")
		return err
	}
	a.State.signOut()
	a.notify("Signed out.")
	return nil
}

func (a *App) notify(msg string) {
	fmt.Fprintf(a.out, "[ok] %s\n", msg)
}

func (a *App) fail(msg string) {
	fmt.Fprintf(a.out, "[error] %s\n", msg)
}

func formMessage(err error) string {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func reportMessage(err error) string {
	var (
		appErr  *apperr.Error
		sendErr *report.SendError
	)
	switch {
	case errors.As(err, &appErr):
		return appErr.Message
	case errors.As(err, &sendErr):
		return sendErr.Error()
	case errors.Is(err, report.ErrNotConfigured):
		return "Crime reporting is not configured on this client."
	default:
		return report.FailureMessage
	}
}

func (a *App) printHome() {
	sess, ok := a.State.Session()
	if !ok {
		return
	}
	name := sess.Fullname
	if name == "" {
		name = sess.Username
	}
	fmt.Fprintf(a.out, "\nCrime Reporting Hub\nSigned in as %s (@%s)\n", name, sess.Username)
	a.printEmergency()
}

func (a *App) printEmergency() {
	fmt.Fprintln(a.out, "Emergency numbers:")
	for _, n := range EmergencyNumbers {
		fmt.Fprintf(a.out, "  %-12s %s\n", n.Service, n.Number)
	}
}

func (a *App) printHelp() {
	if a.State.View() == ViewHome {
		fmt.Fprintln(a.out, "Available commands: report, emergency, logout, help, exit")
		return
	}
	fmt.Fprintln(a.out, "Available commands: signin, signup, help, exit")
}

func crimeTypeChoices() string {
	names := make([]string, 0, len(report.CrimeTypes()))
	for _, ct := range report.CrimeTypes() {
		names = append(names, string(ct))
	}
	return strings.Join(names, ", ")
}
