package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hongminglow/crime-report-hub/internal/client/report"
)

// Run shows the gated starting view and dispatches commands until exit or
// end of input.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to Crime Reporting Hub (type 'help' for commands)")
	if a.Gate(ctx) == ViewHome {
		a.printHome()
	} else {
		fmt.Fprintln(a.out, "Sign in to report a crime, or type 'signup' to create an account.")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := a.prompt.line(fmt.Sprintf("crh (%s)", a.State.View()))
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(a.out)
				return nil
			}
			return err
		}

		cmd := strings.ToLower(strings.TrimSpace(line))
		switch cmd {
		case "":
			continue
		case "help":
			a.printHelp()
		case "signin", "login":
			err = a.signinForm(ctx)
		case "signup", "register":
			err = a.signupForm(ctx)
		case "report":
			err = a.reportForm(ctx)
		case "emergency":
			a.printEmergency()
		case "logout":
			if a.State.View() != ViewHome {
				a.fail(signinRequired)
				continue
			}
			_ = a.Logout(ctx)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return nil
		default:
			fmt.Fprintf(a.out, "Unknown command: %s\n", cmd)
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(a.out)
			return nil
		}
	}
}

func (a *App) signinForm(ctx context.Context) error {
	if a.State.View() == ViewHome {
		a.printHome()
		return nil
	}
	a.State.setView(ViewSignin)
	fmt.Fprintln(a.out, "Welcome back admin")
	email, err := a.prompt.line("Email")
	if err != nil {
		return err
	}
	password, err := a.prompt.secret("Password")
	if err != nil {
		return err
	}
	if a.SubmitSignin(ctx, email, password) == nil {
		a.printHome()
	}
	return nil
}

func (a *App) signupForm(ctx context.Context) error {
	if a.State.View() == ViewHome {
		a.printHome()
		return nil
	}
	a.State.setView(ViewSignup)
	fmt.Fprintln(a.out, "Join us today as admin")
	fullname, err := a.prompt.line("Full Name")
	if err != nil {
		return err
	}
	email, err := a.prompt.line("Email")
	if err != nil {
		return err
	}
	password, err := a.prompt.secret("Password")
	if err != nil {
		return err
	}
	if a.SubmitSignup(ctx, fullname, email, password) == nil {
		a.printHome()
	}
	return nil
}

func (a *App) reportForm(ctx context.Context) error {
	if _, ok := a.State.Session(); !ok {
		a.fail(signinRequired)
		return nil
	}

	fmt.Fprintln(a.out, "Report a Crime")
	var r report.Report
	fields := []struct {
		label string
		dst   *string
	}{
		{"Name", &r.Name},
		{"Email", &r.Email},
		{"Phone", &r.Phone},
		{"Location", &r.Location},
	}
	for _, f := range fields {
		v, err := a.prompt.line(f.label)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	crimeType, err := a.prompt.line(fmt.Sprintf("Crime type (%s)", crimeTypeChoices()))
	if err != nil {
		return err
	}
	if ct, ok := report.ParseCrimeType(crimeType); ok {
		r.CrimeType = ct
	} else {
		r.CrimeType = report.CrimeType(crimeType)
	}

	if r.Date, err = a.prompt.line("Date (YYYY-MM-DD)"); err != nil {
		return err
	}
	if r.Description, err = a.prompt.multiline("Description"); err != nil {
		return err
	}

	_ = a.SubmitReport(ctx, r)
	return nil
}
