package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"expense_tracker/internal/guard"
	"expense_tracker/internal/models"
	"expense_tracker/internal/services/dto"
	"expense_tracker/internal/store"
)

func newFlagSet(c *cli, name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

func runLogin(ctx context.Context, c *cli, args []string) error {
	var email, password string
	fs := newFlagSet(c, "login")
	fs.StringVar(&email, "email", "", "account email")
	fs.StringVar(&password, "password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if email == "" || password == "" {
		return errors.New("--email and --password are required")
	}
	if err := c.enter(ctx, guard.PathLogin); err != nil {
		return err
	}

	resp, err := c.thunks.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "logged in as %s (%s)\n", resp.User.Username, resp.User.Role)
	return nil
}

func runRegister(ctx context.Context, c *cli, args []string) error {
	var req dto.RegisterRequest
	var role string
	fs := newFlagSet(c, "register")
	fs.StringVar(&req.Email, "email", "", "account email")
	fs.StringVar(&req.Password, "password", "", "password (at least 6 characters)")
	fs.StringVar(&req.Username, "username", "", "display name")
	fs.StringVar(&role, "role", string(models.UserRoleEmployee), "employee or employer")
	if err := fs.Parse(args); err != nil {
		return err
	}
	req.Role = models.UserRole(role)
	if !req.Role.Valid() {
		return fmt.Errorf("invalid role %q", role)
	}
	if err := c.enter(ctx, guard.PathRegister); err != nil {
		return err
	}

	resp, err := c.thunks.Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "registered %s (%s)\n", resp.User.Username, resp.User.Role)
	return nil
}

func runLogout(_ context.Context, c *cli, _ []string) error {
	c.thunks.Logout()
	fmt.Fprintln(c.stdout, "logged out")
	return nil
}

func runWhoami(ctx context.Context, c *cli, _ []string) error {
	if err := c.enter(ctx, guard.PathTickets); err != nil {
		return err
	}
	printUser(c.stdout, c.store.State().Auth.User)
	return nil
}

func runTickets(ctx context.Context, c *cli, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: expensectl tickets <list|show|create|update|approve|deny|delete|events|totals>")
	}
	if err := c.enter(ctx, guard.PathTickets); err != nil {
		return err
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return ticketsList(ctx, c, rest)
	case "show":
		return withID(rest, func(id string) error {
			if _, err := c.thunks.FetchTickets(ctx); err != nil {
				return err
			}
			for _, t := range c.store.State().Tickets.Tickets {
				if t.ID == id {
					printTicket(c.stdout, t)
					return nil
				}
			}
			return fmt.Errorf("ticket %s not found", id)
		})
	case "create":
		return ticketsCreate(ctx, c, rest)
	case "update":
		return ticketsUpdate(ctx, c, rest)
	case "approve":
		return withID(rest, func(id string) error {
			t, err := c.thunks.ApproveTicket(ctx, id)
			if err != nil {
				return err
			}
			printTicket(c.stdout, *t)
			return nil
		})
	case "deny":
		return withID(rest, func(id string) error {
			t, err := c.thunks.DenyTicket(ctx, id)
			if err != nil {
				return err
			}
			printTicket(c.stdout, *t)
			return nil
		})
	case "delete":
		return withID(rest, func(id string) error {
			if err := c.thunks.DeleteTicket(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(c.stdout, "deleted %s\n", id)
			return nil
		})
	case "events":
		return withID(rest, func(id string) error {
			events, err := c.thunks.TicketEvents(ctx, id)
			if err != nil {
				return err
			}
			printEvents(c.stdout, events)
			return nil
		})
	case "totals":
		return ticketsTotals(ctx, c, rest)
	}
	return fmt.Errorf("unknown tickets command %q", sub)
}

func ticketsList(ctx context.Context, c *cli, args []string) error {
	var status, employee string
	fs := newFlagSet(c, "tickets list")
	fs.StringVar(&status, "status", "", "only pending, approved or denied tickets")
	fs.StringVar(&employee, "employee", "", "only tickets of this employee id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if status != "" && !models.TicketStatus(status).Valid() {
		return fmt.Errorf("invalid status %q", status)
	}

	if _, err := c.thunks.FetchTickets(ctx); err != nil {
		return err
	}
	st := c.store.State()
	if status != "" {
		st.Tickets.Tickets = store.TicketsByStatus(st, models.TicketStatus(status))
	}
	if employee != "" {
		st.Tickets.Tickets = store.TicketsByEmployee(st, employee)
	}
	printTickets(c.stdout, st.Tickets.Tickets, store.IsEmployer(st))
	return nil
}

func ticketsTotals(ctx context.Context, c *cli, args []string) error {
	var status string
	fs := newFlagSet(c, "tickets totals")
	fs.StringVar(&status, "status", "", "only pending, approved or denied tickets")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if status != "" && !models.TicketStatus(status).Valid() {
		return fmt.Errorf("invalid status %q", status)
	}

	if _, err := c.thunks.FetchTickets(ctx); err != nil {
		return err
	}
	st := c.store.State()
	printTotals(c.stdout, store.TotalsByCurrency(st, models.TicketStatus(status)), store.PendingCount(st))
	return nil
}

func ticketsCreate(ctx context.Context, c *cli, args []string) error {
	var (
		spentAt     string
		req         dto.CreateTicketRequest
		description string
		link        string
	)
	fs := newFlagSet(c, "tickets create")
	fs.StringVar(&spentAt, "spent-at", "", "date of the expense (YYYY-MM-DD or RFC 3339)")
	fs.Float64Var(&req.Amount, "amount", 0, "amount spent")
	fs.StringVar(&req.Currency, "currency", "", "currency code, e.g. USD")
	fs.StringVar(&description, "description", "", "what the money was spent on")
	fs.StringVar(&link, "link", "", "receipt URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	t, err := parseTime(spentAt)
	if err != nil {
		return err
	}
	req.SpentAt = t
	if fs.Changed("description") {
		req.Description = &description
	}
	if fs.Changed("link") {
		req.Link = &link
	}

	ticket, err := c.thunks.CreateTicket(ctx, req)
	if err != nil {
		return err
	}
	printTicket(c.stdout, *ticket)
	return nil
}

func ticketsUpdate(ctx context.Context, c *cli, args []string) error {
	var (
		spentAt     string
		amount      float64
		currency    string
		description string
		link        string
	)
	fs := newFlagSet(c, "tickets update")
	fs.StringVar(&spentAt, "spent-at", "", "date of the expense")
	fs.Float64Var(&amount, "amount", 0, "amount spent")
	fs.StringVar(&currency, "currency", "", "currency code")
	fs.StringVar(&description, "description", "", "description")
	fs.StringVar(&link, "link", "", "receipt URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: expensectl tickets update ID [flags]")
	}

	var req dto.UpdateTicketRequest
	if fs.Changed("spent-at") {
		t, err := parseTime(spentAt)
		if err != nil {
			return err
		}
		req.SpentAt = &t
	}
	if fs.Changed("amount") {
		req.Amount = &amount
	}
	if fs.Changed("currency") {
		req.Currency = &currency
	}
	if fs.Changed("description") {
		req.Description = &description
	}
	if fs.Changed("link") {
		req.Link = &link
	}
	if req.Empty() {
		return errors.New("nothing to update")
	}

	ticket, err := c.thunks.UpdateTicket(ctx, fs.Arg(0), req)
	if err != nil {
		return err
	}
	printTicket(c.stdout, *ticket)
	return nil
}

func runEmployees(ctx context.Context, c *cli, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: expensectl employees <list|suspend|activate> [ID]")
	}
	if err := c.enter(ctx, guard.PathEmployees); err != nil {
		return err
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		if _, err := c.thunks.FetchEmployees(ctx); err != nil {
			return err
		}
		printUsers(c.stdout, c.store.State().Employees.Employees)
		return nil
	case "suspend":
		return withID(rest, func(id string) error {
			u, err := c.thunks.SuspendEmployee(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.stdout, "suspended %s\n", u.Username)
			return nil
		})
	case "activate":
		return withID(rest, func(id string) error {
			u, err := c.thunks.ActivateEmployee(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.stdout, "activated %s\n", u.Username)
			return nil
		})
	}
	return fmt.Errorf("unknown employees command %q", sub)
}

func withID(args []string, fn func(id string) error) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return errors.New("expected exactly one ID argument")
	}
	return fn(args[0])
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("--spent-at is required")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", value)
}
