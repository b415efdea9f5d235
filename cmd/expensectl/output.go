package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"expense_tracker/internal/services/dto"
	"expense_tracker/internal/store"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printUser(w io.Writer, u *dto.UserResponse) {
	if u == nil {
		fmt.Fprintln(w, "no user")
		return
	}
	tw := newTable(w)
	fmt.Fprintf(tw, "ID\t%s\n", u.ID)
	fmt.Fprintf(tw, "Username\t%s\n", u.Username)
	fmt.Fprintf(tw, "Email\t%s\n", u.Email)
	fmt.Fprintf(tw, "Role\t%s\n", u.Role)
	fmt.Fprintf(tw, "Suspended\t%t\n", u.IsSuspended)
	tw.Flush()
}

func printUsers(w io.Writer, users []dto.UserResponse) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tSUSPENDED")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", u.ID, u.Username, u.Email, u.IsSuspended)
	}
	tw.Flush()
}

func printTickets(w io.Writer, tickets []dto.TicketResponse, withOwner bool) {
	tw := newTable(w)
	if withOwner {
		fmt.Fprintln(tw, "ID\tSPENT AT\tAMOUNT\tCURRENCY\tSTATUS\tEMPLOYEE\tDESCRIPTION")
	} else {
		fmt.Fprintln(tw, "ID\tSPENT AT\tAMOUNT\tCURRENCY\tSTATUS\tDESCRIPTION")
	}
	for _, t := range tickets {
		if withOwner {
			owner := t.EmployeeID
			if t.Employee != nil {
				owner = t.Employee.Username
			}
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%s\t%s\t%s\n",
				t.ID, t.SpentAt.Format("2006-01-02"), t.Amount, t.Currency, t.Status, owner, deref(t.Description))
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%s\t%s\n",
			t.ID, t.SpentAt.Format("2006-01-02"), t.Amount, t.Currency, t.Status, deref(t.Description))
	}
	tw.Flush()
}

func printTicket(w io.Writer, t dto.TicketResponse) {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID\t%s\n", t.ID)
	fmt.Fprintf(tw, "Status\t%s\n", t.Status)
	fmt.Fprintf(tw, "Spent at\t%s\n", t.SpentAt.Format("2006-01-02"))
	fmt.Fprintf(tw, "Amount\t%.2f %s\n", t.Amount, t.Currency)
	if t.Description != nil {
		fmt.Fprintf(tw, "Description\t%s\n", *t.Description)
	}
	if t.Link != nil {
		fmt.Fprintf(tw, "Link\t%s\n", *t.Link)
	}
	if t.Employee != nil {
		fmt.Fprintf(tw, "Employee\t%s <%s>\n", t.Employee.Username, t.Employee.Email)
	}
	tw.Flush()
}

func printEvents(w io.Writer, events []dto.TicketEventResponse) {
	tw := newTable(w)
	fmt.Fprintln(tw, "AT\tTYPE\tACTOR\tPAYLOAD")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Type, e.ActorID, string(e.Payload))
	}
	tw.Flush()
}

func printTotals(w io.Writer, totals []store.CurrencyTotal, pending int) {
	tw := newTable(w)
	fmt.Fprintln(tw, "CURRENCY\tTICKETS\tTOTAL")
	for _, t := range totals {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\n", t.Currency, t.Count, t.Amount)
	}
	tw.Flush()
	fmt.Fprintf(w, "pending: %d\n", pending)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
