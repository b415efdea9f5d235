package store

import (
	"sort"

	"expense_tracker/internal/models"
	"expense_tracker/internal/services/dto"
)

func TicketsByStatus(st State, status models.TicketStatus) []dto.TicketResponse {
	return filterTickets(st.Tickets.Tickets, func(t dto.TicketResponse) bool {
		return t.Status == status
	})
}

func TicketsByEmployee(st State, employeeID string) []dto.TicketResponse {
	return filterTickets(st.Tickets.Tickets, func(t dto.TicketResponse) bool {
		return t.EmployeeID == employeeID
	})
}

func PendingCount(st State) int {
	n := 0
	for _, t := range st.Tickets.Tickets {
		if t.Status == models.TicketStatusPending {
			n++
		}
	}
	return n
}

// CurrencyTotal is the sum of ticket amounts in one currency.
type CurrencyTotal struct {
	Currency string
	Amount   float64
	Count    int
}

// TotalsByCurrency sums tickets per currency, optionally restricted to one
// status. Amounts in different currencies are never added together.
func TotalsByCurrency(st State, status models.TicketStatus) []CurrencyTotal {
	byCurrency := make(map[string]*CurrencyTotal)
	for _, t := range st.Tickets.Tickets {
		if status != "" && t.Status != status {
			continue
		}
		total, ok := byCurrency[t.Currency]
		if !ok {
			total = &CurrencyTotal{Currency: t.Currency}
			byCurrency[t.Currency] = total
		}
		total.Amount += t.Amount
		total.Count++
	}

	out := make([]CurrencyTotal, 0, len(byCurrency))
	for _, total := range byCurrency {
		out = append(out, *total)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out
}

func IsEmployer(st State) bool {
	return st.Auth.User != nil && st.Auth.User.Role == models.UserRoleEmployer
}

func SuspendedEmployees(st State) []dto.UserResponse {
	var out []dto.UserResponse
	for _, e := range st.Employees.Employees {
		if e.IsSuspended {
			out = append(out, e)
		}
	}
	return out
}

func filterTickets(tickets []dto.TicketResponse, keep func(dto.TicketResponse) bool) []dto.TicketResponse {
	var out []dto.TicketResponse
	for _, t := range tickets {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
