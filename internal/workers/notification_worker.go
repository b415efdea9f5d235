package workers

import (
	"context"
	"fmt"
	"sync"

	"expense_tracker/internal/email"
	"expense_tracker/internal/logger"
	"expense_tracker/internal/models"
)

const workerName = "notification"

// DecisionNotice tells an employee the outcome of one of their tickets.
type DecisionNotice struct {
	Email    string
	Username string
	Amount   float64
	Currency string
	SpentAt  string
	Status   models.TicketStatus
}

// NotificationWorker delivers decision emails off the request path.
type NotificationWorker struct {
	provider  email.Provider
	templates *email.TemplateManager
	queue     chan DecisionNotice
	wg        sync.WaitGroup
}

func NewNotificationWorker(provider email.Provider, queueSize int) *NotificationWorker {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &NotificationWorker{
		provider:  provider,
		templates: email.NewTemplateManager(),
		queue:     make(chan DecisionNotice, queueSize),
	}
}

// Start consumes the queue until ctx is cancelled. Notices still queued at
// that point are dropped.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-ctx.Done():
				logger.Info("notification worker stopped", "pending", len(w.queue))
				return
			case notice := <-w.queue:
				err := w.deliver(ctx, notice)
				logger.WorkerLog(workerName, "ticket_"+string(notice.Status), err)
			}
		}
	}()
}

// Pending reports how many notices are queued.
func (w *NotificationWorker) Pending() int {
	return len(w.queue)
}

// Wait blocks until the worker goroutine has exited.
func (w *NotificationWorker) Wait() {
	w.wg.Wait()
}

// NotifyTicketDecision enqueues without blocking; a full queue drops the notice.
func (w *NotificationWorker) NotifyTicketDecision(owner *models.User, ticket *models.Ticket) {
	if owner == nil || owner.Email == "" {
		return
	}
	notice := DecisionNotice{
		Email:    owner.Email,
		Username: owner.Username,
		Amount:   ticket.Amount,
		Currency: ticket.Currency,
		SpentAt:  ticket.SpentAt.Format("2006-01-02"),
		Status:   ticket.Status,
	}
	select {
	case w.queue <- notice:
	default:
		logger.Warn("notification queue full, dropping notice", "ticket_id", ticket.ID)
	}
}

func (w *NotificationWorker) deliver(ctx context.Context, n DecisionNotice) error {
	html, text, err := w.templates.Render(email.TemplateTicketDecision, email.TemplateData{
		"Username": n.Username,
		"Amount":   fmt.Sprintf("%.2f", n.Amount),
		"Currency": n.Currency,
		"SpentAt":  n.SpentAt,
		"Status":   string(n.Status),
	})
	if err != nil {
		return err
	}

	return w.provider.Send(ctx, &email.Email{
		To:       []string{n.Email},
		Subject:  fmt.Sprintf("Your expense was %s", n.Status),
		Body:     text,
		HTMLBody: html,
	})
}
