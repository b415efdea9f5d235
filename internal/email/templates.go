package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
	texttemplate "text/template"
)

const (
	TemplateTicketDecision = "ticket_decision"
)

const ticketDecisionHTML = `<p>Hello {{.Username}},</p>
<p>Your expense of <strong>{{.Amount}} {{.Currency}}</strong> spent on {{.SpentAt}} was <strong>{{.Status}}</strong>.</p>`

const ticketDecisionText = `Hello {{.Username}},

Your expense of {{.Amount}} {{.Currency}} spent on {{.SpentAt}} was {{.Status}}.
`

// TemplateManager renders the HTML and plain-text variants of each template.
type TemplateManager struct {
	mu   sync.RWMutex
	html map[string]*template.Template
	text map[string]*texttemplate.Template
}

func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		html: make(map[string]*template.Template),
		text: make(map[string]*texttemplate.Template),
	}
	tm.mustAdd(TemplateTicketDecision, ticketDecisionHTML, ticketDecisionText)
	return tm
}

func (tm *TemplateManager) AddTemplate(name, htmlSrc, textSrc string) error {
	h, err := template.New(name).Parse(htmlSrc)
	if err != nil {
		return fmt.Errorf("failed to parse html template: %w", err)
	}
	t, err := texttemplate.New(name).Parse(textSrc)
	if err != nil {
		return fmt.Errorf("failed to parse text template: %w", err)
	}

	tm.mu.Lock()
	tm.html[name] = h
	tm.text[name] = t
	tm.mu.Unlock()
	return nil
}

func (tm *TemplateManager) mustAdd(name, htmlSrc, textSrc string) {
	if err := tm.AddTemplate(name, htmlSrc, textSrc); err != nil {
		panic(err)
	}
}

// Render returns (html, text) for the named template.
func (tm *TemplateManager) Render(name string, data TemplateData) (string, string, error) {
	tm.mu.RLock()
	h, okH := tm.html[name]
	t, okT := tm.text[name]
	tm.mu.RUnlock()

	if !okH || !okT {
		return "", "", fmt.Errorf("template not found: %s", name)
	}

	var hb, tb strings.Builder
	if err := h.Execute(&hb, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template: %w", err)
	}
	if err := t.Execute(&tb, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template: %w", err)
	}
	return hb.String(), tb.String(), nil
}
