package email

type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData is passed to the notification templates.
type TemplateData map[string]interface{}
