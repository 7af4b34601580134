package notifications

import (
	"fmt"
	"html"
	"strings"

	"github.com/motorsure/motorsure-api/domain"
)

type Message struct {
	Subject   string
	Body      string
	FromName  string
	FromEmail string
	ToName    string
	ToEmail   string
}

// NewEmailMessage returns a message with the From fields already set
func NewEmailMessage() Message {
	return Message{
		FromName:  domain.Env.AppName,
		FromEmail: domain.EmailFromAddress(nil),
	}
}

// htmlBody wraps a plain text body in a minimal HTML document, escaping the
// text and converting line breaks to paragraphs.
func htmlBody(msg Message) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, paragraph := range strings.Split(msg.Body, "\n\n") {
		p := html.EscapeString(strings.TrimSpace(paragraph))
		if p == "" {
			continue
		}
		p = strings.ReplaceAll(p, "\n", "<br>")
		fmt.Fprintf(&b, "<p>%s</p>", p)
	}
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(domain.Env.AppName))
	b.WriteString("</body></html>")
	return b.String()
}
