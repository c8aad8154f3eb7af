package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Himselfzw/ingrid/internal/config"
)

// Mailer delivers notification mail over SMTP. Delivery is best effort;
// callers treat a failed send as an optional side effect.
type Mailer struct {
	cfg config.SMTPConfig
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

type ContactMessage struct {
	FirstName  string
	LastName   string
	Email      string
	Company    string
	Phone      string
	Subject    string
	Message    string
	Newsletter bool
}

// SendContactNotification mails a contact-form submission to the
// configured notification address.
func (m *Mailer) SendContactNotification(msg ContactMessage) error {
	from := m.cfg.From
	if from == "" {
		from = m.cfg.Username
	}

	orNotProvided := func(s string) string {
		if s == "" {
			return "Not provided"
		}
		return s
	}
	newsletter := "No"
	if msg.Newsletter {
		newsletter = "Yes"
	}

	var body strings.Builder
	fmt.Fprintf(&body, "From: %s %s <%s>\r\n", msg.FirstName, msg.LastName, from)
	fmt.Fprintf(&body, "To: %s\r\n", m.cfg.ContactEmail)
	fmt.Fprintf(&body, "Subject: Contact Form: %s\r\n", msg.Subject)
	body.WriteString("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n")
	body.WriteString("<h2>New Contact Form Submission</h2>")
	fmt.Fprintf(&body, "<p><strong>Name:</strong> %s %s</p>", msg.FirstName, msg.LastName)
	fmt.Fprintf(&body, "<p><strong>Email:</strong> %s</p>", msg.Email)
	fmt.Fprintf(&body, "<p><strong>Company:</strong> %s</p>", orNotProvided(msg.Company))
	fmt.Fprintf(&body, "<p><strong>Phone:</strong> %s</p>", orNotProvided(msg.Phone))
	fmt.Fprintf(&body, "<p><strong>Subject:</strong> %s</p>", msg.Subject)
	fmt.Fprintf(&body, "<p><strong>Newsletter:</strong> %s</p>", newsletter)
	body.WriteString("<h3>Message:</h3>")
	fmt.Fprintf(&body, "<p>%s</p>", strings.ReplaceAll(msg.Message, "\n", "<br>"))

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, from, []string{m.cfg.ContactEmail}, []byte(body.String())); err != nil {
		return fmt.Errorf("send contact mail: %w", err)
	}
	return nil
}
