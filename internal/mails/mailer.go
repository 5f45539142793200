package mails

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"text/template"
	"time"

	"github.com/go-mail/mail/v2"
)

//go:embed "templates"
var templateFS embed.FS

const retryDelay = 500 * time.Millisecond

type Mailer struct {
	Dialer       *mail.Dialer
	Sender       string
	RetriesCount int
}

func New(host string, port int, timeout time.Duration, username, password, sender string, retriesCount int) *Mailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = timeout
	if retriesCount < 1 {
		retriesCount = 1
	}
	return &Mailer{
		Dialer:       dialer,
		Sender:       sender,
		RetriesCount: retriesCount,
	}
}

// parseEmailTmpl renders the subject, plainBody and htmlBody blocks of an
// embedded template. Only htmlBody is HTML-escaped.
func parseEmailTmpl(tmplName string, tmplData any) (map[string]string, error) {
	path := "templates/" + tmplName
	textTmpl, err := template.ParseFS(templateFS, path)
	if err != nil {
		return nil, err
	}
	htmlTmpl, err := htmltemplate.ParseFS(templateFS, path)
	if err != nil {
		return nil, err
	}
	tmplPartials := make(map[string]string, 3)
	for _, key := range []string{"subject", "plainBody"} {
		buff := new(bytes.Buffer)
		if err = textTmpl.ExecuteTemplate(buff, key, tmplData); err != nil {
			return nil, err
		}
		tmplPartials[key] = buff.String()
	}
	buff := new(bytes.Buffer)
	if err = htmlTmpl.ExecuteTemplate(buff, "htmlBody", tmplData); err != nil {
		return nil, err
	}
	tmplPartials["htmlBody"] = buff.String()
	return tmplPartials, nil
}

func (m *Mailer) message(recipient, tmplName string, tmplData any) (*mail.Message, error) {
	tmplPartials, err := parseEmailTmpl(tmplName, tmplData)
	if err != nil {
		return nil, err
	}
	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.Sender)
	msg.SetHeader("Subject", tmplPartials["subject"])
	msg.SetBody("text/plain", tmplPartials["plainBody"])
	msg.AddAlternative("text/html", tmplPartials["htmlBody"])
	return msg, nil
}

// Send renders the template and delivers it, retrying failed dials.
func (m *Mailer) Send(recipient string, tmplName string, tmplData any) error {
	msg, err := m.message(recipient, tmplName, tmplData)
	if err != nil {
		return err
	}
	for i := 0; i < m.RetriesCount; i++ {
		err = m.Dialer.DialAndSend(msg)
		if err == nil {
			return nil
		}
		time.Sleep(retryDelay)
	}
	return err
}
