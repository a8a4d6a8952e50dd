// Package smtp delivers plaintext aurora alert emails through a mail relay.
package smtp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"sort"
	"text/template"
	"time"

	"github.com/couchcryptid/aurora-alert/internal/config"
	"github.com/couchcryptid/aurora-alert/internal/domain"
)

const (
	startFormat = "Mon, Jan 2, 3:04 PM"
	endFormat   = "3:04 PM MST"
)

var bodyTemplate = template.Must(template.New("alert").Parse(`High aurora activity is forecast. Times are shown in {{.Zone}}.
Alert triggered for a Kp-index of {{.Threshold}} or greater:

{{range .Periods}}- {{.Window}}, forecast Kp-index: {{.Kp}}
{{end}}
This alert is based on settings for magnetic latitude ~{{printf "%.1f" .Lat}} and longitude ~{{printf "%.1f" .Lon}}.

Latest animated forecast: https://www.swpc.noaa.gov/products/aurora-30-minute-forecast
Raw 3-day text forecast: https://services.swpc.noaa.gov/text/3-day-forecast.txt
`))

// sendFunc matches smtp.SendMail, injectable for tests.
type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// Notifier composes and submits alert emails. Recipients ride the envelope
// only (BCC); the visible To: header names the sender.
type Notifier struct {
	host       string
	port       int
	sender     string
	password   string
	recipients []string
	logger     *slog.Logger
	send       sendFunc
}

// NewNotifier creates an email notifier from the job configuration.
func NewNotifier(cfg *config.Config, logger *slog.Logger) *Notifier {
	return &Notifier{
		host:       cfg.SMTPHost,
		port:       cfg.SMTPPort,
		sender:     cfg.Sender,
		password:   cfg.Password,
		recipients: cfg.Recipients,
		logger:     logger,
		send:       smtp.SendMail,
	}
}

// Notify submits one alert email when the alert has qualifying periods, and
// is a no-op otherwise. A single attempt against the relay; smtp.SendMail
// negotiates STARTTLS when the server offers it.
func (n *Notifier) Notify(ctx context.Context, alert domain.Alert) error {
	if len(alert.Periods) == 0 {
		n.logger.Info("no periods at or above threshold, no email sent", "threshold", alert.Threshold)
		return nil
	}

	body, err := renderBody(alert)
	if err != nil {
		return fmt.Errorf("render alert body: %w", err)
	}

	subject := fmt.Sprintf("Aurora Alert! Kp Index Forecast to Reach %d", alert.MaxKp())
	msg := buildMessage(n.sender, subject, body)
	to := envelopeRecipients(n.sender, n.recipients)

	auth := smtp.PlainAuth("", n.sender, n.password, n.host)
	addr := fmt.Sprintf("%s:%d", n.host, n.port)

	if err := n.send(addr, auth, n.sender, to, msg); err != nil {
		return fmt.Errorf("send alert email via %s: %w", addr, err)
	}

	n.logger.Info("alert email sent",
		"recipients", len(to),
		"periods", len(alert.Periods),
		"max_kp", alert.MaxKp(),
	)
	return nil
}

// bodyView is the template input, with time windows pre-formatted.
type bodyView struct {
	Zone      string
	Threshold int
	Lat       float64
	Lon       float64
	Periods   []periodView
}

type periodView struct {
	Window string
	Kp     int
}

func renderBody(alert domain.Alert) (string, error) {
	view := bodyView{
		Zone:      alert.Zone,
		Threshold: alert.Threshold,
		Lat:       alert.Coordinate.Lat,
		Lon:       alert.Coordinate.Lon,
		Periods:   make([]periodView, len(alert.Periods)),
	}
	for i, p := range alert.Periods {
		view.Periods[i] = periodView{
			Window: fmt.Sprintf("%s to %s", p.LocalStart.Format(startFormat), p.LocalEnd.Format(endFormat)),
			Kp:     p.Kp,
		}
	}

	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// buildMessage assembles the RFC 5322 message. No Bcc header is written, so
// envelope-only recipients stay invisible to each other.
func buildMessage(sender, subject, body string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", sender)
	fmt.Fprintf(&buf, "To: %s\r\n", sender)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.Bytes()
}

// envelopeRecipients returns the sender plus configured recipients,
// deduplicated and sorted.
func envelopeRecipients(sender string, recipients []string) []string {
	seen := map[string]bool{sender: true}
	out := []string{sender}
	for _, r := range recipients {
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
