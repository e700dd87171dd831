package utils

import (
	"fmt"
	"log"

	"microcourses/config"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends transactional notification emails through Sendgrid. All
// sends are best-effort: failures are logged, never surfaced to the request
// that triggered them.
type Mailer struct {
	key       string
	from      *sgmail.Email
	clientURL string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		key:       cfg.SendgridAPIKey,
		from:      sgmail.NewEmail(cfg.EmailFromName, cfg.EmailSender),
		clientURL: cfg.ClientURL,
	}
}

func (m *Mailer) send(toName, toEmail, subject, htmlBody string) {
	if m.key == "" {
		log.Printf("Sendgrid key not configured, skipping email %q to %s", subject, toEmail)
		return
	}

	to := sgmail.NewEmail(toName, toEmail)
	message := sgmail.NewSingleEmail(m.from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(m.key)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return
	}
	if resp.StatusCode >= 400 {
		log.Printf("Sendgrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
	}
}

// SendApplicationDecisionEmail notifies a learner about their creator
// application review.
func (m *Mailer) SendApplicationDecisionEmail(toName, toEmail, status, feedback string) {
	subject := "Your creator application was " + status
	body := fmt.Sprintf(`<p>Hi %s,</p><p>Your application to become a course creator was <b>%s</b>.</p>`, toName, status)
	if feedback != "" {
		body += fmt.Sprintf(`<p>Reviewer feedback: %s</p>`, feedback)
	}
	m.send(toName, toEmail, subject, body)
}

// SendCourseReviewEmail notifies a creator about their course review.
func (m *Mailer) SendCourseReviewEmail(toName, toEmail, courseTitle, status, feedback string) {
	subject := fmt.Sprintf("Course %q review: %s", courseTitle, status)
	body := fmt.Sprintf(`<p>Hi %s,</p><p>Your course <b>%s</b> was <b>%s</b>.</p>`, toName, courseTitle, status)
	if feedback != "" {
		body += fmt.Sprintf(`<p>Reviewer feedback: %s</p>`, feedback)
	}
	m.send(toName, toEmail, subject, body)
}

// SendCertificateEmail congratulates a learner on course completion with a
// link to the public verification page.
func (m *Mailer) SendCertificateEmail(toName, toEmail, courseTitle, serialNumber string) {
	subject := "Your certificate for " + courseTitle
	body := fmt.Sprintf(
		`<p>Congratulations %s!</p><p>You completed <b>%s</b>. Your certificate serial is <b>%s</b>.</p><p><a href="%s/certificate/verify/%s">View your certificate</a></p>`,
		toName, courseTitle, serialNumber, m.clientURL, serialNumber,
	)
	m.send(toName, toEmail, subject, body)
}
