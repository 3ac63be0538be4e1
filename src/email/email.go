package email

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net/smtp"
	"regexp"
	"strings"
	"time"

	"git.teamcore.network/tcn/tcn/src/config"
	"git.teamcore.network/tcn/tcn/src/logging"
	"git.teamcore.network/tcn/tcn/src/models"
	"git.teamcore.network/tcn/tcn/src/oops"
	"git.teamcore.network/tcn/tcn/src/templates"
	"github.com/jpillora/backoff"
)

type TicketNotificationData struct {
	Reference string
	Email     string
	Subject   string
	Message   string
	Username  string // empty for anonymous submissions
}

/*
Notifies the support inbox about a new ticket. Sending happens on a goroutine
with retries, so the submitting request never waits on SMTP; a ticket whose
notification ultimately fails is still in the database for the dashboard.
*/
func SendTicketNotification(ctx context.Context, ticket *models.SupportTicket, submitter *models.User) {
	data := TicketNotificationData{
		Reference: ticket.Reference.String(),
		Email:     ticket.Email,
		Subject:   ticket.Subject,
		Message:   ticket.Message,
	}
	if submitter != nil {
		data.Username = submitter.Username
	}

	go func() {
		contents, err := renderTemplate("email_support_ticket.html", data)
		if err != nil {
			logging.Error().Err(err).Msg("failed to render support ticket email")
			return
		}

		subject := fmt.Sprintf("[support] %s (%s)", ticket.Subject, data.Reference)

		b := backoff.Backoff{
			Min: 5 * time.Second,
			Max: 5 * time.Minute,
		}
		for b.Attempt() < 5 {
			err = sendMail(config.Config.Email.SupportRecipient, "Team Core Support", subject, contents)
			if err == nil {
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(b.Duration()):
			}
		}
		logging.Warn().
			Err(err).
			Str("reference", data.Reference).
			Msg("gave up sending support ticket notification")
	}()
}

var EmailRegex = regexp.MustCompile(`^[^:\p{Cc} ]+@[^:\p{Cc} ]+\.[^:\p{Cc} ]+$`)

func IsEmail(address string) bool {
	return EmailRegex.Match([]byte(address))
}

func renderTemplate(name string, data interface{}) (string, error) {
	var buffer bytes.Buffer
	template := templates.GetTemplate(name)
	err := template.Execute(&buffer, data)
	if err != nil {
		return "", oops.New(err, "failed to render template for email")
	}
	contentString := buffer.String()
	contentString = strings.ReplaceAll(contentString, "\n", "\r\n")
	return contentString, nil
}

func sendMail(toAddress, toName, subject, contentHtml string) error {
	if config.Config.Email.ForceToAddress != "" {
		toAddress = config.Config.Email.ForceToAddress
	}
	contents := prepMailContents(
		makeHeaderAddress(toAddress, toName),
		makeHeaderAddress(config.Config.Email.FromAddress, config.Config.Email.FromName),
		subject,
		contentHtml,
	)
	return smtp.SendMail(
		fmt.Sprintf("%s:%d", config.Config.Email.ServerAddress, config.Config.Email.ServerPort),
		smtp.PlainAuth("", config.Config.Email.MailerUsername, config.Config.Email.MailerPassword, config.Config.Email.ServerAddress),
		config.Config.Email.FromAddress,
		[]string{toAddress},
		contents,
	)
}

func makeHeaderAddress(email, fullname string) string {
	if fullname != "" {
		encoded := mime.BEncoding.Encode("utf-8", fullname)
		if encoded == fullname {
			encoded = strings.ReplaceAll(encoded, `"`, `\"`)
			encoded = fmt.Sprintf("\"%s\"", encoded)
		}
		return fmt.Sprintf("%s <%s>", encoded, email)
	} else {
		return email
	}
}

func prepMailContents(toLine string, fromLine string, subject string, contentHtml string) []byte {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("To: %s\r\n", toLine))
	builder.WriteString(fmt.Sprintf("From: %s\r\n", fromLine))
	builder.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z)))
	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject)))
	builder.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	builder.WriteString("Content-Transfer-Encoding: quoted-printable\r\n")
	builder.WriteString("\r\n")
	writer := quotedprintable.NewWriter(&builder)
	writer.Write([]byte(contentHtml))
	writer.Close()
	builder.WriteString("\r\n")

	return []byte(builder.String())
}
