// Package email relays contact-form messages and upload notifications over
// SMTP.
package email

import (
	"bytes"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Mailer defines the outgoing mail operations the services depend on.
type Mailer interface {
	SendContactMessage(msg ContactMessage) error
	SendUploadNotification(n UploadNotification) error
}

// ContactMessage is a contact-form submission to relay to the site inbox.
type ContactMessage struct {
	FullName     string
	Email        string
	MobileNumber string
	Subject      string
	Message      string
}

// UploadNotification describes a freshly uploaded paper. AttachmentPath, when
// set, is attached to the notification so moderators can review the file
// without shell access to the server.
type UploadNotification struct {
	OriginalName   string
	StoredName     string
	Size           int64
	AttachmentPath string
}

// SMTPConfig holds configuration for the SMTP server.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	// ToEmail is the site inbox that receives contact messages and upload
	// notifications.
	ToEmail string
	UseTLS  bool
}

// SMTPMailer implements Mailer over plain SMTP or SMTP-over-TLS.
type SMTPMailer struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPMailer creates a Mailer from injected SMTP configuration.
func NewSMTPMailer(config SMTPConfig, logger zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{config: config, logger: logger}
}

// SendContactMessage relays a contact-form submission to the site inbox.
func (m *SMTPMailer) SendContactMessage(msg ContactMessage) error {
	if m.devSkip("contact message", msg.Email) {
		return nil
	}

	subject := fmt.Sprintf("New message from %s: %s", msg.FullName, msg.Subject)
	body := fmt.Sprintf(
		"Full Name: %s\nEmail: %s\nMobile: %s\nSubject: %s\nMessage: %s\n",
		msg.FullName, msg.Email, msg.MobileNumber, msg.Subject, msg.Message,
	)

	raw, err := buildMessage(m.fromHeader(), m.config.ToEmail, subject, body, "")
	if err != nil {
		return err
	}
	return m.send(raw)
}

// SendUploadNotification mails the site inbox about a new upload, attaching
// the stored file when it is readable.
func (m *SMTPMailer) SendUploadNotification(n UploadNotification) error {
	if m.devSkip("upload notification", n.OriginalName) {
		return nil
	}

	subject := "New Paper Upload Notification"
	body := fmt.Sprintf(
		"A new paper has been uploaded:\nFilename: %s\nStored as: %s\nSize: %d bytes\nUploaded at: %s\n",
		n.OriginalName, n.StoredName, n.Size, time.Now().Format(time.RFC1123),
	)

	raw, err := buildMessage(m.fromHeader(), m.config.ToEmail, subject, body, n.AttachmentPath)
	if err != nil {
		return err
	}
	return m.send(raw)
}

// devSkip logs and skips delivery when SMTP credentials are not configured,
// so development environments work without a mail account.
func (m *SMTPMailer) devSkip(kind, ref string) bool {
	if m.config.Username != "" && m.config.Password != "" {
		return false
	}
	m.logger.Warn().
		Str("kind", kind).
		Str("ref", ref).
		Msg("SMTP credentials not configured - mail not sent")
	return true
}

func (m *SMTPMailer) fromHeader() string {
	if m.config.FromName != "" {
		return fmt.Sprintf("%s <%s>", m.config.FromName, m.config.FromEmail)
	}
	return m.config.FromEmail
}

func (m *SMTPMailer) send(message []byte) error {
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	serverAddress := m.config.Host + ":" + strconv.Itoa(m.config.Port)

	if !m.config.UseTLS {
		if err := smtp.SendMail(serverAddress, auth, m.config.FromEmail, []string{m.config.ToEmail}, message); err != nil {
			m.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	tlsConfig := &tls.Config{ServerName: m.config.Host}
	conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err = client.Mail(m.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(m.config.ToEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return nil
}

// buildMessage assembles an RFC 5322 message. With an attachment path it
// produces a multipart/mixed message with the file base64-encoded; otherwise
// a plain text/plain message.
func buildMessage(from, to, subject, body, attachmentPath string) ([]byte, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintf(buf, "From: %s\r\n", from)
	fmt.Fprintf(buf, "To: %s\r\n", to)
	fmt.Fprintf(buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(buf, "MIME-Version: 1.0\r\n")

	if attachmentPath == "" {
		fmt.Fprintf(buf, "Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		buf.WriteString(body)
		return buf.Bytes(), nil
	}

	data, err := os.ReadFile(attachmentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}

	writer := multipart.NewWriter(buf)
	fmt.Fprintf(buf, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", writer.Boundary())

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=UTF-8")
	textPart, err := writer.CreatePart(textHeader)
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write([]byte(body)); err != nil {
		return nil, err
	}

	fileHeader := textproto.MIMEHeader{}
	fileHeader.Set("Content-Type", "application/pdf")
	fileHeader.Set("Content-Transfer-Encoding", "base64")
	fileHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(attachmentPath)))
	filePart, err := writer.CreatePart(fileHeader)
	if err != nil {
		return nil, err
	}
	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(data)))
	base64.StdEncoding.Encode(encoded, data)
	if _, err := filePart.Write(encoded); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
