package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"ewebb/backend/internal/domain"
)

// Config 邮件发送配置
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Mailer 通过 SMTP 向管理员发送联系消息通知邮件。
//
// 未配置密码时处于禁用状态，Notify 仅记录日志而不外发。
type Mailer struct {
	cfg    Config
	logger *zap.Logger
}

// NewMailer 创建邮件发送器。
func NewMailer(cfg Config, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

// Enabled 返回是否已配置外发凭据。
func (m *Mailer) Enabled() bool {
	return m.cfg.Password != ""
}

var notificationTmpl = template.Must(template.New("contact").Parse(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px; background: #f9f9f9; border-radius: 10px;">
		<h2 style="color: #2563EB;">New Contact Form Submission</h2>
		<div style="background: white; padding: 15px; border-radius: 6px; margin: 20px 0;">
			<p style="margin: 0;"><strong>Name:</strong> {{.Name}}</p>
			<p style="margin: 5px 0 0 0;"><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
			<p style="margin: 5px 0 0 0;"><strong>Phone:</strong> {{.Phone}}</p>
			<p style="margin: 5px 0 0 0;"><strong>Subject:</strong> {{.Subject}}</p>
		</div>
		<div style="background: white; padding: 15px; border-radius: 6px; margin: 20px 0;">
			<p style="margin: 0;"><strong>Message:</strong></p>
			<p style="margin: 10px 0 0 0; white-space: pre-wrap;">{{.Message}}</p>
		</div>
		<p style="color: #666; font-size: 0.85em;">Received on {{.ReceivedAt}}</p>
	</div>
</body>
</html>
`))

type notificationData struct {
	Name       string
	Email      string
	Phone      string
	Subject    string
	Message    string
	ReceivedAt string
}

// renderNotification 渲染联系消息通知邮件正文。
func renderNotification(contact *domain.ContactMessage) (string, error) {
	phone := "Not provided"
	if contact.Phone != nil && *contact.Phone != "" {
		phone = *contact.Phone
	}

	data := notificationData{
		Name:       contact.Name,
		Email:      contact.Email,
		Phone:      phone,
		Subject:    contact.Subject,
		Message:    contact.Message,
		ReceivedAt: contact.CreatedAt.Format("January 2, 2006 at 3:04 PM"),
	}

	var buf bytes.Buffer
	if err := notificationTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render notification template: %w", err)
	}

	return buf.String(), nil
}

// Notify 发送联系消息通知邮件给管理员。
func (m *Mailer) Notify(contact *domain.ContactMessage) error {
	subject := "New Contact: " + contact.Subject

	if !m.Enabled() {
		m.logger.Info("mail notification skipped, SMTP not configured",
			zap.String("to", m.cfg.To),
			zap.String("subject", subject),
		)
		return nil
	}

	body, err := renderNotification(contact)
	if err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", m.cfg.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := sasl.NewPlainClient("", m.cfg.Username, m.cfg.Password)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{m.cfg.To}, strings.NewReader(msg.String())); err != nil {
		return fmt.Errorf("failed to send notification mail: %w", err)
	}

	m.logger.Info("contact notification mail sent",
		zap.String("to", m.cfg.To),
		zap.String("contact_id", contact.ID),
	)
	return nil
}
