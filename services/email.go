package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
)

// EmailService sends transactional mail over SMTP. Every send is best-effort
// from the caller's point of view; an unconfigured SMTP host degrades to a
// logged skip so local environments work without a mail server.
type EmailService struct {
	context.DefaultService

	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
	baseURL      string
	appName      string

	templates map[string]*template.Template
}

const EMAIL_SVC = "email_svc"

func (svc EmailService) Id() string {
	return EMAIL_SVC
}

func (svc *EmailService) Configure(ctx *context.Context) error {
	svc.smtpHost = os.Getenv("SMTP_HOST")
	svc.smtpPort = os.Getenv("SMTP_PORT")
	svc.smtpUsername = os.Getenv("SMTP_USERNAME")
	svc.smtpPassword = os.Getenv("SMTP_PASSWORD")
	svc.fromEmail = os.Getenv("FROM_EMAIL")
	svc.fromName = os.Getenv("FROM_NAME")
	svc.baseURL = os.Getenv("BASE_URL")

	if svc.smtpPort == "" {
		svc.smtpPort = "587"
	}
	if svc.fromName == "" {
		svc.fromName = "FastBite"
	}
	if svc.baseURL == "" {
		svc.baseURL = "http://localhost:8000"
	}
	svc.appName = svc.fromName

	svc.templates = make(map[string]*template.Template)

	return svc.DefaultService.Configure(ctx)
}

func (svc *EmailService) Start() error {
	if err := svc.loadTemplates(); err != nil {
		log.WithError(err).Error("Failed to load email templates")
		// Don't fail startup, just log the error
	}

	return nil
}

const orderStatusEmailHTML = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}} - {{.AppName}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #EA580C; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background-color: #f9f9f9; }
        .order-box { background-color: white; border-left: 4px solid #EA580C; padding: 15px; margin: 20px 0; }
        .footer { padding: 20px; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.Title}}</h1>
        </div>
        <div class="content">
            <h2>Hola {{.UserName}},</h2>
            <div class="order-box">
                <strong>Pedido:</strong> #{{.NumeroOrden}}<br>
                <strong>Estado:</strong> {{.Estado}}
            </div>
            <p>{{.Message}}</p>
            <p>Puedes ver el detalle de tu pedido en <a href="{{.OrderURL}}">{{.OrderURL}}</a>.</p>
        </div>
        <div class="footer">
            <p>&copy; 2025 {{.AppName}}. Todos los derechos reservados.</p>
        </div>
    </div>
</body>
</html>
`

const ticketCreatedEmailHTML = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Ticket creado - {{.AppName}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #4F46E5; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background-color: #f9f9f9; }
        .ticket-box { background-color: white; border-left: 4px solid #4F46E5; padding: 15px; margin: 20px 0; }
        .footer { padding: 20px; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Hemos recibido tu ticket</h1>
        </div>
        <div class="content">
            <h2>Hola {{.UserName}},</h2>
            <p>Tu ticket de soporte fue creado correctamente. Nuestro equipo lo revisará a la brevedad.</p>
            <div class="ticket-box">
                <strong>Ticket:</strong> #{{.NumeroTicket}}<br>
                <strong>Asunto:</strong> {{.Asunto}}<br>
                <strong>Prioridad:</strong> {{.Prioridad}}
            </div>
            <p>Te notificaremos cuando haya una respuesta.</p>
        </div>
        <div class="footer">
            <p>&copy; 2025 {{.AppName}}. Todos los derechos reservados.</p>
        </div>
    </div>
</body>
</html>
`

const passwordResetEmailHTML = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Restablecer contraseña - {{.AppName}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #DC2626; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background-color: #f9f9f9; }
        .button { display: inline-block; padding: 12px 24px; background-color: #DC2626; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
        .footer { padding: 20px; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Restablecer contraseña</h1>
        </div>
        <div class="content">
            <h2>Hola {{.UserName}},</h2>
            <p>Recibimos una solicitud para restablecer la contraseña de tu cuenta. Haz clic en el botón para continuar:</p>
            <a href="{{.ResetURL}}" class="button">Restablecer contraseña</a>
            <p>Si el botón no funciona, copia y pega este enlace en tu navegador:</p>
            <p><a href="{{.ResetURL}}">{{.ResetURL}}</a></p>
            <p>Este enlace expira en 1 hora. Si no solicitaste el cambio, puedes ignorar este correo.</p>
        </div>
        <div class="footer">
            <p>&copy; 2025 {{.AppName}}. Todos los derechos reservados.</p>
        </div>
    </div>
</body>
</html>
`

type OrderStatusEmailData struct {
	AppName     string
	UserName    string
	NumeroOrden string
	Estado      string
	Title       string
	Message     string
	OrderURL    string
}

type TicketCreatedEmailData struct {
	AppName      string
	UserName     string
	NumeroTicket string
	Asunto       string
	Prioridad    string
}

type PasswordResetEmailData struct {
	AppName  string
	UserName string
	ResetURL string
}

func (svc *EmailService) loadTemplates() error {
	var err error

	svc.templates["order_status"], err = template.New("order_status").Parse(orderStatusEmailHTML)
	if err != nil {
		return fmt.Errorf("failed to parse order status email template: %v", err)
	}

	svc.templates["ticket_created"], err = template.New("ticket_created").Parse(ticketCreatedEmailHTML)
	if err != nil {
		return fmt.Errorf("failed to parse ticket created email template: %v", err)
	}

	svc.templates["password_reset"], err = template.New("password_reset").Parse(passwordResetEmailHTML)
	if err != nil {
		return fmt.Errorf("failed to parse password reset email template: %v", err)
	}

	return nil
}

func (svc *EmailService) SendOrderStatusEmail(email, userName, numeroOrden, orderID, estado, title, message string) error {
	if svc.smtpHost == "" {
		log.Warn("SMTP not configured, skipping order status email")
		return nil
	}

	data := OrderStatusEmailData{
		AppName:     svc.appName,
		UserName:    userName,
		NumeroOrden: numeroOrden,
		Estado:      estado,
		Title:       title,
		Message:     message,
		OrderURL:    fmt.Sprintf("%s/pedidos/%s", svc.baseURL, orderID),
	}

	subject := fmt.Sprintf("Pedido #%s: %s - %s", numeroOrden, estado, svc.appName)
	return svc.sendTemplateEmail(email, subject, "order_status", data)
}

func (svc *EmailService) SendTicketCreatedEmail(email, userName, numeroTicket, asunto, prioridad string) error {
	if svc.smtpHost == "" {
		log.Warn("SMTP not configured, skipping ticket created email")
		return nil
	}

	data := TicketCreatedEmailData{
		AppName:      svc.appName,
		UserName:     userName,
		NumeroTicket: numeroTicket,
		Asunto:       asunto,
		Prioridad:    prioridad,
	}

	subject := fmt.Sprintf("Ticket creado: #%s - %s", numeroTicket, svc.appName)
	return svc.sendTemplateEmail(email, subject, "ticket_created", data)
}

func (svc *EmailService) SendPasswordResetEmail(email, userName, token string) error {
	if svc.smtpHost == "" {
		log.Warn("SMTP not configured, skipping password reset email")
		return nil
	}

	data := PasswordResetEmailData{
		AppName:  svc.appName,
		UserName: userName,
		ResetURL: fmt.Sprintf("%s/auth/reset-password?token=%s", svc.baseURL, token),
	}

	subject := fmt.Sprintf("Restablecer contraseña - %s", svc.appName)
	return svc.sendTemplateEmail(email, subject, "password_reset", data)
}

func (svc *EmailService) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	tmpl, exists := svc.templates[templateName]
	if !exists {
		return fmt.Errorf("template %s not found", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute template: %v", err)
	}

	return svc.sendEmail(to, subject, body.String())
}

func (svc *EmailService) sendEmail(to, subject, body string) error {
	if svc.smtpHost == "" {
		return fmt.Errorf("SMTP not configured")
	}

	auth := smtp.PlainAuth("", svc.smtpUsername, svc.smtpPassword, svc.smtpHost)

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		svc.fromName, svc.fromEmail, to, subject, body)

	addr := fmt.Sprintf("%s:%s", svc.smtpHost, svc.smtpPort)
	if err := smtp.SendMail(addr, auth, svc.fromEmail, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	log.WithField("to", to).Info("Email sent")
	return nil
}
