// Package mail delivers account verification email over SMTP.
package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// Sender is what the user service needs from a mail transport.
type Sender interface {
	SendVerification(ctx context.Context, toEmail, username, token string) error
}

const sendTimeout = 5 * time.Second

type SMTP struct {
	client  *gomail.Client
	from    string
	baseURL string
}

func NewSMTP(host string, port int, username, password, from, baseURL string) (*SMTP, error) {
	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTimeout(sendTimeout),
	}
	if username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(password),
		)
	}

	client, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTP{client: client, from: from, baseURL: baseURL}, nil
}

// SendVerification sends the activation mail inline with a bounded timeout.
// The caller decides what a failure means for the request.
func (s *SMTP) SendVerification(ctx context.Context, toEmail, username, token string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	msg.Subject("Activate your BookStore account")

	link := s.baseURL + "/api/v1/auth/verify?token=" + token
	msg.SetBodyString(gomail.TypeTextHTML, activationBody(username, link))

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := s.client.DialAndSendWithContext(sendCtx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func activationBody(username, activationLink string) string {
	body := activationTemplate
	body = strings.ReplaceAll(body, "%USERNAME%", username)
	body = strings.ReplaceAll(body, "%ACTIVATION_LINK%", activationLink)
	return body
}

const activationTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #ffffff;">
    <table role="presentation" style="width: 100%; max-width: 600px; margin: 0 auto; padding: 40px 20px;">
        <tr>
            <td>
                <h1 style="margin: 0 0 30px 0; color: #333333; font-size: 24px; font-weight: normal;">
                    Welcome to BookStore
                </h1>
                <p style="margin: 0 0 20px 0; color: #333333; font-size: 16px; line-height: 1.6;">
                    Hi %USERNAME%,
                </p>
                <p style="margin: 0 0 20px 0; color: #333333; font-size: 16px; line-height: 1.6;">
                    Thank you for choosing to open an <span style="background-color: #FFFF00;">account</span> with us.
                    To keep everything secure, we need to verify your email address.
                </p>
                <p style="margin: 0 0 30px 0; color: #333333; font-size: 16px; line-height: 1.6;">
                    Please click the button below to activate your account. This link will expire in <strong>1 hour</strong>.
                </p>
                <table role="presentation" style="margin: 0 0 30px 0;">
                    <tr>
                        <td style="border-radius: 4px; background-color: #007bff;">
                            <a href="%ACTIVATION_LINK%"
                               style="display: inline-block; padding: 14px 32px; color: #ffffff; text-decoration: none; font-size: 16px; font-weight: normal; border-radius: 4px;">
                                Verify Email Address
                            </a>
                        </td>
                    </tr>
                </table>
                <p style="margin: 0 0 5px 0; color: #666666; font-size: 14px;">
                    Or copy and paste this link into your browser:
                </p>
                <p style="margin: 0 0 30px 0; color: #007bff; font-size: 14px; word-break: break-all;">
                    <a href="%ACTIVATION_LINK%" style="color: #007bff; text-decoration: none;">%ACTIVATION_LINK%</a>
                </p>
                <p style="margin: 0 0 30px 0; color: #333333; font-size: 16px; line-height: 1.6;">
                    Kind regards,<br>
                    Your <span style="background-color: #FFFF00;">BookStore</span> Team
                </p>
                <div style="margin-top: 40px; padding: 20px; background-color: #f5f5f5; border-radius: 4px;">
                    <p style="margin: 0 0 10px 0; color: #333333; font-size: 14px; font-weight: bold;">
                        Security
                    </p>
                    <p style="margin: 0; color: #666666; font-size: 13px; line-height: 1.6;">
                        Unfortunately, some people send emails pretending to be from BookStore.
                        Please remember that we will never ask you to provide personal information,
                        payment details, or passwords through email or links in an email.
                        If you receive any suspicious emails claiming to be from us, please ignore them.
                    </p>
                </div>
            </td>
        </tr>
    </table>
</body>
</html>
`
