package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// sendMail is the shared SMTP path. Without SMTP configuration the
// message is logged and dropped, success simulated.
func sendMail(to, subject, htmlBody string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	fromEmail := os.Getenv("FROM_EMAIL")

	if smtpHost == "" || smtpPort == "" || smtpUser == "" || smtpPass == "" {
		log.Printf("SMTP not configured, dropping mail to %s: %s", to, subject)
		return nil
	}

	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)

	message := fmt.Sprintf("To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s\r\n", to, subject, htmlBody)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, fromEmail, []string{to}, []byte(message))
	if err != nil {
		log.Printf("Error sending mail to %s: %v", to, err)
		return err
	}
	return nil
}

// SendPasswordResetEmail mails a reset token to the user.
func SendPasswordResetEmail(email, token string) error {
	body := fmt.Sprintf(`
	<html>
	<body>
		<h2>Password reset</h2>
		<p>You requested a password reset. Use the following token:</p>
		<p><strong>%s</strong></p>
		<p>If you did not request this change, you can ignore this email.</p>
	</body>
	</html>
	`, token)

	return sendMail(email, "Password reset", body)
}

// SendNavAlertEmail notifies a user that a watched fund crossed the
// NAV target of one of their alert rules.
func SendNavAlertEmail(email, isin string, nav, target float64, ruleType string) error {
	direction := "risen above"
	if ruleType == "nav_below" {
		direction = "fallen below"
	}

	body := fmt.Sprintf(`
	<html>
	<body>
		<h2>NAV alert</h2>
		<p>The NAV of %s has %s your target of %.4f and is now %.4f.</p>
		<p>Open your Maxiwise watchlist to review it.</p>
	</body>
	</html>
	`, isin, direction, target, nav)

	return sendMail(email, fmt.Sprintf("NAV alert for %s", isin), body)
}
