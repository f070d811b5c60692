// contact.go - Contact form mail delivery
package main

import (
	"fmt"
	"net/http"
	"net/smtp"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// Handle contact form submission with HTMX
func handleContactForm(c *gin.Context) {
	name := c.PostForm("fullName")
	email := c.PostForm("email")
	message := c.PostForm("message")

	err := sendContactEmail(name, email, message)
	if err != nil {
		// Return error message HTML fragment
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	// Return success message HTML fragment
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}

func sendContactEmail(name, email, message string) error {
	// Email configuration - use environment variables for security
	smtpHost := os.Getenv("SMTP_HOST") // e.g., "smtp.gmail.com"
	smtpPort := os.Getenv("SMTP_PORT") // e.g., "587"
	smtpUser := os.Getenv("SMTP_USER") // your email
	smtpPass := os.Getenv("SMTP_PASS") // your app password
	toEmail := os.Getenv("TO_EMAIL")   // where you want to receive emails

	if smtpHost == "" {
		smtpHost = "smtp.gmail.com"
	}
	if smtpPort == "" {
		smtpPort = "587"
	}

	if smtpUser == "" || smtpPass == "" || toEmail == "" {
		return fmt.Errorf("SMTP credentials not configured")
	}

	// Header injection guard: the visitor's address goes into Reply-To
	if strings.ContainsAny(email, "\r\n") {
		return fmt.Errorf("invalid reply address")
	}

	subject := fmt.Sprintf("Portfolio Contact: %s", strings.ReplaceAll(name, "\n", " "))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, email, message)

	msg := []byte("To: " + toEmail + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + smtpUser + "\r\n" +
		"Reply-To: " + email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	return smtp.SendMail(smtpHost+":"+smtpPort, auth, smtpUser, []string{toEmail}, msg)
}
