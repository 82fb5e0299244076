package sms

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/redmonkez12/library-api/templates"
)

var messages = template.Must(template.ParseFS(templates.SMSFS, "sms/*.tmpl"))

// OTPMessage renders the text sent with a one-time code.
func OTPMessage(code string) (string, error) {
	var buf bytes.Buffer
	if err := messages.ExecuteTemplate(&buf, "otp.txt.tmpl", struct{ Code string }{code}); err != nil {
		return "", fmt.Errorf("render otp message: %w", err)
	}
	return buf.String(), nil
}
