// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// InvitationEmailData holds data for the invitation email template.
type InvitationEmailData struct {
	OrganizationName string
	InviterName      string
	InviteCode       string
	InviteURL        string // registration link carrying the code
}

// BuildInvitationEmail creates the invitation message sent when an admin or
// manager invites someone into their organization.
func BuildInvitationEmail(data InvitationEmailData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("Invitation to join %s", data.OrganizationName),
		HTMLBody: buildInvitationHTML(data),
	}
}

func buildInvitationHTML(data InvitationEmailData) string {
	tmpl := template.Must(template.New("invitation").Parse(invitationHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const invitationHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>You've been invited</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f3f4f6;">
  <div style="max-width: 600px; margin: 0 auto; padding: 40px 20px;">
    <div style="background-color: #ffffff; border-radius: 8px; padding: 32px;">
      <h2 style="margin: 0 0 16px; color: #1f2937;">You've been invited!</h2>
      <p style="color: #374151; line-height: 1.5;">
        {{.InviterName}} has invited you to join their organization:
        <strong>{{.OrganizationName}}</strong>
      </p>

      <div style="background-color: #f3f4f6; border-radius: 8px; padding: 20px; text-align: center; margin: 24px 0;">
        <p style="margin: 0; color: #6b7280; font-size: 14px;">Your invitation code is:</p>
        <span style="font-size: 24px; font-weight: 700; letter-spacing: 4px; color: #1f2937; font-family: 'Courier New', monospace;">{{.InviteCode}}</span>
      </div>

      <div style="text-align: center; margin: 30px 0;">
        <a href="{{.InviteURL}}" style="display: inline-block; padding: 12px 24px; background-color: #4f46e5; color: #ffffff; text-decoration: none; border-radius: 6px;">
          Accept Invitation
        </a>
      </div>

      <p style="color: #374151; font-size: 14px;">
        Or enter the code manually when registering.
      </p>

      <p style="color: #9ca3af; margin-top: 30px; font-size: 13px;">
        This invitation will expire in 7 days.
      </p>
    </div>
  </div>
</body>
</html>`
