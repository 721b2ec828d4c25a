// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, CORS, and request body limits. AppConfig is
// everything specific to this application: database connection strings,
// token signing, mail delivery, and the expiry sweep.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Token configuration
	JWTSecret   string        // Secret for signing bearer tokens (must be strong in production)
	TokenExpiry time.Duration // Bearer token lifetime (default: 24h)

	// Expiry sweep configuration
	SweepInterval time.Duration // How often overdue tasks are expired (default: 1h)

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username (empty for Mailpit)
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address (e.g., noreply@taskhub.app)
	MailFromName string // From display name (e.g., TaskHub)

	// Base URL for invitation links in emails
	BaseURL string // e.g., "https://taskhub.app" or "http://localhost:3000"

	// Audit logging destinations per category: "all", "db", "log", or "off"
	AuditLogAuth  string // authentication events (login, registration)
	AuditLogAdmin string // admin actions (invitations, role changes, removals)
}
