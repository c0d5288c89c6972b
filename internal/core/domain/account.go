package domain

// Account represents a registered trading account in the core domain.
// This is the primary representation used by services. The account owns its
// transaction log, but the log is append-only and paged separately rather
// than carried on the struct.
type Account struct {
	AccountID    string    `json:"accountID"` // Primary Key (UUID), immutable
	Email        string    `json:"email"`     // Unique login identifier, matched case-sensitively
	PasswordHash string    `json:"-"`         // bcrypt hash, never serialized
	Portfolio    Portfolio `json:"portfolio"`
	AuditFields
}
