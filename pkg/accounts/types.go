package accounts

// Account is an identity record. Field names follow the persisted records.
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
	Password string `json:"password"`
}

// Source is an ordered collection of accounts
type Source interface {
	// Accounts returns the accounts in the source's order
	Accounts() ([]Account, error)
}
