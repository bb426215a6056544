package accounts

// SeedSource holds the built-in accounts present at start. It is never
// modified after construction.
type SeedSource struct {
	accounts []Account
}

// NewSeedSource creates a SeedSource from a fixed list
func NewSeedSource(seeds []Account) *SeedSource {
	cp := make([]Account, len(seeds))
	copy(cp, seeds)
	return &SeedSource{accounts: cp}
}

// Accounts implements Source
func (s *SeedSource) Accounts() ([]Account, error) {
	cp := make([]Account, len(s.accounts))
	copy(cp, s.accounts)
	return cp, nil
}

// DefaultSeeds returns the portal's built-in accounts
func DefaultSeeds() []Account {
	return []Account{
		{ID: "1", Username: "student1", Email: "student1@cuet.ac.bd", FullName: "Rahim Ahmed", Role: RoleStudent, Password: "student123"},
		{ID: "2", Username: "teacher1", Email: "teacher1@cuet.ac.bd", FullName: "Dr. Karim Rahman", Role: RoleTeacher, Password: "teacher123"},
		{ID: "3", Username: "staff1", Email: "staff1@cuet.ac.bd", FullName: "Abdul Hasan", Role: RoleStaff, Password: "staff123"},
		{ID: "4", Username: "admin", Email: "admin@cuet.ac.bd", FullName: "System Admin", Role: RoleAdmin, Password: "admin123"},
	}
}
