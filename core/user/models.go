package user

// Roles
const (
	RoleAdmin   = "ADMIN"
	RoleStudent = "STUDENT"
)

var Roles = []string{RoleAdmin, RoleStudent}

// User is a portal login. Passwords are stored and compared in plain text:
// the portal runs as a single local demo session and the persisted snapshot
// must round-trip the literal credential strings.
type User struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	StudentID string `json:"studentId,omitempty"` // set iff Role == RoleStudent
}

func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u *User) IsStudent() bool { return u.Role == RoleStudent }

// CheckPassword compares the stored password with the given one.
func (u *User) CheckPassword(pwd string) error {
	if u.Password != pwd {
		return ErrInvalidCredentials
	}
	return nil
}
