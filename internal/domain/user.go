package domain

import (
	"math"
	"regexp"
	"unicode/utf8"
)

// Role is the enumerated privilege level of a user.
type Role string

// Supported roles.
const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

const (
	maxUsernameLength = 150
	maxNameLength     = 150
	// bcrypt ignores everything past 72 bytes
	maxPasswordBytes = 72
	// ages are stored in an INTEGER column
	MaxAge = math.MaxInt32
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// User represents a registered user of the classifieds board.
type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Password       string `json:"-"` // Plaintext password, used temporarily during create/update
	HashedPassword string `json:"-"` // Never expose password hash in JSON
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Age            *int   `json:"age"`
	Role           Role   `json:"role"`

	// Locations holds the names of the user's locations, ordered by name.
	Locations []string `json:"location"`
}

// NewUser creates a new User with the given username, plaintext password and role.
// An empty role defaults to RoleMember.
//
// NOTE: the caller (the user store) is responsible for hashing the password
// before the user is persisted.
func NewUser(username, password string, role Role) (*User, error) {
	if role == "" {
		role = RoleMember
	}
	user := &User{
		Username: username,
		Password: password,
		Role:     role,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	var errs ValidationErrors

	switch {
	case u.Username == "":
		errs.Add("username", KindRequired, "this field is required")
	case utf8.RuneCountInString(u.Username) > maxUsernameLength:
		errs.Add("username", KindInvalid, "must be at most 150 characters")
	case !usernamePattern.MatchString(u.Username):
		errs.Add("username", KindInvalid, "may contain only letters, digits and @/./+/-/_")
	}

	if u.Password != "" {
		if err := errs.Append(CheckPassword(u.Password)); err != nil {
			return err
		}
	} else if u.HashedPassword == "" {
		// Existing users loaded from the store only carry the hash
		errs.Add("password", KindRequired, "this field is required")
	}

	if !u.Role.Valid() {
		errs.Add("role", KindInvalid, `must be one of "member", "admin"`)
	}
	if utf8.RuneCountInString(u.FirstName) > maxNameLength {
		errs.Add("first_name", KindInvalid, "must be at most 150 characters")
	}
	if utf8.RuneCountInString(u.LastName) > maxNameLength {
		errs.Add("last_name", KindInvalid, "must be at most 150 characters")
	}
	if u.Age != nil {
		if err := errs.Append(CheckAge(int64(*u.Age))); err != nil {
			return err
		}
	}

	return errs.Err()
}

// CheckPassword reports a field error on "password" when p is longer than
// bcrypt accepts. The limit is in bytes.
func CheckPassword(p string) error {
	if len(p) > maxPasswordBytes {
		return NewValidationError("password", KindInvalid, "must be at most 72 bytes")
	}
	return nil
}

// CheckAge reports a field error on "age" when age is negative or does not
// fit the stored column.
func CheckAge(age int64) error {
	if age < 0 || age > MaxAge {
		return NewValidationError("age", KindInvalid, "must be an integer between 0 and 2147483647")
	}
	return nil
}
