package serializer

import (
	"unicode/utf8"

	"github.com/adboard/adboard-api/internal/domain"
)

// UserListView is the user list representation.
type UserListView struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// NewUserListViews renders users for the list endpoint.
func NewUserListViews(users []*domain.User) []UserListView {
	views := make([]UserListView, 0, len(users))
	for _, u := range users {
		views = append(views, UserListView{Username: u.Username, Role: u.Role})
	}
	return views
}

// UserDetailView renders every user field except the password. Location
// holds the names of the user's locations.
type UserDetailView struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Age       *int        `json:"age"`
	Role      domain.Role `json:"role"`
	Location  []string    `json:"location"`
}

// NewUserDetailView renders u.
func NewUserDetailView(u *domain.User) UserDetailView {
	locations := u.Locations
	if locations == nil {
		locations = []string{}
	}
	return UserDetailView{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Age:       u.Age,
		Role:      u.Role,
		Location:  locations,
	}
}

// UserMode selects which user fields are required.
type UserMode int

const (
	// UserCreate requires username, password and the locations key.
	UserCreate UserMode = iota
	// UserReplace requires username; a missing locations key means no change.
	UserReplace
	// UserPatch requires nothing.
	UserPatch
)

// UserWrite holds the submitted core user fields. Nil fields were not sent.
type UserWrite struct {
	Username  *string      `json:"username" validate:"omitnil,min=1,max=150"`
	Password  *string      `json:"password" validate:"omitnil,min=1"`
	FirstName *string      `json:"first_name" validate:"omitnil,max=150"`
	LastName  *string      `json:"last_name" validate:"omitnil,max=150"`
	Age       *int64       `json:"age"`
	AgeSet    bool         `json:"-"`
	Role      *domain.Role `json:"role" validate:"omitnil,oneof=member admin"`
}

// NewUser builds a user record from a create payload.
func (w UserWrite) NewUser() *domain.User {
	u := &domain.User{Role: domain.RoleMember}
	w.Apply(u)
	return u
}

// Apply copies the submitted fields onto u.
func (w UserWrite) Apply(u *domain.User) {
	if w.Username != nil {
		u.Username = *w.Username
	}
	if w.Password != nil {
		u.Password = *w.Password
	}
	if w.FirstName != nil {
		u.FirstName = *w.FirstName
	}
	if w.LastName != nil {
		u.LastName = *w.LastName
	}
	if w.AgeSet {
		if w.Age == nil {
			u.Age = nil
		} else {
			age := int(*w.Age)
			u.Age = &age
		}
	}
	if w.Role != nil {
		u.Role = *w.Role
	}
}

const maxLocationNameLength = 100

// SplitUserInput separates the locations side channel from the core user
// fields and validates both.
//
// The locations list is extracted first, before the core fields are looked
// at. In UserCreate mode the key is required; otherwise a missing key yields
// nil, meaning the location set is left unchanged. The output-only location
// key is ignored. All field errors from both phases are returned together.
func SplitUserInput(fields Fields, mode UserMode) (UserWrite, []string, error) {
	r := &reader{f: fields}

	locations := splitLocations(r, mode == UserCreate)
	core := fields.Without("locations", "location")
	r.f = core

	w := UserWrite{
		Username:  r.str("username", mode != UserPatch),
		Password:  r.str("password", mode == UserCreate),
		FirstName: r.str("first_name", false),
		LastName:  r.str("last_name", false),
	}
	w.Age, w.AgeSet = r.nullableInt("age")
	if role := r.str("role", false); role != nil {
		rv := domain.Role(*role)
		w.Role = &rv
	}

	if err := checkStruct(w, &r.errs); err != nil {
		return UserWrite{}, nil, err
	}
	// Byte length and column range come from the domain rules
	if w.Password != nil {
		r.add(domain.CheckPassword(*w.Password))
	}
	if w.Age != nil {
		r.add(domain.CheckAge(*w.Age))
	}
	if err := r.errs.Err(); err != nil {
		return UserWrite{}, nil, err
	}
	return w, locations, nil
}

func splitLocations(r *reader, required bool) []string {
	names, err := r.f.Strings("locations", required)
	r.add(err)
	if names == nil {
		return nil
	}
	for _, name := range *names {
		if name == "" {
			r.errs.Add("locations", domain.KindInvalid, "location names may not be blank")
			return nil
		}
		if utf8.RuneCountInString(name) > maxLocationNameLength {
			r.errs.Add("locations", domain.KindInvalid, "location names must be at most 100 characters")
			return nil
		}
	}
	return *names
}
