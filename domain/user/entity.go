// Package user holds the User entity: a person who can be assigned to tasks.
package user

import "github.com/kuba-04/task-manager-rest-demo/domain/validation"

// User has no mutators yet. Email is expected to become editable later.
type User struct {
	id        ID
	firstName string
	lastName  string
	email     string
}

// New validates the input and builds a User. All fields are required.
func New(id ID, firstName, lastName, email string) (*User, error) {
	if id.IsZero() {
		return nil, &validation.Error{Entity: "user", Field: "id"}
	}
	if err := validation.Required("user", "first name", firstName); err != nil {
		return nil, err
	}
	if err := validation.Required("user", "last name", lastName); err != nil {
		return nil, err
	}
	if err := validation.Required("user", "email", email); err != nil {
		return nil, err
	}
	return &User{
		id:        id,
		firstName: firstName,
		lastName:  lastName,
		email:     email,
	}, nil
}

func (u *User) ID() ID            { return u.id }
func (u *User) FirstName() string { return u.firstName }
func (u *User) LastName() string  { return u.lastName }
func (u *User) Email() string     { return u.email }
