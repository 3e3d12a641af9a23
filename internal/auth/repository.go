package auth

import "errors"

var ErrUserNotFound = errors.New("user not found")

// UserRepository is the data-access contract; the service depends
// only on this interface. FindByEmail returns ErrUserNotFound when no
// user has the email; other errors are infrastructure failures.
type UserRepository interface {
	Save(user *User) error
	ExistsByEmail(email string) (bool, error)
	FindByEmail(email string) (*User, error)
}
