package user

import (
	"errors"

	"github.com/edupoint/portal/core"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrUsernameExists     = errors.New("a user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWrongOldPassword   = errors.New("current password incorrect")
	ErrPasswordTooShort   = errors.New("new password is too short")
)

type (
	Repository interface {
		CreateUser(usr User) (User, error)
		QueryAllUsers() ([]User, error)
		GetUserByUsername(username string) (User, error)
		SetUserPassword(username, password string) error
	}

	Service struct {
		repo Repository
		conf *core.Config
	}
)

func NewService(repo Repository, conf *core.Config) *Service {
	return &Service{repo: repo, conf: conf}
}

// Authenticate checks a username/password pair and returns the matching User.
// Any failure (unknown user, wrong password) maps to ErrInvalidCredentials so
// callers cannot distinguish the two.
func (svc *Service) Authenticate(username, password string) (User, error) {
	usr, err := svc.repo.GetUserByUsername(core.CleanString(username))
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if err := usr.CheckPassword(core.CleanString(password)); err != nil {
		return User{}, err
	}
	return usr, nil
}

// ChangePassword verifies the old password and stores the new one.
// The new password must meet the configured minimum length.
func (svc *Service) ChangePassword(username, oldPwd, newPwd string) error {
	usr, err := svc.repo.GetUserByUsername(core.CleanString(username))
	if err != nil {
		return err
	}
	if usr.Password != oldPwd {
		return ErrWrongOldPassword
	}
	if len(newPwd) < svc.conf.MinPasswordLen {
		return ErrPasswordTooShort
	}
	return svc.repo.SetUserPassword(usr.Username, newPwd)
}

func (svc *Service) GetByUsername(username string) (User, error) {
	return svc.repo.GetUserByUsername(core.CleanString(username))
}

func (svc *Service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}
