package service

import (
	"context"
	"net/http"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/Pangeneses/NeonServer/internal/domain"
	internal_errors "github.com/Pangeneses/NeonServer/internal/errors"
)

type UserService interface {
	Register(ctx context.Context, user domain.User, password, reEnter string) (domain.User, error)
	Login(ctx context.Context, username, password string) (domain.User, error)
	Update(ctx context.Context, id domain.UserId, changes UserChanges) (domain.User, error)
	Listed(ctx context.Context) ([]domain.UserSummary, error)
	Scan(ctx context.Context, q domain.UserScanQuery) ([]domain.UserSummary, error)
}

// UserChanges mirrors the profile fields; nil leaves a field untouched. An
// empty Password means "keep the current hash".
type UserChanges struct {
	UserName    *string
	Password    *string
	Avatar      *string
	JournalDesc *string
	FirstName   *string
	LastName    *string
	AddressOne  *string
	AddressTwo  *string
	City        *string
	Region      *string
	PostCode    *string
	Country     *string
	EMail       *string
	Cellphone   *string
	DateOfBirth *time.Time
}

type UserStorage interface {
	CreateUser(ctx context.Context, user *domain.User) (domain.UserId, error)
	GetUser(ctx context.Context, id domain.UserId) (domain.User, error)
	GetUserByName(ctx context.Context, username string) (domain.User, error)
	ReplaceUser(ctx context.Context, user *domain.User) error
	ListUsers(ctx context.Context) ([]domain.UserSummary, error)
	ScanUsers(ctx context.Context, q domain.UserScanQuery) ([]domain.UserSummary, error)
}

type User struct {
	storage UserStorage
}

func NewUser(storage UserStorage) *User {
	return &User{storage}
}

// passwordValid enforces the original policy: 8-30 chars with at least one
// digit, one lowercase and one uppercase letter.
func passwordValid(password string) bool {
	if len(password) < 8 || len(password) > 30 {
		return false
	}
	var digit, lower, upper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		}
	}
	return digit && lower && upper
}

func passwordError() error {
	return &internal_errors.ErrorWithStatusCode{
		Message:    "Password must have cap, no cap, 8 char, special char.",
		StatusCode: http.StatusBadRequest,
	}
}

func (u *User) Register(ctx context.Context, user domain.User, password, reEnter string) (domain.User, error) {
	if password == "" && reEnter == "" {
		return domain.User{}, &internal_errors.ErrorWithStatusCode{
			Message:    "Password is required.",
			StatusCode: http.StatusBadRequest,
		}
	}
	if password != reEnter {
		return domain.User{}, &internal_errors.ErrorWithStatusCode{
			Message:    "Passwords do not match.",
			StatusCode: http.StatusBadRequest,
		}
	}
	if !passwordValid(password) {
		return domain.User{}, passwordError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)

	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	user.CreatedDate = time.Now().UTC()

	if _, err := u.storage.CreateUser(ctx, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (u *User) Login(ctx context.Context, username, password string) (domain.User, error) {
	user, err := u.storage.GetUserByName(ctx, username)
	if err != nil {
		return domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, &internal_errors.ErrorWithStatusCode{
			Message:    "Invalid password",
			StatusCode: http.StatusUnauthorized,
		}
	}
	return user, nil
}

func (u *User) Update(ctx context.Context, id domain.UserId, changes UserChanges) (domain.User, error) {
	user, err := u.storage.GetUser(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if changes.Password != nil && *changes.Password != "" {
		if !passwordValid(*changes.Password) {
			return domain.User{}, passwordError()
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*changes.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.User{}, err
		}
		user.Password = string(hash)
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&user.UserName, changes.UserName)
	apply(&user.Avatar, changes.Avatar)
	apply(&user.JournalDesc, changes.JournalDesc)
	apply(&user.FirstName, changes.FirstName)
	apply(&user.LastName, changes.LastName)
	apply(&user.AddressOne, changes.AddressOne)
	apply(&user.AddressTwo, changes.AddressTwo)
	apply(&user.City, changes.City)
	apply(&user.Region, changes.Region)
	apply(&user.PostCode, changes.PostCode)
	apply(&user.Country, changes.Country)
	apply(&user.EMail, changes.EMail)
	apply(&user.Cellphone, changes.Cellphone)
	if changes.DateOfBirth != nil {
		user.DateOfBirth = *changes.DateOfBirth
	}

	if err := u.storage.ReplaceUser(ctx, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (u *User) Listed(ctx context.Context) ([]domain.UserSummary, error) {
	return u.storage.ListUsers(ctx)
}

func (u *User) Scan(ctx context.Context, q domain.UserScanQuery) ([]domain.UserSummary, error) {
	return u.storage.ScanUsers(ctx, q)
}
