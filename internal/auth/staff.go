package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/kiwari-pos/floor/internal/enum"
)

// Account is a staff member allowed to sign in.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         enum.UserRole
}

// Directory looks staff accounts up by email or id. It is read-only after
// construction.
type Directory struct {
	byEmail map[string]Account
	byID    map[string]Account
}

func NewDirectory(accounts ...Account) *Directory {
	d := &Directory{
		byEmail: make(map[string]Account, len(accounts)),
		byID:    make(map[string]Account, len(accounts)),
	}
	for _, a := range accounts {
		d.byEmail[strings.ToLower(a.Email)] = a
		d.byID[a.ID] = a
	}
	return d
}

func (d *Directory) ByEmail(email string) (Account, bool) {
	a, ok := d.byEmail[strings.ToLower(strings.TrimSpace(email))]
	return a, ok
}

func (d *Directory) ByID(id string) (Account, bool) {
	a, ok := d.byID[id]
	return a, ok
}

// HashPassword returns a bcrypt hash suitable for Account.PasswordHash.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword reports whether password matches the account's hash.
func (a Account) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}
