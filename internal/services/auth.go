package services

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"dispatch_tracker/internal/models"
	"dispatch_tracker/internal/store"
)

// ErrInvalidCredentials is returned by Authenticate for a bad username or
// password; the two cases are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	store *store.Store
}

func NewAuthService(st *store.Store) *AuthService {
	return &AuthService{store: st}
}

// Register creates an account. Username uniqueness is enforced here, at
// registration time, backed by the unique column constraint.
func (a *AuthService) Register(username, password, role string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, validationf("username and password are required")
	}
	role, err := normalizeRole(role)
	if err != nil {
		return nil, err
	}

	var existing models.User
	err = a.store.DB().Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, validationf("username %q already exists", username)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storef("check username", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, storef("hash password", err)
	}

	user := models.User{Username: username, Password: string(hash), Role: role}
	if err := store.Add(a.store, &user); err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return nil, validationf("username %q already exists", username)
		}
		return nil, storef("create user", err)
	}
	return &user, nil
}

// Authenticate checks a credential pair and returns the matching user.
func (a *AuthService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	err := a.store.DB().Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storef("load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (a *AuthService) ListUsers() ([]models.User, error) {
	users, err := store.GetAll[models.User](a.store)
	if err != nil {
		return nil, storef("list users", err)
	}
	return users, nil
}

func normalizeRole(roleInput string) (string, error) {
	role := strings.ToLower(strings.TrimSpace(roleInput))
	if role == "" {
		role = "user"
	}
	switch role {
	case "admin", "driver", "user":
		return role, nil
	default:
		return "", validationf("invalid role %q", roleInput)
	}
}
