package auth

import (
	"context"
	"errors"
	"strings"

	"frontdesk-api/internal/store"

	"golang.org/x/crypto/bcrypt"
)

const userCollection = "user"

var (
	ErrInvalidUser        = errors.New("auth: invalid user")
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)

// User is an account that can call the protected API.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// UserService persists accounts in the document store with bcrypt hashes.
type UserService struct {
	store store.Store
	cost  int
}

func NewUserService(s store.Store) *UserService {
	return &UserService{store: s, cost: bcrypt.DefaultCost}
}

// Register creates an account. Role defaults to agent; admins are promoted
// out of band.
func (s *UserService) Register(ctx context.Context, email, password, name string) (User, error) {
	if s.store == nil {
		return User{}, errors.New("auth: store not configured")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return User{}, ErrInvalidUser
	}
	if len(password) < 8 {
		return User{}, ErrInvalidUser
	}
	if strings.TrimSpace(name) == "" {
		return User{}, ErrInvalidUser
	}

	existing, err := s.store.Find(ctx, userCollection, store.Document{"email": email}, 1)
	if err != nil {
		return User{}, err
	}
	if len(existing) > 0 {
		return User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, err
	}

	id, err := s.store.Insert(ctx, userCollection, store.Document{
		"email":         email,
		"name":          name,
		"role":          RoleAgent,
		"password_hash": string(hash),
	})
	if err != nil {
		return User{}, err
	}
	return User{ID: id, Email: email, Name: name, Role: RoleAgent}, nil
}

// Authenticate checks credentials and returns the stored user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (User, error) {
	if s.store == nil {
		return User{}, errors.New("auth: store not configured")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	docs, err := s.store.Find(ctx, userCollection, store.Document{"email": email}, 1)
	if err != nil {
		return User{}, err
	}
	if len(docs) == 0 {
		return User{}, ErrInvalidCredentials
	}
	doc := docs[0]

	hash, _ := doc["password_hash"].(string)
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	u := User{Email: email}
	u.ID, _ = doc[store.FieldID].(string)
	u.Name, _ = doc["name"].(string)
	u.Role, _ = doc["role"].(string)
	if !validRole(u.Role) {
		u.Role = RoleAgent
	}
	return u, nil
}
