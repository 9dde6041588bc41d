// Package auth manages the registered-user collection. Users live as one
// JSON collection under a single store key, so every mutation re-reads and
// re-saves the whole collection.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"storefront/models"
	"storefront/store"
)

// Registry is the user store. Passwords are held as bcrypt hashes.
type Registry struct {
	store store.Store
	cost  int
}

// NewRegistry builds a registry over the given store. cost is the bcrypt
// cost; pass 0 for the default.
func NewRegistry(st store.Store, cost int) *Registry {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Registry{store: st, cost: cost}
}

// Register validates the input, creates the account and saves the
// collection. Any validation failure aborts with no state change.
func (r *Registry) Register(ctx context.Context, input models.UserRegister) (models.User, error) {
	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)
	confirm := strings.TrimSpace(input.ConfirmPassword)

	if username == "" || password == "" || confirm == "" {
		return models.User{}, fmt.Errorf("%w: all fields are required", models.ErrValidation)
	}
	if password != confirm {
		return models.User{}, fmt.Errorf("%w: passwords do not match", models.ErrValidation)
	}

	users, err := r.load(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return models.User{}, fmt.Errorf("%w: username already exists", models.ErrValidation)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
		Orders:    []models.Order{},
	}
	users = append(users, user)
	if err := r.save(ctx, users); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Authenticate checks the credentials and returns the matching user. Unknown
// usernames and wrong passwords produce the same error.
func (r *Registry) Authenticate(ctx context.Context, input models.UserLogin) (models.User, error) {
	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)
	if username == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: username and password are required", models.ErrValidation)
	}

	users, err := r.load(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
			break
		}
		return u, nil
	}
	return models.User{}, models.ErrInvalidCredentials
}

// ByID fetches one user.
func (r *Registry) ByID(ctx context.Context, id string) (models.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, models.ErrUserNotFound
}

// AppendOrder attaches an order to the user's history and persists the user
// collection together with the extra writes in one store transaction. The
// user write is placed first, so a backend that degrades to sequential
// writes still records the order before anything else changes.
func (r *Registry) AppendOrder(ctx context.Context, userID string, order models.Order, extra []store.Write) error {
	users, err := r.load(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range users {
		if users[i].ID == userID {
			users[i].Orders = append(users[i].Orders, order)
			found = true
			break
		}
	}
	if !found {
		return models.ErrUserNotFound
	}

	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	writes := append([]store.Write{{Key: store.UsersKey, Value: raw}}, extra...)
	return r.store.SetMulti(ctx, writes)
}

func (r *Registry) load(ctx context.Context) ([]models.User, error) {
	raw, err := r.store.Get(ctx, store.UsersKey)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("parse users: %w", err)
	}
	return users, nil
}

func (r *Registry) save(ctx context.Context, users []models.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, store.UsersKey, raw)
}
