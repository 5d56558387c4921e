package repository

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// User is an account in the fixed in-memory store.
type User struct {
	Username       string
	HashedPassword string
}

// UserRepository resolves accounts for authentication. Backed by a fixed
// in-memory map; the service keeps no persistent user state.
type UserRepository interface {
	FindByUsername(username string) (*User, error)
}

type inMemoryUserRepository struct {
	users map[string]User
}

func NewInMemoryUserRepository() UserRepository {
	repo := &inMemoryUserRepository{users: make(map[string]User)}
	repo.seed("abu", "password123")
	return repo
}

func (r *inMemoryUserRepository) seed(username, password string) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on oversized input, never for the seed accounts.
		panic(err)
	}
	r.users[username] = User{Username: username, HashedPassword: string(hashed)}
}

func (r *inMemoryUserRepository) FindByUsername(username string) (*User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, fmt.Errorf("user %q not found", username)
	}
	return &user, nil
}
