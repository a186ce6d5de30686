package store

import (
	"bitwise74/task-api/internal/model"
	"bitwise74/task-api/pkg/util"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// PasswordHasher turns raw passwords into stored hashes and back
type PasswordHasher interface {
	Hash(p string) (string, error)
	Verify(p, encoded string) (bool, error)
}

type Users struct {
	db     *gorm.DB
	hasher PasswordHasher
	now    func() time.Time
}

func NewUsers(db *gorm.DB, h PasswordHasher) *Users {
	return &Users{db: db, hasher: h, now: time.Now}
}

// Register hashes rawPassword and stores a new user. The email must not
// belong to another user.
func (u *Users) Register(ctx context.Context, name, email, rawPassword string) (*model.User, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)

	var found int64
	err = u.db.WithContext(ctx).
		Model(model.User{}).
		Where("email = ?", email).
		Count(&found).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to check if user is registered: %w", err)
	}

	if found > 0 {
		return nil, ErrDuplicateEmail
	}

	hash, err := u.hasher.Hash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := util.NewID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	user := &model.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Registered:   u.now(),
	}

	if err := u.db.WithContext(ctx).Create(user).Error; err != nil {
		// Two registrations racing past the check above end up here
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}

		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (u *Users) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return u.findOne(ctx, "email = ?", strings.TrimSpace(email))
}

func (u *Users) FindByID(ctx context.Context, id string) (*model.User, error) {
	return u.findOne(ctx, "id = ?", id)
}

// Authenticate returns the user registered under email if rawPassword
// matches the stored hash
func (u *Users) Authenticate(ctx context.Context, email, rawPassword string) (*model.User, error) {
	user, err := u.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	ok, err := u.hasher.Verify(rawPassword, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	if !ok {
		return nil, ErrWrongPassword
	}

	return user, nil
}

func (u *Users) findOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var user model.User

	err := u.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}
