package userdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/tranquoccuong0179/userstore/models"
)

// Store executes the fixed set of queries the federation layer needs against
// the external users table. It owns no business logic, never writes, and
// holds no state beyond the injected connection handle; the handle's
// lifecycle belongs to the caller.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ByID looks a user up by primary key. A missing row is (nil, nil), not an
// error; any other failure is returned so administrative callers can tell
// "absent" from "store unreachable".
func (s *Store) ByID(ctx context.Context, id string) (*models.User, error) {
	const op = "ByID"
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Attributes").
		First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to query user by id, err=%w", op, err)
	}
	return &user, nil
}

// ByUsername looks a user up by exact username. Usernames are unique in the
// store, so there is at most one match and a miss is (nil, nil).
func (s *Store) ByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "ByUsername"
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Attributes").
		First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to query user by username, err=%w", op, err)
	}
	return &user, nil
}

// ByEmail is an advisory lookup the host uses opportunistically. Any failure,
// store connectivity included, degrades to "no match" instead of surfacing.
func (s *Store) ByEmail(ctx context.Context, email string) *models.User {
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Attributes").
		First(&user, "email = ?", email).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Warn("Email lookup degraded to no match", slog.String("email", email), slog.Any("error", err))
		}
		return nil
	}
	return &user
}

// Search returns users whose lowercased username contains term or whose email
// matches the same pattern, ordered by username ascending so paging is stable.
// An empty term matches everything. A nil first or max leaves that bound
// unset rather than applying zero.
func (s *Store) Search(ctx context.Context, term string, first, max *int) ([]models.User, error) {
	const op = "Search"
	pattern := "%" + strings.ToLower(term) + "%"
	tx := s.db.WithContext(ctx).
		Preload("Attributes").
		Where("lower(username) LIKE ? OR email LIKE ?", pattern, pattern).
		Order("username asc")
	if first != nil {
		tx = tx.Offset(*first)
	}
	if max != nil {
		tx = tx.Limit(*max)
	}
	var users []models.User
	if err := tx.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("[%s] Fail to search users, err=%w", op, err)
	}
	return users, nil
}

// Count returns the unfiltered user count.
func (s *Store) Count(ctx context.Context) (int64, error) {
	const op = "Count"
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("[%s] Fail to count users, err=%w", op, err)
	}
	return count, nil
}
