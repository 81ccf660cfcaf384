package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"miniblog/internal/bootstrap"
	"miniblog/internal/model"
	"miniblog/pkg/apperror"
)

var testDBCounter atomic.Int64

// newTestDB opens a fresh in-memory database with the schema migrated and
// the three roles seeded. Each call gets its own database so tests stay
// independent.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := bootstrap.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if err := bootstrap.SeedRoles(db); err != nil {
		t.Fatalf("failed to seed roles: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, roleName string) *model.User {
	t.Helper()

	var role model.Role
	if err := db.Where("name = ?", roleName).First(&role).Error; err != nil {
		t.Fatalf("role %q not seeded: %v", roleName, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		RoleID:       role.ID,
		Role:         role,
		Active:       true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user %q: %v", username, err)
	}
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()

	category := &model.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to seed category %q: %v", name, err)
	}
	return category
}

func seedPost(t *testing.T, db *gorm.DB, author *model.User, category *model.Category, status string) *model.Post {
	t.Helper()

	post := &model.Post{
		Title:      "seed title",
		Body:       "seed body",
		Status:     status,
		AuthorID:   author.ID,
		CategoryID: category.ID,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	return post
}

func seedComment(t *testing.T, db *gorm.DB, author *model.User, postID uint, visible bool) *model.Comment {
	t.Helper()

	comment := &model.Comment{
		Body:     "seed comment",
		AuthorID: author.ID,
		PostID:   postID,
		Visible:  visible,
	}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("failed to seed comment: %v", err)
	}
	return comment
}

func wantStatus(t *testing.T, err error, status int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error mapping to %d, got nil", status)
	}
	if got := apperror.MapErrorToStatus(err); got != status {
		t.Fatalf("error %v maps to %d, want %d", err, got, status)
	}
}

var testCtx = context.Background()
