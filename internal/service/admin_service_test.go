package service

import (
	"errors"
	"net/http"
	"testing"

	"gorm.io/gorm"

	"miniblog/internal/model"
	"miniblog/internal/repository"
)

func TestUpdateUserRole(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	svc := NewAdminService(userRepo, true)
	user := seedUser(t, db, "alice", "reader")

	resp, err := svc.UpdateUserRole(testCtx, user.ID, "editor")
	if err != nil {
		t.Fatalf("promote failed: %v", err)
	}
	if resp.Role != "editor" {
		t.Fatalf("role = %q, want editor", resp.Role)
	}

	// The change persists.
	stored, err := userRepo.FindByID(testCtx, user.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.Role.Name != "editor" {
		t.Fatalf("stored role = %q, want editor", stored.Role.Name)
	}

	_, err = svc.UpdateUserRole(testCtx, 999, "editor")
	wantStatus(t, err, http.StatusNotFound)
}

func TestSetUserActive(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	svc := NewAdminService(userRepo, true)
	user := seedUser(t, db, "alice", "reader")

	resp, err := svc.SetUserActive(testCtx, user.ID, false)
	if err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if resp.Active {
		t.Fatalf("user should be inactive")
	}

	resp, err = svc.SetUserActive(testCtx, user.ID, true)
	if err != nil {
		t.Fatalf("reactivate failed: %v", err)
	}
	if !resp.Active {
		t.Fatalf("user should be active again")
	}
}

func TestDeleteUserCascade(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	svc := NewAdminService(userRepo, true)

	editor := seedUser(t, db, "editor", "editor")
	reader := seedUser(t, db, "reader", "reader")
	category := seedCategory(t, db, "go")
	post := seedPost(t, db, editor, category, model.PostStatusPublished)
	ownComment := seedComment(t, db, editor, post.ID, true)
	otherComment := seedComment(t, db, reader, post.ID, true)

	if err := svc.DeleteUser(testCtx, editor.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := userRepo.FindByID(testCtx, editor.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("user should be gone, got %v", err)
	}
	if _, err := postRepo.FindByID(testCtx, post.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("user's post should cascade, got %v", err)
	}
	if _, err := commentRepo.FindByID(testCtx, ownComment.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("user's comment should cascade, got %v", err)
	}
	// Another user's comment under the deleted post goes with the post.
	if _, err := commentRepo.FindByID(testCtx, otherComment.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("comment under deleted post should cascade, got %v", err)
	}
}

func TestDeleteUserWithoutCascade(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	svc := NewAdminService(userRepo, false)

	editor := seedUser(t, db, "editor", "editor")
	category := seedCategory(t, db, "go")
	post := seedPost(t, db, editor, category, model.PostStatusPublished)

	if err := svc.DeleteUser(testCtx, editor.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := userRepo.FindByID(testCtx, editor.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("user should be gone, got %v", err)
	}
	if _, err := postRepo.FindByID(testCtx, post.ID); err != nil {
		t.Fatalf("post should survive without cascade: %v", err)
	}
}
