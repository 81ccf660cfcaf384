package service

import (
	"net/http"
	"testing"

	"gorm.io/gorm"

	"miniblog/internal/dto"
	"miniblog/internal/model"
	"miniblog/internal/repository"
)

func newCategoryFixture(t *testing.T) (CategoryService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	categoryRepo := repository.NewCategoryRepository(db)
	postRepo := repository.NewPostRepository(db)
	return NewCategoryService(categoryRepo, postRepo), db
}

func TestCategoryCRUD(t *testing.T) {
	svc, _ := newCategoryFixture(t)

	created, err := svc.CreateCategory(testCtx, dto.CreateCategoryRequest{
		Name:        "go",
		Description: "all things go",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := svc.GetCategoryByID(testCtx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "go" || got.Description != "all things go" {
		t.Fatalf("unexpected category: %+v", got)
	}

	newDesc := "everything golang"
	updated, err := svc.UpdateCategory(testCtx, created.ID, dto.UpdateCategoryRequest{Description: &newDesc})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "go" {
		t.Fatalf("name changed unexpectedly: %q", updated.Name)
	}
	if updated.Description != newDesc {
		t.Fatalf("description = %q, want %q", updated.Description, newDesc)
	}

	all, err := svc.GetAllCategories(testCtx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("list returned %d categories, want 1", len(all))
	}

	if err := svc.DeleteCategory(testCtx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	_, err = svc.GetCategoryByID(testCtx, created.ID)
	wantStatus(t, err, http.StatusNotFound)
}

func TestCategoryNameConflicts(t *testing.T) {
	svc, _ := newCategoryFixture(t)

	if _, err := svc.CreateCategory(testCtx, dto.CreateCategoryRequest{Name: "go"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	other, err := svc.CreateCategory(testCtx, dto.CreateCategoryRequest{Name: "rust"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.CreateCategory(testCtx, dto.CreateCategoryRequest{Name: "go"})
	wantStatus(t, err, http.StatusConflict)

	taken := "go"
	_, err = svc.UpdateCategory(testCtx, other.ID, dto.UpdateCategoryRequest{Name: &taken})
	wantStatus(t, err, http.StatusConflict)
}

func TestDeleteCategoryWithPosts(t *testing.T) {
	svc, db := newCategoryFixture(t)
	editor := seedUser(t, db, "editor", "editor")
	category := seedCategory(t, db, "go")
	seedPost(t, db, editor, category, model.PostStatusPublished)

	err := svc.DeleteCategory(testCtx, category.ID)
	wantStatus(t, err, http.StatusConflict)
}
