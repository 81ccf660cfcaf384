package policy

import "testing"

func TestParse(t *testing.T) {
	for _, name := range []string{"reader", "editor", "admin"} {
		role, err := Parse(name)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", name, err)
		}
		if string(role) != name {
			t.Fatalf("Parse(%q) = %q", name, role)
		}
	}

	if _, err := Parse("superuser"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
	if _, err := Parse(""); err == nil {
		t.Fatalf("expected error for empty role")
	}
}

func TestRoleOrdering(t *testing.T) {
	if !(RoleReader.Rank() < RoleEditor.Rank() && RoleEditor.Rank() < RoleAdmin.Rank()) {
		t.Fatalf("role ranks out of order: reader=%d editor=%d admin=%d",
			RoleReader.Rank(), RoleEditor.Rank(), RoleAdmin.Rank())
	}

	if !RoleAdmin.AtLeast(RoleReader) {
		t.Fatalf("admin should satisfy a reader floor")
	}
	if RoleReader.AtLeast(RoleEditor) {
		t.Fatalf("reader should not satisfy an editor floor")
	}
	if !RoleEditor.AtLeast(RoleEditor) {
		t.Fatalf("a role should satisfy its own floor")
	}
	if Role("ghost").AtLeast(RoleReader) {
		t.Fatalf("unknown role should rank below reader")
	}
}

func TestAllow(t *testing.T) {
	cases := []struct {
		name    string
		role    Role
		userID  uint
		op      Operation
		ownerID uint
		want    bool
	}{
		{"reader cannot create posts", RoleReader, 1, CreatePost, 0, false},
		{"editor can create posts", RoleEditor, 1, CreatePost, 0, true},
		{"editor mutates own post", RoleEditor, 1, MutatePost, 1, true},
		{"editor cannot mutate another's post", RoleEditor, 1, MutatePost, 2, false},
		{"admin mutates any post", RoleAdmin, 1, MutatePost, 2, true},
		{"reader can comment", RoleReader, 1, CreateComment, 0, true},
		{"reader mutates own comment", RoleReader, 1, MutateComment, 1, true},
		{"reader cannot mutate another's comment", RoleReader, 1, MutateComment, 2, false},
		{"editor cannot mutate another's comment", RoleEditor, 1, MutateComment, 2, false},
		{"admin mutates any comment", RoleAdmin, 1, MutateComment, 2, true},
		{"editor cannot manage categories", RoleEditor, 1, MutateCategory, 0, false},
		{"admin manages categories", RoleAdmin, 1, MutateCategory, 0, true},
		{"editor cannot manage users", RoleEditor, 1, ManageUsers, 0, false},
	}

	for _, tc := range cases {
		if got := Allow(tc.role, tc.userID, tc.op, tc.ownerID); got != tc.want {
			t.Errorf("%s: Allow = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanSeeUnpublished(t *testing.T) {
	if CanSeeUnpublished(RoleReader) {
		t.Fatalf("reader must not see unpublished posts")
	}
	if !CanSeeUnpublished(RoleEditor) || !CanSeeUnpublished(RoleAdmin) {
		t.Fatalf("editor and admin must see unpublished posts")
	}
}
