package userstore

import (
	"errors"
	"testing"

	"github.com/edunaija/edunaija/internal/app/system/indexes"
	"github.com/edunaija/edunaija/internal/app/system/status"
	"github.com/edunaija/edunaija/internal/domain/models"
	"github.com/edunaija/edunaija/internal/testutil"
	"go.uber.org/zap"
)

func TestCreatePasswordUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := New(db)

	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	u, err := s.Create(ctx, models.User{
		FullName:     "  Adaeze Obi  ",
		Email:        "Adaeze.Obi@Example.COM",
		AuthMethod:   models.AuthPassword,
		PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.FullName != "Adaeze Obi" {
		t.Errorf("FullName = %q", u.FullName)
	}
	if u.Email != "adaeze.obi@example.com" {
		t.Errorf("Email = %q", u.Email)
	}
	if u.Status != status.Active {
		t.Errorf("Status = %q, want active", u.Status)
	}
	if u.CreatedAt.IsZero() || u.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
	if !CheckPassword(u.PasswordHash, "correct horse battery staple") {
		t.Error("stored hash does not verify")
	}
	if CheckPassword(u.PasswordHash, "wrong password") {
		t.Error("wrong password verified")
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	s := New(db)

	hash, _ := HashPassword("pw-one-two-three")
	base := models.User{
		FullName:     "First User",
		Email:        "taken@example.com",
		AuthMethod:   models.AuthPassword,
		PasswordHash: hash,
	}
	if _, err := s.Create(ctx, base); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	base.FullName = "Second User"
	base.Email = "TAKEN@example.com"
	if _, err := s.Create(ctx, base); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("second Create err = %v, want ErrDuplicateEmail", err)
	}
}

func TestCreateValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := New(db)

	cases := []struct {
		name string
		u    models.User
	}{
		{"unknown auth method", models.User{FullName: "X", Email: "x@example.com", AuthMethod: "magic"}},
		{"password without hash", models.User{FullName: "X", Email: "x@example.com", AuthMethod: models.AuthPassword}},
		{"google without subject", models.User{FullName: "X", Email: "x@example.com", AuthMethod: models.AuthGoogle}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.Create(ctx, tc.u); err == nil {
				t.Fatal("Create succeeded, want error")
			}
		})
	}
}

func TestCreateNormalizesStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := New(db)

	hash, _ := HashPassword("pw-one-two-three")
	u, err := s.Create(ctx, models.User{
		FullName:     "Ngozi Okafor",
		Email:        "ngozi@example.com",
		AuthMethod:   models.AuthPassword,
		PasswordHash: hash,
		Status:       " Active ",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Status != status.Active {
		t.Errorf("status = %q, want %q", u.Status, status.Active)
	}

	u.Email = "ngozi2@example.com"
	u.Status = "frozen"
	if _, err := s.Create(ctx, u); err == nil {
		t.Fatal("Create with unknown status succeeded, want error")
	}
}

func TestLookupsAndLinkGoogle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := New(db)

	sub := "google-subject-123"
	u, err := s.Create(ctx, models.User{
		FullName:   "Chinedu Eze",
		Email:      "chinedu@example.com",
		AuthMethod: models.AuthGoogle,
		GoogleID:   &sub,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	byID, err := s.GetByID(ctx, u.ID)
	if err != nil || byID.Email != "chinedu@example.com" {
		t.Fatalf("GetByID = %+v, %v", byID, err)
	}
	byEmail, err := s.GetByEmail(ctx, "CHINEDU@example.com")
	if err != nil || byEmail.ID != u.ID {
		t.Fatalf("GetByEmail = %+v, %v", byEmail, err)
	}
	byGoogle, err := s.GetByGoogleID(ctx, sub)
	if err != nil || byGoogle.ID != u.ID {
		t.Fatalf("GetByGoogleID = %+v, %v", byGoogle, err)
	}
	if _, err := s.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetByEmail missing err = %v, want ErrNotFound", err)
	}

	hash, _ := HashPassword("pw-for-linking")
	pwUser, err := s.Create(ctx, models.User{
		FullName:     "Bola Ade",
		Email:        "bola@example.com",
		AuthMethod:   models.AuthPassword,
		PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("Create password user: %v", err)
	}
	if err := s.LinkGoogleID(ctx, pwUser.ID, "google-subject-456"); err != nil {
		t.Fatalf("LinkGoogleID: %v", err)
	}
	linked, err := s.GetByGoogleID(ctx, "google-subject-456")
	if err != nil || linked.ID != pwUser.ID {
		t.Fatalf("GetByGoogleID after link = %+v, %v", linked, err)
	}
}
