package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/barbaria/salon-booking/internal/core/domain"
	"github.com/barbaria/salon-booking/internal/core/ports"
)

const usersNS = "salon.users"

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create returns assigned id", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		u, err := repo.Create(context.Background(), &domain.User{
			Name:         "Ayse",
			Email:        "Ayse@Example.com",
			PasswordHash: "$2a$10$hash",
			Role:         domain.RoleCustomer,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := primitive.ObjectIDFromHex(u.ID); err != nil {
			t.Fatalf("expected object id, got %q", u.ID)
		}
		if u.Email != "ayse@example.com" {
			t.Fatalf("email not normalized: %q", u.Email)
		}
	})

	mt.Run("duplicate email maps to conflict", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: salon.users index: email_1",
		}))

		_, err := repo.Create(context.Background(), &domain.User{Email: "a@b.c", Role: domain.RoleCustomer})
		if !errors.Is(err, domain.ErrUserExists) || !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("expected ErrUserExists, got %v", err)
		}
	})

	mt.Run("find by email decodes document", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		oid := primitive.NewObjectID()
		created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "name", Value: "Mehmet"},
			{Key: "email", Value: "mehmet@example.com"},
			{Key: "password", Value: "$2a$10$hash"},
			{Key: "phone", Value: "555"},
			{Key: "role", Value: "staff"},
			{Key: "created_at", Value: created},
		}))

		u, err := repo.FindByEmail(context.Background(), " MEHMET@example.com")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if u.ID != oid.Hex() || u.Role != domain.RoleStaff || u.PasswordHash != "$2a$10$hash" {
			t.Fatalf("unexpected user: %+v", u)
		}
		if !u.CreatedAt.Equal(created) {
			t.Fatalf("created_at = %v", u.CreatedAt)
		}
	})

	mt.Run("missing user maps to not found", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	mt.Run("malformed id is rejected before querying", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)

		_, err := repo.FindByID(context.Background(), "not-an-object-id")
		if !errors.Is(err, domain.ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
		if err := repo.Delete(context.Background(), "xyz"); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	mt.Run("update role on missing user", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.UpdateRole(context.Background(), primitive.NewObjectID().Hex(), domain.RoleAdmin)
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	mt.Run("update profile returns new document", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: oid},
			{Key: "name", Value: "New Name"},
			{Key: "email", Value: "a@b.c"},
			{Key: "role", Value: "customer"},
		}}))

		name := "New Name"
		u, err := repo.UpdateProfile(context.Background(), oid.Hex(), ports.ProfileUpdate{Name: &name})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if u.Name != "New Name" || u.ID != oid.Hex() {
			t.Fatalf("unexpected user: %+v", u)
		}
	})

	mt.Run("delete missing user", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Delete(context.Background(), primitive.NewObjectID().Hex())
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}
