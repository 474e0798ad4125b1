package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hotel-management/config"
	"github.com/oksasatya/hotel-management/internal/domain/entity"
	repo "github.com/oksasatya/hotel-management/internal/domain/repository"
	pginfra "github.com/oksasatya/hotel-management/internal/infrastructure/postgres"
	"github.com/oksasatya/hotel-management/pkg/helpers"
)

type seedUser struct {
	email, name string
	role        entity.Role
	perms       []string
}

var users = []seedUser{
	{"superadmin@hotel.local", "Super Admin", entity.RoleSuperAdmin, nil},
	{"frontdesk@hotel.local", "Front Desk", entity.RoleAdmin, []string{entity.PermManageBookings, entity.PermManagePayments, entity.PermManageHousekeeping}},
	{"guest@hotel.local", "Demo Guest", entity.RoleUser, nil},
}

var rooms = []entity.Room{
	{Number: "101", Type: entity.RoomSingle, Price: 8900, Capacity: 1, Amenities: []string{"wifi", "tv"}, Description: "Quiet single room facing the courtyard."},
	{Number: "102", Type: entity.RoomDouble, Price: 12900, Capacity: 2, Amenities: []string{"wifi", "tv", "minibar"}},
	{Number: "201", Type: entity.RoomFamily, Price: 18900, Capacity: 4, Amenities: []string{"wifi", "tv", "kitchenette"}},
	{Number: "301", Type: entity.RoomDeluxe, Price: 24900, Capacity: 2, Amenities: []string{"wifi", "tv", "minibar", "bathtub"}},
	{Number: "401", Type: entity.RoomSuite, Price: 39900, Capacity: 3, Amenities: []string{"wifi", "tv", "minibar", "bathtub", "balcony"}, Description: "Top floor suite with city views."},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "Password123"
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	userRepo := pginfra.NewUserRepository(pool)
	for _, s := range users {
		u, err := userRepo.GetByEmail(ctx, s.email)
		switch {
		case errors.Is(err, repo.ErrNotFound):
			u = &entity.User{Email: s.email, Password: hash, Name: s.name, Role: s.role, IsVerified: true}
			if err := userRepo.Create(ctx, u); err != nil {
				log.Fatalf("failed to seed user %s: %v", s.email, err)
			}
		case err != nil:
			log.Fatalf("failed to look up %s: %v", s.email, err)
		default:
			if err := userRepo.UpdateRole(ctx, u.ID, s.role); err != nil {
				log.Fatalf("failed to set role of %s: %v", s.email, err)
			}
		}
		if len(s.perms) > 0 {
			if err := userRepo.UpdatePermissions(ctx, u.ID, s.perms); err != nil {
				log.Fatalf("failed to set permissions of %s: %v", s.email, err)
			}
		}
		logger.WithFields(logrus.Fields{"id": u.ID, "email": s.email, "role": s.role}).Info("seeded user")
	}

	roomRepo := pginfra.NewRoomRepository(pool)
	for i := range rooms {
		r := rooms[i]
		r.Available = true
		r.HousekeepingStatus = entity.HKClean
		err := roomRepo.Create(ctx, &r)
		if errors.Is(err, repo.ErrDuplicate) {
			logger.WithField("number", r.Number).Info("room exists, skipped")
			continue
		}
		if err != nil {
			log.Fatalf("failed to seed room %s: %v", r.Number, err)
		}
		logger.WithFields(logrus.Fields{"id": r.ID, "number": r.Number, "type": r.Type}).Info("seeded room")
	}
	logger.WithField("password", password).Info("seed complete")
}
