package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/blessing250/Membership/internal/config"
	"github.com/blessing250/Membership/internal/db"
	"github.com/blessing250/Membership/internal/model"
	"github.com/blessing250/Membership/internal/repository"
)

const bcryptCost = 10

// seedMember describes one account to upsert.
type seedMember struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
	Status   model.MembershipStatus
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Member{}, &model.Payment{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	members := []seedMember{
		{
			Name:     "Administrator",
			Email:    getEnv("ADMIN_EMAIL", "admin@example.com"),
			Password: getEnv("ADMIN_PASSWORD", "admin123"),
			Role:     model.RoleAdmin,
			Status:   model.StatusPaid,
		},
		{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Password: "password123",
			Role:     model.RoleUser,
			Status:   model.StatusPaid,
		},
		{
			Name:     "John Smith",
			Email:    "john@example.com",
			Password: "password123",
			Role:     model.RoleUser,
			Status:   model.StatusUnpaid,
		},
	}

	memberRepo := repository.NewMemberRepository(gormDB)
	ctx := context.Background()

	log.Println("Seeding members into database...")
	seeded, updated, err := seedMembers(ctx, memberRepo, members)
	if err != nil {
		log.Fatalf("Failed to seed members: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New members created: %d", seeded)
	log.Printf("  - Existing members updated: %d", updated)
	log.Printf("  - Total members processed: %d", seeded+updated)
}

// seedMembers upserts members by email, creating missing accounts and
// realigning role and status on existing ones. Passwords are only set on
// create so a reseed never resets a live credential.
func seedMembers(ctx context.Context, repo repository.MemberRepository, members []seedMember) (seeded int, updated int, err error) {
	for _, m := range members {
		existing, err := repo.FindByEmail(ctx, m.Email)
		if err != nil && err != gorm.ErrRecordNotFound {
			return seeded, updated, err
		}

		if existing != nil {
			existing.Name = m.Name
			existing.Role = m.Role
			existing.MembershipStatus = m.Status
			if err := repo.Update(ctx, existing); err != nil {
				return seeded, updated, err
			}
			updated++
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(m.Password), bcryptCost)
		if err != nil {
			return seeded, updated, err
		}
		member := &model.Member{
			Name:             m.Name,
			Email:            m.Email,
			PasswordHash:     string(hash),
			Role:             m.Role,
			MembershipStatus: m.Status,
		}
		if err := repo.Create(ctx, member); err != nil {
			return seeded, updated, err
		}
		seeded++
	}

	return seeded, updated, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
