// Seeds the database with an admin account and a starter catalog. Safe to
// run repeatedly: the admin is created only when absent and sweets only
// when the catalog is empty.
package main

import (
	"context"
	"log"

	"github.com/NagbhushanPai/Incubyte-Project/internal/config"
	"github.com/NagbhushanPai/Incubyte-Project/internal/db"
	"github.com/NagbhushanPai/Incubyte-Project/internal/hash"
	"github.com/NagbhushanPai/Incubyte-Project/internal/models"
	"github.com/NagbhushanPai/Incubyte-Project/internal/repo"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	ctx := context.Background()
	gormDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	r := &repo.GormRepo{DB: gormDB}

	exists, err := r.UserExistsByEmail(ctx, cfg.SeedAdminEmail)
	if err != nil {
		log.Fatalf("admin lookup error: %v", err)
	}
	if !exists {
		pwHash, err := hash.HashPassword(cfg.SeedAdminPassword)
		if err != nil {
			log.Fatalf("hash error: %v", err)
		}
		admin := models.User{
			Email:        cfg.SeedAdminEmail,
			PasswordHash: pwHash,
			Role:         models.RoleAdmin,
		}
		if err := r.CreateUser(ctx, &admin); err != nil {
			log.Fatalf("admin create error: %v", err)
		}
		log.Printf("admin user created: %s", cfg.SeedAdminEmail)
	}

	var count int64
	if err := gormDB.WithContext(ctx).Model(&models.Sweet{}).Count(&count).Error; err != nil {
		log.Fatalf("sweet count error: %v", err)
	}
	if count == 0 {
		sweets := []models.Sweet{
			{Name: "Chocolate Bar", Category: "Chocolate", Price: 1.99, Quantity: 50},
			{Name: "Gummy Bears", Category: "Gummies", Price: 0.99, Quantity: 100},
			{Name: "Sour Worms", Category: "Gummies", Price: 1.49, Quantity: 30},
		}
		for i := range sweets {
			if _, err := r.CreateSweet(ctx, &sweets[i]); err != nil {
				log.Fatalf("sweet seed error: %v", err)
			}
		}
		log.Printf("seeded %d sweets", len(sweets))
	}
}
