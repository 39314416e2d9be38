package config

import (
	"log"

	"biblio-backend/internal/adapters/persistence/models"
	"biblio-backend/internal/core/domain"
	"biblio-backend/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("Admin seeder skipped: %v", err)
	}
	if err := s.seedCatalog(); err != nil {
		log.Printf("Catalog seeder skipped: %v", err)
	}

	log.Println("Database seeding completed")
	return nil
}

// seedAdminUser seeds the default admin account.
// Development only; production admins are created through a secure process.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return nil // Users already exist
	}

	hashed, err := password.Hash("password123")
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:     "admin@biblio.com",
		Password:  hashed,
		FirstName: "Systeme",
		LastName:  "Admin",
		Roles:     []string{string(domain.RoleAdmin)},
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Admin user created: %s", admin.Email)
	return nil
}

// seedCatalog seeds a small starter catalog
func (s *Seeder) seedCatalog() error {
	var count int64
	s.db.Model(&models.Book{}).Count(&count)
	if count > 0 {
		return nil // Catalog already seeded
	}

	classic := "Un grand classique."
	books := []models.Book{
		{Title: "Le Petit Prince", Author: "Antoine de Saint-Exupéry", ISBN: strPtr("978-0156012195"), Description: &classic, Available: true},
		{Title: "1984", Author: "George Orwell", ISBN: strPtr("978-0451524935"), Description: &classic, Available: true},
		{Title: "Harry Potter", Author: "J.K. Rowling", ISBN: strPtr("978-2070541270"), Description: &classic, Available: true},
		{Title: "L'Étranger", Author: "Albert Camus", ISBN: strPtr("978-0679720201"), Description: &classic, Available: true},
	}

	if err := s.db.Create(&books).Error; err != nil {
		return err
	}

	log.Printf("Catalog seeded: %d books", len(books))
	return nil
}

func strPtr(s string) *string {
	return &s
}
