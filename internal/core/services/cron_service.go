package services

import (
	"context"
	"log"
	"time"

	"biblio-backend/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs scheduled maintenance jobs
type CronService struct {
	cron      *cron.Cron
	tokenRepo repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB) *CronService {
	return &CronService{
		cron:      cron.New(),
		tokenRepo: repositories.NewRefreshTokenRepository(db),
	}
}

// Start schedules and launches all jobs
func (s *CronService) Start() {
	// Purge expired and revoked refresh tokens daily at 03:00
	if _, err := s.cron.AddFunc("0 3 * * *", s.purgeRefreshTokens); err != nil {
		log.Printf("Failed to schedule token purge: %v", err)
		return
	}

	s.cron.Start()
	log.Println("CronService started")
}

// Stop stops the scheduler, waiting for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("CronService stopped")
}

func (s *CronService) purgeRefreshTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.tokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("Refresh token purge failed: %v", err)
		return
	}
	log.Printf("Refresh token purge removed %d tokens", n)
}
