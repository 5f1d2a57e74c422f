package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"trackdeck/internal/repositories"
	"trackdeck/internal/storage"
)

// RetentionDays is how long sessions-category archives and orphaned
// membership rows are kept before the scheduled sweep removes them.
const RetentionDays = 730

type RetentionServiceInterface interface {
	// Run executes one full sweep; it is invoked daily by the scheduler
	// and is safe to run concurrently with normal traffic.
	Run(ctx context.Context) error
}

type RetentionService struct {
	fileRepo       repositories.FileRepository
	membershipRepo repositories.MembershipRepository
	store          storage.ObjectStore
}

func NewRetentionService(
	fileRepo repositories.FileRepository,
	membershipRepo repositories.MembershipRepository,
	store storage.ObjectStore,
) RetentionServiceInterface {
	return &RetentionService{
		fileRepo:       fileRepo,
		membershipRepo: membershipRepo,
		store:          store,
	}
}

func (s *RetentionService) Run(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -RetentionDays).Unix()

	if err := s.sweepSessionFiles(ctx, cutoff); err != nil {
		return err
	}
	return s.pruneOrphanedMemberships(ctx, cutoff)
}

// sweepSessionFiles removes aged session archives from the object store
// first, then from metadata. A blob whose delete fails keeps its row so
// the next sweep retries; a row deleted without its blob would orphan
// the object forever.
func (s *RetentionService) sweepSessionFiles(ctx context.Context, cutoff int64) error {
	files, err := s.fileRepo.ListSessionsOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("retention: aged file listing failed: %v", err)
		return err
	}
	if len(files) == 0 {
		return nil
	}

	deletable := make([]uuid.UUID, 0, len(files))
	for i := range files {
		if err := s.store.Delete(ctx, files[i].StoragePath); err != nil {
			log.Printf("retention: blob delete for %s failed, keeping row: %v", files[i].StoragePath, err)
			continue
		}
		deletable = append(deletable, files[i].ID)
	}

	if err := s.fileRepo.DeleteByIds(ctx, deletable); err != nil {
		log.Printf("retention: metadata delete failed: %v", err)
		return err
	}

	log.Printf("retention: removed %d of %d aged session files", len(deletable), len(files))
	return nil
}

func (s *RetentionService) pruneOrphanedMemberships(ctx context.Context, cutoff int64) error {
	pruned, err := s.membershipRepo.DeleteOrphanedOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("retention: orphaned membership prune failed: %v", err)
		return err
	}
	if pruned > 0 {
		log.Printf("retention: pruned %d orphaned membership rows", pruned)
	}
	return nil
}
