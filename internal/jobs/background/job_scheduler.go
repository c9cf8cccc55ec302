package background

import (
	"context"
	"log"
	"time"

	"github.com/RahulRajeev-0/employee-management-system/internal/models"
	"github.com/RahulRajeev-0/employee-management-system/internal/repositories"
	"github.com/RahulRajeev-0/employee-management-system/internal/services"

	"github.com/go-co-op/gocron/v2"
)

const profilePicturePrefix = "profile_pics/"

// JobScheduler manages background maintenance jobs
type JobScheduler struct {
	scheduler   gocron.Scheduler
	profileRepo repositories.ProfileRepository
	mediaSvc    services.MediaService
	logger      *log.Logger
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(profileRepo repositories.ProfileRepository, mediaSvc services.MediaService, logger *log.Logger) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:   scheduler,
		profileRepo: profileRepo,
		mediaSvc:    mediaSvc,
		logger:      logger,
	}

	if err := js.registerJobs(); err != nil {
		return nil, err
	}
	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	js.logger.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	js.logger.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	// Orphaned profile-picture sweep - daily
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.sweepOrphanedPictures, context.Background()),
		gocron.WithName("orphaned-picture-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

// sweepOrphanedPictures removes uploaded picture objects no profile row
// references anymore. Replaced pictures are not deleted inline during the
// update, so this sweep reclaims them.
func (js *JobScheduler) sweepOrphanedPictures(ctx context.Context) {
	referenced, err := js.profileRepo.ListPictures(ctx)
	if err != nil {
		js.logger.Printf("Picture sweep: failed to list referenced pictures: %v", err)
		return
	}

	inUse := make(map[string]bool, len(referenced)+1)
	inUse[models.DefaultProfilePicture] = true
	for _, name := range referenced {
		inUse[name] = true
	}

	objects, err := js.mediaSvc.ListObjects(ctx, profilePicturePrefix)
	if err != nil {
		js.logger.Printf("Picture sweep: failed to list stored objects: %v", err)
		return
	}

	removed := 0
	for _, object := range objects {
		if inUse[object] {
			continue
		}
		if err := js.mediaSvc.Remove(ctx, object); err != nil {
			js.logger.Printf("Picture sweep: failed to remove %s: %v", object, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		js.logger.Printf("Picture sweep: removed %d orphaned objects", removed)
	}
}
