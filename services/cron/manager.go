package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/studyshare/api/model"
	authutil "github.com/studyshare/api/utils/auth"
	"gorm.io/gorm"

	"github.com/studyshare/api/services"
)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron            *cron.Cron
	db              *gorm.DB
	views           *services.ViewService
	recommendations *services.RecommendationService
	blacklist       *authutil.BlacklistService
}

// NewCronManager creates a new cron manager. recommendations may be nil when
// no cache is configured; the warmup job then does nothing.
func NewCronManager(db *gorm.DB, views *services.ViewService, recommendations *services.RecommendationService) *CronManager {
	return &CronManager{
		cron:            cron.New(cron.WithSeconds()),
		db:              db,
		views:           views,
		recommendations: recommendations,
		blacklist:       authutil.NewBlacklistService(db),
	}
}

// Start registers and starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs and waits for running jobs to finish
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// Every hour: drop blacklist entries for tokens that expired anyway
	_, err := m.cron.AddFunc("0 0 * * * *", func() {
		m.logJobStart("cleanup_expired_tokens")
		m.CleanupExpiredTokens()
	})
	if err != nil {
		return err
	}

	// Daily at 3 AM: reconcile view counters against the event log
	_, err = m.cron.AddFunc("0 0 3 * * *", func() {
		m.logJobStart("reconcile_view_counts")
		m.ReconcileViewCounts()
	})
	if err != nil {
		return err
	}

	// Every 6 hours: refresh cached recommendations for active users
	_, err = m.cron.AddFunc("0 0 */6 * * *", func() {
		m.logJobStart("warm_recommendation_cache")
		m.WarmRecommendationCache()
	})
	if err != nil {
		return err
	}

	// Daily at 4 AM: prune old cron job logs
	_, err = m.cron.AddFunc("0 0 4 * * *", func() {
		m.logJobStart("cleanup_job_logs")
		m.CleanupJobLogs()
	})
	if err != nil {
		return err
	}

	log.Println("All cron jobs registered successfully")
	return nil
}

// logJobStart logs the start of a cron job
func (m *CronManager) logJobStart(jobName string) {
	log.Printf("[CRON] Starting job: %s at %s", jobName, time.Now().Format(time.RFC3339))

	cronLog := model.CronJobLog{
		JobName:   jobName,
		Status:    "running",
		StartedAt: time.Now(),
	}
	m.db.Create(&cronLog)
}

// logJobComplete logs successful completion of a cron job
func (m *CronManager) logJobComplete(jobName string, message string) {
	log.Printf("[CRON] Completed job: %s - %s", jobName, message)

	m.db.Model(&model.CronJobLog{}).
		Where("job_name = ? AND status = ?", jobName, "running").
		Order("started_at DESC").
		Limit(1).
		Updates(map[string]interface{}{
			"status":       "completed",
			"completed_at": time.Now(),
			"message":      message,
		})
}

// logJobError logs a cron job error
func (m *CronManager) logJobError(jobName string, err error) {
	log.Printf("[CRON] Error in job: %s - %v", jobName, err)

	m.db.Model(&model.CronJobLog{}).
		Where("job_name = ? AND status = ?", jobName, "running").
		Order("started_at DESC").
		Limit(1).
		Updates(map[string]interface{}{
			"status":       "failed",
			"completed_at": time.Now(),
			"message":      err.Error(),
		})
}
