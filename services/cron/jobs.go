package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/studyshare/api/model"
)

const jobTimeout = 10 * time.Minute

// CleanupExpiredTokens removes blacklist rows whose tokens have expired on
// their own; they no longer need explicit revocation.
func (m *CronManager) CleanupExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := m.blacklist.CleanupExpiredTokens(ctx); err != nil {
		m.logJobError("cleanup_expired_tokens", err)
		return
	}

	m.logJobComplete("cleanup_expired_tokens", "expired blacklist entries removed")
}

// ReconcileViewCounts rewrites drifted view counters from the append-only
// view log.
func (m *CronManager) ReconcileViewCounts() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	fixed, err := m.views.ReconcileViewCounts(ctx)
	if err != nil {
		m.logJobError("reconcile_view_counts", err)
		return
	}

	m.logJobComplete("reconcile_view_counts", fmt.Sprintf("%d counters corrected", fixed))
}

// WarmRecommendationCache recomputes recommendations for every user who
// viewed a document in the last 24 hours, so their next dashboard load hits
// the cache.
func (m *CronManager) WarmRecommendationCache() {
	if m.recommendations == nil {
		m.logJobComplete("warm_recommendation_cache", "no cache configured, skipped")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	var userIDs []uint
	err := m.db.WithContext(ctx).
		Model(&model.DocumentView{}).
		Where("viewed_at > ?", time.Now().Add(-24*time.Hour)).
		Distinct().
		Pluck("user_id", &userIDs).
		Error
	if err != nil {
		m.logJobError("warm_recommendation_cache", err)
		return
	}

	warmed := 0
	for _, userID := range userIDs {
		if _, err := m.recommendations.RecommendCourses(ctx, userID, 3); err != nil {
			log.Printf("[CRON] recommendation warmup failed for user %d: %v", userID, err)
			continue
		}
		warmed++
	}

	m.logJobComplete("warm_recommendation_cache", fmt.Sprintf("%d users warmed", warmed))
}

// CleanupJobLogs prunes cron job log rows older than 30 days.
func (m *CronManager) CleanupJobLogs() {
	cutoff := time.Now().AddDate(0, 0, -30)

	result := m.db.
		Where("started_at < ?", cutoff).
		Delete(&model.CronJobLog{})
	if result.Error != nil {
		m.logJobError("cleanup_job_logs", result.Error)
		return
	}

	m.logJobComplete("cleanup_job_logs", fmt.Sprintf("%d old log rows removed", result.RowsAffected))
}
