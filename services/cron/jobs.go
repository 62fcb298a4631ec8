package cron

import (
	"fmt"
	"time"

	"github.com/campusbase/academic-records-api/model"
)

// RefreshUniversityStudentCounts reconciles each university's
// denormalized student headcount with the actual number of active
// student accounts attached to it. The field is advisory; listings
// never derive it at request time.
func (m *CronManager) RefreshUniversityStudentCounts() {
	jobName := "refresh_university_students"

	var universities []model.University
	if err := m.db.Select("id", "students").Find(&universities).Error; err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to query universities: %w", err))
		return
	}

	updated := 0
	for _, university := range universities {
		var count int64
		err := m.db.Model(&model.User{}).
			Where("university_id = ? AND role = ? AND is_active = ?", university.ID, model.RoleStudent, true).
			Count(&count).Error
		if err != nil {
			m.logJobError(jobName, fmt.Errorf("failed to count students for university %d: %w", university.ID, err))
			return
		}

		if int(count) == university.Students {
			continue
		}

		err = m.db.Model(&model.University{}).
			Where("id = ?", university.ID).
			Update("students", int(count)).Error
		if err != nil {
			m.logJobError(jobName, fmt.Errorf("failed to update university %d: %w", university.ID, err))
			return
		}
		updated++
	}

	m.logJobComplete(jobName, fmt.Sprintf("Refreshed %d of %d universities", updated, len(universities)))
}

// CleanupOldCronLogs deletes cron execution logs older than 30 days.
func (m *CronManager) CleanupOldCronLogs() {
	jobName := "cleanup_cron_logs"

	cutoff := time.Now().AddDate(0, 0, -30)
	result := m.db.Where("started_at < ?", cutoff).Delete(&model.CronJobLog{})
	if result.Error != nil {
		m.logJobError(jobName, fmt.Errorf("failed to delete old logs: %w", result.Error))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Deleted %d old log entries", result.RowsAffected))
}
