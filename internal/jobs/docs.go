// Package jobs provides scheduled background tasks for the table ordering
// service.
//
// Jobs are cron-based via github.com/robfig/cron/v3 and are managed through
// JobManager, which starts and stops them as a group:
//
//	jobManager := jobs.NewJobManager(cleanUpSessionsHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// SessionCleanupJob runs every minute and removes table sessions whose last
// activity is older than the configured time-to-live. A swept session takes
// its cart with it; the next scan of the table's QR code opens a fresh one.
package jobs
