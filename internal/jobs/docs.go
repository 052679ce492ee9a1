// Package jobs provides scheduled background tasks.
//
// Jobs use github.com/robfig/cron/v3 with second resolution. Background work
// never matches orders to couriers: couriers pick orders themselves.
//
// # Available Jobs
//
// NotificationRedeliveryJob republishes order status notifications that
// failed when the order changed. It runs every thirty seconds by default.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(dispatcher, config.RedeliverySchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
