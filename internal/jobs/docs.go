// Package jobs provides scheduled background tasks for the maintenance service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level specs.
//
// # Available Jobs
//
// 1. OrderBacklogJob - counts orders per status and publishes the counts as a gauge
//
// # Usage
//
//	jobManager := jobs.NewJobManager(countHandler, recorder, cfg.BacklogJobSpec, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and the next tick tries again. An invalid spec fails StartAll.
package jobs
