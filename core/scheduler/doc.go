// Package scheduler runs periodic maintenance jobs, such as the full reconcile
// pass, on cron schedules.
package scheduler
