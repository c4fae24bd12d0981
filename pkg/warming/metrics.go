package warming

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TasksSucceeded tracks completed warming tasks.
	TasksSucceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portcache_warming_tasks_succeeded_total",
			Help: "Total number of warming tasks that completed",
		},
	)

	// TasksFailed tracks failed warming tasks. Failures never abort a
	// warming run.
	TasksFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portcache_warming_tasks_failed_total",
			Help: "Total number of warming tasks that failed",
		},
	)
)
