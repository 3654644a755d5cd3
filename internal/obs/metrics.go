// Package obs exposes the portal's prometheus counters, served on /metrics.
package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Logins = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gradportal_logins_total",
		Help: "Successful portal logins.",
	})
	LoginFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gradportal_login_failures_total",
		Help: "Rejected login attempts.",
	})
	RoleSwitches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gradportal_role_switches_total",
		Help: "Role switches on the active session.",
	})
	UsersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gradportal_directory_users_created_total",
		Help: "Directory entries created through the portal.",
	})
	RoleSeeds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gradportal_directory_role_seeds_total",
		Help: "Times the default role set was seeded into an empty store.",
	})
)
