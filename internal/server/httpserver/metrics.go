package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters deliberately carry no username label: login failures stay
// anonymous in the metrics the same way they stay generic in the UI.
var (
	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riskboard_logins_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	signupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riskboard_signups_total",
			Help: "Total number of signup attempts by result",
		},
		[]string{"result"},
	)

	passwordChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riskboard_password_changes_total",
			Help: "Total number of password change attempts by result",
		},
		[]string{"result"},
	)

	accountDeletionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "riskboard_account_deletions_total",
			Help: "Total number of deleted accounts",
		},
	)
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)
