package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	usersScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "liquidation_bot_users_scanned_total",
		Help: "Borrower addresses fetched from the subgraph.",
	})
	liquidatableUsers = promauto.NewCounter(prometheus.CounterOpts{
		Name: "liquidation_bot_liquidatable_users_total",
		Help: "Users found with a health factor below one.",
	})
	liquidationsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "liquidation_bot_liquidations_submitted_total",
		Help: "Liquidations handed to the execution handler without error.",
	})
	liquidationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "liquidation_bot_liquidation_errors_total",
		Help: "Failed plan computations and failed submissions.",
	})
)
