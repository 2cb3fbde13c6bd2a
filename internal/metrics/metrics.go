// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vcom"

var (
	// RPCDuration observes handler latency per procedure and result code.
	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_duration_seconds",
		Help:      "Duration of RPC calls by procedure and code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure", "code"})

	// SignIns counts sign-ins, split by whether the user was created.
	SignIns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Sign-ins by outcome (existing or created).",
	}, []string{"outcome"})

	// RecordsCreated counts outreach records added.
	RecordsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Outreach records created.",
	})

	// RecordsDeleted counts outreach records removed.
	RecordsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_deleted_total",
		Help:      "Outreach records deleted.",
	})

	// StatusChanges counts status transitions by target status.
	StatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_changes_total",
		Help:      "Record status transitions by new status.",
	}, []string{"status"})

	// SlotWrites counts durability writes by slot and result.
	SlotWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slot_writes_total",
		Help:      "Persistence slot writes by slot and result (ok or error).",
	}, []string{"slot", "result"})

	// SnapshotEntriesDropped counts stored entries discarded on load.
	SnapshotEntriesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_entries_dropped_total",
		Help:      "Persisted entries discarded on load because they were malformed.",
	}, []string{"slot"})

	// MentorExchanges counts mentor chat exchanges by result.
	MentorExchanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mentor_exchanges_total",
		Help:      "Mentor chat exchanges by result (ok, error, canceled).",
	}, []string{"result"})
)
