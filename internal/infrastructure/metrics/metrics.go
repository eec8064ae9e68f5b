package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	TransactionsPosted  *prometheus.CounterVec
	TransactionAmount   *prometheus.HistogramVec
	TransactionDuration *prometheus.HistogramVec
	TransactionErrors   *prometheus.CounterVec

	// Account metrics
	AccountsOpened       prometheus.Counter
	AccountStatusChanges *prometheus.CounterVec

	// Loan metrics
	LoansApplied       prometheus.Counter
	LoanDecisions      *prometheus.CounterVec
	LoanDisbursedTotal prometheus.Counter

	// Fixed deposit metrics
	FixedDepositsCreated  prometheus.Counter
	FixedDepositPrincipal prometheus.Counter

	// User metrics
	UsersRegistered prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec

	// Database metrics
	DBRetries *prometheus.CounterVec

	// Outbox metrics
	OutboxPublished *prometheus.CounterVec
	OutboxBacklog   prometheus.Gauge
	OutboxPurged    prometheus.Counter

	// Report cache metrics
	ReportCacheLookups *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics on the default registerer.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates all metrics and registers them on reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Ledger metrics
		TransactionsPosted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketbank_transactions_posted_total",
				Help: "Total number of ledger rows written by type",
			},
			[]string{"type"},
		),
		TransactionAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pocketbank_transaction_amount",
				Help:    "Posted transaction amounts",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"type"},
		),
		TransactionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pocketbank_transaction_duration_seconds",
				Help:    "Duration of balance-mutating operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		TransactionErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketbank_transaction_errors_total",
				Help: "Total number of rejected or failed operations by type",
			},
			[]string{"operation", "error_type"},
		),

		// Account metrics
		AccountsOpened: factory.NewCounter(prometheus.CounterOpts{
			Name: "pocketbank_accounts_opened_total",
			Help: "Total number of accounts opened",
		}),
		AccountStatusChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketbank_account_status_changes_total",
				Help: "Total account status transitions by target status",
			},
			[]string{"status"},
		),

		// Loan metrics
		LoansApplied: factory.NewCounter(prometheus.CounterOpts{
			Name: "pocketbank_loans_applied_total",
			Help: "Total number of loan applications",
		}),
		LoanDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketbank_loan_decisions_total",
				Help: "Total loan decisions by resulting status",
			},
			[]string{"status"},
		),
		LoanDisbursedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "pocketbank_loan_disbursed_amount_total",
			Help: "Sum of disbursed loan principal",
		}),

		// Fixed deposit metrics
		FixedDepositsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "pocketbank_fixed_deposits_created_total",
			Help: "Total number of fixed deposits opened",
		}),
		FixedDepositPrincipal: factory.NewCounter(prometheus.CounterOpts{
			Name: "pocketbank_fixed_deposit_principal_total",
			Help: "Sum of principal moved into fixed deposits",
		}),

		// User metrics
		UsersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "pocketbank_users_registered_total",
			Help: "Total number of registered customers",
		}),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketbank_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pocketbank_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Rate limiting metrics
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketbank_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),

		// Audit metrics
		AuditLogsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketbank_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),

		// Database metrics
		DBRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketbank_db_retries_total",
				Help: "Transactions rerun after postgres aborted them, by SQLSTATE",
			},
			[]string{"sqlstate"},
		),

		// Outbox metrics
		OutboxPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketbank_outbox_events_total",
				Help: "Outbox events handed to the publisher by result",
			},
			[]string{"result"},
		),
		OutboxBacklog: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "pocketbank_outbox_backlog",
				Help: "Outbox events waiting to be published",
			},
		),
		OutboxPurged: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pocketbank_outbox_purged_total",
				Help: "Published outbox events removed after the retention period",
			},
		),

		// Report cache metrics
		ReportCacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketbank_report_cache_lookups_total",
				Help: "Admin summary cache lookups by result",
			},
			[]string{"result"},
		),
	}
}
