package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/openorigin/traceability/internal/traceability/domain"
	"github.com/openorigin/traceability/internal/traceability/usecase/command"
	"github.com/openorigin/traceability/internal/traceability/usecase/query"
	"github.com/openorigin/traceability/kafka"
	"github.com/openorigin/traceability/pkg/logger"
)

// TraceabilityHandler handles HTTP requests for the traceability service
// using CQRS pattern
type TraceabilityHandler struct {
	// Command handlers
	createActorHandler         *command.CreateActorHandler
	updateActorHandler         *command.UpdateActorHandler
	deleteActorHandler         *command.DeleteActorHandler
	createItemHandler          *command.CreateItemHandler
	updateItemHandler          *command.UpdateItemHandler
	deleteItemHandler          *command.DeleteItemHandler
	createLocationHandler      *command.CreateLocationHandler
	updateLocationHandler      *command.UpdateLocationHandler
	deleteLocationHandler      *command.DeleteLocationHandler
	createProcessHandler       *command.CreateProcessHandler
	updateProcessHandler       *command.UpdateProcessHandler
	deleteProcessHandler       *command.DeleteProcessHandler
	createBatchHandler         *command.CreateBatchHandler
	updateBatchStatusHandler   *command.UpdateBatchStatusHandler
	updateBatchQuantityHandler *command.UpdateBatchQuantityHandler
	recordProcessingHandler    *command.RecordProcessingHandler
	splitBatchHandler          *command.SplitBatchHandler
	mergeBatchesHandler        *command.MergeBatchesHandler
	disposeBatchHandler        *command.DisposeBatchHandler
	recordHarvestHandler       *command.RecordHarvestHandler
	recordEventHandler         *command.RecordEventHandler
	updateEventHandler         *command.UpdateEventHandler

	// Query handlers
	getActorHandler      *query.GetActorHandler
	listActorsHandler    *query.ListActorsHandler
	getItemHandler       *query.GetItemHandler
	listItemsHandler     *query.ListItemsHandler
	getLocationHandler   *query.GetLocationHandler
	listLocationsHandler *query.ListLocationsHandler
	getProcessHandler    *query.GetProcessHandler
	listProcessesHandler *query.ListProcessesHandler
	getBatchHandler      *query.GetBatchHandler
	listBatchesHandler   *query.ListBatchesHandler
	getEventHandler      *query.GetEventHandler
	listEventsHandler    *query.ListEventsHandler
	traceBatchHandler    *query.TraceBatchHandler
	traceGraphHandler    *query.TraceGraphHandler
	itemSummaryHandler   *query.ItemSummaryHandler
	recallReportHandler  *query.RecallReportHandler

	kafkaPublisher *kafka.Publisher
	cache          *redis.Client
	cacheTTL       time.Duration

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
	eventsRecorded *prometheus.CounterVec
	recallReports  prometheus.Counter
}

// NewTraceabilityHandler creates a new traceability handler with CQRS pattern
// (manual DI for backwards compatibility). The Kafka publisher and Redis
// client may be nil; publishing and caching are skipped when they are.
func NewTraceabilityHandler(
	actors domain.ActorRepository,
	items domain.ItemRepository,
	locations domain.LocationRepository,
	processes domain.ProcessRepository,
	batches domain.BatchRepository,
	events domain.EventRepository,
	tx domain.TxManager,
	kafkaPublisher *kafka.Publisher,
	cache *redis.Client,
) *TraceabilityHandler {
	trace := query.NewTraceBatchHandler(batches, events)

	return newTraceabilityHandler(
		command.NewCreateActorHandler(actors),
		command.NewUpdateActorHandler(actors),
		command.NewDeleteActorHandler(actors, items, batches, processes, events, locations, tx),
		command.NewCreateItemHandler(items),
		command.NewUpdateItemHandler(items),
		command.NewDeleteItemHandler(items),
		command.NewCreateLocationHandler(locations),
		command.NewUpdateLocationHandler(locations),
		command.NewDeleteLocationHandler(locations),
		command.NewCreateProcessHandler(processes),
		command.NewUpdateProcessHandler(processes),
		command.NewDeleteProcessHandler(processes),
		command.NewCreateBatchHandler(batches),
		command.NewUpdateBatchStatusHandler(batches),
		command.NewUpdateBatchQuantityHandler(batches),
		command.NewRecordProcessingHandler(batches, events, tx),
		command.NewSplitBatchHandler(batches, events, tx),
		command.NewMergeBatchesHandler(batches, events, tx),
		command.NewDisposeBatchHandler(batches, events, tx),
		command.NewRecordHarvestHandler(batches, events, tx),
		command.NewRecordEventHandler(events, tx),
		command.NewUpdateEventHandler(events),
		query.NewGetActorHandler(actors),
		query.NewListActorsHandler(actors),
		query.NewGetItemHandler(items),
		query.NewListItemsHandler(items),
		query.NewGetLocationHandler(locations),
		query.NewListLocationsHandler(locations),
		query.NewGetProcessHandler(processes),
		query.NewListProcessesHandler(processes),
		query.NewGetBatchHandler(batches),
		query.NewListBatchesHandler(batches),
		query.NewGetEventHandler(events),
		query.NewListEventsHandler(events),
		trace,
		query.NewTraceGraphHandler(batches, events),
		query.NewItemSummaryHandler(batches, trace),
		query.NewRecallReportHandler(batches, events, locations),
		kafkaPublisher,
		cache,
	)
}

// NewTraceabilityHandlerWithDI creates a new traceability handler using
// dependency injection. This is used by Wire for automatic dependency
// injection.
func NewTraceabilityHandlerWithDI(
	createActorHandler *command.CreateActorHandler,
	updateActorHandler *command.UpdateActorHandler,
	deleteActorHandler *command.DeleteActorHandler,
	createItemHandler *command.CreateItemHandler,
	updateItemHandler *command.UpdateItemHandler,
	deleteItemHandler *command.DeleteItemHandler,
	createLocationHandler *command.CreateLocationHandler,
	updateLocationHandler *command.UpdateLocationHandler,
	deleteLocationHandler *command.DeleteLocationHandler,
	createProcessHandler *command.CreateProcessHandler,
	updateProcessHandler *command.UpdateProcessHandler,
	deleteProcessHandler *command.DeleteProcessHandler,
	createBatchHandler *command.CreateBatchHandler,
	updateBatchStatusHandler *command.UpdateBatchStatusHandler,
	updateBatchQuantityHandler *command.UpdateBatchQuantityHandler,
	recordProcessingHandler *command.RecordProcessingHandler,
	splitBatchHandler *command.SplitBatchHandler,
	mergeBatchesHandler *command.MergeBatchesHandler,
	disposeBatchHandler *command.DisposeBatchHandler,
	recordHarvestHandler *command.RecordHarvestHandler,
	recordEventHandler *command.RecordEventHandler,
	updateEventHandler *command.UpdateEventHandler,
	getActorHandler *query.GetActorHandler,
	listActorsHandler *query.ListActorsHandler,
	getItemHandler *query.GetItemHandler,
	listItemsHandler *query.ListItemsHandler,
	getLocationHandler *query.GetLocationHandler,
	listLocationsHandler *query.ListLocationsHandler,
	getProcessHandler *query.GetProcessHandler,
	listProcessesHandler *query.ListProcessesHandler,
	getBatchHandler *query.GetBatchHandler,
	listBatchesHandler *query.ListBatchesHandler,
	getEventHandler *query.GetEventHandler,
	listEventsHandler *query.ListEventsHandler,
	traceBatchHandler *query.TraceBatchHandler,
	traceGraphHandler *query.TraceGraphHandler,
	itemSummaryHandler *query.ItemSummaryHandler,
	recallReportHandler *query.RecallReportHandler,
	kafkaPublisher *kafka.Publisher,
	cache *redis.Client,
) *TraceabilityHandler {
	return newTraceabilityHandler(
		createActorHandler, updateActorHandler, deleteActorHandler,
		createItemHandler, updateItemHandler, deleteItemHandler,
		createLocationHandler, updateLocationHandler, deleteLocationHandler,
		createProcessHandler, updateProcessHandler, deleteProcessHandler,
		createBatchHandler, updateBatchStatusHandler, updateBatchQuantityHandler,
		recordProcessingHandler, splitBatchHandler, mergeBatchesHandler,
		disposeBatchHandler, recordHarvestHandler, recordEventHandler,
		updateEventHandler,
		getActorHandler, listActorsHandler,
		getItemHandler, listItemsHandler,
		getLocationHandler, listLocationsHandler,
		getProcessHandler, listProcessesHandler,
		getBatchHandler, listBatchesHandler,
		getEventHandler, listEventsHandler,
		traceBatchHandler, traceGraphHandler, itemSummaryHandler,
		recallReportHandler,
		kafkaPublisher, cache,
	)
}

// newTraceabilityHandler is the internal constructor used by both manual and Wire DI
func newTraceabilityHandler(
	createActorHandler *command.CreateActorHandler,
	updateActorHandler *command.UpdateActorHandler,
	deleteActorHandler *command.DeleteActorHandler,
	createItemHandler *command.CreateItemHandler,
	updateItemHandler *command.UpdateItemHandler,
	deleteItemHandler *command.DeleteItemHandler,
	createLocationHandler *command.CreateLocationHandler,
	updateLocationHandler *command.UpdateLocationHandler,
	deleteLocationHandler *command.DeleteLocationHandler,
	createProcessHandler *command.CreateProcessHandler,
	updateProcessHandler *command.UpdateProcessHandler,
	deleteProcessHandler *command.DeleteProcessHandler,
	createBatchHandler *command.CreateBatchHandler,
	updateBatchStatusHandler *command.UpdateBatchStatusHandler,
	updateBatchQuantityHandler *command.UpdateBatchQuantityHandler,
	recordProcessingHandler *command.RecordProcessingHandler,
	splitBatchHandler *command.SplitBatchHandler,
	mergeBatchesHandler *command.MergeBatchesHandler,
	disposeBatchHandler *command.DisposeBatchHandler,
	recordHarvestHandler *command.RecordHarvestHandler,
	recordEventHandler *command.RecordEventHandler,
	updateEventHandler *command.UpdateEventHandler,
	getActorHandler *query.GetActorHandler,
	listActorsHandler *query.ListActorsHandler,
	getItemHandler *query.GetItemHandler,
	listItemsHandler *query.ListItemsHandler,
	getLocationHandler *query.GetLocationHandler,
	listLocationsHandler *query.ListLocationsHandler,
	getProcessHandler *query.GetProcessHandler,
	listProcessesHandler *query.ListProcessesHandler,
	getBatchHandler *query.GetBatchHandler,
	listBatchesHandler *query.ListBatchesHandler,
	getEventHandler *query.GetEventHandler,
	listEventsHandler *query.ListEventsHandler,
	traceBatchHandler *query.TraceBatchHandler,
	traceGraphHandler *query.TraceGraphHandler,
	itemSummaryHandler *query.ItemSummaryHandler,
	recallReportHandler *query.RecallReportHandler,
	kafkaPublisher *kafka.Publisher,
	cache *redis.Client,
) *TraceabilityHandler {
	// Initialize Prometheus metrics
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traceability_service_requests_total",
			Help: "Total number of requests to traceability service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "traceability_service_request_duration_seconds",
			Help:    "Duration of traceability service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Summary metric for percentile calculation (p50, p90, p95, p99)
	requestSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "traceability_service_request_duration_summary",
			Help: "Summary of request durations with percentiles (client-side quantiles)",
			Objectives: map[float64]float64{
				0.5:  0.05,  // p50 (median) with 5% error
				0.9:  0.01,  // p90 with 1% error
				0.95: 0.01,  // p95 with 1% error
				0.99: 0.001, // p99 with 0.1% error
			},
			MaxAge: 10 * time.Minute, // Keep data for 10 minutes
		},
		[]string{"method", "endpoint"},
	)

	eventsRecorded := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traceability_service_events_recorded_total",
			Help: "Total number of supply chain events recorded",
		},
		[]string{"event_type"},
	)

	recallReports := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "traceability_service_recall_reports_total",
			Help: "Total number of recall reports generated",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(requestSummary)
	prometheus.MustRegister(eventsRecorded)
	prometheus.MustRegister(recallReports)

	return &TraceabilityHandler{
		createActorHandler:         createActorHandler,
		updateActorHandler:         updateActorHandler,
		deleteActorHandler:         deleteActorHandler,
		createItemHandler:          createItemHandler,
		updateItemHandler:          updateItemHandler,
		deleteItemHandler:          deleteItemHandler,
		createLocationHandler:      createLocationHandler,
		updateLocationHandler:      updateLocationHandler,
		deleteLocationHandler:      deleteLocationHandler,
		createProcessHandler:       createProcessHandler,
		updateProcessHandler:       updateProcessHandler,
		deleteProcessHandler:       deleteProcessHandler,
		createBatchHandler:         createBatchHandler,
		updateBatchStatusHandler:   updateBatchStatusHandler,
		updateBatchQuantityHandler: updateBatchQuantityHandler,
		recordProcessingHandler:    recordProcessingHandler,
		splitBatchHandler:          splitBatchHandler,
		mergeBatchesHandler:        mergeBatchesHandler,
		disposeBatchHandler:        disposeBatchHandler,
		recordHarvestHandler:       recordHarvestHandler,
		recordEventHandler:         recordEventHandler,
		updateEventHandler:         updateEventHandler,
		getActorHandler:            getActorHandler,
		listActorsHandler:          listActorsHandler,
		getItemHandler:             getItemHandler,
		listItemsHandler:           listItemsHandler,
		getLocationHandler:         getLocationHandler,
		listLocationsHandler:       listLocationsHandler,
		getProcessHandler:          getProcessHandler,
		listProcessesHandler:       listProcessesHandler,
		getBatchHandler:            getBatchHandler,
		listBatchesHandler:         listBatchesHandler,
		getEventHandler:            getEventHandler,
		listEventsHandler:          listEventsHandler,
		traceBatchHandler:          traceBatchHandler,
		traceGraphHandler:          traceGraphHandler,
		itemSummaryHandler:         itemSummaryHandler,
		recallReportHandler:        recallReportHandler,
		kafkaPublisher:             kafkaPublisher,
		cache:                      cache,
		cacheTTL:                   5 * time.Minute,
		requestCounter:             requestCounter,
		requestLatency:             requestLatency,
		requestSummary:             requestSummary,
		eventsRecorded:             eventsRecorded,
		recallReports:              recallReports,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *TraceabilityHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		// Record metrics
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *TraceabilityHandler) RegisterRoutes(router *mux.Router) {
	// Actor routes
	router.HandleFunc("/api/actors", h.metricsMiddleware("/api/actors", h.CreateActor)).Methods("POST")
	router.HandleFunc("/api/actors", h.metricsMiddleware("/api/actors", h.ListActors)).Methods("GET")
	router.HandleFunc("/api/actors/{actor_id}", h.metricsMiddleware("/api/actors/{actor_id}", h.GetActor)).Methods("GET")
	router.HandleFunc("/api/actors/{actor_id}", h.metricsMiddleware("/api/actors/{actor_id}", h.UpdateActor)).Methods("PUT")
	router.HandleFunc("/api/actors/{actor_id}", h.metricsMiddleware("/api/actors/{actor_id}", h.DeleteActor)).Methods("DELETE")

	// Item routes
	router.HandleFunc("/api/actors/{actor_id}/items", h.metricsMiddleware("/api/actors/{actor_id}/items", h.CreateItem)).Methods("POST")
	router.HandleFunc("/api/actors/{actor_id}/items", h.metricsMiddleware("/api/actors/{actor_id}/items", h.ListItems)).Methods("GET")
	router.HandleFunc("/api/actors/{actor_id}/items/{item_id}", h.metricsMiddleware("/api/actors/{actor_id}/items/{item_id}", h.GetItem)).Methods("GET")
	router.HandleFunc("/api/actors/{actor_id}/items/{item_id}", h.metricsMiddleware("/api/actors/{actor_id}/items/{item_id}", h.UpdateItem)).Methods("PUT")
	router.HandleFunc("/api/actors/{actor_id}/items/{item_id}", h.metricsMiddleware("/api/actors/{actor_id}/items/{item_id}", h.DeleteItem)).Methods("DELETE")

	// Location routes
	router.HandleFunc("/api/actors/{actor_id}/locations", h.metricsMiddleware("/api/actors/{actor_id}/locations", h.CreateLocation)).Methods("POST")
	router.HandleFunc("/api/actors/{actor_id}/locations", h.metricsMiddleware("/api/actors/{actor_id}/locations", h.ListLocations)).Methods("GET")
	router.HandleFunc("/api/actors/{actor_id}/locations/{location_id}", h.metricsMiddleware("/api/actors/{actor_id}/locations/{location_id}", h.GetLocation)).Methods("GET")
	router.HandleFunc("/api/actors/{actor_id}/locations/{location_id}", h.metricsMiddleware("/api/actors/{actor_id}/locations/{location_id}", h.UpdateLocation)).Methods("PUT")
	router.HandleFunc("/api/actors/{actor_id}/locations/{location_id}", h.metricsMiddleware("/api/actors/{actor_id}/locations/{location_id}", h.DeleteLocation)).Methods("DELETE")

	// Process routes
	router.HandleFunc("/api/actors/{actor_id}/processes", h.metricsMiddleware("/api/actors/{actor_id}/processes", h.CreateProcess)).Methods("POST")
	router.HandleFunc("/api/actors/{actor_id}/processes", h.metricsMiddleware("/api/actors/{actor_id}/processes", h.ListProcesses)).Methods("GET")
	router.HandleFunc("/api/actors/{actor_id}/processes/{process_id}", h.metricsMiddleware("/api/actors/{actor_id}/processes/{process_id}", h.GetProcess)).Methods("GET")
	router.HandleFunc("/api/actors/{actor_id}/processes/{process_id}", h.metricsMiddleware("/api/actors/{actor_id}/processes/{process_id}", h.UpdateProcess)).Methods("PUT")
	router.HandleFunc("/api/actors/{actor_id}/processes/{process_id}", h.metricsMiddleware("/api/actors/{actor_id}/processes/{process_id}", h.DeleteProcess)).Methods("DELETE")

	// Batch routes
	router.HandleFunc("/api/actors/{actor_id}/batches", h.metricsMiddleware("/api/actors/{actor_id}/batches", h.CreateBatch)).Methods("POST")
	router.HandleFunc("/api/actors/{actor_id}/batches", h.metricsMiddleware("/api/actors/{actor_id}/batches", h.ListBatches)).Methods("GET")
	router.HandleFunc("/api/actors/{actor_id}/batches/{batch_id}", h.metricsMiddleware("/api/actors/{actor_id}/batches/{batch_id}", h.GetBatch)).Methods("GET")
	router.HandleFunc("/api/actors/{actor_id}/batches/{batch_id}/status", h.metricsMiddleware("/api/actors/{actor_id}/batches/{batch_id}/status", h.UpdateBatchStatus)).Methods("PATCH")
	router.HandleFunc("/api/actors/{actor_id}/batches/{batch_id}/quantity", h.metricsMiddleware("/api/actors/{actor_id}/batches/{batch_id}/quantity", h.UpdateBatchQuantity)).Methods("PATCH")

	// Event routes
	router.HandleFunc("/api/actors/{actor_id}/events", h.metricsMiddleware("/api/actors/{actor_id}/events", h.RecordEvent)).Methods("POST")
	router.HandleFunc("/api/actors/{actor_id}/events", h.metricsMiddleware("/api/actors/{actor_id}/events", h.ListEvents)).Methods("GET")
	router.HandleFunc("/api/actors/{actor_id}/events/{event_id}", h.metricsMiddleware("/api/actors/{actor_id}/events/{event_id}", h.GetEvent)).Methods("GET")
	router.HandleFunc("/api/actors/{actor_id}/events/{event_id}", h.metricsMiddleware("/api/actors/{actor_id}/events/{event_id}", h.UpdateEvent)).Methods("PATCH")

	// Operation routes (engine semantics: quantity conservation + lifecycle)
	router.HandleFunc("/api/actors/{actor_id}/operations/production-run", h.metricsMiddleware("/api/actors/{actor_id}/operations/production-run", h.RecordProductionRun)).Methods("POST")
	router.HandleFunc("/api/actors/{actor_id}/operations/split-batch", h.metricsMiddleware("/api/actors/{actor_id}/operations/split-batch", h.SplitBatch)).Methods("POST")
	router.HandleFunc("/api/actors/{actor_id}/operations/merge-batches", h.metricsMiddleware("/api/actors/{actor_id}/operations/merge-batches", h.MergeBatches)).Methods("POST")
	router.HandleFunc("/api/actors/{actor_id}/operations/dispose-batch", h.metricsMiddleware("/api/actors/{actor_id}/operations/dispose-batch", h.DisposeBatch)).Methods("POST")
	router.HandleFunc("/api/actors/{actor_id}/operations/harvest", h.metricsMiddleware("/api/actors/{actor_id}/operations/harvest", h.RecordHarvest)).Methods("POST")

	// Traceability routes (cached when Redis is wired)
	router.HandleFunc("/api/actors/{actor_id}/traceability/batches/{batch_id}", h.metricsMiddleware("/api/actors/{actor_id}/traceability/batches/{batch_id}", h.cached(h.GetBatchTrace))).Methods("GET")
	router.HandleFunc("/api/actors/{actor_id}/traceability/batches/{batch_id}/graph", h.metricsMiddleware("/api/actors/{actor_id}/traceability/batches/{batch_id}/graph", h.cached(h.GetTraceGraph))).Methods("GET")
	router.HandleFunc("/api/actors/{actor_id}/traceability/items/{item_id}/summary", h.metricsMiddleware("/api/actors/{actor_id}/traceability/items/{item_id}/summary", h.cached(h.GetItemSummary))).Methods("GET")

	// Compliance routes
	router.HandleFunc("/api/actors/{actor_id}/compliance/recall-report/{batch_id}", h.metricsMiddleware("/api/actors/{actor_id}/compliance/recall-report/{batch_id}", h.cached(h.GetRecallReport))).Methods("GET")
}

func (h *TraceabilityHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Traceability service is healthy",
		})
	}).Methods("GET")
}

// respondError maps domain errors to HTTP status codes. Unexpected errors
// are logged with their operation before a generic 500 goes out.
func (h *TraceabilityHandler) respondError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	switch {
	case domain.IsValidation(err):
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
	case domain.IsNotFound(err):
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   err.Error(),
		})
	case domain.IsConflict(err):
		respondJSON(w, http.StatusConflict, Response{
			Success: false,
			Error:   err.Error(),
		})
	default:
		logger.WithContext(r.Context()).Error().
			Err(err).
			Str("operation", operation).
			Str("actor_id", mux.Vars(r)["actor_id"]).
			Msg("Operation failed")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Internal server error",
		})
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
