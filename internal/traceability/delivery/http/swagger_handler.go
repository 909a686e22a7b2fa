package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for Traceability Service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// CreateActor godoc
// @Summary Create actor
// @Description Register a producer, processor, or distributor
// @Tags Actors
// @Accept json
// @Produce json
// @Param request body object{id=string,name=string,kind=string} true "Actor data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/actors [post]
func (h *TraceabilityHandler) CreateActorDoc() {}

// ListActors godoc
// @Summary List actors
// @Description Get all registered actors with pagination
// @Tags Actors
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/actors [get]
func (h *TraceabilityHandler) ListActorsDoc() {}

// GetActor godoc
// @Summary Get actor by ID
// @Tags Actors
// @Produce json
// @Param actor_id path string true "Actor ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/actors/{actor_id} [get]
func (h *TraceabilityHandler) GetActorDoc() {}

// UpdateActor godoc
// @Summary Update actor
// @Tags Actors
// @Accept json
// @Produce json
// @Param actor_id path string true "Actor ID"
// @Param request body object{name=string,kind=string} true "Actor data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/actors/{actor_id} [put]
func (h *TraceabilityHandler) UpdateActorDoc() {}

// DeleteActor godoc
// @Summary Delete actor
// @Description Delete an actor and everything it owns in one transaction
// @Tags Actors
// @Produce json
// @Param actor_id path string true "Actor ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/actors/{actor_id} [delete]
func (h *TraceabilityHandler) DeleteActorDoc() {}

// CreateItem godoc
// @Summary Create item
// @Description Register a product definition for an actor
// @Tags Items
// @Accept json
// @Produce json
// @Param actor_id path string true "Actor ID"
// @Param request body object{id=string,name=string,category=string,unit=string} true "Item data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/actors/{actor_id}/items [post]
func (h *TraceabilityHandler) CreateItemDoc() {}

// CreateBatch godoc
// @Summary Create batch
// @Description Register a concrete lot of an item
// @Tags Batches
// @Accept json
// @Produce json
// @Param actor_id path string true "Actor ID"
// @Param request body object{id=string,item_id=string,quantity=object{amount=number,unit=string}} true "Batch data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/actors/{actor_id}/batches [post]
func (h *TraceabilityHandler) CreateBatchDoc() {}

// ListBatches godoc
// @Summary List batches
// @Description Get an actor's batches with optional status and item filters
// @Tags Batches
// @Produce json
// @Param actor_id path string true "Actor ID"
// @Param status query string false "Filter by status"
// @Param item_id query string false "Filter by item"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/actors/{actor_id}/batches [get]
func (h *TraceabilityHandler) ListBatchesDoc() {}

// UpdateBatchStatus godoc
// @Summary Update batch status
// @Description Transition a batch through its lifecycle (active, quarantined, recalled, expired, disposed, depleted)
// @Tags Batches
// @Accept json
// @Produce json
// @Param actor_id path string true "Actor ID"
// @Param batch_id path string true "Batch ID"
// @Param request body object{status=string} true "New status"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/actors/{actor_id}/batches/{batch_id}/status [patch]
func (h *TraceabilityHandler) UpdateBatchStatusDoc() {}

// RecordEvent godoc
// @Summary Record event
// @Description Append a supply chain event document without engine-side batch mutation
// @Tags Events
// @Accept json
// @Produce json
// @Param actor_id path string true "Actor ID"
// @Param request body object{id=string,event_type=string,timestamp=string,inputs=array,outputs=array} true "Event document"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/actors/{actor_id}/events [post]
func (h *TraceabilityHandler) RecordEventDoc() {}

// RecordProductionRun godoc
// @Summary Record production run
// @Description Record a processing event: deduct inputs, create or top up outputs, enforce conservation
// @Tags Operations
// @Accept json
// @Produce json
// @Param actor_id path string true "Actor ID"
// @Param request body object{process_id=string,inputs=array,outputs=array} true "Production run"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/actors/{actor_id}/operations/production-run [post]
func (h *TraceabilityHandler) RecordProductionRunDoc() {}

// SplitBatch godoc
// @Summary Split batch
// @Description Split a batch into child batches; conservation within 1 percent
// @Tags Operations
// @Accept json
// @Produce json
// @Param actor_id path string true "Actor ID"
// @Param request body object{source_batch_id=string,outputs=array} true "Split request"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/actors/{actor_id}/operations/split-batch [post]
func (h *TraceabilityHandler) SplitBatchDoc() {}

// MergeBatches godoc
// @Summary Merge batches
// @Description Merge same-item batches into one; conservation within 5 percent
// @Tags Operations
// @Accept json
// @Produce json
// @Param actor_id path string true "Actor ID"
// @Param request body object{source_batch_ids=array,output_batch_id=string,output_quantity=object} true "Merge request"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/actors/{actor_id}/operations/merge-batches [post]
func (h *TraceabilityHandler) MergeBatchesDoc() {}

// DisposeBatch godoc
// @Summary Dispose batch
// @Description Dispose of a batch with a reason; the batch leaves circulation
// @Tags Operations
// @Accept json
// @Produce json
// @Param actor_id path string true "Actor ID"
// @Param request body object{batch_id=string,reason=string} true "Disposal request"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/actors/{actor_id}/operations/dispose-batch [post]
func (h *TraceabilityHandler) DisposeBatchDoc() {}

// RecordHarvest godoc
// @Summary Record harvest
// @Description Create a harvested batch and its harvest event atomically
// @Tags Operations
// @Accept json
// @Produce json
// @Param actor_id path string true "Actor ID"
// @Param request body object{batch=object,performed_by=string} true "Harvest request"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/actors/{actor_id}/operations/harvest [post]
func (h *TraceabilityHandler) RecordHarvestDoc() {}

// GetBatchTrace godoc
// @Summary Trace batch
// @Description One-hop upstream and downstream neighbors of a batch
// @Tags Traceability
// @Produce json
// @Param actor_id path string true "Actor ID"
// @Param batch_id path string true "Batch ID"
// @Param direction query string false "upstream, downstream, or both (default)"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/actors/{actor_id}/traceability/batches/{batch_id} [get]
func (h *TraceabilityHandler) GetBatchTraceDoc() {}

// GetTraceGraph godoc
// @Summary Full traceability graph
// @Description Recursive upstream graph with cycle and depth guards
// @Tags Traceability
// @Produce json
// @Param actor_id path string true "Actor ID"
// @Param batch_id path string true "Batch ID"
// @Param max_depth query int false "Maximum recursion depth (default 10, cap 20)"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/actors/{actor_id}/traceability/batches/{batch_id}/graph [get]
func (h *TraceabilityHandler) GetTraceGraphDoc() {}

// GetItemSummary godoc
// @Summary Item traceability summary
// @Description Per-batch traceability rollup for all batches of an item
// @Tags Traceability
// @Produce json
// @Param actor_id path string true "Actor ID"
// @Param item_id path string true "Item ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/actors/{actor_id}/traceability/items/{item_id}/summary [get]
func (h *TraceabilityHandler) GetItemSummaryDoc() {}

// GetRecallReport godoc
// @Summary Recall report
// @Description Full upstream and downstream closure of a batch with quantity reconciliation (math_check)
// @Tags Compliance
// @Produce json
// @Param actor_id path string true "Actor ID"
// @Param batch_id path string true "Batch ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/actors/{actor_id}/compliance/recall-report/{batch_id} [get]
func (h *TraceabilityHandler) GetRecallReportDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *TraceabilityHandler) HealthCheckDoc() {}
