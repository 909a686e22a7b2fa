package traceability

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/openorigin/traceability/internal/traceability/domain"
	"github.com/openorigin/traceability/internal/traceability/repository"
	"github.com/openorigin/traceability/internal/traceability/usecase/command"
	"github.com/openorigin/traceability/internal/traceability/usecase/query"
)

// ProvideActorRepository provides the actor repository
func ProvideActorRepository(db *gorm.DB) domain.ActorRepository {
	return repository.NewGormActorRepository(db)
}

// ProvideItemRepository provides the item repository
func ProvideItemRepository(db *gorm.DB) domain.ItemRepository {
	return repository.NewGormItemRepository(db)
}

// ProvideLocationRepository provides the location repository
func ProvideLocationRepository(db *gorm.DB) domain.LocationRepository {
	return repository.NewGormLocationRepository(db)
}

// ProvideProcessRepository provides the process repository
func ProvideProcessRepository(db *gorm.DB) domain.ProcessRepository {
	return repository.NewGormProcessRepository(db)
}

// ProvideBatchRepository provides the batch repository wrapped with tracing
func ProvideBatchRepository(db *gorm.DB) domain.BatchRepository {
	return repository.NewTracingBatchRepository(repository.NewGormBatchRepository(db))
}

// ProvideEventRepository provides the event repository wrapped with tracing
func ProvideEventRepository(db *gorm.DB) domain.EventRepository {
	return repository.NewTracingEventRepository(repository.NewGormEventRepository(db))
}

// ProvideTxManager provides the transaction manager
func ProvideTxManager(db *gorm.DB) domain.TxManager {
	return repository.NewGormTxManager(db)
}

// Command Handlers Providers
func ProvideCreateActorHandler(repo domain.ActorRepository) *command.CreateActorHandler {
	return command.NewCreateActorHandler(repo)
}

func ProvideUpdateActorHandler(repo domain.ActorRepository) *command.UpdateActorHandler {
	return command.NewUpdateActorHandler(repo)
}

func ProvideDeleteActorHandler(
	actors domain.ActorRepository,
	items domain.ItemRepository,
	batches domain.BatchRepository,
	processes domain.ProcessRepository,
	events domain.EventRepository,
	locations domain.LocationRepository,
	tx domain.TxManager,
) *command.DeleteActorHandler {
	return command.NewDeleteActorHandler(actors, items, batches, processes, events, locations, tx)
}

func ProvideCreateItemHandler(repo domain.ItemRepository) *command.CreateItemHandler {
	return command.NewCreateItemHandler(repo)
}

func ProvideUpdateItemHandler(repo domain.ItemRepository) *command.UpdateItemHandler {
	return command.NewUpdateItemHandler(repo)
}

func ProvideDeleteItemHandler(repo domain.ItemRepository) *command.DeleteItemHandler {
	return command.NewDeleteItemHandler(repo)
}

func ProvideCreateLocationHandler(repo domain.LocationRepository) *command.CreateLocationHandler {
	return command.NewCreateLocationHandler(repo)
}

func ProvideUpdateLocationHandler(repo domain.LocationRepository) *command.UpdateLocationHandler {
	return command.NewUpdateLocationHandler(repo)
}

func ProvideDeleteLocationHandler(repo domain.LocationRepository) *command.DeleteLocationHandler {
	return command.NewDeleteLocationHandler(repo)
}

func ProvideCreateProcessHandler(repo domain.ProcessRepository) *command.CreateProcessHandler {
	return command.NewCreateProcessHandler(repo)
}

func ProvideUpdateProcessHandler(repo domain.ProcessRepository) *command.UpdateProcessHandler {
	return command.NewUpdateProcessHandler(repo)
}

func ProvideDeleteProcessHandler(repo domain.ProcessRepository) *command.DeleteProcessHandler {
	return command.NewDeleteProcessHandler(repo)
}

func ProvideCreateBatchHandler(repo domain.BatchRepository) *command.CreateBatchHandler {
	return command.NewCreateBatchHandler(repo)
}

func ProvideUpdateBatchStatusHandler(repo domain.BatchRepository) *command.UpdateBatchStatusHandler {
	return command.NewUpdateBatchStatusHandler(repo)
}

func ProvideUpdateBatchQuantityHandler(repo domain.BatchRepository) *command.UpdateBatchQuantityHandler {
	return command.NewUpdateBatchQuantityHandler(repo)
}

func ProvideRecordProcessingHandler(
	batches domain.BatchRepository,
	events domain.EventRepository,
	tx domain.TxManager,
) *command.RecordProcessingHandler {
	return command.NewRecordProcessingHandler(batches, events, tx)
}

func ProvideSplitBatchHandler(
	batches domain.BatchRepository,
	events domain.EventRepository,
	tx domain.TxManager,
) *command.SplitBatchHandler {
	return command.NewSplitBatchHandler(batches, events, tx)
}

func ProvideMergeBatchesHandler(
	batches domain.BatchRepository,
	events domain.EventRepository,
	tx domain.TxManager,
) *command.MergeBatchesHandler {
	return command.NewMergeBatchesHandler(batches, events, tx)
}

func ProvideDisposeBatchHandler(
	batches domain.BatchRepository,
	events domain.EventRepository,
	tx domain.TxManager,
) *command.DisposeBatchHandler {
	return command.NewDisposeBatchHandler(batches, events, tx)
}

func ProvideRecordHarvestHandler(
	batches domain.BatchRepository,
	events domain.EventRepository,
	tx domain.TxManager,
) *command.RecordHarvestHandler {
	return command.NewRecordHarvestHandler(batches, events, tx)
}

func ProvideRecordEventHandler(events domain.EventRepository, tx domain.TxManager) *command.RecordEventHandler {
	return command.NewRecordEventHandler(events, tx)
}

func ProvideUpdateEventHandler(events domain.EventRepository) *command.UpdateEventHandler {
	return command.NewUpdateEventHandler(events)
}

// Query Handlers Providers
func ProvideGetActorHandler(repo domain.ActorRepository) *query.GetActorHandler {
	return query.NewGetActorHandler(repo)
}

func ProvideListActorsHandler(repo domain.ActorRepository) *query.ListActorsHandler {
	return query.NewListActorsHandler(repo)
}

func ProvideGetItemHandler(repo domain.ItemRepository) *query.GetItemHandler {
	return query.NewGetItemHandler(repo)
}

func ProvideListItemsHandler(repo domain.ItemRepository) *query.ListItemsHandler {
	return query.NewListItemsHandler(repo)
}

func ProvideGetLocationHandler(repo domain.LocationRepository) *query.GetLocationHandler {
	return query.NewGetLocationHandler(repo)
}

func ProvideListLocationsHandler(repo domain.LocationRepository) *query.ListLocationsHandler {
	return query.NewListLocationsHandler(repo)
}

func ProvideGetProcessHandler(repo domain.ProcessRepository) *query.GetProcessHandler {
	return query.NewGetProcessHandler(repo)
}

func ProvideListProcessesHandler(repo domain.ProcessRepository) *query.ListProcessesHandler {
	return query.NewListProcessesHandler(repo)
}

func ProvideGetBatchHandler(repo domain.BatchRepository) *query.GetBatchHandler {
	return query.NewGetBatchHandler(repo)
}

func ProvideListBatchesHandler(repo domain.BatchRepository) *query.ListBatchesHandler {
	return query.NewListBatchesHandler(repo)
}

func ProvideGetEventHandler(repo domain.EventRepository) *query.GetEventHandler {
	return query.NewGetEventHandler(repo)
}

func ProvideListEventsHandler(repo domain.EventRepository) *query.ListEventsHandler {
	return query.NewListEventsHandler(repo)
}

func ProvideTraceBatchHandler(batches domain.BatchRepository, events domain.EventRepository) *query.TraceBatchHandler {
	return query.NewTraceBatchHandler(batches, events)
}

func ProvideTraceGraphHandler(batches domain.BatchRepository, events domain.EventRepository) *query.TraceGraphHandler {
	return query.NewTraceGraphHandler(batches, events)
}

func ProvideItemSummaryHandler(batches domain.BatchRepository, trace *query.TraceBatchHandler) *query.ItemSummaryHandler {
	return query.NewItemSummaryHandler(batches, trace)
}

func ProvideRecallReportHandler(
	batches domain.BatchRepository,
	events domain.EventRepository,
	locations domain.LocationRepository,
) *query.RecallReportHandler {
	return query.NewRecallReportHandler(batches, events, locations)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideActorRepository,
	ProvideItemRepository,
	ProvideLocationRepository,
	ProvideProcessRepository,
	ProvideBatchRepository,
	ProvideEventRepository,
	ProvideTxManager,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateActorHandler,
	ProvideUpdateActorHandler,
	ProvideDeleteActorHandler,
	ProvideCreateItemHandler,
	ProvideUpdateItemHandler,
	ProvideDeleteItemHandler,
	ProvideCreateLocationHandler,
	ProvideUpdateLocationHandler,
	ProvideDeleteLocationHandler,
	ProvideCreateProcessHandler,
	ProvideUpdateProcessHandler,
	ProvideDeleteProcessHandler,
	ProvideCreateBatchHandler,
	ProvideUpdateBatchStatusHandler,
	ProvideUpdateBatchQuantityHandler,
	ProvideRecordProcessingHandler,
	ProvideSplitBatchHandler,
	ProvideMergeBatchesHandler,
	ProvideDisposeBatchHandler,
	ProvideRecordHarvestHandler,
	ProvideRecordEventHandler,
	ProvideUpdateEventHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetActorHandler,
	ProvideListActorsHandler,
	ProvideGetItemHandler,
	ProvideListItemsHandler,
	ProvideGetLocationHandler,
	ProvideListLocationsHandler,
	ProvideGetProcessHandler,
	ProvideListProcessesHandler,
	ProvideGetBatchHandler,
	ProvideListBatchesHandler,
	ProvideGetEventHandler,
	ProvideListEventsHandler,
	ProvideTraceBatchHandler,
	ProvideTraceGraphHandler,
	ProvideItemSummaryHandler,
	ProvideRecallReportHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)
