package command

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// DeleteActorCommand represents the command to delete an actor and
// everything it owns
type DeleteActorCommand struct {
	ID string
}

// DeleteActorHandler handles delete actor command
type DeleteActorHandler struct {
	actors    domain.ActorRepository
	items     domain.ItemRepository
	batches   domain.BatchRepository
	processes domain.ProcessRepository
	events    domain.EventRepository
	locations domain.LocationRepository
	tx        domain.TxManager
}

// NewDeleteActorHandler creates a new delete actor handler
func NewDeleteActorHandler(
	actors domain.ActorRepository,
	items domain.ItemRepository,
	batches domain.BatchRepository,
	processes domain.ProcessRepository,
	events domain.EventRepository,
	locations domain.LocationRepository,
	tx domain.TxManager,
) *DeleteActorHandler {
	return &DeleteActorHandler{
		actors:    actors,
		items:     items,
		batches:   batches,
		processes: processes,
		events:    events,
		locations: locations,
		tx:        tx,
	}
}

// Handle removes the actor and cascades over its items, batches,
// processes, events, and locations in one transaction.
func (h *DeleteActorHandler) Handle(ctx context.Context, cmd DeleteActorCommand) error {
	if cmd.ID == "" {
		return domain.Validationf("id is required")
	}
	if _, err := h.actors.FindByID(ctx, cmd.ID); err != nil {
		return err
	}

	return h.tx.Do(ctx, func(ctx context.Context) error {
		if err := h.events.DeleteByActor(ctx, cmd.ID); err != nil {
			return err
		}
		if err := h.batches.DeleteByActor(ctx, cmd.ID); err != nil {
			return err
		}
		if err := h.processes.DeleteByActor(ctx, cmd.ID); err != nil {
			return err
		}
		if err := h.locations.DeleteByActor(ctx, cmd.ID); err != nil {
			return err
		}
		if err := h.items.DeleteByActor(ctx, cmd.ID); err != nil {
			return err
		}
		return h.actors.Delete(ctx, cmd.ID)
	})
}
