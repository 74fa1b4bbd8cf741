package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/metrics"
)

// ErrOrderStateUpdaterIsNotConstructed is returned when an OrderStateUpdater
// was not created via NewOrderStateUpdater.
var ErrOrderStateUpdaterIsNotConstructed = errors.New(
	"OrderStateUpdater must be created via NewOrderStateUpdater constructor",
)

// OrderStateUpdater is the single writer of workflow run state. Every
// command that moves an order through its run goes through this component,
// which keeps the record's (status, currentStep, resumptionToken) triple
// consistent.
//
// Advancement is serialized by the token: the update is persisted with a
// conditional write against the token that authorized it, so of two racing
// signals only one lands and the other observes a token mismatch.
//
// When an order reaches its terminal delivered status the updater publishes
// one finalized-order event after the record write commits. The publish is
// best effort: a failure is logged and counted, never surfaced to the caller
// and never rolled into the transaction.
type OrderStateUpdater struct {
	uowFactory OrderUoWFactory
	engine     services.WorkflowEngine
	publisher  ports.EventPublisher
	collector  *metrics.Collector
	log        *slog.Logger

	isConstructed bool
}

// NewOrderStateUpdater creates the updater with its collaborators.
// All arguments are required.
func NewOrderStateUpdater(
	uowFactory OrderUoWFactory,
	engine services.WorkflowEngine,
	publisher ports.EventPublisher,
	collector *metrics.Collector,
	log *slog.Logger,
) (*OrderStateUpdater, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if publisher == nil {
		return nil, errs.NewValueIsRequiredError("publisher")
	}
	if collector == nil {
		return nil, errs.NewValueIsRequiredError("collector")
	}
	if log == nil {
		return nil, errs.NewValueIsRequiredError("log")
	}

	return &OrderStateUpdater{
		uowFactory:    uowFactory,
		engine:        engine,
		publisher:     publisher,
		collector:     collector,
		log:           log,
		isConstructed: true,
	}, nil
}

// Validate ensures the updater was properly constructed.
func (u *OrderStateUpdater) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrOrderStateUpdaterIsNotConstructed
	}
	return nil
}

// Initialize starts a workflow run for a new order intake and persists the
// record in its initial state. Returns the created order's snapshot.
func (u *OrderStateUpdater) Initialize(
	ctx context.Context,
	tenantID string,
	items []order.Item,
	total float64,
	customer *order.Customer,
) (order.Snapshot, error) {
	if err := u.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	aggregate, err := u.engine.StartRun(tenantID, items, total, customer)
	if err != nil {
		return order.Snapshot{}, err
	}

	uow := u.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return order.Snapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Create(ctx, aggregate); err != nil {
		return order.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Snapshot{}, err
	}

	u.collector.RunsStartedTotal.Inc()
	u.log.InfoContext(ctx, "workflow run started",
		"tenantId", tenantID, "orderId", aggregate.ID().String())

	return aggregate.Snapshot(), nil
}

// Advance applies the next workflow transition to an order. The actor is the
// external party that completed the step; cancel requests the cancelled
// transition instead of the next status in the sequence.
//
// Returns the snapshot of the order after the transition, or:
//   - ObjectNotFoundError when the order does not exist or holds no live token
//   - TokenMismatchError when the token rotated under a racing signal
func (u *OrderStateUpdater) Advance(
	ctx context.Context,
	tenantID string,
	id kernel.OrderID,
	actor string,
	cancel bool,
) (order.Snapshot, error) {
	if err := u.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	uow := u.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Snapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, tenantID, id)
	if err != nil {
		return order.Snapshot{}, err
	}

	sig := services.Signal{Actor: actor, Cancel: cancel}
	if stored := aggregate.ResumptionToken(); stored != nil {
		sig.Token = *stored
	}

	transition, err := u.engine.NextTransition(aggregate, sig)
	if err != nil {
		return order.Snapshot{}, err
	}

	now := time.Now().UTC()
	patch := ports.OrderPatch{
		Status:      &transition.Status,
		CurrentStep: &transition.Step,
		Token:       &transition.Token,
		UpdatedAt:   now,
	}

	if err = repo.UpdateWithToken(ctx, tenantID, id, sig.Token, patch); err != nil {
		if errors.Is(err, errs.ErrTokenMismatch) {
			u.collector.TokenMismatchTotal.Inc()
			u.log.WarnContext(ctx, "signal rejected on stale token",
				"tenantId", tenantID, "orderId", id.String(), "actor", actor)
		}
		return order.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Snapshot{}, err
	}

	var nextToken *kernel.Token
	if !transition.Token.IsFinal() {
		token := transition.Token
		nextToken = &token
	}

	updated, err := order.RestoreOrder(
		tenantID, id, transition.Status, transition.Step,
		aggregate.Items(), aggregate.Total(), aggregate.Customer(),
		nextToken, now,
	)
	if err != nil {
		return order.Snapshot{}, err
	}

	snapshot := updated.Snapshot()

	u.collector.StepsCompletedTotal.WithLabelValues(transition.Status.String()).Inc()
	if cancel {
		u.collector.RunsCancelledTotal.Inc()
	}
	u.log.InfoContext(ctx, "workflow step completed",
		"tenantId", tenantID, "orderId", id.String(),
		"status", transition.Status.String(), "step", transition.Step, "actor", actor)

	if transition.Status == order.Delivered {
		u.publishFinalized(ctx, snapshot)
	}

	return snapshot, nil
}

// publishFinalized emits the finalized-order event. Failures are logged and
// counted only; the committed record write is the source of truth.
func (u *OrderStateUpdater) publishFinalized(ctx context.Context, snapshot order.Snapshot) {
	if err := u.publisher.PublishOrderFinalized(ctx, snapshot); err != nil {
		u.collector.EventPublishFailures.Inc()
		u.log.ErrorContext(ctx, "finalized-order event publish failed",
			"tenantId", snapshot.TenantID, "orderId", snapshot.OrderID, "error", err)
		return
	}

	u.collector.EventsPublishedTotal.Inc()
}
