package usecase

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/ferdian3456/communityclient/internal/exception"
	"github.com/ferdian3456/communityclient/internal/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var ErrMutationInFlight = errors.New("the same change is still being saved")

type MutationKind string

const (
	MutationLike               MutationKind = "like"
	MutationSave               MutationKind = "save"
	MutationDelete             MutationKind = "delete"
	MutationDeleteAd           MutationKind = "delete_ad"
	MutationCommentCreate      MutationKind = "comment_create"
	MutationCommentWrite       MutationKind = "comment_write"
	MutationCommentDelete      MutationKind = "comment_delete"
	MutationMarkRead           MutationKind = "mark_read"
	MutationClearNotifications MutationKind = "clear_notifications"
	MutationSendMessage        MutationKind = "send_message"
)

// MutationState is where the last mutation of an (entity, kind) pair got to.
type MutationState int

const (
	MutationIdle MutationState = iota
	MutationAppliedLocally
	MutationConfirmed
	MutationReverted
)

func (state MutationState) String() string {
	switch state {
	case MutationAppliedLocally:
		return "applied_locally"
	case MutationConfirmed:
		return "confirmed"
	case MutationReverted:
		return "reverted"
	default:
		return "idle"
	}
}

// Mutation is one optimistic change.
//
// Apply makes the local change and returns the function that undoes exactly
// that change. It returns ok false when the entity is no longer cached, and
// the mutation then succeeds without touching the server.
//
// Commit sends the change. Confirm, when set, runs after a successful commit
// to swap placeholders for server state.
type Mutation struct {
	EntityID int64
	Kind     MutationKind
	Apply    func() (undo func(), ok bool)
	Commit   func(ctx context.Context) error
	Confirm  func(ctx context.Context)
}

type mutationKey struct {
	entityId int64
	kind     MutationKind
}

// Mutator runs optimistic mutations and allows one in flight per
// (entity, kind).
type Mutator struct {
	Log *zap.Logger

	mu     sync.Mutex
	states map[mutationKey]MutationState
}

func NewMutator(zap *zap.Logger) *Mutator {
	return &Mutator{
		Log:    zap,
		states: make(map[mutationKey]MutationState),
	}
}

func (mutator *Mutator) State(entityId int64, kind MutationKind) MutationState {
	mutator.mu.Lock()
	defer mutator.mu.Unlock()

	return mutator.states[mutationKey{entityId: entityId, kind: kind}]
}

// Run applies mutation locally, commits it and either confirms or reverts.
// The local change is visible before Run blocks on the network.
func (mutator *Mutator) Run(ctx context.Context, mutation Mutation) error {
	key := mutationKey{entityId: mutation.EntityID, kind: mutation.Kind}
	kind := string(mutation.Kind)

	mutator.mu.Lock()
	if mutator.states[key] == MutationAppliedLocally {
		mutator.mu.Unlock()
		observability.MutationsTotal.WithLabelValues(kind, observability.OutcomeRejected).Inc()
		return ErrMutationInFlight
	}

	undo, ok := mutation.Apply()
	if !ok {
		mutator.mu.Unlock()
		observability.MutationsTotal.WithLabelValues(kind, observability.OutcomeStale).Inc()
		mutator.Log.Debug("mutation target is gone, skipping",
			zap.String("kind", kind),
			zap.Int64("entity_id", mutation.EntityID),
		)
		return nil
	}
	mutator.states[key] = MutationAppliedLocally
	mutator.mu.Unlock()

	mutationId := uuid.NewString()
	ctx, span := observability.Tracer().Start(ctx, "mutator.run", trace.WithAttributes(
		attribute.String("mutation.id", mutationId),
		attribute.String("mutation.kind", kind),
		attribute.String("mutation.entity_id", strconv.FormatInt(mutation.EntityID, 10)),
	))
	defer span.End()

	log := observability.WithContext(ctx, mutator.Log).With(
		zap.String("mutation_id", mutationId),
		zap.String("kind", kind),
		zap.Int64("entity_id", mutation.EntityID),
	)

	err := mutator.commit(ctx, log, mutation)
	if err != nil {
		mutator.mu.Lock()
		undo()
		mutator.states[key] = MutationReverted
		mutator.mu.Unlock()

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		observability.MutationsTotal.WithLabelValues(kind, observability.OutcomeReverted).Inc()
		log.Warn("mutation reverted", zap.String("state", MutationReverted.String()), zap.Error(err))
		return err
	}

	if mutation.Confirm != nil {
		mutator.confirm(ctx, log, mutation)
	}

	mutator.mu.Lock()
	mutator.states[key] = MutationConfirmed
	mutator.mu.Unlock()

	observability.MutationsTotal.WithLabelValues(kind, observability.OutcomeConfirmed).Inc()
	log.Debug("mutation confirmed", zap.String("state", MutationConfirmed.String()))
	return nil
}

func (mutator *Mutator) commit(ctx context.Context, log *zap.Logger, mutation Mutation) (err error) {
	defer exception.Recover(log, &err)

	return mutation.Commit(ctx)
}

// confirm never fails the mutation; the server already accepted it.
func (mutator *Mutator) confirm(ctx context.Context, log *zap.Logger, mutation Mutation) {
	defer exception.Recover(log, nil)

	mutation.Confirm(ctx)
}
