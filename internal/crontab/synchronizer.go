package crontab

import (
	"context"

	"github.com/aatumaykin/cronplan/internal/logger"
)

// Action describes what a synchronization did to the crontab.
type Action string

const (
	// ActionWritten means the whole crontab was replaced
	ActionWritten Action = "written"
	// ActionUpdated means the plan block was inserted or replaced
	ActionUpdated Action = "updated"
	// ActionCleared means the plan block was removed
	ActionCleared Action = "cleared"
	// ActionUnchanged means nothing was written
	ActionUnchanged Action = "unchanged"
)

// Synchronizer performs one read-modify-write cycle per call against a Store.
type Synchronizer struct {
	store  Store
	logger *logger.Logger
}

// NewSynchronizer creates a synchronizer over store.
func NewSynchronizer(store Store, log *logger.Logger) *Synchronizer {
	return &Synchronizer{
		store:  store,
		logger: log,
	}
}

// Update replaces the block of plan name with block, appending it when absent.
func (s *Synchronizer) Update(ctx context.Context, name, block string) (Action, error) {
	return s.merge(ctx, name, block, ActionUpdated)
}

// Clear removes the block of plan name. Without a block nothing is written.
func (s *Synchronizer) Clear(ctx context.Context, name string) (Action, error) {
	return s.merge(ctx, name, "", ActionCleared)
}

// Write replaces the entire crontab with block.
func (s *Synchronizer) Write(ctx context.Context, block string) (Action, error) {
	if err := s.store.Install(context.WithoutCancel(ctx), Normalize(block)); err != nil {
		return ActionUnchanged, err
	}
	s.logger.Info("crontab file written")
	return ActionWritten, nil
}

func (s *Synchronizer) merge(ctx context.Context, name, block string, action Action) (Action, error) {
	current, err := s.store.Read(ctx)
	if err != nil {
		return ActionUnchanged, err
	}

	merged, changed, err := Merge(current, name, block)
	if err != nil {
		return ActionUnchanged, err
	}
	if !changed {
		s.logger.Info("plan block not found, crontab left untouched",
			logger.Field{Key: "plan", Value: name})
		return ActionUnchanged, nil
	}

	// Once the new text is computed the install is not interrupted.
	if err := s.store.Install(context.WithoutCancel(ctx), Normalize(merged)); err != nil {
		return ActionUnchanged, err
	}

	s.logger.Info("crontab file "+string(action), logger.Field{Key: "plan", Value: name})
	return action, nil
}
