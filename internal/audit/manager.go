package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"socialhub/internal/common"
	"socialhub/internal/logger"
)

// Manager fans audit events out to its observers. Delivery is synchronous so an
// event is recorded before the request that caused it returns.
type Manager struct {
	observers map[string]common.Observer
	order     []string
	mu        sync.RWMutex
}

func NewManager(observers ...common.Observer) *Manager {
	m := &Manager{observers: make(map[string]common.Observer)}
	for _, o := range observers {
		m.Subscribe(o)
	}
	return m
}

func (m *Manager) Subscribe(observer common.Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.observers[observer.Name()]; !exists {
		m.order = append(m.order, observer.Name())
	}
	m.observers[observer.Name()] = observer
	logger.Log.Debug("audit observer subscribed", zap.String("observer", observer.Name()))
}

func (m *Manager) Unsubscribe(observer common.Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.observers, observer.Name())
	for i, name := range m.order {
		if name == observer.Name() {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Notify delivers event to every observer in subscription order. Observer
// failures are logged and never surface to the caller.
func (m *Manager) Notify(ctx context.Context, event common.AuditEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	m.mu.RLock()
	observers := make([]common.Observer, 0, len(m.order))
	for _, name := range m.order {
		observers = append(observers, m.observers[name])
	}
	m.mu.RUnlock()

	for _, observer := range observers {
		if err := observer.Update(ctx, event); err != nil {
			logger.Log.Warn("audit observer failed",
				zap.String("observer", observer.Name()),
				zap.String("action", string(event.Action)),
				zap.Error(err),
			)
		}
	}
}

// Record is shorthand for publishing a user action.
func Record(ctx context.Context, subject common.Subject, actorID uint64, action common.ActionType, targetID uint64, targetType string) {
	if subject == nil {
		return
	}
	subject.Notify(ctx, common.AuditEvent{
		ActorID:    actorID,
		ActorKind:  common.KindUser,
		Action:     action,
		TargetID:   targetID,
		TargetType: targetType,
	})
}

// RecordModerator publishes an action taken by a moderator.
func RecordModerator(ctx context.Context, subject common.Subject, modID uint64, action common.ActionType, targetID uint64, targetType string) {
	if subject == nil {
		return
	}
	subject.Notify(ctx, common.AuditEvent{
		ActorID:    modID,
		ActorKind:  common.KindModerator,
		Action:     action,
		TargetID:   targetID,
		TargetType: targetType,
	})
}
