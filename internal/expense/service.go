package expense

import (
	"context"
	"errors"
	"log/slog"

	"github.com/warikan-app/warikan/internal/group"
	"github.com/warikan-app/warikan/internal/realtime"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
)

// GroupStore is the slice of the group feature the expense service needs.
// *group.Repository satisfies it.
type GroupStore interface {
	GetByID(ctx context.Context, id string) (*group.Group, error)
	GetMembers(ctx context.Context, groupID string) ([]*group.Member, error)
}

// Publisher pushes full-state snapshots to live subscribers.
type Publisher interface {
	Publish(key, kind string, payload interface{})
}

// Notifier records a persisted notification for a user.
type Notifier interface {
	NotifyExpenseAdded(ctx context.Context, recipientID, description string, amount float64, expenseID string) error
}

// Service handles expense business logic
type Service struct {
	repo     *Repository
	groups   GroupStore
	events   Publisher
	notifier Notifier
}

// NewService creates a new expense service with dependencies injected.
// events and notifier may be nil.
func NewService(repo *Repository, groups GroupStore, events Publisher, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		groups:   groups,
		events:   events,
		notifier: notifier,
	}
}

// Add creates an expense in a group and notifies the other members.
func (s *Service) Add(ctx context.Context, groupID, callerID string, req *CreateExpenseRequest) (*Expense, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, group.ErrGroupNotFound
	}

	paidBy := req.PaidBy
	if paidBy == "" {
		paidBy = callerID
	}

	e := &Expense{
		GroupID:     groupID,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		PaidBy:      paidBy,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	slog.Info("expense added", "group_id", groupID, "expense_id", e.ID, "amount", e.Amount)

	s.notifyMembers(ctx, g.ID, paidBy, e)
	s.publishExpenses(ctx, groupID)
	return e, nil
}

// ListByGroup retrieves all expenses of a group
func (s *Service) ListByGroup(ctx context.Context, groupID string) ([]*Expense, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, group.ErrGroupNotFound
	}

	return s.repo.ListByGroup(ctx, groupID)
}

// Update modifies an existing expense
func (s *Service) Update(ctx context.Context, groupID, id string, req *UpdateExpenseRequest) (*Expense, error) {
	e, err := s.repo.Update(ctx, groupID, id, req)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrExpenseNotFound
	}

	s.publishExpenses(ctx, groupID)
	return e, nil
}

// Delete removes an expense
func (s *Service) Delete(ctx context.Context, groupID, id string) error {
	e, err := s.repo.GetByID(ctx, groupID, id)
	if err != nil {
		return err
	}
	if e == nil {
		return ErrExpenseNotFound
	}

	if err := s.repo.Delete(ctx, groupID, id); err != nil {
		return err
	}

	s.publishExpenses(ctx, groupID)
	return nil
}

// SetPaidStatus toggles one member's paid flag on an expense. The flag is
// per-expense only; the group-level member payment flag is not derived from
// it.
func (s *Service) SetPaidStatus(ctx context.Context, groupID, expenseID, userID string, paid bool) (*Expense, error) {
	e, err := s.repo.GetByID(ctx, groupID, expenseID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrExpenseNotFound
	}

	if err := s.repo.SetPaidStatus(ctx, expenseID, userID, paid); err != nil {
		return nil, err
	}

	e.PaidStatus[userID] = paid
	s.publishExpenses(ctx, groupID)
	return e, nil
}

// notifyMembers records an expense-added notification for every member
// except the payer. Notification failures are logged, not surfaced: the
// expense write already succeeded.
func (s *Service) notifyMembers(ctx context.Context, groupID, payerID string, e *Expense) {
	if s.notifier == nil {
		return
	}

	members, err := s.groups.GetMembers(ctx, groupID)
	if err != nil {
		slog.Warn("failed to load members for notification", "group_id", groupID, "error", err)
		return
	}

	for _, m := range members {
		if m.UserID == payerID {
			continue
		}
		if err := s.notifier.NotifyExpenseAdded(ctx, m.UserID, e.Description, e.Amount, e.ID); err != nil {
			slog.Warn("failed to notify member", "user_id", m.UserID, "error", err)
		}
	}
}

// publishExpenses pushes the full expense list to group subscribers.
func (s *Service) publishExpenses(ctx context.Context, groupID string) {
	if s.events == nil {
		return
	}

	expenses, err := s.repo.ListByGroup(ctx, groupID)
	if err != nil {
		slog.Warn("failed to load expenses for snapshot", "group_id", groupID, "error", err)
		return
	}

	s.events.Publish(realtime.GroupKey(groupID), "expenses", ToResponseList(expenses))
}
