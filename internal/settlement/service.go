package settlement

import (
	"context"

	"github.com/warikan-app/warikan/internal/expense"
	"github.com/warikan-app/warikan/internal/group"
	"github.com/warikan-app/warikan/internal/settlement/split"
)

// GroupStore is the slice of the group feature the settlement service needs.
// *group.Service satisfies it.
type GroupStore interface {
	GetWithMembers(ctx context.Context, id string) (*group.Group, []*group.Member, error)
}

// ExpenseStore lists a group's expenses. *expense.Repository satisfies it.
type ExpenseStore interface {
	ListByGroup(ctx context.Context, groupID string) ([]*expense.Expense, error)
}

// Service computes settlement summaries. It holds no state of its own; a
// summary is derived from the group and expense stores on every call.
type Service struct {
	groups   GroupStore
	expenses ExpenseStore
}

// NewService creates a new settlement service
func NewService(groups GroupStore, expenses ExpenseStore) *Service {
	return &Service{groups: groups, expenses: expenses}
}

// GroupSummary computes the settlement summary for a group. The per-person
// share is the equal split of the group total, rounded per mode. Expense paid
// status maps are expanded over the full member set so every member appears
// in every line.
func (s *Service) GroupSummary(ctx context.Context, groupID string, mode split.RoundMode) (*Summary, error) {
	g, members, err := s.groups.GetWithMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenses.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	var total float64
	advanced := make(map[string]float64, len(members))
	for _, e := range expenses {
		total += e.Amount
		advanced[e.PaidBy] += e.Amount
	}

	perPerson := 0.0
	if len(members) > 0 {
		share, err := split.Equal(total, len(members))
		if err != nil {
			return nil, err
		}
		perPerson = split.Round(share, mode)
	}

	summary := &Summary{
		GroupID:     g.ID,
		Total:       total,
		PerPerson:   perPerson,
		RoundMode:   mode,
		MemberCount: len(members),
		Members:     make([]*MemberStanding, 0, len(members)),
		Expenses:    make([]*ExpenseLine, 0, len(expenses)),
	}

	for _, m := range members {
		summary.Members = append(summary.Members, &MemberStanding{
			UserID:   m.UserID,
			Username: m.Username,
			Paid:     m.Paid,
			Advanced: advanced[m.UserID],
			Share:    perPerson,
			Balance:  advanced[m.UserID] - perPerson,
		})
	}

	for _, e := range expenses {
		line := &ExpenseLine{
			ID:          e.ID,
			Description: e.Description,
			Amount:      e.Amount,
			PaidBy:      e.PaidBy,
			PaidStatus:  make(map[string]bool, len(members)),
		}
		for _, m := range members {
			line.PaidStatus[m.UserID] = e.PaidStatus[m.UserID]
		}
		summary.Expenses = append(summary.Expenses, line)
	}

	return summary, nil
}
