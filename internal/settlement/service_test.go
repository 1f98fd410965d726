package settlement

import (
	"context"
	"errors"
	"testing"

	"github.com/warikan-app/warikan/internal/expense"
	"github.com/warikan-app/warikan/internal/group"
	"github.com/warikan-app/warikan/internal/settlement/split"
)

type fakeGroupStore struct {
	group   *group.Group
	members []*group.Member
	err     error
}

func (f *fakeGroupStore) GetWithMembers(ctx context.Context, id string) (*group.Group, []*group.Member, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.group, f.members, nil
}

type fakeExpenseStore struct {
	expenses []*expense.Expense
}

func (f *fakeExpenseStore) ListByGroup(ctx context.Context, groupID string) ([]*expense.Expense, error) {
	return f.expenses, nil
}

func TestGroupSummary(t *testing.T) {
	groups := &fakeGroupStore{
		group: &group.Group{ID: "g1", Name: "Trip", CreatedBy: "u1"},
		members: []*group.Member{
			{GroupID: "g1", UserID: "u1", Username: "alice"},
			{GroupID: "g1", UserID: "u2", Username: "bob", Paid: true},
			{GroupID: "g1", UserID: "u3", Username: "carol"},
		},
	}
	expenses := &fakeExpenseStore{
		expenses: []*expense.Expense{
			{ID: "e1", GroupID: "g1", Description: "Hotel", Amount: 200, PaidBy: "u1", PaidStatus: map[string]bool{"u2": true}},
			{ID: "e2", GroupID: "g1", Description: "Dinner", Amount: 100, PaidBy: "u2", PaidStatus: map[string]bool{}},
		},
	}

	svc := NewService(groups, expenses)
	summary, err := svc.GroupSummary(context.Background(), "g1", split.RoundNearest)
	if err != nil {
		t.Fatalf("GroupSummary() error = %v", err)
	}

	if summary.Total != 300 {
		t.Errorf("Total = %v, want 300", summary.Total)
	}
	if summary.PerPerson != 100 {
		t.Errorf("PerPerson = %v, want 100", summary.PerPerson)
	}
	if summary.MemberCount != 3 {
		t.Errorf("MemberCount = %v, want 3", summary.MemberCount)
	}

	standings := make(map[string]*MemberStanding)
	for _, m := range summary.Members {
		standings[m.UserID] = m
	}
	if standings["u1"].Balance != 100 {
		t.Errorf("u1 balance = %v, want 100", standings["u1"].Balance)
	}
	if standings["u2"].Balance != 0 {
		t.Errorf("u2 balance = %v, want 0", standings["u2"].Balance)
	}
	if standings["u3"].Balance != -100 {
		t.Errorf("u3 balance = %v, want -100", standings["u3"].Balance)
	}
	if !standings["u2"].Paid {
		t.Error("u2 paid flag should carry through")
	}
}

func TestGroupSummaryExpandsPaidStatus(t *testing.T) {
	groups := &fakeGroupStore{
		group: &group.Group{ID: "g1"},
		members: []*group.Member{
			{GroupID: "g1", UserID: "u1"},
			{GroupID: "g1", UserID: "u2"},
		},
	}
	expenses := &fakeExpenseStore{
		expenses: []*expense.Expense{
			{ID: "e1", GroupID: "g1", Amount: 50, PaidBy: "u1", PaidStatus: map[string]bool{"u1": true}},
		},
	}

	svc := NewService(groups, expenses)
	summary, err := svc.GroupSummary(context.Background(), "g1", split.RoundNearest)
	if err != nil {
		t.Fatalf("GroupSummary() error = %v", err)
	}

	line := summary.Expenses[0]
	if len(line.PaidStatus) != 2 {
		t.Fatalf("PaidStatus has %d entries, want 2", len(line.PaidStatus))
	}
	if !line.PaidStatus["u1"] {
		t.Error("u1 should be paid")
	}
	if paid, ok := line.PaidStatus["u2"]; !ok || paid {
		t.Error("u2 should be present and unpaid")
	}
}

func TestGroupSummaryRoundModes(t *testing.T) {
	groups := &fakeGroupStore{
		group: &group.Group{ID: "g1"},
		members: []*group.Member{
			{UserID: "u1"}, {UserID: "u2"}, {UserID: "u3"},
		},
	}
	expenses := &fakeExpenseStore{
		expenses: []*expense.Expense{
			{ID: "e1", Amount: 100, PaidBy: "u1", PaidStatus: map[string]bool{}},
		},
	}
	svc := NewService(groups, expenses)

	tests := []struct {
		mode split.RoundMode
		want float64
	}{
		{split.RoundNearest, 33},
		{split.RoundUp, 34},
		{split.RoundDown, 33},
	}
	for _, tt := range tests {
		summary, err := svc.GroupSummary(context.Background(), "g1", tt.mode)
		if err != nil {
			t.Fatalf("GroupSummary(%q) error = %v", tt.mode, err)
		}
		if summary.PerPerson != tt.want {
			t.Errorf("PerPerson with %q = %v, want %v", tt.mode, summary.PerPerson, tt.want)
		}
	}
}

func TestGroupSummaryGroupNotFound(t *testing.T) {
	svc := NewService(&fakeGroupStore{err: group.ErrGroupNotFound}, &fakeExpenseStore{})
	if _, err := svc.GroupSummary(context.Background(), "missing", split.RoundNearest); !errors.Is(err, group.ErrGroupNotFound) {
		t.Errorf("error = %v, want %v", err, group.ErrGroupNotFound)
	}
}
