package settlement

import "github.com/warikan-app/warikan/internal/settlement/split"

// Summary is the computed settlement view of a group: the group total, the
// rounded per-person share, and each member's standing against that share.
type Summary struct {
	GroupID     string            `json:"group_id"`
	Total       float64           `json:"total"`
	PerPerson   float64           `json:"per_person"`
	RoundMode   split.RoundMode   `json:"round_mode"`
	MemberCount int               `json:"member_count"`
	Members     []*MemberStanding `json:"members"`
	Expenses    []*ExpenseLine    `json:"expenses"`
}

// MemberStanding is one member's position in the settlement. Balance is what
// the member advanced minus their share: positive means the group owes them.
type MemberStanding struct {
	UserID   string  `json:"user_id"`
	Username string  `json:"username"`
	Paid     bool    `json:"paid"`
	Advanced float64 `json:"advanced"`
	Share    float64 `json:"share"`
	Balance  float64 `json:"balance"`
}

// ExpenseLine is one expense as it appears in the summary. PaidStatus is
// expanded over the full member set; members without a stored entry show
// false.
type ExpenseLine struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	PaidBy      string          `json:"paid_by"`
	PaidStatus  map[string]bool `json:"paid_status"`
}
