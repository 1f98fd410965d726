package expense

// CreateExpenseRequest represents the request to create an expense. PaidBy
// defaults to the caller when omitted.
type CreateExpenseRequest struct {
	Description string  `json:"description" validate:"required,min=1,max=255"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=50"`
	PaidBy      string  `json:"paid_by,omitempty"`
}

// UpdateExpenseRequest represents the request to update an expense
type UpdateExpenseRequest struct {
	Description *string  `json:"description,omitempty" validate:"omitempty,min=1,max=255"`
	Amount      *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=50"`
}

// SetPaidStatusRequest toggles the caller's paid flag on an expense
type SetPaidStatusRequest struct {
	Paid *bool `json:"paid" validate:"required"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID            string          `json:"id"`
	GroupID       string          `json:"group_id"`
	Description   string          `json:"description"`
	Amount        float64         `json:"amount"`
	Category      *string         `json:"category,omitempty"`
	PaidBy        string          `json:"paid_by"`
	PayerUsername string          `json:"payer_username,omitempty"`
	CreatedAt     string          `json:"created_at"`
	PaidStatus    map[string]bool `json:"paid_status"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:            e.ID,
		GroupID:       e.GroupID,
		Description:   e.Description,
		Amount:        e.Amount,
		Category:      e.Category,
		PaidBy:        e.PaidBy,
		PayerUsername: e.PayerUsername,
		CreatedAt:     e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		PaidStatus:    e.PaidStatus,
	}
}

// ToResponseList converts an expense list for snapshot payloads
func ToResponseList(expenses []*Expense) []*ExpenseResponse {
	out := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = e.ToResponse()
	}
	return out
}
