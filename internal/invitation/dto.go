package invitation

// SendInvitationRequest invites a target into a group. Target is either a
// registered handle or an email address.
type SendInvitationRequest struct {
	GroupID string `json:"group_id" validate:"required"`
	Target  string `json:"target" validate:"required,min=1,max=255"`
}

// InvitationResponse represents the response for an invitation
type InvitationResponse struct {
	ID             string  `json:"id"`
	GroupID        string  `json:"group_id"`
	GroupName      string  `json:"group_name,omitempty"`
	UserID         *string `json:"user_id,omitempty"`
	Email          *string `json:"email,omitempty"`
	Status         Status  `json:"status"`
	CreatedAt      string  `json:"created_at"`
	AlreadyInvited bool    `json:"already_invited,omitempty"`
}

// ToResponse converts an Invitation model to an InvitationResponse DTO
func (inv *Invitation) ToResponse() *InvitationResponse {
	return &InvitationResponse{
		ID:        inv.ID,
		GroupID:   inv.GroupID,
		GroupName: inv.GroupName,
		UserID:    inv.UserID,
		Email:     inv.Email,
		Status:    inv.Status,
		CreatedAt: inv.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponseList converts an invitation list for snapshot payloads
func ToResponseList(invitations []*Invitation) []*InvitationResponse {
	out := make([]*InvitationResponse, len(invitations))
	for i, inv := range invitations {
		out[i] = inv.ToResponse()
	}
	return out
}
