package group

// CreateGroupRequest represents the request to create a new group
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// JoinByLinkRequest carries a join deep link or bare group id
type JoinByLinkRequest struct {
	Link string `json:"link" validate:"required"`
}

// SetMemberPaidRequest toggles the group-level payment flag for a member
type SetMemberPaidRequest struct {
	Paid *bool `json:"paid" validate:"required"`
}

// GroupResponse represents the response for a group
type GroupResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	CreatedBy string            `json:"created_by"`
	CreatedAt string            `json:"created_at"`
	JoinLink  string            `json:"join_link,omitempty"`
	Members   []*MemberResponse `json:"members,omitempty"`
}

// MemberResponse represents a member in a group response
type MemberResponse struct {
	UserID    string  `json:"user_id"`
	Username  string  `json:"username"`
	Handle    string  `json:"handle"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Paid      bool    `json:"paid"`
	JoinedAt  string  `json:"joined_at"`
}

// ToResponse converts a Group model to a GroupResponse DTO
func (g *Group) ToResponse() *GroupResponse {
	return &GroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		CreatedBy: g.CreatedBy,
		CreatedAt: g.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Member model to a MemberResponse DTO
func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		UserID:    m.UserID,
		Username:  m.Username,
		Handle:    m.Handle,
		AvatarURL: m.AvatarURL,
		Paid:      m.Paid,
		JoinedAt:  m.JoinedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// MembersToResponse converts a member list for snapshot payloads
func MembersToResponse(members []*Member) []*MemberResponse {
	out := make([]*MemberResponse, len(members))
	for i, m := range members {
		out[i] = m.ToResponse()
	}
	return out
}
