package group

import (
	"context"
	"errors"
	"log/slog"

	"github.com/warikan-app/warikan/internal/realtime"
)

// Common errors
var (
	ErrGroupNotFound  = errors.New("group not found")
	ErrMemberNotFound = errors.New("member not found")
	ErrNotOwner       = errors.New("only the group creator can do this")
)

// Store defines the persistence operations the service needs.
// *Repository satisfies it; tests use an in-memory fake.
type Store interface {
	Create(ctx context.Context, g *Group) error
	GetByID(ctx context.Context, id string) (*Group, error)
	ListByMember(ctx context.Context, userID string) ([]*Group, error)
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, groupID, userID string) (bool, error)
	GetMembers(ctx context.Context, groupID string) ([]*Member, error)
	SetMemberPaid(ctx context.Context, groupID, userID string, paid bool) (bool, error)
}

// Publisher pushes full-state snapshots to live subscribers.
// *realtime.Hub satisfies it.
type Publisher interface {
	Publish(key, kind string, payload interface{})
}

// Service handles group business logic
type Service struct {
	repo   Store
	events Publisher
}

// NewService creates a new group service. events may be nil when no realtime
// delivery is wanted (tests).
func NewService(repo Store, events Publisher) *Service {
	return &Service{repo: repo, events: events}
}

// Create creates a new group and adds the creator as its first member.
// The two writes are separate round trips, not a transaction.
func (s *Service) Create(ctx context.Context, creatorID string, req *CreateGroupRequest) (*Group, error) {
	g := &Group{
		Name:      req.Name,
		CreatedBy: creatorID,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}

	if _, err := s.repo.AddMember(ctx, g.ID, creatorID); err != nil {
		return nil, err
	}

	slog.Info("group created", "group_id", g.ID, "created_by", creatorID)
	return g, nil
}

// GetByID retrieves a group by its ID
func (s *Service) GetByID(ctx context.Context, id string) (*Group, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

// GetWithMembers retrieves a group with all its members
func (s *Service) GetWithMembers(ctx context.Context, id string) (*Group, []*Member, error) {
	g, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	members, err := s.repo.GetMembers(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return g, members, nil
}

// ListByMember retrieves all groups the user belongs to
func (s *Service) ListByMember(ctx context.Context, userID string) ([]*Group, error) {
	return s.repo.ListByMember(ctx, userID)
}

// Delete removes a group. Only the creator may delete it.
func (s *Service) Delete(ctx context.Context, id, requesterID string) error {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if g == nil {
		return ErrGroupNotFound
	}
	if g.CreatedBy != requesterID {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("group deleted", "group_id", id, "by", requesterID)
	return nil
}

// AddMember adds a user to the group's member set. Both membership paths
// (invitation accept and direct link join) converge here; re-adding an
// existing member is a no-op.
func (s *Service) AddMember(ctx context.Context, groupID, userID string) error {
	g, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if g == nil {
		return ErrGroupNotFound
	}

	added, err := s.repo.AddMember(ctx, groupID, userID)
	if err != nil {
		return err
	}

	if added {
		slog.Info("member joined group", "group_id", groupID, "user_id", userID)
		s.publishMembers(ctx, groupID)
	}
	return nil
}

// GetMembers retrieves all members of a group
func (s *Service) GetMembers(ctx context.Context, groupID string) ([]*Member, error) {
	g, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	return s.repo.GetMembers(ctx, groupID)
}

// SetMemberPaid updates the group-level payment flag for a member
func (s *Service) SetMemberPaid(ctx context.Context, groupID, userID string, paid bool) error {
	found, err := s.repo.SetMemberPaid(ctx, groupID, userID, paid)
	if err != nil {
		return err
	}
	if !found {
		return ErrMemberNotFound
	}

	s.publishMembers(ctx, groupID)
	return nil
}

// publishMembers pushes the full member list to group subscribers.
func (s *Service) publishMembers(ctx context.Context, groupID string) {
	if s.events == nil {
		return
	}

	members, err := s.repo.GetMembers(ctx, groupID)
	if err != nil {
		slog.Warn("failed to load members for snapshot", "group_id", groupID, "error", err)
		return
	}

	s.events.Publish(realtime.GroupKey(groupID), "members", MembersToResponse(members))
}
