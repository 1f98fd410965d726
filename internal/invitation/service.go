package invitation

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/warikan-app/warikan/internal/group"
	"github.com/warikan-app/warikan/internal/realtime"
	"github.com/warikan-app/warikan/internal/user"
)

// Common errors
var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrNotInvitee         = errors.New("invitation is addressed to someone else")
	ErrAlreadyAccepted    = errors.New("invitation was already accepted")
	ErrAlreadyDeclined    = errors.New("invitation was already declined")
	ErrInviteeNotFound    = errors.New("no user with that handle")
)

// Store defines the persistence operations the service needs.
// *Repository satisfies it; tests use an in-memory fake.
type Store interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByID(ctx context.Context, id string) (*Invitation, error)
	FindPending(ctx context.Context, groupID string, userID, email *string) (*Invitation, error)
	ListPendingByUserID(ctx context.Context, userID string) ([]*Invitation, error)
	ListPendingByEmail(ctx context.Context, email string) ([]*Invitation, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

// GroupService is the slice of the group feature the invitation workflow
// needs. *group.Service satisfies it; accepting an invitation goes through
// the same AddMember path as a direct link join.
type GroupService interface {
	GetByID(ctx context.Context, id string) (*group.Group, error)
	AddMember(ctx context.Context, groupID, userID string) error
	GetWithMembers(ctx context.Context, id string) (*group.Group, []*group.Member, error)
}

// UserStore resolves invite targets. *user.Repository satisfies it.
type UserStore interface {
	GetByHandle(ctx context.Context, handle string) (*user.User, error)
}

// Notifier records a persisted notification for a user.
type Notifier interface {
	NotifyGroupInvite(ctx context.Context, recipientID, groupName, invitationID string) error
}

// Publisher pushes full-state snapshots to live subscribers.
type Publisher interface {
	Publish(key, kind string, payload interface{})
}

// Service implements the invitation workflow
type Service struct {
	repo     Store
	groups   GroupService
	users    UserStore
	notifier Notifier
	events   Publisher
}

// NewService creates a new invitation service. notifier and events may be
// nil.
func NewService(repo Store, groups GroupService, users UserStore, notifier Notifier, events Publisher) *Service {
	return &Service{
		repo:     repo,
		groups:   groups,
		users:    users,
		notifier: notifier,
		events:   events,
	}
}

// Send invites a target into a group. A target containing "@" is treated as
// an email address and invited without provisioning an account; any other
// target must match a registered handle exactly. A pending invitation of the
// same target in the same group is not duplicated; the existing one is
// returned with alreadyInvited set.
func (s *Service) Send(ctx context.Context, groupID, target string) (*Invitation, bool, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, false, err
	}

	var userID, email *string
	if strings.Contains(target, "@") {
		email = &target
	} else {
		u, err := s.users.GetByHandle(ctx, target)
		if err != nil {
			return nil, false, err
		}
		if u == nil {
			return nil, false, ErrInviteeNotFound
		}
		userID = &u.ID
	}

	existing, err := s.repo.FindPending(ctx, groupID, userID, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, true, nil
	}

	inv := &Invitation{
		GroupID:   groupID,
		UserID:    userID,
		Email:     email,
		Status:    StatusPending,
		GroupName: g.Name,
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, false, err
	}

	slog.Info("invitation sent", "invitation_id", inv.ID, "group_id", groupID)

	if userID != nil {
		if s.notifier != nil {
			if err := s.notifier.NotifyGroupInvite(ctx, *userID, g.Name, inv.ID); err != nil {
				slog.Warn("failed to notify invitee", "user_id", *userID, "error", err)
			}
		}
		s.publishInvitations(ctx, *userID, "")
	}

	return inv, false, nil
}

// ListPending retrieves the caller's pending invitations: those addressed to
// their user id and those addressed to their email, merged and deduplicated.
func (s *Service) ListPending(ctx context.Context, userID, email string) ([]*Invitation, error) {
	byUser, err := s.repo.ListPendingByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	byEmail, err := s.repo.ListPendingByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(byUser)+len(byEmail))
	out := make([]*Invitation, 0, len(byUser)+len(byEmail))
	for _, inv := range append(byUser, byEmail...) {
		if _, ok := seen[inv.ID]; ok {
			continue
		}
		seen[inv.ID] = struct{}{}
		out = append(out, inv)
	}
	return out, nil
}

// Accept accepts an invitation and joins the caller to the group. Accepting
// an already-accepted invitation re-runs the membership write, which is a
// no-op, and succeeds; accepting a declined one is a conflict. If the group
// was deleted in the meantime the membership write fails with
// group.ErrGroupNotFound and the invitation stays as it was.
func (s *Service) Accept(ctx context.Context, id, callerID, callerEmail string) (*group.Group, []*group.Member, error) {
	inv, err := s.authorize(ctx, id, callerID, callerEmail)
	if err != nil {
		return nil, nil, err
	}
	if inv.Status == StatusDeclined {
		return nil, nil, ErrAlreadyDeclined
	}

	if err := s.groups.AddMember(ctx, inv.GroupID, callerID); err != nil {
		return nil, nil, err
	}

	if inv.Status == StatusPending {
		if err := s.repo.UpdateStatus(ctx, inv.ID, StatusAccepted); err != nil {
			return nil, nil, err
		}
		slog.Info("invitation accepted", "invitation_id", inv.ID, "user_id", callerID)
		s.publishInvitations(ctx, callerID, callerEmail)
	}

	return s.groups.GetWithMembers(ctx, inv.GroupID)
}

// Decline declines an invitation. Declining twice is a no-op; declining an
// accepted invitation is a conflict.
func (s *Service) Decline(ctx context.Context, id, callerID, callerEmail string) error {
	inv, err := s.authorize(ctx, id, callerID, callerEmail)
	if err != nil {
		return err
	}
	switch inv.Status {
	case StatusAccepted:
		return ErrAlreadyAccepted
	case StatusDeclined:
		return nil
	}

	if err := s.repo.UpdateStatus(ctx, inv.ID, StatusDeclined); err != nil {
		return err
	}

	slog.Info("invitation declined", "invitation_id", inv.ID, "user_id", callerID)
	s.publishInvitations(ctx, callerID, callerEmail)
	return nil
}

// authorize loads an invitation and checks it is addressed to the caller,
// either by user id or by email.
func (s *Service) authorize(ctx context.Context, id, callerID, callerEmail string) (*Invitation, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInvitationNotFound
	}

	if inv.UserID != nil && *inv.UserID == callerID {
		return inv, nil
	}
	if inv.Email != nil && callerEmail != "" && *inv.Email == callerEmail {
		return inv, nil
	}
	return nil, ErrNotInvitee
}

// publishInvitations pushes the caller's pending invitation list to their
// user feed.
func (s *Service) publishInvitations(ctx context.Context, userID, email string) {
	if s.events == nil {
		return
	}

	pending, err := s.ListPending(ctx, userID, email)
	if err != nil {
		slog.Warn("failed to load invitations for snapshot", "user_id", userID, "error", err)
		return
	}

	s.events.Publish(realtime.UserKey(userID), "invitations", ToResponseList(pending))
}
