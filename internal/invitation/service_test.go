package invitation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/warikan-app/warikan/internal/group"
	"github.com/warikan-app/warikan/internal/user"
)

type fakeStore struct {
	invitations map[string]*Invitation
	nextID      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{invitations: make(map[string]*Invitation)}
}

func (f *fakeStore) Create(ctx context.Context, inv *Invitation) error {
	f.nextID++
	inv.ID = fmt.Sprintf("inv-%d", f.nextID)
	cp := *inv
	f.invitations[inv.ID] = &cp
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*Invitation, error) {
	inv, ok := f.invitations[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeStore) FindPending(ctx context.Context, groupID string, userID, email *string) (*Invitation, error) {
	for _, inv := range f.invitations {
		if inv.GroupID != groupID || inv.Status != StatusPending {
			continue
		}
		if userID != nil && inv.UserID != nil && *inv.UserID == *userID {
			cp := *inv
			return &cp, nil
		}
		if email != nil && inv.Email != nil && *inv.Email == *email {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListPendingByUserID(ctx context.Context, userID string) ([]*Invitation, error) {
	var out []*Invitation
	for _, inv := range f.invitations {
		if inv.Status == StatusPending && inv.UserID != nil && *inv.UserID == userID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStore) ListPendingByEmail(ctx context.Context, email string) ([]*Invitation, error) {
	var out []*Invitation
	for _, inv := range f.invitations {
		if inv.Status == StatusPending && inv.Email != nil && *inv.Email == email {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id string, status Status) error {
	inv, ok := f.invitations[id]
	if !ok {
		return errors.New("invitation not found")
	}
	inv.Status = status
	return nil
}

type fakeGroupService struct {
	groups  map[string]*group.Group
	members map[string]map[string]bool
}

func newFakeGroupService(groups ...*group.Group) *fakeGroupService {
	f := &fakeGroupService{
		groups:  make(map[string]*group.Group),
		members: make(map[string]map[string]bool),
	}
	for _, g := range groups {
		f.groups[g.ID] = g
		f.members[g.ID] = make(map[string]bool)
	}
	return f
}

func (f *fakeGroupService) GetByID(ctx context.Context, id string) (*group.Group, error) {
	g, ok := f.groups[id]
	if !ok {
		return nil, group.ErrGroupNotFound
	}
	return g, nil
}

func (f *fakeGroupService) AddMember(ctx context.Context, groupID, userID string) error {
	if _, ok := f.groups[groupID]; !ok {
		return group.ErrGroupNotFound
	}
	f.members[groupID][userID] = true
	return nil
}

func (f *fakeGroupService) GetWithMembers(ctx context.Context, id string) (*group.Group, []*group.Member, error) {
	g, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	var members []*group.Member
	for userID := range f.members[id] {
		members = append(members, &group.Member{GroupID: id, UserID: userID})
	}
	return g, members, nil
}

type fakeUserStore struct {
	users map[string]*user.User
}

func (f *fakeUserStore) GetByHandle(ctx context.Context, handle string) (*user.User, error) {
	return f.users[handle], nil
}

type fakeNotifier struct {
	invites []string
}

func (f *fakeNotifier) NotifyGroupInvite(ctx context.Context, recipientID, groupName, invitationID string) error {
	f.invites = append(f.invites, recipientID)
	return nil
}

func newTestService() (*Service, *fakeStore, *fakeGroupService, *fakeNotifier) {
	store := newFakeStore()
	groups := newFakeGroupService(&group.Group{ID: "g1", Name: "Trip", CreatedBy: "owner"})
	users := &fakeUserStore{users: map[string]*user.User{
		"bob": {ID: "u-bob", Handle: "bob", Email: "bob@example.com"},
	}}
	notifier := &fakeNotifier{}
	svc := NewService(store, groups, users, notifier, nil)
	return svc, store, groups, notifier
}

func TestSendByHandle(t *testing.T) {
	svc, _, _, notifier := newTestService()

	inv, already, err := svc.Send(context.Background(), "g1", "bob")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if already {
		t.Error("first invitation reported as duplicate")
	}
	if inv.UserID == nil || *inv.UserID != "u-bob" {
		t.Errorf("UserID = %v, want u-bob", inv.UserID)
	}
	if inv.Email != nil {
		t.Errorf("Email should be nil for handle targets, got %v", *inv.Email)
	}
	if inv.Status != StatusPending {
		t.Errorf("Status = %v, want pending", inv.Status)
	}
	if len(notifier.invites) != 1 || notifier.invites[0] != "u-bob" {
		t.Errorf("notifier.invites = %v, want [u-bob]", notifier.invites)
	}
}

func TestSendByEmailDoesNotProvision(t *testing.T) {
	svc, _, _, notifier := newTestService()

	inv, already, err := svc.Send(context.Background(), "g1", "carol@example.com")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if already {
		t.Error("first invitation reported as duplicate")
	}
	if inv.UserID != nil {
		t.Errorf("UserID should be nil for email targets, got %v", *inv.UserID)
	}
	if inv.Email == nil || *inv.Email != "carol@example.com" {
		t.Errorf("Email = %v, want carol@example.com", inv.Email)
	}
	if len(notifier.invites) != 0 {
		t.Errorf("email targets must not be notified, got %v", notifier.invites)
	}
}

func TestSendUnknownHandle(t *testing.T) {
	svc, _, _, _ := newTestService()

	if _, _, err := svc.Send(context.Background(), "g1", "nobody"); !errors.Is(err, ErrInviteeNotFound) {
		t.Errorf("Send() error = %v, want %v", err, ErrInviteeNotFound)
	}
}

func TestSendUnknownGroup(t *testing.T) {
	svc, _, _, _ := newTestService()

	if _, _, err := svc.Send(context.Background(), "missing", "bob"); !errors.Is(err, group.ErrGroupNotFound) {
		t.Errorf("Send() error = %v, want %v", err, group.ErrGroupNotFound)
	}
}

func TestSendDuplicatePending(t *testing.T) {
	svc, store, _, _ := newTestService()

	first, _, err := svc.Send(context.Background(), "g1", "bob")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	second, already, err := svc.Send(context.Background(), "g1", "bob")
	if err != nil {
		t.Fatalf("second Send() error = %v", err)
	}
	if !already {
		t.Error("duplicate pending invitation not reported")
	}
	if second.ID != first.ID {
		t.Errorf("duplicate returned id %s, want existing %s", second.ID, first.ID)
	}
	if len(store.invitations) != 1 {
		t.Errorf("store has %d invitations, want 1", len(store.invitations))
	}
}

func TestListPendingMergesAndDedupes(t *testing.T) {
	svc, _, _, _ := newTestService()

	if _, _, err := svc.Send(context.Background(), "g1", "bob"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if _, _, err := svc.Send(context.Background(), "g1", "bob@example.com"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	pending, err := svc.ListPending(context.Background(), "u-bob", "bob@example.com")
	if err != nil {
		t.Fatalf("ListPending() error = %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("ListPending() returned %d invitations, want 2", len(pending))
	}

	seen := map[string]bool{}
	for _, inv := range pending {
		if seen[inv.ID] {
			t.Errorf("invitation %s listed twice", inv.ID)
		}
		seen[inv.ID] = true
	}
}

func TestAcceptPending(t *testing.T) {
	svc, store, groups, _ := newTestService()

	inv, _, err := svc.Send(context.Background(), "g1", "bob")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	g, members, err := svc.Accept(context.Background(), inv.ID, "u-bob", "bob@example.com")
	if err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if g.ID != "g1" {
		t.Errorf("group = %s, want g1", g.ID)
	}
	if !groups.members["g1"]["u-bob"] {
		t.Error("caller was not added to the group")
	}
	if len(members) != 1 {
		t.Errorf("members = %d, want 1", len(members))
	}
	if store.invitations[inv.ID].Status != StatusAccepted {
		t.Errorf("status = %v, want accepted", store.invitations[inv.ID].Status)
	}
}

func TestAcceptIsIdempotent(t *testing.T) {
	svc, store, _, _ := newTestService()

	inv, _, _ := svc.Send(context.Background(), "g1", "bob")
	if _, _, err := svc.Accept(context.Background(), inv.ID, "u-bob", ""); err != nil {
		t.Fatalf("first Accept() error = %v", err)
	}
	if _, _, err := svc.Accept(context.Background(), inv.ID, "u-bob", ""); err != nil {
		t.Fatalf("second Accept() error = %v", err)
	}
	if store.invitations[inv.ID].Status != StatusAccepted {
		t.Errorf("status = %v, want accepted", store.invitations[inv.ID].Status)
	}
}

func TestAcceptDeclinedConflicts(t *testing.T) {
	svc, _, _, _ := newTestService()

	inv, _, _ := svc.Send(context.Background(), "g1", "bob")
	if err := svc.Decline(context.Background(), inv.ID, "u-bob", ""); err != nil {
		t.Fatalf("Decline() error = %v", err)
	}
	if _, _, err := svc.Accept(context.Background(), inv.ID, "u-bob", ""); !errors.Is(err, ErrAlreadyDeclined) {
		t.Errorf("Accept() error = %v, want %v", err, ErrAlreadyDeclined)
	}
}

func TestAcceptByWrongCaller(t *testing.T) {
	svc, _, _, _ := newTestService()

	inv, _, _ := svc.Send(context.Background(), "g1", "bob")
	if _, _, err := svc.Accept(context.Background(), inv.ID, "u-mallory", "mallory@example.com"); !errors.Is(err, ErrNotInvitee) {
		t.Errorf("Accept() error = %v, want %v", err, ErrNotInvitee)
	}
}

func TestAcceptByEmailTarget(t *testing.T) {
	svc, _, groups, _ := newTestService()

	inv, _, err := svc.Send(context.Background(), "g1", "carol@example.com")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if _, _, err := svc.Accept(context.Background(), inv.ID, "u-carol", "carol@example.com"); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if !groups.members["g1"]["u-carol"] {
		t.Error("email invitee was not added to the group")
	}
}

func TestAcceptAfterGroupDeleted(t *testing.T) {
	svc, store, groups, _ := newTestService()

	inv, _, _ := svc.Send(context.Background(), "g1", "bob")
	delete(groups.groups, "g1")

	if _, _, err := svc.Accept(context.Background(), inv.ID, "u-bob", ""); !errors.Is(err, group.ErrGroupNotFound) {
		t.Errorf("Accept() error = %v, want %v", err, group.ErrGroupNotFound)
	}
	if store.invitations[inv.ID].Status != StatusPending {
		t.Errorf("dangling invitation status = %v, want pending", store.invitations[inv.ID].Status)
	}
}

func TestDeclineTwiceIsNoop(t *testing.T) {
	svc, store, _, _ := newTestService()

	inv, _, _ := svc.Send(context.Background(), "g1", "bob")
	if err := svc.Decline(context.Background(), inv.ID, "u-bob", ""); err != nil {
		t.Fatalf("first Decline() error = %v", err)
	}
	if err := svc.Decline(context.Background(), inv.ID, "u-bob", ""); err != nil {
		t.Fatalf("second Decline() error = %v", err)
	}
	if store.invitations[inv.ID].Status != StatusDeclined {
		t.Errorf("status = %v, want declined", store.invitations[inv.ID].Status)
	}
}

func TestDeclineAcceptedConflicts(t *testing.T) {
	svc, _, _, _ := newTestService()

	inv, _, _ := svc.Send(context.Background(), "g1", "bob")
	if _, _, err := svc.Accept(context.Background(), inv.ID, "u-bob", ""); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if err := svc.Decline(context.Background(), inv.ID, "u-bob", ""); !errors.Is(err, ErrAlreadyAccepted) {
		t.Errorf("Decline() error = %v, want %v", err, ErrAlreadyAccepted)
	}
}

func TestDeclineUnknownInvitation(t *testing.T) {
	svc, _, _, _ := newTestService()

	if err := svc.Decline(context.Background(), "missing", "u-bob", ""); !errors.Is(err, ErrInvitationNotFound) {
		t.Errorf("Decline() error = %v, want %v", err, ErrInvitationNotFound)
	}
}
