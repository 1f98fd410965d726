package group

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type fakeStore struct {
	groups  map[string]*Group
	members map[string]map[string]*Member
	nextID  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		groups:  make(map[string]*Group),
		members: make(map[string]map[string]*Member),
	}
}

func (f *fakeStore) Create(ctx context.Context, g *Group) error {
	f.nextID++
	g.ID = fmt.Sprintf("g-%d", f.nextID)
	f.groups[g.ID] = g
	f.members[g.ID] = make(map[string]*Member)
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*Group, error) {
	return f.groups[id], nil
}

func (f *fakeStore) ListByMember(ctx context.Context, userID string) ([]*Group, error) {
	var out []*Group
	for id, members := range f.members {
		if _, ok := members[userID]; ok {
			out = append(out, f.groups[id])
		}
	}
	return out, nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	delete(f.groups, id)
	delete(f.members, id)
	return nil
}

func (f *fakeStore) AddMember(ctx context.Context, groupID, userID string) (bool, error) {
	if _, ok := f.members[groupID][userID]; ok {
		return false, nil
	}
	f.members[groupID][userID] = &Member{GroupID: groupID, UserID: userID}
	return true, nil
}

func (f *fakeStore) GetMembers(ctx context.Context, groupID string) ([]*Member, error) {
	var out []*Member
	for _, m := range f.members[groupID] {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeStore) SetMemberPaid(ctx context.Context, groupID, userID string, paid bool) (bool, error) {
	m, ok := f.members[groupID][userID]
	if !ok {
		return false, nil
	}
	m.Paid = paid
	return true, nil
}

type fakePublisher struct {
	events []string // key/kind pairs
}

func (f *fakePublisher) Publish(key, kind string, payload interface{}) {
	f.events = append(f.events, key+"/"+kind)
}

func TestCreateAddsCreatorAsMember(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)

	g, err := svc.Create(context.Background(), "u1", &CreateGroupRequest{Name: "Trip"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	members, _ := store.GetMembers(context.Background(), g.ID)
	if len(members) != 1 || members[0].UserID != "u1" {
		t.Errorf("members = %v, want just the creator", members)
	}
}

func TestAddMemberIsIdempotent(t *testing.T) {
	store := newFakeStore()
	events := &fakePublisher{}
	svc := NewService(store, events)

	g, _ := svc.Create(context.Background(), "u1", &CreateGroupRequest{Name: "Trip"})

	if err := svc.AddMember(context.Background(), g.ID, "u2"); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}
	published := len(events.events)

	// Joining again must not grow the set or re-publish.
	if err := svc.AddMember(context.Background(), g.ID, "u2"); err != nil {
		t.Fatalf("second AddMember() error = %v", err)
	}

	members, _ := store.GetMembers(context.Background(), g.ID)
	if len(members) != 2 {
		t.Errorf("members = %d, want 2", len(members))
	}
	if len(events.events) != published {
		t.Errorf("re-join published %d extra snapshots", len(events.events)-published)
	}
}

func TestAddMemberUnknownGroup(t *testing.T) {
	svc := NewService(newFakeStore(), nil)

	if err := svc.AddMember(context.Background(), "missing", "u1"); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("AddMember() error = %v, want %v", err, ErrGroupNotFound)
	}
}

func TestDeleteRequiresOwner(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)

	g, _ := svc.Create(context.Background(), "u1", &CreateGroupRequest{Name: "Trip"})
	_ = svc.AddMember(context.Background(), g.ID, "u2")

	if err := svc.Delete(context.Background(), g.ID, "u2"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("Delete() by member error = %v, want %v", err, ErrNotOwner)
	}
	if err := svc.Delete(context.Background(), g.ID, "u1"); err != nil {
		t.Errorf("Delete() by creator error = %v", err)
	}
	if err := svc.Delete(context.Background(), g.ID, "u1"); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("Delete() of deleted group error = %v, want %v", err, ErrGroupNotFound)
	}
}

func TestSetMemberPaidPublishes(t *testing.T) {
	store := newFakeStore()
	events := &fakePublisher{}
	svc := NewService(store, events)

	g, _ := svc.Create(context.Background(), "u1", &CreateGroupRequest{Name: "Trip"})

	if err := svc.SetMemberPaid(context.Background(), g.ID, "u1", true); err != nil {
		t.Fatalf("SetMemberPaid() error = %v", err)
	}
	if !store.members[g.ID]["u1"].Paid {
		t.Error("paid flag not set")
	}
	want := "group:" + g.ID + "/members"
	found := false
	for _, e := range events.events {
		if e == want {
			found = true
		}
	}
	if !found {
		t.Errorf("no members snapshot published, events = %v", events.events)
	}

	if err := svc.SetMemberPaid(context.Background(), g.ID, "ghost", true); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("SetMemberPaid() for non-member error = %v, want %v", err, ErrMemberNotFound)
	}
}
