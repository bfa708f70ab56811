package entity

import "time"

// Group is a chat group. The owner is implicitly a member and the only
// adminer; it is never stored in Members.
//
// Version is an optimistic concurrency token owned by the repository.
type Group struct {
	ID          string
	Name        string
	Description string
	Owner       *User
	Members     []*User
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewGroup(name, description string, owner *User) *Group {
	now := time.Now().UTC()
	return &Group{
		Name:        name,
		Description: description,
		Owner:       owner,
		Members:     []*User{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (g *Group) IsUserInGroup(u *User) bool {
	if g.IsUserAdminer(u) {
		return true
	}
	return g.memberIndex(u) >= 0
}

func (g *Group) IsUserAdminer(u *User) bool {
	return sameUser(g.Owner, u)
}

// AddUserListOnGroup merges users into Members by id, keeping the first
// occurrence. The owner and nil entries are skipped.
func (g *Group) AddUserListOnGroup(users []*User) {
	for _, u := range users {
		if u == nil || g.IsUserAdminer(u) || g.memberIndex(u) >= 0 {
			continue
		}
		g.Members = append(g.Members, u)
	}
	g.UpdatedAt = time.Now().UTC()
}

// RemoveUserListFromGroup drops every member whose id appears in users.
// Removing a non-member, or the owner, changes nothing.
func (g *Group) RemoveUserListFromGroup(users []*User) {
	drop := make(map[string]struct{}, len(users))
	for _, u := range users {
		if u != nil {
			drop[u.ID] = struct{}{}
		}
	}
	kept := make([]*User, 0, len(g.Members))
	for _, m := range g.Members {
		if _, ok := drop[m.ID]; !ok {
			kept = append(kept, m)
		}
	}
	g.Members = kept
	g.UpdatedAt = time.Now().UTC()
}

func (g *Group) MemberIDs() []string {
	ids := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		ids = append(ids, m.ID)
	}
	return ids
}

func (g *Group) memberIndex(u *User) int {
	if u == nil {
		return -1
	}
	for i, m := range g.Members {
		if m.ID == u.ID {
			return i
		}
	}
	return -1
}
