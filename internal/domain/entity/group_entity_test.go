package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestUser(id string) *User {
	return &User{ID: id, Name: id, Email: id + "@x.io"}
}

func TestGroup_AddUserListOnGroup_Idempotent(t *testing.T) {
	req := require.New(t)
	owner := newTestUser("owner")
	g := NewGroup("g", "d", owner)
	u := newTestUser("u1")

	g.AddUserListOnGroup([]*User{u})
	g.AddUserListOnGroup([]*User{u})

	req.True(g.IsUserInGroup(u))
	req.Equal([]string{"u1"}, g.MemberIDs())
}

func TestGroup_AddUserListOnGroup_SkipsDuplicatesAndOwner(t *testing.T) {
	req := require.New(t)
	owner := newTestUser("owner")
	g := NewGroup("g", "d", owner)

	// Given an input list with repeats, the owner and a nil entry
	g.AddUserListOnGroup([]*User{
		newTestUser("b"), newTestUser("a"), newTestUser("b"), owner, nil, newTestUser("c"),
	})

	// Then first occurrence order is kept and the owner stays implicit
	req.Equal([]string{"b", "a", "c"}, g.MemberIDs())
	req.True(g.IsUserInGroup(owner))
}

func TestGroup_IsUserAdminer(t *testing.T) {
	req := require.New(t)
	owner := newTestUser("owner")
	member := newTestUser("m")
	g := NewGroup("g", "d", owner)
	g.AddUserListOnGroup([]*User{member})

	req.True(g.IsUserAdminer(owner))
	req.True(g.IsUserAdminer(&User{ID: "owner"}))
	req.False(g.IsUserAdminer(member))
	req.False(g.IsUserAdminer(newTestUser("stranger")))
	req.False(g.IsUserAdminer(nil))
}

func TestGroup_IsUserInGroup(t *testing.T) {
	req := require.New(t)
	owner := newTestUser("owner")
	g := NewGroup("g", "d", owner)
	g.AddUserListOnGroup([]*User{newTestUser("m")})

	req.True(g.IsUserInGroup(owner))
	req.True(g.IsUserInGroup(&User{ID: "m"}))
	req.False(g.IsUserInGroup(newTestUser("other")))
	req.False(g.IsUserInGroup(nil))
}

func TestGroup_RemoveUserListFromGroup(t *testing.T) {
	req := require.New(t)
	owner := newTestUser("owner")
	g := NewGroup("g", "d", owner)
	g.AddUserListOnGroup([]*User{newTestUser("a"), newTestUser("b"), newTestUser("c")})

	g.RemoveUserListFromGroup([]*User{{ID: "b"}, {ID: "missing"}, owner})

	req.Equal([]string{"a", "c"}, g.MemberIDs())
	req.False(g.IsUserInGroup(&User{ID: "b"}))
	// owner is not stored in Members, so removal leaves it in place
	req.True(g.IsUserInGroup(owner))
	req.True(g.IsUserAdminer(owner))
}
