package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	req := require.New(t)
	u := NewUser("alice", "a@x.io", "hash")

	req.NotEmpty(u.ID)
	req.Equal("a@x.io", u.Email)
	req.Empty(u.Session)
	req.NotEqual(u.ID, NewUser("bob", "b@x.io", "hash").ID)
}

func TestUser_UpdateSession_Overwrites(t *testing.T) {
	req := require.New(t)
	u := NewUser("alice", "a@x.io", "hash")

	u.UpdateSession("first")
	u.UpdateSession("second")

	req.Equal("second", u.Session)
}
