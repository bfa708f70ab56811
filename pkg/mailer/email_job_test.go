package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/event"
)

func TestMembershipNotice(t *testing.T) {
	req := require.New(t)

	job, ok := MembershipNotice("chat", event.ChatEvent{
		Type: event.AddedToGroup, GroupName: "team", UserEmail: "b@x.io", UserName: "bob",
	})
	req.True(ok)
	req.Equal("b@x.io", job.To)
	req.Contains(job.Subject, "team")
	req.Contains(job.Text, "bob")

	job, ok = MembershipNotice("chat", event.ChatEvent{Type: event.RemovedFromGroup, GroupName: "team", UserEmail: "b@x.io"})
	req.True(ok)
	req.Contains(job.Subject, "removed")
	req.Contains(job.Text, "b@x.io")

	_, ok = MembershipNotice("chat", event.ChatEvent{Type: event.MessageCreated, UserEmail: "b@x.io"})
	req.False(ok)

	_, ok = MembershipNotice("chat", event.ChatEvent{Type: event.AddedToGroup})
	req.False(ok)
}
