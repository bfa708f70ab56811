package mailer

import (
	"fmt"

	"github.com/oksasatya/go-ddd-group-chat/internal/domain/event"
)

// EmailJob is a rendered plain-text notice.
type EmailJob struct {
	To      string
	Subject string
	Text    string
}

// MembershipNotice builds the email sent to a user added to or removed from
// a group. ok is false for event types that do not notify by email.
func MembershipNotice(appName string, ev event.ChatEvent) (job EmailJob, ok bool) {
	if ev.UserEmail == "" {
		return EmailJob{}, false
	}
	name := ev.UserName
	if name == "" {
		name = ev.UserEmail
	}
	switch ev.Type {
	case event.AddedToGroup:
		return EmailJob{
			To:      ev.UserEmail,
			Subject: fmt.Sprintf("You were added to %s", ev.GroupName),
			Text:    fmt.Sprintf("Hi %s,\n\nYou are now a member of the group %q on %s.\n", name, ev.GroupName, appName),
		}, true
	case event.RemovedFromGroup:
		return EmailJob{
			To:      ev.UserEmail,
			Subject: fmt.Sprintf("You were removed from %s", ev.GroupName),
			Text:    fmt.Sprintf("Hi %s,\n\nYou are no longer a member of the group %q on %s.\n", name, ev.GroupName, appName),
		}, true
	}
	return EmailJob{}, false
}
