// Package domainerr is the closed set of failures a use case may return.
// Callers switch on Kind (or errors.Is against the sentinels); anything that
// did not originate from a precondition check is reported as ErrUnexpected.
package domainerr

import "errors"

type Kind uint8

const (
	KindUnexpected Kind = iota
	KindInvalidUser
	KindInvalidCredentials
	KindCredentialsAlreadyInUse
	KindMissingGroupOwner
	KindInvalidGroup
	KindUserNotFound
	KindUserNotAdminer
	KindUserAlreadyInGroup
	KindUserIsntInGroup
	KindInvalidMessage
	KindCurrentUserIsntMessageOwner
)

var kindNames = map[Kind]string{
	KindUnexpected:                  "unexpected",
	KindInvalidUser:                 "invalid_user",
	KindInvalidCredentials:          "invalid_credentials",
	KindCredentialsAlreadyInUse:     "credentials_already_in_use",
	KindMissingGroupOwner:           "missing_group_owner",
	KindInvalidGroup:                "invalid_group",
	KindUserNotFound:                "user_not_found",
	KindUserNotAdminer:              "user_not_adminer",
	KindUserAlreadyInGroup:          "user_already_in_group",
	KindUserIsntInGroup:             "user_isnt_in_group",
	KindInvalidMessage:              "invalid_message",
	KindCurrentUserIsntMessageOwner: "current_user_isnt_message_owner",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[KindUnexpected]
}

// Error is a domain failure. Values are only ever the sentinels below, so
// errors.Is compares by identity.
type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Kind() Kind    { return e.kind }

var (
	ErrUnexpected                  = &Error{KindUnexpected, "unexpected error"}
	ErrInvalidUser                 = &Error{KindInvalidUser, "invalid user"}
	ErrInvalidCredentials          = &Error{KindInvalidCredentials, "invalid credentials"}
	ErrCredentialsAlreadyInUse     = &Error{KindCredentialsAlreadyInUse, "credentials already in use"}
	ErrMissingGroupOwner           = &Error{KindMissingGroupOwner, "missing group owner"}
	ErrInvalidGroup                = &Error{KindInvalidGroup, "invalid group"}
	ErrUserNotFound                = &Error{KindUserNotFound, "user not found"}
	ErrUserNotAdminer              = &Error{KindUserNotAdminer, "user is not the group adminer"}
	ErrUserAlreadyInGroup          = &Error{KindUserAlreadyInGroup, "user already in group"}
	ErrUserIsntInGroup             = &Error{KindUserIsntInGroup, "user is not in group"}
	ErrInvalidMessage              = &Error{KindInvalidMessage, "invalid message"}
	ErrCurrentUserIsntMessageOwner = &Error{KindCurrentUserIsntMessageOwner, "current user is not the message owner"}
)

// KindOf reports the kind carried by err. Non-domain errors are KindUnexpected.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.kind
	}
	return KindUnexpected
}

// Collapse returns the matching sentinel when err is one of allowed and
// ErrUnexpected otherwise. A nil err stays nil.
func Collapse(err error, allowed ...*Error) error {
	if err == nil {
		return nil
	}
	for _, a := range allowed {
		if errors.Is(err, a) {
			return a
		}
	}
	return ErrUnexpected
}
