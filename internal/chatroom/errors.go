package chatroom

import "errors"

// Sentinel errors a handler can return; the RPC layer maps each to a
// specific status code. Any other error is treated as an internal
// storage/serialization failure.
var (
	ErrChatNotFound  = errors.New("chatroom: chat not found")
	ErrUserNotFound  = errors.New("chatroom: user not found")
	ErrNotSubscribed = errors.New("chatroom: recipient did not subscribe to invitations")
	ErrInvalidPostID = errors.New("chatroom: post id must be zero")
)
