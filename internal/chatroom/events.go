package chatroom

import "github.com/migchat/server/internal/store"

// UserEventKind tags the three shapes a UserChanged notification can take.
type UserEventKind int

const (
	UserEventInfo UserEventKind = iota
	UserEventOnline
	UserEventOffline
)

// UserEvent is the tagged change event fanned out to every get_users
// subscriber. Exactly one of User or UserID is meaningful, depending on
// Kind.
type UserEvent struct {
	Kind   UserEventKind
	User   *store.User
	UserID uint64
}

// ChatEventKind tags the two shapes a ChatChanged notification can take.
type ChatEventKind int

const (
	ChatEventUpdated ChatEventKind = iota
	ChatEventClosed
)

// ChatEvent is the tagged change event fanned out to every get_chats
// subscriber.
type ChatEvent struct {
	Kind   ChatEventKind
	Chat   *store.Chat
	ChatID uint64
}

// Invitation is delivered directly to exactly one recipient; it is never
// persisted and never broadcast.
type Invitation struct {
	ChatID     uint64
	FromUserID uint64
	ToUserID   uint64
}

// UsersUpdate is the shape a get_users subscriber receives, both as the
// initial replay and as each subsequent delta.
type UsersUpdate struct {
	Added   []*store.User
	Online  []uint64
	Offline []uint64
}

// ChatsUpdate is the shape a get_chats subscriber receives, both as the
// initial replay and as each subsequent delta.
type ChatsUpdate struct {
	Updated []*store.Chat
	Gone    []uint64
}

// TranslateUserEvent turns one UserChanged event into the UpdateUsers delta
// described for get_users: a new registration counts as an added+online
// user, an Online/Offline event is a presence delta with no new record.
func TranslateUserEvent(ev UserEvent) UsersUpdate {
	switch ev.Kind {
	case UserEventInfo:
		return UsersUpdate{Added: []*store.User{ev.User}, Online: []uint64{ev.User.ID}}
	case UserEventOnline:
		return UsersUpdate{Online: []uint64{ev.UserID}}
	case UserEventOffline:
		return UsersUpdate{Offline: []uint64{ev.UserID}}
	default:
		return UsersUpdate{}
	}
}

// ChatVisible implements the chat visibility rule: a chat is visible to a
// user iff it has a non-empty description (a named, discoverable chat) or
// the user is already a member (a private dialog they belong to).
func ChatVisible(c *store.Chat, userID uint64) bool {
	return c.Description != "" || c.HasMember(userID)
}

// TranslateChatEvent turns one ChatChanged event into the UpdateChats delta
// for a specific viewer, applying chat visibility to Updated events.
// visible reports false when the event should be skipped entirely (an
// Updated event for a chat this viewer cannot see).
func TranslateChatEvent(ev ChatEvent, viewerID uint64) (update ChatsUpdate, visible bool) {
	switch ev.Kind {
	case ChatEventUpdated:
		if !ChatVisible(ev.Chat, viewerID) {
			return ChatsUpdate{}, false
		}
		return ChatsUpdate{Updated: []*store.Chat{ev.Chat}}, true
	case ChatEventClosed:
		return ChatsUpdate{Gone: []uint64{ev.ChatID}}, true
	default:
		return ChatsUpdate{}, false
	}
}
