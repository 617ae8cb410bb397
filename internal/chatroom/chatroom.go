// Package chatroom implements the RPC-independent core of migchat: the
// one process-wide structure that wires storage, presence, and the four
// subscription registries together and exposes one method per RPC.
//
// Handlers share state only through the fields of ChatRoom — no handler
// talks to another handler directly. Each handler validates input,
// performs a storage step, fans the resulting change out through the
// relevant registry, and returns; streaming handlers additionally attach
// a subscription and replay current state before the caller starts
// forwarding live events.
package chatroom

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/migchat/server/internal/identity"
	"github.com/migchat/server/internal/presence"
	"github.com/migchat/server/internal/store"
	"github.com/migchat/server/internal/subscription"
)

// ChatRoom is the shared structure every RPC handler operates on. One
// instance is created at startup and torn down at shutdown; all handlers
// borrow a reference to it.
type ChatRoom struct {
	storage      store.Store
	presence     *presence.Registry
	users        *subscription.Registry[UserEvent]
	chats        *subscription.Registry[ChatEvent]
	invitations  *subscription.Registry[Invitation]
	posts        *subscription.Registry[*store.Post]
	logger       *slog.Logger
	now          func() int64
}

// New wires a ChatRoom around the given storage backend. Pass nil logger
// for a silent default.
func New(storage store.Store, logger *slog.Logger) *ChatRoom {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "chatroom")
	return &ChatRoom{
		storage:     storage,
		presence:    presence.New(),
		users:       subscription.New[UserEvent]("users", subscription.DefaultCapacity, logger),
		chats:       subscription.New[ChatEvent]("chats", subscription.DefaultCapacity, logger),
		invitations: subscription.New[Invitation]("invitations", subscription.DefaultCapacity, logger),
		posts:       subscription.New[*store.Post]("posts", subscription.DefaultCapacity, logger),
		logger:      logger,
		now:         func() int64 { return time.Now().Unix() },
	}
}

// Close releases the underlying storage.
func (cr *ChatRoom) Close() error {
	return cr.storage.Close()
}

// Register implements the register RPC: §4.6.
func (cr *ChatRoom) Register(ctx context.Context, name, shortName string) (userID uint64, created int64, err error) {
	userID = identity.UserID(name, shortName)
	cr.presence.Enter(userID)

	existing, err := cr.storage.ReadUser(ctx, userID)
	if err == nil {
		cr.users.Broadcast(UserEvent{Kind: UserEventOnline, UserID: userID})
		return userID, existing.Created, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return 0, 0, fmt.Errorf("reading user: %w", err)
	}

	created = cr.now()
	u := &store.User{ID: userID, Name: name, ShortName: shortName, Created: created}
	if err := cr.storage.WriteUser(ctx, u); err != nil {
		return 0, 0, fmt.Errorf("writing user: %w", err)
	}
	cr.users.Broadcast(UserEvent{Kind: UserEventInfo, User: u})
	return userID, created, nil
}

// Logout implements the logout RPC: §4.6. Idempotent — calling it for a
// user with no active session is a harmless no-op save for the broadcast.
func (cr *ChatRoom) Logout(userID uint64) {
	cr.users.Detach(userID)
	cr.chats.Detach(userID)
	cr.invitations.Detach(userID)
	cr.posts.Detach(userID)
	cr.presence.Leave(userID)
	cr.users.Broadcast(UserEvent{Kind: UserEventOffline, UserID: userID})
}

// GetUsers implements the get_users RPC's attach-and-replay step: §4.6.
// The snapshot is read before the subscription is attached, so a user
// registered concurrently with this call never lands in both the snapshot
// and the channel; one registered between the snapshot read and the
// attach lands in neither. The caller is responsible for forwarding
// events off the returned channel, translating each with
// TranslateUserEvent, until it closes, and then calling DetachUser.
func (cr *ChatRoom) GetUsers(ctx context.Context, callerID uint64) (UsersUpdate, <-chan UserEvent, error) {
	all, err := cr.storage.ReadAllUsers(ctx)
	if err != nil {
		return UsersUpdate{}, nil, fmt.Errorf("reading users: %w", err)
	}

	others := make([]*store.User, 0, len(all))
	ids := make([]uint64, 0, len(all))
	for _, u := range all {
		if u.ID == callerID {
			continue
		}
		others = append(others, u)
		ids = append(ids, u.ID)
	}
	online, offline := cr.presence.Classify(ids)

	ch := cr.users.Attach(callerID)
	return UsersUpdate{Added: others, Online: online, Offline: offline}, ch, nil
}

// DetachUser removes callerID's get_users subscription.
func (cr *ChatRoom) DetachUser(callerID uint64) { cr.users.Detach(callerID) }

// GetChats implements the get_chats RPC's attach-and-replay step: §4.6,
// applying the chat visibility rule to the initial snapshot. The snapshot
// is read before the subscription is attached, so a chat created or
// updated concurrently with this call never lands in both the snapshot and
// the channel; a change made between the snapshot read and the attach
// lands in neither.
func (cr *ChatRoom) GetChats(ctx context.Context, callerID uint64) (ChatsUpdate, <-chan ChatEvent, error) {
	all, err := cr.storage.ReadAllChats(ctx)
	if err != nil {
		return ChatsUpdate{}, nil, fmt.Errorf("reading chats: %w", err)
	}

	visible := make([]*store.Chat, 0, len(all))
	for _, c := range all {
		if ChatVisible(c, callerID) {
			visible = append(visible, c)
		}
	}

	ch := cr.chats.Attach(callerID)
	return ChatsUpdate{Updated: visible}, ch, nil
}

// DetachChats removes callerID's get_chats subscription.
func (cr *ChatRoom) DetachChats(callerID uint64) { cr.chats.Detach(callerID) }

// GetInvitations implements the get_invitations RPC: §4.6. There is no
// replay; invitations are transient and delivered only while subscribed.
func (cr *ChatRoom) GetInvitations(callerID uint64) <-chan Invitation {
	return cr.invitations.Attach(callerID)
}

// DetachInvitations removes callerID's get_invitations subscription.
func (cr *ChatRoom) DetachInvitations(callerID uint64) { cr.invitations.Detach(callerID) }

// GetPosts implements the get_posts RPC's attach-and-replay step: §4.6,
// replaying every post in every chat the caller is a member of, in
// insertion order, before the caller starts forwarding live posts. The
// replay is read before the subscription is attached, so a post written
// concurrently with this call never lands in both the replay and the
// channel; a post written between the replay read and the attach lands in
// neither.
func (cr *ChatRoom) GetPosts(ctx context.Context, callerID uint64) ([]*store.Post, <-chan *store.Post, error) {
	chats, err := cr.storage.ReadAllChats(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("reading chats: %w", err)
	}

	var replay []*store.Post
	for _, c := range chats {
		if !c.HasMember(callerID) {
			continue
		}
		count, err := cr.storage.ChatPostsCount(ctx, c.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("counting posts: %w", err)
		}
		posts, err := cr.storage.ReadChatPosts(ctx, c.ID, 0, count)
		if err != nil {
			return nil, nil, fmt.Errorf("reading posts: %w", err)
		}
		replay = append(replay, posts...)
	}

	ch := cr.posts.Attach(callerID)
	return replay, ch, nil
}

// DetachPosts removes callerID's get_posts subscription.
func (cr *ChatRoom) DetachPosts(callerID uint64) { cr.posts.Detach(callerID) }

// CreateChat implements the create_chat RPC: §4.6.
func (cr *ChatRoom) CreateChat(ctx context.Context, userID uint64, permanent, autoEnter bool, description string, desiredUsers []uint64) (*store.Chat, error) {
	var users []uint64
	if autoEnter {
		users = dedupSortedWith(userID, desiredUsers)
	}

	chatID := identity.ChatID(description, users)

	updated, err := cr.storage.UpdateChat(ctx, chatID, func(c *store.Chat) bool {
		if autoEnter && !c.HasMember(userID) {
			c.Users = append(c.Users, userID)
			return true
		}
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("updating chat: %w", err)
	}
	if updated != nil {
		cr.chats.Broadcast(ChatEvent{Kind: ChatEventUpdated, Chat: updated})
		return updated, nil
	}

	fresh := &store.Chat{
		ID:          chatID,
		Permanent:   permanent,
		Description: description,
		Users:       users,
		Created:     cr.now(),
	}
	if err := cr.storage.WriteChat(ctx, fresh); err != nil {
		return nil, fmt.Errorf("writing chat: %w", err)
	}
	cr.chats.Broadcast(ChatEvent{Kind: ChatEventUpdated, Chat: fresh})
	return fresh, nil
}

// dedupSortedWith returns the sorted, duplicate-free union of userID and
// desiredUsers. Sorting is mandatory: identity.ChatID hashes the member
// list, so two clients proposing the same dialog in a different order
// must converge on one chat id.
func dedupSortedWith(userID uint64, desiredUsers []uint64) []uint64 {
	set := make(map[uint64]struct{}, len(desiredUsers)+1)
	set[userID] = struct{}{}
	for _, id := range desiredUsers {
		set[id] = struct{}{}
	}
	users := make([]uint64, 0, len(set))
	for id := range set {
		users = append(users, id)
	}
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })
	return users
}

// InviteUser implements the invite_user RPC: §4.6.
func (cr *ChatRoom) InviteUser(ctx context.Context, chatID, fromUserID, toUserID uint64) error {
	if _, err := cr.storage.ReadChat(ctx, chatID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrChatNotFound
		}
		return fmt.Errorf("reading chat: %w", err)
	}
	if _, err := cr.storage.ReadUser(ctx, toUserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("reading user: %w", err)
	}

	if !cr.invitations.Has(toUserID) {
		return ErrNotSubscribed
	}
	invitation := Invitation{ChatID: chatID, FromUserID: fromUserID, ToUserID: toUserID}
	if !cr.invitations.SendTo(toUserID, invitation) {
		return fmt.Errorf("sending invitation: recipient channel unavailable")
	}
	return nil
}

// EnterChat implements the enter_chat RPC: §4.6.
func (cr *ChatRoom) EnterChat(ctx context.Context, userID, chatID uint64) (*store.Chat, error) {
	updated, err := cr.storage.UpdateChat(ctx, chatID, func(c *store.Chat) bool {
		if c.HasMember(userID) {
			return false
		}
		c.Users = append(c.Users, userID)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("updating chat: %w", err)
	}
	if updated == nil {
		return nil, ErrChatNotFound
	}
	cr.chats.Broadcast(ChatEvent{Kind: ChatEventUpdated, Chat: updated})
	return updated, nil
}

// LeaveChat implements the leave_chat RPC: §4.6, auto-closing an
// ephemeral chat once its last member leaves.
func (cr *ChatRoom) LeaveChat(ctx context.Context, userID, chatID uint64) error {
	updated, err := cr.storage.UpdateChat(ctx, chatID, func(c *store.Chat) bool {
		for i, id := range c.Users {
			if id == userID {
				c.Users = append(c.Users[:i], c.Users[i+1:]...)
				return true
			}
		}
		return false
	})
	if err != nil {
		return fmt.Errorf("updating chat: %w", err)
	}
	if updated == nil {
		return ErrChatNotFound
	}

	if !updated.Permanent && len(updated.Users) == 0 {
		if err := cr.storage.RemoveChat(ctx, chatID); err != nil {
			return fmt.Errorf("removing chat: %w", err)
		}
		cr.chats.Broadcast(ChatEvent{Kind: ChatEventClosed, ChatID: chatID})
		return nil
	}

	cr.chats.Broadcast(ChatEvent{Kind: ChatEventUpdated, Chat: updated})
	return nil
}

// CreatePost implements the create_post RPC: §4.6. Fan-out is targeted:
// only current members of post.chat_id who also hold a live get_posts
// subscription receive the copy.
func (cr *ChatRoom) CreatePost(ctx context.Context, id, chatID, userID uint64, text string, attachments []byte) (*store.Post, error) {
	if id != 0 {
		return nil, ErrInvalidPostID
	}

	post := &store.Post{
		ID:          identity.NewPostID(),
		ChatID:      chatID,
		UserID:      userID,
		Text:        text,
		Attachments: attachments,
		Created:     cr.now(),
	}
	if err := cr.storage.WritePost(ctx, post); err != nil {
		return nil, fmt.Errorf("writing post: %w", err)
	}

	chat, err := cr.storage.ReadChat(ctx, chatID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("reading chat for fan-out: %w", err)
	}
	if chat != nil {
		for _, member := range chat.Users {
			cr.posts.SendTo(member, post)
		}
	}
	return post, nil
}
