// Package rpcserver adapts the chatroom package's domain handlers onto the
// migchat gRPC service descriptor: translating wire messages to and from
// domain types, mapping sentinel chatroom errors to status codes, and
// running the per-stream replay-then-forward loop each streaming RPC needs.
package rpcserver

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/migchat/server/internal/chatroom"
	"github.com/migchat/server/internal/rpc/migchat"
	"github.com/migchat/server/internal/store"
)

// chatRoomServer implements migchat.ChatRoomServiceServer over a
// *chatroom.ChatRoom.
type chatRoomServer struct {
	cr     *chatroom.ChatRoom
	logger *slog.Logger
}

var _ migchat.ChatRoomServiceServer = (*chatRoomServer)(nil)

func statusFor(err error) error {
	switch {
	case errors.Is(err, chatroom.ErrChatNotFound), errors.Is(err, chatroom.ErrUserNotFound), errors.Is(err, chatroom.ErrNotSubscribed):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, chatroom.ErrInvalidPostID):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func wireUser(u *store.User) *migchat.User {
	return &migchat.User{ID: u.ID, Name: u.Name, ShortName: u.ShortName, Created: u.Created}
}

func wireUsers(us []*store.User) []*migchat.User {
	out := make([]*migchat.User, len(us))
	for i, u := range us {
		out[i] = wireUser(u)
	}
	return out
}

func wireChat(c *store.Chat) *migchat.Chat {
	return &migchat.Chat{ID: c.ID, Permanent: c.Permanent, Description: c.Description, Users: c.Users, Created: c.Created}
}

func wireChats(cs []*store.Chat) []*migchat.Chat {
	out := make([]*migchat.Chat, len(cs))
	for i, c := range cs {
		out[i] = wireChat(c)
	}
	return out
}

func wirePost(p *store.Post) *migchat.Post {
	return &migchat.Post{ID: p.ID, ChatID: p.ChatID, UserID: p.UserID, Text: p.Text, Attachments: p.Attachments, Created: p.Created}
}

func wireUsersUpdate(u chatroom.UsersUpdate) *migchat.UpdateUsers {
	return &migchat.UpdateUsers{Added: wireUsers(u.Added), Online: u.Online, Offline: u.Offline}
}

func wireChatsUpdate(u chatroom.ChatsUpdate) *migchat.UpdateChats {
	return &migchat.UpdateChats{Updated: wireChats(u.Updated), Gone: u.Gone}
}

func (s *chatRoomServer) Register(ctx context.Context, in *migchat.UserInfo) (*migchat.RegistrationInfo, error) {
	userID, created, err := s.cr.Register(ctx, in.Name, in.ShortName)
	if err != nil {
		return nil, statusFor(err)
	}
	return &migchat.RegistrationInfo{Registration: migchat.Registration{UserID: userID}, Created: created}, nil
}

func (s *chatRoomServer) Logout(ctx context.Context, in *migchat.Registration) (*migchat.Result, error) {
	s.cr.Logout(in.UserID)
	return &migchat.Result{OK: true}, nil
}

func (s *chatRoomServer) GetUsers(in *migchat.Registration, stream migchat.ChatRoomService_GetUsersServer) error {
	snapshot, ch, err := s.cr.GetUsers(stream.Context(), in.UserID)
	if err != nil {
		return statusFor(err)
	}
	defer s.cr.DetachUser(in.UserID)

	if err := stream.Send(wireUsersUpdate(snapshot)); err != nil {
		return err
	}
	for {
		select {
		case <-stream.Context().Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			if err := stream.Send(wireUsersUpdate(chatroom.TranslateUserEvent(ev))); err != nil {
				return err
			}
		}
	}
}

func (s *chatRoomServer) GetChats(in *migchat.Registration, stream migchat.ChatRoomService_GetChatsServer) error {
	snapshot, ch, err := s.cr.GetChats(stream.Context(), in.UserID)
	if err != nil {
		return statusFor(err)
	}
	defer s.cr.DetachChats(in.UserID)

	if err := stream.Send(wireChatsUpdate(snapshot)); err != nil {
		return err
	}
	for {
		select {
		case <-stream.Context().Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			update, visible := chatroom.TranslateChatEvent(ev, in.UserID)
			if !visible {
				continue
			}
			if err := stream.Send(wireChatsUpdate(update)); err != nil {
				return err
			}
		}
	}
}

func (s *chatRoomServer) GetInvitations(in *migchat.Registration, stream migchat.ChatRoomService_GetInvitationsServer) error {
	ch := s.cr.GetInvitations(in.UserID)
	defer s.cr.DetachInvitations(in.UserID)

	for {
		select {
		case <-stream.Context().Done():
			return nil
		case inv, ok := <-ch:
			if !ok {
				return nil
			}
			wire := &migchat.Invitation{ChatID: inv.ChatID, FromUserID: inv.FromUserID, ToUserID: inv.ToUserID}
			if err := stream.Send(wire); err != nil {
				return err
			}
		}
	}
}

func (s *chatRoomServer) GetPosts(in *migchat.Registration, stream migchat.ChatRoomService_GetPostsServer) error {
	replay, ch, err := s.cr.GetPosts(stream.Context(), in.UserID)
	if err != nil {
		return statusFor(err)
	}
	defer s.cr.DetachPosts(in.UserID)

	for _, p := range replay {
		if err := stream.Send(wirePost(p)); err != nil {
			return err
		}
	}
	for {
		select {
		case <-stream.Context().Done():
			return nil
		case p, ok := <-ch:
			if !ok {
				return nil
			}
			if err := stream.Send(wirePost(p)); err != nil {
				return err
			}
		}
	}
}

func (s *chatRoomServer) CreateChat(ctx context.Context, in *migchat.ChatInfo) (*migchat.Chat, error) {
	c, err := s.cr.CreateChat(ctx, in.UserID, in.Permanent, in.AutoEnter, in.Description, in.DesiredUsers)
	if err != nil {
		return nil, statusFor(err)
	}
	return wireChat(c), nil
}

func (s *chatRoomServer) InviteUser(ctx context.Context, in *migchat.Invitation) (*migchat.Result, error) {
	if err := s.cr.InviteUser(ctx, in.ChatID, in.FromUserID, in.ToUserID); err != nil {
		return nil, statusFor(err)
	}
	return &migchat.Result{OK: true}, nil
}

func (s *chatRoomServer) EnterChat(ctx context.Context, in *migchat.ChatReference) (*migchat.Result, error) {
	if _, err := s.cr.EnterChat(ctx, in.UserID, in.ChatID); err != nil {
		return nil, statusFor(err)
	}
	return &migchat.Result{OK: true}, nil
}

func (s *chatRoomServer) LeaveChat(ctx context.Context, in *migchat.ChatReference) (*migchat.Result, error) {
	if err := s.cr.LeaveChat(ctx, in.UserID, in.ChatID); err != nil {
		return nil, statusFor(err)
	}
	return &migchat.Result{OK: true}, nil
}

func (s *chatRoomServer) CreatePost(ctx context.Context, in *migchat.Post) (*migchat.Result, error) {
	if _, err := s.cr.CreatePost(ctx, in.ID, in.ChatID, in.UserID, in.Text, in.Attachments); err != nil {
		return nil, statusFor(err)
	}
	return &migchat.Result{OK: true}, nil
}
