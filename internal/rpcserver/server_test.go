package rpcserver

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/migchat/server/internal/chatroom"
	"github.com/migchat/server/internal/codec"
	"github.com/migchat/server/internal/rpc/migchat"
	"github.com/migchat/server/internal/store"
)

func startTestServer(t *testing.T) migchat.ChatRoomServiceClient {
	t.Helper()

	path := filepath.Join(t.TempDir(), "migchat_rpc_test.db")
	s, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	cr := chatroom.New(s, nil)
	t.Cleanup(func() { _ = cr.Close() })

	srv := New(cr, "127.0.0.1:0", nil)
	go func() { _ = srv.Serve() }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	})

	var addr net.Addr
	select {
	case addr = <-srv.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("server never became ready")
	}

	conn, err := grpc.NewClient(addr.String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(codec.JSON{})),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return migchat.NewChatRoomServiceClient(conn)
}

func TestRegisterOverRPC(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	reply, err := client.Register(ctx, &migchat.UserInfo{Name: "Alice", ShortName: "al"})
	require.NoError(t, err)
	assert.NotZero(t, reply.Registration.UserID)
	assert.NotZero(t, reply.Created)

	again, err := client.Register(ctx, &migchat.UserInfo{Name: "Alice", ShortName: "al"})
	require.NoError(t, err)
	assert.Equal(t, reply.Registration.UserID, again.Registration.UserID)
	assert.Equal(t, reply.Created, again.Created)
}

func TestInviteUserNotFoundOverRPC(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	reg, err := client.Register(ctx, &migchat.UserInfo{Name: "Bob", ShortName: "b"})
	require.NoError(t, err)

	_, err = client.InviteUser(ctx, &migchat.Invitation{ChatID: 999, FromUserID: reg.Registration.UserID, ToUserID: 1})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestCreatePostInvalidIDOverRPC(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	_, err := client.CreatePost(ctx, &migchat.Post{ID: 1, ChatID: 1, UserID: 1, Text: "hi"})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGetUsersStreamReplaysSnapshotThenDeltas(t *testing.T) {
	client := startTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	u1, err := client.Register(ctx, &migchat.UserInfo{Name: "U1", ShortName: "u1"})
	require.NoError(t, err)

	stream, err := client.GetUsers(ctx, &migchat.Registration{UserID: u1.Registration.UserID})
	require.NoError(t, err)

	first, err := stream.Recv()
	require.NoError(t, err)
	assert.Empty(t, first.Added, "snapshot for the only registered user must exclude themselves")

	_, err = client.Register(ctx, &migchat.UserInfo{Name: "U2", ShortName: "u2"})
	require.NoError(t, err)

	update, err := stream.Recv()
	require.NoError(t, err)
	require.Len(t, update.Added, 1)
	assert.Equal(t, "U2", update.Added[0].Name)
}

func TestCreateChatAndEnterOverRPC(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	u1, err := client.Register(ctx, &migchat.UserInfo{Name: "U1", ShortName: "u1"})
	require.NoError(t, err)
	u2, err := client.Register(ctx, &migchat.UserInfo{Name: "U2", ShortName: "u2"})
	require.NoError(t, err)

	chat, err := client.CreateChat(ctx, &migchat.ChatInfo{
		UserID:      u1.Registration.UserID,
		Permanent:   true,
		AutoEnter:   true,
		Description: "room",
	})
	require.NoError(t, err)
	assert.Len(t, chat.Users, 1)

	result, err := client.EnterChat(ctx, &migchat.ChatReference{UserID: u2.Registration.UserID, ChatID: chat.ID})
	require.NoError(t, err)
	assert.True(t, result.OK)
}
