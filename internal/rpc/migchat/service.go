package migchat

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ChatRoomServiceServer is the server API for the migchat chat-room
// service. The four streaming methods receive the request and a
// send-only stream instead of returning a response, matching the
// server-streaming shape generated by protoc for an RPC whose response
// is declared as `stream`.
type ChatRoomServiceServer interface {
	Register(context.Context, *UserInfo) (*RegistrationInfo, error)
	Logout(context.Context, *Registration) (*Result, error)
	GetUsers(*Registration, ChatRoomService_GetUsersServer) error
	GetChats(*Registration, ChatRoomService_GetChatsServer) error
	GetInvitations(*Registration, ChatRoomService_GetInvitationsServer) error
	GetPosts(*Registration, ChatRoomService_GetPostsServer) error
	CreateChat(context.Context, *ChatInfo) (*Chat, error)
	InviteUser(context.Context, *Invitation) (*Result, error)
	EnterChat(context.Context, *ChatReference) (*Result, error)
	LeaveChat(context.Context, *ChatReference) (*Result, error)
	CreatePost(context.Context, *Post) (*Result, error)
}

// ChatRoomServiceClient is the client API for the migchat chat-room service.
type ChatRoomServiceClient interface {
	Register(ctx context.Context, in *UserInfo, opts ...grpc.CallOption) (*RegistrationInfo, error)
	Logout(ctx context.Context, in *Registration, opts ...grpc.CallOption) (*Result, error)
	GetUsers(ctx context.Context, in *Registration, opts ...grpc.CallOption) (ChatRoomService_GetUsersClient, error)
	GetChats(ctx context.Context, in *Registration, opts ...grpc.CallOption) (ChatRoomService_GetChatsClient, error)
	GetInvitations(ctx context.Context, in *Registration, opts ...grpc.CallOption) (ChatRoomService_GetInvitationsClient, error)
	GetPosts(ctx context.Context, in *Registration, opts ...grpc.CallOption) (ChatRoomService_GetPostsClient, error)
	CreateChat(ctx context.Context, in *ChatInfo, opts ...grpc.CallOption) (*Chat, error)
	InviteUser(ctx context.Context, in *Invitation, opts ...grpc.CallOption) (*Result, error)
	EnterChat(ctx context.Context, in *ChatReference, opts ...grpc.CallOption) (*Result, error)
	LeaveChat(ctx context.Context, in *ChatReference, opts ...grpc.CallOption) (*Result, error)
	CreatePost(ctx context.Context, in *Post, opts ...grpc.CallOption) (*Result, error)
}

type chatRoomServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewChatRoomServiceClient wraps an established connection in the
// ChatRoomServiceClient API.
func NewChatRoomServiceClient(cc grpc.ClientConnInterface) ChatRoomServiceClient {
	return &chatRoomServiceClient{cc}
}

func (c *chatRoomServiceClient) Register(ctx context.Context, in *UserInfo, opts ...grpc.CallOption) (*RegistrationInfo, error) {
	out := new(RegistrationInfo)
	if err := c.cc.Invoke(ctx, "/migchat.ChatRoomService/Register", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chatRoomServiceClient) Logout(ctx context.Context, in *Registration, opts ...grpc.CallOption) (*Result, error) {
	out := new(Result)
	if err := c.cc.Invoke(ctx, "/migchat.ChatRoomService/Logout", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chatRoomServiceClient) CreateChat(ctx context.Context, in *ChatInfo, opts ...grpc.CallOption) (*Chat, error) {
	out := new(Chat)
	if err := c.cc.Invoke(ctx, "/migchat.ChatRoomService/CreateChat", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chatRoomServiceClient) InviteUser(ctx context.Context, in *Invitation, opts ...grpc.CallOption) (*Result, error) {
	out := new(Result)
	if err := c.cc.Invoke(ctx, "/migchat.ChatRoomService/InviteUser", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chatRoomServiceClient) EnterChat(ctx context.Context, in *ChatReference, opts ...grpc.CallOption) (*Result, error) {
	out := new(Result)
	if err := c.cc.Invoke(ctx, "/migchat.ChatRoomService/EnterChat", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chatRoomServiceClient) LeaveChat(ctx context.Context, in *ChatReference, opts ...grpc.CallOption) (*Result, error) {
	out := new(Result)
	if err := c.cc.Invoke(ctx, "/migchat.ChatRoomService/LeaveChat", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chatRoomServiceClient) CreatePost(ctx context.Context, in *Post, opts ...grpc.CallOption) (*Result, error) {
	out := new(Result)
	if err := c.cc.Invoke(ctx, "/migchat.ChatRoomService/CreatePost", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// --- streaming client/server pairs, one per server-streaming RPC ---

type ChatRoomService_GetUsersServer interface {
	Send(*UpdateUsers) error
	grpc.ServerStream
}
type chatRoomServiceGetUsersServer struct{ grpc.ServerStream }

func (x *chatRoomServiceGetUsersServer) Send(m *UpdateUsers) error { return x.ServerStream.SendMsg(m) }

type ChatRoomService_GetUsersClient interface {
	Recv() (*UpdateUsers, error)
	grpc.ClientStream
}
type chatRoomServiceGetUsersClient struct{ grpc.ClientStream }

func (x *chatRoomServiceGetUsersClient) Recv() (*UpdateUsers, error) {
	m := new(UpdateUsers)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *chatRoomServiceClient) GetUsers(ctx context.Context, in *Registration, opts ...grpc.CallOption) (ChatRoomService_GetUsersClient, error) {
	stream, err := c.cc.NewStream(ctx, &ChatRoomService_ServiceDesc.Streams[0], "/migchat.ChatRoomService/GetUsers", opts...)
	if err != nil {
		return nil, err
	}
	x := &chatRoomServiceGetUsersClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type ChatRoomService_GetChatsServer interface {
	Send(*UpdateChats) error
	grpc.ServerStream
}
type chatRoomServiceGetChatsServer struct{ grpc.ServerStream }

func (x *chatRoomServiceGetChatsServer) Send(m *UpdateChats) error { return x.ServerStream.SendMsg(m) }

type ChatRoomService_GetChatsClient interface {
	Recv() (*UpdateChats, error)
	grpc.ClientStream
}
type chatRoomServiceGetChatsClient struct{ grpc.ClientStream }

func (x *chatRoomServiceGetChatsClient) Recv() (*UpdateChats, error) {
	m := new(UpdateChats)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *chatRoomServiceClient) GetChats(ctx context.Context, in *Registration, opts ...grpc.CallOption) (ChatRoomService_GetChatsClient, error) {
	stream, err := c.cc.NewStream(ctx, &ChatRoomService_ServiceDesc.Streams[1], "/migchat.ChatRoomService/GetChats", opts...)
	if err != nil {
		return nil, err
	}
	x := &chatRoomServiceGetChatsClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type ChatRoomService_GetInvitationsServer interface {
	Send(*Invitation) error
	grpc.ServerStream
}
type chatRoomServiceGetInvitationsServer struct{ grpc.ServerStream }

func (x *chatRoomServiceGetInvitationsServer) Send(m *Invitation) error {
	return x.ServerStream.SendMsg(m)
}

type ChatRoomService_GetInvitationsClient interface {
	Recv() (*Invitation, error)
	grpc.ClientStream
}
type chatRoomServiceGetInvitationsClient struct{ grpc.ClientStream }

func (x *chatRoomServiceGetInvitationsClient) Recv() (*Invitation, error) {
	m := new(Invitation)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *chatRoomServiceClient) GetInvitations(ctx context.Context, in *Registration, opts ...grpc.CallOption) (ChatRoomService_GetInvitationsClient, error) {
	stream, err := c.cc.NewStream(ctx, &ChatRoomService_ServiceDesc.Streams[2], "/migchat.ChatRoomService/GetInvitations", opts...)
	if err != nil {
		return nil, err
	}
	x := &chatRoomServiceGetInvitationsClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type ChatRoomService_GetPostsServer interface {
	Send(*Post) error
	grpc.ServerStream
}
type chatRoomServiceGetPostsServer struct{ grpc.ServerStream }

func (x *chatRoomServiceGetPostsServer) Send(m *Post) error { return x.ServerStream.SendMsg(m) }

type ChatRoomService_GetPostsClient interface {
	Recv() (*Post, error)
	grpc.ClientStream
}
type chatRoomServiceGetPostsClient struct{ grpc.ClientStream }

func (x *chatRoomServiceGetPostsClient) Recv() (*Post, error) {
	m := new(Post)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *chatRoomServiceClient) GetPosts(ctx context.Context, in *Registration, opts ...grpc.CallOption) (ChatRoomService_GetPostsClient, error) {
	stream, err := c.cc.NewStream(ctx, &ChatRoomService_ServiceDesc.Streams[3], "/migchat.ChatRoomService/GetPosts", opts...)
	if err != nil {
		return nil, err
	}
	x := &chatRoomServiceGetPostsClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// --- unary handlers ---

func _ChatRoomService_Register_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(UserInfo)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatRoomServiceServer).Register(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/migchat.ChatRoomService/Register"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChatRoomServiceServer).Register(ctx, req.(*UserInfo))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChatRoomService_Logout_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Registration)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatRoomServiceServer).Logout(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/migchat.ChatRoomService/Logout"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChatRoomServiceServer).Logout(ctx, req.(*Registration))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChatRoomService_CreateChat_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ChatInfo)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatRoomServiceServer).CreateChat(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/migchat.ChatRoomService/CreateChat"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChatRoomServiceServer).CreateChat(ctx, req.(*ChatInfo))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChatRoomService_InviteUser_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Invitation)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatRoomServiceServer).InviteUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/migchat.ChatRoomService/InviteUser"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChatRoomServiceServer).InviteUser(ctx, req.(*Invitation))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChatRoomService_EnterChat_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ChatReference)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatRoomServiceServer).EnterChat(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/migchat.ChatRoomService/EnterChat"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChatRoomServiceServer).EnterChat(ctx, req.(*ChatReference))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChatRoomService_LeaveChat_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ChatReference)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatRoomServiceServer).LeaveChat(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/migchat.ChatRoomService/LeaveChat"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChatRoomServiceServer).LeaveChat(ctx, req.(*ChatReference))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChatRoomService_CreatePost_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Post)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatRoomServiceServer).CreatePost(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/migchat.ChatRoomService/CreatePost"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ChatRoomServiceServer).CreatePost(ctx, req.(*Post))
	}
	return interceptor(ctx, in, info, handler)
}

// --- streaming handlers ---

func _ChatRoomService_GetUsers_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(Registration)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ChatRoomServiceServer).GetUsers(m, &chatRoomServiceGetUsersServer{stream})
}

func _ChatRoomService_GetChats_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(Registration)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ChatRoomServiceServer).GetChats(m, &chatRoomServiceGetChatsServer{stream})
}

func _ChatRoomService_GetInvitations_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(Registration)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ChatRoomServiceServer).GetInvitations(m, &chatRoomServiceGetInvitationsServer{stream})
}

func _ChatRoomService_GetPosts_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(Registration)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ChatRoomServiceServer).GetPosts(m, &chatRoomServiceGetPostsServer{stream})
}

// ChatRoomService_ServiceDesc is the grpc.ServiceDesc for this service; it
// is the registration point grpc.Server.RegisterService expects, playing
// the role normally filled by protoc-gen-go-grpc output.
var ChatRoomService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "migchat.ChatRoomService",
	HandlerType: (*ChatRoomServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: _ChatRoomService_Register_Handler},
		{MethodName: "Logout", Handler: _ChatRoomService_Logout_Handler},
		{MethodName: "CreateChat", Handler: _ChatRoomService_CreateChat_Handler},
		{MethodName: "InviteUser", Handler: _ChatRoomService_InviteUser_Handler},
		{MethodName: "EnterChat", Handler: _ChatRoomService_EnterChat_Handler},
		{MethodName: "LeaveChat", Handler: _ChatRoomService_LeaveChat_Handler},
		{MethodName: "CreatePost", Handler: _ChatRoomService_CreatePost_Handler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "GetUsers", Handler: _ChatRoomService_GetUsers_Handler, ServerStreams: true},
		{StreamName: "GetChats", Handler: _ChatRoomService_GetChats_Handler, ServerStreams: true},
		{StreamName: "GetInvitations", Handler: _ChatRoomService_GetInvitations_Handler, ServerStreams: true},
		{StreamName: "GetPosts", Handler: _ChatRoomService_GetPosts_Handler, ServerStreams: true},
	},
	Metadata: "migchat.proto",
}

// StatusError wraps err into a grpc status error with the given code and
// err's message. The choice of code is left to the caller.
func StatusError(code codes.Code, err error) error {
	return status.Error(code, err.Error())
}
