package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// OutreachServiceHandler is implemented by the outreach service.
type OutreachServiceHandler interface {
	SignIn(context.Context, *connect.Request[SignInRequest]) (*connect.Response[SignInResponse], error)
	SignOut(context.Context, *connect.Request[SignOutRequest]) (*connect.Response[SignOutResponse], error)
	CurrentUser(context.Context, *connect.Request[CurrentUserRequest]) (*connect.Response[CurrentUserResponse], error)
	ListUsers(context.Context, *connect.Request[ListUsersRequest]) (*connect.Response[ListUsersResponse], error)
	AddRecord(context.Context, *connect.Request[AddRecordRequest]) (*connect.Response[AddRecordResponse], error)
	DeleteRecord(context.Context, *connect.Request[DeleteRecordRequest]) (*connect.Response[DeleteRecordResponse], error)
	UpdateStatus(context.Context, *connect.Request[UpdateStatusRequest]) (*connect.Response[UpdateStatusResponse], error)
	ListRecords(context.Context, *connect.Request[ListRecordsRequest]) (*connect.Response[ListRecordsResponse], error)
	GetStats(context.Context, *connect.Request[GetStatsRequest]) (*connect.Response[GetStatsResponse], error)
	GetLeaderboard(context.Context, *connect.Request[GetLeaderboardRequest]) (*connect.Response[GetLeaderboardResponse], error)
}

// MentorServiceHandler is implemented by the mentor service.
type MentorServiceHandler interface {
	Chat(context.Context, *connect.Request[ChatRequest], *connect.ServerStream[ChatResponse]) error
}

// NewOutreachServiceHandler builds an HTTP handler for every OutreachService
// procedure. It returns the path prefix to mount it on.
func NewOutreachServiceHandler(svc OutreachServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)

	mux := http.NewServeMux()
	mux.Handle(OutreachServiceSignInProcedure, connect.NewUnaryHandler(OutreachServiceSignInProcedure, svc.SignIn, opts...))
	mux.Handle(OutreachServiceSignOutProcedure, connect.NewUnaryHandler(OutreachServiceSignOutProcedure, svc.SignOut, opts...))
	mux.Handle(OutreachServiceCurrentUserProcedure, connect.NewUnaryHandler(OutreachServiceCurrentUserProcedure, svc.CurrentUser, opts...))
	mux.Handle(OutreachServiceListUsersProcedure, connect.NewUnaryHandler(OutreachServiceListUsersProcedure, svc.ListUsers, opts...))
	mux.Handle(OutreachServiceAddRecordProcedure, connect.NewUnaryHandler(OutreachServiceAddRecordProcedure, svc.AddRecord, opts...))
	mux.Handle(OutreachServiceDeleteRecordProcedure, connect.NewUnaryHandler(OutreachServiceDeleteRecordProcedure, svc.DeleteRecord, opts...))
	mux.Handle(OutreachServiceUpdateStatusProcedure, connect.NewUnaryHandler(OutreachServiceUpdateStatusProcedure, svc.UpdateStatus, opts...))
	mux.Handle(OutreachServiceListRecordsProcedure, connect.NewUnaryHandler(OutreachServiceListRecordsProcedure, svc.ListRecords, opts...))
	mux.Handle(OutreachServiceGetStatsProcedure, connect.NewUnaryHandler(OutreachServiceGetStatsProcedure, svc.GetStats, opts...))
	mux.Handle(OutreachServiceGetLeaderboardProcedure, connect.NewUnaryHandler(OutreachServiceGetLeaderboardProcedure, svc.GetLeaderboard, opts...))

	return "/" + OutreachServiceName + "/", mux
}

// NewMentorServiceHandler builds an HTTP handler for the MentorService.
func NewMentorServiceHandler(svc MentorServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)

	mux := http.NewServeMux()
	mux.Handle(MentorServiceChatProcedure, connect.NewServerStreamHandler(MentorServiceChatProcedure, svc.Chat, opts...))

	return "/" + MentorServiceName + "/", mux
}

func withCodec(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

// OutreachServiceClient calls the OutreachService.
type OutreachServiceClient struct {
	signIn         *connect.Client[SignInRequest, SignInResponse]
	signOut        *connect.Client[SignOutRequest, SignOutResponse]
	currentUser    *connect.Client[CurrentUserRequest, CurrentUserResponse]
	listUsers      *connect.Client[ListUsersRequest, ListUsersResponse]
	addRecord      *connect.Client[AddRecordRequest, AddRecordResponse]
	deleteRecord   *connect.Client[DeleteRecordRequest, DeleteRecordResponse]
	updateStatus   *connect.Client[UpdateStatusRequest, UpdateStatusResponse]
	listRecords    *connect.Client[ListRecordsRequest, ListRecordsResponse]
	getStats       *connect.Client[GetStatsRequest, GetStatsResponse]
	getLeaderboard *connect.Client[GetLeaderboardRequest, GetLeaderboardResponse]
}

// NewOutreachServiceClient returns a client for the OutreachService at baseURL.
func NewOutreachServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *OutreachServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)

	return &OutreachServiceClient{
		signIn:         connect.NewClient[SignInRequest, SignInResponse](httpClient, baseURL+OutreachServiceSignInProcedure, opts...),
		signOut:        connect.NewClient[SignOutRequest, SignOutResponse](httpClient, baseURL+OutreachServiceSignOutProcedure, opts...),
		currentUser:    connect.NewClient[CurrentUserRequest, CurrentUserResponse](httpClient, baseURL+OutreachServiceCurrentUserProcedure, opts...),
		listUsers:      connect.NewClient[ListUsersRequest, ListUsersResponse](httpClient, baseURL+OutreachServiceListUsersProcedure, opts...),
		addRecord:      connect.NewClient[AddRecordRequest, AddRecordResponse](httpClient, baseURL+OutreachServiceAddRecordProcedure, opts...),
		deleteRecord:   connect.NewClient[DeleteRecordRequest, DeleteRecordResponse](httpClient, baseURL+OutreachServiceDeleteRecordProcedure, opts...),
		updateStatus:   connect.NewClient[UpdateStatusRequest, UpdateStatusResponse](httpClient, baseURL+OutreachServiceUpdateStatusProcedure, opts...),
		listRecords:    connect.NewClient[ListRecordsRequest, ListRecordsResponse](httpClient, baseURL+OutreachServiceListRecordsProcedure, opts...),
		getStats:       connect.NewClient[GetStatsRequest, GetStatsResponse](httpClient, baseURL+OutreachServiceGetStatsProcedure, opts...),
		getLeaderboard: connect.NewClient[GetLeaderboardRequest, GetLeaderboardResponse](httpClient, baseURL+OutreachServiceGetLeaderboardProcedure, opts...),
	}
}

func (c *OutreachServiceClient) SignIn(ctx context.Context, req *connect.Request[SignInRequest]) (*connect.Response[SignInResponse], error) {
	return c.signIn.CallUnary(ctx, req)
}

func (c *OutreachServiceClient) SignOut(ctx context.Context, req *connect.Request[SignOutRequest]) (*connect.Response[SignOutResponse], error) {
	return c.signOut.CallUnary(ctx, req)
}

func (c *OutreachServiceClient) CurrentUser(ctx context.Context, req *connect.Request[CurrentUserRequest]) (*connect.Response[CurrentUserResponse], error) {
	return c.currentUser.CallUnary(ctx, req)
}

func (c *OutreachServiceClient) ListUsers(ctx context.Context, req *connect.Request[ListUsersRequest]) (*connect.Response[ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}

func (c *OutreachServiceClient) AddRecord(ctx context.Context, req *connect.Request[AddRecordRequest]) (*connect.Response[AddRecordResponse], error) {
	return c.addRecord.CallUnary(ctx, req)
}

func (c *OutreachServiceClient) DeleteRecord(ctx context.Context, req *connect.Request[DeleteRecordRequest]) (*connect.Response[DeleteRecordResponse], error) {
	return c.deleteRecord.CallUnary(ctx, req)
}

func (c *OutreachServiceClient) UpdateStatus(ctx context.Context, req *connect.Request[UpdateStatusRequest]) (*connect.Response[UpdateStatusResponse], error) {
	return c.updateStatus.CallUnary(ctx, req)
}

func (c *OutreachServiceClient) ListRecords(ctx context.Context, req *connect.Request[ListRecordsRequest]) (*connect.Response[ListRecordsResponse], error) {
	return c.listRecords.CallUnary(ctx, req)
}

func (c *OutreachServiceClient) GetStats(ctx context.Context, req *connect.Request[GetStatsRequest]) (*connect.Response[GetStatsResponse], error) {
	return c.getStats.CallUnary(ctx, req)
}

func (c *OutreachServiceClient) GetLeaderboard(ctx context.Context, req *connect.Request[GetLeaderboardRequest]) (*connect.Response[GetLeaderboardResponse], error) {
	return c.getLeaderboard.CallUnary(ctx, req)
}

// MentorServiceClient calls the MentorService.
type MentorServiceClient struct {
	chat *connect.Client[ChatRequest, ChatResponse]
}

// NewMentorServiceClient returns a client for the MentorService at baseURL.
func NewMentorServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *MentorServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)

	return &MentorServiceClient{
		chat: connect.NewClient[ChatRequest, ChatResponse](httpClient, baseURL+MentorServiceChatProcedure, opts...),
	}
}

// Chat streams the mentor's answer to one message.
func (c *MentorServiceClient) Chat(ctx context.Context, req *connect.Request[ChatRequest]) (*connect.ServerStreamForClient[ChatResponse], error) {
	return c.chat.CallServerStream(ctx, req)
}
