package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/vcom/internal/calculator"
	"github.com/mmynk/vcom/internal/models"
	"github.com/mmynk/vcom/internal/outreach"
	"github.com/mmynk/vcom/pkg/api"
)

// OutreachService implements the Connect OutreachService
type OutreachService struct {
	session *outreach.Session
}

var _ api.OutreachServiceHandler = (*OutreachService)(nil)

// NewOutreachService creates a new OutreachService over the given session.
func NewOutreachService(session *outreach.Session) *OutreachService {
	return &OutreachService{session: session}
}

// SignIn makes the named user active, creating it if needed.
func (s *OutreachService) SignIn(ctx context.Context, req *connect.Request[api.SignInRequest]) (*connect.Response[api.SignInResponse], error) {
	slog.Info("SignIn request received", "name", req.Msg.Name)

	user, err := s.session.SignIn(ctx, req.Msg.Name)
	if err != nil {
		slog.Error("SignIn failed", "error", err)
		return nil, connectError(err)
	}

	slog.Info("SignIn successful", "user_id", user.ID)

	return connect.NewResponse(&api.SignInResponse{User: toAPIUser(user)}), nil
}

// SignOut clears the active user.
func (s *OutreachService) SignOut(ctx context.Context, req *connect.Request[api.SignOutRequest]) (*connect.Response[api.SignOutResponse], error) {
	slog.Info("SignOut request received")

	s.session.SignOut(ctx)

	return connect.NewResponse(&api.SignOutResponse{}), nil
}

// CurrentUser returns the active user, if any.
func (s *OutreachService) CurrentUser(ctx context.Context, req *connect.Request[api.CurrentUserRequest]) (*connect.Response[api.CurrentUserResponse], error) {
	resp := &api.CurrentUserResponse{}
	if user, ok := s.session.CurrentUser(); ok {
		u := toAPIUser(user)
		resp.User = &u
	}
	return connect.NewResponse(resp), nil
}

// ListUsers returns every participant in join order.
func (s *OutreachService) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	users := s.session.Users()

	out := make([]api.User, len(users))
	for i, u := range users {
		out[i] = toAPIUser(u)
	}

	slog.Info("ListUsers successful", "count", len(out))

	return connect.NewResponse(&api.ListUsersResponse{Users: out}), nil
}

// AddRecord records a new contact for the active user.
func (s *OutreachService) AddRecord(ctx context.Context, req *connect.Request[api.AddRecordRequest]) (*connect.Response[api.AddRecordResponse], error) {
	slog.Info("AddRecord request received", "name", req.Msg.Name)

	days := outreach.DefaultFollowUpDays
	if req.Msg.FollowUpDays != nil {
		days = *req.Msg.FollowUpDays
	}

	record, err := s.session.AddRecord(ctx, models.NewRecord{
		Name:              req.Msg.Name,
		Phone:             req.Msg.Phone,
		Location:          req.Msg.Location,
		ChurchRecommended: req.Msg.ChurchRecommended,
		FollowUpDays:      days,
		Notes:             req.Msg.Notes,
	})
	if err != nil {
		slog.Error("AddRecord failed", "error", err)
		return nil, connectError(err)
	}

	slog.Info("Record created", "record_id", record.ID, "user_id", record.UserID)

	return connect.NewResponse(&api.AddRecordResponse{Record: toAPIRecord(record)}), nil
}

// DeleteRecord removes one of the active user's records after confirmation.
func (s *OutreachService) DeleteRecord(ctx context.Context, req *connect.Request[api.DeleteRecordRequest]) (*connect.Response[api.DeleteRecordResponse], error) {
	slog.Info("DeleteRecord request received",
		"record_id", req.Msg.RecordID,
		"confirmed", req.Msg.Confirmed,
	)

	deleted, err := s.session.DeleteRecord(ctx, req.Msg.RecordID, req.Msg.Confirmed)
	if err != nil {
		slog.Error("DeleteRecord failed", "record_id", req.Msg.RecordID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("DeleteRecord completed", "record_id", req.Msg.RecordID, "deleted", deleted)

	return connect.NewResponse(&api.DeleteRecordResponse{Deleted: deleted}), nil
}

// UpdateStatus moves one of the active user's records to a new status.
func (s *OutreachService) UpdateStatus(ctx context.Context, req *connect.Request[api.UpdateStatusRequest]) (*connect.Response[api.UpdateStatusResponse], error) {
	slog.Info("UpdateStatus request received",
		"record_id", req.Msg.RecordID,
		"status", req.Msg.Status,
	)

	record, err := s.session.UpdateStatus(ctx, req.Msg.RecordID, models.Status(req.Msg.Status))
	if err != nil {
		slog.Error("UpdateStatus failed", "record_id", req.Msg.RecordID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.UpdateStatusResponse{Record: toAPIRecord(record)}), nil
}

// ListRecords returns the active user's records, due follow-ups first.
func (s *OutreachService) ListRecords(ctx context.Context, req *connect.Request[api.ListRecordsRequest]) (*connect.Response[api.ListRecordsResponse], error) {
	records, today, err := s.session.FollowUpList()
	if err != nil {
		slog.Error("ListRecords failed", "error", err)
		return nil, connectError(err)
	}

	out := make([]api.FollowUp, len(records))
	for i, r := range records {
		out[i] = api.FollowUp{
			Record:  toAPIRecord(r),
			Due:     calculator.IsDue(r, today),
			DueDate: r.DueDate().String(),
		}
	}

	slog.Info("ListRecords successful", "count", len(out))

	return connect.NewResponse(&api.ListRecordsResponse{
		Today:   today.String(),
		Records: out,
	}), nil
}

// GetStats returns the active user's counters.
func (s *OutreachService) GetStats(ctx context.Context, req *connect.Request[api.GetStatsRequest]) (*connect.Response[api.GetStatsResponse], error) {
	stats, err := s.session.Stats()
	if err != nil {
		slog.Error("GetStats failed", "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.GetStatsResponse{
		TotalRecords:     stats.TotalRecords,
		FollowingCount:   stats.FollowingCount,
		EstablishedCount: stats.EstablishedCount,
		DueFollowUpCount: stats.DueFollowUpCount,
		WeeklyCount:      stats.WeeklyCount,
		WeeklyRank:       stats.WeeklyRank,
	}), nil
}

// GetLeaderboard ranks all participants for the current ISO week.
func (s *OutreachService) GetLeaderboard(ctx context.Context, req *connect.Request[api.GetLeaderboardRequest]) (*connect.Response[api.GetLeaderboardResponse], error) {
	board, week, reference := s.session.Leaderboard()

	entries := make([]api.LeaderboardEntry, len(board))
	for i, e := range board {
		entries[i] = api.LeaderboardEntry{
			Rank:      i + 1,
			UserID:    e.UserID,
			UserName:  e.UserName,
			SoulCount: e.SoulCount,
		}
	}

	slog.Info("GetLeaderboard successful", "week", week, "entries", len(entries))

	return connect.NewResponse(&api.GetLeaderboardResponse{
		WeekKey:       week,
		ReferenceDate: reference.String(),
		Entries:       entries,
	}), nil
}
