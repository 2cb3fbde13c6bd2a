package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/vcom/internal/mentor"
	"github.com/mmynk/vcom/internal/models"
	"github.com/mmynk/vcom/internal/outreach"
	"github.com/mmynk/vcom/pkg/api"
)

func toAPIUser(u models.User) api.User {
	return api.User{ID: u.ID, Name: u.Name, JoinedAt: u.JoinedAt}
}

func toAPIRecord(r models.SoulRecord) api.Record {
	return api.Record{
		ID:                r.ID,
		UserID:            r.UserID,
		Name:              r.Name,
		Phone:             r.Phone,
		Location:          r.Location,
		ChurchRecommended: r.ChurchRecommended,
		DatePreached:      r.DatePreached.String(),
		FollowUpDays:      r.FollowUpDays,
		Status:            string(r.Status),
		Notes:             r.Notes,
	}
}

func toAPISources(sources []mentor.Source) []api.Source {
	if len(sources) == 0 {
		return nil
	}
	out := make([]api.Source, len(sources))
	for i, s := range sources {
		out[i] = api.Source{URI: s.URI, Title: s.Title}
	}
	return out
}

// connectError maps domain errors to Connect codes.
func connectError(err error) *connect.Error {
	switch {
	case errors.Is(err, outreach.ErrNoActiveUser),
		errors.Is(err, outreach.ErrConfirmationRequired):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, outreach.ErrEmptyName),
		errors.Is(err, outreach.ErrInvalidStatus),
		errors.Is(err, outreach.ErrInvalidFollowUpDays):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, outreach.ErrRecordNotFound),
		errors.Is(err, outreach.ErrUnknownUser):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, mentor.ErrUnavailable):
		return connect.NewError(connect.CodeUnavailable, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
