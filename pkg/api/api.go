// Package api defines the wire types and procedure names of the VCOM RPC
// services. Messages are plain structs exchanged as JSON over the Connect
// protocol.
package api

import (
	"encoding/json"
	"time"
)

const (
	// OutreachServiceName is the fully-qualified name of the OutreachService.
	OutreachServiceName = "vcom.v1.OutreachService"

	// MentorServiceName is the fully-qualified name of the MentorService.
	MentorServiceName = "vcom.v1.MentorService"
)

// Procedure paths.
const (
	OutreachServiceSignInProcedure         = "/" + OutreachServiceName + "/SignIn"
	OutreachServiceSignOutProcedure        = "/" + OutreachServiceName + "/SignOut"
	OutreachServiceCurrentUserProcedure    = "/" + OutreachServiceName + "/CurrentUser"
	OutreachServiceListUsersProcedure      = "/" + OutreachServiceName + "/ListUsers"
	OutreachServiceAddRecordProcedure      = "/" + OutreachServiceName + "/AddRecord"
	OutreachServiceDeleteRecordProcedure   = "/" + OutreachServiceName + "/DeleteRecord"
	OutreachServiceUpdateStatusProcedure   = "/" + OutreachServiceName + "/UpdateStatus"
	OutreachServiceListRecordsProcedure    = "/" + OutreachServiceName + "/ListRecords"
	OutreachServiceGetStatsProcedure       = "/" + OutreachServiceName + "/GetStats"
	OutreachServiceGetLeaderboardProcedure = "/" + OutreachServiceName + "/GetLeaderboard"
	MentorServiceChatProcedure             = "/" + MentorServiceName + "/Chat"
)

// User is a campaign participant.
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Record is an outreach contact. Dates are "YYYY-MM-DD".
type Record struct {
	ID                string `json:"id"`
	UserID            string `json:"userId"`
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	Location          string `json:"location"`
	ChurchRecommended string `json:"churchRecommended"`
	DatePreached      string `json:"datePreached"`
	FollowUpDays      int    `json:"followUpDays"`
	Status            string `json:"status"`
	Notes             string `json:"notes"`
}

// FollowUp pairs a record with its follow-up state.
type FollowUp struct {
	Record  Record `json:"record"`
	Due     bool   `json:"due"`
	DueDate string `json:"dueDate"`
}

// LeaderboardEntry is one ranked participant.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	SoulCount int    `json:"soulCount"`
}

// Source is a reference cited by the mentor.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

type SignInRequest struct {
	Name string `json:"name"`
}

type SignInResponse struct {
	User User `json:"user"`
}

type SignOutRequest struct{}

type SignOutResponse struct{}

type CurrentUserRequest struct{}

type CurrentUserResponse struct {
	User *User `json:"user,omitempty"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []User `json:"users"`
}

// AddRecordRequest creates a record for the active user.
// FollowUpDays defaults to 7 when omitted.
type AddRecordRequest struct {
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	Location          string `json:"location"`
	ChurchRecommended string `json:"churchRecommended"`
	FollowUpDays      *int   `json:"followUpDays,omitempty"`
	Notes             string `json:"notes"`
}

type AddRecordResponse struct {
	Record Record `json:"record"`
}

// DeleteRecordRequest removes a record. Confirmed must be true.
type DeleteRecordRequest struct {
	RecordID  string `json:"recordId"`
	Confirmed bool   `json:"confirmed"`
}

type DeleteRecordResponse struct {
	Deleted bool `json:"deleted"`
}

type UpdateStatusRequest struct {
	RecordID string `json:"recordId"`
	Status   string `json:"status"`
}

type UpdateStatusResponse struct {
	Record Record `json:"record"`
}

type ListRecordsRequest struct{}

type ListRecordsResponse struct {
	Today   string     `json:"today"`
	Records []FollowUp `json:"records"`
}

type GetStatsRequest struct{}

type GetStatsResponse struct {
	TotalRecords     int `json:"totalRecords"`
	FollowingCount   int `json:"followingCount"`
	EstablishedCount int `json:"establishedCount"`
	DueFollowUpCount int `json:"dueFollowUpCount"`
	WeeklyCount      int `json:"weeklyCount"`
	WeeklyRank       int `json:"weeklyRank"`
}

type GetLeaderboardRequest struct{}

// GetLeaderboardResponse ranks participants for the week containing
// ReferenceDate ("YYYY-MM-DD").
type GetLeaderboardResponse struct {
	WeekKey       string             `json:"weekKey"`
	ReferenceDate string             `json:"referenceDate"`
	Entries       []LeaderboardEntry `json:"entries"`
}

type ChatRequest struct {
	Text string `json:"text"`
}

// ChatResponse is one cumulative update of the mentor's answer.
// HTML is only set on the final update.
type ChatResponse struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources,omitempty"`
	HTML    string   `json:"html,omitempty"`
	Final   bool     `json:"final"`
}

// Codec encodes messages as JSON. It replaces the default "json" codec so
// plain structs can travel over the Connect protocol.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

// Unmarshal implements connect.Codec.
func (Codec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }
