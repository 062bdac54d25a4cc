package common

import (
	"time"
)

type Visibility string

const (
	VisibilityPublic        Visibility = "Public"
	VisibilityPrivate       Visibility = "Private"
	VisibilityFollowersOnly Visibility = "FollowersOnly"
)

func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityFollowersOnly:
		return true
	}
	return false
}

type FollowStatus string

const (
	FollowNone     FollowStatus = "none"
	FollowPending  FollowStatus = "pending"
	FollowAccepted FollowStatus = "accepted"
	FollowDeclined FollowStatus = "declined"
)

type ReportStatus string

const (
	ReportPending     ReportStatus = "Pending"
	ReportUnderReview ReportStatus = "UnderReview"
	ReportResolved    ReportStatus = "Resolved"
	ReportRejected    ReportStatus = "Rejected"
)

// CanTransitionTo reports whether a report may move from s to next.
// Pending -> UnderReview -> Resolved | Rejected; Resolved and Rejected are final.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	switch s {
	case ReportPending:
		return next == ReportUnderReview
	case ReportUnderReview:
		return next == ReportResolved || next == ReportRejected
	}
	return false
}

type ReportTarget string

const (
	TargetPost    ReportTarget = "Post"
	TargetComment ReportTarget = "Comment"
	TargetUser    ReportTarget = "User"
)

func (t ReportTarget) IsValid() bool {
	return t == TargetPost || t == TargetComment || t == TargetUser
}

// ModLevel is a moderator privilege level.
type ModLevel int

const (
	ModLevelUser    ModLevel = 1 // handles reports against accounts
	ModLevelContent ModLevel = 2 // handles reports against posts and comments
)

func (l ModLevel) IsValid() bool {
	return l == ModLevelUser || l == ModLevelContent
}

// Targets returns the report targets a moderator of this level may act on.
func (l ModLevel) Targets() []ReportTarget {
	switch l {
	case ModLevelUser:
		return []ReportTarget{TargetUser}
	case ModLevelContent:
		return []ReportTarget{TargetPost, TargetComment}
	}
	return nil
}

func (l ModLevel) Covers(t ReportTarget) bool {
	for _, target := range l.Targets() {
		if target == t {
			return true
		}
	}
	return false
}

// DisableDays are the suspension lengths a user moderator may hand out.
var DisableDays = []int{1, 3, 7, 14, 30}

func ValidDisableDays(days int) bool {
	for _, d := range DisableDays {
		if d == days {
			return true
		}
	}
	return false
}

type OTPPurpose string

const (
	OTPRegistration   OTPPurpose = "registration"
	OTPLogin          OTPPurpose = "login"
	OTPPasswordReset  OTPPurpose = "password_reset"
	OTPPasswordChange OTPPurpose = "password_change"
	OTPEmailUpdate    OTPPurpose = "email_update"
)

// PrincipalKind distinguishes the two account tables.
type PrincipalKind string

const (
	KindUser      PrincipalKind = "user"
	KindModerator PrincipalKind = "moderator"
)

type ActionType string

const (
	ActionCreatePost          ActionType = "create_post"
	ActionUpdatePost          ActionType = "update_post"
	ActionDeletePost          ActionType = "delete_post"
	ActionLikePost            ActionType = "like_post"
	ActionUnlikePost          ActionType = "unlike_post"
	ActionCreateComment       ActionType = "create_comment"
	ActionUpdateComment       ActionType = "update_comment"
	ActionDeleteComment       ActionType = "delete_comment"
	ActionFollowUser          ActionType = "follow_user"
	ActionRequestFollow       ActionType = "request_follow"
	ActionAcceptFollowRequest ActionType = "accept_follow_request"
	ActionRejectFollowRequest ActionType = "reject_follow_request"
	ActionCancelFollowRequest ActionType = "cancel_pending_follow_request"
	ActionUnfollowUser        ActionType = "unfollow_user"
	ActionRemoveFollower      ActionType = "remove_follower"
	ActionUpdateProfile       ActionType = "update_profile"
	ActionDeleteAccount       ActionType = "delete_account"
	ActionSubmitReport        ActionType = "submit_report"
	ActionReviewReport        ActionType = "review_report"
	ActionResolveReport       ActionType = "resolve_report"
	ActionRejectReport        ActionType = "reject_report"
	ActionDisableUser         ActionType = "disable_user"
	ActionRemovePost          ActionType = "remove_post"
	ActionRemoveComment       ActionType = "remove_comment"
)

// AuditEvent is published to the audit subject for every state-changing action.
type AuditEvent struct {
	ActorID    uint64
	ActorKind  PrincipalKind
	Action     ActionType
	TargetID   uint64
	TargetType string
	OccurredAt time.Time
}

// UserSummary is the author/requester card embedded in API responses.
type UserSummary struct {
	ID             uint64     `json:"id"`
	Username       string     `json:"username"`
	ProfilePicture string     `json:"profile_picture,omitempty"`
	Visibility     Visibility `json:"visibility"`
}
