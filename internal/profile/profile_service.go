package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"socialhub/internal/audit"
	"socialhub/internal/cache"
	"socialhub/internal/common"
	"socialhub/internal/dbmysql"
	"socialhub/internal/feed"
	"socialhub/internal/logger"
)

const (
	listPageSize       = 20
	maxListPageSize    = 100
	suggestionLimit    = 5
	suggestionPoolSize = 20
	maxPictureURL      = 512
	targetUser         = "user"
)

// PostLister pages through one author's posts as a given viewer sees them.
type PostLister interface {
	AuthorPosts(ctx context.Context, viewerID, authorID uint64, page, perPage int) (common.Page[feed.PostView], error)
}

// Access is the verdict for one viewer looking at one profile.
type Access struct {
	CanView     bool   `json:"can_view"`
	CanSeePosts bool   `json:"can_see_posts"`
	Message     string `json:"message,omitempty"`
}

type FollowState struct {
	Status         common.FollowStatus `json:"status"`
	IsFollowing    bool                `json:"is_following"`
	RequestPending bool                `json:"request_pending"`
}

type ProfileView struct {
	ID             uint64             `json:"id"`
	Username       string             `json:"username"`
	Email          string             `json:"email,omitempty"`
	Bio            string             `json:"bio"`
	ProfilePicture string             `json:"profile_picture"`
	Visibility     common.Visibility  `json:"visibility"`
	CreatedAt      time.Time          `json:"created_at"`
	Stats          cache.ProfileStats `json:"stats"`
	Follow         *FollowState       `json:"follow,omitempty"`
	Access         Access             `json:"access"`
}

// FollowEntry is a user listed as follower, followee or requester.
type FollowEntry struct {
	User  common.UserSummary `json:"user"`
	Bio   string             `json:"bio,omitempty"`
	Since time.Time          `json:"since"`
}

// ProfileUpdate carries the fields to change; nil fields are left alone.
type ProfileUpdate struct {
	Username       *string            `json:"username"`
	Bio            *string            `json:"bio"`
	ProfilePicture *string            `json:"profile_picture"`
	Visibility     *common.Visibility `json:"visibility"`
}

type ProfileService interface {
	SendFollowRequest(ctx context.Context, requesterID, targetID uint64) (common.FollowStatus, error)
	RespondToFollowRequest(ctx context.Context, targetID, requesterID uint64, action string) (common.FollowStatus, error)
	CancelFollowRequest(ctx context.Context, requesterID, targetID uint64) error
	Unfollow(ctx context.Context, followerID, followedID uint64) error
	RemoveFollower(ctx context.Context, userID, followerID uint64) error
	PendingRequests(ctx context.Context, userID uint64) ([]FollowEntry, error)
	FollowStatus(ctx context.Context, requesterID, targetID uint64) (*FollowState, error)
	IsFollowing(ctx context.Context, followerID, followedID uint64) (bool, error)
	Followers(ctx context.Context, userID uint64, page, perPage int) (common.Page[FollowEntry], error)
	Following(ctx context.Context, userID uint64, page, perPage int) (common.Page[FollowEntry], error)

	Profile(ctx context.Context, viewerID, userID uint64) (*ProfileView, error)
	CanViewProfile(ctx context.Context, viewerID, userID uint64) (*Access, error)
	CanSeePosts(ctx context.Context, viewerID, authorID uint64) (bool, error)
	UserPosts(ctx context.Context, viewerID, userID uint64, page, perPage int) (common.Page[feed.PostView], error)
	Stats(ctx context.Context, userID uint64) (*cache.ProfileStats, error)
	SuggestedUsers(ctx context.Context, userID uint64, limit int) ([]common.UserSummary, error)
	SearchUsers(ctx context.Context, query string, page, perPage int) (common.Page[common.UserSummary], error)

	UpdateProfile(ctx context.Context, userID uint64, update ProfileUpdate) (*dbmysql.User, error)
	ChangeVisibility(ctx context.Context, userID uint64, visibility common.Visibility) (*dbmysql.User, error)
	DeleteAccount(ctx context.Context, userID uint64, password string) error
}

type profileService struct {
	users   UserRepository
	follows FollowRepository
	posts   PostLister
	cache   cache.StatsCache
	audit   common.Subject
}

func NewProfileService(users UserRepository, follows FollowRepository, posts PostLister,
	statsCache cache.StatsCache, subject common.Subject) ProfileService {
	return &profileService{
		users:   users,
		follows: follows,
		posts:   posts,
		cache:   statsCache,
		audit:   subject,
	}
}

// SendFollowRequest follows Public users straight away and leaves a pending
// request for everyone else.
func (s *profileService) SendFollowRequest(ctx context.Context, requesterID, targetID uint64) (common.FollowStatus, error) {
	if requesterID == targetID {
		return "", fmt.Errorf("%w: cannot follow yourself", common.ErrInvalidInput)
	}
	if _, err := s.getUser(ctx, requesterID); err != nil {
		return "", err
	}
	target, err := s.getUser(ctx, targetID)
	if err != nil {
		return "", err
	}

	if _, err := s.follows.GetEdge(ctx, requesterID, targetID); err == nil {
		return "", fmt.Errorf("%w: relationship already exists", common.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	status, action := common.FollowPending, common.ActionRequestFollow
	if target.Visibility == common.VisibilityPublic {
		status, action = common.FollowAccepted, common.ActionFollowUser
	}
	edge := &dbmysql.Follower{FollowerID: requesterID, FollowedID: targetID, Status: status}
	if err := s.follows.CreateEdge(ctx, edge); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", fmt.Errorf("%w: relationship already exists", common.ErrConflict)
		}
		return "", err
	}

	s.cache.Invalidate(ctx, requesterID, targetID)
	audit.Record(ctx, s.audit, requesterID, action, targetID, targetUser)
	return status, nil
}

func (s *profileService) RespondToFollowRequest(ctx context.Context, targetID, requesterID uint64, action string) (common.FollowStatus, error) {
	var (
		changed bool
		err     error
		result  common.FollowStatus
		logged  common.ActionType
	)
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "accept":
		changed, err = s.follows.SetStatus(ctx, requesterID, targetID, common.FollowPending, common.FollowAccepted)
		result, logged = common.FollowAccepted, common.ActionAcceptFollowRequest
	case "decline":
		changed, err = s.follows.DeleteEdge(ctx, requesterID, targetID, common.FollowPending)
		result, logged = common.FollowDeclined, common.ActionRejectFollowRequest
	default:
		return "", fmt.Errorf("%w: action must be accept or decline", common.ErrInvalidInput)
	}
	if err != nil {
		return "", err
	}
	if !changed {
		return "", fmt.Errorf("%w: no pending follow request found", common.ErrNotFound)
	}

	s.cache.Invalidate(ctx, targetID, requesterID)
	audit.Record(ctx, s.audit, targetID, logged, requesterID, targetUser)
	return result, nil
}

func (s *profileService) CancelFollowRequest(ctx context.Context, requesterID, targetID uint64) error {
	removed, err := s.follows.DeleteEdge(ctx, requesterID, targetID, common.FollowPending)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: no pending follow request found", common.ErrNotFound)
	}
	s.cache.Invalidate(ctx, requesterID, targetID)
	audit.Record(ctx, s.audit, requesterID, common.ActionCancelFollowRequest, targetID, targetUser)
	return nil
}

// Unfollow drops the edge whatever its status.
func (s *profileService) Unfollow(ctx context.Context, followerID, followedID uint64) error {
	removed, err := s.follows.DeleteEdge(ctx, followerID, followedID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: not following this user", common.ErrNotFound)
	}
	s.cache.Invalidate(ctx, followerID, followedID)
	audit.Record(ctx, s.audit, followerID, common.ActionUnfollowUser, followedID, targetUser)
	return nil
}

func (s *profileService) RemoveFollower(ctx context.Context, userID, followerID uint64) error {
	removed, err := s.follows.DeleteEdge(ctx, followerID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: this user is not your follower", common.ErrNotFound)
	}
	s.cache.Invalidate(ctx, userID, followerID)
	audit.Record(ctx, s.audit, userID, common.ActionRemoveFollower, followerID, targetUser)
	return nil
}

func (s *profileService) PendingRequests(ctx context.Context, userID uint64) ([]FollowEntry, error) {
	edges, err := s.follows.PendingRequests(ctx, userID)
	if err != nil {
		return nil, err
	}
	return entries(edges), nil
}

func (s *profileService) FollowStatus(ctx context.Context, requesterID, targetID uint64) (*FollowState, error) {
	edge, err := s.follows.GetEdge(ctx, requesterID, targetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &FollowState{Status: common.FollowNone}, nil
	}
	if err != nil {
		return nil, err
	}
	return &FollowState{
		Status:         edge.Status,
		IsFollowing:    edge.Status == common.FollowAccepted,
		RequestPending: edge.Status == common.FollowPending,
	}, nil
}

func (s *profileService) IsFollowing(ctx context.Context, followerID, followedID uint64) (bool, error) {
	return s.follows.IsFollowing(ctx, followerID, followedID)
}

func (s *profileService) Followers(ctx context.Context, userID uint64, page, perPage int) (common.Page[FollowEntry], error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return common.Page[FollowEntry]{}, err
	}
	page, perPage = common.NormalizePage(page, perPage, listPageSize, maxListPageSize)
	edges, total, err := s.follows.Followers(ctx, userID, perPage, common.Offset(page, perPage))
	if err != nil {
		return common.Page[FollowEntry]{}, err
	}
	return common.NewPage(entries(edges), page, perPage, total), nil
}

func (s *profileService) Following(ctx context.Context, userID uint64, page, perPage int) (common.Page[FollowEntry], error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return common.Page[FollowEntry]{}, err
	}
	page, perPage = common.NormalizePage(page, perPage, listPageSize, maxListPageSize)
	edges, total, err := s.follows.Following(ctx, userID, perPage, common.Offset(page, perPage))
	if err != nil {
		return common.Page[FollowEntry]{}, err
	}
	return common.NewPage(entries(edges), page, perPage, total), nil
}

// Profile shows the e-mail address to its owner only. Anonymous viewers get
// no follow state.
func (s *profileService) Profile(ctx context.Context, viewerID, userID uint64) (*ProfileView, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	access, err := s.access(ctx, viewerID, user)
	if err != nil {
		return nil, err
	}
	stats, err := s.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &ProfileView{
		ID:             user.ID,
		Username:       user.Username,
		Bio:            user.Bio,
		ProfilePicture: user.ProfilePicture,
		Visibility:     user.Visibility,
		CreatedAt:      user.CreatedAt,
		Stats:          *stats,
		Access:         access,
	}
	if viewerID == userID {
		view.Email = user.Email
	} else if viewerID != 0 {
		if view.Follow, err = s.FollowStatus(ctx, viewerID, userID); err != nil {
			return nil, err
		}
	}
	return view, nil
}

func (s *profileService) CanViewProfile(ctx context.Context, viewerID, userID uint64) (*Access, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	access, err := s.access(ctx, viewerID, user)
	if err != nil {
		return nil, err
	}
	return &access, nil
}

// CanSeePosts answers false for unknown authors.
func (s *profileService) CanSeePosts(ctx context.Context, viewerID, authorID uint64) (bool, error) {
	access, err := s.CanViewProfile(ctx, viewerID, authorID)
	if errors.Is(err, common.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return access.CanSeePosts, nil
}

func (s *profileService) access(ctx context.Context, viewerID uint64, user *dbmysql.User) (Access, error) {
	if viewerID == user.ID {
		return Access{CanView: true, CanSeePosts: true}, nil
	}
	switch user.Visibility {
	case common.VisibilityPublic:
		return Access{CanView: true, CanSeePosts: true}, nil
	case common.VisibilityPrivate:
		return Access{CanView: true, Message: "This account is private"}, nil
	case common.VisibilityFollowersOnly:
		if viewerID != 0 {
			ok, err := s.follows.IsFollowing(ctx, viewerID, user.ID)
			if err != nil {
				return Access{}, err
			}
			if ok {
				return Access{CanView: true, CanSeePosts: true}, nil
			}
		}
		return Access{CanView: true, Message: "Follow this user to see their posts"}, nil
	}
	return Access{CanView: true, Message: "No posts available"}, nil
}

// UserPosts returns an empty page when the viewer may not see the user's posts.
func (s *profileService) UserPosts(ctx context.Context, viewerID, userID uint64, page, perPage int) (common.Page[feed.PostView], error) {
	access, err := s.CanViewProfile(ctx, viewerID, userID)
	if err != nil {
		return common.Page[feed.PostView]{}, err
	}
	if !access.CanSeePosts {
		page, perPage = common.NormalizePage(page, perPage, listPageSize, maxListPageSize)
		return common.NewPage([]feed.PostView{}, page, perPage, 0), nil
	}
	return s.posts.AuthorPosts(ctx, viewerID, userID, page, perPage)
}

func (s *profileService) Stats(ctx context.Context, userID uint64) (*cache.ProfileStats, error) {
	if stats, ok := s.cache.GetStats(ctx, userID); ok {
		return stats, nil
	}
	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}
	stats, err := s.users.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.SetStats(ctx, userID, stats)
	return stats, nil
}

// SuggestedUsers caches one pool of candidates per user and cuts it to limit.
func (s *profileService) SuggestedUsers(ctx context.Context, userID uint64, limit int) ([]common.UserSummary, error) {
	if limit <= 0 {
		limit = suggestionLimit
	}
	if limit > suggestionPoolSize {
		limit = suggestionPoolSize
	}

	pool, ok := s.cache.GetSuggestions(ctx, userID)
	if !ok {
		users, err := s.users.Suggested(ctx, userID, suggestionPoolSize)
		if err != nil {
			return nil, err
		}
		pool = summaries(users)
		s.cache.SetSuggestions(ctx, userID, pool)
	}
	if len(pool) > limit {
		pool = pool[:limit]
	}
	return pool, nil
}

func (s *profileService) SearchUsers(ctx context.Context, query string, page, perPage int) (common.Page[common.UserSummary], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return common.Page[common.UserSummary]{}, fmt.Errorf("%w: search query is required", common.ErrInvalidInput)
	}
	page, perPage = common.NormalizePage(page, perPage, listPageSize, maxListPageSize)
	users, total, err := s.users.Search(ctx, query, perPage, common.Offset(page, perPage))
	if err != nil {
		return common.Page[common.UserSummary]{}, err
	}
	return common.NewPage(summaries(users), page, perPage, total), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uint64, update ProfileUpdate) (*dbmysql.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if err := common.ValidateUsername(username); err != nil {
			return nil, err
		}
		taken, err := s.users.UsernameTaken(ctx, username, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: username already taken", common.ErrConflict)
		}
		user.Username = username
	}
	if update.Bio != nil {
		bio := strings.TrimSpace(*update.Bio)
		if utf8.RuneCountInString(bio) > common.MaxBioLength {
			return nil, fmt.Errorf("%w: bio must be at most %d characters", common.ErrInvalidInput, common.MaxBioLength)
		}
		if common.ContainsProfanity(bio) {
			return nil, common.ErrProfanity
		}
		user.Bio = bio
	}
	if update.ProfilePicture != nil {
		picture := strings.TrimSpace(*update.ProfilePicture)
		if len(picture) > maxPictureURL {
			return nil, fmt.Errorf("%w: profile picture url is too long", common.ErrInvalidInput)
		}
		user.ProfilePicture = picture
	}
	if update.Visibility != nil {
		if !update.Visibility.IsValid() {
			return nil, fmt.Errorf("%w: visibility must be Public, Private or FollowersOnly", common.ErrInvalidInput)
		}
		user.Visibility = *update.Visibility
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username already taken", common.ErrConflict)
		}
		return nil, err
	}
	s.cache.Invalidate(ctx, userID)
	audit.Record(ctx, s.audit, userID, common.ActionUpdateProfile, userID, targetUser)
	return user, nil
}

func (s *profileService) ChangeVisibility(ctx context.Context, userID uint64, visibility common.Visibility) (*dbmysql.User, error) {
	return s.UpdateProfile(ctx, userID, ProfileUpdate{Visibility: &visibility})
}

func (s *profileService) DeleteAccount(ctx context.Context, userID uint64, password string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := common.CheckPassword(password, user.PasswordHash); err != nil {
		return fmt.Errorf("%w: password is incorrect", common.ErrUnauthorized)
	}

	related, err := s.users.DeleteAccount(ctx, userID)
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx, append(related, userID)...)
	audit.Record(ctx, s.audit, userID, common.ActionDeleteAccount, userID, targetUser)
	logger.Log.Info("account deleted",
		logger.WithRequestID(common.RequestIDFromContext(ctx)),
		zap.Uint64("user_id", userID),
		zap.Int("follow_edges", len(related)),
	)
	return nil
}

func (s *profileService) getUser(ctx context.Context, userID uint64) (*dbmysql.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %d", common.ErrNotFound, userID)
	}
	return user, err
}

func entries(edges []Edge) []FollowEntry {
	out := make([]FollowEntry, 0, len(edges))
	for _, e := range edges {
		out = append(out, FollowEntry{User: e.User.Summary(), Bio: e.User.Bio, Since: e.Since})
	}
	return out
}

func summaries(users []dbmysql.User) []common.UserSummary {
	out := make([]common.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, u.Summary())
	}
	return out
}
