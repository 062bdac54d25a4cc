//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"socialhub/internal/audit"
	"socialhub/internal/auth"
	"socialhub/internal/cache"
	"socialhub/internal/common"
	"socialhub/internal/config"
	"socialhub/internal/feed"
	"socialhub/internal/media"
	"socialhub/internal/moderation"
	"socialhub/internal/post"
	"socialhub/internal/profile"
)

var infraSet = wire.NewSet(
	ProvideDatabase,
	ProvideTokenManager,
	wire.Bind(new(auth.TokenIssuer), new(*common.TokenManager)),
	ProvideStatsCache,
	wire.Bind(new(post.StatsInvalidator), new(cache.StatsCache)),
	audit.NewLogRepository,
	ProvideAuditManager,
	wire.Bind(new(common.Subject), new(*audit.Manager)),
)

var serviceSet = wire.NewSet(
	auth.NewAccountRepository,
	auth.ProvideEmailService,
	auth.ProvideOTPPolicy,
	auth.NewAuthService,
	auth.NewAccountGuard,
	auth.NewHandler,

	feed.NewFeedRepository,
	feed.ProvideFeedService,
	feed.NewHandler,
	wire.Bind(new(post.AuthorDirectory), new(feed.FeedRepository)),
	wire.Bind(new(profile.PostLister), new(feed.FeedService)),

	profile.NewUserRepository,
	profile.NewFollowRepository,
	profile.NewProfileService,
	profile.NewHandler,
	wire.Bind(new(post.AccessChecker), new(profile.ProfileService)),

	post.NewPostRepository,
	post.NewCommentRepository,
	post.NewPostService,
	post.NewHandler,

	moderation.NewReportRepository,
	moderation.NewModerationService,
	moderation.NewHandler,
	moderation.NewGRPCServer,

	ProvideMediaStore,
	ProvideMediaHandler,
	media.NewHTTPServer,
)

func InitializeApplication(configConfig *config.Config) (*Application, func(), error) {
	wire.Build(
		infraSet,
		serviceSet,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil, nil
}
