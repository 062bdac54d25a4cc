package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"socialhub/internal/common"
	"socialhub/internal/dbmysql"
)

type graph struct {
	db *gorm.DB

	alice, bob, carol, dave, eve dbmysql.User

	alicePost, bobPost, carolPost, davePost dbmysql.Post
}

// newGraph seeds four authors with one post each:
// alice Public, bob FollowersOnly, carol Private, dave Public; eve has no posts.
// dave follows bob and carol (accepted); eve's request to bob is pending.
func newGraph(t *testing.T) *graph {
	t.Helper()
	db, err := dbmysql.NewInMemory()
	require.NoError(t, err)

	g := &graph{db: db}
	mk := func(u *dbmysql.User, name string, vis common.Visibility) {
		*u = dbmysql.User{Username: name, Email: name + "@example.com", PasswordHash: "x", Visibility: vis, EmailVerified: true}
		require.NoError(t, db.Create(u).Error)
	}
	mk(&g.alice, "alice", common.VisibilityPublic)
	mk(&g.bob, "bob", common.VisibilityFollowersOnly)
	mk(&g.carol, "carol", common.VisibilityPrivate)
	mk(&g.dave, "dave", common.VisibilityPublic)
	mk(&g.eve, "eve", common.VisibilityPublic)

	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	post := func(p *dbmysql.Post, author dbmysql.User, offset time.Duration) {
		*p = dbmysql.Post{AuthorID: author.ID, Title: author.Username + " post", Content: "hello", CreatedAt: base.Add(offset)}
		require.NoError(t, db.Create(p).Error)
	}
	post(&g.alicePost, g.alice, 1*time.Hour)
	post(&g.bobPost, g.bob, 2*time.Hour)
	post(&g.carolPost, g.carol, 3*time.Hour)
	post(&g.davePost, g.dave, 4*time.Hour)

	edges := []dbmysql.Follower{
		{FollowerID: g.dave.ID, FollowedID: g.bob.ID, Status: common.FollowAccepted},
		{FollowerID: g.dave.ID, FollowedID: g.carol.ID, Status: common.FollowAccepted},
		{FollowerID: g.eve.ID, FollowedID: g.bob.ID, Status: common.FollowPending},
	}
	require.NoError(t, db.Create(&edges).Error)
	return g
}

func postIDs(posts []dbmysql.Post) []uint64 {
	ids := make([]uint64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestFeedRepository_VisiblePosts(t *testing.T) {
	g := newGraph(t)
	repo := NewFeedRepository(g.db)
	ctx := context.Background()

	tests := []struct {
		name  string
		query Query
		want  []uint64
	}{
		{"follower sees followers-only author", Query{ViewerID: g.dave.ID, Mode: ModeAll},
			[]uint64{g.davePost.ID, g.bobPost.ID, g.alicePost.ID}},
		{"following mode drops strangers and private authors", Query{ViewerID: g.dave.ID, Mode: ModeFollowing},
			[]uint64{g.davePost.ID, g.bobPost.ID}},
		{"pending edge grants nothing", Query{ViewerID: g.eve.ID, Mode: ModeAll},
			[]uint64{g.davePost.ID, g.alicePost.ID}},
		{"anonymous sees public authors", Query{Mode: ModeAll},
			[]uint64{g.davePost.ID, g.alicePost.ID}},
		{"private author sees own posts", Query{ViewerID: g.carol.ID, Mode: ModeAll},
			[]uint64{g.davePost.ID, g.carolPost.ID, g.alicePost.ID}},
		{"author filter", Query{ViewerID: g.dave.ID, Mode: ModeAll, AuthorID: g.bob.ID},
			[]uint64{g.bobPost.ID}},
		{"author filter hidden", Query{ViewerID: g.eve.ID, Mode: ModeAll, AuthorID: g.bob.ID},
			[]uint64{}},
		{"single post hidden", Query{ViewerID: g.dave.ID, Mode: ModeAll, PostID: g.carolPost.ID},
			[]uint64{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			posts, total, err := repo.VisiblePosts(ctx, tc.query, 10, 0)
			require.NoError(t, err)
			require.Equal(t, int64(len(tc.want)), total)
			require.Equal(t, tc.want, postIDs(posts))
		})
	}
}

func TestFeedRepository_Paging(t *testing.T) {
	g := newGraph(t)
	repo := NewFeedRepository(g.db)

	posts, total, err := repo.VisiblePosts(context.Background(), Query{ViewerID: g.dave.ID, Mode: ModeAll}, 2, 2)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Equal(t, []uint64{g.alicePost.ID}, postIDs(posts))
}

func TestFeedRepository_Decorations(t *testing.T) {
	g := newGraph(t)
	repo := NewFeedRepository(g.db)
	ctx := context.Background()

	comments := []dbmysql.Comment{
		{PostID: g.alicePost.ID, AuthorID: g.dave.ID, Content: "nice"},
		{PostID: g.alicePost.ID, AuthorID: g.eve.ID, Content: "agreed"},
		{PostID: g.davePost.ID, AuthorID: g.alice.ID, Content: "hi"},
	}
	require.NoError(t, g.db.Create(&comments).Error)
	require.NoError(t, g.db.Create(&dbmysql.Like{PostID: g.alicePost.ID, UserID: g.dave.ID}).Error)

	ids := []uint64{g.alicePost.ID, g.bobPost.ID, g.davePost.ID}

	counts, err := repo.CommentCounts(ctx, ids)
	require.NoError(t, err)
	require.Equal(t, map[uint64]int64{g.alicePost.ID: 2, g.davePost.ID: 1}, counts)

	liked, err := repo.LikedBy(ctx, g.dave.ID, ids)
	require.NoError(t, err)
	require.Equal(t, map[uint64]bool{g.alicePost.ID: true}, liked)

	liked, err = repo.LikedBy(ctx, 0, ids)
	require.NoError(t, err)
	require.Empty(t, liked)

	authors, err := repo.Authors(ctx, []uint64{g.alice.ID, g.bob.ID})
	require.NoError(t, err)
	require.Len(t, authors, 2)
	require.Equal(t, "bob", authors[g.bob.ID].Username)
	require.Equal(t, common.VisibilityFollowersOnly, authors[g.bob.ID].Visibility)
}
