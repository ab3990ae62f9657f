package service

import (
	"testing"
	"time"

	"playtube/internal/model"
	"playtube/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db *gorm.DB

	userRepo     *repository.UserRepository
	videoRepo    *repository.VideoRepository
	commentRepo  *repository.CommentRepository
	tweetRepo    *repository.TweetRepository
	playlistRepo *repository.PlaylistRepository
	likeRepo     *repository.LikeRepository
	subRepo      *repository.SubscriptionRepository

	videoSvc        *VideoService
	commentSvc      *CommentService
	tweetSvc        *TweetService
	likeSvc         *LikeService
	subscriptionSvc *SubscriptionService
	playlistSvc     *PlaylistService
	userSvc         *UserService
	dashboardSvc    *DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open in-memory database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Tweet{},
		&model.Playlist{},
		&model.PlaylistVideo{},
		&model.Like{},
		&model.Subscription{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	env := &testEnv{db: db}
	env.userRepo = repository.NewUserRepository(db)
	env.videoRepo = repository.NewVideoRepository(db)
	env.commentRepo = repository.NewCommentRepository(db)
	env.tweetRepo = repository.NewTweetRepository(db)
	env.playlistRepo = repository.NewPlaylistRepository(db)
	env.likeRepo = repository.NewLikeRepository(db)
	env.subRepo = repository.NewSubscriptionRepository(db)

	env.videoSvc = NewVideoService(env.videoRepo, env.likeRepo, env.subRepo)
	env.commentSvc = NewCommentService(env.commentRepo, env.videoRepo, env.likeRepo)
	env.tweetSvc = NewTweetService(env.tweetRepo, env.userRepo, env.likeRepo)
	env.likeSvc = NewLikeService(env.likeRepo, env.videoRepo, env.commentRepo, env.tweetRepo)
	env.subscriptionSvc = NewSubscriptionService(env.subRepo, env.userRepo, env.videoRepo)
	env.playlistSvc = NewPlaylistService(env.playlistRepo, env.videoRepo, env.userRepo, env.likeRepo)
	env.userSvc = NewUserService(env.userRepo, env.subRepo)
	env.dashboardSvc = NewDashboardService(env.videoRepo, env.likeRepo, env.subRepo, env.videoSvc)
	return env
}

func (e *testEnv) createUser(t *testing.T, username string) *model.User {
	t.Helper()
	user := &model.User{
		UserName: username,
		Email:    username + "@example.com",
		FullName: username,
		Password: "hashed",
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func (e *testEnv) createVideo(t *testing.T, ownerID int64, title string, published bool, createdAt time.Time) *model.Video {
	t.Helper()
	video := &model.Video{
		OwnerID:     ownerID,
		Title:       title,
		FileURL:     "http://example.com/" + title + ".mp4",
		IsPublished: published,
		CreatedAt:   createdAt,
	}
	if err := e.db.Create(video).Error; err != nil {
		t.Fatalf("create video %s: %v", title, err)
	}
	return video
}

func (e *testEnv) createComment(t *testing.T, videoID, ownerID int64, content string) *model.Comment {
	t.Helper()
	comment := &model.Comment{VideoID: videoID, OwnerID: ownerID, Content: content}
	if err := e.db.Create(comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return comment
}

func (e *testEnv) createTweet(t *testing.T, ownerID int64, content string) *model.Tweet {
	t.Helper()
	tweet := &model.Tweet{OwnerID: ownerID, Content: content}
	if err := e.db.Create(tweet).Error; err != nil {
		t.Fatalf("create tweet: %v", err)
	}
	return tweet
}
