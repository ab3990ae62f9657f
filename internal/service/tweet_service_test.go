package service

import (
	"errors"
	"testing"

	"playtube/internal/api/dto"
	"playtube/internal/model"
	"playtube/pkg/pagination"
)

func TestTweetLifecycle(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	info, err := env.tweetSvc.Create(alice.ID, &dto.TweetCreateRequest{Content: "hello"})
	if err != nil {
		t.Fatalf("create tweet failed: %v", err)
	}
	if info.Content != "hello" || info.OwnerID != alice.ID {
		t.Fatalf("unexpected tweet payload: %+v", info)
	}

	req := &dto.TweetUpdateRequest{Content: "edited"}
	if _, err := env.tweetSvc.Update(info.ID, bob.ID, req); !errors.Is(err, ErrTweetNoPermission) {
		t.Fatalf("update by non-owner should fail with ErrTweetNoPermission, got %v", err)
	}
	if _, err := env.tweetSvc.Update(9999, alice.ID, req); !errors.Is(err, ErrTweetNotFound) {
		t.Fatalf("update of missing tweet should fail with ErrTweetNotFound, got %v", err)
	}

	updated, err := env.tweetSvc.Update(info.ID, alice.ID, req)
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Content != "edited" {
		t.Fatalf("content not updated, got %q", updated.Content)
	}

	if err := env.tweetSvc.Delete(info.ID, bob.ID); !errors.Is(err, ErrTweetNoPermission) {
		t.Fatalf("delete by non-owner should fail with ErrTweetNoPermission, got %v", err)
	}
	if err := env.tweetSvc.Delete(info.ID, alice.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if err := env.tweetSvc.Delete(info.ID, alice.ID); !errors.Is(err, ErrTweetNotFound) {
		t.Fatalf("second delete should fail with ErrTweetNotFound, got %v", err)
	}
}

func TestTweetListByUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	tweet := env.createTweet(t, alice.ID, "mine")
	env.createTweet(t, bob.ID, "not mine")

	if _, err := env.likeSvc.Toggle(bob.ID, model.LikeTargetTweet, tweet.ID); err != nil {
		t.Fatalf("like toggle failed: %v", err)
	}

	if _, err := env.tweetSvc.ListByUser(9999, 0, pagination.Params{Page: 1, Limit: 10}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("listing missing user should fail with ErrUserNotFound, got %v", err)
	}

	data, err := env.tweetSvc.ListByUser(alice.ID, bob.ID, pagination.Params{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list tweets failed: %v", err)
	}
	if data.Pagination.Total != 1 || len(data.Tweets) != 1 {
		t.Fatalf("expected exactly alice's tweet, got %+v", data)
	}
	got := data.Tweets[0]
	if got.ID != tweet.ID || got.LikeCount != 1 || !got.IsLiked {
		t.Fatalf("tweet dims wrong: %+v", got)
	}
	if got.Owner == nil || got.Owner.Username != "alice" {
		t.Fatalf("tweet owner missing or wrong: %+v", got.Owner)
	}
}
