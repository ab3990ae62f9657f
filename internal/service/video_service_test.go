package service

import (
	"errors"
	"testing"
	"time"

	"playtube/internal/api/dto"
	"playtube/internal/model"
	"playtube/pkg/pagination"
)

func TestVideoDetailUnpublishedOnlyVisibleToOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	viewer := env.createUser(t, "viewer")
	video := env.createVideo(t, owner.ID, "draft", false, time.Now())

	if _, err := env.videoSvc.GetDetail(video.ID, viewer.ID); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("non-owner should get ErrVideoNotFound for draft, got %v", err)
	}
	if _, err := env.videoSvc.GetDetail(video.ID, 0); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("anonymous viewer should get ErrVideoNotFound for draft, got %v", err)
	}

	detail, err := env.videoSvc.GetDetail(video.ID, owner.ID)
	if err != nil {
		t.Fatalf("owner should see own draft: %v", err)
	}
	if detail.IsPublished {
		t.Fatalf("draft should stay unpublished")
	}
	if detail.ViewCount != 0 {
		t.Fatalf("reading a draft should not count a view, got %d", detail.ViewCount)
	}
}

func TestVideoDetailIncrementsViewCount(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	video := env.createVideo(t, owner.ID, "published", true, time.Now())

	detail, err := env.videoSvc.GetDetail(video.ID, 0)
	if err != nil {
		t.Fatalf("get detail failed: %v", err)
	}
	if detail.ViewCount != 1 {
		t.Fatalf("first read should report 1 view, got %d", detail.ViewCount)
	}

	detail, err = env.videoSvc.GetDetail(video.ID, 0)
	if err != nil {
		t.Fatalf("second get detail failed: %v", err)
	}
	if detail.ViewCount != 2 {
		t.Fatalf("second read should report 2 views, got %d", detail.ViewCount)
	}
	if detail.IsLiked || detail.Owner.IsSubscribed {
		t.Fatalf("anonymous viewer should never appear liked or subscribed")
	}
}

func TestVideoDetailViewerDimensions(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	viewer := env.createUser(t, "viewer")
	video := env.createVideo(t, owner.ID, "published", true, time.Now())

	if _, err := env.likeSvc.Toggle(viewer.ID, model.LikeTargetVideo, video.ID); err != nil {
		t.Fatalf("like toggle failed: %v", err)
	}
	if _, err := env.subscriptionSvc.Toggle(viewer.ID, owner.ID); err != nil {
		t.Fatalf("subscribe toggle failed: %v", err)
	}

	detail, err := env.videoSvc.GetDetail(video.ID, viewer.ID)
	if err != nil {
		t.Fatalf("get detail failed: %v", err)
	}
	if detail.LikeCount != 1 || !detail.IsLiked {
		t.Fatalf("expected liked video with count 1, got count=%d liked=%v", detail.LikeCount, detail.IsLiked)
	}
	if detail.Owner == nil {
		t.Fatalf("detail should carry owner info")
	}
	if detail.Owner.SubscribersCount != 1 || !detail.Owner.IsSubscribed {
		t.Fatalf("expected subscribed owner with 1 subscriber, got count=%d subscribed=%v",
			detail.Owner.SubscribersCount, detail.Owner.IsSubscribed)
	}
	if detail.Owner.Username != "owner" {
		t.Fatalf("unexpected owner username %q", detail.Owner.Username)
	}
}

func TestVideoUpdatePermissions(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	other := env.createUser(t, "other")
	video := env.createVideo(t, owner.ID, "before", true, time.Now())

	title := "after"
	req := &dto.VideoUpdateRequest{Title: &title}

	if _, err := env.videoSvc.Update(video.ID, other.ID, req); !errors.Is(err, ErrVideoNoPermission) {
		t.Fatalf("non-owner update should fail with ErrVideoNoPermission, got %v", err)
	}

	if _, err := env.videoSvc.Update(video.ID, owner.ID, &dto.VideoUpdateRequest{}); !errors.Is(err, ErrNoFieldsToUpdate) {
		t.Fatalf("empty update should fail with ErrNoFieldsToUpdate, got %v", err)
	}

	info, err := env.videoSvc.Update(video.ID, owner.ID, req)
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if info.Title != "after" {
		t.Fatalf("title not updated, got %q", info.Title)
	}
	if info.OwnerID != owner.ID {
		t.Fatalf("owner should never change on update, got %d", info.OwnerID)
	}
}

func TestVideoTogglePublish(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	video := env.createVideo(t, owner.ID, "clip", false, time.Now())

	info, err := env.videoSvc.TogglePublish(video.ID, owner.ID)
	if err != nil {
		t.Fatalf("toggle publish failed: %v", err)
	}
	if !info.IsPublished {
		t.Fatalf("first toggle should publish the video")
	}

	info, err = env.videoSvc.TogglePublish(video.ID, owner.ID)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if info.IsPublished {
		t.Fatalf("second toggle should unpublish the video")
	}
}

func TestVideoDelete(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	other := env.createUser(t, "other")
	video := env.createVideo(t, owner.ID, "clip", true, time.Now())

	if err := env.videoSvc.Delete(video.ID, other.ID); !errors.Is(err, ErrVideoNoPermission) {
		t.Fatalf("non-owner delete should fail with ErrVideoNoPermission, got %v", err)
	}

	if err := env.videoSvc.Delete(video.ID, owner.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}

	if _, err := env.videoSvc.GetDetail(video.ID, owner.ID); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("deleted video should be gone, got %v", err)
	}
}

func TestGetFeedOnlyPublished(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	viewer := env.createUser(t, "viewer")

	base := time.Now().Add(-time.Hour)
	old := env.createVideo(t, owner.ID, "old", true, base)
	recent := env.createVideo(t, owner.ID, "recent", true, base.Add(10*time.Minute))
	env.createVideo(t, owner.ID, "draft", false, base.Add(20*time.Minute))

	if _, err := env.likeSvc.Toggle(viewer.ID, model.LikeTargetVideo, recent.ID); err != nil {
		t.Fatalf("like toggle failed: %v", err)
	}

	data, err := env.videoSvc.GetFeed(viewer.ID, pagination.Params{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("get feed failed: %v", err)
	}
	if data.Pagination.Total != 2 {
		t.Fatalf("feed should only count published videos, got %d", data.Pagination.Total)
	}
	if len(data.Videos) != 2 {
		t.Fatalf("expected 2 feed items, got %d", len(data.Videos))
	}

	// 按创建时间倒序
	if data.Videos[0].ID != recent.ID || data.Videos[1].ID != old.ID {
		t.Fatalf("feed order wrong: got [%d, %d]", data.Videos[0].ID, data.Videos[1].ID)
	}

	if data.Videos[0].LikeCount != 1 || !data.Videos[0].IsLiked {
		t.Fatalf("liked video dims wrong: count=%d liked=%v", data.Videos[0].LikeCount, data.Videos[0].IsLiked)
	}
	if data.Videos[1].LikeCount != 0 || data.Videos[1].IsLiked {
		t.Fatalf("unliked video should report zero likes, got count=%d liked=%v",
			data.Videos[1].LikeCount, data.Videos[1].IsLiked)
	}
	for _, v := range data.Videos {
		if v.Owner == nil || v.Owner.Username != "owner" {
			t.Fatalf("feed item %d missing owner info", v.ID)
		}
	}
}

func TestGetFeedAnonymousViewer(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	fan := env.createUser(t, "fan")
	video := env.createVideo(t, owner.ID, "clip", true, time.Now())

	if _, err := env.likeSvc.Toggle(fan.ID, model.LikeTargetVideo, video.ID); err != nil {
		t.Fatalf("like toggle failed: %v", err)
	}

	data, err := env.videoSvc.GetFeed(0, pagination.Params{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("get feed failed: %v", err)
	}
	if data.Videos[0].LikeCount != 1 {
		t.Fatalf("like count should be visible to anonymous viewers, got %d", data.Videos[0].LikeCount)
	}
	if data.Videos[0].IsLiked {
		t.Fatalf("anonymous viewer can never have liked anything")
	}
}

func TestGetFeedPastEndPage(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	env.createVideo(t, owner.ID, "clip", true, time.Now())

	data, err := env.videoSvc.GetFeed(0, pagination.Params{Page: 5, Limit: 10})
	if err != nil {
		t.Fatalf("get feed failed: %v", err)
	}
	if len(data.Videos) != 0 {
		t.Fatalf("past-end page should be empty, got %d items", len(data.Videos))
	}
	if data.Pagination.Total != 1 || data.Pagination.TotalPages != 1 {
		t.Fatalf("past-end page should keep accurate meta: %+v", data.Pagination)
	}
	if data.Pagination.HasNext || !data.Pagination.HasPrev {
		t.Fatalf("past-end page should have prev but no next: %+v", data.Pagination)
	}
}

func TestGetChannelVideosIncludesDrafts(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	env.createVideo(t, owner.ID, "published", true, time.Now().Add(-time.Minute))
	env.createVideo(t, owner.ID, "draft", false, time.Now())

	publicData, err := env.videoSvc.GetChannelVideos(owner.ID, 0, true, pagination.Params{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("get channel videos failed: %v", err)
	}
	if publicData.Pagination.Total != 1 {
		t.Fatalf("public channel view should hide drafts, got %d", publicData.Pagination.Total)
	}

	ownData, err := env.videoSvc.GetChannelVideos(owner.ID, owner.ID, false, pagination.Params{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("get own channel videos failed: %v", err)
	}
	if ownData.Pagination.Total != 2 {
		t.Fatalf("channel backstage view should include drafts, got %d", ownData.Pagination.Total)
	}
}
