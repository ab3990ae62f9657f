package service

import (
	"errors"
	"testing"
	"time"

	"playtube/internal/api/dto"
	"playtube/internal/model"
)

func TestPlaylistAddVideoIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	video := env.createVideo(t, owner.ID, "clip", true, time.Now())

	playlist, err := env.playlistSvc.Create(owner.ID, &dto.PlaylistCreateRequest{Name: "favorites"})
	if err != nil {
		t.Fatalf("create playlist failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := env.playlistSvc.AddVideo(playlist.ID, video.ID, owner.ID); err != nil {
			t.Fatalf("add video round %d failed: %v", i, err)
		}
	}

	var count int64
	if err := env.db.Model(&model.PlaylistVideo{}).Where("playlist_id = ?", playlist.ID).Count(&count).Error; err != nil {
		t.Fatalf("count entries failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("repeated adds should leave exactly one entry, got %d", count)
	}
}

func TestPlaylistPreservesInsertionOrder(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")

	base := time.Now().Add(-time.Hour)
	// 创建时间与插入顺序故意相反，详情必须按插入顺序而非创建时间排列
	v1 := env.createVideo(t, owner.ID, "third-created", true, base.Add(30*time.Minute))
	v2 := env.createVideo(t, owner.ID, "second-created", true, base.Add(20*time.Minute))
	v3 := env.createVideo(t, owner.ID, "first-created", true, base.Add(10*time.Minute))

	playlist, err := env.playlistSvc.Create(owner.ID, &dto.PlaylistCreateRequest{Name: "ordered"})
	if err != nil {
		t.Fatalf("create playlist failed: %v", err)
	}
	for _, v := range []*model.Video{v2, v3, v1} {
		if err := env.playlistSvc.AddVideo(playlist.ID, v.ID, owner.ID); err != nil {
			t.Fatalf("add video failed: %v", err)
		}
	}

	detail, err := env.playlistSvc.GetByID(playlist.ID, 0)
	if err != nil {
		t.Fatalf("get playlist failed: %v", err)
	}
	if len(detail.Videos) != 3 {
		t.Fatalf("expected 3 videos, got %d", len(detail.Videos))
	}
	want := []int64{v2.ID, v3.ID, v1.ID}
	for i, v := range detail.Videos {
		if v.ID != want[i] {
			t.Fatalf("position %d: expected video %d, got %d", i, want[i], v.ID)
		}
	}
}

func TestPlaylistFiltersInvisibleVideos(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")

	published := env.createVideo(t, owner.ID, "published", true, time.Now())
	draft := env.createVideo(t, owner.ID, "draft", false, time.Now())
	doomed := env.createVideo(t, owner.ID, "doomed", true, time.Now())

	if err := env.db.Model(&model.Video{}).Where("id = ?", published.ID).
		Update("view_count", 7).Error; err != nil {
		t.Fatalf("set view count failed: %v", err)
	}

	playlist, err := env.playlistSvc.Create(owner.ID, &dto.PlaylistCreateRequest{Name: "mixed"})
	if err != nil {
		t.Fatalf("create playlist failed: %v", err)
	}
	for _, v := range []*model.Video{published, draft, doomed} {
		if err := env.playlistSvc.AddVideo(playlist.ID, v.ID, owner.ID); err != nil {
			t.Fatalf("add video failed: %v", err)
		}
	}

	if err := env.videoSvc.Delete(doomed.ID, owner.ID); err != nil {
		t.Fatalf("delete video failed: %v", err)
	}

	detail, err := env.playlistSvc.GetByID(playlist.ID, 0)
	if err != nil {
		t.Fatalf("get playlist failed: %v", err)
	}
	if len(detail.Videos) != 1 || detail.Videos[0].ID != published.ID {
		t.Fatalf("only the published surviving video should remain, got %+v", detail.Videos)
	}
	if detail.TotalVideos != 1 {
		t.Fatalf("totals should cover filtered videos only, got %d", detail.TotalVideos)
	}
	if detail.TotalViews != 7 {
		t.Fatalf("total views should sum filtered videos only, got %d", detail.TotalViews)
	}

	infos, err := env.playlistSvc.ListByUser(owner.ID)
	if err != nil {
		t.Fatalf("list playlists failed: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected 1 playlist, got %d", len(infos))
	}
	if infos[0].TotalVideos != 1 || infos[0].TotalViews != 7 {
		t.Fatalf("list totals wrong: videos=%d views=%d", infos[0].TotalVideos, infos[0].TotalViews)
	}
}

func TestPlaylistRemoveVideoIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	video := env.createVideo(t, owner.ID, "clip", true, time.Now())

	playlist, err := env.playlistSvc.Create(owner.ID, &dto.PlaylistCreateRequest{Name: "favorites"})
	if err != nil {
		t.Fatalf("create playlist failed: %v", err)
	}
	if err := env.playlistSvc.AddVideo(playlist.ID, video.ID, owner.ID); err != nil {
		t.Fatalf("add video failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := env.playlistSvc.RemoveVideo(playlist.ID, video.ID, owner.ID); err != nil {
			t.Fatalf("remove video round %d failed: %v", i, err)
		}
	}

	detail, err := env.playlistSvc.GetByID(playlist.ID, 0)
	if err != nil {
		t.Fatalf("get playlist failed: %v", err)
	}
	if len(detail.Videos) != 0 {
		t.Fatalf("playlist should be empty after removal, got %d videos", len(detail.Videos))
	}
}

func TestPlaylistMutationsRequireOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	other := env.createUser(t, "other")
	video := env.createVideo(t, owner.ID, "clip", true, time.Now())

	playlist, err := env.playlistSvc.Create(owner.ID, &dto.PlaylistCreateRequest{Name: "mine"})
	if err != nil {
		t.Fatalf("create playlist failed: %v", err)
	}

	req := &dto.PlaylistUpdateRequest{Name: "stolen", Description: ""}
	if _, err := env.playlistSvc.Update(playlist.ID, other.ID, req); !errors.Is(err, ErrPlaylistNoPermission) {
		t.Fatalf("update by non-owner should fail with ErrPlaylistNoPermission, got %v", err)
	}
	if err := env.playlistSvc.AddVideo(playlist.ID, video.ID, other.ID); !errors.Is(err, ErrPlaylistNoPermission) {
		t.Fatalf("add by non-owner should fail with ErrPlaylistNoPermission, got %v", err)
	}
	if err := env.playlistSvc.RemoveVideo(playlist.ID, video.ID, other.ID); !errors.Is(err, ErrPlaylistNoPermission) {
		t.Fatalf("remove by non-owner should fail with ErrPlaylistNoPermission, got %v", err)
	}
	if err := env.playlistSvc.Delete(playlist.ID, other.ID); !errors.Is(err, ErrPlaylistNoPermission) {
		t.Fatalf("delete by non-owner should fail with ErrPlaylistNoPermission, got %v", err)
	}

	if _, err := env.playlistSvc.Update(9999, owner.ID, req); !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("update of missing playlist should fail with ErrPlaylistNotFound, got %v", err)
	}
}

func TestPlaylistDeleteRemovesEntries(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner")
	video := env.createVideo(t, owner.ID, "clip", true, time.Now())

	playlist, err := env.playlistSvc.Create(owner.ID, &dto.PlaylistCreateRequest{Name: "favorites"})
	if err != nil {
		t.Fatalf("create playlist failed: %v", err)
	}
	if err := env.playlistSvc.AddVideo(playlist.ID, video.ID, owner.ID); err != nil {
		t.Fatalf("add video failed: %v", err)
	}

	if err := env.playlistSvc.Delete(playlist.ID, owner.ID); err != nil {
		t.Fatalf("delete playlist failed: %v", err)
	}

	if _, err := env.playlistSvc.GetByID(playlist.ID, 0); !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("deleted playlist should be gone, got %v", err)
	}

	var count int64
	if err := env.db.Model(&model.PlaylistVideo{}).Where("playlist_id = ?", playlist.ID).Count(&count).Error; err != nil {
		t.Fatalf("count entries failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("playlist entries should be deleted alongside the playlist, got %d", count)
	}
}
