package service

import (
	"errors"
	"testing"
	"time"

	"playtube/internal/api/dto"
	"playtube/internal/model"
	"playtube/pkg/pagination"
)

func TestCommentCreateRequiresVideo(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	req := &dto.CommentCreateRequest{Content: "nice"}
	if _, err := env.commentSvc.Create(9999, alice.ID, req); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("comment on missing video should fail with ErrVideoNotFound, got %v", err)
	}

	video := env.createVideo(t, alice.ID, "clip", true, time.Now())
	info, err := env.commentSvc.Create(video.ID, alice.ID, req)
	if err != nil {
		t.Fatalf("create comment failed: %v", err)
	}
	if info.Content != "nice" || info.VideoID != video.ID || info.OwnerID != alice.ID {
		t.Fatalf("unexpected comment payload: %+v", info)
	}
}

func TestCommentUpdateAndDeletePermissions(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	video := env.createVideo(t, alice.ID, "clip", true, time.Now())
	comment := env.createComment(t, video.ID, alice.ID, "original")

	req := &dto.CommentUpdateRequest{Content: "edited"}
	if _, err := env.commentSvc.Update(comment.ID, bob.ID, req); !errors.Is(err, ErrCommentNoPermission) {
		t.Fatalf("update by non-owner should fail with ErrCommentNoPermission, got %v", err)
	}
	if _, err := env.commentSvc.Update(9999, alice.ID, req); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("update of missing comment should fail with ErrCommentNotFound, got %v", err)
	}

	info, err := env.commentSvc.Update(comment.ID, alice.ID, req)
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if info.Content != "edited" {
		t.Fatalf("content not updated, got %q", info.Content)
	}

	if err := env.commentSvc.Delete(comment.ID, bob.ID); !errors.Is(err, ErrCommentNoPermission) {
		t.Fatalf("delete by non-owner should fail with ErrCommentNoPermission, got %v", err)
	}
	if err := env.commentSvc.Delete(9999, alice.ID); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("delete of missing comment should fail with ErrCommentNotFound, got %v", err)
	}
	if err := env.commentSvc.Delete(comment.ID, alice.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if err := env.commentSvc.Delete(comment.ID, alice.ID); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("second delete should fail with ErrCommentNotFound, got %v", err)
	}
}

func TestCommentListByVideo(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	video := env.createVideo(t, alice.ID, "clip", true, time.Now())

	base := time.Now().Add(-time.Hour)
	first := env.createComment(t, video.ID, alice.ID, "first")
	second := env.createComment(t, video.ID, bob.ID, "second")
	for i, c := range []*model.Comment{first, second} {
		if err := env.db.Model(&model.Comment{}).Where("id = ?", c.ID).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error; err != nil {
			t.Fatalf("set created_at failed: %v", err)
		}
	}

	if _, err := env.likeSvc.Toggle(alice.ID, model.LikeTargetComment, second.ID); err != nil {
		t.Fatalf("like toggle failed: %v", err)
	}

	if _, err := env.commentSvc.ListByVideo(9999, 0, pagination.Params{Page: 1, Limit: 10}); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("listing missing video should fail with ErrVideoNotFound, got %v", err)
	}

	data, err := env.commentSvc.ListByVideo(video.ID, alice.ID, pagination.Params{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list comments failed: %v", err)
	}
	if data.Pagination.Total != 2 {
		t.Fatalf("expected 2 comments, got %d", data.Pagination.Total)
	}

	// 创建时间倒序，新评论在前
	if data.Comments[0].ID != second.ID || data.Comments[1].ID != first.ID {
		t.Fatalf("comment order wrong: got [%d, %d]", data.Comments[0].ID, data.Comments[1].ID)
	}
	if data.Comments[0].LikeCount != 1 || !data.Comments[0].IsLiked {
		t.Fatalf("liked comment dims wrong: count=%d liked=%v",
			data.Comments[0].LikeCount, data.Comments[0].IsLiked)
	}
	if data.Comments[1].LikeCount != 0 || data.Comments[1].IsLiked {
		t.Fatalf("unliked comment should report zero likes")
	}
	if data.Comments[0].Owner == nil || data.Comments[0].Owner.Username != "bob" {
		t.Fatalf("comment owner missing or wrong: %+v", data.Comments[0].Owner)
	}
}
