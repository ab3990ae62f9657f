package service

import (
	"errors"
	"testing"

	"playtube/internal/api/dto"
)

func TestUpdateProfilePartialFields(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	if _, err := env.userSvc.UpdateProfile(alice.ID, &dto.UpdateProfileRequest{}); !errors.Is(err, ErrNoFieldsToUpdate) {
		t.Fatalf("empty update should fail with ErrNoFieldsToUpdate, got %v", err)
	}

	fullName := "Alice Liddell"
	avatar := "http://example.com/alice.png"
	info, err := env.userSvc.UpdateProfile(alice.ID, &dto.UpdateProfileRequest{
		FullName: &fullName,
		Avatar:   &avatar,
	})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if info.FullName != fullName {
		t.Fatalf("full name not updated, got %q", info.FullName)
	}
	if info.Avatar == nil || *info.Avatar != avatar {
		t.Fatalf("avatar not updated, got %v", info.Avatar)
	}
	if info.Email != "alice@example.com" {
		t.Fatalf("untouched email should stay, got %q", info.Email)
	}
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	env.createUser(t, "bob")

	taken := "bob@example.com"
	if _, err := env.userSvc.UpdateProfile(alice.ID, &dto.UpdateProfileRequest{Email: &taken}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("taken email should fail with ErrEmailExists, got %v", err)
	}

	// 提交自己当前的邮箱不算冲突，但也没有产生变更
	own := "alice@example.com"
	if _, err := env.userSvc.UpdateProfile(alice.ID, &dto.UpdateProfileRequest{Email: &own}); !errors.Is(err, ErrNoFieldsToUpdate) {
		t.Fatalf("own email resubmission should yield ErrNoFieldsToUpdate, got %v", err)
	}

	fresh := "alice-new@example.com"
	info, err := env.userSvc.UpdateProfile(alice.ID, &dto.UpdateProfileRequest{Email: &fresh})
	if err != nil {
		t.Fatalf("update to fresh email failed: %v", err)
	}
	if info.Email != fresh {
		t.Fatalf("email not updated, got %q", info.Email)
	}
}

func TestGetChannelProfile(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	// bob 和 carol 订阅 alice，alice 订阅 bob
	for _, fanID := range []int64{bob.ID, carol.ID} {
		if _, err := env.subscriptionSvc.Toggle(fanID, alice.ID); err != nil {
			t.Fatalf("subscribe failed: %v", err)
		}
	}
	if _, err := env.subscriptionSvc.Toggle(alice.ID, bob.ID); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	profile, err := env.userSvc.GetChannelProfile("alice", bob.ID)
	if err != nil {
		t.Fatalf("get channel profile failed: %v", err)
	}
	if profile.SubscribersCount != 2 {
		t.Fatalf("expected 2 subscribers, got %d", profile.SubscribersCount)
	}
	if profile.SubscribedToCount != 1 {
		t.Fatalf("expected 1 subscribed-to, got %d", profile.SubscribedToCount)
	}
	if !profile.IsSubscribed {
		t.Fatalf("bob is subscribed, flag should be true")
	}

	anonymous, err := env.userSvc.GetChannelProfile("alice", 0)
	if err != nil {
		t.Fatalf("anonymous profile failed: %v", err)
	}
	if anonymous.IsSubscribed {
		t.Fatalf("anonymous viewer can never be subscribed")
	}

	if _, err := env.userSvc.GetChannelProfile("nobody", 0); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("missing channel should fail with ErrUserNotFound, got %v", err)
	}
}
