package service

import (
	"errors"
	"testing"
	"time"

	"playtube/internal/model"
	"playtube/pkg/pagination"
)

func TestSubscriptionToggleAlternates(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	result, err := env.subscriptionSvc.Toggle(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !result.Created {
		t.Fatalf("first toggle should create the subscription")
	}
	if result.Subscription == nil || result.Subscription.ChannelID != bob.ID {
		t.Fatalf("unexpected subscription payload: %+v", result.Subscription)
	}

	result, err = env.subscriptionSvc.Toggle(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if result.Created {
		t.Fatalf("second toggle should remove the subscription")
	}

	subscribed, err := env.subscriptionSvc.GetStatus(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("get status failed: %v", err)
	}
	if subscribed {
		t.Fatalf("subscription should be gone after second toggle")
	}

	var count int64
	if err := env.db.Model(&model.Subscription{}).Count(&count).Error; err != nil {
		t.Fatalf("count subscriptions failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no subscription rows, got %d", count)
	}
}

func TestSubscriptionToggleRejectsSelf(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	if _, err := env.subscriptionSvc.Toggle(alice.ID, alice.ID); !errors.Is(err, ErrCannotSubscribeSelf) {
		t.Fatalf("expected ErrCannotSubscribeSelf, got %v", err)
	}
}

func TestSubscriptionToggleMissingChannel(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	if _, err := env.subscriptionSvc.Toggle(alice.ID, 9999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetChannelSubscribers(t *testing.T) {
	env := newTestEnv(t)
	channel := env.createUser(t, "channel")
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	// alice 和 bob 订阅频道，频道反向订阅 alice，carol 订阅 alice
	for _, subscriberID := range []int64{alice.ID, bob.ID} {
		if _, err := env.subscriptionSvc.Toggle(subscriberID, channel.ID); err != nil {
			t.Fatalf("toggle failed: %v", err)
		}
	}
	if _, err := env.subscriptionSvc.Toggle(channel.ID, alice.ID); err != nil {
		t.Fatalf("toggle back failed: %v", err)
	}
	if _, err := env.subscriptionSvc.Toggle(carol.ID, alice.ID); err != nil {
		t.Fatalf("toggle carol failed: %v", err)
	}

	data, err := env.subscriptionSvc.GetChannelSubscribers(channel.ID, pagination.Params{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("get channel subscribers failed: %v", err)
	}
	if data.Pagination.Total != 2 {
		t.Fatalf("expected 2 subscribers, got %d", data.Pagination.Total)
	}

	byID := make(map[int64]int, len(data.Subscribers))
	for i, sub := range data.Subscribers {
		byID[sub.ID] = i
	}
	aliceInfo := data.Subscribers[byID[alice.ID]]
	if !aliceInfo.SubscribedBack {
		t.Fatalf("channel subscribed back to alice, flag should be true")
	}
	if aliceInfo.SubscribersCount != 2 {
		t.Fatalf("alice has 2 subscribers, got %d", aliceInfo.SubscribersCount)
	}
	bobInfo := data.Subscribers[byID[bob.ID]]
	if bobInfo.SubscribedBack {
		t.Fatalf("channel never subscribed to bob")
	}
	if bobInfo.SubscribersCount != 0 {
		t.Fatalf("bob has no subscribers, got %d", bobInfo.SubscribersCount)
	}
}

func TestGetSubscribedChannelsWithLatestVideo(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	channel1 := env.createUser(t, "channel1")
	channel2 := env.createUser(t, "channel2")

	base := time.Now().Add(-time.Hour)
	env.createVideo(t, channel1.ID, "old", true, base)
	latest := env.createVideo(t, channel1.ID, "new", true, base.Add(10*time.Minute))
	// 最新的一条未发布，不应出现在结果里
	env.createVideo(t, channel1.ID, "draft", false, base.Add(20*time.Minute))

	for _, channelID := range []int64{channel1.ID, channel2.ID} {
		if _, err := env.subscriptionSvc.Toggle(alice.ID, channelID); err != nil {
			t.Fatalf("toggle failed: %v", err)
		}
	}

	data, err := env.subscriptionSvc.GetSubscribedChannels(alice.ID, pagination.Params{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("get subscribed channels failed: %v", err)
	}
	if data.Pagination.Total != 2 {
		t.Fatalf("expected 2 channels, got %d", data.Pagination.Total)
	}

	for _, ch := range data.Channels {
		switch ch.ID {
		case channel1.ID:
			if ch.LatestVideo == nil {
				t.Fatalf("channel1 should carry its latest published video")
			}
			if ch.LatestVideo.ID != latest.ID {
				t.Fatalf("expected latest video %d, got %d", latest.ID, ch.LatestVideo.ID)
			}
		case channel2.ID:
			if ch.LatestVideo != nil {
				t.Fatalf("channel2 has no videos, latest video should be nil")
			}
		default:
			t.Fatalf("unexpected channel %d in result", ch.ID)
		}
	}
}

func TestGetSubscribedChannelsMissingUser(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.subscriptionSvc.GetSubscribedChannels(9999, pagination.Params{Page: 1, Limit: 10}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
