package db

import "testing"

func TestChangeNotifierDropsWhenSubscriberIsFull(t *testing.T) {
	notifier := NewChangeNotifier(1)
	id, changes := notifier.Subscribe()

	if got := notifier.Publish(Change{UserID: 1, Kind: ChangeLogs}); got != 1 {
		t.Fatalf("expected first change delivered, got %d", got)
	}
	if got := notifier.Publish(Change{UserID: 1, Kind: ChangeCycles}); got != 0 {
		t.Fatalf("expected second change dropped on full buffer, got %d", got)
	}

	if change := <-changes; change.Kind != ChangeLogs {
		t.Fatalf("expected logs change, got %s", change.Kind)
	}

	notifier.Unsubscribe(id)
	if _, open := <-changes; open {
		t.Fatal("expected channel closed after unsubscribe")
	}
	if notifier.Subscribers() != 0 {
		t.Fatalf("expected no subscribers, got %d", notifier.Subscribers())
	}
	notifier.Unsubscribe(id)
}

func TestChangeNotifierSubscriptionsAreIndependent(t *testing.T) {
	notifier := NewChangeNotifier(2)
	_, first := notifier.Subscribe()
	secondID, second := notifier.Subscribe()
	notifier.Unsubscribe(secondID)

	if got := notifier.Publish(Change{UserID: 7, Kind: ChangeSettings}); got != 1 {
		t.Fatalf("expected one delivery, got %d", got)
	}
	if change := <-first; change.UserID != 7 {
		t.Fatalf("unexpected change: %#v", change)
	}
	if _, open := <-second; open {
		t.Fatal("expected unsubscribed channel closed")
	}
}
