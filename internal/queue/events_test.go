package queue

import "testing"

func TestEngagementEvent_StreamRoundTrip(t *testing.T) {
	event := NewCommentRepliedEvent(1, 2, 10, 5)

	values, err := event.ToMap()
	if err != nil {
		t.Fatalf("ToMap() error = %v", err)
	}
	if values["type"] != EventCommentReplied {
		t.Errorf("type field = %v, want %s", values["type"], EventCommentReplied)
	}

	parsed, err := ParseEngagementEvent(values)
	if err != nil {
		t.Fatalf("ParseEngagementEvent() error = %v", err)
	}
	if parsed != event {
		t.Errorf("parsed = %+v, want %+v", parsed, event)
	}
}

func TestParseEngagementEvent_MissingData(t *testing.T) {
	if _, err := ParseEngagementEvent(map[string]interface{}{"type": EventFriendRequested}); err == nil {
		t.Error("ParseEngagementEvent() error = nil, want missing data error")
	}
}
