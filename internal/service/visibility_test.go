package service

import (
	"reflect"
	"testing"

	"github.com/yjym33/travelLog-Backend/internal/model"
)

func TestCanView(t *testing.T) {
	tests := []struct {
		name       string
		viewerID   int64
		ownerID    int64
		visibility model.Visibility
		areFriends bool
		want       bool
	}{
		{"owner sees own private log", 1, 1, model.VisibilityPrivate, false, true},
		{"owner sees own friends log", 1, 1, model.VisibilityFriends, false, true},
		{"owner sees own public log", 1, 1, model.VisibilityPublic, false, true},

		{"stranger sees public log", 2, 1, model.VisibilityPublic, false, true},
		{"anonymous sees public log", 0, 1, model.VisibilityPublic, false, true},
		{"friend sees public log", 2, 1, model.VisibilityPublic, true, true},

		{"friend sees friends log", 2, 1, model.VisibilityFriends, true, true},
		{"stranger denied friends log", 2, 1, model.VisibilityFriends, false, false},
		{"anonymous denied friends log", 0, 1, model.VisibilityFriends, false, false},

		{"stranger denied private log", 2, 1, model.VisibilityPrivate, false, false},
		{"friend denied private log", 2, 1, model.VisibilityPrivate, true, false},
		{"anonymous denied private log", 0, 1, model.VisibilityPrivate, false, false},

		{"unknown visibility denies", 2, 1, model.Visibility("SECRET"), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanView(tt.viewerID, tt.ownerID, tt.visibility, tt.areFriends)
			if got != tt.want {
				t.Errorf("CanView(%d, %d, %q, %v) = %v, want %v",
					tt.viewerID, tt.ownerID, tt.visibility, tt.areFriends, got, tt.want)
			}
		})
	}
}

func TestVisibleTiers(t *testing.T) {
	tests := []struct {
		name       string
		isOwner    bool
		areFriends bool
		want       []model.Visibility
	}{
		{"owner sees all tiers", true, false,
			[]model.Visibility{model.VisibilityPrivate, model.VisibilityFriends, model.VisibilityPublic}},
		{"friend sees friends and public", false, true,
			[]model.Visibility{model.VisibilityFriends, model.VisibilityPublic}},
		{"stranger sees public only", false, false,
			[]model.Visibility{model.VisibilityPublic}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleTiers(tt.isOwner, tt.areFriends)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("VisibleTiers(%v, %v) = %v, want %v", tt.isOwner, tt.areFriends, got, tt.want)
			}
		})
	}
}
