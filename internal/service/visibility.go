package service

import "github.com/yjym33/travelLog-Backend/internal/model"

// CanView decides whether a viewer may see a travel log. The owner always
// sees their own logs; PUBLIC is open to everyone including anonymous
// viewers (viewerID 0); FRIENDS requires an accepted friendship; PRIVATE
// is owner-only. Unknown visibility values deny.
func CanView(viewerID, ownerID int64, visibility model.Visibility, areFriends bool) bool {
	if viewerID != 0 && viewerID == ownerID {
		return true
	}
	switch visibility {
	case model.VisibilityPublic:
		return true
	case model.VisibilityFriends:
		return areFriends
	case model.VisibilityPrivate:
		return false
	default:
		return false
	}
}

// VisibleTiers returns the visibility tiers a viewer is entitled to when
// listing another user's logs. Listings silently filter to these tiers
// rather than failing.
func VisibleTiers(isOwner, areFriends bool) []model.Visibility {
	if isOwner {
		return []model.Visibility{model.VisibilityPrivate, model.VisibilityFriends, model.VisibilityPublic}
	}
	if areFriends {
		return []model.Visibility{model.VisibilityFriends, model.VisibilityPublic}
	}
	return []model.Visibility{model.VisibilityPublic}
}
