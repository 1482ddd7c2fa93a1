package dto

// WatchlistRequest adds a resource to a watchlist.
type WatchlistRequest struct {
	ResourceID string `json:"resourceId" validate:"required,max=200"`
}

// MergeWatchlistRequest carries guest-held ids to merge into the signed-in account.
// GuestToken identifies a server-held guest list to merge and clear.
type MergeWatchlistRequest struct {
	ResourceIDs []string `json:"resourceIds,omitempty" validate:"omitempty,max=500,dive,required,max=200"`
	GuestToken  string   `json:"guestToken,omitempty" validate:"omitempty,max=128"`
}

// MergeWatchlistResponse reports how many entries were added.
type MergeWatchlistResponse struct {
	Added int `json:"added"`
}

// WatchlistIDsResponse lists the saved resource ids.
type WatchlistIDsResponse struct {
	ResourceIDs []string `json:"resourceIds"`
}
