package services

import (
	"context"
	"errors"
	"slices"

	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
	"github.com/yigit/studyportal/internal/pkg/logger"
)

// ErrNoWatchlistOwner is returned when a request carries neither a session nor a guest token.
var ErrNoWatchlistOwner = apperrors.NewBadRequestError("sign in or send a guest token to use the watchlist")

// WatchlistStore keeps one owner's saved resource ids.
type WatchlistStore interface {
	Add(ctx context.Context, owner models.Owner, resourceID string) error
	Remove(ctx context.Context, owner models.Owner, resourceID string) error
	// IDs lists saved ids, most recent first.
	IDs(ctx context.Context, owner models.Owner) ([]string, error)
}

// UserWatchlistRepository is the persisted store behind signed-in watchlists.
type UserWatchlistRepository interface {
	Add(ctx context.Context, userID, resourceID string) error
	Remove(ctx context.Context, userID, resourceID string) error
	IDs(ctx context.Context, userID string) ([]string, error)
	Merge(ctx context.Context, userID string, resourceIDs []string) (int, error)
}

// GuestListStore holds a guest's ids as one array, read and written whole.
type GuestListStore interface {
	Load(ctx context.Context, guestID string) ([]string, error)
	Save(ctx context.Context, guestID string, ids []string) error
	Clear(ctx context.Context, guestID string) error
}

type userWatchlist struct {
	repo UserWatchlistRepository
}

func (w userWatchlist) Add(ctx context.Context, owner models.Owner, resourceID string) error {
	return w.repo.Add(ctx, owner.UserID, resourceID)
}

func (w userWatchlist) Remove(ctx context.Context, owner models.Owner, resourceID string) error {
	return w.repo.Remove(ctx, owner.UserID, resourceID)
}

func (w userWatchlist) IDs(ctx context.Context, owner models.Owner) ([]string, error) {
	return w.repo.IDs(ctx, owner.UserID)
}

// guestWatchlist appends new ids to the end of the array and lists it reversed.
// Guest saves carry no timestamp, so the listing is newest first only as long as
// nothing was removed and re-added out of order.
type guestWatchlist struct {
	store GuestListStore
}

func (w guestWatchlist) Add(ctx context.Context, owner models.Owner, resourceID string) error {
	ids, err := w.store.Load(ctx, owner.GuestID)
	if err != nil {
		return err
	}
	if slices.Contains(ids, resourceID) {
		return nil
	}
	return w.store.Save(ctx, owner.GuestID, append(ids, resourceID))
}

func (w guestWatchlist) Remove(ctx context.Context, owner models.Owner, resourceID string) error {
	ids, err := w.store.Load(ctx, owner.GuestID)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(slices.Clone(ids), func(id string) bool { return id == resourceID })
	if len(kept) == len(ids) {
		return nil
	}
	return w.store.Save(ctx, owner.GuestID, kept)
}

func (w guestWatchlist) IDs(ctx context.Context, owner models.Owner) ([]string, error) {
	ids, err := w.store.Load(ctx, owner.GuestID)
	if err != nil {
		return nil, err
	}
	reversed := slices.Clone(ids)
	slices.Reverse(reversed)
	return reversed, nil
}

// WatchlistService defines the saved-resources operations for users and guests alike
type WatchlistService interface {
	// List resolves the saved ids to resources in saved order. Missing, unreleased
	// and hidden resources are left out.
	List(ctx context.Context, owner models.Owner, role models.ViewerRole) ([]models.Resource, error)
	IDs(ctx context.Context, owner models.Owner) ([]string, error)
	Add(ctx context.Context, owner models.Owner, role models.ViewerRole, resourceID string) error
	Remove(ctx context.Context, owner models.Owner, resourceID string) error
	// Merge copies guest-held ids into a user's watchlist and returns how many were
	// new. Ids already saved keep their saved time; unknown ids are skipped. When
	// guestToken is set the server-held guest list is merged too and then cleared.
	Merge(ctx context.Context, userID string, guestIDs []string, guestToken string) (int, error)
	// Saved reports which of ids are on the owner's watchlist.
	Saved(ctx context.Context, owner models.Owner, ids []string) (map[string]bool, error)
}

type watchlistServiceImpl struct {
	users     UserWatchlistRepository
	guests    GuestListStore
	resources ResourceStore
}

// NewWatchlistService creates a new watchlist service instance
func NewWatchlistService(users UserWatchlistRepository, guests GuestListStore, resources ResourceStore) WatchlistService {
	return &watchlistServiceImpl{users: users, guests: guests, resources: resources}
}

func (s *watchlistServiceImpl) storeFor(owner models.Owner) (WatchlistStore, error) {
	if !owner.Valid() {
		return nil, ErrNoWatchlistOwner
	}
	if owner.IsGuest() {
		return guestWatchlist{store: s.guests}, nil
	}
	return userWatchlist{repo: s.users}, nil
}

func (s *watchlistServiceImpl) IDs(ctx context.Context, owner models.Owner) ([]string, error) {
	store, err := s.storeFor(owner)
	if err != nil {
		return nil, err
	}
	ids, err := store.IDs(ctx, owner)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to load watchlist", err)
	}
	return ids, nil
}

func (s *watchlistServiceImpl) List(ctx context.Context, owner models.Owner, role models.ViewerRole) ([]models.Resource, error) {
	ids, err := s.IDs(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Resource{}, nil
	}

	found, err := s.resources.ListByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to load watchlist resources", err)
	}
	byID := make(map[string]models.Resource, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}

	out := make([]models.Resource, 0, len(ids))
	missing := false
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			missing = true
			continue
		}
		if r.IsComingSoon || !r.VisibleTo(role) {
			continue
		}
		out = append(out, r)
	}

	if missing && owner.IsGuest() {
		s.pruneGuest(ctx, owner.GuestID, byID)
	}
	return out, nil
}

// pruneGuest drops ids of deleted resources from a guest array.
func (s *watchlistServiceImpl) pruneGuest(ctx context.Context, guestID string, existing map[string]models.Resource) {
	stored, err := s.guests.Load(ctx, guestID)
	if err != nil {
		logger.Warn().Err(err).Str("guestID", guestID).Msg("Failed to reload guest watchlist for pruning")
		return
	}
	kept := slices.DeleteFunc(stored, func(id string) bool {
		_, ok := existing[id]
		return !ok
	})
	if err := s.guests.Save(ctx, guestID, kept); err != nil {
		logger.Warn().Err(err).Str("guestID", guestID).Msg("Failed to prune guest watchlist")
	}
}

func (s *watchlistServiceImpl) Add(ctx context.Context, owner models.Owner, role models.ViewerRole, resourceID string) error {
	store, err := s.storeFor(owner)
	if err != nil {
		return err
	}

	res, err := s.resources.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return err
		}
		return apperrors.NewStoreError("failed to load resource", err)
	}
	if !res.VisibleTo(role) {
		return apperrors.ErrStudyResourceNotFound
	}

	if err := store.Add(ctx, owner, resourceID); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return err
		}
		return apperrors.NewStoreError("failed to save resource", err)
	}
	return nil
}

func (s *watchlistServiceImpl) Remove(ctx context.Context, owner models.Owner, resourceID string) error {
	store, err := s.storeFor(owner)
	if err != nil {
		return err
	}
	if err := store.Remove(ctx, owner, resourceID); err != nil {
		return apperrors.NewStoreError("failed to remove resource", err)
	}
	return nil
}

func (s *watchlistServiceImpl) Merge(ctx context.Context, userID string, guestIDs []string, guestToken string) (int, error) {
	ids := make([]string, 0, len(guestIDs))
	ids = append(ids, guestIDs...)
	if guestToken != "" {
		held, err := s.guests.Load(ctx, guestToken)
		if err != nil {
			return 0, apperrors.NewStoreError("failed to load guest watchlist", err)
		}
		ids = append(ids, held...)
	}
	ids = dedupe(ids)

	added, err := s.users.Merge(ctx, userID, ids)
	if err != nil {
		return 0, apperrors.NewStoreError("failed to merge watchlist", err)
	}

	if guestToken != "" {
		if err := s.guests.Clear(ctx, guestToken); err != nil {
			logger.Warn().Err(err).Str("userID", userID).Msg("Failed to clear merged guest watchlist")
		}
	}
	if added > 0 {
		logger.Info().Str("userID", userID).Int("added", added).Msg("Guest watchlist merged")
	}
	return added, nil
}

func (s *watchlistServiceImpl) Saved(ctx context.Context, owner models.Owner, ids []string) (map[string]bool, error) {
	saved := make(map[string]bool, len(ids))
	if !owner.Valid() || len(ids) == 0 {
		return saved, nil
	}
	stored, err := s.IDs(ctx, owner)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(stored))
	for _, id := range stored {
		set[id] = struct{}{}
	}
	for _, id := range ids {
		_, saved[id] = set[id]
	}
	return saved, nil
}

// dedupe keeps the first occurrence of every non-empty id.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
