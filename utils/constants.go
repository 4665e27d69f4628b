package utils

const (
	// AuthCachePrefix prefixes token-hash cache keys in the auth Redis DB.
	AuthCachePrefix = "authToken:"

	// DraftKeyPrefix prefixes booking draft keys in the generic cache DB.
	DraftKeyPrefix = "bookingDraft:"

	// FavoritesKeyPrefix prefixes per-user favorites sets.
	FavoritesKeyPrefix = "favorites:"
)
