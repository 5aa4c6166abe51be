package localstore

// Fixed keys mirrored by the cart manager. Values are the full
// JSON-serialized collection, overwritten wholesale on every mutation.
const (
	KeyCart     = "anwar_cart"
	KeyWishlist = "anwar_wishlist"
)

// Store is the local persistent key-value store that lets the cart and
// wishlist survive a restart. Writes are best-effort: callers log a
// failed Save and carry on, the in-memory state stays authoritative for
// the running session.
type Store interface {
	// Save serializes v and overwrites the value under key.
	Save(key string, v interface{}) error
	// Load deserializes the value under key into dst. A missing key is
	// not an error; dst is left untouched.
	Load(key string, dst interface{}) error
}
