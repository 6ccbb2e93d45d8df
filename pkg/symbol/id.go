package symbol

import uuid "github.com/gofrs/uuid/v5"

// NewElementID mints a fresh, opaque element_id (§3.7, §6.6). IDs are never
// parsed or compared structurally elsewhere in the system — callers treat
// them as opaque non-empty strings — so a random v4 UUID is sufficient.
func NewElementID() string {
	id, err := uuid.NewV4()
	if err != nil {
		// uuid.NewV4 only errs if the system RNG is broken; fall back to
		// the nil UUID rather than propagating an error through a path
		// the rest of the system treats as infallible.
		return uuid.Nil.String()
	}
	return id.String()
}
