package models

import "time"

// Visit is a single recorded page view. Rows are append-only: nothing updates
// a visit after insert, and deletion happens only through the retention sweep.
type Visit struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// MaskedIP is always present and never equals the unmasked address for a
	// recognized IPv4/IPv6 form.
	MaskedIP string `json:"masked_ip"`

	// Pseudonym is a keyed hash of the raw address; same address and key
	// always yield the same value, so sessions can be correlated without
	// storing the address itself.
	Pseudonym string `json:"pseudonym"`

	// RawIP is only set when the originating client has a consent cookie.
	RawIP *string `json:"raw_ip,omitempty"`

	GeoCountry *string `json:"geo_country,omitempty"`
	GeoRegion  *string `json:"geo_region,omitempty"`
	GeoCity    *string `json:"geo_city,omitempty"`

	Path      string  `json:"path"`
	UserAgent *string `json:"user_agent,omitempty"`
}
