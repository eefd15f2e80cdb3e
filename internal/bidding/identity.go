package bidding

import (
	"crypto/md5"
	"strings"

	"github.com/google/uuid"
)

// BidderID derives a stable synthetic bidder id from an email address so a
// guest bidding twice keeps the same identity across items. Case-insensitive
// on the email; not a security boundary.
func BidderID(email string) uuid.UUID {
	sum := md5.Sum([]byte(strings.ToLower(email)))
	// FromBytes only fails on a length other than 16.
	id, _ := uuid.FromBytes(sum[:])
	return id
}
