package ledger

import (
	"net/http"
	"time"

	"github.com/turfgrid/turf-booking-backend/internal/pkg/apperror"
)

var ErrNotFound = apperror.New(http.StatusNotFound, "ledger entry not found")

type PayeeType string

const (
	PayeeTypePlatform PayeeType = "platform"
	PayeeTypeOwner    PayeeType = "owner"
)

// PlatformPayeeID is the single ledger payee for the marketplace operator.
const PlatformPayeeID = "platform"

// Entry holds the running earnings total for one payee. The total is the
// sum of all deltas ever applied; reversals are negative deltas.
type Entry struct {
	PayeeID   string
	PayeeType PayeeType
	Total     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
