package slot

import (
	"net/http"
	"time"

	"github.com/turfgrid/turf-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound    = apperror.New(http.StatusNotFound, "slot not found")
	ErrUnavailable = apperror.New(http.StatusConflict, "slot not available")
)

// Slot represents a bookable time window at a facility.
// Slots are created by the facility-management side; this service only
// reads them and flips the availability flag.
type Slot struct {
	ID          string
	FacilityID  string
	OwnerID     string // payee of the owning facility
	StartTime   time.Time
	EndTime     time.Time
	Price       float64
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
