package entity

import (
	"errors"
	"time"
)

type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomSuite  RoomType = "suite"
	RoomDeluxe RoomType = "deluxe"
	RoomFamily RoomType = "family"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomSingle, RoomDouble, RoomSuite, RoomDeluxe, RoomFamily:
		return true
	}
	return false
}

// HousekeepingStatus tracks the cleaning state of a room.
type HousekeepingStatus string

const (
	HKClean        HousekeepingStatus = "clean"
	HKDirty        HousekeepingStatus = "dirty"
	HKInProgress   HousekeepingStatus = "in_progress"
	HKInspected    HousekeepingStatus = "inspected"
	HKOutOfService HousekeepingStatus = "out_of_service"
)

var ErrInvalidHousekeepingTransition = errors.New("invalid housekeeping transition")

var housekeepingTransitions = map[HousekeepingStatus][]HousekeepingStatus{
	HKClean:        {HKDirty, HKInspected},
	HKDirty:        {HKInProgress},
	HKInProgress:   {HKClean},
	HKInspected:    {HKDirty},
	HKOutOfService: {HKDirty},
}

func (s HousekeepingStatus) Valid() bool {
	if s == HKOutOfService {
		return true
	}
	_, ok := housekeepingTransitions[s]
	return ok
}

// CanTransition reports whether a room may move from s to next. Any state
// may be taken out of service.
func (s HousekeepingStatus) CanTransition(next HousekeepingStatus) bool {
	if next == HKOutOfService {
		return s != HKOutOfService
	}
	for _, allowed := range housekeepingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Room prices are kept in minor currency units.
type Room struct {
	ID                 string
	Number             string
	Type               RoomType
	Price              int64
	Capacity           int
	Amenities          []string
	Description        string
	ImageURL           string
	Available          bool
	HousekeepingStatus HousekeepingStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Bookable reports whether new stays may be taken for the room.
func (r *Room) Bookable() bool {
	return r.Available && r.HousekeepingStatus != HKOutOfService
}

// DayState is the per-day state shown by the availability calendar.
type DayState string

const (
	DayAvailable   DayState = "available"
	DayBooked      DayState = "booked"
	DayUnavailable DayState = "unavailable"
)

type CalendarDay struct {
	Date      string   `json:"date"`
	State     DayState `json:"state"`
	BookingID string   `json:"booking_id,omitempty"`
}
