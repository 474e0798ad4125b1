package application

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	"github.com/oksasatya/hotel-management/internal/domain/provider"
	repo "github.com/oksasatya/hotel-management/internal/domain/repository"
)

type RoomService struct {
	Rooms    repo.RoomRepository
	Bookings repo.BookingRepository
	Index    provider.SearchIndex
	Storage  provider.ObjectStore
	Activity *ActivityService
	Logger   *logrus.Logger

	MaxCalendarDays int
}

func NewRoomService(rooms repo.RoomRepository, bookings repo.BookingRepository, logger *logrus.Logger) *RoomService {
	return &RoomService{Rooms: rooms, Bookings: bookings, Logger: logger, MaxCalendarDays: 92}
}

// RoomInput carries the editable fields of a room. Nil fields are left
// unchanged on update.
type RoomInput struct {
	Number      *string
	Type        *entity.RoomType
	Price       *int64
	Capacity    *int
	Amenities   []string
	Description *string
	Available   *bool
}

func (in RoomInput) apply(r *entity.Room) error {
	if in.Number != nil {
		r.Number = strings.TrimSpace(*in.Number)
	}
	if in.Type != nil {
		r.Type = *in.Type
	}
	if in.Price != nil {
		r.Price = *in.Price
	}
	if in.Capacity != nil {
		r.Capacity = *in.Capacity
	}
	if in.Amenities != nil {
		r.Amenities = in.Amenities
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.Available != nil {
		r.Available = *in.Available
	}
	if r.Number == "" || !r.Type.Valid() || r.Price < 0 || r.Capacity < 1 {
		return ErrInvalidRoom
	}
	return nil
}

func (s *RoomService) index(ctx context.Context, r *entity.Room) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexRoom(ctx, r); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("room_id", r.ID).Warn("index room failed")
	}
}

func (s *RoomService) Get(ctx context.Context, id string) (*entity.Room, error) {
	r, err := s.Rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *RoomService) List(ctx context.Context, f repo.RoomFilter) ([]*entity.Room, error) {
	return s.Rooms.List(ctx, f)
}

// Search runs a full-text query on the rooms index, falling back to the
// database filter when the index is disabled.
func (s *RoomService) Search(ctx context.Context, q string) ([]*entity.Room, error) {
	q = strings.TrimSpace(q)
	if !searchEnabled(s.Index) {
		return s.Rooms.List(ctx, repo.RoomFilter{Query: q})
	}
	ids, err := s.Index.SearchRooms(ctx, q, 50)
	if errors.Is(err, provider.ErrSearchDisabled) {
		return s.Rooms.List(ctx, repo.RoomFilter{Query: q})
	}
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Room, 0, len(ids))
	for _, id := range ids {
		r, err := s.Rooms.GetByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			// stale index entry
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *RoomService) Create(ctx context.Context, actor Actor, in RoomInput) (*entity.Room, error) {
	r := &entity.Room{Available: true, HousekeepingStatus: entity.HKClean}
	if err := in.apply(r); err != nil {
		return nil, err
	}
	if r.Amenities == nil {
		r.Amenities = []string{}
	}
	if err := s.Rooms.Create(ctx, r); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrRoomNumberTaken
		}
		return nil, err
	}
	s.index(ctx, r)
	s.Activity.Record(ctx, actor, "room.create", "room", r.ID, map[string]any{"number": r.Number})
	return r, nil
}

func (s *RoomService) Update(ctx context.Context, actor Actor, id string, in RoomInput) (*entity.Room, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(r); err != nil {
		return nil, err
	}
	if err := s.Rooms.Update(ctx, r); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			return nil, ErrRoomNumberTaken
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	s.index(ctx, r)
	s.Activity.Record(ctx, actor, "room.update", "room", r.ID, nil)
	return r, nil
}

// Delete refuses rooms that still have bookings; historical bookings keep
// their room reference.
func (s *RoomService) Delete(ctx context.Context, actor Actor, id string) error {
	n, err := s.Bookings.CountActiveForRoom(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrRoomInUse
	}
	if err := s.Rooms.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return ErrRoomNotFound
		case errors.Is(err, repo.ErrConflict):
			return ErrRoomInUse
		}
		return err
	}
	if s.Index != nil {
		if err := s.Index.DeleteRoom(ctx, id); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("room_id", id).Warn("unindex room failed")
		}
	}
	s.Activity.Record(ctx, actor, "room.delete", "room", id, nil)
	return nil
}

func (s *RoomService) UploadImage(ctx context.Context, actor Actor, id, filename, contentType string, data []byte) (*entity.Room, error) {
	if s.Storage == nil {
		return nil, ErrStorageDisabled
	}
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	object := "rooms/" + r.ID + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	url, err := s.Storage.Put(ctx, object, contentType, data)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("object", object).Error("room image upload failed")
		}
		return nil, err
	}
	if err := s.Rooms.SetImage(ctx, r.ID, url); err != nil {
		return nil, err
	}
	r.ImageURL = url
	s.index(ctx, r)
	s.Activity.Record(ctx, actor, "room.upload_image", "room", r.ID, map[string]any{"object": object})
	return r, nil
}

// Availability returns one calendar entry per day of [from, to], both ends
// included. A day is booked when an active booking occupies its night. The
// booking id is shown only to admins and to the guest who holds it.
func (s *RoomService) Availability(ctx context.Context, actor Actor, id string, from, to time.Time) ([]entity.CalendarDay, error) {
	from, to = entity.DateOnly(from), entity.DateOnly(to)
	if to.Before(from) {
		return nil, ErrInvalidDates
	}
	days := entity.NightsBetween(from, to) + 1
	if s.MaxCalendarDays > 0 && days > s.MaxCalendarDays {
		return nil, ErrRangeTooLong
	}
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]entity.CalendarDay, 0, days)
	if !r.Bookable() {
		for i := 0; i < days; i++ {
			out = append(out, entity.CalendarDay{Date: from.AddDate(0, 0, i).Format(entity.DateLayout), State: entity.DayUnavailable})
		}
		return out, nil
	}
	end := to.AddDate(0, 0, 1)
	bookings, err := s.Bookings.ListActiveInRange(ctx, r.ID, from, end)
	if err != nil {
		return nil, err
	}
	for i := 0; i < days; i++ {
		d := from.AddDate(0, 0, i)
		day := entity.CalendarDay{Date: d.Format(entity.DateLayout), State: entity.DayAvailable}
		for _, b := range bookings {
			if b.Overlaps(d, d.AddDate(0, 0, 1)) {
				day.State = entity.DayBooked
				if actor.Can(b.UserID) {
					day.BookingID = b.ID
				}
				break
			}
		}
		out = append(out, day)
	}
	return out, nil
}

func (s *RoomService) Housekeeping(ctx context.Context) ([]*entity.Room, error) {
	return s.Rooms.List(ctx, repo.RoomFilter{})
}

func (s *RoomService) SetHousekeeping(ctx context.Context, actor Actor, id string, next entity.HousekeepingStatus) (*entity.Room, error) {
	if !next.Valid() {
		return nil, ErrInvalidHousekeeping
	}
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.HousekeepingStatus.CanTransition(next) {
		return nil, ErrInvalidHousekeeping
	}
	prev := r.HousekeepingStatus
	if err := s.Rooms.UpdateHousekeeping(ctx, r.ID, next); err != nil {
		return nil, err
	}
	r.HousekeepingStatus = next
	s.index(ctx, r)
	s.Activity.Record(ctx, actor, "room.housekeeping", "room", r.ID, map[string]any{"from": prev, "to": next})
	return r, nil
}

// markDirty is the check-out side effect. Only clean and inspected rooms
// move; rooms being cleaned or out of service keep their state.
func (s *RoomService) markDirty(ctx context.Context, roomID string) error {
	r, err := s.Get(ctx, roomID)
	if err != nil {
		return err
	}
	if r.HousekeepingStatus == entity.HKOutOfService || !r.HousekeepingStatus.CanTransition(entity.HKDirty) {
		if s.Logger != nil {
			s.Logger.WithFields(logrus.Fields{"room_id": roomID, "status": r.HousekeepingStatus}).Debug("check-out left housekeeping unchanged")
		}
		return nil
	}
	if err := s.Rooms.UpdateHousekeeping(ctx, roomID, entity.HKDirty); err != nil {
		return err
	}
	r.HousekeepingStatus = entity.HKDirty
	s.index(ctx, r)
	return nil
}
