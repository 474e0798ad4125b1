package handlers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	repo "github.com/oksasatya/hotel-management/internal/domain/repository"
)

type mockUsers struct{ mock.Mock }

func (m *mockUsers) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUsers) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUsers) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUsers) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUsers) UpdatePassword(ctx context.Context, id, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *mockUsers) SetVerified(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUsers) UpdateRole(ctx context.Context, id string, role entity.Role) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *mockUsers) UpdatePermissions(ctx context.Context, id string, perms []string) error {
	return m.Called(ctx, id, perms).Error(0)
}

func (m *mockUsers) List(ctx context.Context, f repo.UserFilter) ([]*entity.User, int, error) {
	args := m.Called(ctx, f)
	us, _ := args.Get(0).([]*entity.User)
	return us, args.Int(1), args.Error(2)
}

func (m *mockUsers) ListByRoles(ctx context.Context, roles ...entity.Role) ([]*entity.User, error) {
	args := m.Called(ctx, roles)
	us, _ := args.Get(0).([]*entity.User)
	return us, args.Error(1)
}

type mockSessions struct{ mock.Mock }

func (m *mockSessions) Save(ctx context.Context, s *repo.Session, ttl time.Duration) error {
	return m.Called(ctx, s, ttl).Error(0)
}

func (m *mockSessions) Get(ctx context.Context, userID string) (*repo.Session, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*repo.Session)
	return s, args.Error(1)
}

func (m *mockSessions) Patch(ctx context.Context, userID string, fields map[string]any) error {
	return m.Called(ctx, userID, fields).Error(0)
}

func (m *mockSessions) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockRooms struct{ mock.Mock }

func (m *mockRooms) Create(ctx context.Context, r *entity.Room) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRooms) GetByID(ctx context.Context, id string) (*entity.Room, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*entity.Room)
	return r, args.Error(1)
}

func (m *mockRooms) List(ctx context.Context, f repo.RoomFilter) ([]*entity.Room, error) {
	args := m.Called(ctx, f)
	rs, _ := args.Get(0).([]*entity.Room)
	return rs, args.Error(1)
}

func (m *mockRooms) Update(ctx context.Context, r *entity.Room) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRooms) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRooms) UpdateHousekeeping(ctx context.Context, id string, status entity.HousekeepingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockRooms) SetImage(ctx context.Context, id, url string) error {
	return m.Called(ctx, id, url).Error(0)
}

type mockBookings struct{ mock.Mock }

func (m *mockBookings) CreateIfAvailable(ctx context.Context, b *entity.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBookings) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookings) List(ctx context.Context, f repo.BookingFilter) ([]*entity.Booking, error) {
	args := m.Called(ctx, f)
	bs, _ := args.Get(0).([]*entity.Booking)
	return bs, args.Error(1)
}

func (m *mockBookings) ListActiveInRange(ctx context.Context, roomID string, from, to time.Time) ([]*entity.Booking, error) {
	args := m.Called(ctx, roomID, from, to)
	bs, _ := args.Get(0).([]*entity.Booking)
	return bs, args.Error(1)
}

func (m *mockBookings) CountActiveForRoom(ctx context.Context, roomID string) (int, error) {
	args := m.Called(ctx, roomID)
	return args.Int(0), args.Error(1)
}

func (m *mockBookings) UpdateState(ctx context.Context, b *entity.Booking, expect repo.BookingState) error {
	return m.Called(ctx, b, expect).Error(0)
}

func (m *mockBookings) MarkPaid(ctx context.Context, b *entity.Booking, expect repo.BookingState, p *entity.Payment) error {
	return m.Called(ctx, b, expect, p).Error(0)
}

func (m *mockBookings) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockNotifications struct{ mock.Mock }

func (m *mockNotifications) Create(ctx context.Context, n *entity.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *mockNotifications) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*entity.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit)
	ns, _ := args.Get(0).([]*entity.Notification)
	return ns, args.Error(1)
}

func (m *mockNotifications) MarkRead(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockNotifications) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotifications) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

// replayBus hands each subscriber a closed channel holding the queued
// notifications, so a stream ends deterministically.
type replayBus struct {
	queued    []*entity.Notification
	published []*entity.Notification
}

func (b *replayBus) Publish(_ context.Context, n *entity.Notification) error {
	b.published = append(b.published, n)
	return nil
}

func (b *replayBus) Subscribe(_ context.Context, _ string) (<-chan *entity.Notification, error) {
	ch := make(chan *entity.Notification, len(b.queued))
	for _, n := range b.queued {
		ch <- n
	}
	close(ch)
	return ch, nil
}

func (b *replayBus) Close() error { return nil }
