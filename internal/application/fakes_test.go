package application

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	repo "github.com/oksasatya/hotel-management/internal/domain/repository"
	"github.com/oksasatya/hotel-management/pkg/helpers"
)

func init() {
	helpers.BcryptCost = 4
}

type seq struct {
	mu sync.Mutex
	n  int
}

func (s *seq) next(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return prefix + "-" + strconv.Itoa(s.n)
}

var ids seq

// users

type fakeUsers struct {
	mu   sync.Mutex
	byID map[string]*entity.User
}

func newFakeUsers(users ...*entity.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]*entity.User{}}
	for _, u := range users {
		cp := *u
		f.byID[u.ID] = &cp
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.byID {
		if x.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	u.ID = ids.next("user")
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUsers) mutate(id string, fn func(*entity.User)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	fn(u)
	return nil
}

func (f *fakeUsers) Update(_ context.Context, u *entity.User) error {
	return f.mutate(u.ID, func(x *entity.User) { x.Name, x.AvatarURL = u.Name, u.AvatarURL })
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id, hash string) error {
	return f.mutate(id, func(x *entity.User) { x.Password = hash })
}

func (f *fakeUsers) SetVerified(_ context.Context, id string) error {
	return f.mutate(id, func(x *entity.User) { x.IsVerified = true })
}

func (f *fakeUsers) UpdateRole(_ context.Context, id string, role entity.Role) error {
	return f.mutate(id, func(x *entity.User) { x.Role = role })
}

func (f *fakeUsers) UpdatePermissions(_ context.Context, id string, perms []string) error {
	return f.mutate(id, func(x *entity.User) { x.Permissions = perms })
}

func (f *fakeUsers) List(_ context.Context, flt repo.UserFilter) ([]*entity.User, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.User
	for _, u := range f.byID {
		if flt.Role != "" && u.Role != flt.Role {
			continue
		}
		if flt.Query != "" && !strings.Contains(u.Email+" "+u.Name, flt.Query) {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (f *fakeUsers) ListByRoles(_ context.Context, roles ...entity.Role) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.User
	for _, u := range f.byID {
		for _, r := range roles {
			if u.Role == r {
				cp := *u
				out = append(out, &cp)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// sessions and tokens

type fakeSessions struct {
	mu sync.Mutex
	m  map[string]*repo.Session
}

func newFakeSessions() *fakeSessions { return &fakeSessions{m: map[string]*repo.Session{}} }

func (f *fakeSessions) Save(_ context.Context, s *repo.Session, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.m[s.UserID] = &cp
	return nil
}

func (f *fakeSessions) Get(_ context.Context, userID string) (*repo.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.m[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessions) Patch(_ context.Context, userID string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.m[userID]
	if !ok {
		return nil
	}
	for k, v := range fields {
		switch k {
		case "role":
			s.Role = v.(string)
		case "permissions":
			s.Permissions = v.([]string)
		case "is_verified":
			s.Verified = v.(bool)
		case "name":
			s.Name = v.(string)
		case "avatar_url":
			s.AvatarURL = v.(string)
		}
	}
	return nil
}

func (f *fakeSessions) Delete(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.m, userID)
	return nil
}

type fakeTokens struct {
	mu sync.Mutex
	m  map[string]string
}

func newFakeTokens() *fakeTokens { return &fakeTokens{m: map[string]string{}} }

func (f *fakeTokens) Put(_ context.Context, kind, token, userID string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[kind+":"+token] = userID
	return nil
}

func (f *fakeTokens) Take(_ context.Context, kind, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.m[kind+":"+token]
	if !ok {
		return "", repo.ErrNotFound
	}
	delete(f.m, kind+":"+token)
	return id, nil
}

// only returns the single stored token of kind, for tests
func (f *fakeTokens) only(kind string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k := range f.m {
		if strings.HasPrefix(k, kind+":") {
			return strings.TrimPrefix(k, kind+":")
		}
	}
	return ""
}

// rooms and bookings

type fakeRooms struct {
	mu sync.Mutex
	m  map[string]*entity.Room
}

func newFakeRooms(rooms ...*entity.Room) *fakeRooms {
	f := &fakeRooms{m: map[string]*entity.Room{}}
	for _, r := range rooms {
		cp := *r
		f.m[r.ID] = &cp
	}
	return f
}

func (f *fakeRooms) Create(_ context.Context, r *entity.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.m {
		if x.Number == r.Number {
			return repo.ErrDuplicate
		}
	}
	r.ID = ids.next("room")
	cp := *r
	f.m[r.ID] = &cp
	return nil
}

func (f *fakeRooms) GetByID(_ context.Context, id string) (*entity.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.m[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRooms) List(_ context.Context, flt repo.RoomFilter) ([]*entity.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Room
	for _, r := range f.m {
		if flt.Query != "" && !strings.Contains(r.Number+" "+r.Description, flt.Query) {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (f *fakeRooms) Update(_ context.Context, r *entity.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.m[r.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *r
	f.m[r.ID] = &cp
	return nil
}

func (f *fakeRooms) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.m[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.m, id)
	return nil
}

func (f *fakeRooms) UpdateHousekeeping(_ context.Context, id string, status entity.HousekeepingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.m[id]
	if !ok {
		return repo.ErrNotFound
	}
	r.HousekeepingStatus = status
	return nil
}

func (f *fakeRooms) SetImage(_ context.Context, id, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.m[id]
	if !ok {
		return repo.ErrNotFound
	}
	r.ImageURL = url
	return nil
}

type fakeBookings struct {
	mu       sync.Mutex
	m        map[string]*entity.Booking
	payments *fakePayments

	// beforeWrite runs once, unlocked, ahead of the next state write.
	beforeWrite func()
	// failWrite fails the next state write without touching anything.
	failWrite error
}

func newFakeBookings(bs ...*entity.Booking) *fakeBookings {
	f := &fakeBookings{m: map[string]*entity.Booking{}, payments: &fakePayments{}}
	for _, b := range bs {
		cp := *b
		f.m[b.ID] = &cp
	}
	return f
}

func (f *fakeBookings) CreateIfAvailable(_ context.Context, b *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.m {
		if x.RoomID == b.RoomID && x.Status.Active() && x.Overlaps(b.CheckIn, b.CheckOut) {
			return repo.ErrConflict
		}
	}
	b.ID = ids.next("booking")
	cp := *b
	f.m[b.ID] = &cp
	return nil
}

func (f *fakeBookings) GetByID(_ context.Context, id string) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.m[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookings) List(_ context.Context, flt repo.BookingFilter) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.m {
		if flt.UserID != "" && b.UserID != flt.UserID {
			continue
		}
		if flt.Status != "" && b.Status != flt.Status {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBookings) ListActiveInRange(_ context.Context, roomID string, from, to time.Time) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.m {
		if b.RoomID == roomID && b.Status.Active() && b.Overlaps(from, to) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBookings) CountActiveForRoom(_ context.Context, roomID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.m {
		if b.RoomID == roomID && b.Status.Active() {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookings) nextWrite() error {
	f.mu.Lock()
	fn, fail := f.beforeWrite, f.failWrite
	f.beforeWrite, f.failWrite = nil, nil
	f.mu.Unlock()
	if fn != nil {
		fn()
	}
	return fail
}

func (f *fakeBookings) current(b *entity.Booking, expect repo.BookingState) (*entity.Booking, error) {
	x, ok := f.m[b.ID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if repo.StateOf(x) != expect {
		return nil, repo.ErrConflict
	}
	return x, nil
}

func (f *fakeBookings) UpdateState(_ context.Context, b *entity.Booking, expect repo.BookingState) error {
	if err := f.nextWrite(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	x, err := f.current(b, expect)
	if err != nil {
		return err
	}
	x.Status, x.PreviousStatus, x.PaymentStatus, x.CancelReason = b.Status, b.PreviousStatus, b.PaymentStatus, b.CancelReason
	return nil
}

func (f *fakeBookings) MarkPaid(ctx context.Context, b *entity.Booking, expect repo.BookingState, p *entity.Payment) error {
	if err := f.nextWrite(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.payments.GetBySession(ctx, p.SessionID); err == nil {
		return repo.ErrDuplicate
	}
	x, err := f.current(b, expect)
	if err != nil {
		return err
	}
	if err := f.payments.Create(ctx, p); err != nil {
		return err
	}
	x.Status, x.PreviousStatus, x.PaymentStatus, x.CancelReason = b.Status, b.PreviousStatus, b.PaymentStatus, b.CancelReason
	return nil
}

func (f *fakeBookings) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.m[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.m, id)
	return nil
}

// payments

type fakePayments struct {
	mu   sync.Mutex
	list []*entity.Payment
}

func (f *fakePayments) Create(_ context.Context, p *entity.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.list {
		if x.SessionID == p.SessionID && x.Status == entity.PaymentPaid && p.Status == entity.PaymentPaid {
			return repo.ErrDuplicate
		}
	}
	p.ID = ids.next("payment")
	cp := *p
	f.list = append(f.list, &cp)
	return nil
}

func (f *fakePayments) GetBySession(_ context.Context, sessionID string) (*entity.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.list {
		if p.SessionID == sessionID && p.Status == entity.PaymentPaid {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakePayments) List(_ context.Context, userID string) ([]*entity.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Payment
	for _, p := range f.list {
		if userID == "" || p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeCheckouts struct {
	mu sync.Mutex
	m  map[string]entity.CheckoutSession
}

func newFakeCheckouts() *fakeCheckouts { return &fakeCheckouts{m: map[string]entity.CheckoutSession{}} }

func (f *fakeCheckouts) Save(_ context.Context, s *entity.CheckoutSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[s.ID] = *s
	return nil
}

func (f *fakeCheckouts) Get(_ context.Context, id string) (*entity.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.m[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &s, nil
}

// notifications

type fakeNotifications struct {
	mu   sync.Mutex
	list []*entity.Notification
}

func (f *fakeNotifications) Create(_ context.Context, n *entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n.ID = ids.next("notification")
	n.CreatedAt = time.Now()
	cp := *n
	f.list = append(f.list, &cp)
	return nil
}

func (f *fakeNotifications) ListByUser(_ context.Context, userID string, unreadOnly bool, limit int) ([]*entity.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Notification
	for i := len(f.list) - 1; i >= 0 && len(out) < limit; i-- {
		n := f.list[i]
		if n.UserID != userID || (unreadOnly && n.Read) {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeNotifications) find(userID, id string) *entity.Notification {
	for _, n := range f.list {
		if n.ID == id && n.UserID == userID {
			return n
		}
	}
	return nil
}

func (f *fakeNotifications) MarkRead(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.find(userID, id)
	if n == nil {
		return repo.ErrNotFound
	}
	n.Read = true
	return nil
}

func (f *fakeNotifications) MarkAllRead(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, x := range f.list {
		if x.UserID == userID && !x.Read {
			x.Read = true
			n++
		}
	}
	return n, nil
}

func (f *fakeNotifications) Delete(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, n := range f.list {
		if n.ID == id && n.UserID == userID {
			f.list = append(f.list[:i], f.list[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

// forUser returns the messages stored for userID in creation order.
func (f *fakeNotifications) forUser(userID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, n := range f.list {
		if n.UserID == userID {
			out = append(out, n.Message)
		}
	}
	return out
}

type fakeBus struct {
	mu        sync.Mutex
	published []*entity.Notification
}

func (b *fakeBus) Publish(_ context.Context, n *entity.Notification) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, n)
	return nil
}

func (b *fakeBus) Subscribe(ctx context.Context, _ string) (<-chan *entity.Notification, error) {
	ch := make(chan *entity.Notification)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (b *fakeBus) Close() error { return nil }

// activity

type fakeActivity struct {
	mu   sync.Mutex
	list []entity.ActivityLog
}

func (f *fakeActivity) Insert(_ context.Context, a *entity.ActivityLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = int64(len(f.list) + 1)
	f.list = append(f.list, *a)
	return nil
}

func (f *fakeActivity) Query(_ context.Context, flt entity.ActivityFilter) ([]entity.ActivityLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.ActivityLog
	for _, a := range f.list {
		if flt.Action != "" && a.Action != flt.Action {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeActivity) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.list))
	for _, a := range f.list {
		out = append(out, a.Action)
	}
	return out
}

// object storage

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeStore() *fakeStore { return &fakeStore{objects: map[string][]byte{}} }

func (f *fakeStore) Put(_ context.Context, object, _ string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[object] = append([]byte(nil), data...)
	return "https://storage.test/" + object, nil
}

func (f *fakeStore) Get(_ context.Context, object string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objects[object]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return b, nil
}

func (f *fakeStore) List(_ context.Context, prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}

// mocks

type mockQueue struct {
	mock.Mock
}

func (m *mockQueue) PublishJSON(ctx context.Context, body any) error {
	return m.Called(ctx, body).Error(0)
}

type mockReports struct {
	mock.Mock
}

func (m *mockReports) BookingsByStatus(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *mockReports) NetRevenue(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReports) Occupancy(ctx context.Context, day time.Time) (int, int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *mockReports) AverageFeedbackRating(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockReports) AverageReviewRating(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockReports) HousekeepingCounts(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *mockReports) DailyRevenue(ctx context.Context, from, to time.Time) ([]repo.RevenuePoint, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repo.RevenuePoint), args.Error(1)
}

type fakeBackupRepo struct {
	tables   map[string]json.RawMessage
	restored map[string]json.RawMessage
}

func (f *fakeBackupRepo) Export(_ context.Context, tables []string) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(tables))
	for _, t := range tables {
		if raw, ok := f.tables[t]; ok {
			out[t] = raw
		} else {
			out[t] = json.RawMessage(`[]`)
		}
	}
	return out, nil
}

func (f *fakeBackupRepo) Restore(_ context.Context, _ []string, data map[string]json.RawMessage) error {
	f.restored = data
	return nil
}

func quietLogger() *logrus.Logger {
	return helpers.NewNopLogger()
}

// feedback and reviews

type fakeFeedback struct {
	mu   sync.Mutex
	list []*entity.Feedback
}

func (f *fakeFeedback) Create(_ context.Context, fb *entity.Feedback) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	fb.ID = ids.next("feedback")
	cp := *fb
	f.list = append(f.list, &cp)
	return nil
}

func (f *fakeFeedback) List(_ context.Context, limit, offset int) ([]*entity.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if offset >= len(f.list) {
		return []*entity.Feedback{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(f.list) {
		end = len(f.list)
	}
	return append([]*entity.Feedback(nil), f.list[offset:end]...), nil
}

func (f *fakeFeedback) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, x := range f.list {
		if x.ID == id {
			f.list = append(f.list[:i], f.list[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

type fakeReviews struct {
	mu sync.Mutex
	m  map[string]*entity.Review
}

func newFakeReviews() *fakeReviews { return &fakeReviews{m: map[string]*entity.Review{}} }

func (f *fakeReviews) Create(_ context.Context, r *entity.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.m {
		if x.RoomID == r.RoomID && x.UserID == r.UserID {
			return repo.ErrDuplicate
		}
	}
	r.ID = ids.next("review")
	cp := *r
	f.m[r.ID] = &cp
	return nil
}

func (f *fakeReviews) GetByID(_ context.Context, id string) (*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.m[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReviews) ListByRoom(_ context.Context, roomID string) ([]*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*entity.Review{}
	for _, r := range f.m {
		if r.RoomID == roomID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeReviews) Update(_ context.Context, r *entity.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	x, ok := f.m[r.ID]
	if !ok {
		return repo.ErrNotFound
	}
	x.Rating, x.Comment = r.Rating, r.Comment
	return nil
}

func (f *fakeReviews) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.m[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.m, id)
	return nil
}
