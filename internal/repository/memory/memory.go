// Package memory holds mutex-guarded repository implementations with the same
// semantics as the Postgres ones. Used by tests and STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/repository"
)

// Store is the shared state behind every repository in a Set.
type Store struct {
	mu          sync.RWMutex
	plans       map[string]models.Plan
	memberships map[membershipKey]models.Membership
	users       map[string]models.User
	rooms       map[string]models.Room
	complaints  map[string]models.Complaint
	attendance  map[string]models.Attendance
	now         func() time.Time
}

type membershipKey struct {
	userID string
	period string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		plans:       make(map[string]models.Plan),
		memberships: make(map[membershipKey]models.Membership),
		users:       make(map[string]models.User),
		rooms:       make(map[string]models.Room),
		complaints:  make(map[string]models.Complaint),
		attendance:  make(map[string]models.Attendance),
		now:         time.Now,
	}
}

// NewSet returns a repository set over a fresh store.
func NewSet() *repository.Set {
	return NewStore().Set()
}

// Set exposes the store through the repository interfaces.
func (s *Store) Set() *repository.Set {
	return &repository.Set{
		Plans:       &planRepository{s},
		Memberships: &membershipRepository{s},
		Users:       &userRepository{s},
		Rooms:       &roomRepository{s},
		Complaints:  &complaintRepository{s},
		Attendance:  &attendanceRepository{s},
	}
}

func newID() string {
	return uuid.NewString()
}

func duplicate(what string) error {
	return fmt.Errorf("%w: %s", repository.ErrDuplicate, what)
}

type planRepository struct{ s *Store }

func (r *planRepository) List(ctx context.Context) ([]models.Plan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Plan, 0, len(r.s.plans))
	for _, p := range r.s.plans {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Name < out[j].Name
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *planRepository) Get(ctx context.Context, id string) (*models.Plan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *planRepository) GetByName(ctx context.Context, name string) (*models.Plan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.plans {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *planRepository) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.plans)), nil
}

func (r *planRepository) nameTaken(name, exceptID string) bool {
	for id, p := range r.s.plans {
		if p.Name == name && id != exceptID {
			return true
		}
	}
	return false
}

func (r *planRepository) Create(ctx context.Context, plan *models.Plan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(plan.Name, "") {
		return duplicate("plans_name_key")
	}
	if plan.ID == "" {
		plan.ID = newID()
	}
	now := r.s.now()
	plan.CreatedAt, plan.UpdatedAt = now, now
	r.s.plans[plan.ID] = *plan
	return nil
}

func (r *planRepository) Update(ctx context.Context, plan *models.Plan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.plans[plan.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.nameTaken(plan.Name, plan.ID) {
		return duplicate("plans_name_key")
	}
	plan.CreatedAt = cur.CreatedAt
	plan.UpdatedAt = r.s.now()
	r.s.plans[plan.ID] = *plan
	return nil
}

func (r *planRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.plans, id)
	return nil
}

type membershipRepository struct{ s *Store }

func (r *membershipRepository) Find(ctx context.Context, userID, period string) (*models.Membership, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.memberships[membershipKey{userID, period}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rec, nil
}

func (r *membershipRepository) Upsert(ctx context.Context, rec *models.Membership) (*models.Membership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := membershipKey{rec.UserID, rec.Period}
	out := *rec
	if cur, ok := r.s.memberships[key]; ok {
		out.ID = cur.ID
	} else if out.ID == "" {
		out.ID = newID()
	}
	r.s.memberships[key] = out
	return &out, nil
}

func (r *membershipRepository) list(period string, optedInOnly bool) []models.Membership {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Membership
	for k, rec := range r.s.memberships {
		if k.period != period || (optedInOnly && !rec.OptedIn) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastUpdated.Before(out[j].LastUpdated) })
	return out
}

func (r *membershipRepository) ListOptedIn(ctx context.Context, period string) ([]models.Membership, error) {
	return r.list(period, true), nil
}

func (r *membershipRepository) ListByPeriod(ctx context.Context, period string) ([]models.Membership, error) {
	return r.list(period, false), nil
}

type userRepository struct{ s *Store }

func (r *userRepository) Get(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) emailTaken(email, exceptID string) bool {
	for id, u := range r.s.users {
		if u.Email == email && id != exceptID {
			return true
		}
	}
	return false
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(user.Email, "") {
		return duplicate("users_email_key")
	}
	if user.ID == "" {
		user.ID = newID()
	}
	if user.Role == "" {
		user.Role = models.RoleStudent
	}
	now := r.s.now()
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return duplicate("users_email_key")
	}
	user.CreatedAt = cur.CreatedAt
	user.UpdatedAt = r.s.now()
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *userRepository) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, u := range r.s.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type roomRepository struct{ s *Store }

func (r *roomRepository) Create(ctx context.Context, room *models.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.rooms {
		if existing.RoomNumber == room.RoomNumber {
			return duplicate("rooms_room_number_key")
		}
	}
	if room.ID == "" {
		room.ID = newID()
	}
	now := r.s.now()
	room.CreatedAt, room.UpdatedAt = now, now
	r.s.rooms[room.ID] = *room
	return nil
}

func (r *roomRepository) Get(ctx context.Context, id string) (*models.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	room, ok := r.s.rooms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &room, nil
}

func (r *roomRepository) List(ctx context.Context) ([]models.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Room, 0, len(r.s.rooms))
	for _, room := range r.s.rooms {
		out = append(out, room)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })
	return out, nil
}

func (r *roomRepository) Assign(ctx context.Context, roomID, userID string, check repository.AssignCheck) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	room, ok := r.s.rooms[roomID]
	if !ok {
		return repository.ErrNotFound
	}
	student, ok := r.s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	occupants := 0
	for _, u := range r.s.users {
		if u.RoomID != nil && *u.RoomID == roomID {
			occupants++
		}
	}
	if err := check(&room, occupants, &student); err != nil {
		return err
	}
	if student.RoomID != nil {
		return fmt.Errorf("%w: student %s already housed", repository.ErrDuplicate, userID)
	}
	id := roomID
	student.RoomID = &id
	student.UpdatedAt = r.s.now()
	r.s.users[userID] = student
	return nil
}

type complaintRepository struct{ s *Store }

func (r *complaintRepository) Create(ctx context.Context, c *models.Complaint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.ID == "" {
		c.ID = newID()
	}
	if c.Status == "" {
		c.Status = models.ComplaintPending
	}
	c.CreatedAt = r.s.now()
	r.s.complaints[c.ID] = *c
	return nil
}

func (r *complaintRepository) Get(ctx context.Context, id string) (*models.Complaint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.complaints[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *complaintRepository) UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) (*models.Complaint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.complaints[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Status = status
	r.s.complaints[id] = c
	return &c, nil
}

func (r *complaintRepository) filter(keep func(models.Complaint) bool) []models.Complaint {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Complaint
	for _, c := range r.s.complaints {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *complaintRepository) ListByUser(ctx context.Context, userID string) ([]models.Complaint, error) {
	return r.filter(func(c models.Complaint) bool { return c.UserID == userID }), nil
}

func (r *complaintRepository) List(ctx context.Context) ([]models.Complaint, error) {
	return r.filter(func(models.Complaint) bool { return true }), nil
}

type attendanceRepository struct{ s *Store }

func (r *attendanceRepository) Create(ctx context.Context, a *models.Attendance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.attendance {
		if existing.UserID == a.UserID && existing.Day.Equal(a.Day) {
			return duplicate("idx_attendance_user_day")
		}
	}
	if a.ID == "" {
		a.ID = newID()
	}
	r.s.attendance[a.ID] = *a
	return nil
}

func (r *attendanceRepository) filter(keep func(models.Attendance) bool) []models.Attendance {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Attendance
	for _, a := range r.s.attendance {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day.Equal(out[j].Day) {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Day.After(out[j].Day)
	})
	return out
}

func (r *attendanceRepository) ListByUser(ctx context.Context, userID string) ([]models.Attendance, error) {
	return r.filter(func(a models.Attendance) bool { return a.UserID == userID }), nil
}

func (r *attendanceRepository) List(ctx context.Context, from, to time.Time) ([]models.Attendance, error) {
	return r.filter(func(a models.Attendance) bool {
		if !from.IsZero() && a.Day.Before(from) {
			return false
		}
		if !to.IsZero() && a.Day.After(to) {
			return false
		}
		return true
	}), nil
}
