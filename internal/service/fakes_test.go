package service

import (
	"context"
	"sort"
	"time"

	"github.com/yusufkecer/momentum-backend/internal/domain"
)

type memUsers struct {
	rows   map[int64]domain.User
	nextID int64
	calls  int
}

func newMemUsers(users ...domain.User) *memUsers {
	m := &memUsers{rows: map[int64]domain.User{}}
	for _, u := range users {
		m.rows[u.ID] = u
		if u.ID > m.nextID {
			m.nextID = u.ID
		}
	}
	return m
}

func (m *memUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	m.calls++
	u, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.calls++
	for _, u := range m.rows {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Create(_ context.Context, u *domain.User) (int64, error) {
	m.calls++
	for _, existing := range m.rows {
		if existing.Email == u.Email {
			return 0, domain.ErrEmailTaken
		}
	}
	m.nextID++
	row := *u
	row.ID = m.nextID
	m.rows[row.ID] = row
	return row.ID, nil
}

func (m *memUsers) Save(_ context.Context, u *domain.User) error {
	m.calls++
	m.rows[u.ID] = *u
	return nil
}

type memTasks struct {
	rows   map[int64]domain.Task
	nextID int64
	calls  int
	err    error
	// afterFind runs once, after the next FindByID has taken its copy. Tests use it to
	// land a concurrent write between a service's read and its write.
	afterFind func()
}

func newMemTasks(tasks ...domain.Task) *memTasks {
	m := &memTasks{rows: map[int64]domain.Task{}}
	for _, t := range tasks {
		m.rows[t.ID] = t
		if t.ID > m.nextID {
			m.nextID = t.ID
		}
	}
	return m
}

func (m *memTasks) FindByID(_ context.Context, id int64) (*domain.Task, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.rows[id]
	if hook := m.afterFind; hook != nil {
		m.afterFind = nil
		hook()
	}
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (m *memTasks) Create(_ context.Context, t *domain.Task) (int64, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	m.nextID++
	row := *t
	row.ID = m.nextID
	m.rows[row.ID] = row
	return row.ID, nil
}

func (m *memTasks) Update(_ context.Context, t *domain.Task) (bool, error) {
	m.calls++
	if m.err != nil {
		return false, m.err
	}
	row, ok := m.rows[t.ID]
	if !ok || row.Completed {
		return false, nil
	}
	row.Title, row.Type, row.DurationMinutes, row.UpdatedAt = t.Title, t.Type, t.DurationMinutes, t.UpdatedAt
	m.rows[t.ID] = row
	return true, nil
}

func (m *memTasks) Complete(_ context.Context, id int64, at time.Time) (bool, error) {
	m.calls++
	if m.err != nil {
		return false, m.err
	}
	row, ok := m.rows[id]
	if !ok || row.Completed {
		return false, nil
	}
	row.Completed, row.CompletedAt, row.UpdatedAt = true, &at, at
	m.rows[id] = row
	return true, nil
}

func (m *memTasks) Delete(_ context.Context, id int64) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	delete(m.rows, id)
	return nil
}

func (m *memTasks) FindActiveByUser(_ context.Context, userID int64) ([]domain.Task, error) {
	return m.byUser(userID, false)
}

func (m *memTasks) FindCompletedByUser(_ context.Context, userID int64) ([]domain.Task, error) {
	return m.byUser(userID, true)
}

func (m *memTasks) byUser(userID int64, completed bool) ([]domain.Task, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Task
	for _, t := range m.rows {
		if t.UserID == userID && t.Completed == completed {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type logKey struct {
	userID int64
	day    string
}

type memLogs struct {
	rows   map[logKey]domain.DailyFitnessLog
	nextID int64
	calls  int
}

func newMemLogs() *memLogs {
	return &memLogs{rows: map[logKey]domain.DailyFitnessLog{}}
}

func (m *memLogs) add(userID int64, day time.Time, did bool) {
	m.nextID++
	m.rows[logKey{userID, domain.DateKey(day)}] = domain.DailyFitnessLog{
		ID: m.nextID, UserID: userID, Date: day, DidWorkout: did,
	}
}

func (m *memLogs) FindByUserAndDate(_ context.Context, userID int64, date time.Time) (*domain.DailyFitnessLog, error) {
	m.calls++
	l, ok := m.rows[logKey{userID, domain.DateKey(date)}]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (m *memLogs) FindAllByUser(_ context.Context, userID int64) ([]domain.DailyFitnessLog, error) {
	m.calls++
	var out []domain.DailyFitnessLog
	for k, l := range m.rows {
		if k.userID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memLogs) Upsert(_ context.Context, userID int64, date time.Time, didWorkout bool) (*domain.DailyFitnessLog, error) {
	m.calls++
	key := logKey{userID, domain.DateKey(date)}
	l, ok := m.rows[key]
	if !ok {
		m.nextID++
		l = domain.DailyFitnessLog{ID: m.nextID, UserID: userID, Date: date}
	}
	l.DidWorkout = didWorkout
	m.rows[key] = l
	return &l, nil
}
