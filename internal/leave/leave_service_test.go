package leave_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sourabhverman/people-hub-pro/internal/leave"
	leaveerrors "github.com/sourabhverman/people-hub-pro/internal/leave/errors"
	"github.com/sourabhverman/people-hub-pro/internal/leavebalance"
	leavebalanceerrors "github.com/sourabhverman/people-hub-pro/internal/leavebalance/errors"
	"github.com/sourabhverman/people-hub-pro/internal/leavetype"
	leavetypeerrors "github.com/sourabhverman/people-hub-pro/internal/leavetype/errors"
	"github.com/sourabhverman/people-hub-pro/internal/messaging/kafka"
	"github.com/sourabhverman/people-hub-pro/internal/shared/calendar"
	"github.com/sourabhverman/people-hub-pro/internal/shared/keylock"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeLeaveRepo struct {
	mu   sync.Mutex
	rows map[string]*leave.Leave
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{rows: make(map[string]*leave.Leave)}
}

func (f *fakeLeaveRepo) WithTx(tx *gorm.DB) leave.Repository { return f }

func (f *fakeLeaveRepo) Create(ctx context.Context, l *leave.Leave) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *l
	f.rows[l.ID.String()] = &cp
	return nil
}

func (f *fakeLeaveRepo) FindByID(ctx context.Context, id string) (*leave.Leave, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLeaveRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]leave.Leave, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []leave.Leave
	for _, l := range f.rows {
		if l.EmployeeID.String() == employeeID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) FindActiveByEmployee(ctx context.Context, employeeID string) ([]leave.Leave, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []leave.Leave
	for _, l := range f.rows {
		if l.EmployeeID.String() != employeeID {
			continue
		}
		if l.Status == leave.StatusPending || l.Status == leave.StatusApproved {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) FindAll(ctx context.Context, status string) ([]leave.Leave, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []leave.Leave
	for _, l := range f.rows {
		if status == "" || l.Status == status {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) Update(ctx context.Context, l *leave.Leave) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *l
	f.rows[l.ID.String()] = &cp
	return nil
}

type fakeBalanceRepo struct {
	mu   sync.Mutex
	rows map[string]*leavebalance.LeaveBalance
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{rows: make(map[string]*leavebalance.LeaveBalance)}
}

func balanceKey(employeeID, leaveTypeID string, year int) string {
	return fmt.Sprintf("%s/%s/%d", employeeID, leaveTypeID, year)
}

func (f *fakeBalanceRepo) WithTx(tx *gorm.DB) leavebalance.Repository { return f }

func (f *fakeBalanceRepo) Create(ctx context.Context, b *leavebalance.LeaveBalance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *b
	f.rows[balanceKey(b.EmployeeID.String(), b.LeaveTypeID.String(), b.Year)] = &cp
	return nil
}

func (f *fakeBalanceRepo) FindForKey(ctx context.Context, employeeID, leaveTypeID string, year int) (*leavebalance.LeaveBalance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.rows[balanceKey(employeeID, leaveTypeID, year)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBalanceRepo) FindAllByEmployee(ctx context.Context, employeeID string, year int) ([]leavebalance.LeaveBalance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []leavebalance.LeaveBalance
	for _, b := range f.rows {
		if b.EmployeeID.String() == employeeID && b.Year == year {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBalanceRepo) Update(ctx context.Context, b *leavebalance.LeaveBalance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *b
	f.rows[balanceKey(b.EmployeeID.String(), b.LeaveTypeID.String(), b.Year)] = &cp
	return nil
}

type fakeTypeRepo struct {
	rows map[string]*leavetype.LeaveType
}

func (f *fakeTypeRepo) Create(ctx context.Context, lt *leavetype.LeaveType) error {
	f.rows[lt.ID.String()] = lt
	return nil
}

func (f *fakeTypeRepo) FindAll(ctx context.Context) ([]leavetype.LeaveType, error) {
	var out []leavetype.LeaveType
	for _, lt := range f.rows {
		out = append(out, *lt)
	}
	return out, nil
}

func (f *fakeTypeRepo) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	lt, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return lt, nil
}

type fakeOutbox struct {
	mu     sync.Mutex
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error          { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error { return nil }

type calendarStub struct {
	cal *calendar.Calendar
}

func (c calendarStub) CalendarForYear(ctx context.Context, year int) (*calendar.Calendar, error) {
	return c.cal, nil
}

type perYearCalendarStub struct {
	cals map[int]*calendar.Calendar
}

func (c perYearCalendarStub) CalendarForYear(ctx context.Context, year int) (*calendar.Calendar, error) {
	if cal, ok := c.cals[year]; ok {
		return cal, nil
	}
	return calendar.Default(), nil
}

// decidedBetweenReadsRepo serves the stored row on the first read and an
// approved copy afterwards, mimicking a decision that lands between the
// pre-lock read and the locked re-read.
type decidedBetweenReadsRepo struct {
	*fakeLeaveRepo
	raceID string
	reads  int
}

func (r *decidedBetweenReadsRepo) WithTx(tx *gorm.DB) leave.Repository { return r }

func (r *decidedBetweenReadsRepo) FindByID(ctx context.Context, id string) (*leave.Leave, error) {
	l, err := r.fakeLeaveRepo.FindByID(ctx, id)
	if err != nil || id != r.raceID {
		return l, err
	}
	r.reads++
	if r.reads > 1 {
		l.Status = leave.StatusApproved
	}
	return l, nil
}

type harness struct {
	svc      leave.Service
	gdb      *gorm.DB
	mock     sqlmock.Sqlmock
	leaves   *fakeLeaveRepo
	balances *fakeBalanceRepo
	types    *fakeTypeRepo
	outbox   *fakeOutbox
	typeID   string
}

func newHarness(t *testing.T, workdaysOnly bool) *harness {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{DisableAutomaticPing: true},
	)
	assert.NoError(t, err)

	leaves := newFakeLeaveRepo()
	balances := newFakeBalanceRepo()
	types := &fakeTypeRepo{rows: make(map[string]*leavetype.LeaveType)}
	outbox := &fakeOutbox{}

	lt := &leavetype.LeaveType{
		ID:           uuid.New(),
		Name:         "Annual Leave",
		DefaultDays:  12,
		IsPaid:       true,
		WorkdaysOnly: workdaysOnly,
	}
	types.rows[lt.ID.String()] = lt

	svc := leave.NewService(
		gdb, leaves, balances, types, outbox,
		calendarStub{cal: calendar.Default()},
		keylock.New(),
		zap.NewNop(),
	)

	return &harness{
		svc:      svc,
		gdb:      gdb,
		mock:     mock,
		leaves:   leaves,
		balances: balances,
		types:    types,
		outbox:   outbox,
		typeID:   lt.ID.String(),
	}
}

func (h *harness) seedUnpaidType(t *testing.T) string {
	t.Helper()
	lt := &leavetype.LeaveType{
		ID:     uuid.New(),
		Name:   "Leave Without Pay",
		IsPaid: false,
	}
	h.types.rows[lt.ID.String()] = lt
	return lt.ID.String()
}

func (h *harness) seedBalance(t *testing.T, employeeID string, total, used int) {
	t.Helper()
	err := h.balances.Create(context.Background(), &leavebalance.LeaveBalance{
		ID:          uuid.New(),
		EmployeeID:  uuid.MustParse(employeeID),
		LeaveTypeID: uuid.MustParse(h.typeID),
		Year:        2024,
		TotalDays:   total,
		UsedDays:    used,
	})
	assert.NoError(t, err)
}

func (h *harness) seedLeave(t *testing.T, employeeID, status, start, end string, days int) string {
	t.Helper()
	l := &leave.Leave{
		ID:          uuid.New(),
		EmployeeID:  uuid.MustParse(employeeID),
		LeaveTypeID: uuid.MustParse(h.typeID),
		StartDate:   day(start),
		EndDate:     day(end),
		TotalDays:   days,
		Status:      status,
	}
	assert.NoError(t, h.leaves.Create(context.Background(), l))
	return l.ID.String()
}

func (h *harness) usedDays(t *testing.T, employeeID string) int {
	t.Helper()
	b, err := h.balances.FindForKey(context.Background(), employeeID, h.typeID, 2024)
	assert.NoError(t, err)
	return b.UsedDays
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending request and reserves days", func(t *testing.T) {
		h := newHarness(t, false)
		emp := uuid.New().String()
		h.seedBalance(t, emp, 12, 4)

		h.mock.ExpectBegin()
		h.mock.ExpectCommit()

		resp, err := h.svc.Submit(ctx, emp, leave.CreateLeaveRequest{
			LeaveTypeID: h.typeID,
			StartDate:   "2024-12-02",
			EndDate:     "2024-12-04",
			Reason:      "family trip",
		})
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 3, resp.TotalDays)
		assert.Equal(t, 7, h.usedDays(t, emp))
		assert.NoError(t, h.mock.ExpectationsWereMet())
	})

	t.Run("insufficient balance rolls back", func(t *testing.T) {
		h := newHarness(t, false)
		emp := uuid.New().String()
		h.seedBalance(t, emp, 12, 7)

		h.mock.ExpectBegin()
		h.mock.ExpectRollback()

		_, err := h.svc.Submit(ctx, emp, leave.CreateLeaveRequest{
			LeaveTypeID: h.typeID,
			StartDate:   "2024-12-02",
			EndDate:     "2024-12-07",
		})
		assert.ErrorIs(t, err, leavebalanceerrors.ErrInsufficientBalance)
		assert.Equal(t, 7, h.usedDays(t, emp))
		assert.NoError(t, h.mock.ExpectationsWereMet())
	})

	t.Run("overlapping active request is rejected", func(t *testing.T) {
		h := newHarness(t, false)
		emp := uuid.New().String()
		h.seedBalance(t, emp, 12, 0)
		h.seedLeave(t, emp, leave.StatusPending, "2024-12-02", "2024-12-05", 4)

		h.mock.ExpectBegin()
		h.mock.ExpectRollback()

		_, err := h.svc.Submit(ctx, emp, leave.CreateLeaveRequest{
			LeaveTypeID: h.typeID,
			StartDate:   "2024-12-04",
			EndDate:     "2024-12-06",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrOverlappingRequest)
		assert.Equal(t, 0, h.usedDays(t, emp))
	})

	t.Run("cancelled request does not block the same range", func(t *testing.T) {
		h := newHarness(t, false)
		emp := uuid.New().String()
		h.seedBalance(t, emp, 12, 0)
		h.seedLeave(t, emp, leave.StatusCancelled, "2024-12-02", "2024-12-05", 4)

		h.mock.ExpectBegin()
		h.mock.ExpectCommit()

		_, err := h.svc.Submit(ctx, emp, leave.CreateLeaveRequest{
			LeaveTypeID: h.typeID,
			StartDate:   "2024-12-02",
			EndDate:     "2024-12-05",
		})
		assert.NoError(t, err)
	})

	t.Run("zero working days", func(t *testing.T) {
		h := newHarness(t, true)
		emp := uuid.New().String()
		h.seedBalance(t, emp, 12, 0)

		h.mock.ExpectBegin()
		h.mock.ExpectRollback()

		_, err := h.svc.Submit(ctx, emp, leave.CreateLeaveRequest{
			LeaveTypeID: h.typeID,
			StartDate:   "2024-12-07",
			EndDate:     "2024-12-08",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrZeroDurationRequest)
	})

	t.Run("invalid date format", func(t *testing.T) {
		h := newHarness(t, false)

		_, err := h.svc.Submit(ctx, uuid.New().String(), leave.CreateLeaveRequest{
			LeaveTypeID: h.typeID,
			StartDate:   "02-12-2024",
			EndDate:     "2024-12-04",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})

	t.Run("unknown leave type", func(t *testing.T) {
		h := newHarness(t, false)

		_, err := h.svc.Submit(ctx, uuid.New().String(), leave.CreateLeaveRequest{
			LeaveTypeID: uuid.New().String(),
			StartDate:   "2024-12-02",
			EndDate:     "2024-12-04",
		})
		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
	})

	t.Run("unpaid leave bypasses the balance", func(t *testing.T) {
		h := newHarness(t, false)
		emp := uuid.New().String()
		unpaid := h.seedUnpaidType(t)

		h.mock.ExpectBegin()
		h.mock.ExpectCommit()

		resp, err := h.svc.Submit(ctx, emp, leave.CreateLeaveRequest{
			LeaveTypeID: unpaid,
			StartDate:   "2024-12-02",
			EndDate:     "2024-12-20",
		})
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)

		// No balance row was required or created.
		_, err = h.balances.FindForKey(ctx, emp, unpaid, 2024)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("second request depletes remaining balance", func(t *testing.T) {
		h := newHarness(t, false)
		emp := uuid.New().String()
		h.seedBalance(t, emp, 12, 4)

		h.mock.ExpectBegin()
		h.mock.ExpectCommit()
		h.mock.ExpectBegin()
		h.mock.ExpectRollback()

		_, err := h.svc.Submit(ctx, emp, leave.CreateLeaveRequest{
			LeaveTypeID: h.typeID,
			StartDate:   "2024-12-02",
			EndDate:     "2024-12-04",
		})
		assert.NoError(t, err)
		assert.Equal(t, 7, h.usedDays(t, emp))

		// Remaining is 5 now; a six day request must fail.
		_, err = h.svc.Submit(ctx, emp, leave.CreateLeaveRequest{
			LeaveTypeID: h.typeID,
			StartDate:   "2024-12-09",
			EndDate:     "2024-12-14",
		})
		assert.ErrorIs(t, err, leavebalanceerrors.ErrInsufficientBalance)
		assert.Equal(t, 7, h.usedDays(t, emp))
		assert.NoError(t, h.mock.ExpectationsWereMet())
	})
}

func TestSubmit_ConcurrentSingleWinner(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)
	emp := uuid.New().String()
	h.seedBalance(t, emp, 12, 0)

	const workers = 100

	h.mock.MatchExpectationsInOrder(false)
	for i := 0; i < workers; i++ {
		h.mock.ExpectBegin()
	}
	h.mock.ExpectCommit()
	for i := 0; i < workers-1; i++ {
		h.mock.ExpectRollback()
	}

	req := leave.CreateLeaveRequest{
		LeaveTypeID: h.typeID,
		StartDate:   "2024-12-02",
		EndDate:     "2024-12-06",
	}

	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = h.svc.Submit(ctx, emp, req)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, leaveerrors.ErrOverlappingRequest)
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 5, h.usedDays(t, emp))
	assert.NoError(t, h.mock.ExpectationsWereMet())
}

func TestSubmit_ConcurrentBalanceDepletion(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)
	emp := uuid.New().String()
	h.seedBalance(t, emp, 1, 0)

	const workers = 100

	h.mock.MatchExpectationsInOrder(false)
	for i := 0; i < workers; i++ {
		h.mock.ExpectBegin()
	}
	h.mock.ExpectCommit()
	for i := 0; i < workers-1; i++ {
		h.mock.ExpectRollback()
	}

	// Disjoint single-day ranges, so only the balance check can lose.
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := day("2024-03-01").AddDate(0, 0, i).Format("2006-01-02")
			_, errs[i] = h.svc.Submit(ctx, emp, leave.CreateLeaveRequest{
				LeaveTypeID: h.typeID,
				StartDate:   d,
				EndDate:     d,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, leavebalanceerrors.ErrInsufficientBalance)
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, h.usedDays(t, emp))
	assert.NoError(t, h.mock.ExpectationsWereMet())
}

func TestSubmit_CrossYearHolidays(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, true)
	emp := uuid.New().String()
	h.seedBalance(t, emp, 12, 0)

	// New Year's Day 2025 only exists in the 2025 calendar.
	cals := perYearCalendarStub{cals: map[int]*calendar.Calendar{
		2025: calendar.New(
			[]time.Weekday{time.Saturday, time.Sunday},
			[]time.Time{day("2025-01-01")},
		),
	}}
	svc := leave.NewService(
		h.gdb, h.leaves, h.balances, h.types, h.outbox,
		cals,
		keylock.New(),
		zap.NewNop(),
	)

	h.mock.ExpectBegin()
	h.mock.ExpectCommit()

	// Mon Dec 30 through Fri Jan 3; Jan 1 must not count as a working day.
	resp, err := svc.Submit(ctx, emp, leave.CreateLeaveRequest{
		LeaveTypeID: h.typeID,
		StartDate:   "2024-12-30",
		EndDate:     "2025-01-03",
	})
	assert.NoError(t, err)
	assert.Equal(t, 4, resp.TotalDays)
	assert.Equal(t, 4, h.usedDays(t, emp))
	assert.NoError(t, h.mock.ExpectationsWereMet())
}

func TestDecide(t *testing.T) {
	ctx := context.Background()

	t.Run("approve finalizes without moving the ledger", func(t *testing.T) {
		h := newHarness(t, false)
		emp := uuid.New().String()
		manager := uuid.New().String()
		h.seedBalance(t, emp, 12, 3)
		id := h.seedLeave(t, emp, leave.StatusPending, "2024-12-02", "2024-12-04", 3)

		h.mock.ExpectBegin()
		h.mock.ExpectCommit()

		resp, err := h.svc.Approve(ctx, id, manager)
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ApprovedBy)
		assert.Equal(t, manager, *resp.ApprovedBy)
		assert.Equal(t, 3, h.usedDays(t, emp))

		assert.Len(t, h.outbox.events, 1)
		assert.Equal(t, "leave.approved", h.outbox.events[0].EventType)
		assert.Equal(t, "hr.leave.decision.v1", h.outbox.events[0].Topic)
	})

	t.Run("reject releases the reserved days", func(t *testing.T) {
		h := newHarness(t, false)
		emp := uuid.New().String()
		manager := uuid.New().String()
		h.seedBalance(t, emp, 12, 3)
		id := h.seedLeave(t, emp, leave.StatusPending, "2024-12-02", "2024-12-04", 3)

		h.mock.ExpectBegin()
		h.mock.ExpectCommit()

		resp, err := h.svc.Reject(ctx, id, manager, "low coverage that week")
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.NotNil(t, resp.RejectionReason)
		assert.Equal(t, 0, h.usedDays(t, emp))

		assert.Len(t, h.outbox.events, 1)
		assert.Equal(t, "leave.rejected", h.outbox.events[0].EventType)
	})

	t.Run("rejecting unpaid leave skips the ledger", func(t *testing.T) {
		h := newHarness(t, false)
		emp := uuid.New().String()
		unpaid := h.seedUnpaidType(t)
		l := &leave.Leave{
			ID:          uuid.New(),
			EmployeeID:  uuid.MustParse(emp),
			LeaveTypeID: uuid.MustParse(unpaid),
			StartDate:   day("2024-12-02"),
			EndDate:     day("2024-12-04"),
			TotalDays:   3,
			Status:      leave.StatusPending,
		}
		assert.NoError(t, h.leaves.Create(ctx, l))

		h.mock.ExpectBegin()
		h.mock.ExpectCommit()

		resp, err := h.svc.Reject(ctx, l.ID.String(), uuid.New().String(), "plan changed")
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)

		_, err = h.balances.FindForKey(ctx, emp, unpaid, 2024)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		h := newHarness(t, false)

		_, err := h.svc.Reject(ctx, uuid.New().String(), uuid.New().String(), "")
		assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
	})

	t.Run("employees cannot decide their own request", func(t *testing.T) {
		h := newHarness(t, false)
		emp := uuid.New().String()
		id := h.seedLeave(t, emp, leave.StatusPending, "2024-12-02", "2024-12-04", 3)

		_, err := h.svc.Approve(ctx, id, emp)
		assert.ErrorIs(t, err, leaveerrors.ErrSelfDecision)
	})

	t.Run("deciding a settled request is illegal", func(t *testing.T) {
		h := newHarness(t, false)
		emp := uuid.New().String()
		id := h.seedLeave(t, emp, leave.StatusApproved, "2024-12-02", "2024-12-04", 3)

		h.mock.ExpectBegin()
		h.mock.ExpectRollback()

		_, err := h.svc.Approve(ctx, id, uuid.New().String())
		assert.ErrorIs(t, err, leaveerrors.ErrIllegalTransition)
		assert.Empty(t, h.outbox.events)
	})

	t.Run("unknown request", func(t *testing.T) {
		h := newHarness(t, false)

		_, err := h.svc.Approve(ctx, uuid.New().String(), uuid.New().String())
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("owner withdraws a pending request", func(t *testing.T) {
		h := newHarness(t, false)
		emp := uuid.New().String()
		h.seedBalance(t, emp, 12, 3)
		id := h.seedLeave(t, emp, leave.StatusPending, "2024-12-02", "2024-12-04", 3)

		h.mock.ExpectBegin()
		h.mock.ExpectCommit()

		resp, err := h.svc.Withdraw(ctx, id, emp)
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, resp.Status)
		assert.Equal(t, 0, h.usedDays(t, emp))
	})

	t.Run("only the owner may withdraw", func(t *testing.T) {
		h := newHarness(t, false)
		emp := uuid.New().String()
		id := h.seedLeave(t, emp, leave.StatusPending, "2024-12-02", "2024-12-04", 3)

		_, err := h.svc.Withdraw(ctx, id, uuid.New().String())
		assert.ErrorIs(t, err, leaveerrors.ErrNotRequestOwner)
	})

	t.Run("approved requests cannot be withdrawn", func(t *testing.T) {
		h := newHarness(t, false)
		emp := uuid.New().String()
		id := h.seedLeave(t, emp, leave.StatusApproved, "2024-12-02", "2024-12-04", 3)

		_, err := h.svc.Withdraw(ctx, id, emp)
		assert.ErrorIs(t, err, leaveerrors.ErrIllegalTransition)
	})

	t.Run("approval landing before the lock blocks the withdraw", func(t *testing.T) {
		h := newHarness(t, false)
		emp := uuid.New().String()
		h.seedBalance(t, emp, 12, 3)
		id := h.seedLeave(t, emp, leave.StatusPending, "2024-12-02", "2024-12-04", 3)

		repo := &decidedBetweenReadsRepo{fakeLeaveRepo: h.leaves, raceID: id}
		svc := leave.NewService(
			h.gdb, repo, h.balances, h.types, h.outbox,
			calendarStub{cal: calendar.Default()},
			keylock.New(),
			zap.NewNop(),
		)

		h.mock.ExpectBegin()
		h.mock.ExpectRollback()

		_, err := svc.Withdraw(ctx, id, emp)
		assert.ErrorIs(t, err, leaveerrors.ErrIllegalTransition)
		// The approved request keeps its finalized days.
		assert.Equal(t, 3, h.usedDays(t, emp))
		assert.NoError(t, h.mock.ExpectationsWereMet())
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("cancelling an approved request returns its days", func(t *testing.T) {
		h := newHarness(t, false)
		emp := uuid.New().String()
		hr := uuid.New().String()
		h.seedBalance(t, emp, 12, 3)
		id := h.seedLeave(t, emp, leave.StatusApproved, "2024-12-02", "2024-12-04", 3)

		h.mock.ExpectBegin()
		h.mock.ExpectCommit()

		resp, err := h.svc.Cancel(ctx, id, hr)
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, resp.Status)
		assert.Equal(t, 0, h.usedDays(t, emp))
	})

	t.Run("cancelling twice is illegal", func(t *testing.T) {
		h := newHarness(t, false)
		emp := uuid.New().String()
		hr := uuid.New().String()
		h.seedBalance(t, emp, 12, 3)
		id := h.seedLeave(t, emp, leave.StatusApproved, "2024-12-02", "2024-12-04", 3)

		h.mock.ExpectBegin()
		h.mock.ExpectCommit()
		h.mock.ExpectBegin()
		h.mock.ExpectRollback()

		_, err := h.svc.Cancel(ctx, id, hr)
		assert.NoError(t, err)

		_, err = h.svc.Cancel(ctx, id, hr)
		assert.ErrorIs(t, err, leaveerrors.ErrIllegalTransition)
		assert.Equal(t, 0, h.usedDays(t, emp))
	})
}
