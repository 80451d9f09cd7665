package employee_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sourabhverman/people-hub-pro/internal/employee"
	employeeerrors "github.com/sourabhverman/people-hub-pro/internal/employee/errors"
	"github.com/sourabhverman/people-hub-pro/internal/messaging/kafka"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeEmployeeRepo struct {
	mu   sync.Mutex
	rows map[string]*employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{rows: make(map[string]*employee.Employee)}
}

func (f *fakeEmployeeRepo) WithTx(tx *gorm.DB) employee.Repository { return f }

func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *e
	f.rows[e.ID.String()] = &cp
	return nil
}

func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEmployeeRepo) FindAll(ctx context.Context, status string) ([]employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []employee.Employee
	for _, e := range f.rows {
		if status == "" || e.Status == status {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *e
	f.rows[e.ID.String()] = &cp
	return nil
}

func (f *fakeEmployeeRepo) UpdateStatus(ctx context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.Status = status
	return nil
}

type fakeCounter struct {
	mu   sync.Mutex
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	return f.next, nil
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

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error           { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error { return nil }

type harness struct {
	svc    employee.Service
	mock   sqlmock.Sqlmock
	repo   *fakeEmployeeRepo
	outbox *fakeOutbox
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{DisableAutomaticPing: true},
	)
	assert.NoError(t, err)

	repo := newFakeEmployeeRepo()
	outbox := &fakeOutbox{}

	svc := employee.NewService(gdb, repo, &fakeCounter{}, outbox, nil, zap.NewNop())

	return &harness{svc: svc, mock: mock, repo: repo, outbox: outbox}
}

func (h *harness) seedEmployee(t *testing.T, code string, managerID *uuid.UUID, status string) *employee.Employee {
	t.Helper()
	e := &employee.Employee{
		ID:                 uuid.New(),
		EmployeeCode:       code,
		FirstName:          "Emp",
		LastName:           code,
		Email:              code + "@example.com",
		DepartmentID:       uuid.New(),
		DesignationID:      uuid.New(),
		ReportingManagerID: managerID,
		Status:             status,
		DateOfJoining:      time.Date(2023, 1, 16, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, h.repo.Create(context.Background(), e))
	return e
}

func validCreateReq() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		FirstName:     "Priya",
		LastName:      "Sharma",
		Email:         "priya.sharma@example.com",
		DepartmentID:  uuid.New().String(),
		DesignationID: uuid.New().String(),
		DateOfJoining: "2024-03-01",
	}
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns a sequential code and records the lifecycle event", func(t *testing.T) {
		h := newHarness(t)

		h.mock.ExpectBegin()
		h.mock.ExpectCommit()

		resp, err := h.svc.Create(ctx, validCreateReq())
		assert.NoError(t, err)
		assert.Equal(t, "EMP0001", resp.EmployeeCode)
		assert.Equal(t, employee.StatusActive, resp.Status)

		assert.Len(t, h.outbox.events, 1)
		assert.Equal(t, "employee.created", h.outbox.events[0].EventType)
		assert.Equal(t, "hr.employee.lifecycle.v1", h.outbox.events[0].Topic)
		assert.NoError(t, h.mock.ExpectationsWereMet())
	})

	t.Run("rejects an unknown manager", func(t *testing.T) {
		h := newHarness(t)

		req := validCreateReq()
		missing := uuid.New().String()
		req.ReportingManagerID = &missing

		_, err := h.svc.Create(ctx, req)
		assert.ErrorIs(t, err, employeeerrors.ErrManagerNotFound)
	})

	t.Run("rejects an exited manager", func(t *testing.T) {
		h := newHarness(t)
		gone := h.seedEmployee(t, "EMP0009", nil, employee.StatusExited)

		req := validCreateReq()
		id := gone.ID.String()
		req.ReportingManagerID = &id

		_, err := h.svc.Create(ctx, req)
		assert.ErrorIs(t, err, employeeerrors.ErrManagerExited)
	})

	t.Run("rejects a malformed joining date", func(t *testing.T) {
		h := newHarness(t)

		req := validCreateReq()
		req.DateOfJoining = "01-03-2024"

		_, err := h.svc.Create(ctx, req)
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidJoiningDate)
	})
}

func TestAssignManager(t *testing.T) {
	ctx := context.Background()

	t.Run("reassigns to a valid manager", func(t *testing.T) {
		h := newHarness(t)
		ceo := h.seedEmployee(t, "EMP0001", nil, employee.StatusActive)
		ceoID := ceo.ID
		eng := h.seedEmployee(t, "EMP0002", &ceoID, employee.StatusActive)
		newManager := h.seedEmployee(t, "EMP0003", &ceoID, employee.StatusActive)

		resp, err := h.svc.AssignManager(ctx, eng.ID.String(), employee.AssignManagerRequest{
			ReportingManagerID: newManager.ID.String(),
		})
		assert.NoError(t, err)
		assert.NotNil(t, resp.ReportingManagerID)
		assert.Equal(t, newManager.ID.String(), *resp.ReportingManagerID)
	})

	t.Run("rejects self management", func(t *testing.T) {
		h := newHarness(t)
		e := h.seedEmployee(t, "EMP0001", nil, employee.StatusActive)

		_, err := h.svc.AssignManager(ctx, e.ID.String(), employee.AssignManagerRequest{
			ReportingManagerID: e.ID.String(),
		})
		assert.ErrorIs(t, err, employeeerrors.ErrSelfManager)
	})

	t.Run("rejects a direct cycle", func(t *testing.T) {
		h := newHarness(t)
		a := h.seedEmployee(t, "EMP0001", nil, employee.StatusActive)
		aID := a.ID
		b := h.seedEmployee(t, "EMP0002", &aID, employee.StatusActive)

		// b reports to a; making a report to b closes the loop.
		_, err := h.svc.AssignManager(ctx, a.ID.String(), employee.AssignManagerRequest{
			ReportingManagerID: b.ID.String(),
		})
		assert.ErrorIs(t, err, employeeerrors.ErrManagerCycle)
	})

	t.Run("rejects a transitive cycle", func(t *testing.T) {
		h := newHarness(t)
		a := h.seedEmployee(t, "EMP0001", nil, employee.StatusActive)
		aID := a.ID
		b := h.seedEmployee(t, "EMP0002", &aID, employee.StatusActive)
		bID := b.ID
		c := h.seedEmployee(t, "EMP0003", &bID, employee.StatusActive)

		// c is two levels below a.
		_, err := h.svc.AssignManager(ctx, a.ID.String(), employee.AssignManagerRequest{
			ReportingManagerID: c.ID.String(),
		})
		assert.ErrorIs(t, err, employeeerrors.ErrManagerCycle)
	})

	t.Run("unknown employee", func(t *testing.T) {
		h := newHarness(t)
		mgr := h.seedEmployee(t, "EMP0001", nil, employee.StatusActive)

		_, err := h.svc.AssignManager(ctx, uuid.New().String(), employee.AssignManagerRequest{
			ReportingManagerID: mgr.ID.String(),
		})
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestOrgChartService(t *testing.T) {
	h := newHarness(t)
	ceo := h.seedEmployee(t, "EMP0001", nil, employee.StatusActive)
	ceoID := ceo.ID
	h.seedEmployee(t, "EMP0002", &ceoID, employee.StatusActive)
	h.seedEmployee(t, "EMP0003", &ceoID, employee.StatusExited)

	nodes, err := h.svc.OrgChart(context.Background())
	assert.NoError(t, err)
	assert.Len(t, nodes, 1)
	assert.Len(t, nodes[0].Reports, 1)
	assert.Equal(t, "EMP0002", nodes[0].Reports[0].EmployeeCode)
}
