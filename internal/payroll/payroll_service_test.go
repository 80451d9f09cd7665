package payroll_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/sourabhverman/people-hub-pro/internal/payroll"
	payrollerrors "github.com/sourabhverman/people-hub-pro/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakePayrollRepo struct {
	payslips map[string]*payroll.Payslip
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{payslips: make(map[string]*payroll.Payslip)}
}

func (f *fakePayrollRepo) Create(ctx context.Context, p *payroll.Payslip) error {
	key := fmt.Sprintf("%s/%d/%d", p.EmployeeID, p.Month, p.Year)
	for _, existing := range f.payslips {
		if fmt.Sprintf("%s/%d/%d", existing.EmployeeID, existing.Month, existing.Year) == key {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_payslip_period"}
		}
	}
	f.payslips[p.ID.String()] = p
	return nil
}

func (f *fakePayrollRepo) FindByID(ctx context.Context, id string) (*payroll.Payslip, error) {
	p, ok := f.payslips[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePayrollRepo) FindByEmployee(ctx context.Context, employeeID string, year int) ([]payroll.Payslip, error) {
	var out []payroll.Payslip
	for _, p := range f.payslips {
		if p.EmployeeID.String() != employeeID {
			continue
		}
		if year != 0 && p.Year != year {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePayrollRepo) Update(ctx context.Context, p *payroll.Payslip) error {
	cp := *p
	f.payslips[p.ID.String()] = &cp
	return nil
}

func newService() payroll.Service {
	return payroll.NewService(newFakePayrollRepo(), zap.NewNop())
}

func generate(t *testing.T, svc payroll.Service, employeeID string, month int) payroll.PayslipResponse {
	t.Helper()
	resp, err := svc.Generate(context.Background(), payroll.GeneratePayslipRequest{
		EmployeeID: employeeID,
		Month:      month,
		Year:       2024,
		BasicPay:   500000,
		Allowances: 120000,
		Deductions: 45000,
	})
	assert.NoError(t, err)
	return resp
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("net pay is basic plus allowances minus deductions", func(t *testing.T) {
		svc := newService()
		resp := generate(t, svc, uuid.New().String(), 3)
		assert.Equal(t, int64(575000), resp.NetPay)
		assert.False(t, resp.IsLocked)
	})

	t.Run("one payslip per employee and period", func(t *testing.T) {
		svc := newService()
		emp := uuid.New().String()
		generate(t, svc, emp, 3)

		_, err := svc.Generate(ctx, payroll.GeneratePayslipRequest{
			EmployeeID: emp,
			Month:      3,
			Year:       2024,
			BasicPay:   500000,
		})
		assert.ErrorIs(t, err, payrollerrors.ErrDuplicatePayslip)
	})

	t.Run("deductions exceeding gross pay are rejected", func(t *testing.T) {
		svc := newService()

		_, err := svc.Generate(ctx, payroll.GeneratePayslipRequest{
			EmployeeID: uuid.New().String(),
			Month:      3,
			Year:       2024,
			BasicPay:   100000,
			Deductions: 150000,
		})
		assert.ErrorIs(t, err, payrollerrors.ErrNegativeNetPay)
	})
}

func TestUpdateAndLock(t *testing.T) {
	ctx := context.Background()

	t.Run("update recomputes net pay", func(t *testing.T) {
		svc := newService()
		p := generate(t, svc, uuid.New().String(), 4)

		deductions := int64(100000)
		updated, err := svc.Update(ctx, p.ID, payroll.UpdatePayslipRequest{Deductions: &deductions})
		assert.NoError(t, err)
		assert.Equal(t, int64(520000), updated.NetPay)
	})

	t.Run("locked payslips reject updates", func(t *testing.T) {
		svc := newService()
		p := generate(t, svc, uuid.New().String(), 4)

		locked, err := svc.Lock(ctx, p.ID)
		assert.NoError(t, err)
		assert.True(t, locked.IsLocked)

		basic := int64(600000)
		_, err = svc.Update(ctx, p.ID, payroll.UpdatePayslipRequest{BasicPay: &basic})
		assert.ErrorIs(t, err, payrollerrors.ErrPayrollLocked)
	})

	t.Run("locking twice conflicts", func(t *testing.T) {
		svc := newService()
		p := generate(t, svc, uuid.New().String(), 4)

		_, err := svc.Lock(ctx, p.ID)
		assert.NoError(t, err)

		_, err = svc.Lock(ctx, p.ID)
		assert.ErrorIs(t, err, payrollerrors.ErrPayrollLocked)
	})

	t.Run("unknown payslip", func(t *testing.T) {
		svc := newService()

		_, err := svc.Lock(ctx, uuid.New().String())
		assert.ErrorIs(t, err, payrollerrors.ErrPayslipNotFound)
	})
}

func TestGetByEmployee(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	emp := uuid.New().String()

	generate(t, svc, emp, 1)
	generate(t, svc, emp, 2)
	generate(t, svc, uuid.New().String(), 1)

	mine, err := svc.GetByEmployee(ctx, emp, 2024)
	assert.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := svc.GetByEmployee(ctx, emp, 2023)
	assert.NoError(t, err)
	assert.Empty(t, none)
}
