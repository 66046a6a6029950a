package payout

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PilotarApp/lesson-scheduler/internal/audit"
	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/payout"
	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
	"github.com/PilotarApp/lesson-scheduler/internal/payoutrail"
	"github.com/PilotarApp/lesson-scheduler/internal/validators"
)

// ======================================================
// FAKES (em memória)
// ======================================================

type fakeRepo struct {
	mu      sync.Mutex
	entries map[uint]*models.PayoutEntry
	methods map[uint]*models.WithdrawalMethod
	nextID  uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		entries: map[uint]*models.PayoutEntry{},
		methods: map[uint]*models.WithdrawalMethod{},
		nextID:  1,
	}
}

func (r *fakeRepo) addEntry(e *models.PayoutEntry) *models.PayoutEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == 0 {
		e.ID = r.nextID
		r.nextID++
	}
	cp := *e
	r.entries[e.ID] = &cp
	return e
}

func (r *fakeRepo) CreateEntry(_ context.Context, e *models.PayoutEntry) error {
	for _, existing := range r.entries {
		if existing.BookingID == e.BookingID {
			return nil
		}
	}
	r.addEntry(e)
	return nil
}

func (r *fakeRepo) GetEntryForInstructor(_ context.Context, entryID, instructorID uint) (*models.PayoutEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[entryID]
	if !ok || e.InstructorID != instructorID {
		return nil, httperr.ErrBusiness("payout_entry_not_found")
	}
	cp := *e
	return &cp, nil
}

func (r *fakeRepo) GetEntryByTransferRef(_ context.Context, ref string) (*models.PayoutEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.TransferRef == ref {
			cp := *e
			return &cp, nil
		}
	}
	return nil, httperr.ErrBusiness("payout_entry_not_found")
}

func (r *fakeRepo) Transition(_ context.Context, entryID uint, fn func(e *models.PayoutEntry) error) (*models.PayoutEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[entryID]
	if !ok {
		return nil, httperr.ErrBusiness("payout_entry_not_found")
	}
	cp := *e
	if err := fn(&cp); err != nil {
		return nil, err
	}
	r.entries[entryID] = &cp
	out := cp
	return &out, nil
}

func (r *fakeRepo) ListByInstructor(_ context.Context, instructorID uint) ([]models.PayoutEntry, error) {
	var out []models.PayoutEntry
	for _, e := range r.entries {
		if e.InstructorID == instructorID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetBalance(_ context.Context, instructorID uint) (*domain.Balance, error) {
	bal := &domain.Balance{Available: decimal.Zero, Waiting: decimal.Zero}
	for _, e := range r.entries {
		if e.InstructorID != instructorID {
			continue
		}
		switch domain.Status(e.Status) {
		case domain.StatusAvailable:
			bal.Available = bal.Available.Add(e.NetAmount)
			bal.AvailableCount++
		case domain.StatusWaiting:
			bal.Waiting = bal.Waiting.Add(e.NetAmount)
			bal.WaitingCount++
		}
	}
	return bal, nil
}

func (r *fakeRepo) ListReleaseDue(_ context.Context, now time.Time, limit int) ([]uint, error) {
	var ids []uint
	for id, e := range r.entries {
		if domain.Status(e.Status) == domain.StatusWaiting && !e.AvailableAt.After(now) {
			ids = append(ids, id)
		}
		if len(ids) == limit {
			break
		}
	}
	return ids, nil
}

func (r *fakeRepo) GetMethod(_ context.Context, instructorID uint) (*models.WithdrawalMethod, error) {
	m, ok := r.methods[instructorID]
	if !ok {
		return nil, httperr.ErrBusiness("withdrawal_method_not_found")
	}
	return m, nil
}

func (r *fakeRepo) SaveMethod(_ context.Context, m *models.WithdrawalMethod) error {
	if m.ID == 0 {
		m.ID = r.nextID
		r.nextID++
	}
	r.methods[m.InstructorID] = m
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

type fakeRail struct {
	mu       sync.Mutex
	requests []payoutrail.TransferRequest
	err      error
}

func (f *fakeRail) RequestTransfer(_ context.Context, req payoutrail.TransferRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.err
}

// ======================================================
// SETUP
// ======================================================

var testPolicy = domain.Policy{
	BaseFeePercent:        decimal.NewFromInt(20),
	AnticipationSurcharge: decimal.NewFromInt(3),
	StandardWait:          30 * 24 * time.Hour,
	AnticipatedWait:       14 * 24 * time.Hour,
}

func seedEntry(repo *fakeRepo, status domain.Status) *models.PayoutEntry {
	e := &models.PayoutEntry{
		InstructorID:  20,
		BookingID:     7,
		GrossAmount:   decimal.NewFromInt(100),
		FeePercentage: decimal.NewFromInt(20),
		PlatformFee:   decimal.NewFromInt(20),
		NetAmount:     decimal.NewFromInt(80),
		Status:        string(status),
		AvailableAt:   time.Now().UTC().Add(30 * 24 * time.Hour),
	}
	return repo.addEntry(e)
}

func seedValidatedMethod(repo *fakeRepo) {
	repo.methods[20] = &models.WithdrawalMethod{
		ID:           50,
		InstructorID: 20,
		MethodType:   models.MethodTypePix,
		PixKeyType:   validators.PixKeyCPF,
		PixKey:       "39053344705",
		Status:       models.MethodValidated,
	}
}

func nopAudit() *audit.Dispatcher { return audit.NewNopDispatcher() }

// ======================================================
// TESTS
// ======================================================

func TestGetBalance_RequiresValidatedMethod(t *testing.T) {
	repo := newFakeRepo()
	seedEntry(repo, domain.StatusAvailable)

	uc := NewGetBalance(repo)

	// sem método cadastrado
	_, err := uc.Execute(context.Background(), 20)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNoValidatedMethod))

	// método ainda pendente
	repo.methods[20] = &models.WithdrawalMethod{InstructorID: 20, Status: models.MethodPending}
	_, err = uc.Execute(context.Background(), 20)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNoValidatedMethod))

	seedValidatedMethod(repo)
	bal, err := uc.Execute(context.Background(), 20)
	require.NoError(t, err)
	assert.True(t, bal.Available.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, 1, bal.AvailableCount)
}

func TestGetBalance_Aggregation(t *testing.T) {
	repo := newFakeRepo()
	seedValidatedMethod(repo)
	seedEntry(repo, domain.StatusAvailable)

	waiting := seedEntry(repo, domain.StatusWaiting)
	_, err := repo.Transition(context.Background(), waiting.ID, func(e *models.PayoutEntry) error {
		e.BookingID = 8
		e.NetAmount = decimal.NewFromInt(77)
		return nil
	})
	require.NoError(t, err)

	// pago não conta em nenhum agregado
	paid := seedEntry(repo, domain.StatusPaid)
	_, err = repo.Transition(context.Background(), paid.ID, func(e *models.PayoutEntry) error {
		e.BookingID = 9
		return nil
	})
	require.NoError(t, err)

	bal, err := NewGetBalance(repo).Execute(context.Background(), 20)
	require.NoError(t, err)
	assert.True(t, bal.Available.Equal(decimal.NewFromInt(80)), "available %s", bal.Available)
	assert.True(t, bal.Waiting.Equal(decimal.NewFromInt(77)), "waiting %s", bal.Waiting)
	assert.Equal(t, 1, bal.AvailableCount)
	assert.Equal(t, 1, bal.WaitingCount)
}

func TestRequestAnticipation(t *testing.T) {
	repo := newFakeRepo()
	e := seedEntry(repo, domain.StatusWaiting)

	uc := NewRequestAnticipation(repo, nopAudit(), testPolicy)

	got, err := uc.Execute(context.Background(), 20, e.ID)
	require.NoError(t, err)
	assert.True(t, got.FeePercentage.Equal(decimal.NewFromInt(23)))
	assert.True(t, got.NetAmount.Equal(decimal.NewFromInt(77)), "net %s", got.NetAmount)
	assert.True(t, got.IsAnticipation)

	// irreversível: segundo pedido falha
	_, err = uc.Execute(context.Background(), 20, e.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotAnticipable))

	// outro instrutor não enxerga o lançamento
	_, err = uc.Execute(context.Background(), 99, e.ID)
	assert.True(t, httperr.IsBusiness(err, "payout_entry_not_found"))
}

func TestRequestWithdrawal(t *testing.T) {
	repo := newFakeRepo()
	seedValidatedMethod(repo)
	e := seedEntry(repo, domain.StatusAvailable)
	rail := &fakeRail{}

	uc := NewRequestWithdrawal(repo, nopAudit(), rail)

	got, err := uc.Execute(context.Background(), 20, e.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPendingTransfer), got.Status)
	assert.NotEmpty(t, got.TransferRef)

	require.Len(t, rail.requests, 1)
	req := rail.requests[0]
	assert.Equal(t, got.TransferRef, req.TransferRef)
	assert.True(t, req.Amount.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, models.MethodTypePix, req.MethodType)
	assert.Equal(t, "39053344705", req.PixKey)

	// já em transferência
	_, err = uc.Execute(context.Background(), 20, e.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInsufficientEntry))
}

func TestRequestWithdrawal_Gates(t *testing.T) {
	repo := newFakeRepo()
	e := seedEntry(repo, domain.StatusAvailable)
	rail := &fakeRail{}

	uc := NewRequestWithdrawal(repo, nopAudit(), rail)

	// sem método cadastrado
	_, err := uc.Execute(context.Background(), 20, e.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNoValidatedMethod))

	// método pendente
	repo.methods[20] = &models.WithdrawalMethod{InstructorID: 20, Status: models.MethodPending}
	_, err = uc.Execute(context.Background(), 20, e.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNoValidatedMethod))

	// lançamento ainda em retenção
	seedValidatedMethod(repo)
	w := seedEntry(repo, domain.StatusWaiting)
	_, err = uc.Execute(context.Background(), 20, w.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInsufficientEntry))

	assert.Empty(t, rail.requests)
}

func TestSettleTransfer(t *testing.T) {
	repo := newFakeRepo()
	seedValidatedMethod(repo)
	e := seedEntry(repo, domain.StatusAvailable)
	rail := &fakeRail{}

	withdrawn, err := NewRequestWithdrawal(repo, nopAudit(), rail).Execute(context.Background(), 20, e.ID)
	require.NoError(t, err)

	uc := NewSettleTransfer(repo, nopAudit())

	got, err := uc.Execute(context.Background(), withdrawn.TransferRef, true)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPaid), got.Status)

	// replay do webhook: pago é terminal
	_, err = uc.Execute(context.Background(), withdrawn.TransferRef, true)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))

	// referência desconhecida
	_, err = uc.Execute(context.Background(), "nope", true)
	assert.True(t, httperr.IsBusiness(err, "payout_entry_not_found"))
}

func TestSettleTransfer_FailureRestoresBalance(t *testing.T) {
	repo := newFakeRepo()
	seedValidatedMethod(repo)
	e := seedEntry(repo, domain.StatusAvailable)
	rail := &fakeRail{}

	withdrawUC := NewRequestWithdrawal(repo, nopAudit(), rail)
	withdrawn, err := withdrawUC.Execute(context.Background(), 20, e.ID)
	require.NoError(t, err)

	got, err := NewSettleTransfer(repo, nopAudit()).Execute(context.Background(), withdrawn.TransferRef, false)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusAvailable), got.Status)

	// novo saque gera nova referência
	again, err := withdrawUC.Execute(context.Background(), 20, e.ID)
	require.NoError(t, err)
	assert.NotEqual(t, withdrawn.TransferRef, again.TransferRef)
}

func TestReleaseSweep(t *testing.T) {
	repo := newFakeRepo()
	now := time.Now().UTC()

	due := seedEntry(repo, domain.StatusWaiting)
	_, err := repo.Transition(context.Background(), due.ID, func(e *models.PayoutEntry) error {
		e.AvailableAt = now.Add(-time.Hour)
		return nil
	})
	require.NoError(t, err)

	// outro lançamento ainda em retenção
	held := seedEntry(repo, domain.StatusWaiting)
	_, err = repo.Transition(context.Background(), held.ID, func(e *models.PayoutEntry) error {
		e.BookingID = 8
		return nil
	})
	require.NoError(t, err)

	sweep := NewReleaseSweep(repo, nopAudit())

	n, err := sweep.Run(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := repo.GetEntryForInstructor(context.Background(), due.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusAvailable), got.Status)

	// re-execução é no-op
	n, err = sweep.Run(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRegisterWithdrawalMethod(t *testing.T) {
	repo := newFakeRepo()
	uc := NewRegisterWithdrawalMethod(repo, nopAudit())

	m, err := uc.Execute(context.Background(), RegisterMethodInput{
		InstructorID: 20,
		MethodType:   models.MethodTypePix,
		PixKeyType:   validators.PixKeyCPF,
		PixKey:       "390.533.447-05",
	})
	require.NoError(t, err)
	assert.Equal(t, models.MethodPending, m.Status)

	// chave inválida para o tipo
	_, err = uc.Execute(context.Background(), RegisterMethodInput{
		InstructorID: 20,
		MethodType:   models.MethodTypePix,
		PixKeyType:   validators.PixKeyEmail,
		PixKey:       "sem-arroba",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))

	// conta custódia
	m, err = uc.Execute(context.Background(), RegisterMethodInput{
		InstructorID: 20,
		MethodType:   models.MethodTypeCustody,
		CustodyEmail: "Instrutor@Exemplo.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "instrutor@exemplo.com", m.CustodyEmail)

	_, err = uc.Execute(context.Background(), RegisterMethodInput{
		InstructorID: 20,
		MethodType:   "cheque",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
}

func TestValidateMethod_OpensWithdrawalGate(t *testing.T) {
	repo := newFakeRepo()
	seedEntry(repo, domain.StatusAvailable)

	registerUC := NewRegisterWithdrawalMethod(repo, nopAudit())
	validateUC := NewValidateMethod(repo, nopAudit())
	balanceUC := NewGetBalance(repo)

	_, err := registerUC.Execute(context.Background(), RegisterMethodInput{
		InstructorID: 20,
		MethodType:   models.MethodTypePix,
		PixKeyType:   validators.PixKeyCPF,
		PixKey:       "390.533.447-05",
	})
	require.NoError(t, err)

	// cadastro pendente ainda não libera o saldo
	_, err = balanceUC.Execute(context.Background(), 20)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNoValidatedMethod))

	m, err := validateUC.Execute(context.Background(), 20, true)
	require.NoError(t, err)
	assert.Equal(t, models.MethodValidated, m.Status)

	bal, err := balanceUC.Execute(context.Background(), 20)
	require.NoError(t, err)
	assert.True(t, bal.Available.Equal(decimal.NewFromInt(80)))
}

func TestValidateMethod_RejectionKeepsGateClosed(t *testing.T) {
	repo := newFakeRepo()
	validateUC := NewValidateMethod(repo, nopAudit())

	// sem cadastro não há o que validar
	_, err := validateUC.Execute(context.Background(), 20, true)
	assert.True(t, httperr.IsBusiness(err, "withdrawal_method_not_found"))

	repo.methods[20] = &models.WithdrawalMethod{
		ID:           50,
		InstructorID: 20,
		MethodType:   models.MethodTypePix,
		PixKeyType:   validators.PixKeyCPF,
		PixKey:       "39053344705",
		Status:       models.MethodPending,
	}

	m, err := validateUC.Execute(context.Background(), 20, false)
	require.NoError(t, err)
	assert.Equal(t, models.MethodRejected, m.Status)

	_, err = NewGetBalance(repo).Execute(context.Background(), 20)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNoValidatedMethod))
}
