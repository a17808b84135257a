package contract_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/contract-engine/contract"
	"github.com/warp/contract-engine/wage"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

var created = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

func testTerms() wage.ContractTerms {
	return wage.ContractTerms{
		WageType:        wage.WageHourly,
		Wage:            10360,
		WorkDaysPerWeek: 5,
		StartTime:       wage.MustClock(9, 0),
		EndTime:         wage.MustClock(18, 0),
		BreakMinutes:    60,
		BusinessSize:    wage.Under5,
	}
}

func draftContract() contract.Contract {
	return contract.Contract{
		ID:         "c-1",
		EmployerID: "emp-1",
		WorkerID:   "wrk-1",
		Status:     contract.StatusDraft,
		StartDate:  created,
		Terms:      testTerms(),
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

func signed(t *testing.T, c contract.Contract, p contract.Party, at time.Time) contract.Contract {
	t.Helper()
	tr, err := contract.Sign(c, p, "sig-"+string(p), at)
	require.NoError(t, err)
	return tr.Apply(c)
}

// =============================================================================
// TRANSITIONS
// =============================================================================

func TestSign_EmployerMovesDraftToPending(t *testing.T) {
	c := draftContract()

	tr, err := contract.Sign(c, contract.PartyEmployer, "emp-sig", created.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, contract.StatusDraft, tr.From)
	assert.Equal(t, contract.StatusPending, tr.To)
	require.NotNil(t, tr.EmployerSignature)
	assert.Equal(t, "emp-sig", *tr.EmployerSignature)
	assert.Nil(t, tr.WorkerSignature)
	assert.Nil(t, tr.SignedAt)
}

func TestSign_WorkerCompletesPending(t *testing.T) {
	c := signed(t, draftContract(), contract.PartyEmployer, created)
	at := created.Add(48 * time.Hour)

	tr, err := contract.Sign(c, contract.PartyWorker, "wrk-sig", at)
	require.NoError(t, err)
	done := tr.Apply(c)

	assert.Equal(t, contract.StatusCompleted, done.Status)
	require.NotNil(t, done.SignedAt)
	assert.True(t, done.SignedAt.Equal(at))
	// Employer signature carried over, never cleared
	require.NotNil(t, done.EmployerSignature)
	assert.Equal(t, "sig-employer", *done.EmployerSignature)
	assert.Equal(t, "wrk-sig", *done.WorkerSignature)
}

func TestSign_FromDraft_OnlyPendingReachable(t *testing.T) {
	c := draftContract()

	_, err := contract.Sign(c, contract.PartyWorker, "wrk-sig", created)
	assert.ErrorIs(t, err, contract.ErrInvalidTransition)

	var trErr *contract.TransitionError
	require.True(t, errors.As(err, &trErr))
	assert.Equal(t, contract.StatusDraft, trErr.From)
	assert.Equal(t, contract.PartyWorker, trErr.Party)

	assert.True(t, contract.CanTransition(contract.StatusDraft, contract.StatusPending))
	assert.False(t, contract.CanTransition(contract.StatusDraft, contract.StatusCompleted))
}

func TestSign_PendingRejectsEmployerResign(t *testing.T) {
	c := signed(t, draftContract(), contract.PartyEmployer, created)

	_, err := contract.Sign(c, contract.PartyEmployer, "again", created)
	assert.ErrorIs(t, err, contract.ErrInvalidTransition)
}

func TestSign_CompletedIsFinal(t *testing.T) {
	c := signed(t, draftContract(), contract.PartyEmployer, created)
	c = signed(t, c, contract.PartyWorker, created)

	for _, p := range []contract.Party{contract.PartyEmployer, contract.PartyWorker} {
		_, err := contract.Sign(c, p, "late", created)
		assert.ErrorIs(t, err, contract.ErrAlreadyFinalized, "party %s", p)
	}

	_, err := contract.NextStatus(contract.StatusCompleted)
	assert.ErrorIs(t, err, contract.ErrAlreadyFinalized)
	assert.True(t, contract.IsConflict(err))
}

func TestSign_EmptySignatureRejected(t *testing.T) {
	_, err := contract.Sign(draftContract(), contract.PartyEmployer, "  ", created)
	assert.ErrorIs(t, err, contract.ErrInvalidInput)
}

func TestNextStatus(t *testing.T) {
	next, err := contract.NextStatus(contract.StatusDraft)
	require.NoError(t, err)
	assert.Equal(t, contract.StatusPending, next)

	next, err = contract.NextStatus(contract.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, contract.StatusCompleted, next)

	signer, err := contract.SignerFor(contract.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, contract.PartyWorker, signer)
}

func TestParseStatus_LegacySignedIsPending(t *testing.T) {
	s, err := contract.ParseStatus("signed")
	require.NoError(t, err)
	assert.Equal(t, contract.StatusPending, s)

	_, err = contract.ParseStatus("archived")
	assert.ErrorIs(t, err, contract.ErrInvalidInput)
}

func TestStatus_StoredNamesParseBack(t *testing.T) {
	for _, status := range []contract.Status{contract.StatusDraft, contract.StatusPending, contract.StatusCompleted} {
		for _, name := range status.StoredNames() {
			got, err := contract.ParseStatus(name)
			require.NoError(t, err)
			assert.Equal(t, status, got, name)
		}
	}
	assert.ElementsMatch(t, []string{"pending", "signed"}, contract.StatusPending.StoredNames())
}

// =============================================================================
// SOFT DELETE
// =============================================================================

func TestSoftDelete_OnlyHidesForActingParty(t *testing.T) {
	c, err := contract.SoftDelete(draftContract(), contract.PartyWorker)
	require.NoError(t, err)

	assert.False(t, c.VisibleTo(contract.PartyWorker))
	assert.True(t, c.VisibleTo(contract.PartyEmployer))
	assert.Equal(t, contract.StatusDraft, c.Status)
}

func TestRateYear_DependsOnLifecycle(t *testing.T) {
	now := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	c := draftContract()
	assert.Equal(t, 2026, c.RateYear(now))

	c = signed(t, c, contract.PartyEmployer, created)
	c = signed(t, c, contract.PartyWorker, created)
	assert.Equal(t, 2025, c.RateYear(now))
}
