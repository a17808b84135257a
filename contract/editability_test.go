package contract_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/contract-engine/contract"
)

const grace = 7

func daysAfter(n int) time.Time {
	return created.Add(time.Duration(n) * 24 * time.Hour)
}

func TestIsEditable_InclusiveBoundary(t *testing.T) {
	assert.True(t, contract.IsEditable(created, created, grace))
	assert.True(t, contract.IsEditable(created, daysAfter(grace), grace))
	assert.False(t, contract.IsEditable(created, daysAfter(grace+1), grace))
}

func TestIsEditable_WholeDays(t *testing.T) {
	// 7 days and 23 hours is still 7 whole days
	almost := daysAfter(grace).Add(23 * time.Hour)
	assert.True(t, contract.IsEditable(created, almost, grace))
}

func TestIsEditable_NowBeforeCreation(t *testing.T) {
	assert.True(t, contract.IsEditable(created, created.Add(-time.Hour), grace))
	assert.Equal(t, grace, contract.RemainingEditDays(created, created.Add(-time.Hour), grace))
}

func TestRemainingEditDays_NeverNegative(t *testing.T) {
	assert.Equal(t, 7, contract.RemainingEditDays(created, created, grace))
	assert.Equal(t, 4, contract.RemainingEditDays(created, daysAfter(3), grace))
	assert.Equal(t, 0, contract.RemainingEditDays(created, daysAfter(grace), grace))
	assert.Equal(t, 0, contract.RemainingEditDays(created, daysAfter(100), grace))
}

func TestCheckUpdate_ContentLockedAfterWindow(t *testing.T) {
	c := draftContract()
	late := daysAfter(grace + 1)

	err := contract.CheckUpdate(c, []contract.Field{contract.FieldWage, contract.FieldWorkerSignature}, late, grace)
	require.ErrorIs(t, err, contract.ErrEditWindowClosed)

	var windowErr *contract.EditWindowClosedError
	require.True(t, errors.As(err, &windowErr))
	assert.Equal(t, []contract.Field{contract.FieldWage}, windowErr.Fields)
	assert.Equal(t, grace+1, windowErr.ElapsedDays)
}

func TestCheckUpdate_SignaturesAlwaysAllowed(t *testing.T) {
	c := draftContract()
	fields := []contract.Field{contract.FieldEmployerSignature, contract.FieldWorkerSignature, contract.FieldStatus}

	assert.NoError(t, contract.CheckUpdate(c, fields, daysAfter(365), grace))
}

func TestCheckUpdate_WithinWindow(t *testing.T) {
	c := draftContract()
	assert.NoError(t, contract.CheckUpdate(c, []contract.Field{contract.FieldSchedule}, daysAfter(2), grace))
}
