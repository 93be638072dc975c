package instance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/locallibrary/internal/core/instance"
	"github.com/taibuivan/locallibrary/internal/testutil"
	"github.com/taibuivan/locallibrary/pkg/date"
)

/*
TestIsOverdue is true only for on-loan copies due before today.
*/
func TestIsOverdue(t *testing.T) {
	today := date.MustParse("2026-10-14")

	tests := []struct {
		name    string
		status  instance.Status
		dueBack *date.Date
		want    bool
	}{
		{"on_loan_past_due", instance.StatusOnLoan, testutil.Ptr(today.AddDays(-1)), true},
		{"on_loan_due_today", instance.StatusOnLoan, testutil.Ptr(today), false},
		{"on_loan_future", instance.StatusOnLoan, testutil.Ptr(today.AddDays(7)), false},
		{"reserved_past_due", instance.StatusReserved, testutil.Ptr(today.AddDays(-3)), false},
		{"available", instance.StatusAvailable, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject := &instance.Instance{Status: tt.status, DueBack: tt.dueBack}
			assert.Equal(t, tt.want, subject.IsOverdue(today))
		})
	}
}

/*
TestStatus covers validity, labels and which statuses clear the due date.
*/
func TestStatus(t *testing.T) {
	for _, status := range instance.Statuses() {
		assert.True(t, status.IsValid(), status)
	}
	assert.False(t, instance.Status("lost").IsValid())

	assert.Equal(t, "On loan", instance.StatusOnLoan.Label())
	assert.True(t, instance.StatusAvailable.ClearsDueBack())
	assert.True(t, instance.StatusMaintenance.ClearsDueBack())
	assert.False(t, instance.StatusReserved.ClearsDueBack())
	assert.False(t, instance.StatusOnLoan.ClearsDueBack())
}
