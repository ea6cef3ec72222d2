package purchase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/layby/internal/purchase"
)

func TestEffectiveStatus(t *testing.T) {
	due := now.AddDate(0, 0, -10)

	active := func() *purchase.Purchase {
		p := newCredit(t, "100")
		p.DueDate = &due

		return p
	}

	t.Run("OverdueAfterGrace", func(t *testing.T) {
		p := active()
		assert.Equal(t, purchase.StatusOverdue, purchase.EffectiveStatus(p, now))
		assert.Equal(t, purchase.StatusActive, p.Status, "overdue is never stored")
	})

	t.Run("WithinGrace", func(t *testing.T) {
		p := active()
		assert.Equal(t, purchase.StatusActive, purchase.EffectiveStatus(p, due.AddDate(0, 0, 3)))
		assert.Equal(t, purchase.StatusOverdue, purchase.EffectiveStatus(p, due.AddDate(0, 0, 3).Add(time.Second)))
	})

	t.Run("CompletedRegardlessOfDueDate", func(t *testing.T) {
		p := active()
		_, err := p.ApplyPayment(p.Outstanding(), now)
		require.NoError(t, err)
		assert.Equal(t, purchase.StatusCompleted, purchase.EffectiveStatus(p, now))
	})

	t.Run("CompletedEvenIfStoredActive", func(t *testing.T) {
		p := active()
		p.AmountPaid = p.Total
		assert.Equal(t, purchase.StatusCompleted, purchase.EffectiveStatus(p, now))
	})

	t.Run("DefaultedStaysDefaulted", func(t *testing.T) {
		p := active()
		require.NoError(t, p.MarkDefaulted(now))
		assert.Equal(t, purchase.StatusDefaulted, purchase.EffectiveStatus(p, now))
	})

	t.Run("CancelledNeverCompletes", func(t *testing.T) {
		p := newCredit(t, "0")
		require.NoError(t, p.Cancel(now))
		p.AmountPaid = p.Total
		assert.Equal(t, purchase.StatusCancelled, purchase.EffectiveStatus(p, now))
	})

	t.Run("NoDueDate", func(t *testing.T) {
		p := newCredit(t, "100")
		p.DueDate = nil
		assert.Equal(t, purchase.StatusActive, purchase.EffectiveStatus(p, now.AddDate(5, 0, 0)))
	})
}

func TestStoredCandidates(t *testing.T) {
	assert.Equal(t, []purchase.Status{purchase.StatusActive}, purchase.StoredCandidates(purchase.StatusOverdue))
	assert.Contains(t, purchase.StoredCandidates(purchase.StatusCompleted), purchase.StatusActive)
	assert.Equal(t, []purchase.Status{purchase.StatusDefaulted}, purchase.StoredCandidates(purchase.StatusDefaulted))
}
