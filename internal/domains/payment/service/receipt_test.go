package service

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sportify-backend/internal/domains/payment/model"
)

func TestNewReceipt_Format(t *testing.T) {
	r := NewReceipt()

	assert.True(t, strings.HasPrefix(r, "receipt_"))
	assert.Len(t, r, model.MaxReceiptLength)
	assert.Regexp(t, `^receipt_[0-9a-f]{32}$`, r)
}

func TestNewReceipt_UniqueUnderConcurrency(t *testing.T) {
	const n = 1000

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, n)
		wg   sync.WaitGroup
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := NewReceipt()
			mu.Lock()
			seen[r] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
}

func TestLegacyReceipt_CollidesWithinMillisecond(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	assert.Equal(t, "receipt_1700000000123", LegacyReceipt(now))
	assert.Equal(t, LegacyReceipt(now), LegacyReceipt(now.Add(500*time.Microsecond)))
	assert.NotEqual(t, LegacyReceipt(now), LegacyReceipt(now.Add(time.Millisecond)))
}
