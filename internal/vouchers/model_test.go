package vouchers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func voucherFixture() Voucher {
	return Voucher{
		Code:            "KHAM20",
		DiscountPercent: 20,
		ExpiryDate:      time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC),
		IsActive:        true,
	}
}

func TestVoucherValidate(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		v := voucherFixture()
		ok, reason := v.Validate(now)
		assert.True(t, ok)
		assert.Empty(t, reason)
	})

	t.Run("expired", func(t *testing.T) {
		v := voucherFixture()
		v.ExpiryDate = now.Add(-time.Hour)
		ok, reason := v.Validate(now)
		assert.False(t, ok)
		assert.Equal(t, "Mã giảm giá đã hết hạn", reason)
	})

	t.Run("inactive", func(t *testing.T) {
		v := voucherFixture()
		v.IsActive = false
		ok, reason := v.Validate(now)
		assert.False(t, ok)
		assert.Equal(t, "Mã giảm giá đã bị vô hiệu hóa", reason)
	})

	t.Run("exhausted", func(t *testing.T) {
		max := int64(5)
		v := voucherFixture()
		v.MaxUses = &max
		v.UsedCount = 5
		ok, reason := v.Validate(now)
		assert.False(t, ok)
		assert.Equal(t, "Mã giảm giá đã hết lượt sử dụng", reason)
	})

	t.Run("unlimited uses", func(t *testing.T) {
		v := voucherFixture()
		v.UsedCount = 1_000_000
		ok, _ := v.Validate(now)
		assert.True(t, ok)
	})

	t.Run("expired wins over inactive and exhausted", func(t *testing.T) {
		max := int64(1)
		v := voucherFixture()
		v.ExpiryDate = now.Add(-time.Hour)
		v.IsActive = false
		v.MaxUses = &max
		v.UsedCount = 9
		ok, reason := v.Validate(now)
		assert.False(t, ok)
		assert.Equal(t, "Mã giảm giá đã hết hạn", reason)
	})

	t.Run("inactive wins over exhausted", func(t *testing.T) {
		max := int64(1)
		v := voucherFixture()
		v.IsActive = false
		v.MaxUses = &max
		v.UsedCount = 9
		ok, reason := v.Validate(now)
		assert.False(t, ok)
		assert.Equal(t, "Mã giảm giá đã bị vô hiệu hóa", reason)
	})

	t.Run("boundary is inclusive of expiry instant", func(t *testing.T) {
		v := voucherFixture()
		v.ExpiryDate = now
		ok, _ := v.Validate(now)
		assert.True(t, ok)
	})
}
