package vouchers

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Voucher is a discount code. Codes are stored uppercase; MaxUses nil
// means unlimited.
type Voucher struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Code            string             `bson:"code" json:"code"`
	DiscountPercent int                `bson:"discountPercent" json:"discountPercent"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	ExpiryDate      time.Time          `bson:"expiryDate" json:"expiryDate"`
	MaxUses         *int64             `bson:"maxUses,omitempty" json:"maxUses,omitempty"`
	UsedCount       int64              `bson:"usedCount" json:"usedCount"`
	IsActive        bool               `bson:"isActive" json:"isActive"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the voucher against now. The checks run in a fixed
// order and the first failure decides the message: expiry, then active
// flag, then usage limit.
func (v *Voucher) Validate(now time.Time) (bool, string) {
	if now.After(v.ExpiryDate) {
		return false, "Mã giảm giá đã hết hạn"
	}
	if !v.IsActive {
		return false, "Mã giảm giá đã bị vô hiệu hóa"
	}
	if v.MaxUses != nil && v.UsedCount >= *v.MaxUses {
		return false, "Mã giảm giá đã hết lượt sử dụng"
	}
	return true, ""
}
