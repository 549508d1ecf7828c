package model

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// maxPaise 金额上限，保证累加不溢出
const maxPaise = math.MaxInt64 / 2

// PaiseFromRupees 将金额（元）转换为分，最多两位小数
func PaiseFromRupees(amount decimal.Decimal) (int64, error) {
	paise := amount.Shift(2)
	if !paise.IsInteger() {
		return 0, fmt.Errorf("amount %s has more than two decimal places", amount.String())
	}
	// IntPart 只保留低 64 位，超出范围的值必须先拒绝
	if paise.Abs().GreaterThan(decimal.NewFromInt(maxPaise)) {
		return 0, fmt.Errorf("amount %s is out of range", amount.String())
	}
	return paise.IntPart(), nil
}

// RupeesFromPaise 分转换为两位小数的金额字符串
func RupeesFromPaise(paise int64) string {
	return decimal.New(paise, -2).StringFixed(2)
}
