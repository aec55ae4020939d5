package enums

import (
	"fmt"
	"strings"
)

// PaymentChannel describes how a sale was settled at the register.
type PaymentChannel string

const (
	PaymentChannelCheque PaymentChannel = "cheque"
	PaymentChannelCard   PaymentChannel = "card"
	PaymentChannelCash   PaymentChannel = "cash"
	PaymentChannelOther  PaymentChannel = "other"
)

var validPaymentChannels = []PaymentChannel{
	PaymentChannelCheque,
	PaymentChannelCard,
	PaymentChannelCash,
	PaymentChannelOther,
}

// String implements fmt.Stringer.
func (p PaymentChannel) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentChannel.
func (p PaymentChannel) IsValid() bool {
	for _, candidate := range validPaymentChannels {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentChannel converts raw input into a PaymentChannel.
func ParsePaymentChannel(value string) (PaymentChannel, error) {
	for _, candidate := range validPaymentChannels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment channel %q", value)
}

// NormalizePaymentChannel folds the spellings the three ledgers use into
// the canonical channel set. Anything unrecognized becomes Other.
func NormalizePaymentChannel(raw string) PaymentChannel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "cheque", "check", "chq":
		return PaymentChannelCheque
	case "card", "cb", "carte":
		return PaymentChannelCard
	case "cash", "especes", "espèces":
		return PaymentChannelCash
	default:
		return PaymentChannelOther
	}
}
