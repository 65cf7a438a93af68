package domain

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusRAC       BookingStatus = "RAC"
	StatusWL        BookingStatus = "WL"
	StatusCancelled BookingStatus = "CANCELLED"
)

// Upgradable reports whether a booking in this status may still move up.
func (s BookingStatus) Upgradable() bool {
	return s == StatusRAC || s == StatusWL
}

// UpgradeType tags an upgrade_history entry with what triggered it.
type UpgradeType string

const (
	UpgradeLuckyConfirm UpgradeType = "lucky_confirm"
	UpgradeAuto         UpgradeType = "auto_upgrade"
	UpgradeCancellation UpgradeType = "cancellation_upgrade"
)

// CoinResult is the user-facing label of a lucky-confirm coin flip.
type CoinResult string

const (
	CoinHeads CoinResult = "HEADS"
	CoinTails CoinResult = "TAILS"
)
