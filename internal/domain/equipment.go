package domain

import "time"

type EquipmentType string

const (
	TypeTurnstile       EquipmentType = "turnstile"
	TypePaymentTerminal EquipmentType = "payment_terminal"
)

func (t EquipmentType) Valid() bool {
	return t == TypeTurnstile || t == TypePaymentTerminal
}

type EquipmentStatus string

const (
	StatusOperational      EquipmentStatus = "operational"
	StatusFailed           EquipmentStatus = "failed"
	StatusUnderMaintenance EquipmentStatus = "under_maintenance"
)

func (s EquipmentStatus) Valid() bool {
	return s == StatusOperational || s == StatusFailed || s == StatusUnderMaintenance
}

type Equipment struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Type            EquipmentType   `json:"type"`
	Location        string          `json:"location"`
	Status          EquipmentStatus `json:"status"`
	LastMaintenance *time.Time      `json:"last_maintenance,omitempty"`
	LastFailure     *time.Time      `json:"last_failure,omitempty"`
	FailureCount    int             `json:"failure_count"`
	Uptime          float64         `json:"uptime"` // fraction in [0,1]
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// FailureModes lists the known failure modes for an equipment type, most
// common first. Used as a fallback when the failure history gives no better
// candidate for a prediction's expected failure.
func FailureModes(t EquipmentType) []string {
	switch t {
	case TypeTurnstile:
		return []string{
			"drive motor",
			"passage sensor",
			"mechanical arm",
			"card reader",
			"control board",
			"locking system",
		}
	case TypePaymentTerminal:
		return []string{
			"card reader",
			"touchscreen",
			"receipt printer",
			"network link",
			"PIN pad",
			"NFC module",
		}
	default:
		return nil
	}
}
