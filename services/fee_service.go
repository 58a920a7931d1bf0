package services

import (
	"classtrack_go/models"
)

// SessionFee returns the fee one attendance record contributes, given the
// owning class. Excused sessions never charge. Makeup sessions charge the
// record's own fee when set, otherwise the class default. Every other status
// (present, late, absent) charges the class default - absence does not waive
// the session fee. A nil class charges nothing.
func SessionFee(record models.AttendanceRecord, class *models.Class) int64 {
	if record.Status == models.StatusExcused {
		return 0
	}
	var sessionFee int64
	if class != nil {
		sessionFee = class.FeePerSession
	}
	if record.Status == models.StatusMakeup {
		if record.Fee > 0 {
			return record.Fee
		}
		return sessionFee
	}
	return sessionFee
}

// BuildClassIndex maps class IDs to classes for fee lookups.
func BuildClassIndex(classes []models.Class) map[uint]*models.Class {
	index := make(map[uint]*models.Class, len(classes))
	for i := range classes {
		index[classes[i].ID] = &classes[i]
	}
	return index
}

// IsChargeableStatus reports whether a status contributes to fee totals.
func IsChargeableStatus(status string) bool {
	return status != models.StatusExcused
}

// IsValidAttendanceStatus reports whether s is one of the five statuses.
func IsValidAttendanceStatus(s string) bool {
	switch s {
	case models.StatusPresent, models.StatusAbsent, models.StatusLate, models.StatusExcused, models.StatusMakeup:
		return true
	}
	return false
}
