package handlers

import "github.com/docslot/docslot-api/internal/models"

// earnings sums the amounts of appointments that were either completed or
// paid for.
func earnings(appointments []models.Appointment) int64 {
	var total int64
	for _, apt := range appointments {
		if apt.Status == models.StatusCompleted || apt.Paid {
			total += apt.Amount
		}
	}
	return total
}

// distinctPatients counts unique patients across the appointments.
func distinctPatients(appointments []models.Appointment) int {
	seen := make(map[string]struct{}, len(appointments))
	for _, apt := range appointments {
		seen[apt.UserID.Hex()] = struct{}{}
	}
	return len(seen)
}

// latest returns up to n appointments from the head of the list. Callers
// query newest-first, so this is the most recent activity.
func latest(appointments []models.Appointment, n int) []models.Appointment {
	if len(appointments) < n {
		n = len(appointments)
	}
	return appointments[:n]
}
