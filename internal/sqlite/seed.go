// This file implements demo fixture seeding, used by "clinichub init --seed"
// and by tests that need populated searchable tables.
package sqlite

import (
	"fmt"

	"github.com/oakridgedental/clinichub/pkg/types"
)

// seedRow pairs a table with one demo record.
type seedRow struct {
	table  string
	record types.Record
}

// seedRows are inserted in order so foreign keys resolve.
var seedRows = []seedRow{
	{"doctors", types.Record{"full_name": "Dr. Ahmed Hassan", "phone": "+20100000001", "specialty": "Orthodontics", "working_days": "Sun,Tue,Thu"}},
	{"doctors", types.Record{"full_name": "Dr. Mona Khalil", "phone": "+20100000002", "specialty": "Endodontics", "working_days": "Mon,Wed"}},
	{"patients", types.Record{"full_name": "Ahmed Samir", "phone": "+20111111111", "email": "ahmed.samir@example.com", "gender": "male"}},
	{"patients", types.Record{"full_name": "Sara Fawzy", "phone": "+20122222222", "email": "sara.fawzy@example.com", "gender": "female", "notes": "allergic to penicillin"}},
	{"patients", types.Record{"full_name": "Omar Adel", "phone": "+20133333333", "email": "omar.adel@example.com", "gender": "male"}},
	{"appointments", types.Record{"patient_id": 1, "doctor_id": 1, "scheduled_at": "2026-09-01T10:00:00Z", "reason": "braces adjustment", "status": "scheduled"}},
	{"appointments", types.Record{"patient_id": 2, "doctor_id": 2, "scheduled_at": "2026-09-02T12:30:00Z", "reason": "root canal follow-up", "status": "confirmed"}},
	{"transactions", types.Record{"patient_id": 1, "appointment_id": 1, "amount": 450.0, "direction": "income", "method": "cash", "description": "braces adjustment session"}},
	{"users", types.Record{"username": "reception", "display_name": "Front Desk", "role": "staff"}},
	{"users", types.Record{"username": "admin", "display_name": "Clinic Admin", "role": "admin"}},
}

// Seed inserts the demo fixtures through the generic insert path. Calling
// it on a populated database duplicates rows, so callers gate it behind an
// explicit flag.
func (b *Backend) Seed() error {
	for _, row := range seedRows {
		if _, _, err := b.InsertRow(row.table, row.record); err != nil {
			return fmt.Errorf("seeding %s: %w", row.table, err)
		}
	}
	return nil
}
