package sqlite

import "strings"

// Schema DDL for the clinic's operational tables. Timestamps are stored as
// RFC3339-ish UTC text with millisecond precision; created_at defaults are
// applied by SQLite so generically inserted rows still get stamped.
const (
	sqlNowUTC = "(strftime('%Y-%m-%dT%H:%M:%fZ','now'))"

	createPatients = `CREATE TABLE IF NOT EXISTS patients (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    full_name TEXT NOT NULL,
    phone TEXT,
    email TEXT,
    birth_date TEXT,
    gender TEXT,
    address TEXT,
    notes TEXT,
    created_at TEXT NOT NULL DEFAULT ` + sqlNowUTC + `,
    updated_at TEXT NOT NULL DEFAULT ` + sqlNowUTC + `
);`

	createDoctors = `CREATE TABLE IF NOT EXISTS doctors (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    full_name TEXT NOT NULL,
    phone TEXT,
    email TEXT,
    specialty TEXT,
    working_days TEXT,
    created_at TEXT NOT NULL DEFAULT ` + sqlNowUTC + `,
    updated_at TEXT NOT NULL DEFAULT ` + sqlNowUTC + `
);`

	createAppointments = `CREATE TABLE IF NOT EXISTS appointments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    patient_id INTEGER REFERENCES patients(id),
    doctor_id INTEGER REFERENCES doctors(id),
    scheduled_at TEXT,
    duration_minutes INTEGER NOT NULL DEFAULT 30,
    reason TEXT,
    status TEXT NOT NULL DEFAULT 'scheduled',
    created_at TEXT NOT NULL DEFAULT ` + sqlNowUTC + `,
    updated_at TEXT NOT NULL DEFAULT ` + sqlNowUTC + `
);`

	createTransactions = `CREATE TABLE IF NOT EXISTS transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    patient_id INTEGER REFERENCES patients(id),
    appointment_id INTEGER REFERENCES appointments(id),
    amount REAL NOT NULL DEFAULT 0,
    direction TEXT NOT NULL DEFAULT 'income',
    method TEXT,
    description TEXT,
    created_at TEXT NOT NULL DEFAULT ` + sqlNowUTC + `,
    updated_at TEXT NOT NULL DEFAULT ` + sqlNowUTC + `
);`

	createUsers = `CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    display_name TEXT,
    role TEXT NOT NULL DEFAULT 'staff',
    phone TEXT,
    created_at TEXT NOT NULL DEFAULT ` + sqlNowUTC + `,
    updated_at TEXT NOT NULL DEFAULT ` + sqlNowUTC + `
);`

	createNotifications = `CREATE TABLE IF NOT EXISTS notifications (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    appointment_id INTEGER REFERENCES appointments(id),
    channel TEXT NOT NULL,
    recipient TEXT NOT NULL,
    message TEXT,
    status TEXT NOT NULL DEFAULT 'queued',
    created_at TEXT NOT NULL DEFAULT ` + sqlNowUTC + `,
    updated_at TEXT NOT NULL DEFAULT ` + sqlNowUTC + `
);`

	createBackups = `CREATE TABLE IF NOT EXISTS backups (
    id TEXT PRIMARY KEY,
    backup_name TEXT NOT NULL,
    backup_type TEXT NOT NULL DEFAULT 'manual',
    file_path TEXT,
    file_size INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'pending',
    error TEXT,
    created_at TEXT NOT NULL DEFAULT ` + sqlNowUTC + `,
    completed_at TEXT
);`
)

// schemaSQL returns the full DDL. All statements are idempotent so Attach
// can run against an existing database.
func schemaSQL() string {
	return strings.Join([]string{
		createPatients,
		createDoctors,
		createAppointments,
		createTransactions,
		createUsers,
		createNotifications,
		createBackups,
	}, "\n")
}
