package sqlstore

// The two dialects differ only in the primary key and timestamp columns;
// appointment_date is ISO text in both so the repo code stays identical.

const pgSchema = `CREATE TABLE IF NOT EXISTS appointments (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(50) NOT NULL,
	last_name VARCHAR(50) NOT NULL,
	dni VARCHAR(8) NOT NULL,
	phone VARCHAR(15) NOT NULL,
	district VARCHAR(20) NOT NULL,
	appointment_date VARCHAR(10) NOT NULL,
	appointment_time VARCHAR(5) NOT NULL,
	"procedure" VARCHAR(100) NOT NULL,
	profession VARCHAR(50) NOT NULL,
	observations TEXT NOT NULL DEFAULT '',
	status VARCHAR(16) NOT NULL DEFAULT 'active',
	created_at TIMESTAMPTZ NOT NULL
)`

const sqliteSchema = `CREATE TABLE IF NOT EXISTS appointments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name VARCHAR(50) NOT NULL,
	last_name VARCHAR(50) NOT NULL,
	dni VARCHAR(8) NOT NULL,
	phone VARCHAR(15) NOT NULL,
	district VARCHAR(20) NOT NULL,
	appointment_date VARCHAR(10) NOT NULL,
	appointment_time VARCHAR(5) NOT NULL,
	"procedure" VARCHAR(100) NOT NULL,
	profession VARCHAR(50) NOT NULL,
	observations TEXT NOT NULL DEFAULT '',
	status VARCHAR(16) NOT NULL DEFAULT 'active',
	created_at TIMESTAMP NOT NULL
)`

const dniIndex = `CREATE INDEX IF NOT EXISTS appointments_dni_idx ON appointments (dni)`

func schemaStatements(driver string) []string {
	table := sqliteSchema
	if driver == DriverPostgres {
		table = pgSchema
	}
	return []string{table, dniIndex}
}
