package sqlite

import "fmt"

// migrations is the fixed, ordered, forward-only migration list. Each
// entry runs at most once: applied names are recorded in the migrations
// ledger and skipped on later startups. There are no down-migrations.
var migrations = []struct {
	name string
	ddl  string
}{
	{
		name: "001_create_pets_table",
		ddl: `CREATE TABLE IF NOT EXISTS pets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			species TEXT NOT NULL,
			birth_date DATE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	},
	{
		name: "002_create_food_types_table",
		ddl: `CREATE TABLE IF NOT EXISTS food_types (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			brand TEXT,
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	},
	{
		name: "003_create_feeding_schedules_table",
		ddl: `CREATE TABLE IF NOT EXISTS feeding_schedules (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			time TEXT NOT NULL,
			food_type_id INTEGER NOT NULL,
			is_active BOOLEAN DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (food_type_id) REFERENCES food_types(id)
		)`,
	},
	{
		name: "004_create_feeding_records_table",
		ddl: `CREATE TABLE IF NOT EXISTS feeding_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			feeding_schedule_id INTEGER NOT NULL,
			actual_time DATETIME NOT NULL,
			completed BOOLEAN NOT NULL,
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (feeding_schedule_id) REFERENCES feeding_schedules(id)
		)`,
	},
	{
		name: "005_create_weight_records_table",
		ddl: `CREATE TABLE IF NOT EXISTS weight_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pet_id INTEGER NOT NULL,
			weight DECIMAL(5,2) NOT NULL,
			recorded_date DATE NOT NULL,
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (pet_id) REFERENCES pets(id)
		)`,
	},
	{
		name: "006_create_maintenance_records_table",
		ddl: `CREATE TABLE IF NOT EXISTS maintenance_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			type TEXT NOT NULL CHECK (type IN ('water', 'toilet')),
			performed_at DATETIME NOT NULL,
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	},
}

// Migrate brings the schema up to date. It is idempotent and safe to call
// on every startup; a failing migration is fatal to the caller because a
// partial schema would corrupt data silently.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`CREATE TABLE IF NOT EXISTS migrations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		executed_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating migrations ledger: %w", err)
	}

	applied := make(map[string]bool, len(migrations))
	rows, err := db.conn.Query(`SELECT name FROM migrations`)
	if err != nil {
		return fmt.Errorf("reading migrations ledger: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scanning migration name: %w", err)
		}
		applied[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating migrations ledger: %w", err)
	}

	for _, m := range migrations {
		if applied[m.name] {
			continue
		}
		if _, err := db.conn.Exec(m.ddl); err != nil {
			return fmt.Errorf("migration %s: %w", m.name, err)
		}
		if _, err := db.conn.Exec(`INSERT INTO migrations (name) VALUES (?)`, m.name); err != nil {
			return fmt.Errorf("recording migration %s: %w", m.name, err)
		}
	}

	return nil
}
