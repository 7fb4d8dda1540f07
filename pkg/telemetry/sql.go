package telemetry

import (
	"database/sql"
)

func buildCreateResponsesTable() string {
	return `CREATE TABLE IF NOT EXISTS responses (
		url TEXT PRIMARY KEY,
		body BLOB NOT NULL,
		fetched_at INTEGER NOT NULL);`
}

func buildSelectResponseCommand() (string, func(*sql.Rows) ([]byte, bool, error)) {
	return `SELECT body FROM responses WHERE url = ?`, processSelectResponseRows
}

func processSelectResponseRows(rows *sql.Rows) ([]byte, bool, error) {
	defer rows.Close()

	// only can be one row
	if rows.Next() {
		var body []byte
		err := rows.Scan(&body)
		if err != nil {
			return nil, false, err
		}
		return body, true, nil
	}
	return nil, false, rows.Err()
}

func buildUpsertResponseCommand() string {
	return `INSERT OR REPLACE INTO responses (url, body, fetched_at) VALUES (?, ?, ?)`
}
