package roster

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Column names recognized in the CSV header (case-insensitive).
const (
	colUsername    = "username"
	colDisplayName = "displayname"
	colPassword    = "password"
	colEmail       = "email"
	colGroups      = "groups"
	colSubadmin    = "subadmin"
	colQuota       = "quota"
	colEnabled     = "enabled"
)

// Read loads and normalizes the roster from the configured CSV file.
// The first row is the header; columns are matched by name, so column order
// does not matter and unknown columns are ignored.
func Read(cfg Config) ([]Record, error) {
	f, err := os.Open(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("open roster file: %w", err)
	}
	defer f.Close()

	delimiter := ','
	if cfg.Delimiter != "" {
		delimiter = []rune(cfg.Delimiter)[0]
	}

	reader := csv.NewReader(f)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true
	// Rows may legitimately leave trailing columns empty.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse roster file %s: %w", cfg.File, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("roster file %s has no data rows", cfg.File)
	}

	index := headerIndex(rows[0])
	if _, ok := index[colUsername]; !ok {
		return nil, fmt.Errorf("roster file %s has no %q column", cfg.File, colUsername)
	}

	groupDelim := cfg.GroupDelimiter
	if groupDelim == "" {
		groupDelim = ","
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := Record{
			Username:    field(row, index, colUsername),
			DisplayName: field(row, index, colDisplayName),
			Password:    field(row, index, colPassword),
			Email:       field(row, index, colEmail),
			Quota:       field(row, index, colQuota),
			Groups:      splitGroups(field(row, index, colGroups), groupDelim),
			Subadmin:    splitGroups(field(row, index, colSubadmin), groupDelim),
			Enabled:     parseEnabled(field(row, index, colEnabled)),
		}
		if rec.Quota == "" {
			rec.Quota = cfg.DefaultQuota
		}
		records = append(records, rec.Normalize())
	}

	return records, nil
}

// EnsurePasswords fills in a generated password for every valid record that
// has none. Mutates the slice in place.
func EnsurePasswords(records []Record, gen *PasswordGenerator) error {
	for i := range records {
		if !records[i].Valid() || records[i].Password != "" {
			continue
		}
		pw, err := gen.Generate()
		if err != nil {
			return fmt.Errorf("generate password for %s: %w", records[i].Username, err)
		}
		records[i].Password = pw
	}
	return nil
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
		if name != "" {
			index[name] = i
		}
	}
	return index
}

func field(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func splitGroups(value, delimiter string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, delimiter)
}

// parseEnabled treats an absent column as enabled; only an explicit negative
// value disables the account.
func parseEnabled(value string) bool {
	switch strings.ToLower(value) {
	case "0", "false", "no", "disabled":
		return false
	default:
		return true
	}
}
