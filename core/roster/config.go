package roster

// Config holds settings for reading the roster CSV.
type Config struct {
	// File is the path to the roster CSV.
	File string `mapstructure:"file" default:"users.csv"`
	// Delimiter separates the CSV columns.
	Delimiter string `mapstructure:"delimiter" default:";"`
	// GroupDelimiter separates multiple groups inside one field.
	GroupDelimiter string `mapstructure:"group_delimiter" default:","`
	// GeneratePasswords fills in a random password for rows without one.
	GeneratePasswords bool `mapstructure:"generate_passwords" default:"true"`
	// PasswordLength is the length of generated passwords (minimum 4).
	PasswordLength int `mapstructure:"password_length" default:"12"`
	// DefaultQuota is assigned to rows without a quota column value.
	DefaultQuota string `mapstructure:"default_quota" default:"1GB"`
}
