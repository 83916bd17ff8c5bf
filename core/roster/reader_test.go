package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead(t *testing.T) {
	path := writeRoster(t, `username;displayname;password;email;groups;subadmin;quota
jmueller;Jörg Müller;secret1;joerg@example.org;staff,it;it;5GB
asmith;;;alice@example.org;staff;;
`)

	records, err := Read(Config{File: path, Delimiter: ";", GroupDelimiter: ",", DefaultQuota: "1GB"})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "jmueller", records[0].Username)
	assert.Equal(t, "Jörg Müller", records[0].DisplayName)
	assert.Equal(t, []string{"staff", "it"}, records[0].Groups)
	assert.Equal(t, []string{"it"}, records[0].Subadmin)
	assert.Equal(t, "5GB", records[0].Quota)
	assert.True(t, records[0].Enabled)

	// Empty displayname falls back to the username, empty quota to the default.
	assert.Equal(t, "asmith", records[1].DisplayName)
	assert.Equal(t, "1GB", records[1].Quota)
	assert.Empty(t, records[1].Password)
}

func TestRead_TransliteratesUsernames(t *testing.T) {
	path := writeRoster(t, "username;displayname\nbjörn;Björn\n")

	records, err := Read(Config{File: path, Delimiter: ";"})
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "bjoern", records[0].Username)
	// The display name keeps its original spelling.
	assert.Equal(t, "Björn", records[0].DisplayName)
}

func TestRead_EnabledColumn(t *testing.T) {
	path := writeRoster(t, "username;enabled\nactive;yes\ninactive;false\nunset;\n")

	records, err := Read(Config{File: path, Delimiter: ";"})
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.True(t, records[0].Enabled)
	assert.False(t, records[1].Enabled)
	assert.True(t, records[2].Enabled)
}

func TestRead_StripsHeaderBOM(t *testing.T) {
	// Spreadsheet exports commonly prefix the file with a UTF-8 BOM, which
	// ends up glued to the first header name.
	path := writeRoster(t, "\uFEFFusername;email\nalice;alice@example.org\n")

	records, err := Read(Config{File: path, Delimiter: ";"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "alice", records[0].Username)
}

func TestRead_MultiByteDelimiter(t *testing.T) {
	path := writeRoster(t, "username¦email\nalice¦alice@example.org\n")

	records, err := Read(Config{File: path, Delimiter: "¦"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "alice", records[0].Username)
	assert.Equal(t, "alice@example.org", records[0].Email)
}

func TestRead_MissingUsernameColumn(t *testing.T) {
	path := writeRoster(t, "displayname;email\nAlice;alice@example.org\n")

	_, err := Read(Config{File: path, Delimiter: ";"})
	assert.Error(t, err)
}

func TestRead_KeepsMalformedRows(t *testing.T) {
	path := writeRoster(t, "username;email\n;noname@example.org\nbob;bob@example.org\n")

	records, err := Read(Config{File: path, Delimiter: ";"})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.False(t, records[0].Valid())
	assert.True(t, records[1].Valid())
}

func TestTransliterate(t *testing.T) {
	assert.Equal(t, "AeOeUessae", Transliterate("ÄÖÜßä"))
	assert.Equal(t, "Thorvald", Transliterate("Þorvald"))
	assert.Equal(t, "plain.name", Transliterate("plain.name"))
}

func TestEnsurePasswords(t *testing.T) {
	gen, err := NewPasswordGenerator(12)
	require.NoError(t, err)

	records := []Record{
		{Username: "alice"},
		{Username: "bob", Password: "kept"},
		{}, // malformed, must stay untouched
	}
	require.NoError(t, EnsurePasswords(records, gen))

	assert.Len(t, records[0].Password, 12)
	assert.Equal(t, "kept", records[1].Password)
	assert.Empty(t, records[2].Password)
}
