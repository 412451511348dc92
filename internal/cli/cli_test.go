package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/havanahub/investors/internal/models"
	"github.com/havanahub/investors/internal/storage"
)

// setupStore points the commands at a file store in a temporary directory.
func setupStore(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HAVANA_CONFIG", "")
	t.Setenv("HAVANA_STORAGE_DRIVER", "file")
	t.Setenv("DB_PATH", dir)
	return dir
}

type result struct {
	status subcommands.ExitStatus
	stdout string
	stderr string
}

func run(t *testing.T, cmd subcommands.Command, input string, args ...string) result {
	t.Helper()

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse(args))

	var out, errOut bytes.Buffer
	oldIn, oldOut, oldErr := stdin, stdout, stderr
	stdin, stdout, stderr = strings.NewReader(input), &out, &errOut
	defer func() { stdin, stdout, stderr = oldIn, oldOut, oldErr }()

	status := cmd.Execute(context.Background(), fs)
	return result{status: status, stdout: out.String(), stderr: errOut.String()}
}

func readDocument(t *testing.T, dir string) *models.Document {
	t.Helper()

	raw, err := os.ReadFile(filepath.Join(dir, storage.DefaultKey+".json"))
	require.NoError(t, err)
	var doc models.Document
	require.NoError(t, json.Unmarshal(raw, &doc))
	doc.Normalize()
	return &doc
}

func TestAddWithFlags(t *testing.T) {
	dir := setupStore(t)

	res := run(t, &addCmd{}, "", "-name", "Kofi", "-amount", "5000", "-date", "2024-01-10", "-method", "bank")
	require.Equal(t, subcommands.ExitSuccess, res.status, res.stderr)
	assert.Contains(t, res.stdout, "Added investor Kofi")
	assert.Contains(t, res.stdout, "GHS 5,000.00")

	res = run(t, &addCmd{}, "", "-name", "kofi", "-amount", "500")
	require.Equal(t, subcommands.ExitSuccess, res.status, res.stderr)
	assert.Contains(t, res.stdout, "now GHS 5,500.00")

	doc := readDocument(t, dir)
	require.Len(t, doc.Investors, 1)
	assert.Equal(t, 5500.0, doc.Investors[0].Amount.Float64())
	assert.Equal(t, "bank", doc.Investors[0].Method)
}

func TestAddPrompts(t *testing.T) {
	dir := setupStore(t)

	res := run(t, &addCmd{}, "Ama\n1000\n")
	require.Equal(t, subcommands.ExitSuccess, res.status, res.stderr)
	assert.Contains(t, res.stdout, "Name: ")
	assert.Contains(t, res.stdout, "Added investor Ama")

	doc := readDocument(t, dir)
	require.Len(t, doc.Investors, 1)
	assert.Equal(t, "Ama", doc.Investors[0].Name)
}

func TestAddCancelledOnEOF(t *testing.T) {
	setupStore(t)

	res := run(t, &addCmd{}, "")
	assert.Equal(t, subcommands.ExitSuccess, res.status)
	assert.Contains(t, res.stderr, "Cancelled")
}

func TestAddRejectsInvalidAmount(t *testing.T) {
	setupStore(t)

	res := run(t, &addCmd{}, "", "-name", "Kofi", "-amount", "abc")
	assert.Equal(t, subcommands.ExitUsageError, res.status)
	assert.Contains(t, res.stderr, "Error")
}

func TestEdit(t *testing.T) {
	dir := setupStore(t)
	require.Equal(t, subcommands.ExitSuccess, run(t, &addCmd{}, "", "-name", "Kofi", "-amount", "5000").status)

	// Empty answer keeps the current name.
	res := run(t, &editCmd{}, "\n2500\n", "kofi")
	require.Equal(t, subcommands.ExitSuccess, res.status, res.stderr)
	assert.Contains(t, res.stdout, "Name [Kofi]: ")
	assert.Contains(t, res.stdout, "Amount [5000]: ")

	doc := readDocument(t, dir)
	assert.Equal(t, "Kofi", doc.Investors[0].Name)
	assert.Equal(t, 2500.0, doc.Investors[0].Amount.Float64())

	res = run(t, &editCmd{}, "", "-name", "Kofi Mensah", "-amount", "3000", doc.Investors[0].ID)
	require.Equal(t, subcommands.ExitSuccess, res.status, res.stderr)
	assert.Equal(t, "Kofi Mensah", readDocument(t, dir).Investors[0].Name)

	res = run(t, &editCmd{}, "", "nobody")
	assert.Equal(t, subcommands.ExitFailure, res.status)
	assert.Contains(t, res.stderr, "not found")

	assert.Equal(t, subcommands.ExitUsageError, run(t, &editCmd{}, "").status)
}

func TestDelete(t *testing.T) {
	dir := setupStore(t)
	require.Equal(t, subcommands.ExitSuccess, run(t, &addCmd{}, "", "-name", "Kofi", "-amount", "5000").status)
	require.Equal(t, subcommands.ExitSuccess, run(t, &payoutCmd{}, "", "-investor", "Kofi", "-amount", "200").status)

	res := run(t, &deleteCmd{}, "n\n", "Kofi")
	assert.Equal(t, subcommands.ExitSuccess, res.status)
	assert.Contains(t, res.stderr, "Cancelled")
	assert.Len(t, readDocument(t, dir).Investors, 1)

	res = run(t, &deleteCmd{}, "y\n", "Kofi")
	require.Equal(t, subcommands.ExitSuccess, res.status, res.stderr)
	assert.Contains(t, res.stdout, "Deleted investor Kofi")

	doc := readDocument(t, dir)
	assert.Empty(t, doc.Investors)
	assert.Len(t, doc.Payouts, 1)
}

func TestPayout(t *testing.T) {
	dir := setupStore(t)
	require.Equal(t, subcommands.ExitSuccess, run(t, &addCmd{}, "", "-name", "Kofi", "-amount", "5000").status)

	res := run(t, &payoutCmd{}, "", "-investor", "kofi", "-amount", "250", "-date", "2024-03-01")
	require.Equal(t, subcommands.ExitSuccess, res.status, res.stderr)
	assert.Contains(t, res.stdout, "Paid GHS 250.00 to Kofi on 2024-03-01")

	doc := readDocument(t, dir)
	require.Len(t, doc.Payouts, 1)
	assert.Equal(t, doc.Investors[0].ID, doc.Payouts[0].InvestorID)

	assert.Equal(t, subcommands.ExitFailure, run(t, &payoutCmd{}, "", "-investor", "Ama", "-amount", "10").status)
	assert.Equal(t, subcommands.ExitUsageError, run(t, &payoutCmd{}, "", "-investor", "Kofi", "-amount", "0").status)
	assert.Equal(t, subcommands.ExitUsageError, run(t, &payoutCmd{}, "", "-investor", "Kofi").status)
}

func TestSummaryPlain(t *testing.T) {
	setupStore(t)
	require.Equal(t, subcommands.ExitSuccess, run(t, &addCmd{}, "", "-name", "Kofi", "-amount", "5000").status)
	require.Equal(t, subcommands.ExitSuccess, run(t, &addCmd{}, "", "-name", "Ama", "-amount", "5000").status)

	res := run(t, &summaryCmd{}, "", "-plain")
	require.Equal(t, subcommands.ExitSuccess, res.status, res.stderr)
	assert.Contains(t, res.stdout, "GHS 10,000.00")
	assert.Contains(t, res.stdout, "50.00%")
	assert.Contains(t, res.stdout, "Kofi")
}

func TestExportImport(t *testing.T) {
	dir := setupStore(t)
	require.Equal(t, subcommands.ExitSuccess, run(t, &addCmd{}, "", "-name", "Kofi", "-amount", "5000", "-date", "2024-01-10", "-method", "bank").status)

	res := run(t, &exportCmd{}, "", "-format", "csv")
	require.Equal(t, subcommands.ExitSuccess, res.status, res.stderr)
	assert.Equal(t, `"Name","Amount","Date","Method","Returns"`+"\n"+`"Kofi","5000","2024-01-10","bank","0"`, res.stdout)

	jsonFile := filepath.Join(t.TempDir(), "backup.json")
	res = run(t, &exportCmd{}, "", "-o", jsonFile)
	require.Equal(t, subcommands.ExitSuccess, res.status, res.stderr)

	csvFile := filepath.Join(t.TempDir(), "more.csv")
	require.NoError(t, os.WriteFile(csvFile, []byte("name,amount\nAma,1000\nYaw,abc\n"), 0644))
	res = run(t, &importCmd{}, "", csvFile)
	require.Equal(t, subcommands.ExitSuccess, res.status, res.stderr)
	assert.Contains(t, res.stdout, "Imported 1 investors")
	assert.Contains(t, res.stderr, "line 3")
	assert.Len(t, readDocument(t, dir).Investors, 2)

	// Restoring the backup replaces everything.
	res = run(t, &importCmd{}, "", jsonFile)
	require.Equal(t, subcommands.ExitSuccess, res.status, res.stderr)
	assert.Contains(t, res.stdout, "1 investors, 0 payouts")
	doc := readDocument(t, dir)
	require.Len(t, doc.Investors, 1)
	assert.Equal(t, "Kofi", doc.Investors[0].Name)

	assert.Equal(t, subcommands.ExitUsageError, run(t, &exportCmd{}, "", "-format", "xml").status)
	assert.Equal(t, subcommands.ExitFailure, run(t, &importCmd{}, "", filepath.Join(t.TempDir(), "missing.csv")).status)
}

func TestImportRejectsBadJSON(t *testing.T) {
	dir := setupStore(t)
	require.Equal(t, subcommands.ExitSuccess, run(t, &addCmd{}, "", "-name", "Kofi", "-amount", "5000").status)

	bad := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))

	res := run(t, &importCmd{}, "", "-format", "json", bad)
	assert.Equal(t, subcommands.ExitFailure, res.status)
	assert.Len(t, readDocument(t, dir).Investors, 1)
}

func TestQuery(t *testing.T) {
	setupStore(t)
	require.Equal(t, subcommands.ExitSuccess, run(t, &addCmd{}, "", "-name", "Kofi", "-amount", "5000").status)
	require.Equal(t, subcommands.ExitSuccess, run(t, &addCmd{}, "", "-name", "Ama", "-amount", "500").status)

	res := run(t, &queryCmd{}, "", "$.investors[?(@.amount > 1000)].name")
	require.Equal(t, subcommands.ExitSuccess, res.status, res.stderr)
	assert.JSONEq(t, `["Kofi"]`, res.stdout)

	res = run(t, &queryCmd{}, "", "$.investors[")
	assert.Equal(t, subcommands.ExitFailure, res.status)
}

func TestCorruptStore(t *testing.T) {
	dir := setupStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, storage.DefaultKey+".json"), []byte("{broken"), 0644))

	res := run(t, &summaryCmd{}, "", "-plain")
	assert.Equal(t, subcommands.ExitFailure, res.status)
	assert.Contains(t, res.stderr, "corrupt")
}

func TestHashPassphrase(t *testing.T) {
	res := run(t, &hashPassphraseCmd{}, "", "open sesame")
	require.Equal(t, subcommands.ExitSuccess, res.status, res.stderr)
	hash := strings.TrimSpace(res.stdout)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("open sesame")))

	res = run(t, &hashPassphraseCmd{}, "open sesame\n")
	require.Equal(t, subcommands.ExitSuccess, res.status, res.stderr)

	res = run(t, &hashPassphraseCmd{}, "", "short")
	assert.Equal(t, subcommands.ExitFailure, res.status)
}
