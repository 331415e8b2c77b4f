package workspace

import (
	"os"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/activity"
	"github.com/cleared-dev/tally/internal/categories"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/gitops"
	"github.com/cleared-dev/tally/internal/model"
)

// newTestWorkspace creates a workspace with git disabled.
func newTestWorkspace(t *testing.T) string {
	t.Helper()
	t.Setenv(config.EnvAutoCommit, "false")
	dir := t.TempDir()
	cfg := config.Default("Test Biz")
	cfg.Git.AutoCommit = false
	require.NoError(t, config.Save(filepath.Join(dir, ConfigFile), cfg))
	return dir
}

func TestOpen_EmptyWorkspace(t *testing.T) {
	dir := newTestWorkspace(t)

	ws, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 0, ws.Ledger.Len())
	assert.Equal(t, categories.Defaults(), ws.Ledger.Categories())
	assert.Empty(t, ws.Rules.Rules())
	assert.Equal(t, "Test Biz", ws.Config.Business.Name)
}

func TestOpen_MissingConfig(t *testing.T) {
	_, err := Open(t.TempDir(), zerolog.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen_AppliesDotenv(t *testing.T) {
	dir := newTestWorkspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFile), []byte("TALLY_ADDR=:7070\n"), 0o644))

	ws, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, ":7070", ws.Config.Server.Addr)
}

func TestPersist_RoundTrip(t *testing.T) {
	dir := newTestWorkspace(t)

	ws, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, ws.Ledger.Add(model.Transaction{
		Date: "2024-01-05", Description: "Coffee", Amount: decimal.RequireFromString("-4.50"), Category: "Office Supplies",
	}))
	require.True(t, ws.Ledger.AddCategory("Software"))
	require.NoError(t, ws.Persist(activity.ActionAdd, "Coffee"))

	reopened, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, 1, reopened.Ledger.Len())
	assert.Equal(t, "Coffee", reopened.Ledger.All()[0].Description)
	assert.True(t, reopened.Ledger.HasCategory("Software"))

	entries, err := activity.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, activity.ActionAdd, entries[0].Action)
	assert.Empty(t, entries[0].CommitHash)
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := newTestWorkspace(t)
	ws, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, ws.Save())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{ConfigFile, LedgerFile, CategoriesFile}, names)
}

func TestOpen_CorruptLedger(t *testing.T) {
	dir := newTestWorkspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, LedgerFile), []byte("date,description,amount,category\n2024-01-01,x,notanumber,y\n"), 0o644))

	_, err := Open(dir, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestInit_Layout(t *testing.T) {
	t.Setenv(config.EnvAutoCommit, "false")
	dir := t.TempDir()

	ws, err := Init(dir, "Init Biz", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "Init Biz", ws.Config.Business.Name)

	for _, p := range []string{ConfigFile, LedgerFile, CategoriesFile, RulesFile, ".gitignore", filepath.Join("import", ".gitkeep")} {
		_, err := os.Stat(filepath.Join(dir, p))
		assert.NoError(t, err, "%s should exist", p)
	}
	info, err := os.Stat(filepath.Join(dir, "import", "processed"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = Init(dir, "Again", zerolog.Nop())
	assert.ErrorIs(t, err, ErrExists)
}

func TestInit_GitCommit(t *testing.T) {
	if !gitops.Available() {
		t.Skip("git not installed")
	}
	t.Setenv(config.EnvAutoCommit, "true")
	dir := t.TempDir()

	_, err := Init(dir, "Git Biz", zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, gitops.IsRepo(dir))

	entries, err := activity.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, activity.ActionInit, entries[0].Action)
	assert.NotEmpty(t, entries[0].CommitHash)
}

func TestPersist_Concurrent(t *testing.T) {
	dir := newTestWorkspace(t)
	ws, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			desc := fmt.Sprintf("Item %d", i)
			if err := ws.Ledger.Add(model.Transaction{
				Date: "2024-01-05", Description: desc, Amount: decimal.NewFromInt(-1), Category: "Office Supplies",
			}); err != nil {
				t.Error(err)
				return
			}
			if err := ws.Persist(activity.ActionAdd, desc); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	reopened, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, n, reopened.Ledger.Len())

	entries, err := activity.Read(dir)
	require.NoError(t, err)
	assert.Len(t, entries, n)
}
