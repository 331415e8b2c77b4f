// Package workspace loads and saves a tally directory: configuration,
// ledger, categories, rules and the activity log.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/tally/internal/activity"
	"github.com/cleared-dev/tally/internal/categories"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/gitops"
	"github.com/cleared-dev/tally/internal/importer"
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/rules"
)

// Workspace file layout, relative to the root.
const (
	ConfigFile     = "tally.yaml"
	EnvFile        = ".env"
	LedgerFile     = "ledger.csv"
	CategoriesFile = "categories.csv"
	RulesFile      = "rules/categorization-rules.yaml"
)

// ErrExists is returned by Init when the directory already holds a workspace.
var ErrExists = errors.New("workspace already initialized")

// Workspace is an opened tally directory.
type Workspace struct {
	Root   string
	Config *config.Config
	Ledger *ledger.Store
	Rules  *rules.Set
	log    zerolog.Logger

	// mu serializes Persist so snapshots reach disk and git in order.
	mu sync.Mutex
}

// Init creates a new workspace at root and, when git is available and
// auto-commit is on, commits it.
func Init(root, name string, log zerolog.Logger) (*Workspace, error) {
	if _, err := os.Stat(filepath.Join(root, ConfigFile)); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, root)
	}

	dirs := []string{
		"rules",
		"logs",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(name)
	if err := config.Save(filepath.Join(root, ConfigFile), cfg); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	if err := config.ApplyEnv(cfg, filepath.Join(root, EnvFile)); err != nil {
		return nil, err
	}
	if err := rules.Save(filepath.Join(root, RulesFile), nil); err != nil {
		return nil, err
	}

	gitignore := ".env\nimport/*.csv\nimport/processed/\n"
	if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return nil, fmt.Errorf("writing .gitignore: %w", err)
	}
	if err := os.WriteFile(filepath.Join(root, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return nil, fmt.Errorf("writing .gitkeep: %w", err)
	}

	ws := &Workspace{
		Root:   root,
		Config: cfg,
		Ledger: ledger.NewStore(nil, categories.DefaultSet()),
		Rules:  rules.New(nil),
		log:    log,
	}

	if cfg.Git.AutoCommit && gitops.Available() && !gitops.IsRepo(root) {
		if err := gitops.Init(root); err != nil {
			return nil, err
		}
	}
	if err := ws.Persist(activity.ActionInit, "Initialize "+name); err != nil {
		return nil, err
	}
	return ws, nil
}

// Open loads the workspace at root. Missing ledger or category files start
// empty or with the default categories.
func Open(root string, log zerolog.Logger) (*Workspace, error) {
	cfg, err := config.Load(filepath.Join(root, ConfigFile))
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg, filepath.Join(root, EnvFile)); err != nil {
		return nil, err
	}

	cats, err := loadCategories(filepath.Join(root, CategoriesFile))
	if err != nil {
		return nil, err
	}
	txns, err := loadLedger(filepath.Join(root, LedgerFile))
	if err != nil {
		return nil, err
	}
	rs, err := rules.Load(filepath.Join(root, RulesFile))
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("root", root).
		Int("transactions", len(txns)).
		Int("categories", cats.Len()).
		Int("rules", len(rs.Rules())).
		Msg("workspace opened")

	return &Workspace{
		Root:   root,
		Config: cfg,
		Ledger: ledger.NewStore(txns, cats),
		Rules:  rs,
		log:    log,
	}, nil
}

// Registry returns the import parsers, with the workspace rules as the
// categorizer.
func (w *Workspace) Registry() *importer.Registry {
	return importer.DefaultRegistry(w.Rules)
}

// Save writes the ledger and category files.
func (w *Workspace) Save() error {
	if err := writeFileAtomic(filepath.Join(w.Root, LedgerFile), func(f *os.File) error {
		return ledger.WriteTransactions(f, w.Ledger.All())
	}); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(w.Root, CategoriesFile), func(f *os.File) error {
		return categories.WriteCategories(f, w.Ledger.Categories())
	}); err != nil {
		return fmt.Errorf("saving categories: %w", err)
	}
	return nil
}

// Persist saves the workspace, commits it when auto-commit is on, and
// records the change in the activity log.
func (w *Workspace) Persist(action, details string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.Save(); err != nil {
		return err
	}

	var hash string
	if w.Config.Git.AutoCommit && gitops.IsRepo(w.Root) {
		author := gitops.Author{Name: w.Config.Git.AuthorName, Email: w.Config.Git.AuthorEmail}
		h, err := gitops.CommitAll(w.Root, action+": "+details, author)
		if err != nil {
			return fmt.Errorf("committing: %w", err)
		}
		hash = h
	}

	entry := activity.Entry{
		Timestamp:  time.Now(),
		Action:     action,
		Details:    details,
		CommitHash: hash,
	}
	if err := activity.Append(w.Root, []activity.Entry{entry}); err != nil {
		// The ledger is already saved; a missing log row is not fatal.
		w.log.Warn().Err(err).Str("action", action).Msg("failed to write activity log")
	}

	w.log.Debug().Str("action", action).Str("commit", hash).Msg(details)
	return nil
}

func loadCategories(path string) (*categories.Set, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return categories.DefaultSet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening categories: %w", err)
	}
	defer f.Close()

	names, err := categories.ReadCategories(f)
	if err != nil {
		return nil, err
	}
	return categories.NewSet(names), nil
}

func loadLedger(path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	txns, err := ledger.ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return txns, nil
}

func writeFileAtomic(path string, write func(*os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
