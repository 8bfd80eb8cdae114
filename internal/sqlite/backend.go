package sqlite

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/JLJones1696/Vehicle-Manager/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// dbFileName is the SQLite mirror file inside the data directory.
const dbFileName = "fleet.db"

// Backend owns the three CSV stores and their SQLite query mirror. The CSV
// files are the source of truth; every mutation updates the mirror and then
// rewrites the affected CSV file in full.
//
// A single mutex serializes all operations. The system is single-user and
// single-process; the mutex makes the single-writer contract explicit
// rather than relying on caller discipline.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sqlx.DB
	dataDir  string

	// now supplies today's date for status derivation. Overridden in tests.
	now func() time.Time

	ledger   *LedgerTable
	history  *HistoryTable
	services *ServicesTable
}

// NewBackend creates a backend instance. The backend is not attached; call
// Attach with a Config to initialize.
func NewBackend() *Backend {
	b := &Backend{now: time.Now}
	b.ledger = &LedgerTable{backend: b}
	b.history = &HistoryTable{backend: b}
	b.services = &ServicesTable{backend: b}
	return b
}

// Ledger returns the Fleet Ledger store.
func (b *Backend) Ledger() *LedgerTable { return b.ledger }

// History returns the History Log store.
func (b *Backend) History() *HistoryTable { return b.history }

// Services returns the Service Registry store.
func (b *Backend) Services() *ServicesTable { return b.services }

// Attach initializes the backend: creates the data directory if needed,
// rebuilds the SQLite mirror from the CSV stores, and ensures the Service
// Registry file exists with its header. Returns ErrAlreadyAttached if
// called while attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	// The mirror is rebuilt from the CSVs on every attach.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("initializing schema: %w", err)
	}

	b.db = db
	b.config = config
	b.dataDir = dataDir

	if err := b.initServicesFile(); err != nil {
		db.Close()
		return err
	}
	if err := b.loadAll(); err != nil {
		db.Close()
		return fmt.Errorf("loading stores: %w", err)
	}

	b.attached = true
	return nil
}

// Detach releases backend resources. Idempotent: multiple calls succeed.
// After Detach, store operations return ErrStoreDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false

	if b.db != nil {
		err := b.db.Close()
		b.db = nil
		return err
	}
	return nil
}

func (b *Backend) ledgerPath() string   { return filepath.Join(b.dataDir, types.LedgerFile) }
func (b *Backend) historyPath() string  { return filepath.Join(b.dataDir, types.HistoryFile) }
func (b *Backend) servicesPath() string { return filepath.Join(b.dataDir, types.ServicesFile) }

// today returns the current calendar day from the backend clock.
func (b *Backend) today() time.Time {
	return types.Midnight(b.now())
}

// initServicesFile ensures the Service Registry file exists with its header.
// The other two stores are created lazily on first write.
func (b *Backend) initServicesFile() error {
	info, err := os.Stat(b.servicesPath())
	if err == nil && info.Size() > 0 {
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("stat services file: %w", err)
	}
	return writeTable(b.servicesPath(), [][]string{types.ServicesHeader})
}
