// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: index/index.go
// Summary: SQLite FTS5 search index over workspace tables.
//
// Provides full-text search over every table in a workspace with:
//   - Async batch indexing, one document per unit of work
//   - BM25 relevance ranking with match snippets
//   - Trigram tokenization for substring matching

package index

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	_ "modernc.org/sqlite"

	"github.com/framegrace/mdsheet/mdtable"
	"github.com/framegrace/mdsheet/workspace"
)

// Hit is a single search match: one table in one document.
type Hit struct {
	Path    string
	Line    int // zero-based line of the table's header row
	Heading string
	Headers string
	Snippet string
}

// Config holds configuration for the search index.
type Config struct {
	// Path is the SQLite database file location.
	Path string

	// BatchSize is the number of document updates to accumulate before
	// flushing. Default: 32.
	BatchSize int

	// BatchTimeout is how long to wait before flushing a partial batch.
	// Default: 2s.
	BatchTimeout time.Duration

	// ChannelBuffer is the size of the async indexing channel.
	// Default: 256.
	ChannelBuffer int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(path string) Config {
	return Config{
		Path:          path,
		BatchSize:     32,
		BatchTimeout:  2 * time.Second,
		ChannelBuffer: 256,
	}
}

// docUpdate replaces every indexed row for one document.
type docUpdate struct {
	path string
	rows []row
}

// row is the searchable content of a single table.
type row struct {
	line    int
	heading string
	headers string
	cells   string
}

// Index is a SQLite FTS5 search index over workspace tables.
type Index struct {
	config Config
	db     *sql.DB

	needsRebuild bool

	batchCh chan docUpdate
	stopCh  chan struct{}
	doneCh  chan struct{}
	flushCh chan chan struct{}

	mu sync.RWMutex
}

// Increment when schema changes require reindexing.
const schemaVersion = 1

const metaSchema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);
`

// FTS schema - separate so it can be dropped and recreated on version
// changes. UNINDEXED columns are stored but never tokenized.
const ftsSchema = `
CREATE VIRTUAL TABLE IF NOT EXISTS tables_fts USING fts5(
    heading,
    headers,
    cells,
    path UNINDEXED,
    line UNINDEXED,
    tokenize='trigram'
);
`

// Open opens (or creates) the search index at path.
func Open(path string) (*Index, error) {
	return OpenWithConfig(DefaultConfig(path))
}

// OpenWithConfig opens a search index with custom configuration.
func OpenWithConfig(config Config) (*Index, error) {
	dir := filepath.Dir(config.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := config.Path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=cache_size(-8000)" +
		"&_pragma=temp_store(MEMORY)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(metaSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	needsRebuild, err := checkAndMigrateSchema(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to check schema version: %w", err)
	}

	if _, err := db.Exec(ftsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create FTS schema: %w", err)
	}

	ix := &Index{
		config:       config,
		db:           db,
		needsRebuild: needsRebuild,
		batchCh:      make(chan docUpdate, config.ChannelBuffer),
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
		flushCh:      make(chan chan struct{}),
	}

	go ix.batchIndexer()

	return ix, nil
}

// NeedsRebuild reports whether the schema version changed on open, in
// which case the index is empty until the caller reindexes the
// workspace.
func (ix *Index) NeedsRebuild() bool {
	return ix.needsRebuild
}

// checkAndMigrateSchema compares the stored schema version with the
// current one, dropping the FTS table on mismatch. Returns true when
// the index content was discarded and needs reindexing.
func checkAndMigrateSchema(db *sql.DB) (bool, error) {
	var currentVersion int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&currentVersion)
	if err == sql.ErrNoRows {
		currentVersion = 0
	} else if err != nil {
		currentVersion = 0
	}

	if currentVersion == schemaVersion {
		return false, nil
	}

	log.Printf("[INDEX] Migrating schema from version %d to %d", currentVersion, schemaVersion)

	if _, err := db.Exec("DROP TABLE IF EXISTS tables_fts"); err != nil {
		return false, fmt.Errorf("migration failed: %w", err)
	}

	if _, err := db.Exec("INSERT OR REPLACE INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return false, fmt.Errorf("failed to update schema version: %w", err)
	}

	// Only a populated index needs the caller to reindex.
	return currentVersion != 0, nil
}

// batchIndexer runs in a background goroutine, batching document
// updates and flushing them periodically.
func (ix *Index) batchIndexer() {
	defer close(ix.doneCh)

	batch := make([]docUpdate, 0, ix.config.BatchSize)
	timer := time.NewTimer(ix.config.BatchTimeout)
	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ix.flushBatch(batch)
		batch = batch[:0]
	}

	for {
		select {
		case update := <-ix.batchCh:
			batch = append(batch, update)
			if len(batch) >= ix.config.BatchSize {
				flush()
				timer.Reset(ix.config.BatchTimeout)
			}

		case <-timer.C:
			flush()
			timer.Reset(ix.config.BatchTimeout)

		case done := <-ix.flushCh:
			// Manual flush request - drain channel first
			draining := true
			for draining {
				select {
				case update := <-ix.batchCh:
					batch = append(batch, update)
				default:
					draining = false
				}
			}
			flush()
			close(done)

		case <-ix.stopCh:
			// Drain channel and flush before exit
			for {
				select {
				case update := <-ix.batchCh:
					batch = append(batch, update)
				default:
					flush()
					return
				}
			}
		}
	}
}

// flushBatch applies a batch of document updates in a single
// transaction. Each update replaces every row previously indexed for
// its path.
func (ix *Index) flushBatch(batch []docUpdate) {
	if len(batch) == 0 {
		return
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	tx, err := ix.db.Begin()
	if err != nil {
		log.Printf("[INDEX] Failed to begin transaction: %v", err)
		return
	}

	del, err := tx.Prepare("DELETE FROM tables_fts WHERE path = ?")
	if err != nil {
		log.Printf("[INDEX] Failed to prepare delete: %v", err)
		tx.Rollback()
		return
	}
	defer del.Close()

	ins, err := tx.Prepare("INSERT INTO tables_fts (heading, headers, cells, path, line) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		log.Printf("[INDEX] Failed to prepare insert: %v", err)
		tx.Rollback()
		return
	}
	defer ins.Close()

	for _, update := range batch {
		if _, err := del.Exec(update.path); err != nil {
			log.Printf("[INDEX] Failed to clear %s: %v", update.path, err)
			tx.Rollback()
			return
		}
		for _, r := range update.rows {
			if _, err := ins.Exec(r.heading, r.headers, r.cells, update.path, r.line); err != nil {
				log.Printf("[INDEX] Failed to insert row for %s: %v", update.path, err)
				tx.Rollback()
				return
			}
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("[INDEX] Failed to commit batch: %v", err)
	}
}

// IndexDocument queues every table of a parsed document for indexing,
// replacing whatever was previously indexed under path. A document with
// no tables clears its old rows.
func (ix *Index) IndexDocument(path string, tables []mdtable.Table) error {
	update := docUpdate{path: path, rows: make([]row, 0, len(tables))}
	for _, t := range tables {
		update.rows = append(update.rows, tableRow(t))
	}

	select {
	case ix.batchCh <- update:
		return nil
	case <-ix.stopCh:
		return errors.New("index closed")
	}
}

// RemoveDocument synchronously removes every row indexed under path.
func (ix *Index) RemoveDocument(path string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	_, err := ix.db.Exec("DELETE FROM tables_fts WHERE path = ?", path)
	return err
}

// tableRow flattens a table into its searchable text columns.
func tableRow(t mdtable.Table) row {
	heading := ""
	if t.Heading != nil {
		heading = *t.Heading
	}

	var cells strings.Builder
	for i, r := range t.Rows {
		if i > 0 {
			cells.WriteByte('\n')
		}
		cells.WriteString(strings.Join(r, " | "))
	}

	return row{
		line:    t.StartLine,
		heading: heading,
		headers: strings.Join(t.Headers, " | "),
		cells:   cells.String(),
	}
}

// Search runs a substring search over headings, headers, and cells.
// Results are ranked by bm25 relevance. Queries shorter than 3 runes
// fall back to LIKE, since the trigram tokenizer cannot match them.
func (ix *Index) Search(query string, limit int) ([]Hit, error) {
	if query == "" {
		return nil, nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var rows *sql.Rows
	var err error

	if utf8.RuneCountInString(query) < 3 {
		likePattern := "%" + strings.ReplaceAll(strings.ReplaceAll(query, "%", "\\%"), "_", "\\_") + "%"
		rows, err = ix.db.Query(`
			SELECT path, line, heading, headers, cells
			FROM tables_fts
			WHERE heading LIKE ? ESCAPE '\' OR headers LIKE ? ESCAPE '\' OR cells LIKE ? ESCAPE '\'
			ORDER BY path, line
			LIMIT ?
		`, likePattern, likePattern, likePattern, limit)
	} else {
		// Double quotes make the trigram match a literal substring, so
		// queries like "qty | 12" work unescaped.
		quotedQuery := `"` + strings.ReplaceAll(query, `"`, `""`) + `"`
		rows, err = ix.db.Query(`
			SELECT path, line, heading, headers, snippet(tables_fts, 2, '', '', '…', 12)
			FROM tables_fts
			WHERE tables_fts MATCH ?
			ORDER BY rank
			LIMIT ?
		`, quotedQuery, limit)
	}

	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer rows.Close()

	return scanHits(rows)
}

// scanHits parses query results into Hit values.
func scanHits(rows *sql.Rows) ([]Hit, error) {
	var hits []Hit

	for rows.Next() {
		var h Hit
		var line int64

		if err := rows.Scan(&h.Path, &line, &h.Heading, &h.Headers, &h.Snippet); err != nil {
			continue // Skip malformed rows
		}

		h.Line = int(line)
		h.Snippet = shorten(h.Snippet, 96)
		hits = append(hits, h)
	}

	return hits, rows.Err()
}

// shorten caps s at max runes, marking the cut.
func shorten(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "…"
}

// Rebuild reindexes the whole workspace under root: every table of
// every markdown file the tree walk finds. Rows for documents that no
// longer exist are dropped. Returns the number of files and tables
// indexed.
func (ix *Index) Rebuild(root string, opts workspace.TreeOptions) (files, tables int, err error) {
	tree, err := workspace.BuildTree(root, opts)
	if err != nil {
		return 0, 0, err
	}

	// Drain earlier queued updates so the clear below is not undone by
	// a later flush.
	if err := ix.Flush(); err != nil {
		return 0, 0, err
	}

	ix.mu.Lock()
	if _, err := ix.db.Exec("DELETE FROM tables_fts"); err != nil {
		ix.mu.Unlock()
		return 0, 0, fmt.Errorf("failed to clear index: %w", err)
	}
	ix.mu.Unlock()

	for _, entry := range tree.Files() {
		content, err := workspace.ReadDocument(entry.Path)
		if err != nil {
			log.Printf("[INDEX] Skipping %s: %v", entry.Path, err)
			continue
		}
		doc := mdtable.Parse(content)
		if err := ix.IndexDocument(entry.Path, doc.Tables); err != nil {
			return files, tables, err
		}
		files++
		tables += len(doc.Tables)
	}

	return files, tables, ix.Flush()
}

// Flush blocks until all pending updates are indexed.
func (ix *Index) Flush() error {
	done := make(chan struct{})
	select {
	case ix.flushCh <- done:
		<-done
	case <-ix.stopCh:
		// Already stopped
	}
	return nil
}

// Close flushes pending writes and closes the database.
func (ix *Index) Close() error {
	close(ix.stopCh)
	<-ix.doneCh

	return ix.db.Close()
}
