package sandbox

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/basupportii/ai-router/internal/routererr"
	"github.com/basupportii/ai-router/internal/toolchain"
)

// writeKeyword matches statement-leading verbs that mutate the
// database; SQL defaults to read-only per spec.md §4.6.
var writeKeyword = regexp.MustCompile(`(?i)^\s*(insert|update|delete|drop|alter|create|replace|truncate)\b`)

// sqlCacheTTL is the read-only query cache window.
const sqlCacheTTL = 5 * time.Minute

type sqlCacheEntry struct {
	rows      string
	expiresAt time.Time
}

// SQLTool runs a query against a file-backed sqlite database,
// rejecting multi-statement and write-keyword input unless AllowWrite
// is set, and caching read-only results keyed on (dbPath, query).
type SQLTool struct {
	mu    sync.Mutex
	cache map[string]sqlCacheEntry
}

func NewSQLTool() *SQLTool {
	return &SQLTool{cache: make(map[string]sqlCacheEntry)}
}

func (t *SQLTool) Kind() toolchain.Kind { return toolchain.KindSQL }

func (t *SQLTool) Run(ctx context.Context, args toolchain.Args) (toolchain.Result, error) {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return toolchain.Result{}, routererr.New(routererr.KindBadRequest, "empty query")
	}
	if strings.Contains(strings.TrimSuffix(query, ";"), ";") {
		return toolchain.Result{}, routererr.New(routererr.KindUnsafeCode, "multi-statement queries are rejected")
	}
	isWrite := writeKeyword.MatchString(query)
	if isWrite && !args.AllowWrite {
		return toolchain.Result{}, routererr.New(routererr.KindUnsafeCode, "write queries require allowWrite")
	}

	dbPath, err := ResolvePath(args.Path)
	if err != nil {
		return toolchain.Result{}, err
	}

	cacheKey := dbPath + "\x00" + query
	if !isWrite {
		if cached, ok := t.lookup(cacheKey); ok {
			return toolchain.Result{Output: cached, Cached: true}, nil
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return toolchain.Result{}, routererr.Wrap(routererr.KindSandboxError, "open database", err)
	}
	defer db.Close()

	queryCtx, cancel := context.WithTimeout(ctx, scriptTimeout)
	defer cancel()

	if isWrite {
		if _, err := db.ExecContext(queryCtx, query); err != nil {
			return toolchain.Result{}, routererr.Wrap(routererr.KindSandboxError, "exec", err)
		}
		return toolchain.Result{Output: "ok"}, nil
	}

	out, err := queryToText(queryCtx, db, query)
	if err != nil {
		return toolchain.Result{}, routererr.Wrap(routererr.KindSandboxError, "query", err)
	}
	t.store(cacheKey, out)
	return toolchain.Result{Output: out}, nil
}

func (t *SQLTool) lookup(key string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.cache[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.rows, true
}

func (t *SQLTool) store(key, rows string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cache[key] = sqlCacheEntry{rows: rows, expiresAt: time.Now().Add(sqlCacheTTL)}
}

func queryToText(ctx context.Context, db *sql.DB, query string) (string, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(strings.Join(cols, " | "))
	b.WriteString("\n")

	values := make([]any, len(cols))
	pointers := make([]any, len(cols))
	for i := range values {
		pointers[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return "", err
		}
		parts := make([]string, len(cols))
		for i, v := range values {
			parts[i] = formatSQLValue(v)
		}
		b.WriteString(strings.Join(parts, " | "))
		b.WriteString("\n")
	}
	return b.String(), rows.Err()
}

func formatSQLValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}

// SQLSchemaTool dumps the sqlite_master schema for the "SQL schema
// peek" collaborator named in spec.md §4.3.
type SQLSchemaTool struct{}

func (t SQLSchemaTool) Kind() toolchain.Kind { return toolchain.KindSQLSchema }

func (t SQLSchemaTool) Run(ctx context.Context, args toolchain.Args) (toolchain.Result, error) {
	dbPath, err := ResolvePath(args.Path)
	if err != nil {
		return toolchain.Result{}, err
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return toolchain.Result{}, routererr.Wrap(routererr.KindSandboxError, "open database", err)
	}
	defer db.Close()

	queryCtx, cancel := context.WithTimeout(ctx, scriptTimeout)
	defer cancel()
	out, err := queryToText(queryCtx, db, "SELECT name, sql FROM sqlite_master WHERE type='table'")
	if err != nil {
		return toolchain.Result{}, routererr.Wrap(routererr.KindSandboxError, "schema query", err)
	}
	return toolchain.Result{Output: out}, nil
}
