// Package trace records a post-hoc, append-only log of engine activity to a
// SQLite file. It is observability, not simulation-state persistence: a
// trace file lets a user inspect what happened after a run, it does not let
// a run be paused and resumed from it.
package trace

import (
	"database/sql"
	"fmt"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/jayvanderwall/desim/sim"
)

// Recorder is a sim.Hook that buffers HookCtx occurrences and periodically
// flushes them to a SQLite database, batched the way the engine's original
// trace writer batches task rows.
type Recorder struct {
	db   *sql.DB
	stmt *sql.Stmt

	dbName    string
	buffered  []entry
	batchSize int
}

type entry struct {
	id   string
	pos  string
	now  sim.SimulationTime
	item string
}

// NewRecorder creates a Recorder that will write to path+".sqlite3",
// registering an atexit handler that flushes whatever is still buffered
// when the program exits through atexit.Exit.
func NewRecorder(path string) *Recorder {
	r := &Recorder{
		dbName:    path,
		batchSize: 10000,
	}

	atexit.Register(func() { r.Flush() })

	return r
}

// Init creates the database file and prepares the insert statement. It
// panics if the target file already exists, matching the write-once trace
// file convention.
func (r *Recorder) Init() {
	filename := r.dbName + ".sqlite3"

	if _, err := os.Stat(filename); err == nil {
		panic(fmt.Errorf("trace: file %s already exists", filename))
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}
	r.db = db

	r.mustExecute(`
		CREATE TABLE trace (
			entry_id varchar(200) not null,
			pos      varchar(100) not null,
			now      integer not null,
			item     text
		);
	`)
	r.mustExecute(`CREATE INDEX trace_now_index ON trace (now);`)
	r.mustExecute(`CREATE INDEX trace_pos_index ON trace (pos);`)

	stmt, err := r.db.Prepare(`INSERT INTO trace VALUES (?, ?, ?, ?)`)
	if err != nil {
		panic(err)
	}
	r.stmt = stmt
}

// Func implements sim.Hook: it buffers one row per invocation, flushing once
// batchSize rows have accumulated.
func (r *Recorder) Func(ctx sim.HookCtx) {
	r.buffered = append(r.buffered, entry{
		id:   xid.New().String(),
		pos:  ctx.Pos.Name,
		now:  ctx.Now,
		item: fmt.Sprintf("%v", ctx.Item),
	})

	if len(r.buffered) >= r.batchSize {
		r.Flush()
	}
}

// Flush writes every buffered row to the database in one transaction.
func (r *Recorder) Flush() {
	if len(r.buffered) == 0 {
		return
	}

	r.mustExecute("BEGIN TRANSACTION")
	for _, e := range r.buffered {
		_, err := r.stmt.Exec(e.id, e.pos, int64(e.now), e.item)
		if err != nil {
			panic(err)
		}
	}
	r.mustExecute("COMMIT TRANSACTION")

	r.buffered = nil
}

// Close flushes any remaining rows and closes the database connection.
func (r *Recorder) Close() error {
	r.Flush()
	return r.db.Close()
}

func (r *Recorder) mustExecute(query string) {
	_, err := r.db.Exec(query)
	if err != nil {
		panic(fmt.Errorf("trace: failed to execute %q: %w", query, err))
	}
}

// Reader queries a previously recorded trace file.
type Reader struct {
	db       *sql.DB
	filename string
}

// NewReader creates a Reader bound to an existing trace file.
func NewReader(filename string) *Reader {
	return &Reader{filename: filename}
}

// Init opens the database connection.
func (r *Reader) Init() {
	db, err := sql.Open("sqlite3", r.filename)
	if err != nil {
		panic(err)
	}
	r.db = db
}

// Query is a filter over recorded rows; zero values are unconstrained.
type Query struct {
	Pos         string
	MinTime     sim.SimulationTime
	MaxTime     sim.SimulationTime
	EnableRange bool
}

// Row is one recorded hook invocation.
type Row struct {
	ID   string
	Pos  string
	Now  sim.SimulationTime
	Item string
}

// List returns every row matching q, ordered by now ascending.
func (r *Reader) List(q Query) []Row {
	sqlStr := `SELECT entry_id, pos, now, item FROM trace WHERE 1=1`

	if q.Pos != "" {
		sqlStr += ` AND pos = '` + q.Pos + `'`
	}
	if q.EnableRange {
		sqlStr += fmt.Sprintf(" AND now BETWEEN %d AND %d", int64(q.MinTime), int64(q.MaxTime))
	}
	sqlStr += ` ORDER BY now ASC`

	rows, err := r.db.Query(sqlStr)
	if err != nil {
		panic(err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		var now int64
		if err := rows.Scan(&row.ID, &row.Pos, &now, &row.Item); err != nil {
			panic(err)
		}
		row.Now = sim.SimulationTime(now)
		out = append(out, row)
	}

	return out
}

// Close closes the underlying database connection.
func (r *Reader) Close() error {
	return r.db.Close()
}
