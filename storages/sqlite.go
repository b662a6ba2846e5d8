package storages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reusee/moo/moovm"
	_ "modernc.org/sqlite"
)

// SQLiteRegistry stores verb programs as CBOR blobs keyed by object and verb.
type SQLiteRegistry struct {
	db *sql.DB
}

var _ moovm.Resolver = new(SQLiteRegistry)

const schema = `
create table if not exists verbs (
	object text not null,
	verb text not null,
	program blob not null,
	primary key (object, verb)
)
`

// OpenSQLite opens or creates the database at dsn. ":memory:" gives a private
// in-memory database.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteRegistry, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, wrap(err)
	}
	// one connection, so that an in-memory database is shared by all calls
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"pragma busy_timeout = 5000",
		schema,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, wrap(err)
		}
	}

	return &SQLiteRegistry{
		db: db,
	}, nil
}

func (s *SQLiteRegistry) Close() error {
	return s.db.Close()
}

// Define stores p as obj:verb, replacing any previous program.
func (s *SQLiteRegistry) Define(ctx context.Context, obj moovm.ObjID, verb string, p *moovm.Program) error {
	data, err := moovm.MarshalProgram(p)
	if err != nil {
		return err
	}
	return WithTx(ctx, s.db, func(tx Tx) error {
		_, err := tx.Exec(ctx,
			`insert or replace into verbs (object, verb, program) values (?, ?, ?)`,
			string(obj), verb, data,
		)
		if err != nil {
			return wrap(err)
		}
		return nil
	})
}

// DefineAll stores every verb of r in one transaction.
func (s *SQLiteRegistry) DefineAll(ctx context.Context, r moovm.Registry) error {
	return WithTx(ctx, s.db, func(tx Tx) error {
		for obj, verbs := range r {
			for verb, p := range verbs {
				data, err := moovm.MarshalProgram(p)
				if err != nil {
					return fmt.Errorf("%s:%s: %w", obj, verb, err)
				}
				if _, err := tx.Exec(ctx,
					`insert or replace into verbs (object, verb, program) values (?, ?, ?)`,
					string(obj), verb, data,
				); err != nil {
					return wrap(err)
				}
			}
		}
		return nil
	})
}

func (s *SQLiteRegistry) Verb(ctx context.Context, obj moovm.ObjID, verb string) (p *moovm.Program, err error) {
	var data []byte
	if err := WithTx(ctx, s.db, func(tx Tx) error {
		row, err := tx.QueryRow(ctx,
			`select program from verbs where object = ? and verb = ?`,
			string(obj), verb,
		)
		if err != nil {
			return wrap(err)
		}
		err = row.Scan(&data)
		if !errors.Is(err, sql.ErrNoRows) {
			return wrap(err)
		}
		row, err = tx.QueryRow(ctx,
			`select count(*) from verbs where object = ?`,
			string(obj),
		)
		if err != nil {
			return wrap(err)
		}
		var n int
		if err := row.Scan(&n); err != nil {
			return wrap(err)
		}
		if n == 0 {
			return fmt.Errorf("%w: %s", moovm.ErrUnknownObject, obj)
		}
		return fmt.Errorf("%w: %s:%s", moovm.ErrUnknownVerb, obj, verb)
	}); err != nil {
		return nil, err
	}
	p, err = moovm.UnmarshalProgram(data)
	if err != nil {
		return nil, fmt.Errorf("%s:%s: %w", obj, verb, err)
	}
	return p, nil
}

// Objects returns the ids of objects with at least one verb, in order.
func (s *SQLiteRegistry) Objects(ctx context.Context) (ret []moovm.ObjID, err error) {
	err = WithTx(ctx, s.db, func(tx Tx) error {
		rows, err := tx.Query(ctx, `select distinct object from verbs order by object`)
		if err != nil {
			return wrap(err)
		}
		defer rows.Close()
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return wrap(err)
			}
			ret = append(ret, moovm.ObjID(id))
		}
		return wrap(rows.Err())
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}
