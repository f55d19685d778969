// Package all wires every built-in sink backend into the sink factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) runs the init functions of each concrete backend, which register
// their factories with the sink package. After the import, the following
// sink kinds are available through sink.New:
//
//   - "csv"      (listwash/internal/sink/csv)
//   - "xlsx"     (listwash/internal/sink/xlsx)
//   - "sqlite"   (listwash/internal/sink/sqlite)
//   - "postgres" (listwash/internal/sink/postgres)
//   - "mysql"    (listwash/internal/sink/mysql)
//   - "mssql"    (listwash/internal/sink/mssql)
//
// Typical usage (in cmd/listwash or a similar wiring layer):
//
//	import (
//	    _ "listwash/internal/sink/all" // enable all built-in backends
//
//	    "listwash/internal/sink"
//	)
//
//	s, err := sink.New(ctx, sink.Config{Kind: "csv", Path: "out.csv"})
//
// A binary that should support only a subset of backends can import the
// individual backend packages instead of this one; the database drivers are
// the heavyweight part of the dependency tree.
package all

import (
	_ "listwash/internal/sink/csv"
	_ "listwash/internal/sink/mssql"
	_ "listwash/internal/sink/mysql"
	_ "listwash/internal/sink/postgres"
	_ "listwash/internal/sink/sqlite"
	_ "listwash/internal/sink/xlsx"
)
