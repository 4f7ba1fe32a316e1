// Package rest exposes SQLite tables as a generic CRUD REST API.
//
// Tables registered with the server are served at /table_name with no
// per-table code. Each table gets four operations:
//
//	Method | Path          | Action
//	-------|---------------|------------------------------------------
//	GET    | /{table}      | List records, with filtering and sorting
//	POST   | /{table}      | Insert a record from the JSON body
//	PUT    | /{table}/{id} | Update fields of the record with this id
//	DELETE | /{table}/{id} | Delete the record with this id
//
// Query parameters on GET:
//
//	Parameter    | Description
//	-------------|---------------------------------------------------
//	?col=value   | Equality filter; repeatable, combined with AND
//	?_sort=col   | Order results by col
//	?_order=desc | Sort direction; anything but desc means asc
//
// Every table and column name taken from a request passes a strict
// identifier allow-list before any SQL is built; all values are bound as
// statement parameters. Errors are returned as {"error": "..."} with 400
// for invalid input, 404 for missing records or tables, and 500 carrying
// the storage engine's message.
//
// Example usage:
//
//	db, err := sqlite.Open("school.db")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Close()
//
//	server := rest.NewServer(db, logger)
//	if err := server.CreateTable(ctx, "students",
//		"id INTEGER PRIMARY KEY, name TEXT, age INTEGER, gpa REAL"); err != nil {
//		log.Fatal(err)
//	}
//	log.Fatal(server.Start(":8080"))
package rest
