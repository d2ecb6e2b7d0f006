// Package main provides a CLI for rendering and applying sequin-generated
// DDL (trigger functions, triggers, views) defined in a tables.yaml file.
//
// The CLI supports:
//   - render: Print the generated DDL without touching a database
//   - migrate: Apply the generated DDL to PostgreSQL, idempotently
//   - config: Show the effective configuration
//
// Commands that require database access (migrate) need --db or a configured
// database URL. render works purely from files.
package main

func main() {
	Execute()
}
