package troubleshoot

// CommonErrors returns the troubleshooting reference list.
func CommonErrors() []CommonError {
	return []CommonError{
		{"Connection Refused", "Unable to connect to the PostgreSQL server.", "Check if the server is running, verify network connectivity, and ensure firewall rules allow connections."},
		{"Authentication Failed", "Server rejected the provided credentials.", "Verify username and password, ensure the user exists, and check pg_hba.conf configuration."},
		{"Permission Denied", "User lacks privileges for the requested operation.", "Grant necessary permissions to the user or connect as a superuser/object owner."},
		{"Relation Not Found", "The specified table or view does not exist.", "Check spelling, verify schema name, and use fully qualified names (schema.table)."},
		{"Syntax Error", "SQL statement contains grammar errors.", "Check for missing/extra punctuation, verify keywords, and ensure proper quoting of identifiers."},
		{"Duplicate Key Violation", "Operation would create a duplicate in a unique constraint.", "Use different values, implement ON CONFLICT clauses, or update existing rows instead."},
		{"Foreign Key Violation", "Operation would break referential integrity.", "Ensure referenced keys exist in parent tables or delete child rows first."},
		{"Out of Memory", "Server ran out of memory processing a query.", "Optimize queries, increase work_mem parameter, or add more physical memory."},
		{"Disk Full", "Server has run out of disk space.", "Free up disk space, add storage, or move data directory to a larger volume."},
	}
}

// examples are canned error messages the error form can be filled with.
var examples = map[ErrorType]string{
	TypeConnectionRefused:    "could not connect to server: Connection refused\nIs the server running on host \"localhost\" (127.0.0.1) and accepting\nTCP/IP connections on port 5432?",
	TypeAuthenticationFailed: "FATAL: password authentication failed for user \"postgres\"\nFATAL: password authentication failed for user \"postgres\"",
	TypePermissionDenied:     "ERROR: permission denied for table customers\nSQL state: 42501",
	TypeRelationNotFound:     "ERROR: relation \"users\" does not exist\nLINE 1: SELECT * FROM users\n                      ^",
	TypeSyntaxError:          "ERROR: syntax error at or near \"SLECT\"\nLINE 1: SLECT * FROM customers\n        ^",
	TypeDuplicateKey:         "ERROR: duplicate key value violates unique constraint \"users_email_key\"\nDETAIL: Key (email)=(john@example.com) already exists.",
	TypeForeignKeyViolation:  "ERROR: insert or update on table \"orders\" violates foreign key constraint \"orders_customer_id_fkey\"\nDETAIL: Key (customer_id)=(999) is not present in table \"customers\".",
	TypeOutOfMemory:          "ERROR: out of memory\nDETAIL: Failed on request of size 2147483647.",
}

// Example returns the canned message for an error type.
func Example(typ ErrorType) (string, bool) {
	s, ok := examples[typ]
	return s, ok
}
