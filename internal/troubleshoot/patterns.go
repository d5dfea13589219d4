package troubleshoot

import "regexp"

type pattern struct {
	typ ErrorType
	res []*regexp.Regexp
}

func compile(typ ErrorType, exprs ...string) pattern {
	p := pattern{typ: typ}
	for _, e := range exprs {
		p.res = append(p.res, regexp.MustCompile("(?i)"+e))
	}
	return p
}

// patterns is checked in order; the first match wins.
var patterns = []pattern{
	compile(TypeConnectionRefused, "connection refused", "could not connect to server"),
	compile(TypeAuthenticationFailed, "password authentication failed", "no password supplied", "role .* does not exist"),
	compile(TypePermissionDenied, "permission denied", "insufficient privilege"),
	compile(TypeRelationNotFound, "relation .* does not exist", "table .* does not exist"),
	compile(TypeSyntaxError, "syntax error", "expected but found"),
	compile(TypeDuplicateKey, "duplicate key value violates unique constraint", "already exists"),
	compile(TypeForeignKeyViolation, "violates foreign key constraint", "is not present in table"),
	compile(TypeOutOfMemory, "out of memory", "insufficient memory"),
	compile(TypeDiskFull, "no space left on device", "could not extend file"),
}

// Classify returns the type of the first matching pattern.
func Classify(text string) ErrorType {
	for _, p := range patterns {
		for _, re := range p.res {
			if re.MatchString(text) {
				return p.typ
			}
		}
	}
	return TypeUnknown
}

type details struct {
	explanation string
	solution    string
}

var errorDetails = map[ErrorType]details{
	TypeConnectionRefused: {
		"The PostgreSQL server is not accepting connections. This could be because the server is not running, network connectivity issues, or firewall rules blocking the connection.",
		"1. Verify that the PostgreSQL server is running\n" +
			"2. Check network connectivity between your client and the server\n" +
			"3. Ensure firewall rules allow connections to the PostgreSQL port (default: 5432)\n" +
			"4. Confirm the correct host and port in your connection string",
	},
	TypeAuthenticationFailed: {
		"The provided credentials were rejected by the PostgreSQL server. This could be due to incorrect username/password, or the user may not have permission to connect to the database.",
		"1. Double-check your username and password\n" +
			"2. Verify that the user exists in the PostgreSQL server\n" +
			"3. Check pg_hba.conf configuration on the server\n" +
			"4. Try connecting with a different authentication method if available",
	},
	TypePermissionDenied: {
		"The authenticated user does not have sufficient privileges to perform the requested operation.",
		"1. Connect as a superuser or the object owner\n" +
			"2. Grant the necessary permissions to the user:\n" +
			"   - For tables: GRANT SELECT, INSERT, UPDATE, DELETE ON table_name TO username;\n" +
			"   - For schemas: GRANT USAGE ON SCHEMA schema_name TO username;\n" +
			"3. Check the user's role memberships and privileges",
	},
	TypeRelationNotFound: {
		"PostgreSQL cannot find the specified table, view, or other relation. This could be because it doesn't exist, or because it exists in a different schema that is not in your search_path.",
		"1. Check the spelling of the table/relation name\n" +
			"2. Verify the schema name and search_path\n" +
			"3. Use the fully qualified name: schema_name.table_name\n" +
			"4. Check if the table exists with: \\dt schema_name.* (in psql)",
	},
	TypeSyntaxError: {
		"There is a syntax error in your SQL statement. PostgreSQL cannot parse the statement because it doesn't conform to SQL grammar rules.",
		"1. Check for missing or extra parentheses, commas, or quotes\n" +
			"2. Verify keywords are spelled correctly\n" +
			"3. Ensure identifiers are properly quoted if they contain special characters\n" +
			"4. Compare your syntax with PostgreSQL documentation examples",
	},
	TypeDuplicateKey: {
		"The operation would create a duplicate value in a unique or primary key constraint. PostgreSQL enforces uniqueness and prevents the operation.",
		"1. Use a different key value that doesn't already exist\n" +
			"2. Use ON CONFLICT clause with INSERT statements to handle duplicates\n" +
			"3. If appropriate, consider using UPDATE instead of INSERT\n" +
			"4. Check if the uniqueness constraint is still necessary for your application",
	},
	TypeForeignKeyViolation: {
		"The operation would violate a foreign key constraint. This happens when you try to insert a reference to a non-existent parent row, or delete a parent row that is still referenced by child rows.",
		"1. For INSERTs: Ensure the referenced key exists in the parent table first\n" +
			"2. For DELETEs: Either delete child rows first, or use CASCADE option\n" +
			"3. Consider using ON DELETE SET NULL in your foreign key definition\n" +
			"4. Verify the integrity of your data across related tables",
	},
	TypeOutOfMemory: {
		"The PostgreSQL server has run out of memory while processing your query. This can happen with complex queries, large data sets, or if the server's memory parameters are set too low.",
		"1. Optimize your query to use less memory (avoid large IN lists, use JOINs efficiently)\n" +
			"2. Increase work_mem parameter in postgresql.conf\n" +
			"3. Add more physical memory to your server\n" +
			"4. Consider partitioning large tables to reduce memory requirements",
	},
	TypeDiskFull: {
		"The PostgreSQL server has run out of disk space. This prevents it from writing new data or temporary files needed for query execution.",
		"1. Free up disk space by removing unnecessary files\n" +
			"2. Add additional storage to the server\n" +
			"3. Move the PostgreSQL data directory to a larger volume\n" +
			"4. Enable table autovacuum to reclaim space from deleted rows",
	},
	TypeUnknown: {
		"This is an unrecognized PostgreSQL error that doesn't match common error patterns.",
		"1. Check the PostgreSQL documentation for specific error codes\n" +
			"2. Search PostgreSQL mailing lists or forums for similar errors\n" +
			"3. Review server logs for additional context\n" +
			"4. Try simplifying your operation to isolate the issue",
	},
}
