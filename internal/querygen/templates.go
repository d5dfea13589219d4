package querygen

// statementTemplates shows the shape of each statement kind.
var statementTemplates = map[QueryType]string{
	TypeCreateTable: "CREATE TABLE {table_name} (\n    id SERIAL PRIMARY KEY,\n    {columns}\n);",
	TypeSelect:      "SELECT {columns}\nFROM {table_name}\n{join_clause}\n{where_clause}\n{group_by_clause}\n{order_by_clause}\n{limit_clause};",
	TypeInsert:      "INSERT INTO {table_name} ({columns})\nVALUES ({values})\n{returning_clause};",
	TypeUpdate:      "UPDATE {table_name}\nSET {set_clause}\n{where_clause}\n{returning_clause};",
	TypeDelete:      "DELETE FROM {table_name}\n{where_clause}\n{returning_clause};",
}

// Templates returns the reference card for every statement kind.
func Templates() map[QueryType]Template {
	return map[QueryType]Template{
		TypeSelect: {
			Title:       "SELECT - Retrieve Data",
			Template:    statementTemplates[TypeSelect],
			Explanation: "SELECT queries retrieve data from one or more tables. You can filter rows with WHERE, sort with ORDER BY, limit results with LIMIT, and join tables to combine related data.",
			Example:     "SELECT first_name, last_name, email\nFROM customers\nWHERE status = 'active'\nORDER BY last_name ASC\nLIMIT 10;",
		},
		TypeInsert: {
			Title:       "INSERT - Add Data",
			Template:    statementTemplates[TypeInsert],
			Explanation: "INSERT queries add new rows to a table. You specify the table name, columns, and values. The RETURNING clause can return the newly created data.",
			Example:     "INSERT INTO customers (first_name, last_name, email)\nVALUES ('John', 'Doe', 'john.doe@example.com')\nRETURNING id;",
		},
		TypeUpdate: {
			Title:       "UPDATE - Modify Data",
			Template:    statementTemplates[TypeUpdate],
			Explanation: "UPDATE queries modify existing rows in a table. You specify the table name, column-value pairs to update, and conditions to identify which rows to update.",
			Example:     "UPDATE customers\nSET status = 'inactive', last_updated = NOW()\nWHERE last_login < '2023-01-01'\nRETURNING id;",
		},
		TypeDelete: {
			Title:       "DELETE - Remove Data",
			Template:    statementTemplates[TypeDelete],
			Explanation: "DELETE queries remove rows from a table. You specify the table name and conditions to identify which rows to delete. Always use a WHERE clause to avoid deleting all rows.",
			Example:     "DELETE FROM customers\nWHERE status = 'cancelled' AND last_updated < NOW() - INTERVAL '1 year'\nRETURNING id;",
		},
		TypeCreateTable: {
			Title:       "CREATE TABLE - Define Schema",
			Template:    statementTemplates[TypeCreateTable],
			Explanation: "CREATE TABLE statements define the structure of a new table. You specify column names, data types, constraints, and indexes.",
			Example:     "CREATE TABLE customers (\n    id SERIAL PRIMARY KEY,\n    first_name VARCHAR(50) NOT NULL,\n    last_name VARCHAR(50) NOT NULL,\n    email VARCHAR(100) UNIQUE NOT NULL,\n    status VARCHAR(20) DEFAULT 'active',\n    created_at TIMESTAMP DEFAULT NOW()\n);",
		},
	}
}

// TemplateOrder is the display order for Templates.
var TemplateOrder = []QueryType{TypeSelect, TypeInsert, TypeUpdate, TypeDelete, TypeCreateTable}

// JoinExamples returns the JOIN reference list.
func JoinExamples() []JoinExample {
	return []JoinExample{
		{
			Title:       "INNER JOIN",
			Example:     "SELECT o.order_id, c.customer_name\nFROM orders o\nINNER JOIN customers c ON o.customer_id = c.id",
			Explanation: "Returns only the rows where there is a match in both tables.",
		},
		{
			Title:       "LEFT JOIN",
			Example:     "SELECT c.customer_name, o.order_id\nFROM customers c\nLEFT JOIN orders o ON c.id = o.customer_id",
			Explanation: "Returns all rows from the left table and matching rows from the right table. If no match, NULL values are returned for right table columns.",
		},
		{
			Title:       "RIGHT JOIN",
			Example:     "SELECT c.customer_name, o.order_id\nFROM orders o\nRIGHT JOIN customers c ON o.customer_id = c.id",
			Explanation: "Returns all rows from the right table and matching rows from the left table. If no match, NULL values are returned for left table columns.",
		},
		{
			Title:       "FULL OUTER JOIN",
			Example:     "SELECT c.customer_name, o.order_id\nFROM customers c\nFULL OUTER JOIN orders o ON c.id = o.customer_id",
			Explanation: "Returns all rows when there is a match in either the left or right table. If no match, NULL values are returned for columns from the table without a match.",
		},
	}
}
