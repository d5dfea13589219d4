package querygen

// QueryType is a supported statement kind.
type QueryType string

const (
	TypeSelect      QueryType = "select"
	TypeInsert      QueryType = "insert"
	TypeUpdate      QueryType = "update"
	TypeDelete      QueryType = "delete"
	TypeCreateTable QueryType = "create_table"
)

// Request carries the query form's fields. Every clause is free text
// copied into the statement as written.
type Request struct {
	QueryType     QueryType `json:"query_type"`
	TableName     string    `json:"table_name" validate:"required"`
	Columns       string    `json:"columns"`
	Conditions    string    `json:"conditions"`
	JoinTable     string    `json:"join_table"`
	JoinCondition string    `json:"join_condition"`
	OrderBy       string    `json:"order_by"`
	GroupBy       string    `json:"group_by"`
	Limit         string    `json:"limit"`
}

// Template documents one statement kind.
type Template struct {
	Title       string `json:"title"`
	Template    string `json:"template"`
	Explanation string `json:"explanation"`
	Example     string `json:"example"`
}

// JoinExample documents one JOIN flavour.
type JoinExample struct {
	Title       string `json:"title"`
	Example     string `json:"example"`
	Explanation string `json:"explanation"`
}
