package schema

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
)

// BuildCreateTableSQL reconstructs a CREATE TABLE statement. A single
// column primary key is declared inline, a composite one as a trailing
// clause. Primary and foreign key constraints are not repeated from the
// constraint list.
func BuildCreateTableSQL(table string, cols []Column, pk []string, fks []ForeignKey, cons []Constraint) string {
	var defs []string
	for _, c := range cols {
		def := "    " + c.Name + " " + c.Type
		if len(pk) == 1 && slices.Contains(pk, c.Name) {
			def += " PRIMARY KEY"
		}
		if !c.Nullable {
			def += " NOT NULL"
		}
		if c.Default != "None" && c.Default != "" {
			def += " DEFAULT " + c.Default
		}
		defs = append(defs, def)
	}

	if len(pk) > 1 {
		defs = append(defs, "    PRIMARY KEY ("+strings.Join(pk, ", ")+")")
	}

	for _, fk := range fks {
		defs = append(defs, "    CONSTRAINT "+fk.Name+" FOREIGN KEY ("+strings.Join(fk.Columns, ", ")+") "+
			"REFERENCES "+fk.ReferredTable+" ("+strings.Join(fk.ReferredColumns, ", ")+")")
	}

	seen := make(map[string]bool)
	for _, c := range cons {
		if c.Type == "PRIMARY KEY" || c.Type == "FOREIGN KEY" || seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		// pg_get_constraintdef already starts with the constraint keyword.
		if c.Definition != "" {
			defs = append(defs, "    CONSTRAINT "+c.Name+" "+c.Definition)
		} else {
			defs = append(defs, "    CONSTRAINT "+c.Name+" "+c.Type)
		}
	}

	return "CREATE TABLE " + table + " (\n" + strings.Join(defs, ",\n") + "\n);"
}

// SampleDataStructure returns an indented JSON object with one example
// value per column, in column order.
func SampleDataStructure(cols []Column) string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(c.Name)
		val, _ := json.Marshal(sampleValue(c.Type))
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return buf.String()
	}
	return out.String()
}

func sampleValue(typ string) any {
	t := strings.ToLower(typ)
	switch {
	case strings.HasSuffix(t, "[]") || strings.Contains(t, "array"):
		return []int{1, 2, 3}
	case strings.Contains(t, "int"), strings.Contains(t, "serial"):
		return 1
	case strings.Contains(t, "float"), strings.Contains(t, "double"),
		strings.Contains(t, "numeric"), strings.Contains(t, "decimal"), strings.Contains(t, "real"):
		return json.Number("1.0")
	case strings.Contains(t, "bool"):
		return true
	case strings.Contains(t, "date"):
		return "2023-01-01"
	case strings.Contains(t, "time"):
		if strings.Contains(t, "with time zone") || strings.Contains(t, "timezone") {
			return "2023-01-01T12:00:00Z"
		}
		return "2023-01-01T12:00:00"
	case strings.Contains(t, "json"):
		return map[string]string{"key": "value"}
	case strings.Contains(t, "char"), strings.Contains(t, "text"):
		return "sample_text"
	default:
		return "unknown_type"
	}
}
