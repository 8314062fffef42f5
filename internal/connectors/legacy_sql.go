package connectors

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// LegacySQLConnector reads from a legacy ERP database over database/sql.
// Supported types are "postgresql" and "mysql".
type LegacySQLConnector struct {
	dbType string
	db     *sql.DB
}

func NewLegacySQLConnector(dbType string) Connector {
	return &LegacySQLConnector{dbType: dbType}
}

func (c *LegacySQLConnector) Connect(ctx context.Context, config map[string]string) error {
	connStr, err := c.buildConnectionString(config)
	if err != nil {
		return fmt.Errorf("failed to build connection string: %w", err)
	}

	driver := c.dbType
	if c.dbType == "postgresql" {
		driver = "postgres"
	}

	db, err := sql.Open(driver, connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)

	c.db = db
	return nil
}

func (c *LegacySQLConnector) Disconnect(ctx context.Context) error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *LegacySQLConnector) Query(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	if c.db == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	query, args := c.buildSQLQuery(req)

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	data, err := c.rowsToMaps(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to process query results: %w", err)
	}

	return &QueryResponse{
		Data:       data,
		TotalCount: int64(len(data)),
		Timestamp:  time.Now(),
	}, nil
}

func (c *LegacySQLConnector) TestConnection(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("database connection not established")
	}
	return c.db.PingContext(ctx)
}

func (c *LegacySQLConnector) GetType() string {
	return c.dbType
}

func (c *LegacySQLConnector) buildConnectionString(config map[string]string) (string, error) {
	host := config["host"]
	database := config["database"]
	username := config["username"]
	password := config["password"]

	if host == "" || database == "" || username == "" {
		return "", fmt.Errorf("missing required connection parameters")
	}

	port, _ := strconv.Atoi(config["port"])
	if port == 0 {
		if c.dbType == "postgresql" {
			port = 5432
		} else {
			port = 3306
		}
	}

	if c.dbType == "postgresql" {
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			host, port, username, password, database,
		), nil
	}

	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?parseTime=true",
		username, password, host, port, database,
	), nil
}

func (c *LegacySQLConnector) buildSQLQuery(req QueryRequest) (string, []interface{}) {
	var query strings.Builder
	var args []interface{}
	argIndex := 1

	query.WriteString("SELECT ")
	if len(req.Fields) > 0 {
		query.WriteString(strings.Join(req.Fields, ", "))
	} else {
		query.WriteString("*")
	}

	query.WriteString(fmt.Sprintf(" FROM %s", req.Table))

	if len(req.Filters) > 0 {
		query.WriteString(" WHERE ")
		conditions := []string{}
		for field, value := range req.Filters {
			conditions = append(conditions, fmt.Sprintf("%s = %s", field, c.getPlaceholder(argIndex)))
			args = append(args, value)
			argIndex++
		}
		query.WriteString(strings.Join(conditions, " AND "))
	}

	if len(req.Sort) > 0 {
		query.WriteString(" ORDER BY ")
		sortClauses := []string{}
		for field, direction := range req.Sort {
			dir := "ASC"
			if direction == -1 {
				dir = "DESC"
			}
			sortClauses = append(sortClauses, fmt.Sprintf("%s %s", field, dir))
		}
		query.WriteString(strings.Join(sortClauses, ", "))
	}

	if req.Limit > 0 {
		query.WriteString(fmt.Sprintf(" LIMIT %d", req.Limit))
	}
	if req.Offset > 0 {
		query.WriteString(fmt.Sprintf(" OFFSET %d", req.Offset))
	}

	return query.String(), args
}

func (c *LegacySQLConnector) getPlaceholder(index int) string {
	if c.dbType == "postgresql" {
		return fmt.Sprintf("$%d", index)
	}
	return "?"
}

func (c *LegacySQLConnector) rowsToMaps(rows *sql.Rows) ([]map[string]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := []map[string]interface{}{}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make(map[string]interface{})
		for i, col := range columns {
			val := values[i]
			if b, ok := val.([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = val
			}
		}

		result = append(result, row)
	}

	return result, rows.Err()
}
