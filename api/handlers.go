// Package api exposes the query pipeline over HTTP.
//
// The Database is never mutated after startup, so handlers read it from
// concurrent requests without locking.
package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vegasq/rsql/query"
	"github.com/vegasq/rsql/table"
)

// Handler serves queries against one Database
type Handler struct {
	db *table.Database
}

func NewHandler(db *table.Database) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.POST("/query", h.Query)
	api.GET("/tables", h.ListTables)
	api.GET("/tables/:name", h.GetTable)
}

type queryRequest struct {
	SQL string `json:"sql"`
}

type statementResponse struct {
	Statement string      `json:"statement"`
	Header    []string    `json:"header"`
	Rows      []table.Row `json:"rows"`
	Error     string      `json:"error,omitempty"`
}

type tableResponse struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    int      `json:"rows"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// --- HANDLERS ---

// Query runs every statement in the request body. A parse error rejects the
// whole batch with 400; per-statement failures are reported inline.
func (h *Handler) Query(c echo.Context) error {
	var req queryRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if strings.TrimSpace(req.SQL) == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "sql must not be empty"})
	}

	results, err := query.Run(req.SQL, h.db)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	resp := make([]statementResponse, 0, len(results))
	for _, r := range results {
		sr := statementResponse{Statement: r.SQL}
		if r.Err != nil {
			sr.Error = r.Err.Error()
		} else {
			sr.Header = r.Result.Header
			sr.Rows = r.Result.Rows
		}
		resp = append(resp, sr)
	}
	return c.JSON(http.StatusOK, resp)
}

// ListTables returns every table with its columns and row count
func (h *Handler) ListTables(c echo.Context) error {
	names := h.db.Names()
	resp := make([]tableResponse, 0, len(names))
	for _, name := range names {
		t, schema, _ := h.db.Lookup(name)
		resp = append(resp, tableResponse{Name: name, Columns: schema, Rows: t.Len()})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetTable returns one table's columns and row count
func (h *Handler) GetTable(c echo.Context) error {
	name := c.Param("name")
	t, schema, ok := h.db.Lookup(name)
	if !ok {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "table " + name + " not found"})
	}
	return c.JSON(http.StatusOK, tableResponse{Name: name, Columns: schema, Rows: t.Len()})
}
