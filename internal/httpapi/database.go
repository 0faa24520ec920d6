package httpapi

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oakridgedental/clinichub/pkg/types"
)

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.backend.Stats()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, stats)
}

func (s *Server) handleListTables(c *gin.Context) {
	tables, err := s.backend.ListTables()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, tables)
}

func (s *Server) handleListRows(c *gin.Context) {
	// Malformed page/limit fall back to defaults instead of erroring.
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := s.backend.ListRows(c.Param("tableName"), types.ListOptions{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{
		"tableName":  result.TableName,
		"columns":    result.Columns,
		"rows":       result.Rows,
		"pagination": result.Pagination,
	})
}

func (s *Server) handleInsertRow(c *gin.Context) {
	var payload types.Record
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errors.Join(types.ErrEmptyPayload, err))
		return
	}

	id, inserted, err := s.backend.InsertRow(c.Param("tableName"), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, gin.H{"id": id, "insertedData": inserted})
}

func (s *Server) handleUpdateRow(c *gin.Context) {
	var payload types.Record
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errors.Join(types.ErrEmptyPayload, err))
		return
	}

	updated, changes, err := s.backend.UpdateRow(c.Param("tableName"), c.Param("id"), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"id": c.Param("id"), "updatedData": updated, "changes": changes})
}

func (s *Server) handleDeleteRow(c *gin.Context) {
	changes, err := s.backend.DeleteRow(c.Param("tableName"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"id": c.Param("id"), "changes": changes})
}

func (s *Server) handleSearch(c *gin.Context) {
	query, ok := c.GetQuery("q")
	if !ok {
		respondError(c, types.ErrEmptyQuery)
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	results, err := s.backend.Search(query, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"query": query, "results": results, "total": len(results)})
}

func (s *Server) handleCreateBackup(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	// An empty body means a default-named backup.
	_ = c.ShouldBindJSON(&body)

	result, err := s.backend.CreateBackup(body.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

func (s *Server) handleListBackups(c *gin.Context) {
	backups, err := s.backend.ListBackups()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, backups)
}

func (s *Server) handleRawQuery(c *gin.Context) {
	var body struct {
		Query  string `json:"query"`
		Params []any  `json:"params"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, errors.Join(types.ErrEmptyQuery, err))
		return
	}

	results, err := s.backend.RunQuery(body.Query, body.Params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"query": body.Query, "results": results, "count": len(results)})
}
