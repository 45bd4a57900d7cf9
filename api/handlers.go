// Package api exposes the index engine over HTTP. The flat-table endpoints
// are the serialization surface: GET returns the flattened index as JSON,
// POST rebuilds an index from a posted table.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CodeStoryApp/ndx-serializable/config"
	"github.com/CodeStoryApp/ndx-serializable/flat"
	"github.com/CodeStoryApp/ndx-serializable/internal/engine"
	"github.com/CodeStoryApp/ndx-serializable/internal/persistence"
)

// API holds dependencies for API handlers: the index engine and the snapshot
// store. The snapshot store may be nil, which disables the snapshot routes.
type API struct {
	engine    *engine.Engine
	snapshots *persistence.SnapshotStore
}

// NewAPI creates a new API handler structure.
func NewAPI(eng *engine.Engine, snapshots *persistence.SnapshotStore) *API {
	return &API{engine: eng, snapshots: snapshots}
}

// SetupRoutes defines all the API routes.
func SetupRoutes(router *gin.Engine, eng *engine.Engine, snapshots *persistence.SnapshotStore) {
	apiHandler := NewAPI(eng, snapshots)

	router.GET("/health", apiHandler.HealthCheckHandler)

	indexRoutes := router.Group("/indexes")
	{
		indexRoutes.POST("", apiHandler.CreateIndexHandler)
		indexRoutes.GET("", apiHandler.ListIndexesHandler)
		indexRoutes.GET("/:indexName", apiHandler.GetIndexHandler)
		indexRoutes.DELETE("/:indexName", apiHandler.DeleteIndexHandler)
		indexRoutes.GET("/:indexName/stats", apiHandler.GetIndexStatsHandler)

		indexRoutes.PUT("/:indexName/documents", apiHandler.AddDocumentsHandler)
		indexRoutes.DELETE("/:indexName/documents/:documentId", apiHandler.DeleteDocumentHandler)

		indexRoutes.GET("/:indexName/terms/:term", apiHandler.LookupTermHandler)

		// The serialization surface: flatten out, rebuild in.
		indexRoutes.GET("/:indexName/flat", apiHandler.GetFlatTableHandler)
		indexRoutes.POST("/:indexName/flat", apiHandler.RestoreFlatTableHandler)

		if snapshots != nil {
			indexRoutes.POST("/:indexName/snapshots", apiHandler.CreateSnapshotHandler)
		}
	}

	if snapshots != nil {
		snapshotRoutes := router.Group("/snapshots")
		{
			snapshotRoutes.GET("", apiHandler.ListSnapshotsHandler)
			snapshotRoutes.GET("/:snapshotId", apiHandler.GetSnapshotHandler)
			snapshotRoutes.DELETE("/:snapshotId", apiHandler.DeleteSnapshotHandler)
			snapshotRoutes.POST("/:snapshotId/restore", apiHandler.RestoreSnapshotHandler)
		}
	}
}

// HealthCheckHandler reports server liveness.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CreateIndexHandler handles the request to create a new index.
// Request Body: config.IndexSettings
func (api *API) CreateIndexHandler(c *gin.Context) {
	var settings config.IndexSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, APIErrorResponse(ErrorCodeInvalidJSON, "Invalid request body: "+err.Error()))
		return
	}

	if err := api.engine.CreateIndex(settings); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Index '" + settings.Name + "' created successfully"})
}

// ListIndexesHandler lists the names of all indexes.
func (api *API) ListIndexesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"indexes": api.engine.ListIndexes()})
}

// GetIndexHandler returns the settings of one index.
func (api *API) GetIndexHandler(c *gin.Context) {
	settings, err := api.engine.GetSettings(c.Param("indexName"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// DeleteIndexHandler deletes an index and its persisted data.
func (api *API) DeleteIndexHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	if err := api.engine.DeleteIndex(indexName); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Index '" + indexName + "' deleted successfully"})
}

// GetIndexStatsHandler returns document/term counts and field statistics.
func (api *API) GetIndexStatsHandler(c *gin.Context) {
	stats, err := api.engine.Stats(c.Param("indexName"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// AddDocumentsHandler handles adding/updating documents in an index.
// Request Body: []engine.Document
func (api *API) AddDocumentsHandler(c *gin.Context) {
	indexName := c.Param("indexName")

	var docs []engine.Document
	if err := c.ShouldBindJSON(&docs); err != nil {
		c.JSON(http.StatusBadRequest, APIErrorResponse(ErrorCodeInvalidJSON, "Invalid request body: "+err.Error()))
		return
	}

	if err := api.engine.AddDocuments(indexName, docs); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Documents indexed successfully", "count": len(docs)})
}

// DeleteDocumentHandler removes one document from an index.
func (api *API) DeleteDocumentHandler(c *gin.Context) {
	if err := api.engine.RemoveDocument(c.Param("indexName"), c.Param("documentId")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}

// LookupTermHandler returns the postings of one exact term.
func (api *API) LookupTermHandler(c *gin.Context) {
	term := c.Param("term")
	postings, err := api.engine.LookupTerm(c.Param("indexName"), term)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"term": term, "postings": postings})
}

// GetFlatTableHandler flattens the index and returns the table as JSON.
func (api *API) GetFlatTableHandler(c *gin.Context) {
	table, err := api.engine.FlatTable(c.Param("indexName"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, table)
}

// RestoreFlatTableHandler rebuilds the index from a posted flat table,
// creating or replacing it.
func (api *API) RestoreFlatTableHandler(c *gin.Context) {
	indexName := c.Param("indexName")

	var table flat.Table[string]
	if err := c.ShouldBindJSON(&table); err != nil {
		c.JSON(http.StatusBadRequest, APIErrorResponse(ErrorCodeInvalidJSON, "Invalid request body: "+err.Error()))
		return
	}

	if err := api.engine.RestoreFlatTable(indexName, &table); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Index '" + indexName + "' restored successfully"})
}

// CreateSnapshotHandler flattens the index and stores the table as a named
// snapshot.
func (api *API) CreateSnapshotHandler(c *gin.Context) {
	indexName := c.Param("indexName")

	table, err := api.engine.FlatTable(indexName)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := api.snapshots.Create(indexName, table)
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIErrorResponse(ErrorCodePersistenceFailed, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"snapshot_id": id, "index_name": indexName})
}

// ListSnapshotsHandler lists the metadata of all stored snapshots.
func (api *API) ListSnapshotsHandler(c *gin.Context) {
	infos, err := api.snapshots.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, APIErrorResponse(ErrorCodePersistenceFailed, err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": infos})
}

// GetSnapshotHandler returns one stored snapshot including its table.
func (api *API) GetSnapshotHandler(c *gin.Context) {
	snap, err := api.snapshots.Get(c.Param("snapshotId"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// DeleteSnapshotHandler removes one stored snapshot.
func (api *API) DeleteSnapshotHandler(c *gin.Context) {
	if err := api.snapshots.Delete(c.Param("snapshotId")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Snapshot deleted successfully"})
}

// restoreSnapshotRequest optionally overrides the index the snapshot is
// restored into.
type restoreSnapshotRequest struct {
	IndexName string `json:"index_name"`
}

// RestoreSnapshotHandler rebuilds an index from a stored snapshot. By default
// the snapshot's original index name is used.
func (api *API) RestoreSnapshotHandler(c *gin.Context) {
	snap, err := api.snapshots.Get(c.Param("snapshotId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req restoreSnapshotRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, APIErrorResponse(ErrorCodeInvalidJSON, "Invalid request body: "+err.Error()))
			return
		}
	}
	indexName := req.IndexName
	if indexName == "" {
		indexName = snap.IndexName
	}

	if err := api.engine.RestoreFlatTable(indexName, snap.Table); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Index '" + indexName + "' restored from snapshot", "index_name": indexName})
}
