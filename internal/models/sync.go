package models

// SyncEntity names the kind of record a sync run reconciles
type SyncEntity string

const (
	SyncEntityBrands          SyncEntity = "brands"
	SyncEntityCategories      SyncEntity = "categories"
	SyncEntityChannelProducts SyncEntity = "channel_products"
)

// SyncItemResult is the outcome of reconciling a single remote item.
// Data holds the stored record on success and the remote item on failure.
type SyncItemResult struct {
	Error   bool        `json:"error"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// SyncFailure identifies one failed item so a caller can retry just that subset
type SyncFailure struct {
	ID    int    `json:"id"`
	Error string `json:"error"`
}

// SyncResult is the report of a sync run. Success is false iff at least one
// item failed.
type SyncResult struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    []SyncItemResult `json:"data"`
	Failed  []SyncFailure    `json:"failed,omitempty"`
}

// NewSyncResult builds the report for entity from per-item results
func NewSyncResult(entity SyncEntity, items []SyncItemResult, failed []SyncFailure) *SyncResult {
	result := &SyncResult{
		Success: len(failed) == 0,
		Data:    items,
		Failed:  failed,
	}
	if result.Data == nil {
		result.Data = []SyncItemResult{}
	}
	if result.Success {
		result.Message = "sync of " + string(entity) + " completed"
	} else {
		result.Message = "sync of " + string(entity) + " completed with errors"
	}
	return result
}

// FailedCount returns the number of items that could not be reconciled
func (r *SyncResult) FailedCount() int {
	return len(r.Failed)
}
