package event

// SortAppliedData is the data for sort.applied events.
type SortAppliedData struct {
	URI     string `json:"uri"`
	Changed bool   `json:"changed"`
}

// SortErrorData is the data for sort.error events.
type SortErrorData struct {
	URI   string `json:"uri,omitempty"`
	Error string `json:"error"`
}

// NoticePostedData is the data for notice.posted events: a one-line
// user-visible message.
type NoticePostedData struct {
	Message string `json:"message"`
}

// StatusUpdatedData is the data for status.updated events, mirroring the
// progress indicator.
type StatusUpdatedData struct {
	Text    string `json:"text"`
	Visible bool   `json:"visible"`
}

// ConfigWarningData is the data for config.warning events.
type ConfigWarningData struct {
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// ConfigChangedData is the data for config.changed events emitted by the
// project-configuration watcher.
type ConfigChangedData struct {
	Path string `json:"path"`
}

// BatchStartedData is the data for batch.started events.
type BatchStartedData struct {
	BatchID   string `json:"batchID"`
	Directory string `json:"directory"`
}

// BatchFileData is the data for batch.file events: one file finished with a
// running count.
type BatchFileData struct {
	BatchID  string `json:"batchID"`
	FilePath string `json:"filePath"`
	Changed  bool   `json:"changed"`
	Count    int    `json:"count"`
}

// BatchDoneData is the data for batch.done events.
type BatchDoneData struct {
	BatchID string `json:"batchID"`
	Total   int    `json:"total"`
}

// BatchErrorData is the data for batch.error events. Count carries how many
// files completed before the failure.
type BatchErrorData struct {
	BatchID  string `json:"batchID"`
	FilePath string `json:"filePath,omitempty"`
	Error    string `json:"error"`
	Count    int    `json:"count"`
}
