package api

import "time"

// TableResult представляет итог синхронизации одной таблицы за цикл
type TableResult struct {
	Cursor         *time.Time `json:"cursor,omitempty"`      // курсор после цикла
	Table          string     `json:"table"`                 // имя таблицы
	Errors         []string   `json:"errors,omitempty"`      // ошибки таблицы
	Pushed         int        `json:"pushed"`                // отправлено на remote
	PushFailed     int        `json:"push_failed"`           // не удалось отправить
	Pulled         int        `json:"pulled"`                // получено с remote
	PullFailed     int        `json:"pull_failed"`           // не удалось применить локально
	CursorAdvanced bool       `json:"cursor_advanced"`       // курсор сдвинут в этом цикле
}

// CycleResult представляет итог одного цикла синхронизации
type CycleResult struct {
	StartedAt       time.Time     `json:"started_at"`
	FinishedAt      time.Time     `json:"finished_at"`
	CycleID         string        `json:"cycle_id"`
	Tables          []TableResult `json:"tables"`
	Errors          []string      `json:"errors,omitempty"` // ошибки уровня цикла
	DurationMS      int64         `json:"duration_ms"`
	LocalReachable  bool          `json:"local_reachable"`
	RemoteReachable bool          `json:"remote_reachable"`
}

// Cursor представляет сохраненный курсор таблицы
type Cursor struct {
	Watermark time.Time `json:"watermark"`
	Table     string    `json:"table"`
}

// CursorsResponse представляет список курсоров
type CursorsResponse struct {
	Cursors []Cursor `json:"cursors"`
}
