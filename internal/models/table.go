package models

// Default column names used by the point-of-sale schema.
const (
	DefaultIDColumn      = "id"
	DefaultSyncedColumn  = "synced"
	DefaultUpdatedColumn = "updated_at"
)

// Role идентифицирует сторону синхронизации
type Role string

const (
	// RoleLocal локальная реплика, работающая без сети
	RoleLocal Role = "local"
	// RoleRemote удаленная каноническая реплика
	RoleRemote Role = "remote"
)

// String implements fmt.Stringer
func (r Role) String() string {
	return string(r)
}

// Table описывает единицу синхронизации.
// Набор таблиц задается конфигурацией и не определяется во время работы.
type Table struct {
	Name          string `json:"name"`           // Name имя таблицы на обеих сторонах
	IDColumn      string `json:"id_column"`      // IDColumn уникальный идентификатор записи
	SyncedColumn  string `json:"synced_column"`  // SyncedColumn флаг "уже отправлено на remote" (только local)
	UpdatedColumn string `json:"updated_column"` // UpdatedColumn время последнего изменения (используется для pull)
}

// NewTable creates a table descriptor with the default column names.
func NewTable(name string) Table {
	return Table{
		Name:          name,
		IDColumn:      DefaultIDColumn,
		SyncedColumn:  DefaultSyncedColumn,
		UpdatedColumn: DefaultUpdatedColumn,
	}
}

// WithDefaults fills empty column names with the defaults.
func (t Table) WithDefaults() Table {
	if t.IDColumn == "" {
		t.IDColumn = DefaultIDColumn
	}
	if t.SyncedColumn == "" {
		t.SyncedColumn = DefaultSyncedColumn
	}
	if t.UpdatedColumn == "" {
		t.UpdatedColumn = DefaultUpdatedColumn
	}
	return t
}

// TableNames returns the names of tables in configured order.
func TableNames(tables []Table) []string {
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t.Name)
	}
	return names
}
