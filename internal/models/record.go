package models

import (
	"fmt"
	"maps"
	"slices"
)

// Record представляет одну строку таблицы реплики.
// Движок синхронизации не владеет записями: он только читает их
// и выполняет upsert по идентификатору на другой стороне.
type Record map[string]any

// ID возвращает значение колонки-идентификатора записи.
func (r Record) ID(column string) (any, error) {
	id, ok := r[column]
	if !ok || id == nil {
		return nil, fmt.Errorf("record has no %q value", column)
	}
	return id, nil
}

// Clone создает поверхностную копию записи
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

// Without returns a copy of the record without the given column.
func (r Record) Without(column string) Record {
	out := r.Clone()
	delete(out, column)
	return out
}

// With returns a copy of the record with column set to value.
func (r Record) With(column string, value any) Record {
	out := r.Clone()
	if out == nil {
		out = Record{}
	}
	out[column] = value
	return out
}

// Columns возвращает имена колонок записи в детерминированном порядке
func (r Record) Columns() []string {
	cols := make([]string, 0, len(r))
	for col := range r {
		cols = append(cols, col)
	}
	slices.Sort(cols)
	return cols
}
