package validation

import (
	"fmt"
	"regexp"
)

// IdentifierPattern определяет допустимый формат имени таблицы или колонки.
// Имена подставляются в SQL и в URL REST API, поэтому допускаются только
// латинские буквы, цифры и нижнее подчеркивание; первый символ не цифра.
var IdentifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]{0,62}$`)

// MaxIdentifierLen соответствует лимиту PostgreSQL (NAMEDATALEN - 1)
const MaxIdentifierLen = 63

// ValidateIdentifier проверяет имя таблицы или колонки
func ValidateIdentifier(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s name cannot be empty", kind)
	}

	if len(name) > MaxIdentifierLen {
		return fmt.Errorf("%s name %q must not exceed %d characters", kind, name, MaxIdentifierLen)
	}

	if !IdentifierPattern.MatchString(name) {
		return fmt.Errorf("%s name %q can only contain letters, numbers and underscores and must not start with a number", kind, name)
	}

	return nil
}

// ValidateTableName проверяет имя таблицы
func ValidateTableName(name string) error {
	return ValidateIdentifier("table", name)
}

// ValidateColumnName проверяет имя колонки
func ValidateColumnName(name string) error {
	return ValidateIdentifier("column", name)
}
