package conflicts

import "errors"

var (
	// ErrRepository возвращается, когда не удалось прочитать записи или правила
	ErrRepository = errors.New("conflicts: repository error")
)
