package archive

import (
	"context"
	"fmt"
	"os"
)

// List перечисляет имена файлов в каталоге архива. Кэша нет: каждый вызов —
// новое сканирование, порядок имён — порядок перечисления файловой системы.
func (a *Archive) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Пустой архив — не ошибка: каталог создаётся при первом обращении.
	if err := os.MkdirAll(a.Root, 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}

	entries, err := os.ReadDir(a.Root)
	if err != nil {
		return nil, fmt.Errorf("read archive dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	return names, nil
}
