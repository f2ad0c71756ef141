package archive

import (
	"context"
	"fmt"
	"os"

	"github.com/sir_venger/media_archive/internal/models"
)

// Delete удаляет файл из архива. Проверка существования и удаление не атомарны:
// параллельные запросы соревнуются на уровне файловой системы, выигрывает последний.
func (a *Archive) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := a.resolve(name)
	if err != nil {
		return models.ErrNotFound
	}

	if _, err := os.Stat(path); err != nil {
		return models.ErrNotFound
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove file: %w", err)
	}

	return nil
}
