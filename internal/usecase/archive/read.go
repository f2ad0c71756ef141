package archive

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sir_venger/media_archive/internal/models"
)

// OpenStream открывает файл для ленивой почанковой выдачи и возвращает его размер.
// Закрыть ридер обязан вызывающий — после исчерпания потока или обрыва клиента.
func (a *Archive) OpenStream(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	path, err := a.resolve(name)
	if err != nil {
		return nil, 0, models.ErrNotFound
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, models.ErrNotFound
	}

	// Между Stat и Open есть окно гонки: файл могли уже удалить.
	// Поздний сбой — это IO-ошибка, не "не найдено".
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open file: %w", err)
	}

	return f, info.Size(), nil
}
