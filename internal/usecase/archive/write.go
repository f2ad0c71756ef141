package archive

import (
	"context"
	"fmt"
	"io"
	"os"
)

// SaveStream пишет поток в файл name чанками, в порядке поступления, не зная итогового
// размера заранее. Повторная загрузка того же имени перезаписывает файл целиком.
func (a *Archive) SaveStream(ctx context.Context, name string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	path, err := a.resolve(name)
	if err != nil {
		return 0, err
	}

	// Каталог архива создаётся лениво, перед первой записью.
	if err := os.MkdirAll(a.Root, 0o755); err != nil {
		return 0, fmt.Errorf("create archive dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}

	// Обёртки прячут ReaderFrom/WriterTo, чтобы копирование шло строго через буфер пула.
	buf := a.Pool.Get()
	n, copyErr := io.CopyBuffer(struct{ io.Writer }{f}, struct{ io.Reader }{r}, buf)
	a.Pool.Put(buf)

	closeErr := f.Close()
	if copyErr != nil {
		// Частично записанный файл остаётся на диске, откат не выполняется.
		return n, fmt.Errorf("write file: %w", copyErr)
	}
	if closeErr != nil {
		return n, fmt.Errorf("close file: %w", closeErr)
	}

	return n, nil
}
