package archive

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"path/filepath"
	"sync"
	"time"
)

// Stats описывает текущее наполнение архива.
type Stats struct {
	Files      int   `json:"files"`
	TotalBytes int64 `json:"total_bytes"`
}

// Stats проходит по каталогу архива и суммирует количество и размер файлов.
func (a *Archive) Stats(ctx context.Context) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	var st Stats
	err := filepath.WalkDir(a.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		st.Files++
		st.TotalBytes += info.Size()

		return nil
	})

	// Ещё не созданный каталог эквивалентен пустому архиву.
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Stats{}, err
	}

	return st, nil
}

// StartMonitor периодически пишет статистику архива в лог и возвращает функцию остановки.
// Частичные загрузки намеренно не подчищаются: контракт записи не предполагает отката,
// поэтому монитор только отчитывается.
func (a *Archive) StartMonitor(every time.Duration) func() {
	if every <= 0 {
		return func() {}
	}

	ticker := time.NewTicker(every)
	stop := make(chan struct{})
	var once sync.Once
	go func() {
		for {
			select {
			case <-ticker.C:
				st, err := a.Stats(context.Background())
				if err != nil {
					log.Printf("ARCHIVE stats error: %v", err)
					continue
				}
				log.Printf("ARCHIVE %d files, %d bytes total", st.Files, st.TotalBytes)
			case <-stop:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(stop)
		})
	}
}
