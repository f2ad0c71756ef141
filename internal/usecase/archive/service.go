package archive

import (
	"context"
	"io"

	"github.com/oxtoacart/bpool"
)

const (
	// Размер одного буфера копирования — это и есть размер чанка при записи и чтении.
	chunkSize = 64 * 1024
	poolWidth = 32
)

type (
	// Service объединяет операции над файловым архивом.
	Service interface {
		SaveStream(ctx context.Context, name string, r io.Reader) (int64, error)
		OpenStream(ctx context.Context, name string) (io.ReadCloser, int64, error)
		List(ctx context.Context) ([]string, error)
		Delete(ctx context.Context, name string) error
		Stats(ctx context.Context) (Stats, error)
	}
)

type Deps struct {
	// Root — каталог архива; единственное разделяемое состояние сервиса.
	Root string
	// Pool — пул буферов для чанкового копирования, общий для записи и чтения.
	Pool *bpool.BytePool
}

type Archive struct {
	Deps
}

// New конструирует сервис архива с заданными зависимостями.
func New(deps Deps) *Archive {
	if deps.Pool == nil {
		deps.Pool = bpool.NewBytePool(poolWidth, chunkSize)
	}

	return &Archive{Deps: deps}
}

var _ Service = (*Archive)(nil)
