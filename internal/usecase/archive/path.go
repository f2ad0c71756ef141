package archive

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sir_venger/media_archive/internal/models"
)

// resolve валидирует клиентское имя файла и возвращает путь внутри каталога архива.
// Имя используется как ключ хранения дословно, но выход за пределы каталога запрещён.
func (a *Archive) resolve(name string) (string, error) {
	if name == "" ||
		strings.ContainsAny(name, `/\`) ||
		strings.Contains(name, "..") ||
		strings.IndexByte(name, 0) >= 0 {
		return "", fmt.Errorf("%w: invalid file name", models.ErrBadRequest)
	}

	return filepath.Join(a.Root, name), nil
}
