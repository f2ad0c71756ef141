package archiveclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/sir_venger/media_archive/internal/models"
	"github.com/sir_venger/media_archive/pkg/archiveproto"
)

type Client interface {
	// Upload Отправить локальный файл в архив
	Upload(ctx context.Context, baseURL, path string) error
	// UploadAll Отправить несколько файлов с ограниченным параллелизмом
	UploadAll(ctx context.Context, baseURL string, paths []string, parallel int) error
	// Fetch Получить содержимое файла из архива
	Fetch(ctx context.Context, baseURL, name string) (io.ReadCloser, error)
	// List Получить список имён файлов архива
	List(ctx context.Context, baseURL string) ([]string, error)
	// Remove Удалить файл из архива
	Remove(ctx context.Context, baseURL, name string) error
}

type httpClient struct {
	c *http.Client
}

// New создаёт HTTP-клиент по умолчанию.
func New() Client {
	return &httpClient{
		c: &http.Client{},
	}
}

// Upload стримит локальный файл в архив через multipart, не буферизуя его целиком.
func (h *httpClient) Upload(ctx context.Context, baseURL, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	name := filepath.Base(path)
	bar := newProgressBar(fmt.Sprintf("Uploading %s", name), info.Size())

	// Тело запроса читается из pipe: multipart-писатель работает в отдельной горутине,
	// поэтому в памяти одновременно находится лишь один чанк файла.
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile(archiveproto.UploadFieldName, name)
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, io.TeeReader(f, progressWriter{bar: bar})); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_ = pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+archiveproto.UploadPath, pr)
	if err != nil {
		bar.Fail(err)
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	bar.render(true)

	resp, err := h.c.Do(req)
	if err != nil {
		bar.Fail(err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("archive POST failed: %s", resp.Status)
		bar.Fail(err)
		return err
	}

	bar.Finish()
	return nil
}

// UploadAll загружает несколько файлов, не более parallel одновременно.
func (h *httpClient) UploadAll(ctx context.Context, baseURL string, paths []string, parallel int) error {
	if parallel <= 0 {
		parallel = 1
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(parallel)
	for _, p := range paths {
		p := p
		eg.Go(func() error {
			return h.Upload(egCtx, baseURL, p)
		})
	}

	return eg.Wait()
}

// Fetch скачивает файл из архива и возвращает поток с телом.
func (h *httpClient) Fetch(ctx context.Context, baseURL, name string) (io.ReadCloser, error) {
	u := fmt.Sprintf(archiveproto.StreamPathFormat, baseURL, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, models.ErrNotFound
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("archive GET failed: %s", resp.Status)
	}

	bar := newProgressBar(fmt.Sprintf("Downloading %s", name), resp.ContentLength)
	bar.render(true)

	return newProgressReadCloser(resp.Body, bar), nil
}

// List запрашивает каталог архива.
func (h *httpClient) List(ctx context.Context, baseURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+archiveproto.ArchivePath, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("archive list failed: %s", resp.Status)
	}

	var out models.ArchiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	return out.Files, nil
}

// Remove удаляет файл из архива.
func (h *httpClient) Remove(ctx context.Context, baseURL, name string) error {
	u := fmt.Sprintf(archiveproto.DeletePathFormat, baseURL, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return models.ErrNotFound
	default:
		return fmt.Errorf("archive DELETE failed: %s", resp.Status)
	}
}
