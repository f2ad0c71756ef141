// Package archiveproto описывает HTTP-протокол медиа-архива, общий для сервера и клиента.
package archiveproto

// Параметры REST-протокола архива.
const (
	UploadPath       = "/upload"
	ArchivePath      = "/archive"
	HealthPath       = "/health"
	StreamPathFormat = "%s/stream/%s"
	DeletePathFormat = "%s/delete/%s"

	// Имя multipart-поля, в котором клиент передаёт файлы.
	UploadFieldName = "files"

	StreamContentType = "video/mp4"
	AcceptRangesValue = "bytes"
)
