package models

// ResponseError — тело ответа при ошибке: человекочитаемое сообщение плюс код.
type ResponseError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ArchiveResponse содержит список имён файлов, лежащих в архиве на момент запроса.
type ArchiveResponse struct {
	Files []string `json:"files"`
}
