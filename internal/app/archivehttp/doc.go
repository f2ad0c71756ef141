// Package archivehttp реализует HTTP-интерфейс медиа-архива поверх локального диска.
// Основные эндпоинты:
//   - POST /upload — принимает multipart-поток и пишет каждое поле в архив по мере чтения.
//   - GET /archive — отдаёт JSON-список имён файлов, лежащих в каталоге архива.
//   - GET /stream/{fileName} — стримит файл как video/mp4 с заголовком Accept-Ranges.
//   - DELETE /delete/{fileName} — удаляет файл из архива.
//   - GET /health — отдаёт агрегированную статистику по каталогу данных для health-check'ов.
//
// Запросы без маршрута получают 404 с единым JSON-телом.
package archivehttp
