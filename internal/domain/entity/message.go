package entity

// PhotoRef указывает на фотографию на стороне мессенджера.
// Сами байты доступны только через шлюз (port.PhotoSource).
type PhotoRef struct {
	FileID   string // идентификатор файла в мессенджере
	FileSize int64  // размер в байтах, если известен
	Width    int    // ширина в пикселях
	Height   int    // высота в пикселях
}

// InboundMessage — входящее сообщение чата. Неизменяемо после получения.
type InboundMessage struct {
	ChatID  int64
	Text    string
	Caption string
	Photo   *PhotoRef // nil, если фото нет
}

// HasPhoto сообщает, пришло ли сообщение с фотографией.
func (m InboundMessage) HasPhoto() bool {
	return m.Photo != nil
}
