package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

const (
	// DBContextKey - ключ для *gorm.DB (пул или транзакция)
	DBContextKey = contextKey("db")
	// ClaimsContextKey - ключ для *auth.Claims проверенного токена
	ClaimsContextKey = contextKey("claims")
)
