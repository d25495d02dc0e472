package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// Общие, не-доменные коды ошибок
const (
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeLimitExceeded    ErrorCode = "LIMIT_EXCEEDED"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Аутентификация и Авторизация
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	CodeEmailExists        ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeNoSession          ErrorCode = "NO_SESSION"

	// Синхронизация и локальное хранилище
	CodeGatewayUnreachable ErrorCode = "GATEWAY_UNREACHABLE"
	CodeStorageFull        ErrorCode = "STORAGE_FULL"
	CodeStorageCorrupt     ErrorCode = "STORAGE_CORRUPT"

	// Жизненный цикл отклика
	CodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
)
