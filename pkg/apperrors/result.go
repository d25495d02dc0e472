package apperrors

// Hint - подсказка UI, что делать дальше после неудачного действия
type Hint string

const (
	HintNone          Hint = ""
	HintRegister      Hint = "register"
	HintResetPassword Hint = "reset_password"
	HintVerifyOTP     Hint = "verify_otp"
	HintSignIn        Hint = "sign_in"
)

// Result - структурированный ответ публичных действий.
// Действия не возвращают error, только Result.
type Result struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Hint    Hint      `json:"hint,omitempty"`
	Code    ErrorCode `json:"code,omitempty"`
	ID      string    `json:"id,omitempty"`
}

// OK - успешный результат, id созданной/измененной сущности опционален
func OK(id string) Result {
	return Result{Success: true, ID: id}
}

// ResultFrom превращает ошибку сервиса в Result. nil дает успех.
func ResultFrom(err error) Result {
	if err == nil {
		return Result{Success: true}
	}
	appErr, ok := AsAppError(err)
	if !ok {
		return Result{Success: false, Message: err.Error(), Code: CodeInternalError}
	}
	return Result{
		Success: false,
		Message: appErr.Message,
		Hint:    appErr.Hint,
		Code:    appErr.Code,
	}
}
