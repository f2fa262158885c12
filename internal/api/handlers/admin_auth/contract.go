package admin_auth

type PasswordChecker interface {
	CheckPassword(password string) bool
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
