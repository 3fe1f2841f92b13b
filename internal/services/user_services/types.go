// File: internal/services/user_services/types.go
package user_services

// Logger interface for all user services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// mask keeps the first four characters of an identifier for logs.
func mask(s string) string {
	r := []rune(s)
	if len(r) <= 4 {
		return string(r) + "****"
	}
	return string(r[:4]) + "****"
}

// Fixed administrator account created by InitAdmin.
const (
	AdminUserID   = "chatbot"
	AdminPassword = "260128"
	AdminUsername = "관리자"
	AdminEmail    = "admin@chatbot.com"
	AdminPhone    = "000-0000-0000"
)

const (
	msgRegisterMissing   = "ID, 이름, 이메일, 핸드폰번호, 비밀번호를 모두 입력해주세요."
	msgUserIDTooShort    = "ID는 4자 이상이어야 합니다."
	msgPasswordTooShort  = "비밀번호는 6자 이상이어야 합니다."
	msgUserIDTaken       = "이미 사용 중인 ID입니다."
	msgEmailTaken        = "이미 사용 중인 이메일입니다."
	msgLoginMissing      = "ID와 비밀번호를 입력해주세요."
	msgInvalidLogin      = "ID 또는 비밀번호가 올바르지 않습니다."
	MsgAdminExists       = "관리자 계정이 이미 존재합니다."
	MsgAdminCreated      = "관리자 계정이 생성되었습니다. (ID: chatbot, PW: 260128)"
	MsgRegisterSucceeded = "회원가입이 완료되었습니다."
	MsgLoginSucceeded    = "로그인 성공"

	minUserIDLength   = 4
	minPasswordLength = 6
)
