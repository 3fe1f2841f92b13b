package feed

// Logger is the logging surface the feed package needs.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

const (
	// MaxItems caps the articles returned for one keyword.
	MaxItems = 10
	// UnknownSource labels an entry whose publisher is missing.
	UnknownSource = "알 수 없음"

	DefaultBaseURL = "https://news.google.com/rss/search"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)
