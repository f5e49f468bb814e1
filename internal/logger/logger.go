package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"adsrelay-golang/server/internal/config"
	jsonpkg "adsrelay-golang/server/internal/pkg/json"
)

type LogLevel int

const (
	LogOff  LogLevel = 0 // basic logs only
	LogLow  LogLevel = 1 // + client request/response
	LogHigh LogLevel = 2 // + upstream request/response
)

const (
	ColorReset  = "\x1b[0m"
	ColorGreen  = "\x1b[32m"
	ColorYellow = "\x1b[33m"
	ColorRed    = "\x1b[31m"
	ColorCyan   = "\x1b[36m"
	ColorGray   = "\x1b[90m"
	ColorBlue   = "\x1b[34m"
	ColorPurple = "\x1b[35m"
)

// Bounds for raw upstream bodies printed outside the LogHigh block.
const (
	maxRawLogBytes     = 2048
	maxRawInfoLogBytes = 256
)

var (
	currentLogLevel LogLevel
	output          io.Writer = os.Stdout
)

// SetOutput redirects all log output to w and returns the previous writer.
// It is not safe to call while requests are being served.
func SetOutput(w io.Writer) io.Writer {
	prev := output
	output = w
	return prev
}

func Init(debug string) {
	currentLogLevel = parseLogLevel(debug)
}

func parseLogLevel(debug string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(debug)) {
	case "low":
		return LogLow
	case "high":
		return LogHigh
	default:
		return LogOff
	}
}

func GetLevel() LogLevel {
	return currentLogLevel
}

func Info(format string, args ...any) {
	timestamp := time.Now().Format("15:04:05")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(output, "%s%s%s %s[info]%s %s\n", ColorGray, timestamp, ColorReset, ColorGreen, ColorReset, msg)
}

func Warn(format string, args ...any) {
	timestamp := time.Now().Format("15:04:05")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(output, "%s%s%s %s[warn]%s %s\n", ColorGray, timestamp, ColorReset, ColorYellow, ColorReset, msg)
}

func Error(format string, args ...any) {
	timestamp := time.Now().Format("15:04:05")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(output, "%s%s%s %s[error]%s %s\n", ColorGray, timestamp, ColorReset, ColorRed, ColorReset, msg)
}

func Debug(format string, args ...any) {
	if currentLogLevel < LogLow {
		return
	}
	timestamp := time.Now().Format("15:04:05")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(output, "%s%s%s %s[debug]%s %s\n", ColorGray, timestamp, ColorReset, ColorBlue, ColorReset, msg)
}

func Request(method, path string, status int, duration time.Duration, requestID string) {
	statusColor := ColorGreen
	if status >= 500 {
		statusColor = ColorRed
	} else if status >= 400 {
		statusColor = ColorYellow
	}

	fmt.Fprintf(output, "%s[%s]%s %s %s%d%s %s%dms%s %s%s%s\n",
		ColorCyan, method, ColorReset,
		path,
		statusColor, status, ColorReset,
		ColorGray, duration.Milliseconds(), ColorReset,
		ColorGray, requestID, ColorReset)
}

func ClientRequest(method, path string, rawJSON []byte) {
	if currentLogLevel < LogLow {
		return
	}
	fmt.Fprintf(output, "%s===================== client request =====================%s\n", ColorPurple, ColorReset)
	fmt.Fprintf(output, "%s[client]%s %s%s%s %s\n", ColorPurple, ColorReset, ColorCyan, method, ColorReset, path)
	if len(rawJSON) > 0 {
		fmt.Fprintln(output, formatRawJSON(redactBody(rawJSON)))
	}
	fmt.Fprintf(output, "%s==========================================================%s\n", ColorPurple, ColorReset)
}

func UpstreamRequest(method, url string, headers http.Header, rawJSON []byte) {
	if currentLogLevel < LogHigh {
		return
	}
	fmt.Fprintf(output, "%s==================== upstream request ====================%s\n", ColorYellow, ColorReset)
	fmt.Fprintf(output, "%s[upstream]%s %s%s%s %s\n", ColorYellow, ColorReset, ColorCyan, method, ColorReset, url)
	if headers != nil {
		printJSON(RedactHeaders(headers))
	}
	if len(rawJSON) > 0 {
		fmt.Fprintln(output, formatRawJSON(rawJSON))
	}
	fmt.Fprintf(output, "%s==========================================================%s\n", ColorYellow, ColorReset)
}

// UpstreamResponse prints the raw upstream body. At LogHigh the full text is
// shown, below it a bounded prefix.
func UpstreamResponse(status int, duration time.Duration, raw []byte) {
	statusColor := ColorGreen
	if status >= 400 {
		statusColor = ColorRed
	}
	if currentLogLevel >= LogHigh {
		fmt.Fprintf(output, "%s=================== upstream response ====================%s\n", ColorGreen, ColorReset)
		fmt.Fprintf(output, "%s[upstream]%s %s%d%s %s%dms%s\n", ColorGreen, ColorReset, statusColor, status, ColorReset, ColorGray, duration.Milliseconds(), ColorReset)
		fmt.Fprintln(output, formatRawJSON(raw))
		fmt.Fprintf(output, "%s==========================================================%s\n", ColorGreen, ColorReset)
		return
	}
	limit := maxRawInfoLogBytes
	if currentLogLevel >= LogLow {
		limit = maxRawLogBytes
	}
	Info("upstream %d %dms %d bytes: %s", status, duration.Milliseconds(), len(raw), Truncate(string(raw), limit))
}

// RedactHeaders masks credentials before headers reach the log.
func RedactHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		switch strings.ToLower(k) {
		case "authorization", "proxy-authorization":
			out[k] = []string{"Bearer ***"}
		case "developer-token", "x-api-key":
			out[k] = []string{"***"}
		default:
			out[k] = append([]string(nil), v...)
		}
	}
	return out
}

var sensitiveBodyKeys = []string{"accessToken", "developerToken"}

// redactBody masks credential fields of a client JSON body. Bodies that are
// not JSON objects are returned unchanged.
func redactBody(raw []byte) []byte {
	var m map[string]any
	if err := jsonpkg.Unmarshal(raw, &m); err != nil {
		return raw
	}
	changed := false
	for _, k := range sensitiveBodyKeys {
		if _, ok := m[k]; ok {
			m[k] = "***"
			changed = true
		}
	}
	if !changed {
		return raw
	}
	out, err := jsonpkg.Marshal(m)
	if err != nil {
		return raw
	}
	return out
}

// Truncate shortens s to at most limit bytes without splitting a rune.
func Truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + fmt.Sprintf("...[TRUNCATED: %d bytes]", len(s)-cut)
}

func Banner(cfg *config.Config) {
	fmt.Fprintf(output, `
%s╔════════════════════════════════════════════════════════════╗
║           %sGoogle Ads Relay%s - Go Version                     ║
╚════════════════════════════════════════════════════════════╝%s
`, ColorCyan, ColorGreen, ColorCyan, ColorReset)

	Info("Server starting on %s", cfg.Addr())
	Info("Upstream: %s/%s", cfg.AdsBaseURL, cfg.AdsAPIVersion)
	Info("Debug level: %s", cfg.Debug)

	if cfg.APIKey == "" {
		Warn("API_KEY not set - proxy authentication disabled")
	}
	if cfg.DeveloperToken == "" {
		Warn("DEVELOPER_TOKEN not set - callers must supply developerToken")
	}
	if cfg.ManagerAccountID == "" {
		Info("MANAGER_ACCOUNT_ID not set - login-customer-id only sent when supplied by caller")
	}

	fmt.Fprintln(output)
}

func printJSON(v any) {
	jsonBytes, err := jsonpkg.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(output, "%v\n", v)
		return
	}
	fmt.Fprintln(output, string(jsonBytes))
}

// formatRawJSON re-indents rawJSON without decoding it, so key order and
// number text stay as received.
func formatRawJSON(rawJSON []byte) string {
	var indented bytes.Buffer
	if err := json.Indent(&indented, rawJSON, "", "  "); err != nil {
		return string(rawJSON)
	}
	return indented.String()
}
