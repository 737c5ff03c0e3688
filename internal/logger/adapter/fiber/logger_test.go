package fiber_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roleadmin/roleadmin/internal/logger"
	adapter "github.com/roleadmin/roleadmin/internal/logger/adapter/fiber"
)

// expectedLoggerJSONFormat implements loggers default json format.
type expectedLoggerJSONFormat struct {
	IP           net.IP    `json:"IP"`
	Status       int       `json:"status"`
	XPerformance float32   `json:"X-Performance"`
	URI          string    `json:"URI"`
	Method       string    `json:"method"`
	Host         string    `json:"host"`
	Route        string    `json:"route"`
	Error        string    `json:"error"`
	Time         time.Time `json:"time"`
}

func consoleJSON() logger.Log {
	return logger.Log{
		EnableAccessLogToConsole: true,
		Console:                  logger.Console{Enabled: true},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		config     adapter.Config
		targetPath string
		want       *expectedLoggerJSONFormat
	}{
		{
			name:       "empty no output at all",
			targetPath: "/",
		},
		{
			name:       "get / log to console json",
			targetPath: "/",
			config:     adapter.Config{Config: consoleJSON()},
			want: &expectedLoggerJSONFormat{
				IP:     net.ParseIP("0.0.0.0"),
				Status: fiber.StatusOK,
				URI:    "/",
				Method: fiber.MethodGet,
				Host:   "example.com",
				Route:  "home",
			},
		},
		{
			name:       "get multiples slash log to console json",
			targetPath: "//test",
			config:     adapter.Config{Config: consoleJSON()},
			want: &expectedLoggerJSONFormat{
				IP:     net.ParseIP("0.0.0.0"),
				Status: fiber.StatusNotFound,
				URI:    "//test",
				Method: fiber.MethodGet,
				Host:   "example.com",
				Error:  "Cannot GET //test",
			},
		},
		{
			name:       "get log with params",
			targetPath: "/?test=123",
			config:     adapter.Config{Config: consoleJSON()},
			want: &expectedLoggerJSONFormat{
				IP:     net.ParseIP("0.0.0.0"),
				Status: fiber.StatusOK,
				URI:    "/?test=123",
				Method: fiber.MethodGet,
				Host:   "example.com",
				Route:  "home",
			},
		},
		{
			name:       "chain error is resolved by the error handler",
			targetPath: "/forbidden",
			config:     adapter.Config{Config: consoleJSON()},
			want: &expectedLoggerJSONFormat{
				IP:     net.ParseIP("0.0.0.0"),
				Status: fiber.StatusForbidden,
				URI:    "/forbidden",
				Method: fiber.MethodGet,
				Host:   "example.com",
				Error:  "Forbidden",
			},
		},
		{
			name:       "checkalive is not logged",
			targetPath: "/checkalive",
			config: adapter.Config{
				Config: func() logger.Log {
					l := consoleJSON()
					l.DisableCheckAlive = true

					return l
				}(),
				CheckAliveURI: "/checkalive",
			},
		},
		{
			name:       "next skips the middleware",
			targetPath: "/",
			config: adapter.Config{
				Config: consoleJSON(),
				Next:   func(*fiber.Ctx) bool { return true },
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := testMiddlewareHelper(t, tt.targetPath, tt.config)

			if tt.want == nil {
				assert.Empty(t, output)
				return
			}

			require.NotEmpty(t, output)

			var decodedOutput expectedLoggerJSONFormat
			require.NoError(t, json.Unmarshal([]byte(output), &decodedOutput))

			assert.Equal(t, tt.want.Host, decodedOutput.Host)
			assert.Equal(t, tt.want.Method, decodedOutput.Method)
			assert.Equal(t, tt.want.Status, decodedOutput.Status)
			assert.Equal(t, tt.want.IP, decodedOutput.IP)
			assert.Equal(t, tt.want.URI, decodedOutput.URI)
			assert.Equal(t, tt.want.Route, decodedOutput.Route)
			assert.Equal(t, tt.want.Error, decodedOutput.Error)
		})
	}
}

func TestPerformanceHeader(t *testing.T) {
	app := fiber.New()
	app.Use(adapter.New())
	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	assert.NotEmpty(t, resp.Header.Get(adapter.HeaderPerformance))
}

func testMiddlewareHelper(t *testing.T, targetPath string, adapterConfig adapter.Config) string {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	// capture stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	os.Stderr = w

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		Immutable:     true,
	})

	app.Use(adapter.New(adapterConfig))

	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString("hello test")
	}).Name("home")

	app.Get("/forbidden", func(_ *fiber.Ctx) error {
		return fiber.ErrForbidden
	})

	app.Get("/checkalive", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, targetPath, nil), 100000)
	if err == nil {
		_ = resp.Body.Close()
	}

	outC := make(chan string)
	// copy the output in a separate goroutine so printing can't block indefinitely
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout = stdout
	os.Stderr = stderr

	require.NoError(t, err)

	return <-outC
}
