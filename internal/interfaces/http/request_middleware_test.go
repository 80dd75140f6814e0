package http_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/menu-admin-api/internal/interfaces/http"
	"github.com/jhoicas/menu-admin-api/pkg/logger"
)

type spyObserver struct {
	routes   []string
	statuses []int
}

func (s *spyObserver) ObserveHTTP(_, route string, status int, _ time.Duration) {
	s.routes = append(s.routes, route)
	s.statuses = append(s.statuses, status)
}

func TestRequestLogger_RegistraYObserva(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "test", Level: "info", Output: &buf})
	obs := &spyObserver{}

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	app.Use(apphttp.RequestID())
	app.Use(apphttp.RequestLogger(log, obs))
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/42", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	require.Len(t, obs.routes, 2)
	assert.Equal(t, "/items/:id", obs.routes[0], "se etiqueta por ruta, no por path")
	assert.Equal(t, []int{http.StatusOK, http.StatusNotFound}, obs.statuses)
	assert.Contains(t, buf.String(), `"request_id"`)
	assert.Contains(t, buf.String(), `"status":404`)
}

func TestTimeout_AcotaContexto(t *testing.T) {
	app := fiber.New()
	app.Get("/", apphttp.Timeout(50*time.Millisecond), func(c *fiber.Ctx) error {
		deadline, ok := c.UserContext().Deadline()
		if !ok {
			return c.SendStatus(http.StatusInternalServerError)
		}
		assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
