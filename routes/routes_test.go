package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamcipx/portofolio-sub000/commerce"
	"github.com/teamcipx/portofolio-sub000/middleware"
	"github.com/teamcipx/portofolio-sub000/provider"
	"github.com/teamcipx/portofolio-sub000/shared/config"
	"github.com/teamcipx/portofolio-sub000/shared/email"
	"github.com/teamcipx/portofolio-sub000/shared/models"
	"github.com/teamcipx/portofolio-sub000/shared/store"
	"github.com/teamcipx/portofolio-sub000/theme"
)

const (
	testAdminPassword = "hunter2"
	testPanelKey      = "panel-key"
	testPreviewToken  = "sneak-peek"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type stubChat struct {
	text string
	err  error
}

func (s stubChat) Chat(ctx context.Context, req *provider.ChatRequest) (*provider.ChatResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &provider.ChatResponse{Text: s.text}, nil
}

type testSite struct {
	app     *fiber.App
	store   *store.Memory
	engine  *theme.Engine
	cookies []*http.Cookie
}

// newTestSite stands up the full HTTP surface the way main does, minus
// tracing, on an in-memory store with settings already loaded.
func newTestSite(t *testing.T, opts ...func(*Deps)) *testSite {
	t.Helper()

	log := testLogger()
	st := store.NewMemory()
	engine := theme.NewEngine(st, log)
	t.Cleanup(engine.Close)
	engine.Load(context.Background())

	cfg := &config.Config{}
	cfg.Secrets.AdminPassword = testAdminPassword
	cfg.Secrets.ConfigPanelKey = testPanelKey
	cfg.Secrets.PreviewToken = testPreviewToken
	cfg.Secrets.JWTSigningKey = "test-signing-key"

	carts := commerce.NewManager(st, log, 0)
	t.Cleanup(carts.Close)

	deps := Deps{
		Engine:   engine,
		Store:    st,
		Commerce: carts,
		Mailer:   email.NewNotifier("", 0, "", "", "", "", log),
		Cfg:      cfg,
		Log:      log,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(middleware.Gate(engine, cfg.Secrets.PreviewToken))
	Register(app, deps)

	return &testSite{app: app, store: st, engine: engine}
}

// do runs one request against the site, carrying cookies across calls the
// way a browser would.
func (s *testSite) do(t *testing.T, method, target string, body any, headers map[string]string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	for _, c := range s.cookies {
		req.AddCookie(c)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	s.cookies = append(s.cookies, resp.Cookies()...)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func panelHeader() map[string]string {
	return map[string]string{"X-Config-Key": testPanelKey}
}

func (s *testSite) seedProduct(t *testing.T, name string, price float64) string {
	t.Helper()
	id, err := s.store.Insert(context.Background(), ProductsCollection,
		models.Product{Name: name, Price: price, InStock: true, CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	return id
}

func TestRequestsAreHeldWhileSettingsLoad(t *testing.T) {
	log := testLogger()
	st := store.NewMemory()
	engine := theme.NewEngine(st, log)
	t.Cleanup(engine.Close)
	// Load deliberately not called.

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(middleware.Gate(engine, testPreviewToken))
	app.Get("/health", HealthHandler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/settings", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	var body struct {
		Loading bool `json:"loading"`
	}
	decodeJSON(t, resp, &body)
	assert.True(t, body.Loading)

	// Health stays reachable regardless.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSettingsEndpointReturnsDefaults(t *testing.T) {
	site := newTestSite(t)

	resp := site.do(t, http.MethodGet, "/api/settings", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got models.ThemeSettings
	decodeJSON(t, resp, &got)
	assert.Equal(t, models.DefaultThemeSettings(), got)
}

func TestThemeStylesheetReflectsUpdates(t *testing.T) {
	site := newTestSite(t)

	resp := site.do(t, http.MethodPut, "/api/config/settings", fiber.Map{
		"colors": fiber.Map{"primary": "#224466", "accent": "#aabbcc"},
	}, panelHeader())
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = site.do(t, http.MethodGet, "/theme.css", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/css")
	assert.Contains(t, bodyString(t, resp), "--color-primary: #224466;")
}

func TestConfigPanelRequiresTheKey(t *testing.T) {
	site := newTestSite(t)

	resp := site.do(t, http.MethodGet, "/api/config/settings", nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = site.do(t, http.MethodGet, "/api/config/settings", nil,
		map[string]string{"X-Config-Key": "wrong"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = site.do(t, http.MethodGet, "/api/config/settings", nil, panelHeader())
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestConfigPanelWithoutConfiguredKeyIsClosed(t *testing.T) {
	site := newTestSite(t, func(d *Deps) {
		d.Cfg.Secrets.ConfigPanelKey = ""
	})

	resp := site.do(t, http.MethodGet, "/api/config/settings", nil, panelHeader())
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestUpdateRejectsUnsupportedFont(t *testing.T) {
	site := newTestSite(t)

	resp := site.do(t, http.MethodPut, "/api/config/settings",
		fiber.Map{"font": "Comic Sans"}, panelHeader())
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPresetAndResetRoundTrip(t *testing.T) {
	site := newTestSite(t)

	resp := site.do(t, http.MethodPost, "/api/config/preset",
		fiber.Map{"preset": "tech"}, panelHeader())
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got models.ThemeSettings
	decodeJSON(t, resp, &got)
	assert.Equal(t, models.PresetTech, got.Preset)

	resp = site.do(t, http.MethodPost, "/api/config/preset",
		fiber.Map{"preset": "vaporwave"}, panelHeader())
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = site.do(t, http.MethodPost, "/api/config/reset", nil, panelHeader())
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &got)
	assert.Equal(t, models.DefaultThemeSettings(), got)
}

func TestMaintenanceModeClosesTheSite(t *testing.T) {
	site := newTestSite(t)
	site.engine.Update(models.SettingsPatch{
		SEO: &models.SEO{MaintenanceMode: true},
	})

	resp := site.do(t, http.MethodGet, "/api/projects", nil, nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, middleware.MaintenanceNotice, bodyString(t, resp))

	// The config panel stays open so the owner can turn it back off.
	resp = site.do(t, http.MethodGet, "/api/config/settings", nil, panelHeader())
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The preview token unlocks the rest.
	resp = site.do(t, http.MethodGet, "/api/projects?preview="+testPreviewToken, nil, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDisabledShopClosesItsAPI(t *testing.T) {
	site := newTestSite(t)
	site.engine.Update(models.SettingsPatch{
		Pages: &models.Pages{PortfolioEnabled: true, ShopEnabled: false, BlogEnabled: true},
	})

	for _, target := range []string{"/api/products", "/api/cart", "/api/checkout"} {
		resp := site.do(t, http.MethodGet, target, nil, nil)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode, target)
		assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation), target)
	}

	resp := site.do(t, http.MethodGet, "/api/projects", nil, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPreventIndexingSetsRobotsHeader(t *testing.T) {
	site := newTestSite(t)
	site.engine.Update(models.SettingsPatch{
		SEO: &models.SEO{PreventIndexing: true},
	})

	resp := site.do(t, http.MethodGet, "/api/settings", nil, nil)
	assert.Equal(t, "noindex, nofollow", resp.Header.Get("X-Robots-Tag"))
}

func TestContentListingsDegradeToEmpty(t *testing.T) {
	site := newTestSite(t)

	for _, target := range []string{"/api/projects", "/api/products", "/api/blogs", "/api/testimonials"} {
		resp := site.do(t, http.MethodGet, target, nil, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, target)
		assert.Equal(t, "[]", bodyString(t, resp), target)
	}
}

func TestContactMessageIsValidatedAndStored(t *testing.T) {
	site := newTestSite(t)

	resp := site.do(t, http.MethodPost, "/api/messages",
		fiber.Map{"name": "Ana", "email": "not-an-email", "body": "hi"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = site.do(t, http.MethodPost, "/api/messages",
		fiber.Map{"name": "Ana", "email": "ana@example.com", "body": "hi"}, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var stored []models.Message
	require.NoError(t, site.store.Query(context.Background(), MessagesCollection, nil, &stored, store.QueryOpts{}))
	require.Len(t, stored, 1)
	assert.Equal(t, "ana@example.com", stored[0].Email)
}

func TestBookingRequiresServiceAndDate(t *testing.T) {
	site := newTestSite(t)

	resp := site.do(t, http.MethodPost, "/api/bookings",
		fiber.Map{"name": "Ana", "email": "ana@example.com"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = site.do(t, http.MethodPost, "/api/bookings", fiber.Map{
		"name": "Ana", "email": "ana@example.com",
		"service": "branding", "date": "2026-09-15",
	}, nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestCartAndCheckoutFlow(t *testing.T) {
	site := newTestSite(t)
	productID := site.seedProduct(t, "poster", 5)
	site.seedProduct(t, "sticker pack", 10)

	// Two units of the same product collapse into one line.
	site.do(t, http.MethodPost, "/api/cart/items", fiber.Map{"productId": productID}, nil).Body.Close()
	resp := site.do(t, http.MethodPost, "/api/cart/items", fiber.Map{"productId": productID}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var cart struct {
		Items []commerce.CartItem `json:"items"`
		Total float64             `json:"total"`
	}
	decodeJSON(t, resp, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 10.0, cart.Total)

	resp = site.do(t, http.MethodPost, "/api/checkout", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var co struct {
		State string        `json:"state"`
		Order *models.Order `json:"order"`
	}
	decodeJSON(t, resp, &co)
	assert.Equal(t, "method", co.State)

	resp = site.do(t, http.MethodPost, "/api/checkout/method", fiber.Map{"method": "bkash"}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &co)
	assert.Equal(t, "details", co.State)

	resp = site.do(t, http.MethodPost, "/api/checkout/details", fiber.Map{
		"email": "buyer@example.com", "senderNumber": "01700000000", "trxId": "TX1",
	}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &co)
	assert.Equal(t, "success", co.State)
	require.NotNil(t, co.Order)
	assert.Equal(t, models.OrderPending, co.Order.Status)
	assert.Equal(t, 10.0, co.Order.Total)

	// The cart emptied on success.
	resp = site.do(t, http.MethodGet, "/api/cart", nil, nil)
	decodeJSON(t, resp, &cart)
	assert.Empty(t, cart.Items)

	// And the receipt downloads as plain text.
	resp = site.do(t, http.MethodGet, "/api/checkout/receipt", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "receipt.txt")
	assert.Contains(t, bodyString(t, resp), "buyer@example.com")
}

func TestCheckoutOverEmptyCartIsRejected(t *testing.T) {
	site := newTestSite(t)

	resp := site.do(t, http.MethodPost, "/api/checkout", nil, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = site.do(t, http.MethodGet, "/api/checkout", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAddingUnknownProductFails(t *testing.T) {
	site := newTestSite(t)

	resp := site.do(t, http.MethodPost, "/api/cart/items",
		fiber.Map{"productId": "000000000000000000000000"}, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestChatRequiresAProvider(t *testing.T) {
	site := newTestSite(t)

	resp := site.do(t, http.MethodPost, "/api/chat",
		fiber.Map{"messages": []fiber.Map{{"role": "user", "content": "hi"}}}, nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestChatForwardsToTheProvider(t *testing.T) {
	site := newTestSite(t, func(d *Deps) {
		d.Chat = stubChat{text: "Hello! Ask me about the portfolio."}
	})

	resp := site.do(t, http.MethodPost, "/api/chat",
		fiber.Map{"messages": []fiber.Map{{"role": "user", "content": "hi"}}}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reply ChatResponse
	decodeJSON(t, resp, &reply)
	assert.Equal(t, "Hello! Ask me about the portfolio.", reply.Text)

	resp = site.do(t, http.MethodPost, "/api/chat", fiber.Map{"messages": []fiber.Map{}}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminAreaRequiresLogin(t *testing.T) {
	site := newTestSite(t)

	resp := site.do(t, http.MethodGet, "/api/admin/orders", nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = site.do(t, http.MethodPost, "/api/login", fiber.Map{"password": "wrong"}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = site.do(t, http.MethodPost, "/api/login", fiber.Map{"password": testAdminPassword}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The session cookie from login now opens the admin listings.
	for _, target := range []string{"/api/admin/orders", "/api/admin/messages", "/api/admin/bookings"} {
		resp = site.do(t, http.MethodGet, target, nil, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, target)
	}
}

func TestAdminKillSwitchClosesLoginAndAdmin(t *testing.T) {
	site := newTestSite(t)
	site.engine.Update(models.SettingsPatch{
		System: &models.System{AdminEnabled: false},
	})

	resp := site.do(t, http.MethodPost, "/api/login", fiber.Map{"password": testAdminPassword}, nil)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))
}
