//go:build integration

package e2e

// e2e_test.go
// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Scenarios:
//   - Full order cycle: catalogo → fecha → pedido → confirmar → reporte → PDF
//   - Optimistic locking: stale version rejected with 409
//   - Closed fecha rejects new pedidos
//   - Customer self-registration and ownership checks

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cuevasfm/pan-backend/internal/config"
	"github.com/cuevasfm/pan-backend/internal/infra"
	"github.com/cuevasfm/pan-backend/internal/router"
	"github.com/cuevasfm/pan-backend/internal/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

type idResp struct {
	ID string `json:"id"`
}

// assertDecimal compares a decimal JSON string numerically ("60.00" == "60").
func assertDecimal(t *testing.T, expected, actual string) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(actual).Equal(decimal.RequireFromString(expected)),
		"esperaba %s, obtuvo %s", expected, actual)
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("panaderia_test"),
		tcPostgres.WithUsername("panaderia"),
		tcPostgres.WithPassword("panaderia"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin user
	hash, err := bcrypt.GenerateFromPassword([]byte("panaderia2026"), 10)
	require.NoError(t, err)
	err = db.Exec(`INSERT INTO clientes (id, telefono, nombre, rol, password_hash, created_at, updated_at)
		VALUES (gen_random_uuid(), '5550000000', 'Admin E2E', 'admin', ?, NOW(), NOW())
		ON CONFLICT DO NOTHING`, string(hash)).Error
	require.NoError(t, err)

	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)

	r := router.New(cfg, db, rdb, smtpCB, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/api/auth/login",
		jsonBody(t, map[string]string{"telefono": "5550000000", "password": "panaderia2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken}
}

// seedCatalogo creates kg/g with a conversion, harina at $10/kg and a pan at
// $20 whose receta needs 500 g of harina per piece. Returns producto id.
func seedCatalogo(t *testing.T, env *testEnv) string {
	t.Helper()

	kgResp := do(t, env.server, "POST", "/api/unidades",
		jsonBody(t, map[string]any{"nombre": "Kilogramo", "simbolo": "kg", "tipo": "masa"}), env.token)
	require.Equal(t, http.StatusCreated, kgResp.StatusCode)
	var kg idResp
	decodeJSON(t, kgResp, &kg)

	gResp := do(t, env.server, "POST", "/api/unidades",
		jsonBody(t, map[string]any{"nombre": "Gramo", "simbolo": "g", "tipo": "masa"}), env.token)
	require.Equal(t, http.StatusCreated, gResp.StatusCode)
	var g idResp
	decodeJSON(t, gResp, &g)

	convResp := do(t, env.server, "POST", "/api/unidades/conversiones",
		jsonBody(t, map[string]any{"unidad_origen_id": kg.ID, "unidad_destino_id": g.ID, "factor": "1000"}), env.token)
	require.Equal(t, http.StatusCreated, convResp.StatusCode)

	harinaResp := do(t, env.server, "POST", "/api/insumos",
		jsonBody(t, map[string]any{
			"nombre": "Harina", "unidad_id": kg.ID,
			"precio_por_unidad": "10", "stock_actual": "50",
		}), env.token)
	require.Equal(t, http.StatusCreated, harinaResp.StatusCode)
	var harina idResp
	decodeJSON(t, harinaResp, &harina)

	panResp := do(t, env.server, "POST", "/api/productos",
		jsonBody(t, map[string]any{"nombre": "Pan de masa madre", "precio": "20"}), env.token)
	require.Equal(t, http.StatusCreated, panResp.StatusCode)
	var pan idResp
	decodeJSON(t, panResp, &pan)

	recetaResp := do(t, env.server, "POST", "/api/productos/"+pan.ID+"/receta",
		jsonBody(t, map[string]any{"insumo_id": harina.ID, "cantidad": "500", "unidad_id": g.ID}), env.token)
	require.Equal(t, http.StatusCreated, recetaResp.StatusCode)

	return pan.ID
}

func crearFecha(t *testing.T, env *testEnv, horneado, limite string, abierta bool) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/api/fechas-produccion",
		jsonBody(t, map[string]any{
			"fecha_horneado": horneado, "fecha_limite": limite, "abierta": abierta,
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var f idResp
	decodeJSON(t, resp, &f)
	return f.ID
}

func crearCliente(t *testing.T, env *testEnv, nombre, telefono string) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/api/clientes",
		jsonBody(t, map[string]any{"nombre": nombre, "telefono": telefono}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var c idResp
	decodeJSON(t, resp, &c)
	return c.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_CicloCompletoPedido(t *testing.T) {
	env := setupTestEnv(t)
	panID := seedCatalogo(t, env)
	fechaID := crearFecha(t, env, "2099-12-05", "2099-12-03", true)
	clienteID := crearCliente(t, env, "Maria Lopez", "5551234567")

	// Crear pedido: 3 panes a $20
	pedidoResp := do(t, env.server, "POST", "/api/pedidos",
		jsonBody(t, map[string]any{
			"cliente_id":          clienteID,
			"fecha_produccion_id": fechaID,
			"detalle":             []map[string]any{{"producto_id": panID, "cantidad": 3}},
		}), env.token)
	require.Equal(t, http.StatusCreated, pedidoResp.StatusCode)
	var pedido struct {
		ID      string `json:"id"`
		Estado  string `json:"estado"`
		Total   string `json:"total"`
		Version int    `json:"version"`
	}
	decodeJSON(t, pedidoResp, &pedido)
	assert.Equal(t, "pendiente", pedido.Estado)
	assertDecimal(t, "60", pedido.Total)
	assert.Equal(t, 1, pedido.Version)

	// Confirmar
	estadoResp := do(t, env.server, "PATCH", "/api/pedidos/"+pedido.ID+"/estado",
		jsonBody(t, map[string]any{"estado": "confirmado"}), env.token)
	require.Equal(t, http.StatusOK, estadoResp.StatusCode)

	// Reporte de produccion: 3 × 500 g = 1.5 kg de harina a $10/kg
	repResp := do(t, env.server, "GET", "/api/reportes/produccion/"+fechaID, nil, env.token)
	require.Equal(t, http.StatusOK, repResp.StatusCode)
	var reporte struct {
		Totales struct {
			TotalPedidos   int    `json:"total_pedidos"`
			TotalProductos int    `json:"total_productos"`
			TotalVentas    string `json:"total_ventas"`
			CostoInsumos   string `json:"costo_insumos"`
		} `json:"totales"`
		InsumosNecesarios []struct {
			InsumoNombre string `json:"insumo_nombre"`
			Cantidad     string `json:"cantidad"`
		} `json:"insumos_necesarios"`
	}
	decodeJSON(t, repResp, &reporte)
	assert.Equal(t, 1, reporte.Totales.TotalPedidos)
	assert.Equal(t, 3, reporte.Totales.TotalProductos)
	assertDecimal(t, "60", reporte.Totales.TotalVentas)
	assertDecimal(t, "15", reporte.Totales.CostoInsumos)
	require.Len(t, reporte.InsumosNecesarios, 1)
	assert.Equal(t, "Harina", reporte.InsumosNecesarios[0].InsumoNombre)
	assertDecimal(t, "1.5", reporte.InsumosNecesarios[0].Cantidad)

	// PDF del reporte
	pdfResp := do(t, env.server, "GET", "/api/reportes/produccion/"+fechaID+"/pdf", nil, env.token)
	require.Equal(t, http.StatusOK, pdfResp.StatusCode)
	assert.Contains(t, pdfResp.Header.Get("Content-Disposition"), "attachment")
	pdfResp.Body.Close()
}

func TestE2E_ConflictoDeVersion(t *testing.T) {
	env := setupTestEnv(t)
	panID := seedCatalogo(t, env)
	fechaID := crearFecha(t, env, "2099-12-05", "2099-12-03", true)
	clienteID := crearCliente(t, env, "Pedro Gomez", "5559876543")

	pedidoResp := do(t, env.server, "POST", "/api/pedidos",
		jsonBody(t, map[string]any{
			"cliente_id":          clienteID,
			"fecha_produccion_id": fechaID,
			"detalle":             []map[string]any{{"producto_id": panID, "cantidad": 1}},
		}), env.token)
	require.Equal(t, http.StatusCreated, pedidoResp.StatusCode)
	var pedido idResp
	decodeJSON(t, pedidoResp, &pedido)

	update := map[string]any{
		"fecha_produccion_id": fechaID,
		"detalle":             []map[string]any{{"producto_id": panID, "cantidad": 2}},
		"version":             1,
	}
	okResp := do(t, env.server, "PUT", "/api/pedidos/"+pedido.ID, jsonBody(t, update), env.token)
	require.Equal(t, http.StatusOK, okResp.StatusCode)
	okResp.Body.Close()

	// El segundo editor sigue viendo la version 1 → conflicto.
	staleResp := do(t, env.server, "PUT", "/api/pedidos/"+pedido.ID, jsonBody(t, update), env.token)
	assert.Equal(t, http.StatusConflict, staleResp.StatusCode)
	staleResp.Body.Close()
}

func TestE2E_FechaCerradaRechazaPedidos(t *testing.T) {
	env := setupTestEnv(t)
	panID := seedCatalogo(t, env)
	fechaID := crearFecha(t, env, "2099-12-05", "2099-12-03", false)
	clienteID := crearCliente(t, env, "Lucia Perez", "5551112222")

	pedidoResp := do(t, env.server, "POST", "/api/pedidos",
		jsonBody(t, map[string]any{
			"cliente_id":          clienteID,
			"fecha_produccion_id": fechaID,
			"detalle":             []map[string]any{{"producto_id": panID, "cantidad": 1}},
		}), env.token)
	assert.Equal(t, http.StatusBadRequest, pedidoResp.StatusCode)
	pedidoResp.Body.Close()
}

func TestE2E_ClienteSoloVeSusPedidos(t *testing.T) {
	env := setupTestEnv(t)
	panID := seedCatalogo(t, env)
	fechaID := crearFecha(t, env, "2099-12-05", "2099-12-03", true)
	ajenoID := crearCliente(t, env, "Otro Cliente", "5553334444")

	// Pedido de otro cliente, creado por el admin.
	ajenoPedido := do(t, env.server, "POST", "/api/pedidos",
		jsonBody(t, map[string]any{
			"cliente_id":          ajenoID,
			"fecha_produccion_id": fechaID,
			"detalle":             []map[string]any{{"producto_id": panID, "cantidad": 1}},
		}), env.token)
	require.Equal(t, http.StatusCreated, ajenoPedido.StatusCode)
	var pedidoAjeno idResp
	decodeJSON(t, ajenoPedido, &pedidoAjeno)

	// Auto-registro de un cliente con credencial.
	regResp := do(t, env.server, "POST", "/api/auth/register",
		jsonBody(t, map[string]any{
			"telefono": "5557778888", "nombre": "Cliente Web", "password": "seguro123",
		}), "")
	require.Equal(t, http.StatusCreated, regResp.StatusCode)
	var reg struct {
		AccessToken string `json:"access_token"`
		User        idResp `json:"user"`
	}
	decodeJSON(t, regResp, &reg)

	// Crea su propio pedido.
	propioResp := do(t, env.server, "POST", "/api/pedidos",
		jsonBody(t, map[string]any{
			"cliente_id":          reg.User.ID,
			"fecha_produccion_id": fechaID,
			"detalle":             []map[string]any{{"producto_id": panID, "cantidad": 2}},
		}), reg.AccessToken)
	require.Equal(t, http.StatusCreated, propioResp.StatusCode)
	var propio idResp
	decodeJSON(t, propioResp, &propio)

	// No puede pedir a nombre de otro.
	suplantado := do(t, env.server, "POST", "/api/pedidos",
		jsonBody(t, map[string]any{
			"cliente_id":          ajenoID,
			"fecha_produccion_id": fechaID,
			"detalle":             []map[string]any{{"producto_id": panID, "cantidad": 1}},
		}), reg.AccessToken)
	assert.Equal(t, http.StatusForbidden, suplantado.StatusCode)
	suplantado.Body.Close()

	// El listado solo trae los propios.
	listResp := do(t, env.server, "GET", "/api/pedidos", nil, reg.AccessToken)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var lista []idResp
	decodeJSON(t, listResp, &lista)
	require.Len(t, lista, 1)
	assert.Equal(t, propio.ID, lista[0].ID)

	// Y no puede abrir el pedido ajeno.
	verAjeno := do(t, env.server, "GET", "/api/pedidos/"+pedidoAjeno.ID, nil, reg.AccessToken)
	assert.Equal(t, http.StatusForbidden, verAjeno.StatusCode)
	verAjeno.Body.Close()
}
