package router

import (
	"time"

	"github.com/cuevasfm/pan-backend/internal/config"
	"github.com/cuevasfm/pan-backend/internal/handler"
	"github.com/cuevasfm/pan-backend/internal/infra"
	"github.com/cuevasfm/pan-backend/internal/middleware"
	"github.com/cuevasfm/pan-backend/internal/model"
	"github.com/cuevasfm/pan-backend/internal/repository"
	"github.com/cuevasfm/pan-backend/internal/service"
	"github.com/cuevasfm/pan-backend/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	clienteRepo := repository.NewClienteRepository(db)
	unidadRepo := repository.NewUnidadRepository(db)
	insumoRepo := repository.NewInsumoRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	fechaRepo := repository.NewFechaProduccionRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	notifRepo := repository.NewNotificacionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(clienteRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo)
	unidadSvc := service.NewUnidadService(unidadRepo, rdb)
	insumoSvc := service.NewInsumoService(insumoRepo, unidadRepo)
	productoSvc := service.NewProductoService(productoRepo, insumoRepo, unidadRepo)
	fechaSvc := service.NewFechaProduccionService(fechaRepo)
	pedidoSvc := service.NewPedidoService(pedidoRepo, clienteRepo, fechaRepo, productoRepo, notifRepo, dispatcher)
	reporteSvc := service.NewReporteService(fechaRepo, pedidoRepo, productoRepo, unidadSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	unidadesH := handler.NewUnidadesHandler(unidadSvc)
	insumosH := handler.NewInsumosHandler(insumoSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	fechasH := handler.NewFechasHandler(fechaSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	reportesH := handler.NewReportesHandler(reporteSvc, cfg.PDFStoragePath)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/register", middleware.LoginRateLimiter(), authH.Register)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	soloAdmin := middleware.RequireRole(model.RolAdmin)
	api := r.Group("/api", jwtMW)
	{
		api.GET("/auth/profile", authH.Profile)

		// Catalogo maestro — solo admin administra; clientes pueden leer productos
		api.GET("/productos", productosH.Listar)
		api.GET("/productos/:id", productosH.ObtenerPorID)
		productos := api.Group("/productos", soloAdmin)
		{
			productos.POST("", productosH.Crear)
			productos.PUT("/:id", productosH.Actualizar)
			productos.DELETE("/:id", productosH.Eliminar)
			productos.POST("/:id/receta", productosH.AgregarRecetaItem)
			productos.PUT("/:id/receta/:recetaId", productosH.ActualizarRecetaItem)
			productos.DELETE("/:id/receta/:recetaId", productosH.EliminarRecetaItem)
		}

		clientes := api.Group("/clientes", soloAdmin)
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/search", clientesH.Buscar)
			clientes.GET("/:id", clientesH.ObtenerPorID)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.DELETE("/:id", clientesH.Eliminar)
		}

		insumos := api.Group("/insumos", soloAdmin)
		{
			insumos.POST("", insumosH.Crear)
			insumos.GET("", insumosH.Listar)
			insumos.GET("/:id", insumosH.ObtenerPorID)
			insumos.PUT("/:id", insumosH.Actualizar)
			insumos.PATCH("/:id/stock", insumosH.AjustarStock)
			insumos.DELETE("/:id", insumosH.Eliminar)
		}

		// Unidades — lectura autenticada, escritura solo admin
		api.GET("/unidades", unidadesH.Listar)
		api.GET("/unidades/tipo/:tipo", unidadesH.ListarPorTipo)
		api.GET("/unidades/conversiones", unidadesH.ListarConversiones)
		api.GET("/unidades/:id", unidadesH.ObtenerPorID)
		unidades := api.Group("/unidades", soloAdmin)
		{
			unidades.POST("", unidadesH.Crear)
			unidades.POST("/conversiones", unidadesH.CrearConversion)
		}

		// Fechas de produccion — clientes ven las abiertas para elegir al pedir
		api.GET("/fechas-produccion/abiertas", fechasH.ListarAbiertas)
		fechas := api.Group("/fechas-produccion", soloAdmin)
		{
			fechas.POST("", fechasH.Crear)
			fechas.GET("", fechasH.Listar)
			fechas.GET("/:id", fechasH.ObtenerPorID)
			fechas.PUT("/:id", fechasH.Actualizar)
			fechas.PATCH("/:id/toggle", fechasH.ToggleAbierta)
			fechas.DELETE("/:id", fechasH.Eliminar)
		}

		// Pedidos — clientes operan sobre los propios (validado en el handler)
		api.POST("/pedidos", pedidosH.Crear)
		api.GET("/pedidos", pedidosH.Listar)
		api.GET("/pedidos/:id", pedidosH.ObtenerPorID)
		pedidos := api.Group("/pedidos", soloAdmin)
		{
			pedidos.GET("/cliente/:id", pedidosH.ListarPorCliente)
			pedidos.GET("/fecha-produccion/:id", pedidosH.ListarPorFechaProduccion)
			pedidos.PUT("/:id", pedidosH.Actualizar)
			pedidos.PATCH("/:id/estado", pedidosH.CambiarEstado)
			pedidos.DELETE("/:id", pedidosH.Cancelar)
		}

		reportes := api.Group("/reportes", soloAdmin)
		{
			reportes.GET("/produccion/:id", reportesH.Produccion)
			reportes.GET("/produccion/:id/pdf", reportesH.ProduccionPDF)
			reportes.GET("/pedido/:id", reportesH.Pedido)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
