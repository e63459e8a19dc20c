package bot

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/jmoiron/sqlx"

	"bazaarbot/core/bootstrap"
	"bazaarbot/core/logger"
	coretelegram "bazaarbot/core/telegram"
	"bazaarbot/core/telegram/commands"
	"bazaarbot/core/telegram/middleware"
	"bazaarbot/core/telegram/router"
	"bazaarbot/internal/dialog"
	"bazaarbot/internal/service"
	"bazaarbot/internal/session"
	"bazaarbot/internal/storage"

	tele "gopkg.in/telebot.v4"
)

// App owns the shop bot's services and process-local state.
type App struct {
	cfg *Config
	db  *sqlx.DB

	users   *service.Users
	catalog *service.Catalog
	orders  *service.Orders
	stats   *service.Stats
	audit   *service.Audit

	sessions *session.Registry
	dialogs  *dialog.Store
	panels   *PanelTracker
	notifier *telegramNotifier

	// runCtx carries the bot run lifetime so background fan-outs stop on
	// shutdown.
	runCtx atomic.Pointer[context.Context]
}

// New runs the bootstrap pipeline and wires all services.
func New(cfg *Config) (*App, error) {
	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	store := storage.New(res.DB)
	audit := service.NewAudit(store.Logs)
	users := service.NewUsers(store.Users, audit)
	catalog := service.NewCatalog(store.Products, store.Images, audit)
	notifier := &telegramNotifier{}
	orders := service.NewOrders(store.Orders, audit, notifier)
	stats := service.NewStats(store.Users, users)

	return &App{
		cfg:      cfg,
		db:       res.DB,
		users:    users,
		catalog:  catalog,
		orders:   orders,
		stats:    stats,
		audit:    audit,
		sessions: session.NewRegistry(cfg.Admin.SessionDuration()),
		dialogs:  dialog.NewStore(),
		panels:   NewPanelTracker(),
		notifier: notifier,
	}, nil
}

// Close releases the database pool. The runner calls it after every run
// attempt.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// TelegramRunOptions assembles the registry, routes, and middleware chain.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "شروع کار با ربات",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     a.handleHelp,
		Description: "نمایش راهنما",
	})
	reg.RegisterCommand("/admin", commands.Command{
		Handler:     a.handleAdminCommand,
		Description: "ورود به پنل ادمین",
		Hidden:      true,
	})

	a.registerCallbacks(reg)

	// An unmatched callback is a silent no-op, not an error surface.
	reg.SetCallbackNotFound(func(tele.Context) error { return nil })
	reg.SetTextFallback(a.handleFreeText)

	routes := []coretelegram.Route{
		router.CallbackRoute(reg, router.CallbackOptions{}),
	}
	routes = append(routes, router.CommandRoutes(reg, router.CommandRouteOptions{
		Gate: a.sessionGate(),
	})...)
	routes = append(routes, router.TextRoutes(a, reg, router.TextOptions{
		UnknownPhoto: func(c tele.Context) error {
			return c.Send(textPhotoAck)
		},
	})...)

	opts := coretelegram.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg.CoreConfig(), nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt coretelegram.Runtime) error {
			a.notifier.bind(rt.Bot)
			a.runCtx.Store(&ctx)
			if removed := a.sessions.Sweep(); removed > 0 {
				logger.Info(ctx, "app", "sessions.swept",
					slog.Int("removed", removed),
				)
			}
			return nil
		},
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			a.notifier.bind(nil)
			return nil
		},
	}
	return opts, nil
}

func (a *App) registerCallbacks(reg *coretelegram.Registry) {
	gate := a.sessionGate()

	// Disabled pagination ends answer with a toast only.
	mustRegister(reg, cbNoop, func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{Text: textDisabledButton})
	})

	// Registration and profile.
	mustRegister(reg, cbStartRegistration, a.cbStartRegistration)
	mustRegister(reg, cbCancelRegistration, a.cbCancelRegistration)
	mustRegister(reg, cbSkipPhone, a.cbSkipPhone)
	mustRegister(reg, cbSkipCity, a.cbSkipCity)
	mustRegister(reg, cbEditProfile, a.cbEditProfile)
	mustRegister(reg, cbEditPhone, a.profileFieldPrompt(dialog.ProfilePhone))
	mustRegister(reg, cbEditFirstName, a.profileFieldPrompt(dialog.ProfileFirstName))
	mustRegister(reg, cbEditLastName, a.profileFieldPrompt(dialog.ProfileLastName))
	mustRegister(reg, cbEditCity, a.profileFieldPrompt(dialog.ProfileCity))

	// User menu and catalog.
	mustRegister(reg, cbMenuMain, a.cbMenuMain)
	mustRegister(reg, cbMenuProfile, a.cbMenuProfile)
	mustRegister(reg, cbMenuProducts, a.cbMenuProducts)
	mustRegister(reg, cbMenuWallet, a.cbMenuWallet)
	mustRegister(reg, cbMenuOrders, a.cbMenuOrders)
	mustRegister(reg, cbProductsPage, a.cbProductsPage)
	mustRegister(reg, cbViewProduct, a.cbViewProduct)
	mustRegister(reg, cbViewAllImages, a.cbViewAllImages)
	mustRegister(reg, cbImagesPage, a.cbImagesPage)
	mustRegister(reg, cbBuyProduct, a.cbBuyProduct)

	// Admin panel, all session-gated.
	mustRegister(reg, cbAdminMenu, gate(a.cbAdminMenu))
	mustRegister(reg, cbAdminStats, gate(a.cbAdminStats))
	mustRegister(reg, cbAdminUsers, gate(a.cbAdminUsers))
	mustRegister(reg, cbAdminOrders, gate(a.cbAdminOrders))
	mustRegister(reg, cbAdminOrdersPage, gate(a.cbAdminOrdersPage))
	mustRegister(reg, cbAdminViewOrder, gate(a.cbAdminViewOrder))
	mustRegister(reg, cbAdminViewOrderSS, gate(a.cbAdminViewOrderSS))
	mustRegister(reg, cbAdminApproveOrder, gate(a.cbAdminApproveOrder))
	mustRegister(reg, cbAdminRejectOrder, gate(a.cbAdminRejectOrder))
	mustRegister(reg, cbAdminBroadcast, gate(a.cbAdminBroadcast))
	mustRegister(reg, cbAdminSession, gate(a.cbAdminSession))
	mustRegister(reg, cbAdminRefresh, gate(a.cbAdminRefresh))
	mustRegister(reg, cbAdminProducts, gate(a.cbAdminProducts))
	mustRegister(reg, cbAdminLogout, gate(a.cbAdminLogout))

	// Admin catalog management, session-gated.
	mustRegister(reg, cbAddProduct, gate(a.cbAddProduct))
	mustRegister(reg, cbListProducts, gate(a.cbListProducts))
	mustRegister(reg, cbAdminProductsPage, gate(a.cbAdminProductsPage))
	mustRegister(reg, cbManageProduct, gate(a.cbManageProduct))
	mustRegister(reg, cbEditProductName, gate(a.productFieldPrompt(dialog.ProductName, textNameEditPrompt)))
	mustRegister(reg, cbEditProductPrice, gate(a.productFieldPrompt(dialog.ProductPrice, textPriceEditPrompt)))
	mustRegister(reg, cbEditProductDesc, gate(a.productFieldPrompt(dialog.ProductDescription, textDescEditPrompt)))
	mustRegister(reg, cbSkipImage, gate(a.cbSkipImage))
	mustRegister(reg, cbSkipDescription, gate(a.cbSkipDescription))
	mustRegister(reg, cbAddProductImage, gate(a.cbAddProductImage))
	mustRegister(reg, cbManageImages, gate(a.cbManageImages))
	mustRegister(reg, cbDeleteImage, gate(a.cbDeleteImage))
	mustRegister(reg, cbDeleteProduct, gate(a.cbDeleteProduct))
}

func mustRegister(reg *coretelegram.Registry, key string, h tele.HandlerFunc) {
	// Registration only fails on duplicates, which the registry already
	// logs; the keys above are compile-time constants.
	_ = reg.RegisterCallback(key, h)
}

// sessionGate wraps admin handlers with the session validity check. An
// expired session answers with a short toast and mutates nothing.
func (a *App) sessionGate() tele.MiddlewareFunc {
	return middleware.SessionGateMiddleware(middleware.SessionGateOptions{
		Sessions: a.sessions,
		OnReject: func(c tele.Context) error {
			if c.Callback() != nil {
				return c.Respond(&tele.CallbackResponse{Text: textSessionExpired})
			}
			return c.Send(textSessionExpired)
		},
	})
}

// runContext returns the bot run context for background tasks.
func (a *App) runContext() context.Context {
	if p := a.runCtx.Load(); p != nil {
		return *p
	}
	return context.Background()
}
