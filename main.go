package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/Zachkp/aurora-portfolio/internal/config"
	"github.com/Zachkp/aurora-portfolio/internal/contact"
	"github.com/Zachkp/aurora-portfolio/internal/imageload"
	"github.com/Zachkp/aurora-portfolio/internal/store"
	"github.com/Zachkp/aurora-portfolio/internal/theme"
)

//go:embed templates/*.html
var templateFS embed.FS

// app holds everything the handlers share.
type app struct {
	cfg    config.Server
	log    *zap.Logger
	store  *store.Store
	themes *theme.Preference
	mail   *contact.Dispatcher
	images *imageload.Chain

	adminToken string
	now        func() time.Time
	bg         sync.WaitGroup
}

func newApp(cfg config.Server, st *store.Store, log *zap.Logger) (*app, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	senders := []contact.Sender{contact.NewRelay(cfg.RelayEndpoint)}
	smtp := &contact.SMTP{Host: cfg.SMTP.Host, Port: cfg.SMTP.Port, User: cfg.SMTP.User, Pass: cfg.SMTP.Pass, To: cfg.Inbox}
	if smtp.Configured() {
		senders = append(senders, smtp)
	}
	return &app{
		cfg:    cfg,
		log:    log,
		store:  st,
		themes: theme.NewPreference(st, log.Named("theme")),
		mail:   contact.NewDispatcher(cfg.Inbox, log.Named("contact"), senders...),
		images: imageload.NewChain(cfg.ProfileImages, cfg.ImageTimeout,
			imageload.Probes{Root: ".", Client: &http.Client{}}, log.Named("images")),
		adminToken: token,
		now:        time.Now,
	}, nil
}

func (a *app) router() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(template.Must(template.New("").Funcs(template.FuncMap{
		"join": strings.Join,
	}).ParseFS(templateFS, "templates/*.html")))

	r.Static("/images", a.cfg.ImagesDir)
	r.Static("/static", a.cfg.StaticDir)
	r.Use(a.visitorTracking())

	r.GET("/", a.home)
	r.GET("/work-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "work-content.html", gin.H{"jobs": Experience})
	})
	r.GET("/education-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "education-content.html", gin.H{"degrees": Education})
	})
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{"title": "Contact Me"})
	})
	r.POST("/contact", a.contact)

	api := r.Group("/api")
	api.GET("/profile", a.profile)
	api.GET("/theme", a.getTheme)
	api.POST("/theme", a.setTheme)
	api.GET("/image", a.profileImage)
	api.POST("/shows", a.recordShow)

	a.setupAdminRoutes(r)
	return r
}

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Server, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer st.Close()

	a, err := newApp(cfg, st, logger)
	if err != nil {
		return err
	}
	a.announceAdmin()
	go a.pruneVisitors(ctx, 24*time.Hour)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	a.bg.Wait()
	return nil
}
