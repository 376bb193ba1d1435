// admin.go - privacy-conscious visitor tracking and the admin dashboard
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/aurora-portfolio/internal/device"
	"github.com/Zachkp/aurora-portfolio/internal/store"
)

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate admin token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (a *app) announceAdmin() {
	a.log.Info("admin access available", zap.String("path", "/admin/login"))
	if gin.Mode() == gin.DebugMode {
		a.log.Debug("admin token (dev only)", zap.String("token", a.adminToken))
		if a.cfg.AdminPass == "admin123" {
			a.log.Warn("using default admin credentials; set ADMIN_USERNAME and ADMIN_PASSWORD")
		}
	}
	a.log.Info("visitor tracking enabled with hashed IP addresses")
}

// hashIP is stable for a given IP and salt so unique counts survive restarts.
func (a *app) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + a.cfg.HashSalt))
	return hex.EncodeToString(sum[:])[:16]
}

func (a *app) visitorKey(c *gin.Context) string {
	return a.hashIP(c.ClientIP())
}

func (a *app) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

var untrackedPrefixes = []string{"/static/", "/images/", "/admin/", "/api/", "/favicon", "/privacy"}

// visitorTracking records page views with a hashed IP. Do Not Track is
// honored.
func (a *app) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, p := range untrackedPrefixes {
			if strings.HasPrefix(path, p) {
				c.Next()
				return
			}
		}
		if c.GetHeader("DNT") == "1" || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		ua := c.GetHeader("User-Agent")
		visit := store.Visit{
			HashedIP:  a.hashIP(c.ClientIP()),
			UserAgent: ua,
			Path:      path,
			Mobile:    device.IsMobile(ua, 0),
			Timestamp: a.now(),
		}
		a.bg.Add(1)
		go func() {
			defer a.bg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := a.store.RecordVisit(ctx, visit); err != nil {
				a.log.Warn("record visit", zap.Error(err))
			}
		}()
		c.Next()
	}
}

// pruneVisitors deletes visits past the retention window every interval.
func (a *app) pruneVisitors(ctx context.Context, every time.Duration) {
	a.cleanupVisitors(ctx)
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			a.cleanupVisitors(ctx)
		}
	}
}

func (a *app) cleanupVisitors(ctx context.Context) int64 {
	n, err := a.store.PruneVisits(ctx, a.now().Add(-a.cfg.Retention))
	if err != nil {
		a.log.Error("privacy cleanup", zap.Error(err))
		return 0
	}
	if n > 0 {
		a.log.Info("privacy cleanup", zap.Int64("removed", n), zap.Duration("retention", a.cfg.Retention))
	}
	return n
}

func (a *app) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{"title": "Privacy Policy", "retention": a.cfg.Retention})
	})

	// Visitors can erase their own records; the key is derived from their IP.
	r.POST("/privacy/forget-me", func(c *gin.Context) {
		n, err := a.store.ForgetVisitor(c.Request.Context(), a.visitorKey(c))
		if err != nil {
			a.log.Error("forget visitor", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete your data"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Your visit history was deleted", "removed": n})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		user := c.PostForm("username")
		pass := c.PostForm("password")
		okUser := subtle.ConstantTimeCompare([]byte(user), []byte(a.cfg.AdminUser)) == 1
		okPass := subtle.ConstantTimeCompare([]byte(pass), []byte(a.cfg.AdminPass)) == 1
		if !okUser || !okPass {
			a.log.Warn("failed admin login", zap.String("from", a.visitorKey(c)))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{"error": "Invalid credentials"})
			return
		}
		c.SetCookie("admin_token", a.adminToken, 3600*24, "/admin", "", false, true)
		a.log.Info("admin login", zap.String("from", a.visitorKey(c)))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(a.adminAuth())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context(), a.now())
		if err != nil {
			a.log.Error("load admin stats", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load statistics"})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{"stats": stats})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context(), a.now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visits, err := a.store.RecentVisits(c.Request.Context(), 200)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load visitors"})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visitors": visits})
	})

	admin.GET("/shows", func(c *gin.Context) {
		shows, err := a.store.RecentShows(c.Request.Context(), 200)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, shows)
	})

	admin.GET("/messages", func(c *gin.Context) {
		msgs, err := a.store.Messages(c.Request.Context(), 200)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load messages"})
			return
		}
		c.HTML(http.StatusOK, "admin-messages.html", gin.H{"messages": msgs})
	})

	admin.DELETE("/messages/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message id"})
			return
		}
		err = a.store.DeleteMessage(c.Request.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		if err != nil {
			a.log.Error("delete message", zap.Int64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		n := a.cleanupVisitors(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": n})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context(), a.now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		a.log.Info("admin stats exported", zap.String("by", a.visitorKey(c)))
		c.JSON(http.StatusOK, stats)
	})
}
