package main

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/aurora-portfolio/internal/contact"
	"github.com/Zachkp/aurora-portfolio/internal/device"
	"github.com/Zachkp/aurora-portfolio/internal/report"
	"github.com/Zachkp/aurora-portfolio/internal/session"
	"github.com/Zachkp/aurora-portfolio/internal/store"
	"github.com/Zachkp/aurora-portfolio/internal/theme"
)

func (a *app) home(c *gin.Context) {
	t := a.themes.Load(c.Request.Context(), a.visitorKey(c))
	img := a.images.Resolve(c.Request.Context())
	// Image sources come from configuration or the built-in placeholder.
	c.HTML(http.StatusOK, "index.html", gin.H{
		"aboutMe":     AboutMe,
		"projects":    Projects,
		"phrases":     session.Phrases,
		"sections":    session.DefaultSections,
		"theme":       t,
		"palette":     t.Palette(),
		"imageSrc":    template.URL(img.Source),
		"imageLoaded": img.Loaded,
		"profile":     device.Detect(c.GetHeader("User-Agent"), 0),
		"year":        a.now().Year(),
	})
}

// profile reports the device profile for the caller's user agent and the
// viewport width it sends.
func (a *app) profile(c *gin.Context) {
	width, _ := strconv.Atoi(c.Query("width"))
	c.JSON(http.StatusOK, device.Detect(c.GetHeader("User-Agent"), width))
}

func (a *app) getTheme(c *gin.Context) {
	t := a.themes.Load(c.Request.Context(), a.visitorKey(c))
	c.JSON(http.StatusOK, gin.H{"theme": t, "palette": t.Palette()})
}

type themeRequest struct {
	Theme  string `json:"theme" form:"theme"`
	Toggle bool   `json:"toggle" form:"toggle"`
}

func (a *app) setTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	visitor := a.visitorKey(c)

	var (
		t   theme.Theme
		err error
	)
	if req.Toggle || req.Theme == "" {
		t, err = a.themes.Toggle(ctx, visitor)
	} else {
		if t, err = theme.Parse(req.Theme); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		err = a.themes.Set(ctx, visitor, t)
	}
	if err != nil {
		a.log.Error("save theme", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save theme"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": t, "palette": t.Palette()})
}

func (a *app) profileImage(c *gin.Context) {
	c.JSON(http.StatusOK, a.images.Resolve(c.Request.Context()))
}

const (
	contactThanks   = "Thank you for your message! I'll get back to you soon."
	contactFallback = "Sorry, the message could not be sent. Opening your email client instead."
)

func (a *app) contact(c *gin.Context) {
	var msg contact.Message
	if err := c.ShouldBind(&msg); err != nil {
		a.contactReply(c, http.StatusBadRequest, gin.H{"ok": false, "message": contact.ErrMissingField.Error()})
		return
	}

	res, err := a.mail.Deliver(c.Request.Context(), msg)
	if errors.Is(err, contact.ErrMissingField) || errors.Is(err, contact.ErrInvalidEmail) {
		a.contactReply(c, http.StatusBadRequest, gin.H{"ok": false, "message": err.Error()})
		return
	}
	if err != nil {
		a.log.Error("deliver contact message", zap.Error(err))
		a.contactReply(c, http.StatusInternalServerError, gin.H{"ok": false, "message": contactFallback})
		return
	}

	if _, err := a.store.SaveMessage(c.Request.Context(), store.Message{
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Body:      msg.Message,
		Via:       res.Via,
		Delivered: res.Delivered,
		CreatedAt: a.now(),
	}); err != nil {
		a.log.Warn("keep contact message", zap.Error(err))
	}

	if !res.Delivered {
		a.contactReply(c, http.StatusOK, gin.H{"ok": false, "message": contactFallback, "mailto": res.Mailto})
		return
	}
	a.contactReply(c, http.StatusOK, gin.H{"ok": true, "message": contactThanks})
}

// contactReply answers HTMX requests with a fragment and everything else
// with JSON.
func (a *app) contactReply(c *gin.Context, status int, body gin.H) {
	if c.GetHeader("HX-Request") != "true" {
		c.JSON(status, body)
		return
	}
	name := "contact-success.html"
	if ok, _ := body["ok"].(bool); !ok {
		name = "contact-error.html"
	}
	c.HTML(status, name, body)
}

func (a *app) recordShow(c *gin.Context) {
	var req report.Show
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := a.store.RecordShow(c.Request.Context(), store.Show{
		Profile:   req.Profile,
		Reason:    req.Reason,
		Duration:  time.Duration(req.DurationMS) * time.Millisecond,
		Fireworks: req.Fireworks,
		StartedAt: req.StartedAt,
	})
	if err != nil {
		a.log.Error("record show", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record show"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}
