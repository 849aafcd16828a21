package i18n

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docbuilder-backend/internal/shared/server/respond"
)

type tableResponse struct {
	Locale       Locale            `json:"locale"`
	Tag          string            `json:"tag"`
	Direction    Direction         `json:"direction"`
	Translations map[string]string `json:"translations"`
}

// RegisterRoutes exposes translation tables to clients.
func RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/i18n/:locale", func(c *gin.Context) {
		locale, err := ParseLocale(c.Param("locale"))
		if err != nil {
			respond.Error(c, http.StatusNotFound, "not_found", "unsupported locale", gin.H{"supported": []Locale{English, Urdu}})
			return
		}
		c.Header("Cache-Control", "public, max-age=3600")
		respond.OK(c, tableResponse{
			Locale:       locale,
			Tag:          locale.Tag().String(),
			Direction:    locale.Direction(),
			Translations: Table(locale),
		})
	})
}
