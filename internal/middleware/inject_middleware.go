package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/gatewood-events/ticketline/internal/pageshell"
	"github.com/gatewood-events/ticketline/internal/registration"
)

func RegistrationMiddleware(svc *registration.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("registrations", svc)
		c.Next()
	}
}

func GetRegistrationService(c *gin.Context) *registration.Service {
	svc, exists := c.Get("registrations")
	if !exists {
		return nil
	}
	return svc.(*registration.Service)
}

func ShellMiddleware(provider *pageshell.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("pageshell", provider)
		c.Next()
	}
}

func GetShell(c *gin.Context) pageshell.Snapshot {
	provider, exists := c.Get("pageshell")
	if !exists {
		return pageshell.Snapshot{}
	}
	return provider.(*pageshell.Provider).Current()
}
