package controllers

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/EdmilsonDev/CodeMentor/internal/pkg/actionlog"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/chatbot"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/credits"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/database"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/payment"
	"github.com/EdmilsonDev/CodeMentor/internal/pkg/referral"
)

func isLoggedIn(c *fiber.Ctx) bool {
	var fromProtected bool
	if protectedValue := c.Locals(FROM_PROTECTED); protectedValue != nil {
		fromProtected = protectedValue.(bool)
	}

	return fromProtected
}

// ExtractUsername gets the username from Locals (set by middleware)
func ExtractUsername(c *fiber.Ctx) string {
	if userNameValue := c.Locals(USER_NAME); userNameValue != nil {
		if userName, ok := userNameValue.(string); ok {
			return userName
		}
	}

	return ""
}

// Shared service instances, built lazily against the global DB handle.
var (
	servicesOnce   sync.Once
	creditsSvc     *credits.Service
	referralSvc    *referral.Service
	actionLog      *actionlog.Logger
	chatSvc        *chatbot.Service
	paymentProc    *payment.Processor
	chatSvcInitErr error
)

func initServices() {
	db := database.GetDB()
	creditsSvc = credits.NewServiceFromDB(db)
	referralSvc = referral.NewServiceFromDB(db, creditsSvc)
	actionLog = actionlog.NewLoggerFromDB(db)
	chatSvc, chatSvcInitErr = chatbot.NewServiceFromEnv()
	paymentProc = payment.NewProcessor(payment.SandboxCharger{}, creditsSvc, actionLog)
}

func getCreditsService() *credits.Service {
	servicesOnce.Do(initServices)
	return creditsSvc
}

func getReferralService() *referral.Service {
	servicesOnce.Do(initServices)
	return referralSvc
}

func getActionLogger() *actionlog.Logger {
	servicesOnce.Do(initServices)
	return actionLog
}

func getChatService() (*chatbot.Service, error) {
	servicesOnce.Do(initServices)
	return chatSvc, chatSvcInitErr
}

func getPaymentProcessor() *payment.Processor {
	servicesOnce.Do(initServices)
	return paymentProc
}

// GetClientIP determines the actual client IP address considering proxies.
// Returns the IPv4 address when one can be identified.
func GetClientIP(c *fiber.Ctx) string {
	// Cloudflare provides the original client IP in this header
	if cfIP := c.Get("CF-Connecting-IP"); cfIP != "" && !strings.Contains(cfIP, ":") {
		return cfIP
	}

	// X-Forwarded-For can contain a list of IPs - the first one is the original client
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		for _, ip := range strings.Split(xff, ",") {
			ip = strings.TrimSpace(ip)
			if ip != "" && !strings.Contains(ip, ":") {
				return ip
			}
		}
	}

	ipAddr := c.IP()
	// For ::ffff: IPv4-mapped-IPv6 addresses
	if strings.HasPrefix(ipAddr, "::ffff:") && strings.Contains(ipAddr, ".") {
		return strings.TrimPrefix(ipAddr, "::ffff:")
	}
	if !strings.Contains(ipAddr, ":") {
		return ipAddr
	}

	if realIP := c.Get("X-Real-IP"); realIP != "" && !strings.Contains(realIP, ":") {
		return realIP
	}
	return ""
}
