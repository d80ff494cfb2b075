package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/osa911/hostelhub/internal/api/constants"
	"github.com/osa911/hostelhub/internal/billing"
)

// RequestClock reads the clock once per request and stores the instant and its
// period, so every step of a request agrees on the current month.
func RequestClock(clock billing.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		now, period := clock.Current()
		c.Set(constants.ContextKeyNow, now)
		c.Set(constants.ContextKeyPeriod, period)
		c.Next()
	}
}

// RequestTime returns the instant and period captured by RequestClock.
func RequestTime(c *gin.Context) (time.Time, billing.Period) {
	now, okNow := c.Get(constants.ContextKeyNow)
	period, okPeriod := c.Get(constants.ContextKeyPeriod)
	if okNow && okPeriod {
		return now.(time.Time), period.(billing.Period)
	}
	return billing.Clock{}.Current()
}
