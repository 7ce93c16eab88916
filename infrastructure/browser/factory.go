package browser

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"shop_automation/config"
	"shop_automation/domain/interfaces"
)

// New builds the browser backend selected by DRIVER.
func New(cfg *config.Config, logger *logrus.Logger) (interfaces.Browser, error) {
	switch cfg.Driver {
	case "selenium":
		return NewSeleniumController(cfg, logger)
	case "playwright":
		return NewPlaywrightController(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown driver %q (expected selenium or playwright)", cfg.Driver)
	}
}
