package e2e

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"shop_automation/config"
	"shop_automation/domain/interfaces"
	"shop_automation/infrastructure/browser"
	"shop_automation/infrastructure/storage"
	"shop_automation/pages"
)

var (
	cfg *config.Config
	log *logrus.Logger
)

func TestMain(m *testing.M) {
	if os.Getenv("E2E") == "" {
		fmt.Println("skipping end-to-end suite; set E2E=1 to run")
		os.Exit(0)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log = config.NewLogger(cfg)

	os.Exit(m.Run())
}

// scenario owns one browser session per test, mirroring one BDD scenario. The
// session always quits at test end, and a failing test leaves a screenshot in
// the report directory.
type scenario struct {
	t         *testing.T
	driver    interfaces.Browser
	base      *pages.BasePage
	artifacts *storage.ArtifactStore
}

func newScenario(t *testing.T) *scenario {
	t.Helper()

	driver, err := browser.New(cfg, log)
	require.NoError(t, err, "failed to start browser")

	store, err := storage.NewArtifactStore(cfg, log)
	require.NoError(t, err, "failed to create artifact store")

	s := &scenario{
		t:         t,
		driver:    driver,
		base:      pages.NewBasePage(driver, cfg, log),
		artifacts: store,
	}

	t.Cleanup(func() {
		if t.Failed() && cfg.ScreenshotsOnFailure {
			if png, err := driver.Screenshot(context.Background()); err == nil {
				if path, err := store.SaveScreenshot(t.Name(), png); err == nil {
					t.Logf("failure screenshot: %s", path)
				}
			}
		}
		if err := driver.Quit(); err != nil {
			t.Logf("failed to quit browser: %v", err)
		}
	})

	return s
}

func (s *scenario) login(ctx context.Context) *pages.DashboardPage {
	s.t.Helper()

	loginPage := pages.NewLoginPage(s.base)
	require.NoError(s.t, loginPage.Open(ctx))
	require.True(s.t, loginPage.IsLoaded(ctx), "login page did not load")

	creds := cfg.TestUser("valid_user")
	dashboard, err := loginPage.Login(ctx, creds.Email, creds.Password, false)
	require.NoError(s.t, err)
	require.True(s.t, dashboard.IsUserLoggedIn(ctx), "user is not logged in after login")
	return dashboard
}
